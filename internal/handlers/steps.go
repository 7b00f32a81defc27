package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/pathok/admin-console/internal/steps"
)

type stepsResponse struct {
	Active    steps.Stage   `json:"active"`
	Completed []steps.Stage `json:"completed"`
	Stages    []steps.Stage `json:"stages"`
	// InReview signals the UI to swap to the full-screen review view
	// instead of a wizard panel.
	InReview bool `json:"in_review"`
	// Placeholder is set for stages whose processing is not implemented
	// yet; the panel renders it verbatim.
	Placeholder string `json:"placeholder,omitempty"`
}

// handleSteps dispatches the wizard routes for one book. Role checks already
// happened in HandleBookDetail.
func (h *Handler) handleSteps(w http.ResponseWriter, r *http.Request, bookID, action string) {
	if bookID == "" {
		h.writeError(w, "Book id is required", http.StatusBadRequest)
		return
	}
	controller := h.stepController(bookID)

	switch {
	case action == "" && r.Method == "GET":
		h.writeJSON(w, h.stepsState(controller))
	case action == "active" && r.Method == "PUT":
		var body struct {
			Stage string `json:"stage"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		stage, err := steps.ParseStage(body.Stage)
		if err != nil {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := controller.Select(stage); err != nil {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.writeJSON(w, h.stepsState(controller))
	case action == "back-from-review" && r.Method == "POST":
		controller.GoBackFromReview()
		h.writeJSON(w, h.stepsState(controller))
	case action == "ocr" && r.Method == "POST":
		h.handleOCRTrigger(w, r, bookID, controller)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) stepsState(controller *steps.Controller) stepsResponse {
	resp := stepsResponse{
		Active:    controller.Active(),
		Completed: controller.Completed(),
		Stages:    steps.Stages(),
		InReview:  controller.InReview(),
	}
	switch resp.Active {
	case steps.StageChapterFootnote:
		resp.Placeholder = "Chapter and footnote detection is not implemented yet."
	case steps.StageNER:
		resp.Placeholder = "Named entity recognition is not implemented yet."
	case steps.StageDiacritics:
		resp.Placeholder = "Diacritics restoration is not implemented yet."
	}
	return resp
}

// handleOCRTrigger fires the OCR extraction for a page scan and returns
// immediately. There is no status polling; the result is logged only.
func (h *Handler) handleOCRTrigger(w http.ResponseWriter, r *http.Request, bookID string, controller *steps.Controller) {
	var body struct {
		Image    string `json:"image"`
		Provider string `json:"provider"`
		Model    string `json:"model"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if body.Image == "" {
		h.writeError(w, "image is required", http.StatusBadRequest)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		text, err := h.ocrService.ExtractTextFromImage(ctx, body.Image, body.Provider, body.Model)
		if err != nil {
			slog.Error("OCR extraction failed", "book_id", bookID, "image", body.Image, "err", err)
			return
		}
		controller.MarkCompleted(steps.StageOCR)
		slog.Info("OCR extraction finished", "book_id", bookID, "image", body.Image, "length", len(text))
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(map[string]string{"message": "OCR started"}); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}
