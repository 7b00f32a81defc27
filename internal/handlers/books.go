package handlers

import (
	"net/http"
	"strings"

	"github.com/pathok/admin-console/internal/models"
	"github.com/pathok/admin-console/internal/platform"
)

func (h *Handler) HandleBooks(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principalOrError(w, r)
	if !ok {
		return
	}
	if !h.requireRole(w, principal, models.RoleSuperAdmin, models.RoleBookOrganizer) {
		return
	}

	switch r.Method {
	case "GET":
		books, err := h.platform.ListBooks(r.Context(), principal.Token)
		if err != nil {
			h.writeUpstreamError(w, err)
			return
		}
		h.writeJSON(w, books)
	case "POST":
		h.handleCreateBook(w, r, principal)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleCreateBook forwards a multipart book upload to the platform.
func (h *Handler) handleCreateBook(w http.ResponseWriter, r *http.Request, principal models.Principal) {
	// Limit the combined upload to 50MB before buffering.
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		h.writeError(w, "Failed to parse upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	upload := platform.BookUpload{
		Title:     strings.TrimSpace(r.FormValue("title")),
		Author:    strings.TrimSpace(r.FormValue("author")),
		Editor:    strings.TrimSpace(r.FormValue("editor")),
		Publisher: strings.TrimSpace(r.FormValue("publisher")),
		Type:      r.FormValue("type"),
		Category:  r.FormValue("category"),
	}

	if upload.Title == "" {
		h.writeError(w, "Title is required", http.StatusBadRequest)
		return
	}
	if upload.Author == "" {
		h.writeError(w, "Author is required", http.StatusBadRequest)
		return
	}

	if cover, header, err := r.FormFile("bookCover"); err == nil {
		defer cover.Close()
		upload.Cover = cover
		upload.CoverName = header.Filename
	}

	file, header, err := r.FormFile("bookFile")
	if err != nil {
		h.writeError(w, "Book file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()
	upload.File = file
	upload.FileName = header.Filename

	book, err := h.platform.CreateBook(r.Context(), principal.Token, upload)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	h.writeJSON(w, book)
}

// HandleBookDetail serves /api/books/{id}, /api/books/count and the wizard
// routes under /api/books/{id}/steps.
func (h *Handler) HandleBookDetail(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principalOrError(w, r)
	if !ok {
		return
	}
	if !h.requireRole(w, principal, models.RoleSuperAdmin, models.RoleBookOrganizer) {
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/books/")

	if rest == "count" {
		if r.Method != "GET" {
			h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		count, err := h.platform.CountBooks(r.Context(), principal.Token)
		if err != nil {
			h.writeUpstreamError(w, err)
			return
		}
		h.writeJSON(w, map[string]int{"count": count})
		return
	}

	if bookID, stepPath, found := strings.Cut(rest, "/steps"); found {
		h.handleSteps(w, r, bookID, strings.TrimPrefix(stepPath, "/"))
		return
	}

	bookID := rest
	if bookID == "" {
		h.writeError(w, "Book id is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case "GET":
		book, err := h.platform.GetBook(r.Context(), principal.Token, bookID)
		if err != nil {
			h.writeUpstreamError(w, err)
			return
		}
		h.writeJSON(w, book)
	case "DELETE":
		if err := h.platform.DeleteBook(r.Context(), principal.Token, bookID); err != nil {
			h.writeUpstreamError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
