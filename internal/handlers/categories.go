package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pathok/admin-console/internal/models"
	"github.com/pathok/admin-console/internal/taxonomy"
)

type categoryEntry struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Depth int    `json:"depth"`
}

func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principalOrError(w, r)
	if !ok {
		return
	}
	if !h.requireRole(w, principal, models.RoleSuperAdmin, models.RoleBookOrganizer) {
		return
	}

	switch r.Method {
	case "GET":
		entries := make([]categoryEntry, 0)
		for _, e := range h.categories.Walk() {
			entries = append(entries, categoryEntry{
				ID:    e.Node.ID,
				Name:  e.Node.Name,
				Depth: e.Depth,
			})
		}
		h.writeJSON(w, entries)
	case "POST":
		var body struct {
			Name     string `json:"name"`
			ParentID int64  `json:"parentId,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		if len(strings.TrimSpace(body.Name)) < 2 {
			h.writeError(w, "Category name must be at least 2 characters", http.StatusBadRequest)
			return
		}

		node, err := h.categories.Insert(strings.TrimSpace(body.Name), body.ParentID)
		if errors.Is(err, taxonomy.ErrParentNotFound) {
			h.writeError(w, "Parent category not found", http.StatusNotFound)
			return
		}
		if err != nil {
			h.writeError(w, "Failed to create category: "+err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, node)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
