package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pathok/admin-console/internal/models"
)

func (h *Handler) HandleBookTypes(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principalOrError(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case "GET":
		if !h.requireRole(w, principal, models.RoleSuperAdmin, models.RoleBookOrganizer) {
			return
		}
		types, err := h.platform.ListBookTypes(r.Context(), principal.Token)
		if err != nil {
			h.writeUpstreamError(w, err)
			return
		}
		h.writeJSON(w, types)
	case "POST":
		// Creating book types is reserved for Super Admin, matching the
		// nav config.
		if !h.requireRole(w, principal, models.RoleSuperAdmin) {
			return
		}
		name, ok := h.decodeName(w, r)
		if !ok {
			return
		}
		bt, err := h.platform.CreateBookType(r.Context(), principal.Token, name)
		if err != nil {
			h.writeUpstreamError(w, err)
			return
		}
		h.writeJSON(w, bt)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleBookTypeDetail(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principalOrError(w, r)
	if !ok {
		return
	}
	if !h.requireRole(w, principal, models.RoleSuperAdmin) {
		return
	}
	if r.Method != "DELETE" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/book-types/")
	if id == "" {
		h.writeError(w, "Book type id is required", http.StatusBadRequest)
		return
	}
	if err := h.platform.DeleteBookType(r.Context(), principal.Token, id); err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleTags(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principalOrError(w, r)
	if !ok {
		return
	}
	if !h.requireRole(w, principal, models.RoleSuperAdmin, models.RoleBookOrganizer) {
		return
	}

	switch r.Method {
	case "GET":
		tags, err := h.platform.ListTags(r.Context(), principal.Token)
		if err != nil {
			h.writeUpstreamError(w, err)
			return
		}
		h.writeJSON(w, tags)
	case "POST":
		name, ok := h.decodeName(w, r)
		if !ok {
			return
		}
		tag, err := h.platform.CreateTag(r.Context(), principal.Token, name)
		if err != nil {
			h.writeUpstreamError(w, err)
			return
		}
		h.writeJSON(w, tag)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleTagDetail(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principalOrError(w, r)
	if !ok {
		return
	}
	if !h.requireRole(w, principal, models.RoleSuperAdmin, models.RoleBookOrganizer) {
		return
	}
	if r.Method != "DELETE" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/tags/")
	if id == "" {
		h.writeError(w, "Tag id is required", http.StatusBadRequest)
		return
	}
	if err := h.platform.DeleteTag(r.Context(), principal.Token, id); err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return "", false
	}
	name := strings.TrimSpace(body.Name)
	if len(name) < 2 {
		h.writeError(w, "Name must be at least 2 characters", http.StatusBadRequest)
		return "", false
	}
	return name, true
}
