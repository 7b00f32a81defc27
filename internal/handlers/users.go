package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pathok/admin-console/internal/models"
)

func validRole(role models.Role) bool {
	switch role {
	case models.RoleSuperAdmin, models.RoleBookOrganizer, models.RoleAnnotator, models.RoleReviewer:
		return true
	}
	return false
}

// HandleUsers creates platform users. Super Admin only.
func (h *Handler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principalOrError(w, r)
	if !ok {
		return
	}
	if !h.requireRole(w, principal, models.RoleSuperAdmin) {
		return
	}
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !strings.Contains(user.Email, "@") {
		h.writeError(w, "A valid email is required", http.StatusBadRequest)
		return
	}
	if len(user.Password) < 6 {
		h.writeError(w, "Password must be at least 6 characters", http.StatusBadRequest)
		return
	}
	if !validRole(user.Role) {
		h.writeError(w, "Unknown role: "+string(user.Role), http.StatusBadRequest)
		return
	}

	created, err := h.platform.CreateUser(r.Context(), principal.Token, user)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	h.writeJSON(w, created)
}

// HandleUserDetail updates a platform user. Super Admin only.
func (h *Handler) HandleUserDetail(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principalOrError(w, r)
	if !ok {
		return
	}
	if !h.requireRole(w, principal, models.RoleSuperAdmin) {
		return
	}
	if r.Method != "PUT" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/users/")
	if id == "" {
		h.writeError(w, "User id is required", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if user.Role != "" && !validRole(user.Role) {
		h.writeError(w, "Unknown role: "+string(user.Role), http.StatusBadRequest)
		return
	}

	updated, err := h.platform.UpdateUser(r.Context(), principal.Token, id, user)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	h.writeJSON(w, updated)
}
