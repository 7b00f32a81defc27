package handlers

import (
	"net/http"

	"github.com/pathok/admin-console/internal/nav"
)

type navEntry struct {
	nav.Item
	Active bool `json:"active"`
}

// HandleNav returns the navigation menu filtered to the caller's role. An
// optional ?path= query marks which entries are active for that location.
// A role that appears in no item's role list gets an empty menu, by design.
func (h *Handler) HandleNav(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	principal, ok := h.principalOrError(w, r)
	if !ok {
		return
	}

	visible := nav.Visible(h.navItems, principal.Role)
	currentPath := r.URL.Query().Get("path")

	entries := make([]navEntry, 0, len(visible))
	for _, item := range visible {
		entries = append(entries, navEntry{
			Item:   item,
			Active: currentPath != "" && nav.IsActive(item, currentPath),
		})
	}
	h.writeJSON(w, entries)
}
