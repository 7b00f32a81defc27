// Package nav computes the role-filtered navigation menu for the console.
// The configured items are static; filtering always produces fresh copies so
// the shared config is never mutated across requests.
package nav

import (
	"slices"
	"strings"

	"github.com/pathok/admin-console/internal/models"
)

// HomeRoute is the console dashboard route. It is matched exactly when it
// appears in a submenu, since every path has "/" as a prefix.
const HomeRoute = "/"

// SubItem is a navigation entry nested under an Item. A nil Roles slice
// means the entry inherits visibility from its parent.
type SubItem struct {
	Title string        `json:"title" yaml:"title"`
	Route string        `json:"route" yaml:"route"`
	Roles []models.Role `json:"roles,omitempty" yaml:"roles,omitempty"`
}

// Item is a top-level navigation entry with role-based visibility.
type Item struct {
	Title   string        `json:"title" yaml:"title"`
	Route   string        `json:"route" yaml:"route"`
	Icon    string        `json:"icon,omitempty" yaml:"icon,omitempty"`
	Roles   []models.Role `json:"roles" yaml:"roles"`
	Submenu []SubItem     `json:"submenu,omitempty" yaml:"submenu,omitempty"`
}

// Visible returns the navigation items the given role may see, in configured
// order. An item with no configured roles is hidden for everyone
// (fail-closed). Submenu entries carrying their own role list are filtered
// the same way; an included item keeps its submenu even if filtering empties
// it. The input is never mutated.
func Visible(items []Item, role models.Role) []Item {
	visible := make([]Item, 0, len(items))
	for _, item := range items {
		if !slices.Contains(item.Roles, role) {
			continue
		}

		filtered := item
		filtered.Roles = slices.Clone(item.Roles)
		if item.Submenu != nil {
			filtered.Submenu = make([]SubItem, 0, len(item.Submenu))
			for _, sub := range item.Submenu {
				if sub.Roles != nil && !slices.Contains(sub.Roles, role) {
					continue
				}
				subCopy := sub
				subCopy.Roles = slices.Clone(sub.Roles)
				filtered.Submenu = append(filtered.Submenu, subCopy)
			}
		}
		visible = append(visible, filtered)
	}
	return visible
}

// IsActive reports whether item should be highlighted for currentPath. An
// item without a submenu is active when currentPath starts with its route.
// An item with a submenu is active when any submenu route is a prefix of
// currentPath, except the home route which must match exactly.
func IsActive(item Item, currentPath string) bool {
	if len(item.Submenu) == 0 {
		return strings.HasPrefix(currentPath, item.Route)
	}
	for _, sub := range item.Submenu {
		if sub.Route == HomeRoute {
			if currentPath == HomeRoute {
				return true
			}
			continue
		}
		if strings.HasPrefix(currentPath, sub.Route) {
			return true
		}
	}
	return false
}
