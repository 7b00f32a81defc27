package nav

import (
	"fmt"
	"os"

	"github.com/pathok/admin-console/internal/models"
	"gopkg.in/yaml.v3"
)

// Default returns the console's built-in navigation config. Reviewer appears
// in no role list, so reviewers get an empty menu.
func Default() []Item {
	return []Item{
		{
			Title: "Dashboard",
			Route: HomeRoute,
			Icon:  "dashboard",
			Roles: []models.Role{models.RoleSuperAdmin, models.RoleBookOrganizer, models.RoleAnnotator},
		},
		{
			Title: "Books",
			Route: "/books",
			Icon:  "book",
			Roles: []models.Role{models.RoleSuperAdmin, models.RoleBookOrganizer},
			Submenu: []SubItem{
				{Title: "All Books", Route: "/books"},
				{Title: "Add Book", Route: "/books/add"},
				{Title: "Book Types", Route: "/book-types", Roles: []models.Role{models.RoleSuperAdmin}},
			},
		},
		{
			Title: "Annotations",
			Route: "/annotations",
			Icon:  "note",
			Roles: []models.Role{models.RoleSuperAdmin, models.RoleAnnotator},
		},
		{
			Title: "Fatwas",
			Route: "/fatwas",
			Icon:  "gavel",
			Roles: []models.Role{models.RoleSuperAdmin, models.RoleAnnotator},
		},
		{
			Title: "Scholars",
			Route: "/scholars",
			Icon:  "person",
			Roles: []models.Role{models.RoleSuperAdmin, models.RoleAnnotator},
		},
		{
			Title: "Categories",
			Route: "/categories",
			Icon:  "category",
			Roles: []models.Role{models.RoleSuperAdmin, models.RoleBookOrganizer},
		},
		{
			Title: "Tags",
			Route: "/tags",
			Icon:  "tag",
			Roles: []models.Role{models.RoleSuperAdmin, models.RoleBookOrganizer},
		},
		{
			Title: "Users",
			Route: "/users",
			Icon:  "group",
			Roles: []models.Role{models.RoleSuperAdmin},
			Submenu: []SubItem{
				{Title: "All Users", Route: "/users"},
				{Title: "Add User", Route: "/users/add"},
			},
		},
		{
			Title: "Scoring",
			Route: "/scoring",
			Icon:  "star",
			Roles: []models.Role{models.RoleSuperAdmin},
		},
	}
}

// Load reads a navigation config from a YAML file, for deployments that
// need a different menu than the built-in one.
func Load(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read nav config: %w", err)
	}

	var items []Item
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse nav config: %w", err)
	}
	return items, nil
}
