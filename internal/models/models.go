package models

import "time"

// Role is the platform role assigned to a console user.
type Role string

const (
	RoleSuperAdmin    Role = "Super Admin"
	RoleBookOrganizer Role = "Book Organizer"
	RoleAnnotator     Role = "Annotator"
	RoleReviewer      Role = "Reviewer"
)

// Principal is the authenticated user's identity plus the bearer token the
// platform API issued at login. It is held for the lifetime of the console
// session and cleared on logout.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

// Book represents a book record on the publishing platform.
type Book struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Editor    string    `json:"editor,omitempty"`
	Publisher string    `json:"publisher,omitempty"`
	Type      string    `json:"type,omitempty"`
	Category  string    `json:"category,omitempty"`
	CoverURL  string    `json:"bookCover,omitempty"`
	FileURL   string    `json:"bookFile,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// BookType is a platform-side book taxonomy entry (e.g. Tafsir, Hadith).
type BookType struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Tag is a platform-side free-form label.
type Tag struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// User is the payload for platform user create/update calls.
type User struct {
	ID       string `json:"_id,omitempty"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Password string `json:"password,omitempty"`
}
