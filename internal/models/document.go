package models

import "time"

// Access determines the read visibility of a document
type Access string

// Access constants
const (
	AccessPublic  Access = "public"
	AccessPrivate Access = "private"
	AccessRole    Access = "role"
)

// Valid reports whether the access value is one of the known classes
func (a Access) Valid() bool {
	return a == AccessPublic || a == AccessPrivate || a == AccessRole
}

// Document represents a stored document.
//
// RoleID is only meaningful when Access is AccessRole; it holds the role whose
// members may read the document.
type Document struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	OwnerID   int       `json:"ownerId"`
	Access    Access    `json:"access"`
	RoleID    int       `json:"roleId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateDocumentRequest represents the payload for creating a document
type CreateDocumentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Access  Access `json:"access"`
	RoleID  int    `json:"roleId"`
}

// UpdateDocumentRequest represents the payload for updating a document.
// Nil fields are left unchanged; OwnerID is immutable and has no field here.
type UpdateDocumentRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Access  *Access `json:"access"`
	RoleID  *int    `json:"roleId"`
}

// DocumentList is the paginated result of a list/search query
type DocumentList struct {
	Documents []Document `json:"docs"`
	Total     int        `json:"total"`
}
