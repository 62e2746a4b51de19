package services

import "github.com/docuvault/backend/internal/models"

// documentAction is an operation the access policy decides on
type documentAction int

const (
	actionRead documentAction = iota
	actionWrite
	actionDelete
)

// AccessPolicy decides whether an identity may act on a document. It only
// reads the document, never mutates it.
type AccessPolicy struct{}

// NewAccessPolicy creates a new access policy
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// CanRead reports whether the identity may read the document
func (p AccessPolicy) CanRead(doc *models.Document, identity models.Identity) bool {
	return p.allows(actionRead, doc, identity)
}

// CanWrite reports whether the identity may update the document
func (p AccessPolicy) CanWrite(doc *models.Document, identity models.Identity) bool {
	return p.allows(actionWrite, doc, identity)
}

// CanDelete reports whether the identity may delete the document
func (p AccessPolicy) CanDelete(doc *models.Document, identity models.Identity) bool {
	return p.allows(actionDelete, doc, identity)
}

// allows evaluates the decision list in precedence order, first match wins:
//  1. admins may do anything
//  2. owners may do anything with their own documents
//  3. read only: public documents are visible to everyone
//  4. read only: role documents are visible to members of the same role
//  5. otherwise deny
func (p AccessPolicy) allows(action documentAction, doc *models.Document, identity models.Identity) bool {
	if identity.IsAdmin {
		return true
	}
	if identity.UserID == doc.OwnerID {
		return true
	}

	// Only read visibility varies by access class; write and delete are never
	// granted past this point.
	if action != actionRead {
		return false
	}

	switch doc.Access {
	case models.AccessPublic:
		return true
	case models.AccessRole:
		// A document referencing a deleted role has RoleID 0 here and matches
		// nobody.
		return doc.RoleID != 0 && identity.RoleID == doc.RoleID
	}

	return false
}
