package models

// Identity is the authenticated caller derived from a verified token.
// It is built per request by the auth middleware and never persisted.
type Identity struct {
	UserID  int
	RoleID  int
	IsAdmin bool
}
