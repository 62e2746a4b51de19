package models

import "time"

// User represents a registered user in the system
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	RoleID       int       `json:"roleId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RegisterRequest represents the payload for user registration
type RegisterRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	RoleID    int    `json:"roleId"`
}

// LoginRequest represents the payload for user login
type LoginRequest struct {
	Login    string `json:"login"` // email or username
	Password string `json:"password"`
}

// UpdateUserRequest represents the payload for updating a user profile.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}
