package models

import "time"

// Role represents an access role users and role-scoped documents reference
type Role struct {
	ID        int       `json:"id"`
	RoleTitle string    `json:"roleTitle"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AdminRoleTitle is the role title that grants full access to every operation
const AdminRoleTitle = "admin"

// RegularRoleTitle is the default role assigned to new users
const RegularRoleTitle = "regular"

// CreateRoleRequest represents the payload for creating a role
type CreateRoleRequest struct {
	RoleTitle string `json:"roleTitle"`
}
