package services

import (
	"testing"

	"github.com/docuvault/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAccessPolicy_CanRead(t *testing.T) {
	policy := NewAccessPolicy()

	owner := models.Identity{UserID: 1, RoleID: 2}
	admin := models.Identity{UserID: 9, RoleID: 1, IsAdmin: true}
	sameRole := models.Identity{UserID: 3, RoleID: 2}
	otherRole := models.Identity{UserID: 4, RoleID: 3}

	tests := []struct {
		name     string
		doc      models.Document
		identity models.Identity
		expected bool
	}{
		{
			name:     "public document readable by anyone",
			doc:      models.Document{OwnerID: 1, Access: models.AccessPublic},
			identity: otherRole,
			expected: true,
		},
		{
			name:     "private document readable by owner",
			doc:      models.Document{OwnerID: 1, Access: models.AccessPrivate},
			identity: owner,
			expected: true,
		},
		{
			name:     "private document readable by admin",
			doc:      models.Document{OwnerID: 1, Access: models.AccessPrivate},
			identity: admin,
			expected: true,
		},
		{
			name:     "private document hidden from others",
			doc:      models.Document{OwnerID: 1, Access: models.AccessPrivate},
			identity: sameRole,
			expected: false,
		},
		{
			name:     "role document readable by same role",
			doc:      models.Document{OwnerID: 1, Access: models.AccessRole, RoleID: 2},
			identity: sameRole,
			expected: true,
		},
		{
			name:     "role document hidden from other roles",
			doc:      models.Document{OwnerID: 1, Access: models.AccessRole, RoleID: 2},
			identity: otherRole,
			expected: false,
		},
		{
			name:     "role document readable by owner regardless of role",
			doc:      models.Document{OwnerID: 1, Access: models.AccessRole, RoleID: 5},
			identity: owner,
			expected: true,
		},
		{
			name:     "role document with deleted role matches nobody",
			doc:      models.Document{OwnerID: 1, Access: models.AccessRole, RoleID: 0},
			identity: models.Identity{UserID: 4, RoleID: 0},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, policy.CanRead(&tt.doc, tt.identity))
		})
	}
}

func TestAccessPolicy_CanWriteAndDelete(t *testing.T) {
	policy := NewAccessPolicy()

	tests := []struct {
		name     string
		doc      models.Document
		identity models.Identity
		expected bool
	}{
		{
			name:     "owner can write",
			doc:      models.Document{OwnerID: 1, Access: models.AccessPrivate},
			identity: models.Identity{UserID: 1, RoleID: 2},
			expected: true,
		},
		{
			name:     "admin can write",
			doc:      models.Document{OwnerID: 1, Access: models.AccessPrivate},
			identity: models.Identity{UserID: 9, RoleID: 1, IsAdmin: true},
			expected: true,
		},
		{
			name:     "public access grants read but never write",
			doc:      models.Document{OwnerID: 1, Access: models.AccessPublic},
			identity: models.Identity{UserID: 3, RoleID: 2},
			expected: false,
		},
		{
			name:     "same role grants read but never write",
			doc:      models.Document{OwnerID: 1, Access: models.AccessRole, RoleID: 2},
			identity: models.Identity{UserID: 3, RoleID: 2},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, policy.CanWrite(&tt.doc, tt.identity))
			assert.Equal(t, tt.expected, policy.CanDelete(&tt.doc, tt.identity))
		})
	}
}
