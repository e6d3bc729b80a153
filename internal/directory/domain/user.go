package domain

import "time"

type User struct {
	ID     string
	Name   string
	RoleID string // Foreign key to roles

	// RoleName is filled in by list queries that join roles.
	RoleName string

	CreatedAt time.Time
	UpdatedAt time.Time
}
