package domain

import (
	"fmt"
	"slices"
	"time"
)

// Permission is a single grant a role can carry.
type Permission string

const (
	PermissionRead   Permission = "read"
	PermissionWrite  Permission = "write"
	PermissionDelete Permission = "delete"
)

// Permissions lists every known permission in display order.
var Permissions = []Permission{PermissionRead, PermissionWrite, PermissionDelete}

// ParsePermission validates s against the known permissions.
func ParsePermission(s string) (Permission, error) {
	p := Permission(s)
	if !slices.Contains(Permissions, p) {
		return "", fmt.Errorf("unknown permission %q", s)
	}
	return p, nil
}

// NormalizePermissions parses raw, drops duplicates and returns the result in
// display order.
func NormalizePermissions(raw []string) ([]Permission, error) {
	seen := make(map[Permission]bool, len(raw))
	for _, s := range raw {
		p, err := ParsePermission(s)
		if err != nil {
			return nil, err
		}
		seen[p] = true
	}

	out := make([]Permission, 0, len(seen))
	for _, p := range Permissions {
		if seen[p] {
			out = append(out, p)
		}
	}
	return out, nil
}

type Role struct {
	ID          string
	Name        string
	Permissions []Permission
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
