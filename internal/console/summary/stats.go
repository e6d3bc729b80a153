package summary

import "github.com/aussiebroadwan/rolesconsole/pkg/directorysdk"

// RoleCount is the number of users whose role label equals Role.
type RoleCount struct {
	Role  string `json:"role"`
	Users int    `json:"users"`
}

// Stats are derived from one users/roles snapshot and never updated in place.
type Stats struct {
	TotalUsers       int         `json:"total_users"`
	TotalRoles       int         `json:"total_roles"`
	TotalPermissions int         `json:"total_permissions"`
	PerRole          []RoleCount `json:"per_role"`
}

// Compute derives Stats from users and roles. Per-role counts follow the
// order of roles and match user role labels against role names exactly.
// Duplicate permissions within a role are counted; nil lists count zero.
func Compute(users []directorysdk.User, roles []directorysdk.Role) Stats {
	s := Stats{
		TotalUsers: len(users),
		TotalRoles: len(roles),
		PerRole:    make([]RoleCount, 0, len(roles)),
	}

	for _, r := range roles {
		s.TotalPermissions += len(r.Permissions)

		n := 0
		for _, u := range users {
			if u.Role == r.Name {
				n++
			}
		}
		s.PerRole = append(s.PerRole, RoleCount{Role: r.Name, Users: n})
	}
	return s
}

// UsersInRole returns the per-role count for name, or zero when no role of
// that name exists.
func (s Stats) UsersInRole(name string) int {
	for _, rc := range s.PerRole {
		if rc.Role == name {
			return rc.Users
		}
	}
	return 0
}
