package directorysdk

// Scopes understood by the directory.
const (
	ScopeRead  = "directory:read"
	ScopeWrite = "directory:write"
)

// Permission values a role may carry.
const (
	PermissionRead   = "read"
	PermissionWrite  = "write"
	PermissionDelete = "delete"
)

// ============================================================================
// Users
// ============================================================================

// User is a directory user. Role is the role name; RoleID is the reference
// the directory enforces.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	RoleID string `json:"role_id,omitempty"`
	Role   string `json:"role"`
}

// ListUsersResponse is returned by GET /v1/users.
type ListUsersResponse struct {
	Users []User `json:"users"`
}

// CreateUserRequest is the body of POST /v1/users.
type CreateUserRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// ============================================================================
// Roles
// ============================================================================

// Role is a named set of permissions.
type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// ListRolesResponse is returned by GET /v1/roles.
type ListRolesResponse struct {
	Roles []Role `json:"roles"`
}

// CreateRoleRequest is the body of POST /v1/roles.
type CreateRoleRequest struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// UpdateRoleRequest is the body of PUT /v1/roles/{id}. Name may be empty;
// when set it must equal the current name.
type UpdateRoleRequest struct {
	Name        string   `json:"name,omitempty"`
	Permissions []string `json:"permissions"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports dependency status on /readyz.
type HealthChecks struct {
	Database string `json:"database"`
}
