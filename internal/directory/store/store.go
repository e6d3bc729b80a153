package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/rolesconsole/internal/directory/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	// ErrConflict reports a write rejected by a foreign key, e.g. deleting a
	// role that users still reference.
	ErrConflict = errors.New("store: conflicts with existing references")
)

// Store is the root data access interface for the directory. Repositories
// hang off it so transactional code gets the same API through Tx.
type Store interface {
	Users() Users
	Roles() Roles

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller must Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// ListAll returns every user with RoleName resolved, oldest first.
	ListAll(ctx context.Context) ([]domain.User, error)

	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// CreateUser inserts u. RoleID must reference an existing role.
	CreateUser(ctx context.Context, u domain.User) error

	DeleteUser(ctx context.Context, id string) error

	// CountByRole returns how many users reference roleID.
	CountByRole(ctx context.Context, roleID string) (int, error)
}

type Roles interface {
	// ListAll returns every role, oldest first.
	ListAll(ctx context.Context) ([]domain.Role, error)

	GetRoleByID(ctx context.Context, id string) (domain.Role, error)
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// CreateRole inserts r. Names are unique.
	CreateRole(ctx context.Context, r domain.Role) error

	UpdateRolePermissions(ctx context.Context, id string, perms []domain.Permission) error

	DeleteRole(ctx context.Context, id string) error

	IsEmpty(ctx context.Context) (bool, error)
}
