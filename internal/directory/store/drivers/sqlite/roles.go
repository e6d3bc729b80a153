package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/rolesconsole/internal/directory/domain"
	"github.com/aussiebroadwan/rolesconsole/internal/directory/store"
)

type rolesRepo struct {
	q *queries
}

func (r *rolesRepo) GetRoleByID(ctx context.Context, id string) (domain.Role, error) {
	row, err := r.q.getRoleByID(ctx, id)
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return mapRole(row), nil
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	row, err := r.q.getRoleByName(ctx, name)
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return mapRole(row), nil
}

func (r *rolesRepo) ListAll(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.q.listAllRoles(ctx)
	if err != nil {
		return nil, err
	}

	roles := make([]domain.Role, len(rows))
	for i, row := range rows {
		roles[i] = mapRole(row)
	}
	return roles, nil
}

func (r *rolesRepo) CreateRole(ctx context.Context, role domain.Role) error {
	now := time.Now().UTC()
	if role.CreatedAt.IsZero() {
		role.CreatedAt = now
	}
	if role.UpdatedAt.IsZero() {
		role.UpdatedAt = role.CreatedAt
	}
	return mapConstraint(r.q.createRole(ctx, roleRow{
		ID:          role.ID,
		Name:        role.Name,
		Permissions: joinPermissions(role.Permissions),
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}))
}

func (r *rolesRepo) UpdateRolePermissions(ctx context.Context, id string, perms []domain.Permission) error {
	n, err := r.q.updateRolePermissions(ctx, id, joinPermissions(perms), time.Now().UTC())
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *rolesRepo) DeleteRole(ctx context.Context, id string) error {
	n, err := r.q.deleteRole(ctx, id)
	if err != nil {
		return mapConstraint(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *rolesRepo) IsEmpty(ctx context.Context) (bool, error) {
	count, err := r.q.countRoles(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
