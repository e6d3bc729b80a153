package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/rolesconsole/internal/directory/domain"
	"github.com/aussiebroadwan/rolesconsole/internal/directory/store"
)

type usersRepo struct {
	q *queries
}

func (r *usersRepo) ListAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.q.listAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, len(rows))
	for i, row := range rows {
		users[i] = mapUser(row)
	}
	return users, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.getUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}
	return mapConstraint(r.q.createUser(ctx, userRow{
		ID:        u.ID,
		Name:      u.Name,
		RoleID:    u.RoleID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}))
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) error {
	n, err := r.q.deleteUser(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) CountByRole(ctx context.Context, roleID string) (int, error) {
	n, err := r.q.countUsersByRole(ctx, roleID)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
