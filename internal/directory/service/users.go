package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/rolesconsole/internal/directory/domain"
	"github.com/aussiebroadwan/rolesconsole/internal/directory/store"
	"github.com/aussiebroadwan/rolesconsole/pkg/idx"
	"github.com/aussiebroadwan/rolesconsole/pkg/slogx"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserNameRequired = errors.New("user name is required")
	ErrUnknownRole      = errors.New("unknown role")
)

type UsersService struct {
	Store store.Store
}

// ListAll returns every user with its role name resolved.
func (s *UsersService) ListAll(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListAll(ctx)
}

// Create adds a user assigned to the role called roleName.
func (s *UsersService) Create(ctx context.Context, name, roleName string) (domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.User{}, ErrUserNameRequired
	}

	var user domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		role, err := tx.Roles().GetRoleByName(ctx, roleName)
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnknownRole
		}
		if err != nil {
			return err
		}

		user = domain.User{
			ID:     idx.New().String(),
			Name:   name,
			RoleID: role.ID,
		}
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrUnknownRole
			}
			return err
		}
		user, err = tx.Users().GetUserByID(ctx, user.ID)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user created",
		slog.String("user_id", user.ID),
		slog.String("role", user.RoleName),
	)
	return user, nil
}

func (s *UsersService) Delete(ctx context.Context, id string) error {
	err := s.Store.Users().DeleteUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
