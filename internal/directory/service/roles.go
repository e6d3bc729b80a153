package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/rolesconsole/internal/directory/domain"
	"github.com/aussiebroadwan/rolesconsole/internal/directory/store"
	"github.com/aussiebroadwan/rolesconsole/pkg/idx"
	"github.com/aussiebroadwan/rolesconsole/pkg/slogx"
)

var (
	ErrRoleNotFound      = errors.New("role not found")
	ErrRoleNameRequired  = errors.New("role name is required")
	ErrRoleNameTaken     = errors.New("role name already taken")
	ErrInvalidPermission = errors.New("invalid permission")
	ErrRenameNotAllowed  = errors.New("roles cannot be renamed")
	ErrRoleInUse         = errors.New("role is assigned to users")
)

// DefaultRoles are created by SeedDefaults on an empty directory.
var DefaultRoles = []domain.Role{
	{Name: "admin", Permissions: []domain.Permission{domain.PermissionRead, domain.PermissionWrite, domain.PermissionDelete}},
	{Name: "viewer", Permissions: []domain.Permission{domain.PermissionRead}},
}

type RolesService struct {
	Store store.Store
}

// ListAll returns all roles in the system.
func (s *RolesService) ListAll(ctx context.Context) ([]domain.Role, error) {
	return s.Store.Roles().ListAll(ctx)
}

func (s *RolesService) Get(ctx context.Context, id string) (domain.Role, error) {
	role, err := s.Store.Roles().GetRoleByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Role{}, ErrRoleNotFound
	}
	return role, err
}

// Create adds a role. The name is trimmed and must be unique; permissions
// are validated and stored deduplicated in display order.
func (s *RolesService) Create(ctx context.Context, name string, perms []string) (domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Role{}, ErrRoleNameRequired
	}

	normalized, err := domain.NormalizePermissions(perms)
	if err != nil {
		return domain.Role{}, fmt.Errorf("%w: %v", ErrInvalidPermission, err)
	}

	role := domain.Role{
		ID:          idx.New().String(),
		Name:        name,
		Permissions: normalized,
	}
	if err := s.Store.Roles().CreateRole(ctx, role); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Role{}, ErrRoleNameTaken
		}
		return domain.Role{}, err
	}

	slogx.FromContext(ctx).Info("role created",
		slog.String("role_id", role.ID),
		slog.String("name", role.Name),
	)
	return s.Get(ctx, role.ID)
}

// Update replaces the permissions of role id. A non-empty name that differs
// from the stored one is rejected.
func (s *RolesService) Update(ctx context.Context, id, name string, perms []string) (domain.Role, error) {
	normalized, err := domain.NormalizePermissions(perms)
	if err != nil {
		return domain.Role{}, fmt.Errorf("%w: %v", ErrInvalidPermission, err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Roles().GetRoleByID(ctx, id)
		if err != nil {
			return err
		}
		if name = strings.TrimSpace(name); name != "" && name != current.Name {
			return ErrRenameNotAllowed
		}
		return tx.Roles().UpdateRolePermissions(ctx, id, normalized)
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Role{}, ErrRoleNotFound
	}
	if err != nil {
		return domain.Role{}, err
	}

	slogx.FromContext(ctx).Info("role updated", slog.String("role_id", id))
	return s.Get(ctx, id)
}

// Delete removes role id unless users still reference it.
func (s *RolesService) Delete(ctx context.Context, id string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Users().CountByRole(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrRoleInUse
		}
		return tx.Roles().DeleteRole(ctx, id)
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrRoleNotFound
	case errors.Is(err, store.ErrConflict):
		return ErrRoleInUse
	case err != nil:
		return err
	}

	slogx.FromContext(ctx).Info("role deleted", slog.String("role_id", id))
	return nil
}

// SeedDefaults creates DefaultRoles when no roles exist. It reports whether
// anything was written.
func (s *RolesService) SeedDefaults(ctx context.Context) (bool, error) {
	seeded := false
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Roles().IsEmpty(ctx)
		if err != nil || !empty {
			return err
		}
		for _, r := range DefaultRoles {
			r.ID = idx.New().String()
			if err := tx.Roles().CreateRole(ctx, r); err != nil {
				return fmt.Errorf("seed role %q: %w", r.Name, err)
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if seeded {
		slogx.FromContext(ctx).Info("seeded default roles", slog.Int("count", len(DefaultRoles)))
	}
	return seeded, nil
}
