package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/rolesconsole/internal/directory/domain"
	"github.com/aussiebroadwan/rolesconsole/internal/directory/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newServices(t *testing.T) (*RolesService, *UsersService) {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	return &RolesService{Store: s}, &UsersService{Store: s}
}

func TestRolesServiceCreate(t *testing.T) {
	ctx := context.Background()
	roles, _ := newServices(t)

	t.Run("trims name and normalizes permissions", func(t *testing.T) {
		r, err := roles.Create(ctx, "  editor ", []string{"write", "read", "write"})
		require.NoError(t, err)
		require.Equal(t, "editor", r.Name)
		require.Equal(t, []domain.Permission{domain.PermissionRead, domain.PermissionWrite}, r.Permissions)
		require.NotEmpty(t, r.ID)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := roles.Create(ctx, "   ", nil)
		require.ErrorIs(t, err, ErrRoleNameRequired)
	})

	t.Run("unknown permission", func(t *testing.T) {
		_, err := roles.Create(ctx, "odd", []string{"execute"})
		require.ErrorIs(t, err, ErrInvalidPermission)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := roles.Create(ctx, "editor", nil)
		require.ErrorIs(t, err, ErrRoleNameTaken)
	})
}

func TestRolesServiceUpdate(t *testing.T) {
	ctx := context.Background()
	roles, _ := newServices(t)

	r, err := roles.Create(ctx, "editor", []string{"read"})
	require.NoError(t, err)

	t.Run("replaces permissions", func(t *testing.T) {
		got, err := roles.Update(ctx, r.ID, "editor", []string{"delete", "read"})
		require.NoError(t, err)
		require.Equal(t, []domain.Permission{domain.PermissionRead, domain.PermissionDelete}, got.Permissions)
	})

	t.Run("empty name keeps current name", func(t *testing.T) {
		got, err := roles.Update(ctx, r.ID, "", nil)
		require.NoError(t, err)
		require.Equal(t, "editor", got.Name)
		require.Empty(t, got.Permissions)
	})

	t.Run("rename rejected", func(t *testing.T) {
		_, err := roles.Update(ctx, r.ID, "writer", nil)
		require.ErrorIs(t, err, ErrRenameNotAllowed)
	})

	t.Run("missing role", func(t *testing.T) {
		_, err := roles.Update(ctx, "missing", "", nil)
		require.ErrorIs(t, err, ErrRoleNotFound)
	})
}

func TestRolesServiceDelete(t *testing.T) {
	ctx := context.Background()
	roles, users := newServices(t)

	r, err := roles.Create(ctx, "viewer", []string{"read"})
	require.NoError(t, err)
	u, err := users.Create(ctx, "alice", "viewer")
	require.NoError(t, err)

	require.ErrorIs(t, roles.Delete(ctx, r.ID), ErrRoleInUse)

	require.NoError(t, users.Delete(ctx, u.ID))
	require.NoError(t, roles.Delete(ctx, r.ID))
	require.ErrorIs(t, roles.Delete(ctx, r.ID), ErrRoleNotFound)
}

func TestRolesServiceSeedDefaults(t *testing.T) {
	ctx := context.Background()
	roles, _ := newServices(t)

	seeded, err := roles.SeedDefaults(ctx)
	require.NoError(t, err)
	require.True(t, seeded)

	all, err := roles.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	seeded, err = roles.SeedDefaults(ctx)
	require.NoError(t, err)
	require.False(t, seeded)
}

func TestUsersService(t *testing.T) {
	ctx := context.Background()
	roles, users := newServices(t)

	_, err := roles.SeedDefaults(ctx)
	require.NoError(t, err)

	t.Run("create joins role name", func(t *testing.T) {
		u, err := users.Create(ctx, "bob", "admin")
		require.NoError(t, err)
		require.Equal(t, "admin", u.RoleName)

		all, err := users.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := users.Create(ctx, "carol", "Admin")
		require.ErrorIs(t, err, ErrUnknownRole)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := users.Create(ctx, "", "admin")
		require.ErrorIs(t, err, ErrUserNameRequired)
	})

	t.Run("delete missing", func(t *testing.T) {
		require.ErrorIs(t, users.Delete(ctx, "missing"), ErrUserNotFound)
	})
}
