package sqlite

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/rolesconsole/internal/directory/domain"
	"github.com/aussiebroadwan/rolesconsole/internal/directory/store"
	"github.com/aussiebroadwan/rolesconsole/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRolesRepo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	empty, err := s.Roles().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	admin := domain.Role{
		ID:          idx.New().String(),
		Name:        "admin",
		Permissions: []domain.Permission{domain.PermissionRead, domain.PermissionWrite},
	}
	require.NoError(t, s.Roles().CreateRole(ctx, admin))

	t.Run("get by id and name", func(t *testing.T) {
		got, err := s.Roles().GetRoleByID(ctx, admin.ID)
		require.NoError(t, err)
		require.Equal(t, "admin", got.Name)
		require.Equal(t, admin.Permissions, got.Permissions)

		got, err = s.Roles().GetRoleByName(ctx, "admin")
		require.NoError(t, err)
		require.Equal(t, admin.ID, got.ID)
	})

	t.Run("duplicate name", func(t *testing.T) {
		err := s.Roles().CreateRole(ctx, domain.Role{ID: idx.New().String(), Name: "admin"})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("update permissions", func(t *testing.T) {
		require.NoError(t, s.Roles().UpdateRolePermissions(ctx, admin.ID, nil))
		got, err := s.Roles().GetRoleByID(ctx, admin.ID)
		require.NoError(t, err)
		require.Empty(t, got.Permissions)

		err = s.Roles().UpdateRolePermissions(ctx, "missing", nil)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("missing role", func(t *testing.T) {
		_, err := s.Roles().GetRoleByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, s.Roles().DeleteRole(ctx, "missing"), store.ErrNotFound)
	})
}

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	role := domain.Role{ID: idx.New().String(), Name: "viewer", Permissions: []domain.Permission{domain.PermissionRead}}
	require.NoError(t, s.Roles().CreateRole(ctx, role))

	u := domain.User{ID: idx.New().String(), Name: "alice", RoleID: role.ID}
	require.NoError(t, s.Users().CreateUser(ctx, u))

	t.Run("list joins role name", func(t *testing.T) {
		users, err := s.Users().ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		require.Equal(t, "viewer", users[0].RoleName)
		require.Equal(t, role.ID, users[0].RoleID)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		err := s.Users().CreateUser(ctx, domain.User{ID: idx.New().String(), Name: "bob", RoleID: "nope"})
		require.ErrorIs(t, err, store.ErrConflict)
	})

	t.Run("role in use cannot be deleted", func(t *testing.T) {
		n, err := s.Users().CountByRole(ctx, role.ID)
		require.NoError(t, err)
		require.Equal(t, 1, n)

		require.ErrorIs(t, s.Roles().DeleteRole(ctx, role.ID), store.ErrConflict)
	})

	t.Run("delete user then role", func(t *testing.T) {
		require.NoError(t, s.Users().DeleteUser(ctx, u.ID))
		require.ErrorIs(t, s.Users().DeleteUser(ctx, u.ID), store.ErrNotFound)
		require.NoError(t, s.Roles().DeleteRole(ctx, role.ID))
	})
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Roles().CreateRole(ctx, domain.Role{ID: idx.New().String(), Name: "temp"}))
		return store.ErrConflict
	})
	require.ErrorIs(t, err, store.ErrConflict)

	empty, err := s.Roles().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)
}
