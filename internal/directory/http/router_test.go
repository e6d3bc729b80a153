package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/rolesconsole/internal/directory/store/drivers/sqlite"
	"github.com/aussiebroadwan/rolesconsole/pkg/directorysdk"
	"github.com/aussiebroadwan/rolesconsole/pkg/jwtx"
	"github.com/aussiebroadwan/rolesconsole/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const issuer = "rolesconsole"

func newTestServer(t *testing.T) (*httptest.Server, *jwtx.HS256) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	signer, err := jwtx.NewHS256("router-test-secret", issuer)
	require.NoError(t, err)

	router := NewRouter(signer, "test", st, slogx.Discard())
	router.ApplyRoutes()

	_, err = router.RolesService.SeedDefaults(context.Background())
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, signer
}

func TestRolesAndUsersThroughSDK(t *testing.T) {
	srv, signer := newTestServer(t)
	ctx := context.Background()
	c := directorysdk.NewClient(srv.URL, signer)

	roles, err := c.ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	require.Equal(t, "admin", roles[0].Name)
	require.Equal(t, []string{"read", "write", "delete"}, roles[0].Permissions)

	editor, err := c.CreateRole(ctx, directorysdk.CreateRoleRequest{Name: "editor", Permissions: []string{"write", "read"}})
	require.NoError(t, err)
	require.Equal(t, []string{"read", "write"}, editor.Permissions)

	t.Run("duplicate role", func(t *testing.T) {
		_, err := c.CreateRole(ctx, directorysdk.CreateRoleRequest{Name: "editor"})
		var apiErr *directorysdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusConflict, apiErr.StatusCode)
		require.Equal(t, directorysdk.ErrorCodeAlreadyExists, apiErr.Code)
	})

	t.Run("rename rejected", func(t *testing.T) {
		_, err := c.UpdateRole(ctx, editor.ID, directorysdk.UpdateRoleRequest{Name: "writer"})
		var apiErr *directorysdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, directorysdk.ErrorCodeRenameNotAllowed, apiErr.Code)
	})

	t.Run("unknown permission", func(t *testing.T) {
		_, err := c.UpdateRole(ctx, editor.ID, directorysdk.UpdateRoleRequest{Permissions: []string{"execute"}})
		var apiErr *directorysdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	})

	t.Run("role in use", func(t *testing.T) {
		u, err := c.CreateUser(ctx, directorysdk.CreateUserRequest{Name: "alice", Role: "editor"})
		require.NoError(t, err)
		require.Equal(t, "editor", u.Role)
		require.Equal(t, editor.ID, u.RoleID)

		err = c.DeleteRole(ctx, editor.ID)
		var apiErr *directorysdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, directorysdk.ErrorCodeRoleInUse, apiErr.Code)

		require.NoError(t, c.DeleteUser(ctx, u.ID))
		require.NoError(t, c.DeleteRole(ctx, editor.ID))

		_, err = c.GetRole(ctx, editor.ID)
		require.True(t, directorysdk.IsNotFound(err))
	})
}

func TestMalformedIDsAreNotFound(t *testing.T) {
	srv, signer := newTestServer(t)
	ctx := context.Background()
	c := directorysdk.NewClient(srv.URL, signer)

	_, err := c.GetRole(ctx, "not-a-ulid")
	var apiErr *directorysdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, directorysdk.ErrorCodeNotFound, apiErr.Code)

	_, err = c.UpdateRole(ctx, "not-a-ulid", directorysdk.UpdateRoleRequest{Permissions: []string{"read"}})
	require.True(t, directorysdk.IsNotFound(err))
	require.True(t, directorysdk.IsNotFound(c.DeleteRole(ctx, "not-a-ulid")))
	require.True(t, directorysdk.IsNotFound(c.DeleteUser(ctx, "not-a-ulid")))

	// A well formed id that names nothing still reaches the store.
	_, err = c.GetRole(ctx, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV")
	require.True(t, directorysdk.IsNotFound(err))
}

func TestAuthRequired(t *testing.T) {
	srv, signer := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/v1/users")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("read scope cannot write", func(t *testing.T) {
		token, err := signer.Mint("reader", directorysdk.ScopeRead)
		require.NoError(t, err)

		req, err := http.NewRequest(http.MethodDelete, srv.URL+"/v1/users/anything", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestHealth(t *testing.T) {
	srv, signer := newTestServer(t)
	c := directorysdk.NewClient(srv.URL, signer)

	live, err := c.GetLiveness(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := c.GetReadiness(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Checks.Database)
}
