package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/aussiebroadwan/rolesconsole/internal/console/summary"
	"github.com/aussiebroadwan/rolesconsole/pkg/directorysdk"
	"github.com/aussiebroadwan/rolesconsole/pkg/slogx"
	"github.com/stretchr/testify/require"
)

// memDirectory is an in-memory Directory with directory-like error codes.
type memDirectory struct {
	mu      sync.Mutex
	users   []directorysdk.User
	roles   []directorysdk.Role
	nextID  int
	listErr error
}

func newMemDirectory() *memDirectory {
	return &memDirectory{
		users: []directorysdk.User{
			{ID: "u1", Name: "ann", Role: "admin"},
			{ID: "u2", Name: "bob", Role: "admin"},
			{ID: "u3", Name: "cat", Role: "viewer"},
		},
		roles: []directorysdk.Role{
			{ID: "r1", Name: "admin", Permissions: []string{"read", "write"}},
			{ID: "r2", Name: "editor", Permissions: []string{}},
		},
	}
}

func (m *memDirectory) ListUsers(context.Context) ([]directorysdk.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]directorysdk.User(nil), m.users...), nil
}

func (m *memDirectory) ListRoles(context.Context) ([]directorysdk.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]directorysdk.Role(nil), m.roles...), nil
}

func (m *memDirectory) GetRole(_ context.Context, id string) (*directorysdk.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.roles {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, &directorysdk.APIError{StatusCode: http.StatusNotFound, Code: directorysdk.ErrorCodeNotFound}
}

func (m *memDirectory) CreateRole(_ context.Context, req directorysdk.CreateRoleRequest) (*directorysdk.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if strings.TrimSpace(req.Name) == "" {
		return nil, &directorysdk.APIError{StatusCode: http.StatusBadRequest, Code: directorysdk.ErrorCodeInvalidRequest, Description: "role name is required"}
	}
	for _, r := range m.roles {
		if r.Name == req.Name {
			return nil, &directorysdk.APIError{StatusCode: http.StatusConflict, Code: directorysdk.ErrorCodeAlreadyExists}
		}
	}
	m.nextID++
	role := directorysdk.Role{ID: "new" + string(rune('0'+m.nextID)), Name: req.Name, Permissions: req.Permissions}
	m.roles = append(m.roles, role)
	return &role, nil
}

func (m *memDirectory) UpdateRole(_ context.Context, id string, req directorysdk.UpdateRoleRequest) (*directorysdk.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.roles {
		if r.ID == id {
			if req.Name != "" && req.Name != r.Name {
				return nil, &directorysdk.APIError{StatusCode: http.StatusConflict, Code: directorysdk.ErrorCodeRenameNotAllowed}
			}
			m.roles[i].Permissions = req.Permissions
			return &m.roles[i], nil
		}
	}
	return nil, &directorysdk.APIError{StatusCode: http.StatusNotFound, Code: directorysdk.ErrorCodeNotFound}
}

func (m *memDirectory) DeleteRole(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.roles {
		if r.ID != id {
			continue
		}
		for _, u := range m.users {
			if u.Role == r.Name {
				return &directorysdk.APIError{StatusCode: http.StatusConflict, Code: directorysdk.ErrorCodeRoleInUse}
			}
		}
		m.roles = append(m.roles[:i], m.roles[i+1:]...)
		return nil
	}
	return &directorysdk.APIError{StatusCode: http.StatusNotFound, Code: directorysdk.ErrorCodeNotFound}
}

func (m *memDirectory) role(name string) (directorysdk.Role, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.roles {
		if r.Name == name {
			return r, true
		}
	}
	return directorysdk.Role{}, false
}

func newTestServer(t *testing.T, dir *memDirectory) *httptest.Server {
	t.Helper()

	router, err := NewRouter(dir, summary.NewView(dir), "test", slogx.Discard())
	require.NoError(t, err)
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// noRedirect returns a client that reports redirects instead of following them.
func noRedirect() *http.Client {
	return &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestDashboard(t *testing.T) {
	dir := newMemDirectory()
	srv := newTestServer(t, dir)

	t.Run("root redirects", func(t *testing.T) {
		resp, err := noRedirect().Get(srv.URL + "/")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Equal(t, "/dashboard", resp.Header.Get("Location"))
	})

	t.Run("page renders cards", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/dashboard")
		require.NoError(t, err)
		body := readBody(t, resp)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, body, "Total Users")
		require.Contains(t, body, "Total Roles")
		require.Contains(t, body, "Total Permissions")
		require.Contains(t, body, `href="/dashboard/cards/users"`)
		require.Contains(t, body, "Last updated:")
		require.NotContains(t, body, "Retry")
	})

	t.Run("snapshot json", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/dashboard")
		require.NoError(t, err)
		defer resp.Body.Close()

		var snap SnapshotResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
		require.False(t, snap.Loading)
		require.Equal(t, 3, snap.Stats.TotalUsers)
		require.Equal(t, 2, snap.Stats.TotalRoles)
		require.Equal(t, 2, snap.Stats.TotalPermissions)
		require.Equal(t, []summary.RoleCount{{Role: "admin", Users: 2}, {Role: "editor", Users: 0}}, snap.Stats.PerRole)
		require.Len(t, snap.Cards, 3)
		require.NotNil(t, snap.UpdatedAt)
		require.Empty(t, snap.Error)
	})

	t.Run("cards navigate", func(t *testing.T) {
		for key, want := range map[string]string{"users": "/users", "roles": "/roles", "permissions": "/roles"} {
			resp, err := noRedirect().Get(srv.URL + "/dashboard/cards/" + key)
			require.NoError(t, err)
			resp.Body.Close()
			require.Equal(t, http.StatusFound, resp.StatusCode)
			require.Equal(t, want, resp.Header.Get("Location"))
		}

		resp, err := noRedirect().Get(srv.URL + "/dashboard/cards/bogus")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("failure keeps numbers and offers retry", func(t *testing.T) {
		dir.mu.Lock()
		dir.listErr = &directorysdk.APIError{StatusCode: http.StatusBadGateway, Code: directorysdk.ErrorCodeServerError}
		dir.mu.Unlock()
		defer func() {
			dir.mu.Lock()
			dir.listErr = nil
			dir.mu.Unlock()
		}()

		resp, err := http.Get(srv.URL + "/api/v1/dashboard")
		require.NoError(t, err)
		var snap SnapshotResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
		resp.Body.Close()
		require.NotEmpty(t, snap.Error)
		require.Equal(t, 3, snap.Stats.TotalUsers)

		resp, err = http.Get(srv.URL + "/dashboard")
		require.NoError(t, err)
		body := readBody(t, resp)
		require.Contains(t, body, "Retry")
		require.Contains(t, body, `action="/dashboard/refresh"`)
	})

	t.Run("refresh redirects back", func(t *testing.T) {
		resp, err := noRedirect().Post(srv.URL+"/dashboard/refresh", "", nil)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		require.Equal(t, "/dashboard", resp.Header.Get("Location"))
	})
}

func postForm(t *testing.T, srv *httptest.Server, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := noRedirect().PostForm(srv.URL+path, form)
	require.NoError(t, err)
	return resp
}

func TestRoleForm(t *testing.T) {
	dir := newMemDirectory()
	srv := newTestServer(t, dir)

	t.Run("new form", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/roles/new")
		require.NoError(t, err)
		body := readBody(t, resp)
		require.Contains(t, body, "Add New Role")
		require.Contains(t, body, "Add Role")
		require.NotContains(t, body, "disabled")
		require.Less(t, strings.Index(body, "Read"), strings.Index(body, "Write"))
		require.Less(t, strings.Index(body, "Write"), strings.Index(body, "Delete"))
	})

	t.Run("edit form locks name", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/roles/r1/edit")
		require.NoError(t, err)
		body := readBody(t, resp)
		require.Contains(t, body, "Edit Role")
		require.Contains(t, body, "Save Changes")
		require.Contains(t, body, `value="admin" disabled`)
	})

	t.Run("edit missing role", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/roles/nope/edit")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("create", func(t *testing.T) {
		resp := postForm(t, srv, "/roles/form", url.Values{
			"name":        {"ops"},
			"permissions": {"delete", "read"},
			"action":      {"save"},
		})
		resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		require.Equal(t, "/roles", resp.Header.Get("Location"))

		ops, ok := dir.role("ops")
		require.True(t, ok)
		require.Equal(t, []string{"read", "delete"}, ops.Permissions)
	})

	t.Run("update ignores posted name", func(t *testing.T) {
		resp := postForm(t, srv, "/roles/form", url.Values{
			"id":          {"r2"},
			"name":        {"renamed"},
			"permissions": {"write"},
			"action":      {"save"},
		})
		resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)

		editor, ok := dir.role("editor")
		require.True(t, ok)
		require.Equal(t, []string{"write"}, editor.Permissions)
		_, ok = dir.role("renamed")
		require.False(t, ok)
	})

	t.Run("save error re-renders form", func(t *testing.T) {
		resp := postForm(t, srv, "/roles/form", url.Values{
			"name":        {"admin"},
			"permissions": {"read"},
			"action":      {"save"},
		})
		body := readBody(t, resp)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		require.Contains(t, body, "already exists")
		require.Contains(t, body, "Add New Role")
		require.Contains(t, body, `value="read" checked`)
	})

	t.Run("unknown permission", func(t *testing.T) {
		resp := postForm(t, srv, "/roles/form", url.Values{
			"name":        {"x"},
			"permissions": {"execute"},
			"action":      {"save"},
		})
		resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_, ok := dir.role("x")
		require.False(t, ok)
	})

	t.Run("toggle re-renders without saving", func(t *testing.T) {
		resp := postForm(t, srv, "/roles/form", url.Values{
			"name":        {"draft"},
			"permissions": {"write"},
			"action":      {"toggle"},
		})
		body := readBody(t, resp)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, body, `value="write" checked`)
		_, ok := dir.role("draft")
		require.False(t, ok)
	})

	t.Run("cancel discards", func(t *testing.T) {
		resp := postForm(t, srv, "/roles/form", url.Values{
			"name":   {"temp"},
			"action": {"cancel"},
		})
		resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		_, ok := dir.role("temp")
		require.False(t, ok)
	})
}

func TestListsAndDelete(t *testing.T) {
	dir := newMemDirectory()
	srv := newTestServer(t, dir)

	resp, err := http.Get(srv.URL + "/users")
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Contains(t, body, "ann")
	require.Contains(t, body, "viewer")

	resp, err = http.Get(srv.URL + "/roles")
	require.NoError(t, err)
	body = readBody(t, resp)
	require.Contains(t, body, "read, write")

	t.Run("in use role is kept", func(t *testing.T) {
		resp := postForm(t, srv, "/roles/r1/delete", nil)
		resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		require.Contains(t, resp.Header.Get("Location"), "/roles?error=")
		_, ok := dir.role("admin")
		require.True(t, ok)
	})

	t.Run("unused role is deleted", func(t *testing.T) {
		resp := postForm(t, srv, "/roles/r2/delete", nil)
		resp.Body.Close()
		require.Equal(t, "/roles", resp.Header.Get("Location"))
		_, ok := dir.role("editor")
		require.False(t, ok)
	})
}

func TestSystemEndpoints(t *testing.T) {
	srv := newTestServer(t, newMemDirectory())

	resp, err := http.Get(srv.URL + "/livez")
	require.NoError(t, err)
	var health directorysdk.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	require.Equal(t, "ok", health.Status)

	// Populate the fetch histogram before scraping.
	resp, err = http.Get(srv.URL + "/api/v1/dashboard")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Contains(t, body, "rolesconsole_summary_fetch_duration_seconds")
}

func TestRefreshUsesWriteLimit(t *testing.T) {
	srv := newTestServer(t, newMemDirectory())

	var last int
	for range 11 {
		resp, err := noRedirect().Post(srv.URL+"/dashboard/refresh", "", nil)
		require.NoError(t, err)
		resp.Body.Close()
		last = resp.StatusCode
	}
	require.Equal(t, http.StatusTooManyRequests, last)

	// Page loads keep their own, larger budget.
	resp, err := http.Get(srv.URL + "/dashboard")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
