package directorysdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListRoles returns every role. Requires directory:read.
func (c *Client) ListRoles(ctx context.Context) ([]Role, error) {
	return execute(c, func() ([]Role, error) {
		resp, err := c.doRequest(ctx, http.MethodGet, "/v1/roles", nil, ScopeRead)
		if err != nil {
			return nil, err
		}

		var out ListRolesResponse
		if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
			return nil, err
		}
		return out.Roles, nil
	})
}

// GetRole fetches role id. Requires directory:read.
func (c *Client) GetRole(ctx context.Context, id string) (*Role, error) {
	return execute(c, func() (*Role, error) {
		resp, err := c.doRequest(ctx, http.MethodGet, "/v1/roles/"+url.PathEscape(id), nil, ScopeRead)
		if err != nil {
			return nil, err
		}

		var out Role
		if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// CreateRole adds a role. Requires directory:write.
func (c *Client) CreateRole(ctx context.Context, req CreateRoleRequest) (*Role, error) {
	return execute(c, func() (*Role, error) {
		resp, err := c.doRequest(ctx, http.MethodPost, "/v1/roles", req, ScopeWrite)
		if err != nil {
			return nil, err
		}

		var out Role
		if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// UpdateRole replaces the permissions of role id. Requires directory:write.
func (c *Client) UpdateRole(ctx context.Context, id string, req UpdateRoleRequest) (*Role, error) {
	return execute(c, func() (*Role, error) {
		resp, err := c.doRequest(ctx, http.MethodPut, "/v1/roles/"+url.PathEscape(id), req, ScopeWrite)
		if err != nil {
			return nil, err
		}

		var out Role
		if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// DeleteRole removes role id. The directory refuses while users hold the
// role. Requires directory:write.
func (c *Client) DeleteRole(ctx context.Context, id string) error {
	_, err := execute(c, func() (struct{}, error) {
		resp, err := c.doRequest(ctx, http.MethodDelete, "/v1/roles/"+url.PathEscape(id), nil, ScopeWrite)
		if err != nil {
			return struct{}{}, err
		}
		return struct{}{}, checkStatusNoContent(resp)
	})
	return err
}
