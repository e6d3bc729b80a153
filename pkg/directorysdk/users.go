package directorysdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListUsers returns every user. Requires directory:read.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	return execute(c, func() ([]User, error) {
		resp, err := c.doRequest(ctx, http.MethodGet, "/v1/users", nil, ScopeRead)
		if err != nil {
			return nil, err
		}

		var out ListUsersResponse
		if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
			return nil, err
		}
		return out.Users, nil
	})
}

// CreateUser adds a user with the named role. Requires directory:write.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	return execute(c, func() (*User, error) {
		resp, err := c.doRequest(ctx, http.MethodPost, "/v1/users", req, ScopeWrite)
		if err != nil {
			return nil, err
		}

		var out User
		if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// DeleteUser removes user id. Requires directory:write.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := execute(c, func() (struct{}, error) {
		resp, err := c.doRequest(ctx, http.MethodDelete, "/v1/users/"+url.PathEscape(id), nil, ScopeWrite)
		if err != nil {
			return struct{}{}, err
		}
		return struct{}{}, checkStatusNoContent(resp)
	})
	return err
}
