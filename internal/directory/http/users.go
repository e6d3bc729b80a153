package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/rolesconsole/internal/directory/domain"
	"github.com/aussiebroadwan/rolesconsole/internal/directory/service"
	"github.com/aussiebroadwan/rolesconsole/pkg/directorysdk"
	"github.com/aussiebroadwan/rolesconsole/pkg/httpx"
)

type UsersHandler struct {
	UsersService *service.UsersService
}

func toUserInfo(u domain.User) directorysdk.User {
	return directorysdk.User{ID: u.ID, Name: u.Name, RoleID: u.RoleID, Role: u.RoleName}
}

// HandleList handles GET /v1/users
//
//	@Summary		List all users
//	@Description	Returns every user with the name of its role. Requires directory:read scope.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	directorysdk.ListUsersResponse	"List of users"
//	@Failure		401	{object}	httpx.ErrorResponse				"error, error_description"
//	@Failure		403	{object}	httpx.ErrorResponse				"error, error_description"
//	@Failure		500	{object}	httpx.ErrorResponse				"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UsersService.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "list users")
		return
	}

	resp := directorysdk.ListUsersResponse{Users: make([]directorysdk.User, len(users))}
	for i, u := range users {
		resp.Users[i] = toUserInfo(u)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCreate handles POST /v1/users
//
//	@Summary		Create a user
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		directorysdk.CreateUserRequest	true	"User name and role name"
//	@Success		201		{object}	directorysdk.User				"Created user"
//	@Failure		400		{object}	httpx.ErrorResponse				"error, error_description"
//	@Failure		401		{object}	httpx.ErrorResponse				"error, error_description"
//	@Failure		403		{object}	httpx.ErrorResponse				"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req directorysdk.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, directorysdk.ErrorCodeInvalidRequest, "Invalid JSON in request body")
		return
	}

	u, err := h.UsersService.Create(r.Context(), req.Name, req.Role)
	if err != nil {
		writeServiceError(w, r, err, "create user")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toUserInfo(u))
}

// HandleDelete handles DELETE /v1/users/{id}
//
//	@Summary		Delete a user
//	@Tags			Users
//	@Param			id	path	string	true	"User ID (ULID)"
//	@Success		204	"User deleted"
//	@Failure		404	{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "user")
	if !ok {
		return
	}

	if err := h.UsersService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "delete user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
