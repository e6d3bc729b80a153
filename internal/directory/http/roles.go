package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/rolesconsole/internal/directory/domain"
	"github.com/aussiebroadwan/rolesconsole/internal/directory/service"
	"github.com/aussiebroadwan/rolesconsole/pkg/directorysdk"
	"github.com/aussiebroadwan/rolesconsole/pkg/httpx"
)

type RolesHandler struct {
	RolesService *service.RolesService
}

func toRoleInfo(r domain.Role) directorysdk.Role {
	perms := make([]string, len(r.Permissions))
	for i, p := range r.Permissions {
		perms[i] = string(p)
	}
	return directorysdk.Role{ID: r.ID, Name: r.Name, Permissions: perms}
}

// HandleList handles GET /v1/roles
//
//	@Summary		List all roles
//	@Description	Returns every role with its permissions. Requires directory:read scope.
//	@Tags			Roles
//	@Produce		json
//	@Success		200	{object}	directorysdk.ListRolesResponse	"List of roles"
//	@Failure		401	{object}	httpx.ErrorResponse				"Unauthorized - missing or invalid token"
//	@Failure		403	{object}	httpx.ErrorResponse				"Forbidden - missing required scope"
//	@Failure		500	{object}	httpx.ErrorResponse				"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/roles [get].
func (h *RolesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	roles, err := h.RolesService.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "list roles")
		return
	}

	resp := directorysdk.ListRolesResponse{Roles: make([]directorysdk.Role, len(roles))}
	for i, role := range roles {
		resp.Roles[i] = toRoleInfo(role)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /v1/roles/{id}
//
//	@Summary		Get a role
//	@Tags			Roles
//	@Produce		json
//	@Param			id	path		string				true	"Role ID (ULID)"
//	@Success		200	{object}	directorysdk.Role	"Role"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/roles/{id} [get].
func (h *RolesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "role")
	if !ok {
		return
	}

	role, err := h.RolesService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "get role")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRoleInfo(role))
}

// HandleCreate handles POST /v1/roles
//
//	@Summary		Create a role
//	@Description	Creates a role. The name is trimmed and must be unique. Permissions are drawn from read, write and delete.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Param			request	body		directorysdk.CreateRoleRequest	true	"Role to create"
//	@Success		201		{object}	directorysdk.Role				"Created role"
//	@Failure		400		{object}	httpx.ErrorResponse				"error, error_description"
//	@Failure		401		{object}	httpx.ErrorResponse				"error, error_description"
//	@Failure		403		{object}	httpx.ErrorResponse				"error, error_description"
//	@Failure		409		{object}	httpx.ErrorResponse				"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/roles [post].
func (h *RolesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req directorysdk.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, directorysdk.ErrorCodeInvalidRequest, "Invalid JSON in request body")
		return
	}

	role, err := h.RolesService.Create(r.Context(), req.Name, req.Permissions)
	if err != nil {
		writeServiceError(w, r, err, "create role")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toRoleInfo(role))
}

// HandleUpdate handles PUT /v1/roles/{id}
//
//	@Summary		Update a role
//	@Description	Replaces the permissions of a role. Roles cannot be renamed.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Role ID (ULID)"
//	@Param			request	body		directorysdk.UpdateRoleRequest	true	"New permissions"
//	@Success		200		{object}	directorysdk.Role				"Updated role"
//	@Failure		400		{object}	httpx.ErrorResponse				"error, error_description"
//	@Failure		404		{object}	httpx.ErrorResponse				"error, error_description"
//	@Failure		409		{object}	httpx.ErrorResponse				"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/roles/{id} [put].
func (h *RolesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "role")
	if !ok {
		return
	}

	var req directorysdk.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, directorysdk.ErrorCodeInvalidRequest, "Invalid JSON in request body")
		return
	}

	role, err := h.RolesService.Update(r.Context(), id, req.Name, req.Permissions)
	if err != nil {
		writeServiceError(w, r, err, "update role")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRoleInfo(role))
}

// HandleDelete handles DELETE /v1/roles/{id}
//
//	@Summary		Delete a role
//	@Description	Deletes a role. Refused with 409 role_in_use while users hold it.
//	@Tags			Roles
//	@Param			id	path	string	true	"Role ID (ULID)"
//	@Success		204	"Role deleted"
//	@Failure		404	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		409	{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/roles/{id} [delete].
func (h *RolesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "role")
	if !ok {
		return
	}

	if err := h.RolesService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "delete role")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
