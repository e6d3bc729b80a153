package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/rolesconsole/internal/directory/service"
	"github.com/aussiebroadwan/rolesconsole/pkg/directorysdk"
	"github.com/aussiebroadwan/rolesconsole/pkg/httpx"
	"github.com/aussiebroadwan/rolesconsole/pkg/idx"
	"github.com/aussiebroadwan/rolesconsole/pkg/slogx"
)

// writeServiceError maps service errors onto status codes and error codes.
// Unknown errors are logged and reported as server_error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, service.ErrRoleNotFound), errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, directorysdk.ErrorCodeNotFound, err.Error())
	case errors.Is(err, service.ErrRoleNameTaken):
		httpx.WriteError(w, http.StatusConflict, directorysdk.ErrorCodeAlreadyExists, err.Error())
	case errors.Is(err, service.ErrRoleInUse):
		httpx.WriteError(w, http.StatusConflict, directorysdk.ErrorCodeRoleInUse, err.Error())
	case errors.Is(err, service.ErrRenameNotAllowed):
		httpx.WriteError(w, http.StatusConflict, directorysdk.ErrorCodeRenameNotAllowed, err.Error())
	case errors.Is(err, service.ErrRoleNameRequired),
		errors.Is(err, service.ErrUserNameRequired),
		errors.Is(err, service.ErrInvalidPermission),
		errors.Is(err, service.ErrUnknownRole):
		httpx.WriteError(w, http.StatusBadRequest, directorysdk.ErrorCodeInvalidRequest, err.Error())
	default:
		slogx.FromContext(r.Context()).Error("failed to "+action, "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, directorysdk.ErrorCodeServerError, "Failed to "+action)
	}
}

// pathID reads the {id} path value. Ids are ULIDs, so anything else names
// a resource that cannot exist and is answered with 404 before the store is
// touched.
func pathID(w http.ResponseWriter, r *http.Request, resource string) (string, bool) {
	id, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, directorysdk.ErrorCodeNotFound, resource+" not found")
		return "", false
	}
	return id.String(), true
}
