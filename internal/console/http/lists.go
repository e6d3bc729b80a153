package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/rolesconsole/pkg/directorysdk"
	"github.com/aussiebroadwan/rolesconsole/pkg/slogx"
)

type ListsHandler struct {
	Directory Directory
	pages     *renderer
}

func (h *ListsHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Directory.ListUsers(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to list users", "error", err)
		h.pages.render(w, r, http.StatusBadGateway, "users", page{
			Title: "Users",
			Error: "Could not load users from the directory.",
		})
		return
	}
	h.pages.render(w, r, http.StatusOK, "users", page{Title: "Users", Data: users})
}

// HandleRoles lists roles. An error query parameter, set by a failed
// delete, is shown above the table.
func (h *ListsHandler) HandleRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Directory.ListRoles(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to list roles", "error", err)
		h.pages.render(w, r, http.StatusBadGateway, "roles", page{
			Title: "Roles",
			Error: "Could not load roles from the directory.",
		})
		return
	}
	h.pages.render(w, r, http.StatusOK, "roles", page{
		Title: "Roles",
		Error: r.URL.Query().Get("error"),
		Data:  roles,
	})
}

func (h *ListsHandler) HandleDeleteRole(w http.ResponseWriter, r *http.Request) {
	err := h.Directory.DeleteRole(r.Context(), r.PathValue("id"))
	if err != nil {
		slogx.FromContext(r.Context()).Warn("failed to delete role", "role_id", r.PathValue("id"), "error", err)
		http.Redirect(w, r, "/roles?error="+url.QueryEscape(describe(err)), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/roles", http.StatusSeeOther)
}

// describe turns a directory error into a message fit for the operator.
func describe(err error) string {
	var apiErr *directorysdk.APIError
	switch {
	case errors.Is(err, directorysdk.ErrUnavailable):
		return "The directory is unavailable. Try again shortly."
	case errors.As(err, &apiErr):
		switch apiErr.Code {
		case directorysdk.ErrorCodeRoleInUse:
			return "This role is still assigned to users. Reassign them first."
		case directorysdk.ErrorCodeAlreadyExists:
			return "A role with that name already exists."
		case directorysdk.ErrorCodeRenameNotAllowed:
			return "Roles cannot be renamed."
		case directorysdk.ErrorCodeNotFound:
			return "The role no longer exists."
		}
		if apiErr.Description != "" {
			return apiErr.Description
		}
	}
	return "The directory request failed."
}
