package http

import (
	"errors"
	"net/http"
	"slices"

	"github.com/aussiebroadwan/rolesconsole/internal/console/roleform"
	"github.com/aussiebroadwan/rolesconsole/pkg/directorysdk"
	"github.com/aussiebroadwan/rolesconsole/pkg/slogx"
)

// RoleFormHandler serves the role form. The server keeps no form state:
// each request rebuilds a controller from the stored role and the posted
// fields.
type RoleFormHandler struct {
	Directory Directory
	pages     *renderer
}

func (h *RoleFormHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, f *roleform.Form, msg string) {
	vm := f.View()
	title := "Role"
	if vm != nil {
		title = vm.Title
	}
	h.pages.render(w, r, status, "roleform", page{Title: title, Error: msg, Data: vm})
}

func (h *RoleFormHandler) HandleNew(w http.ResponseWriter, r *http.Request) {
	c := roleform.NewController(h.Directory)
	c.OpenCreate()
	h.renderForm(w, r, http.StatusOK, c.Form(), "")
}

func (h *RoleFormHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	c, status, err := h.open(r, r.PathValue("id"))
	if err != nil {
		http.Error(w, describe(err), status)
		return
	}
	h.renderForm(w, r, http.StatusOK, c.Form(), "")
}

// open builds a controller for id, or for a new role when id is empty.
func (h *RoleFormHandler) open(r *http.Request, id string) (*roleform.Controller, int, error) {
	c := roleform.NewController(h.Directory)
	if id == "" {
		c.OpenCreate()
		return c, http.StatusOK, nil
	}

	role, err := h.Directory.GetRole(r.Context(), id)
	if err != nil {
		if directorysdk.IsNotFound(err) {
			return nil, http.StatusNotFound, err
		}
		slogx.FromContext(r.Context()).Error("failed to load role", "role_id", id, "error", err)
		return nil, http.StatusBadGateway, err
	}
	c.OpenEdit(*role)
	return c, http.StatusOK, nil
}

// HandleSubmit applies the posted name and permissions through the form,
// then saves or cancels.
func (h *RoleFormHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	id := r.PostForm.Get("id")
	if id != "" {
		r = r.WithContext(slogx.With(r.Context(), "role_id", id))
	}

	c, status, err := h.open(r, id)
	if err != nil {
		http.Error(w, describe(err), status)
		return
	}

	if r.PostForm.Get("action") == "cancel" {
		c.Form().Cancel()
		http.Redirect(w, r, "/roles", http.StatusSeeOther)
		return
	}

	c.Form().SetName(r.PostForm.Get("name"))

	posted := r.PostForm["permissions"]
	for _, p := range posted {
		if !slices.Contains(roleform.Permissions, p) {
			h.renderForm(w, r, http.StatusBadRequest, c.Form(), "Unknown permission "+p+".")
			return
		}
	}
	for _, p := range roleform.Permissions {
		if slices.Contains(posted, p) != c.Draft().Has(p) {
			if err := c.Form().TogglePermission(p); err != nil {
				h.renderForm(w, r, http.StatusBadRequest, c.Form(), err.Error())
				return
			}
		}
	}

	switch r.PostForm.Get("action") {
	case "toggle":
		h.renderForm(w, r, http.StatusOK, c.Form(), "")
		return
	case "save", "":
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}

	if err := c.Form().Save(r.Context()); err != nil {
		status := http.StatusBadGateway
		var apiErr *directorysdk.APIError
		if errors.As(err, &apiErr) && !apiErr.Temporary() {
			status = http.StatusUnprocessableEntity
		}
		h.renderForm(w, r, status, c.Form(), describe(err))
		return
	}
	http.Redirect(w, r, "/roles", http.StatusSeeOther)
}
