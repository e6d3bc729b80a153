package roleform

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aussiebroadwan/rolesconsole/pkg/directorysdk"
	"github.com/aussiebroadwan/rolesconsole/pkg/slogx"
)

// RoleWriter persists roles. *directorysdk.Client satisfies it.
type RoleWriter interface {
	CreateRole(ctx context.Context, req directorysdk.CreateRoleRequest) (*directorysdk.Role, error)
	UpdateRole(ctx context.Context, id string, req directorysdk.UpdateRoleRequest) (*directorysdk.Role, error)
}

// Controller owns the draft behind a Form and persists it on save.
type Controller struct {
	writer RoleWriter

	// OnSaved, if set, receives the stored role after a successful save.
	OnSaved func(directorysdk.Role)

	mu    sync.Mutex
	show  bool
	draft Draft
}

func NewController(w RoleWriter) *Controller {
	return &Controller{writer: w}
}

// OpenCreate shows an empty form for a new role.
func (c *Controller) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.show = true
	c.draft = Draft{Permissions: []string{}}
}

// OpenEdit shows the form for an existing role.
func (c *Controller) OpenEdit(r directorysdk.Role) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.show = true
	c.draft = DraftFromRole(r)
}

func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.show
}

func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Form returns a form bound to the controller's draft. The form reads the
// live draft, so edits made through it are visible to its View and Save.
func (c *Controller) Form() *Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &Form{
		Show:               c.show,
		Role:               c.draft,
		Current:            c.Draft,
		OnRoleChange:       c.setName,
		OnPermissionToggle: c.togglePermission,
		OnSave:             c.save,
		OnClose:            c.close,
	}
}

func (c *Controller) setName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Name = name
}

func (c *Controller) togglePermission(p string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = c.draft.Toggle(p)
}

func (c *Controller) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.show = false
	c.draft = Draft{}
}

// save creates when d has no ID and updates otherwise. The form stays open
// on error so the operator can correct it.
func (c *Controller) save(ctx context.Context, d Draft) error {
	log := slogx.FromContext(ctx)

	var (
		stored *directorysdk.Role
		err    error
	)
	if d.IsNew() {
		stored, err = c.writer.CreateRole(ctx, directorysdk.CreateRoleRequest{
			Name:        d.Name,
			Permissions: d.Permissions,
		})
	} else {
		stored, err = c.writer.UpdateRole(ctx, d.ID, directorysdk.UpdateRoleRequest{
			Name:        d.Name,
			Permissions: d.Permissions,
		})
	}
	if err != nil {
		log.Warn("role save failed", slog.String("role_id", d.ID), slog.Any("error", err))
		return err
	}

	log.Info("role saved", slog.String("role_id", stored.ID), slog.String("name", stored.Name))
	c.close()
	if c.OnSaved != nil {
		c.OnSaved(*stored)
	}
	return nil
}
