package roleform

import (
	"context"
	"strings"
)

// Mode is derived from the draft: creating when it has no ID.
type Mode int

const (
	ModeCreating Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "creating"
}

// Form is the controlled role form. It never mutates Role itself; every
// change goes through the callbacks supplied by its owner. When Current is
// set the form reads the owner's live draft through it, so one Form value
// stays correct across SetName, TogglePermission and Save.
type Form struct {
	Show    bool
	Role    Draft
	Current func() Draft

	OnRoleChange       func(name string)
	OnPermissionToggle func(p string)
	OnSave             func(ctx context.Context, d Draft) error
	OnClose            func()
}

// Draft returns the draft the form currently shows.
func (f *Form) Draft() Draft {
	if f.Current != nil {
		return f.Current()
	}
	return f.Role
}

func (f *Form) Mode() Mode {
	if f.Draft().IsNew() {
		return ModeCreating
	}
	return ModeEditing
}

// SetName forwards v verbatim. The name of an existing role is locked, so the
// call is ignored while editing.
func (f *Form) SetName(v string) {
	if f.Mode() == ModeEditing || f.OnRoleChange == nil {
		return
	}
	f.OnRoleChange(v)
}

// TogglePermission forwards p when it is a known permission.
func (f *Form) TogglePermission(p string) error {
	if err := checkPermission(p); err != nil {
		return err
	}
	if f.OnPermissionToggle != nil {
		f.OnPermissionToggle(p)
	}
	return nil
}

// Save hands the current draft to OnSave and returns its error unchanged.
// Whether that creates or updates is the owner's decision.
func (f *Form) Save(ctx context.Context) error {
	if f.OnSave == nil {
		return nil
	}
	return f.OnSave(ctx, f.Draft())
}

// Cancel asks the owner to close the form, discarding the draft.
func (f *Form) Cancel() {
	if f.OnClose != nil {
		f.OnClose()
	}
}

// Checkbox is one permission toggle.
type Checkbox struct {
	Value   string
	Label   string
	Checked bool
}

// ViewModel is everything a template needs to draw the form.
type ViewModel struct {
	Mode        Mode
	Title       string
	SubmitLabel string
	ID          string
	Name        string
	NameLocked  bool
	Checkboxes  []Checkbox
}

// View returns the render model, or nil when the form is hidden.
func (f *Form) View() *ViewModel {
	if !f.Show {
		return nil
	}

	d := f.Draft()
	vm := &ViewModel{
		Mode:        f.Mode(),
		Title:       "Add New Role",
		SubmitLabel: "Add Role",
		ID:          d.ID,
		Name:        d.Name,
		Checkboxes:  make([]Checkbox, len(Permissions)),
	}
	if vm.Mode == ModeEditing {
		vm.Title = "Edit Role"
		vm.SubmitLabel = "Save Changes"
		vm.NameLocked = true
	}

	for i, p := range Permissions {
		vm.Checkboxes[i] = Checkbox{
			Value:   p,
			Label:   strings.ToUpper(p[:1]) + p[1:],
			Checked: d.Has(p),
		}
	}
	return vm
}
