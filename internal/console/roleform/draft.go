// Package roleform holds the role create/edit form and the controller that
// owns its draft.
package roleform

import (
	"errors"
	"fmt"
	"slices"

	"github.com/aussiebroadwan/rolesconsole/pkg/directorysdk"
)

// Permissions lists the grants a role can carry, in display order.
var Permissions = []string{
	directorysdk.PermissionRead,
	directorysdk.PermissionWrite,
	directorysdk.PermissionDelete,
}

var ErrUnknownPermission = errors.New("unknown permission")

func checkPermission(p string) error {
	if !slices.Contains(Permissions, p) {
		return fmt.Errorf("%w: %q", ErrUnknownPermission, p)
	}
	return nil
}

// Draft is a role being created (no ID) or edited (ID set). Permissions are
// kept deduplicated in display order.
type Draft struct {
	ID          string
	Name        string
	Permissions []string
}

// DraftFromRole copies r into a draft, dropping permissions outside the
// known set.
func DraftFromRole(r directorysdk.Role) Draft {
	return Draft{ID: r.ID, Name: r.Name, Permissions: canonical(r.Permissions)}
}

func (d Draft) IsNew() bool { return d.ID == "" }

func (d Draft) Has(p string) bool { return slices.Contains(d.Permissions, p) }

// Toggle returns a copy of d with membership of p flipped.
func (d Draft) Toggle(p string) Draft {
	set := make(map[string]bool, len(d.Permissions)+1)
	for _, q := range d.Permissions {
		set[q] = true
	}
	set[p] = !set[p]

	out := make([]string, 0, len(set))
	for _, q := range Permissions {
		if set[q] {
			out = append(out, q)
		}
	}
	d.Permissions = out
	return d
}

func canonical(perms []string) []string {
	out := make([]string, 0, len(perms))
	for _, p := range Permissions {
		if slices.Contains(perms, p) {
			out = append(out, p)
		}
	}
	return out
}
