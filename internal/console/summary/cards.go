package summary

import (
	"errors"
	"fmt"
)

// CardKey identifies a stat card.
type CardKey string

const (
	CardUsers       CardKey = "users"
	CardRoles       CardKey = "roles"
	CardPermissions CardKey = "permissions"
)

// Card is one clickable statistic on the dashboard.
type Card struct {
	Key   CardKey `json:"key"`
	Title string  `json:"title"`
	Value int     `json:"value"`
	Path  string  `json:"path"`
}

// Navigator moves the operator to another page. Calls are fire and forget.
type Navigator interface {
	NavigateTo(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) NavigateTo(path string) { f(path) }

var ErrUnknownCard = errors.New("unknown card")

var cardPaths = map[CardKey]string{
	CardUsers:       "/users",
	CardRoles:       "/roles",
	CardPermissions: "/roles",
}

// CardPath returns the navigation target for key.
func CardPath(key CardKey) (string, error) {
	p, ok := cardPaths[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCard, key)
	}
	return p, nil
}

// CardsFor builds the three dashboard cards for s.
func CardsFor(s Stats) []Card {
	return []Card{
		{Key: CardUsers, Title: "Total Users", Value: s.TotalUsers, Path: cardPaths[CardUsers]},
		{Key: CardRoles, Title: "Total Roles", Value: s.TotalRoles, Path: cardPaths[CardRoles]},
		{Key: CardPermissions, Title: "Total Permissions", Value: s.TotalPermissions, Path: cardPaths[CardPermissions]},
	}
}
