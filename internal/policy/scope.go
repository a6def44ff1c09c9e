package policy

import (
	"errors" // Sentinel errors

	"estate_crm/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// ErrInvalidRole is returned when a user carries a role outside the closed
// manager/employee enumeration. The enumeration is closed, so this is a data
// fault, not a caller mistake.
var ErrInvalidRole = errors.New("invalid role")

// Kind identifies the entity families subject to scoping. Property is
// intentionally absent: public listings are visible to everyone.
type Kind int

const (
	KindLead Kind = iota // Lead rows
	KindFlat             // Flat rows
)

// Filter is the row-visibility predicate produced for one user and kind.
// The zero value denies everything; obtain one through Scope.
type Filter struct {
	all     bool // Manager variant: every row is visible
	ownerID uint // Employee variant: only rows assigned to this user
}

// Scope returns the visibility filter for the given user and entity kind.
// Managers see all rows, employees see only rows assigned to them. The same
// rule applies to every scoped kind today; kind is part of the contract so
// callers state what they are querying.
func Scope(user domain.User, kind Kind) (Filter, error) {
	_ = kind // Lead and Flat currently share the same rule
	switch user.Role {
	case domain.RoleManager:
		return Filter{all: true}, nil
	case domain.RoleEmployee:
		return Filter{ownerID: user.ID}, nil
	default:
		return Filter{}, ErrInvalidRole
	}
}

// Apply narrows a query to the rows the filter allows
func (f Filter) Apply(q *gorm.DB) *gorm.DB {
	if f.all {
		return q
	}
	return q.Where("assigned_to_id = ?", f.ownerID)
}

// Allows reports whether a single row with the given assignee is visible
func (f Filter) Allows(assignedToID uint) bool {
	return f.all || f.ownerID == assignedToID
}
