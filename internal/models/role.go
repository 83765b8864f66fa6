package models

import (
	"errors"
	"fmt"
	"strings"
)

const (
	managerRoleName    = "Manager"
	operatorRolePrefix = "Operator-"
)

// ErrUnknownRole reports a role string that is neither Manager nor
// Operator-<Station>.
var ErrUnknownRole = errors.New("models: unknown role")

type roleKind int

const (
	roleManager roleKind = iota + 1
	roleOperator
)

// Role is either Manager (unrestricted) or an Operator bound to exactly one
// station. The persisted encoding is "Manager" or "Operator-<Station>".
type Role struct {
	kind    roleKind
	station string
}

// ManagerRole returns the unrestricted role.
func ManagerRole() Role {
	return Role{kind: roleManager}
}

// OperatorRole returns a role scoped to the given station.
func OperatorRole(station string) Role {
	return Role{kind: roleOperator, station: station}
}

// ParseRole decodes the stored role string.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	if s == managerRoleName {
		return ManagerRole(), nil
	}
	if station, ok := strings.CutPrefix(s, operatorRolePrefix); ok && station != "" {
		return OperatorRole(station), nil
	}
	return Role{}, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// IsManager reports whether the role is unrestricted.
func (r Role) IsManager() bool {
	return r.kind == roleManager
}

// Station returns the assigned station for operator roles.
func (r Role) Station() (string, bool) {
	if r.kind != roleOperator {
		return "", false
	}
	return r.station, true
}

// AllowsStation reports whether the role may act on the given station.
func (r Role) AllowsStation(station string) bool {
	switch r.kind {
	case roleManager:
		return true
	case roleOperator:
		return r.station == station
	default:
		return false
	}
}

// String returns the persisted encoding.
func (r Role) String() string {
	switch r.kind {
	case roleManager:
		return managerRoleName
	case roleOperator:
		return operatorRolePrefix + r.station
	default:
		return ""
	}
}

// Identity is the authenticated caller resolved by the auth middleware.
type Identity struct {
	Username string
	Role     Role
}
