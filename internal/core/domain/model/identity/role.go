package identity

import (
	"fmt"
	"strings"

	"production/internal/pkg/errs"
)

// Role is the closed set of permissions profiles a user can hold.
type Role int

const (
	RoleUnknown Role = iota
	Admin
	Supervisor
	Operator
)

func getRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		Admin:      "admin",
		Supervisor: "supervisor",
		Operator:   "operator",
	}
}

// ParseRole accepts the stored role names plus the "operador" alias written by
// older profile rows. Any other value is invalid, including the empty string.
func ParseRole(s string) (Role, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "operador" {
		return Operator, nil
	}
	for r, str := range getRoleStrings() {
		if str == key {
			return r, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// IsManager reports whether the role may approve, assign and create orders.
func (r Role) IsManager() bool {
	return r == Admin || r == Supervisor
}
