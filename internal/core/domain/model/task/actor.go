package task

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Role is the acting user's role, carried with each request by the excluded
// auth layer. Elevated roles (owner, manager) may skip mandatory stages.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleStaff is a regular shop user without elevated permissions.
	RoleStaff

	// RoleManager is an elevated role.
	RoleManager

	// RoleOwner is an elevated role.
	RoleOwner

	// RoleSystem marks automation-initiated actions, e.g. the confirmation
	// auto-completion. Treated as elevated.
	RoleSystem
)

// getRoleStrings returns a map of Role values to their string representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		RoleStaff:   "staff",
		RoleManager: "manager",
		RoleOwner:   "owner",
		RoleSystem:  "system",
	}
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	switch r {
	case RoleStaff, RoleManager, RoleOwner, RoleSystem:
		return nil
	case RoleUnknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("role is invalid",
		fmt.Errorf("%d is not a valid role", r))
}

// String returns the wire name of the role. Implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// RoleFromString parses a wire name into a Role.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid",
		fmt.Errorf("%q is not a valid role", s))
}

// IsElevated reports whether the role may bypass mandatory-stage skip
// restrictions.
func (r Role) IsElevated() bool {
	return r == RoleOwner || r == RoleManager || r == RoleSystem
}

// Actor is the identity performing a task transition: a user with a role, or
// the system itself for automation-initiated transitions.
//
// Actor is a value object; create it via NewActor or SystemActor.
type Actor struct {
	userID        kernel.UUID
	role          Role
	isConstructed bool
}

// NewActor creates an Actor for a human user.
// The user id must be valid and the role must be a non-system role.
func NewActor(userID kernel.UUID, role Role) (Actor, error) {
	if err := userID.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	if role == RoleSystem {
		return Actor{}, errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("system actors are created via SystemActor"))
	}
	return Actor{userID: userID, role: role, isConstructed: true}, nil
}

// SystemActor creates the Actor used for automation-initiated transitions.
// It carries no user id; completions it performs are tagged system-initiated.
func SystemActor() Actor {
	return Actor{role: RoleSystem, isConstructed: true}
}

// Validate ensures the Actor was created via NewActor or SystemActor.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return errs.NewValueIsRequiredError("actor must be created via NewActor or SystemActor")
	}
	return nil
}

// UserID returns the acting user's id. The second return is false for the
// system actor.
func (a Actor) UserID() (kernel.UUID, bool) {
	if a.role == RoleSystem {
		return kernel.UUID{}, false
	}
	return a.userID, true
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// IsSystem reports whether the actor is the automation identity.
func (a Actor) IsSystem() bool {
	return a.role == RoleSystem
}

// IsElevated reports whether the actor may skip mandatory stages.
func (a Actor) IsElevated() bool {
	return a.role.IsElevated()
}
