// Package authz decides who may do what. Every mutating request is checked here
// before any store is touched.
package authz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/political-canvas/canvass-api/internal/models"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden: insufficient role")
)

// Identity is the authenticated caller.
type Identity struct {
	UserID uint64
	Role   models.Role
}

// Capability names an operation with its own role rule.
type Capability string

const (
	ViewRecords          Capability = "view_records"
	WriteVoter           Capability = "write_voter"
	DeleteVoter          Capability = "delete_voter"
	ManageTerritory      Capability = "manage_territory"
	ListVolunteers       Capability = "list_volunteers"
	CreateWalklist       Capability = "create_walklist"
	UpdateWalklistStatus Capability = "update_walklist_status"
	RecordContact        Capability = "record_contact"
	// SubmitLogForOthers covers log and sync entries attributed to someone other
	// than the caller. Entries for the caller's own id are always allowed.
	SubmitLogForOthers Capability = "submit_log_for_others"
	ManageUsers        Capability = "manage_users"
)

var (
	anyRole        = []models.Role{models.RoleAdmin, models.RoleManager, models.RoleVolunteer}
	managerOrAdmin = []models.Role{models.RoleAdmin, models.RoleManager}
	adminOnly      = []models.Role{models.RoleAdmin}
)

// AllowedRoles returns the roles that hold a capability.
func AllowedRoles(c Capability) ([]models.Role, error) {
	switch c {
	case ViewRecords, UpdateWalklistStatus, RecordContact:
		return anyRole, nil
	case WriteVoter, ManageTerritory, ListVolunteers, CreateWalklist, SubmitLogForOthers:
		return managerOrAdmin, nil
	case DeleteVoter, ManageUsers:
		return adminOnly, nil
	default:
		return nil, fmt.Errorf("unknown capability %q", c)
	}
}

// Allows reports whether role holds capability c. Unknown roles and
// capabilities are never allowed.
func Allows(role models.Role, c Capability) bool {
	roles, err := AllowedRoles(c)
	if err != nil {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// Require fails with ErrForbidden unless the caller's role holds c.
func Require(id Identity, c Capability) error {
	if id.UserID == 0 {
		return ErrUnauthenticated
	}
	if !Allows(id.Role, c) {
		return ErrForbidden
	}
	return nil
}

// RequireSelfOr passes when the caller acts on their own user id, or when
// their role holds c.
func RequireSelfOr(id Identity, c Capability, subjectUserID uint64) error {
	if id.UserID == 0 {
		return ErrUnauthenticated
	}
	if _, err := models.ParseRole(string(id.Role)); err != nil {
		return ErrForbidden
	}
	if id.UserID == subjectUserID {
		return nil
	}
	return Require(id, c)
}

// TokenVerifier validates an opaque token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (userID uint64, role models.Role, err error)
}

// Guard turns raw tokens into identities.
type Guard struct {
	verifier TokenVerifier
}

func NewGuard(verifier TokenVerifier) *Guard {
	return &Guard{verifier: verifier}
}

// Authenticate verifies a bearer token. A missing, unparseable or expired token,
// or one carrying a role outside the closed set, yields ErrUnauthenticated.
func (g *Guard) Authenticate(token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, ErrUnauthenticated
	}

	userID, role, err := g.verifier.Verify(token)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if userID == 0 {
		return Identity{}, ErrUnauthenticated
	}
	if _, err := models.ParseRole(string(role)); err != nil {
		return Identity{}, ErrUnauthenticated
	}

	return Identity{UserID: userID, Role: role}, nil
}

// Authorize authenticates the token and checks c in one step.
func (g *Guard) Authorize(token string, c Capability) (Identity, error) {
	id, err := g.Authenticate(token)
	if err != nil {
		return Identity{}, err
	}
	if err := Require(id, c); err != nil {
		return Identity{}, err
	}
	return id, nil
}
