package domain

import (
	"strings"
)

// UserRole is the role of the person viewing or managing publications.
// The zero value means no role.
type UserRole string

const (
	RoleNone               UserRole = ""
	RoleSystemAdmin        UserRole = "SYSTEM_ADMIN"
	RoleInternalAdminCTSC  UserRole = "INTERNAL_ADMIN_CTSC"
	RoleInternalAdminLocal UserRole = "INTERNAL_ADMIN_LOCAL"
	RoleVerified           UserRole = "VERIFIED"
)

// IsAdmin covers the system admin and both internal admin roles.
func (r UserRole) IsAdmin() bool {
	return r == RoleSystemAdmin || r.IsInternalAdmin()
}

func (r UserRole) IsInternalAdmin() bool {
	return r == RoleInternalAdminCTSC || r == RoleInternalAdminLocal
}

// ParseUserRole returns RoleNone for unrecognised values.
func ParseUserRole(raw string) UserRole {
	switch r := UserRole(strings.ToUpper(strings.TrimSpace(raw))); r {
	case RoleSystemAdmin, RoleInternalAdminCTSC, RoleInternalAdminLocal, RoleVerified:
		return r
	default:
		return RoleNone
	}
}

// UserProvenance is the identity provider a user signed in through.
type UserProvenance string

const (
	UserProvenanceSSO     UserProvenance = "SSO"
	UserProvenanceCFT     UserProvenance = "CFT"
	UserProvenanceB2CIdam UserProvenance = "B2C_IDAM"
)

// ParseUserProvenance accepts CFT_IDAM as an alias of CFT. Unknown values yield "".
func ParseUserProvenance(raw string) UserProvenance {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "SSO":
		return UserProvenanceSSO
	case "CFT", "CFT_IDAM":
		return UserProvenanceCFT
	case "B2C_IDAM", "B2C":
		return UserProvenanceB2CIdam
	default:
		return ""
	}
}

// Viewer is the explicit identity an access decision is made for.
type Viewer struct {
	UserID     UserID
	Role       UserRole
	Provenance UserProvenance
}

// Anonymous is a viewer with no identity and no role.
func Anonymous() Viewer {
	return Viewer{}
}

func (v Viewer) IsAnonymous() bool {
	return v.UserID.IsNil() && v.Role == RoleNone
}
