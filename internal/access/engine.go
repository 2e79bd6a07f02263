// Package access decides whether a viewer may see an artefact's metadata or
// its underlying data. Everything here is pure: no I/O, no logging, no errors.
// Callers translate a false result into a 403 at the HTTP boundary.
package access

import (
	"time"

	"courtpub/internal/artefact/models"
	"courtpub/internal/reference"
	"courtpub/pkg/domain"
)

// Engine evaluates the access matrix under a Policy.
type Engine struct {
	policy Policy
}

func New(policy Policy) *Engine {
	return &Engine{policy: policy}
}

// EffectiveSensitivity is the stricter of the artefact's own sensitivity and
// its list type's default.
func EffectiveSensitivity(a *models.Artefact, lt reference.ListType) domain.Sensitivity {
	return a.Sensitivity.Stricter(lt.DefaultSensitivity)
}

// CanViewMetadata reports whether viewer may see that the artefact exists and
// its descriptive fields.
// Rule priority (fail-fast):
//  1. Admin roles always see metadata
//  2. Outside the display window nobody else does
//  3. PUBLIC is visible to everyone, including anonymous viewers
//  4. Non-public metadata needs a verified user
func (e *Engine) CanViewMetadata(viewer domain.Viewer, a *models.Artefact, lt reference.ListType, now time.Time) bool {
	if a == nil {
		return false
	}

	// Rule 1: admins see metadata for audit and support
	if viewer.Role.IsAdmin() {
		return true
	}

	// Rule 2: window
	if !a.InWindow(now) {
		return false
	}

	// Rule 3: public
	sensitivity := EffectiveSensitivity(a, lt)
	if sensitivity == domain.SensitivityPublic {
		return true
	}

	// Rule 4: verified users only
	return viewer.Role == domain.RoleVerified
}

// CanViewData reports whether viewer may read the artefact's payload. It never
// returns true where CanViewMetadata returns false.
// Rule priority after the metadata gate:
//  1. System admins read everything
//  2. Internal admins read only the sensitivities the policy grants them
//  3. Outside the window nobody else reads data
//  4. PUBLIC data is open
//  5. Verified users read granted sensitivities; CLASSIFIED may additionally
//     require a matching identity provider
func (e *Engine) CanViewData(viewer domain.Viewer, a *models.Artefact, lt reference.ListType, now time.Time) bool {
	if !e.CanViewMetadata(viewer, a, lt, now) {
		return false
	}

	sensitivity := EffectiveSensitivity(a, lt)

	switch {
	// Rule 1
	case viewer.Role == domain.RoleSystemAdmin:
		return true
	// Rule 2
	case viewer.Role.IsInternalAdmin():
		return e.policy.internalAdminMayRead(sensitivity)
	}

	// Rule 3
	if !a.InWindow(now) {
		return false
	}

	// Rule 4
	if sensitivity == domain.SensitivityPublic {
		return true
	}

	// Rule 5
	if viewer.Role != domain.RoleVerified || !e.policy.verifiedMayRead(sensitivity) {
		return false
	}
	if sensitivity == domain.SensitivityClassified && e.policy.GateClassifiedByProvenance {
		return lt.AllowsUserProvenance(viewer.Provenance)
	}
	return true
}

// Decision bundles both answers for one viewer and artefact.
type Decision struct {
	Metadata bool
	Data     bool
}

// Decide evaluates both predicates.
func (e *Engine) Decide(viewer domain.Viewer, a *models.Artefact, lt reference.ListType, now time.Time) Decision {
	return Decision{
		Metadata: e.CanViewMetadata(viewer, a, lt, now),
		Data:     e.CanViewData(viewer, a, lt, now),
	}
}
