package access

import (
	"fmt"
	"slices"

	"courtpub/pkg/domain"
)

// Policy holds the tunable parts of the access matrix. The zero value is not
// usable; start from DefaultPolicy.
type Policy struct {
	// InternalAdminData lists the sensitivities whose data internal admins
	// (local and CTSC) may read. Metadata is always visible to them.
	InternalAdminData []domain.Sensitivity
	// VerifiedData lists the sensitivities whose data verified users may read
	// while the window is open.
	VerifiedData []domain.Sensitivity
	// GateClassifiedByProvenance restricts CLASSIFIED data to verified users
	// whose identity provider is in the list type's allowed user provenance.
	GateClassifiedByProvenance bool
}

// DefaultPolicy is the baseline matrix.
func DefaultPolicy() Policy {
	return Policy{
		InternalAdminData:          []domain.Sensitivity{domain.SensitivityPublic},
		VerifiedData:               []domain.Sensitivity{domain.SensitivityPublic, domain.SensitivityPrivate, domain.SensitivityClassified},
		GateClassifiedByProvenance: true,
	}
}

// ParsePolicy builds a policy from configuration strings.
func ParsePolicy(internalAdminData, verifiedData []string, gateClassified bool) (Policy, error) {
	admin, err := parseSensitivities(internalAdminData)
	if err != nil {
		return Policy{}, fmt.Errorf("internal admin data sensitivities: %w", err)
	}
	verified, err := parseSensitivities(verifiedData)
	if err != nil {
		return Policy{}, fmt.Errorf("verified data sensitivities: %w", err)
	}
	return Policy{
		InternalAdminData:          admin,
		VerifiedData:               verified,
		GateClassifiedByProvenance: gateClassified,
	}, nil
}

func parseSensitivities(raw []string) ([]domain.Sensitivity, error) {
	out := make([]domain.Sensitivity, 0, len(raw))
	for _, r := range raw {
		s, err := domain.ParseSensitivity(r)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", r, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func (p Policy) internalAdminMayRead(s domain.Sensitivity) bool {
	return slices.Contains(p.InternalAdminData, s)
}

func (p Policy) verifiedMayRead(s domain.Sensitivity) bool {
	return slices.Contains(p.VerifiedData, s)
}
