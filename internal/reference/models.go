package reference

import (
	"slices"

	"courtpub/pkg/domain"
)

// ListType is the definition of a kind of hearing list.
type ListType struct {
	ID                 domain.ListTypeID  `json:"id" yaml:"id"`
	Name               string             `json:"name" yaml:"name"`
	FriendlyName       string             `json:"friendly_name" yaml:"friendly_name"`
	DefaultSensitivity domain.Sensitivity `json:"default_sensitivity" yaml:"default_sensitivity"`
	// AllowedProvenance lists the source systems permitted to publish this list
	// type. Empty means any source.
	AllowedProvenance []domain.Provenance `json:"allowed_provenance,omitempty" yaml:"allowed_provenance"`
	// AllowedUserProvenance lists the identity providers whose verified users may
	// read CLASSIFIED data of this list type.
	AllowedUserProvenance []domain.UserProvenance `json:"allowed_user_provenance,omitempty" yaml:"allowed_user_provenance"`
	PDFTemplateID         string                  `json:"pdf_template_id,omitempty" yaml:"pdf_template_id"`
	SummaryTemplateID     string                  `json:"summary_template_id,omitempty" yaml:"summary_template_id"`
}

// AllowsProvenance reports whether p may publish this list type.
func (lt ListType) AllowsProvenance(p domain.Provenance) bool {
	return len(lt.AllowedProvenance) == 0 || slices.Contains(lt.AllowedProvenance, p)
}

// AllowsUserProvenance reports whether users from p may read classified data.
// An empty set allows nobody.
func (lt ListType) AllowsUserProvenance(p domain.UserProvenance) bool {
	return p != "" && slices.Contains(lt.AllowedUserProvenance, p)
}

// DisplayName prefers the friendly name.
func (lt ListType) DisplayName() string {
	if lt.FriendlyName != "" {
		return lt.FriendlyName
	}
	return lt.Name
}

// Location is a court or tribunal.
type Location struct {
	ID        domain.LocationID `json:"id" yaml:"id"`
	Name      string            `json:"name" yaml:"name"`
	WelshName string            `json:"welsh_name,omitempty" yaml:"welsh_name"`
}

// NameFor returns the Welsh name for Welsh artefacts when one exists.
func (l Location) NameFor(lang domain.Language) string {
	if lang == domain.LanguageWelsh && l.WelshName != "" {
		return l.WelshName
	}
	return l.Name
}
