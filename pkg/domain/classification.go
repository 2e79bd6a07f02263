package domain

import (
	"strings"

	dErrors "courtpub/pkg/domain-errors"
)

// Sensitivity controls who may view an artefact's underlying data.
type Sensitivity string

const (
	SensitivityPublic     Sensitivity = "PUBLIC"
	SensitivityPrivate    Sensitivity = "PRIVATE"
	SensitivityClassified Sensitivity = "CLASSIFIED"
)

// Rank orders sensitivities from least to most restrictive. Unknown values
// rank highest so they are never treated as public.
func (s Sensitivity) Rank() int {
	switch s {
	case SensitivityPublic:
		return 0
	case SensitivityPrivate:
		return 1
	case SensitivityClassified:
		return 2
	default:
		return 3
	}
}

func (s Sensitivity) IsValid() bool {
	return s == SensitivityPublic || s == SensitivityPrivate || s == SensitivityClassified
}

// Stricter returns whichever of s and other is more restrictive.
func (s Sensitivity) Stricter(other Sensitivity) Sensitivity {
	if other.Rank() > s.Rank() {
		return other
	}
	return s
}

// ParseSensitivity is case-insensitive.
func ParseSensitivity(raw string) (Sensitivity, error) {
	s := Sensitivity(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "must be one of PUBLIC, PRIVATE, CLASSIFIED")
	}
	return s, nil
}

// Language of an artefact or a subscription preference.
type Language string

const (
	LanguageEnglish   Language = "ENGLISH"
	LanguageWelsh     Language = "WELSH"
	LanguageBilingual Language = "BILINGUAL"
)

func (l Language) IsValid() bool {
	return l == LanguageEnglish || l == LanguageWelsh || l == LanguageBilingual
}

// IsSubscribable reports whether l may appear in a subscription's language set.
func (l Language) IsSubscribable() bool {
	return l == LanguageEnglish || l == LanguageWelsh
}

// ParseLanguage is case-insensitive and accepts BOTH as an alias for BILINGUAL.
func ParseLanguage(raw string) (Language, error) {
	l := Language(strings.ToUpper(strings.TrimSpace(raw)))
	if l == "BOTH" {
		l = LanguageBilingual
	}
	if !l.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "must be one of ENGLISH, WELSH, BILINGUAL")
	}
	return l, nil
}

// Provenance is the source system an artefact came from.
type Provenance string

const (
	ProvenanceXhibit         Provenance = "XHIBIT"
	ProvenanceLibra          Provenance = "LIBRA"
	ProvenanceSJP            Provenance = "SJP"
	ProvenanceManualUpload   Provenance = "MANUAL_UPLOAD"
	ProvenanceCommonPlatform Provenance = "COMMON_PLATFORM"
	ProvenanceSNL            Provenance = "SNL"
	ProvenanceCFT            Provenance = "CFT"
)

var provenanceAliases = map[string]Provenance{
	"XHIBIT":          ProvenanceXhibit,
	"LIBRA":           ProvenanceLibra,
	"SJP":             ProvenanceSJP,
	"MANUAL_UPLOAD":   ProvenanceManualUpload,
	"MANUALUPLOAD":    ProvenanceManualUpload,
	"COMMON_PLATFORM": ProvenanceCommonPlatform,
	"COMMONPLATFORM":  ProvenanceCommonPlatform,
	"CP":              ProvenanceCommonPlatform,
	"SNL":             ProvenanceSNL,
	"CFT":             ProvenanceCFT,
	"CFT_IDAM":        ProvenanceCFT,
}

// MapProvenance maps a submitted source-system string to its canonical value.
// Unknown values pass through trimmed so new source systems are not rejected
// here.
func MapProvenance(raw string) Provenance {
	trimmed := strings.TrimSpace(raw)
	key := strings.ToUpper(trimmed)
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if p, ok := provenanceAliases[key]; ok {
		return p
	}
	return Provenance(trimmed)
}
