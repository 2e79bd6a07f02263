// Package referencetest provides a small reference snapshot for tests in other
// packages.
package referencetest

import (
	"courtpub/internal/reference"
	"courtpub/pkg/domain"
)

const (
	CivilDaily domain.ListTypeID = 1
	SJPPublic  domain.ListTypeID = 2
	CrownFirm  domain.ListTypeID = 3
	IACDaily   domain.ListTypeID = 4

	Oxford  domain.LocationID = "101"
	Cardiff domain.LocationID = "102"
	SJP     domain.LocationID = "103"
)

// Document mirrors internal/reference/testdata/reference.yaml.
func Document() reference.Document {
	return reference.Document{
		Version: "test",
		ListTypes: []reference.ListType{
			{
				ID:                 CivilDaily,
				Name:               "CIVIL_DAILY_CAUSE_LIST",
				FriendlyName:       "Civil Daily Cause List",
				DefaultSensitivity: domain.SensitivityPublic,
				AllowedProvenance:  []domain.Provenance{domain.ProvenanceManualUpload, domain.ProvenanceCommonPlatform},
			},
			{
				ID:                 SJPPublic,
				Name:               "SJP_PUBLIC_LIST",
				FriendlyName:       "Single Justice Procedure Public List",
				DefaultSensitivity: domain.SensitivityPublic,
				AllowedProvenance:  []domain.Provenance{domain.ProvenanceSJP},
			},
			{
				ID:                 CrownFirm,
				Name:               "CROWN_FIRM_LIST",
				FriendlyName:       "Crown Firm List",
				DefaultSensitivity: domain.SensitivityPrivate,
				AllowedProvenance:  []domain.Provenance{domain.ProvenanceXhibit, domain.ProvenanceManualUpload},
			},
			{
				ID:                    IACDaily,
				Name:                  "IAC_DAILY_LIST",
				FriendlyName:          "Immigration and Asylum Chamber Daily List",
				DefaultSensitivity:    domain.SensitivityClassified,
				AllowedUserProvenance: []domain.UserProvenance{domain.UserProvenanceCFT},
				PDFTemplateID:         "0a1b2c3d-iac-pdf",
				SummaryTemplateID:     "0a1b2c3d-iac-summary",
			},
		},
		Locations: []reference.Location{
			{ID: Oxford, Name: "Oxford Combined Court Centre"},
			{ID: Cardiff, Name: "Cardiff Civil and Family Justice Centre", WelshName: "Canolfan Cyfiawnder Sifil a Theulu Caerdydd"},
			{ID: SJP, Name: "Single Justice Procedure"},
		},
	}
}

// Snapshot returns the indexed fixture.
func Snapshot() *reference.Snapshot {
	return reference.MustSnapshot(Document())
}
