package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"courtpub/internal/reference/referencetest"
	"courtpub/pkg/domain"
)

var testTemplates = Templates{
	Default: TemplatePair{PDF: "pdf-and-summary", Summary: "summary-only"},
	Overrides: map[domain.ListTypeID]TemplatePair{
		referencetest.IACDaily:  {PDF: "iac-pdf", Summary: "iac-summary"},
		referencetest.CrownFirm: {Summary: "crown-summary"},
	},
}

func TestSelectTemplate(t *testing.T) {
	cases := []struct {
		name          string
		listType      domain.ListTypeID
		hasPDF        bool
		pdfUnderLimit bool
		want          string
	}{
		{"pdf under limit", referencetest.CivilDaily, true, true, "pdf-and-summary"},
		{"pdf over limit", referencetest.CivilDaily, true, false, "summary-only"},
		{"no pdf", referencetest.CivilDaily, false, true, "summary-only"},
		{"no pdf and over limit", referencetest.CivilDaily, false, false, "summary-only"},
		{"list type override", referencetest.IACDaily, true, true, "iac-pdf"},
		{"list type override summary", referencetest.IACDaily, false, false, "iac-summary"},
		{"partial override keeps default pdf", referencetest.CrownFirm, true, true, "pdf-and-summary"},
		{"partial override summary", referencetest.CrownFirm, true, false, "crown-summary"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SelectTemplate(testTemplates, tc.listType, tc.hasPDF, tc.pdfUnderLimit))
		})
	}
}

func TestPDFSizeBoundary(t *testing.T) {
	cases := []struct {
		name string
		size int64
		want string
	}{
		{"just under 2 MB", DefaultPDFSizeLimit - 1, "pdf-and-summary"},
		{"exactly 2 MB", DefaultPDFSizeLimit, "summary-only"},
		{"just over 2 MB", DefaultPDFSizeLimit + 1, "summary-only"},
		{"empty file", 0, "pdf-and-summary"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			under := PDFUnderLimit(tc.size, DefaultPDFSizeLimit)
			assert.Equal(t, tc.want, SelectTemplate(testTemplates, referencetest.CivilDaily, true, under))
		})
	}
	assert.Equal(t, int64(2097152), DefaultPDFSizeLimit)
}

func TestOverridesFromSnapshot(t *testing.T) {
	got := OverridesFromSnapshot(referencetest.Snapshot())
	assert.Equal(t, map[domain.ListTypeID]TemplatePair{
		referencetest.IACDaily: {PDF: "0a1b2c3d-iac-pdf", Summary: "0a1b2c3d-iac-summary"},
	}, got)
	assert.Empty(t, OverridesFromSnapshot(nil))
}
