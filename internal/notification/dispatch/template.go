// Package dispatch chooses a notification template and delivers it through a
// gateway with retry.
package dispatch

import (
	"courtpub/internal/reference"
	"courtpub/pkg/domain"
)

// DefaultPDFSizeLimit is the largest PDF, exclusive, that is linked from the
// PDF template.
const DefaultPDFSizeLimit int64 = 2 * 1024 * 1024

// TemplatePair is the two templates a list type can be notified with.
type TemplatePair struct {
	PDF     string
	Summary string
}

// Templates holds the default pair and per-list-type overrides.
type Templates struct {
	Default   TemplatePair
	Overrides map[domain.ListTypeID]TemplatePair
}

// For returns the pair for a list type. Blank override fields fall back to
// the default.
func (t Templates) For(listTypeID domain.ListTypeID) TemplatePair {
	pair := t.Default
	if o, ok := t.Overrides[listTypeID]; ok {
		if o.PDF != "" {
			pair.PDF = o.PDF
		}
		if o.Summary != "" {
			pair.Summary = o.Summary
		}
	}
	return pair
}

// OverridesFromSnapshot collects the list types that name their own
// templates.
func OverridesFromSnapshot(s *reference.Snapshot) map[domain.ListTypeID]TemplatePair {
	out := make(map[domain.ListTypeID]TemplatePair)
	if s == nil {
		return out
	}
	for _, lt := range s.Document().ListTypes {
		if lt.PDFTemplateID == "" && lt.SummaryTemplateID == "" {
			continue
		}
		out[lt.ID] = TemplatePair{PDF: lt.PDFTemplateID, Summary: lt.SummaryTemplateID}
	}
	return out
}

// SelectTemplate uses the PDF template only when a PDF exists and is under
// the size limit.
func SelectTemplate(templates Templates, listTypeID domain.ListTypeID, hasPDF, pdfUnderLimit bool) string {
	pair := templates.For(listTypeID)
	if hasPDF && pdfUnderLimit {
		return pair.PDF
	}
	return pair.Summary
}

// PDFUnderLimit reports whether size is strictly below limit.
func PDFUnderLimit(size, limit int64) bool {
	return size < limit
}
