package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSalutation(t *testing.T) {
	tests := []struct {
		name    string
		first   string
		surname string
		address string
		want    Name
	}{
		{name: "stored names win", first: "Alice", surname: "Jones", address: "a.x@example.com", want: Name{"Alice", "Jones"}},
		{name: "derived from dotted address", address: "jo.bloggs@example.com", want: Name{"Jo", "Bloggs"}},
		{name: "missing surname only", first: "Alice", address: "alice.jones@example.com", want: Name{"Alice", "Jones"}},
		{name: "single token", address: "CLERK@justice.gov.uk", want: Name{"Clerk", FallbackName}},
		{name: "digits and plus tag dropped", address: "court.clerk2+lists@justice.gov.uk", want: Name{"Court", "Clerk"}},
		{name: "middle tokens skipped", address: "mary_ann-smith@example.com", want: Name{"Mary", "Smith"}},
		{name: "nothing usable", address: "1234@example.com", want: Name{FallbackName, FallbackName}},
		{name: "blank stored names", first: "  ", surname: "", address: "", want: Name{FallbackName, FallbackName}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Salutation(tt.first, tt.surname, tt.address))
		})
	}
}
