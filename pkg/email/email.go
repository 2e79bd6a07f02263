// Package email turns subscriber addresses into the names used to greet them
// in notification emails.
package email

import (
	"strings"
	"unicode"
)

// FallbackName greets a subscriber whose address yields no usable name.
const FallbackName = "Subscriber"

// Name is how a subscriber is addressed in the first_name and surname
// personalisation fields.
type Name struct {
	First   string
	Surname string
}

// Salutation prefers the stored names and fills whichever is missing from
// the local part of address. "jo.bloggs@example.com" becomes Jo Bloggs; a
// single token fills only the first name. Digits are dropped, so
// "court.clerk2@justice.gov.uk" becomes Court Clerk.
func Salutation(first, surname, address string) Name {
	first, surname = strings.TrimSpace(first), strings.TrimSpace(surname)
	if first != "" && surname != "" {
		return Name{First: first, Surname: surname}
	}

	parts := localParts(address)
	if first == "" {
		first = FallbackName
		if len(parts) > 0 {
			first = parts[0]
		}
	}
	if surname == "" {
		surname = FallbackName
		if len(parts) > 1 {
			surname = parts[len(parts)-1]
		}
	}
	return Name{First: first, Surname: surname}
}

func localParts(address string) []string {
	local := address
	if at := strings.LastIndexByte(address, '@'); at >= 0 {
		local = address[:at]
	}
	if plus := strings.IndexByte(local, '+'); plus >= 0 {
		local = local[:plus]
	}

	var out []string
	for _, token := range strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	}) {
		token = strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || r == '\'' {
				return unicode.ToLower(r)
			}
			return -1
		}, token)
		if token != "" {
			out = append(out, titleCase(token))
		}
	}
	return out
}

func titleCase(s string) string {
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
