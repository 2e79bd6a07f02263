// Package dedupe removes repeated values from request id lists.
package dedupe

import (
	"strings"
)

// Values removes duplicates from a slice, preserving first-seen order.
//
//	Values([]int{3, 1, 3, 2, 1}) // []int{3, 1, 2}
func Values[T comparable](values []T) []T {
	if len(values) == 0 {
		return values
	}

	seen := make(map[T]struct{}, len(values))
	result := make([]T, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// Strings trims each element, drops empties, then removes duplicates.
//
//	Strings([]string{" 101 ", "102", "101", ""}) // []string{"101", "102"}
func Strings(values []string) []string {
	if len(values) == 0 {
		return values
	}

	trimmed := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return Values(trimmed)
}
