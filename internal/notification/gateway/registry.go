package gateway

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps provider names to gateways.
type Registry map[string]Gateway

func (r Registry) Get(name string) (Gateway, error) {
	g, ok := r[name]
	if !ok {
		names := make([]string, 0, len(r))
		for n := range r {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown notification provider %q (have %s)", name, strings.Join(names, ", "))
	}
	return g, nil
}
