// Package reference holds the read-only list-type and location data that
// ingestion, access decisions and subscriptions resolve against.
package reference

import (
	"fmt"
	"strconv"
	"strings"

	"courtpub/pkg/domain"
)

// Document is the serialised form of a snapshot, shared by the YAML seed file
// and the Redis copy.
type Document struct {
	Version   string     `json:"version" yaml:"version"`
	ListTypes []ListType `json:"list_types" yaml:"list_types"`
	Locations []Location `json:"locations" yaml:"locations"`
}

// Snapshot is an immutable, indexed view of a Document. Safe for concurrent
// reads.
type Snapshot struct {
	doc       Document
	byID      map[domain.ListTypeID]ListType
	byName    map[string]ListType
	locations map[domain.LocationID]Location
}

// NewSnapshot indexes doc. Duplicate ids or names are rejected.
func NewSnapshot(doc Document) (*Snapshot, error) {
	s := &Snapshot{
		doc:       doc,
		byID:      make(map[domain.ListTypeID]ListType, len(doc.ListTypes)),
		byName:    make(map[string]ListType, len(doc.ListTypes)),
		locations: make(map[domain.LocationID]Location, len(doc.Locations)),
	}
	for _, lt := range doc.ListTypes {
		if lt.ID <= 0 {
			return nil, fmt.Errorf("list type %q: id must be positive", lt.Name)
		}
		if lt.DefaultSensitivity != "" && !lt.DefaultSensitivity.IsValid() {
			return nil, fmt.Errorf("list type %d: invalid default sensitivity %q", lt.ID, lt.DefaultSensitivity)
		}
		if _, dup := s.byID[lt.ID]; dup {
			return nil, fmt.Errorf("duplicate list type id %d", lt.ID)
		}
		key := normaliseName(lt.Name)
		if key == "" {
			return nil, fmt.Errorf("list type %d: name is required", lt.ID)
		}
		if _, dup := s.byName[key]; dup {
			return nil, fmt.Errorf("duplicate list type name %q", lt.Name)
		}
		s.byID[lt.ID] = lt
		s.byName[key] = lt
	}
	for _, loc := range doc.Locations {
		if loc.ID == "" {
			return nil, fmt.Errorf("location %q: id is required", loc.Name)
		}
		if _, dup := s.locations[loc.ID]; dup {
			return nil, fmt.Errorf("duplicate location id %q", loc.ID)
		}
		s.locations[loc.ID] = loc
	}
	return s, nil
}

// MustSnapshot is NewSnapshot for fixtures; it panics on invalid documents.
func MustSnapshot(doc Document) *Snapshot {
	s, err := NewSnapshot(doc)
	if err != nil {
		panic(err)
	}
	return s
}

func normaliseName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Document returns the source document.
func (s *Snapshot) Document() Document {
	return s.doc
}

func (s *Snapshot) Version() string {
	return s.doc.Version
}

// ListTypeByID looks a list type up by id.
func (s *Snapshot) ListTypeByID(id domain.ListTypeID) (ListType, bool) {
	lt, ok := s.byID[id]
	return lt, ok
}

// ListTypeByName resolves a submission's list category. Names match
// case-insensitively; a numeric string resolves by id.
func (s *Snapshot) ListTypeByName(name string) (ListType, bool) {
	if lt, ok := s.byName[normaliseName(name)]; ok {
		return lt, true
	}
	if n, err := strconv.Atoi(strings.TrimSpace(name)); err == nil {
		return s.ListTypeByID(domain.ListTypeID(n))
	}
	return ListType{}, false
}

func (s *Snapshot) LocationExists(id domain.LocationID) bool {
	_, ok := s.locations[id]
	return ok
}

func (s *Snapshot) Location(id domain.LocationID) (Location, bool) {
	loc, ok := s.locations[id]
	return loc, ok
}
