package store

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"courtpub/internal/subscription/models"
	"courtpub/pkg/domain"
)

type userSeed struct {
	ID        string `yaml:"id"`
	Email     string `yaml:"email"`
	FirstName string `yaml:"first_name"`
	Surname   string `yaml:"surname"`
}

// LoadUsersYAML decodes a list of user records. The in-memory store has no
// user table of its own and is seeded from this for local runs.
func LoadUsersYAML(r io.Reader) ([]models.User, error) {
	var seeds []userSeed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seeds); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode users yaml: %w", err)
	}

	users := make([]models.User, 0, len(seeds))
	seen := make(map[domain.UserID]bool, len(seeds))
	for i, seed := range seeds {
		id, err := domain.ParseUserID(seed.ID)
		if err != nil || id.IsNil() {
			return nil, fmt.Errorf("user %d: invalid id %q", i, seed.ID)
		}
		if seed.Email == "" {
			return nil, fmt.Errorf("user %s: email is required", id)
		}
		if seen[id] {
			return nil, fmt.Errorf("user %s: duplicate id", id)
		}
		seen[id] = true
		users = append(users, models.User{ID: id, Email: seed.Email, FirstName: seed.FirstName, Surname: seed.Surname})
	}
	return users, nil
}

// SeedUsersFile loads path into s and returns how many users it registered.
func (s *InMemoryStore) SeedUsersFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open users seed: %w", err)
	}
	defer f.Close()

	users, err := LoadUsersYAML(f)
	if err != nil {
		return 0, err
	}
	for _, u := range users {
		s.PutUser(u)
	}
	return len(users), nil
}
