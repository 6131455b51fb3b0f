// Package roster reads the staff roster file that declares which
// profiles hold the admin role. The file is plain YAML so the school's
// office staff can maintain it without touching the database.
package roster

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry is one staff member in the roster
type Entry struct {
	Email    string `yaml:"email"`
	FullName string `yaml:"full_name"`
	Role     string `yaml:"role"`
}

// Roster is the parsed roster file
type Roster struct {
	Admins []Entry `yaml:"admins"`
}

// Load reads and parses a roster file
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses roster YAML
func Parse(data []byte) (*Roster, error) {
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	seen := make(map[string]bool, len(r.Admins))
	for i, entry := range r.Admins {
		if entry.Email == "" {
			return nil, fmt.Errorf("roster entry %d has no email", i)
		}
		if seen[entry.Email] {
			return nil, fmt.Errorf("duplicate roster entry for %s", entry.Email)
		}
		seen[entry.Email] = true
	}
	return &r, nil
}
