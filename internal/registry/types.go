// Package registry implements the data model and merge-gate validation for the
// MBII community repositories.json registry.
package registry

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GitHubURLPrefix is the required prefix for every entry URL. An entry's URL
// must be exactly this prefix followed by the entry name.
const GitHubURLPrefix = "https://github.com/"

// Entry represents a single community project record in repositories.json.
type Entry struct {
	// Name is the GitHub identifier in 'owner/repo' form, unique across the registry.
	Name string `json:"name" yaml:"name"`

	// CustomName is the human-readable label shown to users.
	CustomName string `json:"custom_name" yaml:"custom_name"`

	// Description is optional; consumers fall back to the GitHub repository
	// description when it is absent.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// URL is the repository URL, always derivable as GitHubURLPrefix + Name.
	URL string `json:"url" yaml:"url"`
}

// Key returns the case-insensitive identity of the entry, used for duplicate
// detection and diffing. GitHub identifiers are case-insensitive.
func (e Entry) Key() string {
	return strings.ToLower(e.Name)
}

// Owner returns the '{owner}' segment of the entry name, or an empty string
// when the name is not in 'owner/repo' form.
func (e Entry) Owner() string {
	owner, _, ok := strings.Cut(e.Name, "/")
	if !ok {
		return ""
	}
	return owner
}

// Repo returns the '{repo}' segment of the entry name, or an empty string
// when the name is not in 'owner/repo' form.
func (e Entry) Repo() string {
	_, repo, ok := strings.Cut(e.Name, "/")
	if !ok {
		return ""
	}
	return repo
}

// Registry is the ordered collection of community project records.
// Order reflects historical merge order and is preserved on load, but carries
// no meaning for lookup.
type Registry []Entry

// Parse decodes registry data into an ordered Registry.
// It is intended for consumers that need the entries themselves (list, diff,
// liveness checks) and reports only syntactic/type failures; use Validate for
// the full merge-gate rule set.
func Parse(data []byte) (Registry, error) {
	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse registry document: %w", err)
	}
	return reg, nil
}
