package plugin

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// identifierPartRegex validates one dot-separated identifier segment
var identifierPartRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// ErrMalformedSubmission marks syntactically valid JSON that is not a submission record
var ErrMalformedSubmission = errors.New("malformed submission record")

// ParseSubmission parses a submission record from JSON bytes.
// Syntax errors and wrong field types are told apart by ErrMalformedSubmission.
func ParseSubmission(data []byte) (*Submission, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse submission JSON: %w", err)
	}

	var sub Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSubmission, err)
	}
	return &sub, nil
}

// LoadSubmission reads and parses a submission file
func LoadSubmission(path string) (*Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read submission: %w", err)
	}
	return ParseSubmission(data)
}

// MissingFields returns the names of absent or empty required fields, in record order
func (s *Submission) MissingFields() []string {
	var missing []string
	fields := []struct {
		name  string
		value string
	}{
		{"id", s.ID},
		{"name", s.Name},
		{"description", s.Description},
		{"author", s.Author},
		{"repo", s.Repo},
	}
	for _, f := range fields {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// ExpectedFilename returns the file name a submission must be stored under
func (s *Submission) ExpectedFilename() string {
	return s.ID + ".json"
}

// IsValidIdentifier reports whether id is a reverse-domain style identifier:
// at least two dot-separated parts of lowercase alphanumerics with inner hyphens.
func IsValidIdentifier(id string) bool {
	parts := strings.Split(id, ".")
	if len(parts) < 2 {
		return false
	}
	for _, part := range parts {
		if !identifierPartRegex.MatchString(part) {
			return false
		}
	}
	return true
}

// ListSubmissions returns the *.json files in dir, sorted by file name
func ListSubmissions(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read submissions directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	return paths, nil
}
