package plugin

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const (
	// ManifestFile is the manifest filename at the repository root
	ManifestFile = "manifest.json"
)

var (
	// RequiredManifestFields lists manifest fields every plugin must declare
	RequiredManifestFields = []string{"id", "name", "version", "minAppVersion", "author", "description", "main", "permissions"}

	// semverRegex validates MAJOR.MINOR.PATCH with optional pre-release and build metadata
	semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?$`)

	manifestSchemaLoader = gojsonschema.NewStringLoader(ManifestSchema)
)

// ShapeProblems describes how a manifest deviates from ManifestSchema
type ShapeProblems struct {
	Missing []string // required fields absent, null or empty
	Invalid []string // fields present with the wrong type
}

// OK returns true when the manifest has no shape problems
func (p ShapeProblems) OK() bool {
	return len(p.Missing) == 0 && len(p.Invalid) == 0
}

// CheckManifestObject ensures data is a JSON object
func CheckManifestObject(data []byte) error {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("manifest.json is not a valid JSON object: %w", err)
	}
	if obj == nil {
		return fmt.Errorf("manifest.json is not a valid JSON object")
	}
	return nil
}

// CheckManifestShape validates data against ManifestSchema
func CheckManifestShape(data []byte) (ShapeProblems, error) {
	result, err := gojsonschema.Validate(manifestSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return ShapeProblems{}, fmt.Errorf("schema validation error: %w", err)
	}

	missing := make(map[string]bool)
	var problems ShapeProblems
	for _, re := range result.Errors() {
		switch re.Type() {
		case "required":
			if prop, ok := re.Details()["property"].(string); ok {
				missing[prop] = true
			}
		case "string_gte":
			missing[re.Field()] = true
		case "invalid_type":
			if re.Value() == nil {
				missing[re.Field()] = true
				continue
			}
			problems.Invalid = append(problems.Invalid, fmt.Sprintf("%s: %s", re.Field(), re.Description()))
		default:
			problems.Invalid = append(problems.Invalid, fmt.Sprintf("%s: %s", re.Field(), re.Description()))
		}
	}

	// Keep declaration order so reports are stable
	for _, field := range RequiredManifestFields {
		if missing[field] {
			problems.Missing = append(problems.Missing, field)
		}
	}

	return problems, nil
}

// DecodeManifest parses manifest JSON bytes
func DecodeManifest(data []byte) (*Manifest, error) {
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest JSON: %w", err)
	}
	return &manifest, nil
}

// LoadManifest runs the object, shape and decode steps in order.
// Used where a single error is enough to reject a manifest.
func LoadManifest(data []byte) (*Manifest, error) {
	if err := CheckManifestObject(data); err != nil {
		return nil, err
	}

	problems, err := CheckManifestShape(data)
	if err != nil {
		return nil, err
	}
	if len(problems.Missing) > 0 {
		return nil, fmt.Errorf("manifest.json missing required fields: %s", strings.Join(problems.Missing, ", "))
	}
	if len(problems.Invalid) > 0 {
		return nil, fmt.Errorf("manifest.json has invalid fields: %s", strings.Join(problems.Invalid, "; "))
	}

	return DecodeManifest(data)
}

// IsValidSemver reports whether version is MAJOR.MINOR.PATCH[-pre][+build]
func IsValidSemver(version string) bool {
	return semverRegex.MatchString(version)
}
