package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/egoavara/plugin-directory/internal/validator"
)

// Output is the machine-readable validation document read by CI automation
type Output struct {
	AllPassed bool                `json:"allPassed"`
	Results   []*validator.Result `json:"results"`
	Markdown  string              `json:"markdown"`
}

// NewOutput builds the output document for results
func NewOutput(results []*validator.Result) *Output {
	allPassed := true
	for _, r := range results {
		if !r.Passed {
			allPassed = false
		}
	}
	if results == nil {
		results = []*validator.Result{}
	}
	return &Output{
		AllPassed: allPassed,
		Results:   results,
		Markdown:  MarkdownAll(results),
	}
}

// WriteOutput saves the output document as indented JSON
func WriteOutput(path string, out *Output) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode validation output: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write validation output: %w", err)
	}
	return nil
}
