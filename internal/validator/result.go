package validator

import (
	"github.com/egoavara/plugin-directory/internal/plugin"
)

// Check is a single named pass/fail entry in a validation result
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// Result accumulates checks, warnings and errors for one submission
type Result struct {
	File     string           `json:"file"`
	PluginID string           `json:"pluginId,omitempty"`
	Passed   bool             `json:"passed"`
	Checks   []Check          `json:"checks"`
	Warnings []string         `json:"warnings"`
	Errors   []string         `json:"errors"`
	Manifest *plugin.Manifest `json:"manifest"`
}

// NewResult creates an empty, passing result for file
func NewResult(file string) *Result {
	return &Result{
		File:     file,
		Passed:   true,
		Checks:   []Check{},
		Warnings: []string{},
		Errors:   []string{},
	}
}

// AddCheck records a check and returns passed so callers can branch on it
func (r *Result) AddCheck(name string, passed bool, detail string) bool {
	r.Checks = append(r.Checks, Check{Name: name, Passed: passed, Detail: detail})
	if !passed {
		r.Passed = false
	}
	return passed
}

// AddWarning records an advisory message; it never affects Passed
func (r *Result) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// AddError records a submission-fatal message and marks the result failed
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Passed = false
}

// FailedChecks returns the checks that did not pass
func (r *Result) FailedChecks() []Check {
	var failed []Check
	for _, c := range r.Checks {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}

// FindCheck returns the named check, or nil when it never ran
func (r *Result) FindCheck(name string) *Check {
	for i := range r.Checks {
		if r.Checks[i].Name == name {
			return &r.Checks[i]
		}
	}
	return nil
}
