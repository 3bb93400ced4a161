package validator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/egoavara/plugin-directory/internal/git"
	"github.com/egoavara/plugin-directory/internal/plugin"
	"github.com/egoavara/plugin-directory/internal/policy"
	"github.com/rs/zerolog"
)

// Check names, as they appear in reports
const (
	CheckValidJSON      = "Valid JSON"
	CheckRequiredFields = "Required fields"
	CheckIDFormat       = "Valid ID format"
	CheckFilename       = "Filename matches ID"
	CheckRepoAccessible = "Repo accessible"
	CheckManifestJSON   = "Valid manifest JSON"
	CheckManifestFields = "Manifest required fields"
	CheckManifestID     = "Manifest ID matches"
	CheckVersion        = "Valid version"
	CheckPermissions    = "Valid permissions"
	CheckMainFile       = "Main file accessible"
)

// Validator runs the submission validation pipeline
type Validator struct {
	fetcher        *git.Fetcher
	submissionsDir string
	logger         zerolog.Logger
}

// New creates a new validator. submissionsDir is scanned for duplicate IDs.
func New(fetcher *git.Fetcher, submissionsDir string, logger zerolog.Logger) *Validator {
	return &Validator{
		fetcher:        fetcher,
		submissionsDir: submissionsDir,
		logger:         logger.With().Str("component", "validator").Logger(),
	}
}

// run carries the state of validating one submission
type run struct {
	ctx          context.Context
	path         string
	submission   *plugin.Submission
	manifestData []byte
	manifest     *plugin.Manifest
	result       *Result
}

// step is one stage of the pipeline. A failed blocking step stops the run.
type step struct {
	name     string
	blocking bool
	fn       func(v *Validator, r *run) bool
}

var pipeline = []step{
	{"parse submission", true, (*Validator).checkParse},
	{"required fields", true, (*Validator).checkRequiredFields},
	{"identifier format", true, (*Validator).checkIDFormat},
	{"filename", false, (*Validator).checkFilename},
	{"duplicates", false, (*Validator).checkDuplicates},
	{"fetch manifest", true, (*Validator).checkFetchManifest},
	{"manifest fields", true, (*Validator).checkManifestFields},
	{"manifest id", false, (*Validator).checkManifestID},
	{"version", false, (*Validator).checkVersion},
	{"permissions", false, (*Validator).checkPermissions},
	{"dangerous permissions", false, (*Validator).adviseDangerousPermissions},
	{"optional fields", false, (*Validator).adviseOptionalFields},
	{"permission count", false, (*Validator).advisePermissionCount},
	{"min app version", false, (*Validator).adviseMinAppVersion},
	{"source scan", false, (*Validator).checkSource},
}

// Validate runs every check against the submission file at path
func (v *Validator) Validate(ctx context.Context, path string) *Result {
	r := &run{ctx: ctx, path: path, result: NewResult(path)}

	for _, s := range pipeline {
		if ok := s.fn(v, r); !ok && s.blocking {
			v.logger.Debug().Str("file", path).Str("step", s.name).Msg("Blocking check failed, stopping")
			break
		}
	}

	v.logger.Info().
		Str("file", path).
		Str("plugin", r.result.PluginID).
		Bool("passed", r.result.Passed).
		Int("warnings", len(r.result.Warnings)).
		Msg("Validated submission")

	return r.result
}

// ValidateAll validates each file in order
func (v *Validator) ValidateAll(ctx context.Context, paths []string) []*Result {
	results := make([]*Result, 0, len(paths))
	for _, path := range paths {
		results = append(results, v.Validate(ctx, path))
	}
	return results
}

func (v *Validator) checkParse(r *run) bool {
	data, err := os.ReadFile(r.path)
	if err != nil {
		r.result.AddCheck(CheckValidJSON, false, err.Error())
		r.result.AddError(fmt.Sprintf("Could not read %s: %v", r.path, err))
		return false
	}

	sub, err := plugin.ParseSubmission(data)
	if errors.Is(err, plugin.ErrMalformedSubmission) {
		r.result.AddCheck(CheckValidJSON, true, "")
		r.result.AddCheck(CheckRequiredFields, false, err.Error())
		r.result.AddError(fmt.Sprintf("Malformed submission record in %s", filepath.Base(r.path)))
		return false
	}
	if err != nil {
		r.result.AddCheck(CheckValidJSON, false, err.Error())
		r.result.AddError(fmt.Sprintf("Invalid JSON in %s", filepath.Base(r.path)))
		return false
	}

	r.submission = sub
	r.result.PluginID = sub.ID
	return r.result.AddCheck(CheckValidJSON, true, "")
}

func (v *Validator) checkRequiredFields(r *run) bool {
	missing := r.submission.MissingFields()
	return r.result.AddCheck(CheckRequiredFields, len(missing) == 0, failDetail(len(missing) == 0, "missing: "+strings.Join(missing, ", ")))
}

func (v *Validator) checkIDFormat(r *run) bool {
	ok := plugin.IsValidIdentifier(r.submission.ID)
	return r.result.AddCheck(CheckIDFormat, ok, failDetail(ok, "invalid format: "+r.submission.ID))
}

func (v *Validator) checkFilename(r *run) bool {
	expected := r.submission.ExpectedFilename()
	ok := filepath.Base(r.path) == expected
	return r.result.AddCheck(CheckFilename, ok, failDetail(ok, "expected "+expected))
}

func (v *Validator) checkDuplicates(r *run) bool {
	if v.submissionsDir == "" {
		return true
	}

	paths, err := plugin.ListSubmissions(v.submissionsDir)
	if err != nil {
		v.logger.Debug().Err(err).Msg("Skipping duplicate check")
		return true
	}

	self, _ := filepath.Abs(r.path)
	for _, other := range paths {
		if abs, _ := filepath.Abs(other); abs == self {
			continue
		}
		sub, err := plugin.LoadSubmission(other)
		if err != nil {
			continue
		}
		if sub.ID == r.submission.ID {
			r.result.AddWarning(fmt.Sprintf("Plugin ID %s already exists in %s - this will update the existing entry",
				sub.ID, filepath.Base(other)))
		}
	}
	return true
}

func (v *Validator) checkFetchManifest(r *run) bool {
	data, err := v.fetcher.Fetch(r.ctx, r.submission.Repo, plugin.ManifestFile, "")
	if err != nil {
		detail := err.Error()
		if errors.Is(err, git.ErrUnparseableURL) {
			detail = "could not parse GitHub URL: " + r.submission.Repo
		}
		r.result.AddCheck(CheckRepoAccessible, false, detail)
		r.result.AddError(fmt.Sprintf("Could not fetch %s from %s", plugin.ManifestFile, r.submission.Repo))
		return false
	}
	r.result.AddCheck(CheckRepoAccessible, true, "")

	if err := plugin.CheckManifestObject(data); err != nil {
		r.result.AddCheck(CheckManifestJSON, false, err.Error())
		r.result.AddError(fmt.Sprintf("%s in %s is not valid JSON", plugin.ManifestFile, r.submission.Repo))
		return false
	}

	r.manifestData = data
	// Wrong field types are reported by the shape check; keep the manifest nil until it decodes
	if m, err := plugin.DecodeManifest(data); err == nil {
		r.manifest = m
		r.result.Manifest = m
	}
	return true
}

func (v *Validator) checkManifestFields(r *run) bool {
	problems, err := plugin.CheckManifestShape(r.manifestData)
	if err != nil {
		return r.result.AddCheck(CheckManifestFields, false, err.Error())
	}

	var details []string
	if len(problems.Missing) > 0 {
		details = append(details, "missing: "+strings.Join(problems.Missing, ", "))
	}
	if len(problems.Invalid) > 0 {
		details = append(details, "invalid: "+strings.Join(problems.Invalid, "; "))
	}
	if !problems.OK() || r.manifest == nil {
		if len(details) == 0 {
			details = append(details, "manifest could not be decoded")
		}
		return r.result.AddCheck(CheckManifestFields, false, strings.Join(details, "; "))
	}
	return r.result.AddCheck(CheckManifestFields, true, "")
}

func (v *Validator) checkManifestID(r *run) bool {
	ok := r.manifest.ID == r.submission.ID
	return r.result.AddCheck(CheckManifestID, ok,
		failDetail(ok, fmt.Sprintf("manifest has %s, submission has %s", r.manifest.ID, r.submission.ID)))
}

func (v *Validator) checkVersion(r *run) bool {
	ok := plugin.IsValidSemver(r.manifest.Version)
	return r.result.AddCheck(CheckVersion, ok, failDetail(ok, "invalid: "+r.manifest.Version))
}

func (v *Validator) checkPermissions(r *run) bool {
	invalid := policy.InvalidPermissions(r.manifest.Permissions)
	return r.result.AddCheck(CheckPermissions, len(invalid) == 0, failDetail(len(invalid) == 0, "invalid: "+strings.Join(invalid, ", ")))
}

func (v *Validator) adviseDangerousPermissions(r *run) bool {
	if dangerous := policy.Dangerous(r.manifest.Permissions); len(dangerous) > 0 {
		r.result.AddWarning(fmt.Sprintf("Requests sensitive permissions: %s - please explain why they are needed",
			strings.Join(dangerous, ", ")))
	}
	return true
}

func (v *Validator) adviseOptionalFields(r *run) bool {
	if r.manifest.HelpURL == "" {
		r.result.AddWarning("No helpUrl provided - users will have no link to documentation")
	}
	if r.manifest.Category == "" {
		r.result.AddWarning("No category set - the plugin will be listed as uncategorized")
	}
	return true
}

func (v *Validator) advisePermissionCount(r *run) bool {
	if n := len(r.manifest.Permissions); n > policy.MaxPermissionsBeforeReview {
		r.result.AddWarning(fmt.Sprintf("Requests %d permissions - please review whether all are necessary", n))
	}
	return true
}

func (v *Validator) adviseMinAppVersion(r *run) bool {
	if _, err := semver.NewVersion(r.manifest.MinAppVersion); err != nil {
		r.result.AddWarning(fmt.Sprintf("minAppVersion %q is not a valid version", r.manifest.MinAppVersion))
	}
	return true
}

func (v *Validator) checkSource(r *run) bool {
	main := r.manifest.Main
	data, err := v.fetcher.Fetch(r.ctx, r.submission.Repo, main, "")
	if err != nil {
		r.result.AddCheck(CheckMainFile, false, err.Error())
		return false
	}
	r.result.AddCheck(CheckMainFile, true, "")

	if len(data) > policy.MaxSourceBytes {
		r.result.AddWarning(fmt.Sprintf("%s is large (%.1f MB) - consider minifying or splitting it",
			main, float64(len(data))/float64(1<<20)))
	}

	for _, f := range policy.ScanSource(string(data)) {
		r.result.AddWarning(fmt.Sprintf("Potentially unsafe pattern in %s: %s", main, f.Label))
	}
	return true
}

// failDetail returns detail only for failed checks
func failDetail(passed bool, detail string) string {
	if passed {
		return ""
	}
	return detail
}
