package policy

import "regexp"

// MaxSourceBytes is the entry file size above which a size warning is raised
const MaxSourceBytes = 1 << 20 // 1 MiB

// RiskyPattern is a lexical pattern reviewers should look at
type RiskyPattern struct {
	Re    *regexp.Regexp
	Label string
}

// RiskyPatterns is scanned in order against fetched entry files.
// Matches inside comments or string literals are reported too.
var RiskyPatterns = []RiskyPattern{
	{regexp.MustCompile(`\beval\s*\(`), "eval()"},
	{regexp.MustCompile(`\bnew\s+Function\s*\(`), "new Function()"},
	{regexp.MustCompile(`\bdocument\.write(ln)?\s*\(`), "document.write()"},
	{regexp.MustCompile(`\.(inner|outer)HTML\s*=[^=]`), "innerHTML assignment"},
	{regexp.MustCompile("\\bfetch\\s*\\(\\s*`[^`]*\\$\\{"), "fetch() with dynamic URL"},
}

// Finding is a risky pattern present in a source text
type Finding struct {
	Label string
	Count int
}

// ScanSource returns one finding per pattern that matches at least once
func ScanSource(src string) []Finding {
	var findings []Finding
	for _, p := range RiskyPatterns {
		matches := p.Re.FindAllStringIndex(src, -1)
		if len(matches) == 0 {
			continue
		}
		findings = append(findings, Finding{Label: p.Label, Count: len(matches)})
	}
	return findings
}
