package search

import (
	"sort"
	"strings"

	"github.com/egoavara/plugin-directory/internal/marketplace"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a search result
type SearchResult struct {
	Entry marketplace.Entry
	Score int // Higher is better
}

// EntrySearchable wraps directory entries for fuzzy searching
type EntrySearchable []marketplace.Entry

// String returns the searchable string for an entry
func (s EntrySearchable) String(i int) string {
	e := s[i]
	parts := []string{e.Name, e.ID}

	if e.Description != "" {
		parts = append(parts, e.Description)
	}
	if e.Author != "" {
		parts = append(parts, e.Author)
	}

	parts = append(parts, e.Tags...)

	if e.Category != "" {
		parts = append(parts, e.Category)
	}

	return strings.ToLower(strings.Join(parts, " "))
}

// Len returns the number of entries
func (s EntrySearchable) Len() int {
	return len(s)
}

// FuzzySearch performs a fuzzy search across all entries
func FuzzySearch(entries []marketplace.Entry, query string) []SearchResult {
	var results []SearchResult
	query = strings.ToLower(query)

	for _, match := range fuzzy.FindFrom(query, EntrySearchable(entries)) {
		results = append(results, SearchResult{
			Entry: entries[match.Index],
			Score: match.Score,
		})
	}

	// Sort by score (descending), keeping directory order on ties
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// SimpleSearch performs a simple substring search
func SimpleSearch(entries []marketplace.Entry, query string) []SearchResult {
	var results []SearchResult
	query = strings.ToLower(query)

	for _, e := range entries {
		if matchesQuery(e, query) {
			results = append(results, SearchResult{
				Entry: e,
				Score: 100, // Default score for simple matches
			})
		}
	}

	return results
}

// matchesQuery checks if an entry matches the search query
func matchesQuery(e marketplace.Entry, query string) bool {
	fields := []string{e.ID, e.Name, e.Description, e.Author, e.Category}
	fields = append(fields, e.Tags...)
	fields = append(fields, e.Permissions...)

	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
