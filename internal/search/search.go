// Package search implements the incremental search engine shared by the
// command palette and the dashboard search box, plus the per-surface session
// that tracks query, results, and keyboard selection.
package search

import "strings"

// Kind distinguishes where a search document came from.
type Kind int

const (
	KindCatalog Kind = iota
	KindHistory
)

// Doc is one searchable item. The corpus is rebuilt by the caller on every
// search; docs are never retained by the engine.
type Doc struct {
	ID    string
	Label string
	Kind  Kind
}

// Result carries enough identity to resolve either a navigation (catalog) or
// a history lookup. Results are transient and recomputed on every query
// change.
type Result struct {
	SourceID string
	Label    string
	Kind     Kind
}

// PaletteLimit caps results for the combined palette corpus.
const PaletteLimit = 10

// Engine filters a corpus by substring match. The suggestion list for empty
// queries is fixed at construction and independent of later corpora.
type Engine struct {
	suggestions []Result
}

// NewEngine builds an engine whose empty-query result is the given fixed
// suggestion list.
func NewEngine(suggestions []Doc) *Engine {
	fixed := make([]Result, 0, len(suggestions))
	for _, d := range suggestions {
		fixed = append(fixed, Result{SourceID: d.ID, Label: d.Label, Kind: d.Kind})
	}
	return &Engine{suggestions: fixed}
}

// Search filters corpus by query. An empty or whitespace-only query returns
// the fixed suggestion list. Otherwise a doc is included when the query is a
// case-insensitive substring of its label or id; corpus order is preserved
// and no relevance scoring is applied. Docs with empty labels are skipped.
// limit > 0 caps the result length; limit <= 0 means unbounded.
func (e *Engine) Search(query string, corpus []Doc, limit int) []Result {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]Result, len(e.suggestions))
		copy(out, e.suggestions)
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
		return out
	}

	var out []Result
	for _, d := range corpus {
		if d.Label == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(d.Label), q) && !strings.Contains(strings.ToLower(d.ID), q) {
			continue
		}
		out = append(out, Result{SourceID: d.ID, Label: d.Label, Kind: d.Kind})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
