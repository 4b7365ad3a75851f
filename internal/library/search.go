package library

import (
	"sort"
	"strings"

	"github.com/piatra-automation/strudel-snippets/internal/errors"
)

// DefaultMaxResults is the result cap applied when Options.MaxResults is zero.
const DefaultMaxResults = 20

// Options configures Search. The zero value matches against name and path
// only, applies no category filter, and uses the default result cap.
// Defaults are resolved once at the call boundary, never mid-scan.
type Options struct {
	// InText extends matching to the snippet body.
	InText bool

	// Category restricts results to one category (case-insensitive equality).
	Category string

	// MaxResults caps the number of candidates collected. Zero means
	// DefaultMaxResults; negative values are rejected.
	MaxResults int
}

// Result pairs a matched entry with its computed relevance score.
type Result struct {
	*Entry
	Score int `json:"score"`
}

// Search scans the index in construction order, collecting entries whose
// name, path, or (with InText) body contains the query case-insensitively,
// then orders them by descending score. Ties keep index order; the sort is
// stable by contract, not as an optimization.
//
// The scan stops collecting once MaxResults candidates are found, before
// ranking. The cap therefore truncates the candidate set, not the ranked
// output: results reflect the best of the first MaxResults matches in index
// order rather than the global top scores. This mirrors the behavior the
// library has always had and is kept deliberately.
//
// Scoring: exact name equality scores 100; otherwise a name substring match
// scores 50; otherwise a path substring match scores 25. The snippet's folder
// depth is subtracted, so shallower entries rank higher at equal relevance.
func (l *Library) Search(query string, opts Options) ([]Result, error) {
	if opts.MaxResults < 0 {
		return nil, errors.NewInvalidRequest("max_results must not be negative")
	}
	limit := opts.MaxResults
	if limit == 0 {
		limit = DefaultMaxResults
	}

	q := strings.ToLower(query)
	results := []Result{}

	for _, e := range l.order {
		if len(results) >= limit {
			break
		}
		if opts.Category != "" && !strings.EqualFold(e.Category, opts.Category) {
			continue
		}

		name := strings.ToLower(e.Name)
		path := strings.ToLower(e.Path)

		matched := strings.Contains(name, q) || strings.Contains(path, q) ||
			(opts.InText && strings.Contains(strings.ToLower(e.Text), q))
		if !matched {
			continue
		}

		score := 0
		switch {
		case name == q:
			score += 100
		case strings.Contains(name, q):
			score += 50
		case strings.Contains(path, q):
			score += 25
		}
		score -= e.Depth()

		results = append(results, Result{Entry: e, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}
