package library

import "sort"

// CategoryStats aggregates one category's entry count and the distinct
// subcategories seen under it.
type CategoryStats struct {
	Count         int      `json:"count"`
	Subcategories []string `json:"subcategories"`
}

// Stats summarizes the whole index.
type Stats struct {
	TotalSnippets int                      `json:"total_snippets"`
	Categories    int                      `json:"categories"`
	Detail        map[string]CategoryStats `json:"categories_detail"`
}

// Stats aggregates per-category counts and subcategory sets in a single pass.
func (l *Library) Stats() Stats {
	counts := make(map[string]int)
	subs := make(map[string]map[string]bool)

	for _, e := range l.order {
		counts[e.Category]++
		if e.Subcategory != "" {
			if subs[e.Category] == nil {
				subs[e.Category] = make(map[string]bool)
			}
			subs[e.Category][e.Subcategory] = true
		}
	}

	detail := make(map[string]CategoryStats, len(counts))
	for cat, count := range counts {
		names := make([]string, 0, len(subs[cat]))
		for sub := range subs[cat] {
			names = append(names, sub)
		}
		sort.Strings(names)
		detail[cat] = CategoryStats{Count: count, Subcategories: names}
	}

	return Stats{
		TotalSnippets: len(l.order),
		Categories:    len(counts),
		Detail:        detail,
	}
}
