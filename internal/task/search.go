package task

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// searchSource adapts a task slice to fuzzy.Source.
type searchSource []Task

func (s searchSource) String(i int) string {
	t := s[i]
	if t.Description == "" {
		return t.Title
	}
	return t.Title + " " + t.Description
}

func (s searchSource) Len() int {
	return len(s)
}

// Match is a search hit.
type Match struct {
	Task Task
	// Positions are the matched byte offsets within the title, for highlighting.
	Positions []int
	Score     int
}

// Search fuzzy-matches query against titles and descriptions, best first.
// An empty query returns nil.
func (s *Store) Search(query string) []Task {
	matches := s.SearchMatches(query)
	if matches == nil {
		return nil
	}
	out := make([]Task, len(matches))
	for i, m := range matches {
		out[i] = m.Task
	}
	return out
}

// SearchMatches is Search with match positions and scores.
func (s *Store) SearchMatches(query string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	src := searchSource(s.List())
	found := fuzzy.FindFrom(query, src)
	out := make([]Match, 0, len(found))
	for _, f := range found {
		t := src[f.Index]
		var positions []int
		for _, p := range f.MatchedIndexes {
			if p < len(t.Title) {
				positions = append(positions, p)
			}
		}
		out = append(out, Match{Task: t, Positions: positions, Score: f.Score})
	}
	return out
}
