package domain

import (
	"math"
	"sort"
)

// SortQuestions returns a copy of questions stably ordered by declared section
// order, then by question ID. Questions whose type matches no section sort last.
func SortQuestions(questions []Question, defs []SectionDefinition) []Question {
	order := make(map[string]int, len(defs))
	for i, def := range defs {
		if _, dup := order[def.Key]; !dup {
			order[def.Key] = i
		}
	}
	rank := func(q Question) int {
		if pos, ok := order[q.Type]; ok && q.Type != "" {
			return pos
		}
		return math.MaxInt
	}

	sorted := make([]Question, len(questions))
	copy(sorted, questions)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := rank(sorted[i]), rank(sorted[j])
		if ri != rj {
			return ri < rj
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
