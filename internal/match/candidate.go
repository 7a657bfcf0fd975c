package match

import (
	"sort"
	"strings"
)

// Candidate is a known name scored against a requested one.
type Candidate struct {
	Name string

	// Score is the best normalized Levenshtein similarity (0-1) between the
	// requested name and either the full candidate name or its short name.
	Score float64
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates scores every known name against name.
// Returns candidates sorted by score (descending).
func RankCandidates(name string, known []string) CandidateList {
	candidates := make(CandidateList, 0, len(known))

	short := shortName(name)

	for _, k := range known {
		if k == name {
			continue
		}

		score := NameSimilarity(name, k)

		// Compare short names too, so a typo in the last segment is not
		// drowned by a long shared namespace.
		if shortScore := TypeNameSimilarity(short, shortName(k)); shortScore > score {
			score = shortScore
		}

		candidates = append(candidates, Candidate{Name: k, Score: score})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns up to limit names similar to name, best first.
func Suggest(name string, known []string, limit int) []string {
	ranked := RankCandidates(name, known).AboveThreshold(DefaultMinScore).Top(limit)

	names := make([]string, len(ranked))
	for i, c := range ranked {
		names[i] = c.Name
	}

	return names
}

func shortName(name string) string {
	if idx := strings.LastIndexAny(name, ".#/"); idx != -1 {
		return name[idx+1:]
	}

	return name
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by name for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n < 0 || n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// AboveThreshold returns candidates with score at or above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// DefaultMinScore is the minimum similarity for a name to be suggested.
const DefaultMinScore = 0.7
