package match

import (
	"sort"
)

// DefaultThreshold is the minimum IdentSimilarity for Closest to suggest a
// candidate.
const DefaultThreshold = 0.6

// Candidate is one known name scored against a query.
type Candidate struct {
	Name  string
	Score float64
	// Exact is set when the names are equal after normalization but differ
	// as written, e.g. "string" against "String".
	Exact bool
}

// CandidateList is sorted by descending score, then by name.
type CandidateList []Candidate

func (c CandidateList) Len() int { return len(c) }

func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Best returns the highest ranked candidate.
func (c CandidateList) Best() (Candidate, bool) {
	if len(c) == 0 {
		return Candidate{}, false
	}

	return c[0], true
}

// Rank scores every known name against query. Names equal to query as
// written are skipped: they are not a near miss.
func Rank(query string, known []string) CandidateList {
	norm := NormalizeIdent(query)
	list := make(CandidateList, 0, len(known))

	for _, name := range known {
		if name == query {
			continue
		}

		other := NormalizeIdent(name)

		list = append(list, Candidate{
			Name:  name,
			Score: Similarity(norm, other),
			Exact: norm == other,
		})
	}

	sort.Sort(list)

	return list
}

// Closest returns the best candidate scoring at least threshold.
func Closest(query string, known []string, threshold float64) (string, bool) {
	best, ok := Rank(query, known).Best()
	if !ok || best.Score < threshold {
		return "", false
	}

	return best.Name, true
}
