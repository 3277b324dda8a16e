// Package similarity scores requirements against each other by cosine similarity.
package similarity

import (
	"fmt"
	"math"

	"nfrtrace/internal/domain"
	"nfrtrace/internal/vectorspace"
)

// Cosine returns the cosine similarity of a and b. Zero vectors, and any
// result that is not a number, score 0.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	s := dot / (math.Sqrt(na) * math.Sqrt(nb))
	if math.IsNaN(s) {
		return 0
	}
	return s
}

// Matrix computes the full symmetric similarity matrix of the weight rows.
// The diagonal is 1 for non-zero rows and 0 for empty ones.
func Matrix(m *vectorspace.WeightMatrix) [][]float64 {
	n := len(m.Rows)
	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		if !isZero(m.Rows[i]) {
			sim[i][i] = 1
		}
		for j := i + 1; j < n; j++ {
			s := Cosine(m.Rows[i], m.Rows[j])
			sim[i][j] = s
			sim[j][i] = s
		}
	}
	return sim
}

// Score extracts the NFR x FR block of the similarity matrix. ids names the
// matrix rows in corpus order; the first nfrCount are NFRs. Each NFR gets one
// candidate per FR, in FR corpus order, with unrounded scores.
func Score(m *vectorspace.WeightMatrix, ids []string, nfrCount int) (domain.CandidateSet, error) {
	if len(ids) != len(m.Rows) {
		return domain.CandidateSet{}, fmt.Errorf("%w: %d ids for %d matrix rows", domain.ErrInvalidCorpus, len(ids), len(m.Rows))
	}
	if nfrCount < 1 || nfrCount > len(ids) {
		return domain.CandidateSet{}, fmt.Errorf("%w: nfr count %d for %d rows", domain.ErrInvalidCorpus, nfrCount, len(ids))
	}
	sim := Matrix(m)
	set := domain.CandidateSet{
		NFRs:  append([]string(nil), ids[:nfrCount]...),
		Lists: make(map[string]domain.CandidateList, nfrCount),
	}
	for i := 0; i < nfrCount; i++ {
		list := make(domain.CandidateList, 0, len(ids)-nfrCount)
		for j := nfrCount; j < len(ids); j++ {
			list = append(list, domain.Candidate{FRID: ids[j], Score: sim[i][j]})
		}
		set.Lists[ids[i]] = list
	}
	return set, nil
}

func isZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
