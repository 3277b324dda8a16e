// Package trace turns per-NFR candidate scores into an FR-indexed trace matrix.
package trace

import "nfrtrace/internal/domain"

// Binarize transposes set into one row per FR, one bit per NFR in set.NFRs
// order. A bit is 1 only when the score is strictly greater than threshold.
// FR order follows the first NFR's list; an FR missing from some other NFR's
// list scores 0 there. The threshold is a caller decision with no default.
func Binarize(set domain.CandidateSet, threshold float64) domain.TraceMatrix {
	m := domain.TraceMatrix{
		NFRs: append([]string(nil), set.NFRs...),
		Rows: make(map[string][]int),
	}
	if len(set.NFRs) == 0 {
		return m
	}

	lookup := make([]map[string]float64, len(set.NFRs))
	for k, nfr := range set.NFRs {
		scores := make(map[string]float64, len(set.Lists[nfr]))
		for _, c := range set.Lists[nfr] {
			scores[c.FRID] = c.Score
		}
		lookup[k] = scores
	}

	for _, c := range set.Lists[set.NFRs[0]] {
		if _, dup := m.Rows[c.FRID]; dup {
			continue
		}
		row := make([]int, len(set.NFRs))
		for k := range set.NFRs {
			if lookup[k][c.FRID] > threshold {
				row[k] = 1
			}
		}
		m.FRs = append(m.FRs, c.FRID)
		m.Rows[c.FRID] = row
	}
	return m
}

// Links returns the number of 1 bits in m.
func Links(m domain.TraceMatrix) int {
	n := 0
	for _, row := range m.Rows {
		for _, b := range row {
			n += b
		}
	}
	return n
}

// Link is one traced FR/NFR pair.
type Link struct {
	FR  string `json:"fr"`
	NFR string `json:"nfr"`
}

// LinkList returns the 1 bits of m in FR order, then NFR order.
func LinkList(m domain.TraceMatrix) []Link {
	var out []Link
	for _, fr := range m.FRs {
		for k, b := range m.Row(fr) {
			if b == 1 && k < len(m.NFRs) {
				out = append(out, Link{FR: fr, NFR: m.NFRs[k]})
			}
		}
	}
	return out
}
