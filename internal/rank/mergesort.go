// Package rank orders candidate lists by descending similarity.
package rank

import (
	"fmt"

	"nfrtrace/internal/domain"
)

// Rank returns a new list sorted by descending score. It is a top-down merge
// sort: equal scores keep their input order because the merge takes from the
// left half on ties. The input is never modified.
func Rank(list domain.CandidateList) domain.CandidateList {
	if len(list) == 0 {
		return domain.CandidateList{}
	}
	if len(list) == 1 {
		return domain.CandidateList{list[0]}
	}
	mid := len(list) / 2
	return merge(Rank(list[:mid]), Rank(list[mid:]))
}

func merge(left, right domain.CandidateList) domain.CandidateList {
	out := make(domain.CandidateList, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if left[i].Score >= right[j].Score {
			out = append(out, left[i])
			i++
		} else {
			out = append(out, right[j])
			j++
		}
	}
	out = append(out, left[i:]...)
	out = append(out, right[j:]...)
	return out
}

// RankAll ranks every list of set into a new set with the same NFR order.
func RankAll(set domain.CandidateSet) domain.CandidateSet {
	out := domain.CandidateSet{
		NFRs:  append([]string(nil), set.NFRs...),
		Lists: make(map[string]domain.CandidateList, len(set.Lists)),
	}
	for _, nfr := range set.NFRs {
		out.Lists[nfr] = Rank(set.Lists[nfr])
	}
	return out
}

// TopN returns the first n entries of a ranked list. n must lie in 1..len(list).
func TopN(list domain.CandidateList, n int) (domain.CandidateList, error) {
	if n < 1 || n > len(list) {
		return nil, fmt.Errorf("%w: top %d of %d candidates", domain.ErrOutOfRange, n, len(list))
	}
	return append(domain.CandidateList(nil), list[:n]...), nil
}
