// Package report exports pipeline artifacts as CSV.
package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"nfrtrace/internal/domain"
	"nfrtrace/internal/rank"
	"nfrtrace/internal/vectorspace"
)

// ScoreDecimals is the rounding applied to scores on export only.
const ScoreDecimals = 3

func formatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', ScoreDecimals, 64)
}

// WriteRanked writes the first topN candidates of every NFR as
// "nfr,rank,fr,score" rows. topN <= 0 or beyond the list length writes the
// whole list.
func WriteRanked(w io.Writer, ranked domain.CandidateSet, topN int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"nfr", "rank", "fr", "score"}); err != nil {
		return err
	}
	for _, nfr := range ranked.NFRs {
		list := ranked.List(nfr)
		if top, err := rank.TopN(list, topN); err == nil {
			list = top
		}
		for i, c := range list {
			if err := cw.Write([]string{nfr, strconv.Itoa(i + 1), c.FRID, formatScore(c.Score)}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTrace writes the trace matrix as a header "id,NFR..." followed by one
// "FR,bit,bit,..." row per FR.
func WriteTrace(w io.Writer, m domain.TraceMatrix) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"id"}, m.NFRs...)); err != nil {
		return err
	}
	for _, fr := range m.FRs {
		rec := []string{fr}
		for _, b := range m.Row(fr) {
			rec = append(rec, strconv.Itoa(b))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCrossBlock writes every NFR x FR score in corpus order as "nfr,fr,score".
func WriteCrossBlock(w io.Writer, set domain.CandidateSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"nfr", "fr", "score"}); err != nil {
		return err
	}
	for _, nfr := range set.NFRs {
		for _, c := range set.List(nfr) {
			if err := cw.Write([]string{nfr, c.FRID, formatScore(c.Score)}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePreprocessed writes "id,tokens" rows with tokens joined by spaces.
func WritePreprocessed(w io.Writer, ids []string, docs []domain.TokenDocument) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "tokens"}); err != nil {
		return err
	}
	for i, id := range ids {
		if i >= len(docs) {
			break
		}
		if err := cw.Write([]string{id, strings.Join(docs[i], " ")}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteWeights writes every non-zero TF-IDF weight as "id,term,weight".
func WriteWeights(w io.Writer, ids []string, m *vectorspace.WeightMatrix) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "term", "weight"}); err != nil {
		return err
	}
	for i, id := range ids {
		if i >= len(m.Rows) {
			break
		}
		for _, tw := range m.TopTerms(i, 0) {
			if err := cw.Write([]string{id, tw.Term, formatScore(tw.Weight)}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
