// Package evaluate compares predicted trace matrices with a gold standard.
package evaluate

import (
	"nfrtrace/internal/domain"
	"nfrtrace/internal/trace"
)

// Metrics summarizes agreement between a predicted and a gold trace matrix.
type Metrics struct {
	TruePositives  int     `json:"tp"`
	FalsePositives int     `json:"fp"`
	FalseNegatives int     `json:"fn"`
	TrueNegatives  int     `json:"tn"`
	Precision      float64 `json:"precision"`
	Recall         float64 `json:"recall"`
	F1             float64 `json:"f1"`
	F2             float64 `json:"f2"`
}

// Compare scores predicted against gold cell by cell. Cells are matched by FR
// and NFR identifier; FRs or NFRs absent from gold are ignored, and a gold
// cell with no prediction counts as predicted 0. Ratios with a zero
// denominator are 0.
func Compare(predicted, gold domain.TraceMatrix) Metrics {
	col := make(map[string]int, len(predicted.NFRs))
	for k, nfr := range predicted.NFRs {
		col[nfr] = k
	}
	var m Metrics
	for _, fr := range gold.FRs {
		goldRow := gold.Rows[fr]
		predRow := predicted.Rows[fr]
		for k, nfr := range gold.NFRs {
			if k >= len(goldRow) {
				break
			}
			p := 0
			if pk, ok := col[nfr]; ok && pk < len(predRow) {
				p = predRow[pk]
			}
			switch {
			case p == 1 && goldRow[k] == 1:
				m.TruePositives++
			case p == 1:
				m.FalsePositives++
			case goldRow[k] == 1:
				m.FalseNegatives++
			default:
				m.TrueNegatives++
			}
		}
	}
	m.Precision = ratio(m.TruePositives, m.TruePositives+m.FalsePositives)
	m.Recall = ratio(m.TruePositives, m.TruePositives+m.FalseNegatives)
	m.F1 = fBeta(m.Precision, m.Recall, 1)
	m.F2 = fBeta(m.Precision, m.Recall, 2)
	return m
}

// SweepPoint is the outcome of binarizing at one threshold.
type SweepPoint struct {
	Threshold float64
	Links     int
	Metrics   Metrics
}

// Sweep binarizes set at each threshold and compares it with gold.
func Sweep(set domain.CandidateSet, gold domain.TraceMatrix, thresholds []float64) []SweepPoint {
	out := make([]SweepPoint, 0, len(thresholds))
	for _, th := range thresholds {
		m := trace.Binarize(set, th)
		out = append(out, SweepPoint{Threshold: th, Links: trace.Links(m), Metrics: Compare(m, gold)})
	}
	return out
}

// Best returns the sweep point with the highest F-beta score (beta 1 or 2),
// preferring the earlier threshold on ties. ok is false for an empty sweep.
func Best(points []SweepPoint, beta int) (best SweepPoint, ok bool) {
	score := func(p SweepPoint) float64 {
		if beta == 2 {
			return p.Metrics.F2
		}
		return p.Metrics.F1
	}
	for i, p := range points {
		if i == 0 || score(p) > score(best) {
			best = p
			ok = true
		}
	}
	return best, ok
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

func fBeta(p, r float64, beta float64) float64 {
	b2 := beta * beta
	d := b2*p + r
	if d == 0 {
		return 0
	}
	return (1 + b2) * p * r / d
}
