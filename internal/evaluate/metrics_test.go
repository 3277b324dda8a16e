package evaluate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfrtrace/internal/domain"
)

func matrix(rows map[string][]int, frs ...string) domain.TraceMatrix {
	return domain.TraceMatrix{NFRs: []string{"NFR1", "NFR2"}, FRs: frs, Rows: rows}
}

func TestComparePerfect(t *testing.T) {
	gold := matrix(map[string][]int{"FR1": {1, 0}, "FR2": {0, 1}}, "FR1", "FR2")
	m := Compare(gold, gold)
	assert.Equal(t, 2, m.TruePositives)
	assert.Equal(t, 2, m.TrueNegatives)
	assert.Equal(t, 1.0, m.Precision)
	assert.Equal(t, 1.0, m.Recall)
	assert.Equal(t, 1.0, m.F1)
}

func TestCompareEmptyPrediction(t *testing.T) {
	gold := matrix(map[string][]int{"FR1": {1, 0}, "FR2": {0, 1}}, "FR1", "FR2")
	pred := matrix(map[string][]int{"FR1": {0, 0}, "FR2": {0, 0}}, "FR1", "FR2")
	m := Compare(pred, gold)
	assert.Equal(t, 0.0, m.Precision)
	assert.Equal(t, 0.0, m.Recall)
	assert.Equal(t, 0.0, m.F1)
	assert.Equal(t, 2, m.FalseNegatives)
}

func TestCompareMixed(t *testing.T) {
	gold := matrix(map[string][]int{"FR1": {1, 1}, "FR2": {0, 0}}, "FR1", "FR2")
	pred := matrix(map[string][]int{"FR1": {1, 0}, "FR2": {1, 0}}, "FR1", "FR2")
	m := Compare(pred, gold)
	assert.Equal(t, 1, m.TruePositives)
	assert.Equal(t, 1, m.FalsePositives)
	assert.Equal(t, 1, m.FalseNegatives)
	assert.Equal(t, 1, m.TrueNegatives)
	assert.InDelta(t, 0.5, m.Precision, 1e-12)
	assert.InDelta(t, 0.5, m.Recall, 1e-12)
	assert.InDelta(t, 0.5, m.F2, 1e-12)
}

func TestSweepAndBest(t *testing.T) {
	set := domain.CandidateSet{
		NFRs: []string{"NFR1", "NFR2"},
		Lists: map[string]domain.CandidateList{
			"NFR1": {{FRID: "FR1", Score: 0.6}, {FRID: "FR2", Score: 0.2}},
			"NFR2": {{FRID: "FR1", Score: 0.1}, {FRID: "FR2", Score: 0.4}},
		},
	}
	gold := matrix(map[string][]int{"FR1": {1, 0}, "FR2": {0, 1}}, "FR1", "FR2")

	points := Sweep(set, gold, []float64{0.05, 0.3, 0.7})
	require.Len(t, points, 3)
	assert.Equal(t, 4, points[0].Links)
	assert.Equal(t, 2, points[1].Links)
	assert.Equal(t, 0, points[2].Links)

	best, ok := Best(points, 1)
	require.True(t, ok)
	assert.Equal(t, 0.3, best.Threshold)
	assert.Equal(t, 1.0, best.Metrics.F1)

	_, ok = Best(nil, 1)
	assert.False(t, ok)
}
