package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfrtrace/internal/domain"
	"nfrtrace/internal/vectorspace"
)

var scenarioIDs = []string{"NFR1", "NFR2", "NFR3", "FR1", "FR2"}

func scenarioMatrix(texts ...string) *vectorspace.WeightMatrix {
	docs := make([]domain.TokenDocument, len(texts))
	for i, t := range texts {
		docs[i] = domain.TokenDocument{t}
	}
	return vectorspace.NewBuilder(vectorspace.Options{Lowercase: true, MinTokenLen: 2}).Build(docs)
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float64{1, 2}, []float64{2, 4}), 1e-12)
	assert.InDelta(t, 0.0, Cosine([]float64{1, 0}, []float64{0, 1}), 1e-12)
	assert.Equal(t, 0.0, Cosine([]float64{0, 0}, []float64{1, 1}))
	assert.Equal(t, 0.0, Cosine(nil, nil))
	assert.Equal(t, 0.0, Cosine([]float64{math.NaN()}, []float64{1}))
}

func TestMatrixSymmetry(t *testing.T) {
	m := scenarioMatrix(
		"system shall encrypt data",
		"interface must be simple",
		"access requires login",
		"system shall store data",
		"",
	)
	sim := Matrix(m)
	for i := range sim {
		for j := range sim {
			assert.Equal(t, sim[i][j], sim[j][i])
			assert.False(t, math.IsNaN(sim[i][j]))
		}
	}
	assert.Equal(t, 1.0, sim[0][0])
	// Empty requirement scores 0 against everything, itself included.
	for j := range sim {
		assert.Zero(t, sim[4][j])
	}
}

func TestScoreCrossBlock(t *testing.T) {
	m := scenarioMatrix(
		"system shall encrypt data",
		"interface must be simple",
		"access requires login",
		"system shall store data",
		"interface displays menu",
	)
	set, err := Score(m, scenarioIDs, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"NFR1", "NFR2", "NFR3"}, set.NFRs)
	require.Len(t, set.Lists, 3)
	for _, nfr := range set.NFRs {
		list := set.List(nfr)
		require.Len(t, list, 2)
		assert.Equal(t, "FR1", list[0].FRID)
		assert.Equal(t, "FR2", list[1].FRID)
	}

	nfr1 := set.List("NFR1")
	assert.Greater(t, nfr1[0].Score, nfr1[1].Score)
	assert.Zero(t, nfr1[1].Score)
	assert.Greater(t, set.List("NFR2")[1].Score, 0.0)
	assert.Zero(t, set.List("NFR3")[0].Score)
}

func TestScoreRejectsBadShape(t *testing.T) {
	m := scenarioMatrix("a1", "b2", "c3")
	_, err := Score(m, []string{"NFR1", "NFR2"}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidCorpus)

	_, err = Score(m, []string{"NFR1", "NFR2", "NFR3"}, 4)
	assert.ErrorIs(t, err, domain.ErrInvalidCorpus)
}
