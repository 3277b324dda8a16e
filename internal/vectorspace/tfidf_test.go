package vectorspace

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfrtrace/internal/domain"
)

func docs(texts ...string) []domain.TokenDocument {
	out := make([]domain.TokenDocument, len(texts))
	for i, t := range texts {
		if t == "" {
			out[i] = domain.TokenDocument{}
			continue
		}
		out[i] = domain.TokenDocument(strings.Fields(t))
	}
	return out
}

func rowNorm(row []float64) float64 {
	s := 0.0
	for _, v := range row {
		s += v * v
	}
	return math.Sqrt(s)
}

func TestBuildJointVocabulary(t *testing.T) {
	m := NewBuilder(DefaultOptions()).Build(docs(
		"system shall encrypt data",
		"interface must be simple",
		"access requires login",
		"system shall store data",
		"interface displays menu",
	))

	// FR-only terms still get a column.
	col, ok := m.Column("menu")
	require.True(t, ok)
	assert.InDelta(t, math.Log(6.0/2.0)+1, m.IDF[col], 1e-12)

	col, ok = m.Column("system")
	require.True(t, ok)
	assert.InDelta(t, math.Log(6.0/3.0)+1, m.IDF[col], 1e-12)

	assert.Equal(t, 14, m.Dimension())
	assert.IsIncreasing(t, m.Vocabulary)
	for i, row := range m.Rows {
		assert.InDelta(t, 1.0, rowNorm(row), 1e-12, "row %d", i)
	}
}

func TestBuildRawCountsAndCaseFolding(t *testing.T) {
	m := NewBuilder(DefaultOptions()).Build(docs("Data data log", "log"))

	data, ok := m.Column("data")
	require.True(t, ok)
	logCol, ok := m.Column("log")
	require.True(t, ok)

	// data: tf 2, idf ln(3/2)+1; log: tf 1, idf 1.
	wantData := 2 * (math.Log(1.5) + 1)
	wantLog := 1.0
	norm := math.Hypot(wantData, wantLog)
	assert.InDelta(t, wantData/norm, m.Rows[0][data], 1e-12)
	assert.InDelta(t, wantLog/norm, m.Rows[0][logCol], 1e-12)
}

func TestBuildDropsShortTokensAndPunctuation(t *testing.T) {
	m := NewBuilder(DefaultOptions()).Build(docs("a data . ,"))
	assert.Equal(t, []string{"data"}, m.Vocabulary)

	m = NewBuilder(Options{Lowercase: false, MinTokenLen: 1}).Build(docs("a Data"))
	assert.Equal(t, []string{"Data", "a"}, m.Vocabulary)
}

func TestBuildEmptyDocumentIsZeroRow(t *testing.T) {
	m := NewBuilder(DefaultOptions()).Build(docs("system data", ""))
	require.Len(t, m.Rows, 2)
	for _, v := range m.Rows[1] {
		assert.Zero(t, v)
	}
}

func TestBuildAllEmptyCorpus(t *testing.T) {
	m := NewBuilder(DefaultOptions()).Build(docs("", ""))
	assert.Zero(t, m.Dimension())
	require.Len(t, m.Rows, 2)
	assert.Empty(t, m.Rows[0])
}

func TestTopTerms(t *testing.T) {
	m := NewBuilder(DefaultOptions()).Build(docs("data data log", "log"))
	top := m.TopTerms(0, 1)
	require.Len(t, top, 1)
	assert.Equal(t, "data", top[0].Term)

	assert.Len(t, m.TopTerms(0, 0), 2)
	assert.Len(t, m.TopTerms(1, 5), 1)
}
