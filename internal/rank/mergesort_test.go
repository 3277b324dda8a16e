package rank

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfrtrace/internal/domain"
)

func TestRankBaseCases(t *testing.T) {
	got := Rank(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	one := domain.CandidateList{{FRID: "FR1", Score: 0.4}}
	got = Rank(one)
	assert.Equal(t, one, got)
	got[0].Score = 9
	assert.Equal(t, 0.4, one[0].Score, "single element result must be a copy")
}

func TestRankDescendingAndStable(t *testing.T) {
	in := domain.CandidateList{
		{FRID: "FR1", Score: 0.2},
		{FRID: "FR2", Score: 0.5},
		{FRID: "FR3", Score: 0.2},
		{FRID: "FR4", Score: 0.9},
		{FRID: "FR5", Score: 0.5},
		{FRID: "FR6", Score: 0},
	}
	orig := append(domain.CandidateList(nil), in...)

	got := Rank(in)
	want := []string{"FR4", "FR2", "FR5", "FR1", "FR3", "FR6"}
	ids := make([]string, len(got))
	for i, c := range got {
		ids[i] = c.FRID
	}
	assert.Equal(t, want, ids)
	assert.Equal(t, orig, in, "input must not be modified")
}

func TestRankMatchesStableSort(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(40)
		in := make(domain.CandidateList, n)
		for i := range in {
			// few distinct values so ties are common
			in[i] = domain.Candidate{FRID: string(rune('A' + i%26)) + string(rune('a'+i/26)), Score: float64(rng.Intn(5)) / 4}
		}
		want := make(domain.CandidateList, n)
		copy(want, in)
		sort.SliceStable(want, func(i, j int) bool { return want[i].Score > want[j].Score })

		got := Rank(in)
		require.Len(t, got, n)
		assert.Equal(t, want, got)
	}
}

func TestRankAllKeepsNFROrder(t *testing.T) {
	set := domain.CandidateSet{
		NFRs: []string{"NFR2", "NFR1"},
		Lists: map[string]domain.CandidateList{
			"NFR1": {{FRID: "FR1", Score: 0.1}, {FRID: "FR2", Score: 0.3}},
			"NFR2": {{FRID: "FR1", Score: 0.3}, {FRID: "FR2", Score: 0.1}},
		},
	}
	ranked := RankAll(set)
	assert.Equal(t, []string{"NFR2", "NFR1"}, ranked.NFRs)
	assert.Equal(t, "FR2", ranked.List("NFR1")[0].FRID)
	assert.Equal(t, "FR1", ranked.List("NFR2")[0].FRID)
	assert.Equal(t, "FR1", set.List("NFR1")[0].FRID, "source set untouched")
}

func TestTopN(t *testing.T) {
	list := domain.CandidateList{{FRID: "FR1", Score: 0.9}, {FRID: "FR2", Score: 0.5}, {FRID: "FR3", Score: 0.1}}

	got, err := TopN(list, 2)
	require.NoError(t, err)
	assert.Equal(t, list[:2], got)

	for _, n := range []int{0, -1, 4} {
		_, err := TopN(list, n)
		assert.ErrorIs(t, err, domain.ErrOutOfRange, "n=%d", n)
	}
}
