package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfrtrace/internal/domain"
)

const sample = `NFR1 (Security): The system shall encrypt data.
NFR2 (Usability): The interface must be simple.
NFR3 (Operational):   Access requires login.   

not a requirement line
FR1: The system shall store data.
FR2: The interface displays a menu: main and settings.
FR3:
`

func TestParseRequirements(t *testing.T) {
	reqs, err := ParseRequirements(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, reqs, 6)

	assert.Equal(t, domain.Requirement{ID: "NFR1", Text: "The system shall encrypt data."}, reqs[0])
	assert.Equal(t, "NFR3", reqs[2].ID)
	assert.Equal(t, "Access requires login.", reqs[2].Text)
	assert.Equal(t, "The interface displays a menu: main and settings.", reqs[4].Text)
	assert.Equal(t, domain.Requirement{ID: "FR3", Text: ""}, reqs[5])
}

func TestParseRequirementsKeepsEmptyNFR(t *testing.T) {
	in := "NFR1 (Security): The system shall encrypt data.\n" +
		"NFR2 (Usability):\n" +
		"NFR3 (Operational): Access requires login.\n" +
		"FR1: The system shall store data.\n" +
		": orphan text\n"
	reqs, err := ParseRequirements(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, reqs, 4)

	c, err := domain.NewCorpus(reqs, domain.DefaultNFRCount)
	require.NoError(t, err)
	assert.Equal(t, []string{"NFR1", "NFR2", "NFR3"}, c.NFRIDs())
	assert.Equal(t, []string{"FR1"}, c.FRIDs())
	nfr2, ok := c.Get("NFR2")
	require.True(t, ok)
	assert.Empty(t, nfr2.Text)
}

func TestLoadCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reqs.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	c, err := LoadCorpus(path, domain.DefaultNFRCount)
	require.NoError(t, err)
	assert.Equal(t, []string{"NFR1", "NFR2", "NFR3"}, c.NFRIDs())
	assert.Equal(t, []string{"FR1", "FR2", "FR3"}, c.FRIDs())

	dup := filepath.Join(t.TempDir(), "dup.txt")
	require.NoError(t, os.WriteFile(dup, []byte(sample+"FR1: again\n"), 0o644))
	_, err = LoadCorpus(dup, domain.DefaultNFRCount)
	assert.ErrorIs(t, err, domain.ErrInvalidCorpus)

	_, err = LoadCorpus(filepath.Join(t.TempDir(), "missing.txt"), domain.DefaultNFRCount)
	assert.Error(t, err)
}

func TestParseTraceMatrix(t *testing.T) {
	m, err := ParseTraceMatrix(strings.NewReader("id,NFR1,NFR2,NFR3\nFR1,1,0,0\nFR2, 0, 1, 1\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"NFR1", "NFR2", "NFR3"}, m.NFRs)
	assert.Equal(t, []string{"FR1", "FR2"}, m.FRs)
	assert.Equal(t, []int{0, 1, 1}, m.Row("FR2"))

	_, err = ParseTraceMatrix(strings.NewReader("id,NFR1\nFR1,2\n"))
	assert.Error(t, err)

	_, err = ParseTraceMatrix(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ParseTraceMatrix(strings.NewReader("id,NFR1\nFR1,1\nFR1,0\n"))
	assert.Error(t, err)
}
