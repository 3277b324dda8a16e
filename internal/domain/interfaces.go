package domain

import (
	"errors"
	"fmt"
)

// DefaultNFRCount is the number of leading corpus entries treated as NFRs.
const DefaultNFRCount = 3

var (
	// ErrInvalidCorpus reports a corpus whose shape breaks the NFR-first contract.
	ErrInvalidCorpus = errors.New("invalid corpus shape")
	// ErrOutOfRange reports a top-N request outside 1..len(candidates).
	ErrOutOfRange = errors.New("value out of range")
	// ErrUnknownVariant reports a preprocessing variant name that is not v1, v2 or v3.
	ErrUnknownVariant = errors.New("unknown preprocessing variant")
)

// Requirement is a single requirement loaded from the source document.
type Requirement struct {
	ID   string
	Text string
}

// Corpus is an ordered set of requirements whose first NFRCount entries are NFRs.
// It is immutable once built.
type Corpus struct {
	reqs     []Requirement
	index    map[string]int
	nfrCount int
}

// NewCorpus validates and wraps reqs. Order is preserved exactly as given.
func NewCorpus(reqs []Requirement, nfrCount int) (*Corpus, error) {
	if nfrCount < 1 {
		return nil, fmt.Errorf("%w: nfr count %d", ErrInvalidCorpus, nfrCount)
	}
	if len(reqs) < nfrCount {
		return nil, fmt.Errorf("%w: %d entries, need at least %d NFRs", ErrInvalidCorpus, len(reqs), nfrCount)
	}
	c := &Corpus{
		reqs:     make([]Requirement, len(reqs)),
		index:    make(map[string]int, len(reqs)),
		nfrCount: nfrCount,
	}
	for i, r := range reqs {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: empty identifier at position %d", ErrInvalidCorpus, i)
		}
		if prev, ok := c.index[r.ID]; ok {
			return nil, fmt.Errorf("%w: identifier %q at positions %d and %d", ErrInvalidCorpus, r.ID, prev, i)
		}
		c.index[r.ID] = i
		c.reqs[i] = r
	}
	return c, nil
}

// Len returns the number of requirements.
func (c *Corpus) Len() int { return len(c.reqs) }

// NFRCount returns how many leading entries are NFRs.
func (c *Corpus) NFRCount() int { return c.nfrCount }

// FRCount returns how many entries follow the NFRs.
func (c *Corpus) FRCount() int { return len(c.reqs) - c.nfrCount }

// At returns the requirement at position i.
func (c *Corpus) At(i int) Requirement { return c.reqs[i] }

// Get looks up a requirement by identifier.
func (c *Corpus) Get(id string) (Requirement, bool) {
	i, ok := c.index[id]
	if !ok {
		return Requirement{}, false
	}
	return c.reqs[i], true
}

// IDs returns all identifiers in corpus order.
func (c *Corpus) IDs() []string {
	ids := make([]string, len(c.reqs))
	for i, r := range c.reqs {
		ids[i] = r.ID
	}
	return ids
}

// NFRIDs returns the NFR identifiers in corpus order.
func (c *Corpus) NFRIDs() []string { return c.IDs()[:c.nfrCount] }

// FRIDs returns the FR identifiers in corpus order.
func (c *Corpus) FRIDs() []string { return c.IDs()[c.nfrCount:] }

// Texts returns the raw texts in corpus order.
func (c *Corpus) Texts() []string {
	out := make([]string, len(c.reqs))
	for i, r := range c.reqs {
		out[i] = r.Text
	}
	return out
}

// TokenDocument is the normalized token stream of one requirement.
type TokenDocument []string

// Candidate pairs an FR with its similarity to some NFR.
type Candidate struct {
	FRID  string
	Score float64
}

// CandidateList holds one entry per FR for a single NFR.
type CandidateList []Candidate

// CandidateSet maps each NFR to its candidate list and remembers NFR order.
type CandidateSet struct {
	NFRs  []string
	Lists map[string]CandidateList
}

// List returns the candidate list for nfrID, or nil.
func (s CandidateSet) List(nfrID string) CandidateList {
	return s.Lists[nfrID]
}

// TraceMatrix maps FR identifiers to one bit per NFR, in NFR order.
type TraceMatrix struct {
	NFRs []string
	FRs  []string
	Rows map[string][]int
}

// Row returns the bits for frID, or nil.
func (m TraceMatrix) Row(frID string) []int {
	return m.Rows[frID]
}
