// Package vectorspace builds the shared TF-IDF representation of a requirement corpus.
package vectorspace

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"nfrtrace/internal/domain"
)

// Options controls how joined token documents are analyzed into terms.
type Options struct {
	// Lowercase folds terms before counting.
	Lowercase bool
	// MinTokenLen drops shorter terms; punctuation tokens fall out this way.
	MinTokenLen int
}

// DefaultOptions mirror the analyzer of the reference vectorizer: lower-case
// word runs of at least two characters.
func DefaultOptions() Options {
	return Options{Lowercase: true, MinTokenLen: 2}
}

// WeightMatrix is a dense document-term matrix over the whole corpus.
// Rows follow corpus order; columns follow the sorted vocabulary.
type WeightMatrix struct {
	Vocabulary []string
	IDF        []float64
	Rows       [][]float64
	index      map[string]int
}

// Column returns the column of term, if present.
func (m *WeightMatrix) Column(term string) (int, bool) {
	i, ok := m.index[term]
	return i, ok
}

// Dimension is the vocabulary size.
func (m *WeightMatrix) Dimension() int { return len(m.Vocabulary) }

var termPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Builder fits TF-IDF jointly over every document it is given.
type Builder struct {
	opts Options
}

// NewBuilder creates a builder with the given analyzer options.
func NewBuilder(opts Options) *Builder {
	if opts.MinTokenLen < 1 {
		opts.MinTokenLen = 1
	}
	return &Builder{opts: opts}
}

// Build joins each document with single spaces, analyzes it, and fits raw
// term counts with smoothed IDF, ln((1+n)/(1+df))+1, then L2-normalizes each row.
// Documents with no terms produce all-zero rows.
func (b *Builder) Build(docs []domain.TokenDocument) *WeightMatrix {
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		counts[i] = make(map[string]int)
		for _, term := range b.analyze(strings.Join(doc, " ")) {
			if counts[i][term] == 0 {
				df[term]++
			}
			counts[i][term]++
		}
	}

	// Stable vocabulary order
	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	m := &WeightMatrix{
		Vocabulary: vocab,
		IDF:        make([]float64, len(vocab)),
		Rows:       make([][]float64, len(docs)),
		index:      make(map[string]int, len(vocab)),
	}
	n := float64(len(docs))
	for j, term := range vocab {
		m.index[term] = j
		m.IDF[j] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	for i := range docs {
		row := make([]float64, len(vocab))
		for term, c := range counts[i] {
			j := m.index[term]
			row[j] = float64(c) * m.IDF[j]
		}
		normalize(row)
		m.Rows[i] = row
	}
	return m
}

func (b *Builder) analyze(text string) []string {
	if b.opts.Lowercase {
		text = strings.ToLower(text)
	}
	raw := termPattern.FindAllString(text, -1)
	out := raw[:0]
	for _, t := range raw {
		if len([]rune(t)) < b.opts.MinTokenLen {
			continue
		}
		out = append(out, t)
	}
	return out
}

// normalize scales v to unit L2 length in place; a zero vector stays zero.
func normalize(v []float64) {
	norm := 0.0
	for _, x := range v {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return
	}
	for i := range v {
		v[i] /= norm
	}
}

// TermWeight is one non-zero entry of a matrix row.
type TermWeight struct {
	Term   string
	Weight float64
}

// TopTerms returns the n heaviest terms of row i, heaviest first, ties by term.
// n <= 0 returns every non-zero term.
func (m *WeightMatrix) TopTerms(i, n int) []TermWeight {
	var out []TermWeight
	for j, w := range m.Rows[i] {
		if w != 0 {
			out = append(out, TermWeight{Term: m.Vocabulary[j], Weight: w})
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Weight != out[b].Weight {
			return out[a].Weight > out[b].Weight
		}
		return out[a].Term < out[b].Term
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
