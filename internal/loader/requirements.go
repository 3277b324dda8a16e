// Package loader reads requirement documents and gold trace matrices from disk.
package loader

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"nfrtrace/internal/domain"
)

// categoryTag matches labels such as "(Security)" in the identifier part.
var categoryTag = regexp.MustCompile(`\([^)]*\)`)

// ParseRequirements reads "ID (Category): text" lines. The category label is
// dropped and file order is kept. Lines without a colon or without an id are
// skipped; an id with empty text is kept so the NFR block never shifts.
func ParseRequirements(r io.Reader) ([]domain.Requirement, error) {
	var reqs []domain.Requirement
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		id, text, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		id = strings.TrimSpace(categoryTag.ReplaceAllString(id, ""))
		text = strings.TrimSpace(text)
		if id == "" {
			continue
		}
		reqs = append(reqs, domain.Requirement{ID: id, Text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan requirements: %w", err)
	}
	return reqs, nil
}

// LoadCorpus reads path and builds a corpus whose first nfrCount entries are NFRs.
func LoadCorpus(path string, nfrCount int) (*domain.Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	reqs, err := ParseRequirements(f)
	if err != nil {
		return nil, err
	}
	c, err := domain.NewCorpus(reqs, nfrCount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseTraceMatrix reads a CSV trace matrix: a header row "id,NFR1,NFR2,..."
// followed by one "FRn,bit,bit,..." row per FR.
func ParseTraceMatrix(r io.Reader) (domain.TraceMatrix, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.TraceMatrix{}, errors.New("trace matrix: missing header row")
		}
		return domain.TraceMatrix{}, fmt.Errorf("trace matrix header: %w", err)
	}
	if len(header) < 2 {
		return domain.TraceMatrix{}, errors.New("trace matrix: header needs at least one NFR column")
	}
	m := domain.TraceMatrix{
		NFRs: append([]string(nil), header[1:]...),
		Rows: make(map[string][]int),
	}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.TraceMatrix{}, fmt.Errorf("trace matrix: %w", err)
		}
		fr := strings.TrimSpace(rec[0])
		if _, dup := m.Rows[fr]; dup {
			return domain.TraceMatrix{}, fmt.Errorf("trace matrix: duplicate row %q", fr)
		}
		row := make([]int, len(m.NFRs))
		for k, cell := range rec[1:] {
			bit, err := strconv.Atoi(strings.TrimSpace(cell))
			if err != nil || (bit != 0 && bit != 1) {
				return domain.TraceMatrix{}, fmt.Errorf("trace matrix: row %q column %d: %q is not 0 or 1", fr, k+1, cell)
			}
			row[k] = bit
		}
		m.FRs = append(m.FRs, fr)
		m.Rows[fr] = row
	}
	return m, nil
}

// LoadTraceMatrix reads a gold trace matrix CSV from path.
func LoadTraceMatrix(path string) (domain.TraceMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.TraceMatrix{}, err
	}
	defer f.Close()
	return ParseTraceMatrix(f)
}
