package preprocess

import (
	"fmt"
	"strings"

	"nfrtrace/internal/domain"
)

// Variant selects a normalization policy. The set is closed: v1, v2, v3.
type Variant string

const (
	// V1 tokenizes only.
	V1 Variant = "v1"
	// V2 lower-cases, tokenizes and drops stop words.
	V2 Variant = "v2"
	// V3 additionally tags parts of speech, lemmatizes and drops non-alphabetic tokens.
	V3 Variant = "v3"
)

// Variants lists every policy in increasing normalization strength.
func Variants() []Variant { return []Variant{V1, V2, V3} }

// ParseVariant maps a case-insensitive name to a Variant.
func ParseVariant(name string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(name)))
	switch v {
	case V1, V2, V3:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownVariant, name)
}

// Description is a short human label for reports.
func (v Variant) Description() string {
	switch v {
	case V1:
		return "tokenize"
	case V2:
		return "tokenize + stop words"
	case V3:
		return "tokenize + stop words + POS lemmatization"
	}
	return "unknown"
}

// Apply normalizes one requirement text. It never fails; empty text yields an
// empty document, as does an unknown variant.
func (v Variant) Apply(text string) domain.TokenDocument {
	switch v {
	case V1:
		return domain.TokenDocument(Tokenize(text))
	case V2:
		return removeStopwords(Tokenize(strings.ToLower(text)))
	case V3:
		return lemmatize(Tokenize(strings.ToLower(text)))
	}
	return domain.TokenDocument{}
}

// Process applies v to every requirement and returns one document per
// requirement in corpus order.
func Process(c *domain.Corpus, v Variant) ([]domain.TokenDocument, error) {
	if _, err := ParseVariant(string(v)); err != nil {
		return nil, err
	}
	docs := make([]domain.TokenDocument, c.Len())
	for i := 0; i < c.Len(); i++ {
		docs[i] = v.Apply(c.At(i).Text)
	}
	return docs, nil
}

func removeStopwords(tokens []string) domain.TokenDocument {
	out := make(domain.TokenDocument, 0, len(tokens))
	for _, t := range tokens {
		if IsStopword(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func lemmatize(tokens []string) domain.TokenDocument {
	out := make(domain.TokenDocument, 0, len(tokens))
	for _, tt := range PosTag(tokens) {
		if !isAlpha(tt.Text) || IsStopword(tt.Text) {
			continue
		}
		out = append(out, Lemmatize(tt.Text, WordNetPOS(tt.Tag)))
	}
	return out
}
