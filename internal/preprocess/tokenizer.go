package preprocess

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// words keep inner hyphens, apostrophes and dots (e-mail, user's, v1.2);
	// every other non-space rune becomes its own token.
	tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:[-'.][\p{L}\p{N}]+)*|[^\s\p{L}\p{N}]`)
	quoteFixer   = strings.NewReplacer("’", "'", "‘", "'")
	clitics      = []string{"'s", "'re", "'ll", "'ve", "'d", "'m"}
)

// Tokenize splits text into word and punctuation tokens without changing case.
// Contractions are split the Treebank way: "don't" -> "do", "n't".
func Tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	text = quoteFixer.Replace(norm.NFKC.String(text))
	raw := tokenPattern.FindAllString(text, -1)
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		out = append(out, splitContraction(tok)...)
	}
	return out
}

func splitContraction(tok string) []string {
	lower := strings.ToLower(tok)
	if len(tok) > 3 && strings.HasSuffix(lower, "n't") {
		return []string{tok[:len(tok)-3], tok[len(tok)-3:]}
	}
	for _, c := range clitics {
		if len(tok) > len(c) && strings.HasSuffix(lower, c) {
			return []string{tok[:len(tok)-len(c)], tok[len(tok)-len(c):]}
		}
	}
	return []string{tok}
}

// isAlpha reports whether tok consists only of letters.
func isAlpha(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !isLetter(r) {
			return false
		}
	}
	return true
}
