package preprocess

import (
	"strings"
	"unicode"
)

// Tag is a Penn Treebank style part-of-speech tag.
type Tag string

const (
	TagNoun        Tag = "NN"
	TagPluralNoun  Tag = "NNS"
	TagVerb        Tag = "VB"
	TagVerbPast    Tag = "VBD"
	TagGerund      Tag = "VBG"
	TagParticiple  Tag = "VBN"
	TagVerbPresent Tag = "VBZ"
	TagAdjective   Tag = "JJ"
	TagComparative Tag = "JJR"
	TagSuperlative Tag = "JJS"
	TagAdverb      Tag = "RB"
	TagModal       Tag = "MD"
	TagDeterminer  Tag = "DT"
	TagPreposition Tag = "IN"
	TagPronoun     Tag = "PRP"
	TagConjunction Tag = "CC"
	TagTo          Tag = "TO"
	TagNumber      Tag = "CD"
	TagSymbol      Tag = "SYM"
)

// TaggedToken is a token with its part-of-speech tag.
type TaggedToken struct {
	Text string
	Tag  Tag
}

// closedClass covers function words whose tag does not depend on context.
var closedClass = map[string]Tag{
	"shall": TagModal, "must": TagModal, "will": TagModal, "would": TagModal, "should": TagModal,
	"can": TagModal, "could": TagModal, "may": TagModal, "might": TagModal,
	"to": TagTo,
	"is": TagVerbPresent, "are": TagVerb, "am": TagVerb, "was": TagVerbPast, "were": TagVerbPast,
	"be": TagVerb, "been": TagParticiple, "being": TagGerund,
	"has": TagVerbPresent, "have": TagVerb, "had": TagVerbPast,
	"does": TagVerbPresent, "do": TagVerb, "did": TagVerbPast,
	"and": TagConjunction, "or": TagConjunction, "but": TagConjunction, "nor": TagConjunction, "yet": TagConjunction,
	"i": TagPronoun, "me": TagPronoun, "we": TagPronoun, "us": TagPronoun, "you": TagPronoun,
	"he": TagPronoun, "him": TagPronoun, "she": TagPronoun, "her": TagPronoun, "it": TagPronoun,
	"they": TagPronoun, "them": TagPronoun, "my": TagPronoun, "our": TagPronoun, "your": TagPronoun,
	"his": TagPronoun, "its": TagPronoun, "their": TagPronoun, "who": TagPronoun, "whom": TagPronoun,
	"which": TagDeterminer, "what": TagDeterminer,
	"a": TagDeterminer, "an": TagDeterminer, "the": TagDeterminer, "this": TagDeterminer,
	"that": TagDeterminer, "these": TagDeterminer, "those": TagDeterminer, "each": TagDeterminer,
	"every": TagDeterminer, "all": TagDeterminer, "any": TagDeterminer, "some": TagDeterminer,
	"no": TagDeterminer, "another": TagDeterminer, "both": TagDeterminer, "either": TagDeterminer,
	"neither": TagDeterminer,
	"of": TagPreposition, "in": TagPreposition, "on": TagPreposition, "at": TagPreposition,
	"by": TagPreposition, "for": TagPreposition, "with": TagPreposition, "about": TagPreposition,
	"against": TagPreposition, "between": TagPreposition, "into": TagPreposition, "through": TagPreposition,
	"during": TagPreposition, "before": TagPreposition, "after": TagPreposition, "above": TagPreposition,
	"below": TagPreposition, "from": TagPreposition, "up": TagPreposition, "down": TagPreposition,
	"out": TagPreposition, "off": TagPreposition, "over": TagPreposition, "under": TagPreposition,
	"within": TagPreposition, "without": TagPreposition, "upon": TagPreposition, "via": TagPreposition,
	"per": TagPreposition, "across": TagPreposition, "among": TagPreposition, "than": TagPreposition,
	"as": TagPreposition, "until": TagPreposition, "if": TagPreposition, "while": TagPreposition,
	"not": TagAdverb, "only": TagAdverb, "also": TagAdverb, "very": TagAdverb, "too": TagAdverb,
	"always": TagAdverb, "never": TagAdverb, "often": TagAdverb, "again": TagAdverb, "now": TagAdverb,
	"more": TagComparative, "less": TagComparative, "most": TagSuperlative, "least": TagSuperlative,
	"better": TagComparative, "worse": TagComparative, "best": TagSuperlative, "worst": TagSuperlative,
}

// baseAdjectives are common adjectives that carry no telling suffix.
var baseAdjectives = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"simple", "easy", "fast", "slow", "quick", "large", "small", "big", "high", "low",
		"secure", "safe", "new", "old", "clear", "short", "long", "great", "strong", "weak",
		"good", "bad", "full", "empty", "free", "open", "main", "able", "valid", "invalid",
		"current", "public", "private", "correct", "complete", "single", "multiple", "specific",
		"different", "same", "real", "robust", "efficient", "consistent", "accurate", "intuitive",
		"responsive", "scalable", "reliable", "available", "minimal", "maximum", "minimum",
		"early", "late", "light", "heavy", "wide", "narrow", "clean", "safe", "tight", "loose",
		"hard", "soft", "close", "few", "many", "much", "other", "such", "own", "whole",
	} {
		baseAdjectives[w] = struct{}{}
	}
}

var adjectiveSuffixes = []string{"able", "ible", "ful", "ous", "ive", "less", "ical", "ional", "ient"}

// PosTag assigns a part-of-speech tag to every token using a closed-class
// lexicon, a small adjective lexicon, suffix rules and the previous tag.
func PosTag(tokens []string) []TaggedToken {
	out := make([]TaggedToken, len(tokens))
	for i, tok := range tokens {
		out[i] = TaggedToken{Text: tok, Tag: tagOne(strings.ToLower(tok), contextTag(out[:i]))}
	}
	return out
}

// contextTag returns the nearest preceding tag that is not an adverb.
func contextTag(prev []TaggedToken) Tag {
	for i := len(prev) - 1; i >= 0; i-- {
		if prev[i].Tag != TagAdverb {
			return prev[i].Tag
		}
	}
	return ""
}

func tagOne(w string, prev Tag) Tag {
	if t, ok := closedClass[w]; ok {
		return t
	}
	if isNumeric(w) {
		return TagNumber
	}
	if !hasLetter(w) {
		return TagSymbol
	}
	if _, ok := baseAdjectives[w]; ok {
		return TagAdjective
	}
	if _, ok := comparativeBase(w, "er"); ok {
		return TagComparative
	}
	if _, ok := comparativeBase(w, "est"); ok {
		return TagSuperlative
	}
	if strings.HasSuffix(w, "ly") && len(w) > 4 {
		return TagAdverb
	}
	switch {
	case prev == TagModal || prev == TagTo:
		return TagVerb
	case isAuxiliary(prev) && strings.HasSuffix(w, "ed"):
		return TagParticiple
	case isAuxiliary(prev) && strings.HasSuffix(w, "ing"):
		return TagGerund
	}
	if strings.HasSuffix(w, "ing") && len(w) > 5 {
		return TagGerund
	}
	if strings.HasSuffix(w, "ed") && len(w) > 4 {
		return TagVerbPast
	}
	for _, suf := range adjectiveSuffixes {
		if strings.HasSuffix(w, suf) && len(w) > len(suf)+2 {
			return TagAdjective
		}
	}
	if pluralLike(w) {
		if prev == TagNoun || prev == TagPluralNoun || prev == TagPronoun {
			return TagVerbPresent
		}
		return TagPluralNoun
	}
	return TagNoun
}

func isAuxiliary(t Tag) bool {
	switch t {
	case TagVerbPresent, TagVerbPast, TagParticiple, TagGerund, TagVerb:
		return true
	}
	return false
}

func pluralLike(w string) bool {
	if len(w) <= 3 || !strings.HasSuffix(w, "s") {
		return false
	}
	if strings.HasSuffix(w, "us") {
		_, ok := baseForms[strings.TrimSuffix(w, "s")]
		return ok
	}
	return !strings.HasSuffix(w, "ss") && !strings.HasSuffix(w, "is")
}

func isNumeric(w string) bool {
	digits := false
	for _, r := range w {
		switch {
		case unicode.IsDigit(r):
			digits = true
		case r == '.' || r == ',' || r == '-':
		default:
			return false
		}
	}
	return digits
}

func hasLetter(w string) bool {
	for _, r := range w {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// comparativeBase strips a comparative or superlative suffix and reports
// whether the result is a known base adjective.
func comparativeBase(w, suffix string) (string, bool) {
	if !strings.HasSuffix(w, suffix) || len(w) <= len(suffix)+2 {
		return "", false
	}
	stem := strings.TrimSuffix(w, suffix)
	candidates := []string{stem, stem + "e"}
	if strings.HasSuffix(stem, "i") {
		candidates = append(candidates, strings.TrimSuffix(stem, "i")+"y")
	}
	if n := len(stem); n > 2 && stem[n-1] == stem[n-2] {
		candidates = append(candidates, stem[:n-1])
	}
	for _, c := range candidates {
		if _, ok := baseAdjectives[c]; ok {
			return c, true
		}
	}
	return "", false
}
