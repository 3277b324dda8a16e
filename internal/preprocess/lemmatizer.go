package preprocess

import (
	"strings"

	"github.com/surgebase/porter2"
)

// POS is the coarse word class that selects a lemmatization rule set.
type POS int

const (
	Noun POS = iota
	Verb
	Adjective
	Adverb
)

// WordNetPOS maps a Treebank tag to the coarse class used for lemmatization.
// Anything that is not clearly an adjective, verb or adverb is a noun.
func WordNetPOS(tag Tag) POS {
	switch {
	case strings.HasPrefix(string(tag), "J"):
		return Adjective
	case strings.HasPrefix(string(tag), "V"):
		return Verb
	case strings.HasPrefix(string(tag), "R"):
		return Adverb
	default:
		return Noun
	}
}

var nounExceptions = map[string]string{
	"children": "child", "men": "man", "women": "woman", "people": "people",
	"analyses": "analysis", "criteria": "criterion", "indices": "index", "matrices": "matrix",
	"vertices": "vertex", "feet": "foot", "teeth": "tooth", "mice": "mouse", "series": "series",
	"species": "species", "data": "data", "media": "media", "news": "news",
}

var verbExceptions = map[string]string{
	"is": "be", "are": "be", "am": "be", "was": "be", "were": "be", "been": "be",
	"has": "have", "had": "have", "does": "do", "did": "do", "done": "do",
	"made": "make", "sent": "send", "built": "build", "kept": "keep", "found": "find",
	"gave": "give", "given": "give", "took": "take", "taken": "take", "wrote": "write",
	"written": "write", "chose": "choose", "chosen": "choose", "held": "hold", "led": "lead",
	"met": "meet", "paid": "pay", "saw": "see", "seen": "see", "shown": "show", "spent": "spend",
	"stood": "stand", "told": "tell", "thought": "think", "brought": "bring", "bought": "buy",
	"ran": "run", "began": "begin", "begun": "begin", "got": "get", "gotten": "get",
	"left": "leave", "lost": "lose", "meant": "mean", "hidden": "hide", "knew": "know",
	"known": "know", "understood": "understand", "went": "go", "gone": "go", "came": "come",
	"became": "become", "added": "add", "adding": "add", "fed": "feed", "sold": "sell",
	"said": "say", "laid": "lay", "drew": "draw", "drawn": "draw", "broke": "break",
	"broken": "break", "spoke": "speak", "spoken": "speak", "drove": "drive", "driven": "drive",
	"forgot": "forget", "forgotten": "forget", "froze": "freeze", "frozen": "freeze",
	"grew": "grow", "grown": "grow", "bound": "bind", "stuck": "stick", "struck": "strike",
	"sought": "seek", "taught": "teach", "caught": "catch", "fell": "fall", "felt": "feel",
	"fought": "fight", "created": "create", "creating": "create", "synced": "sync",
	"syncing": "sync",
}

// baseForms are bases the suffix rules cut wrong and the stem guard cannot
// tell apart: -u nouns whose plural ends in -us, -e bases before -ches or
// -xes, and -us nouns whose plural ends in -uses.
var baseForms = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"menu", "emu", "gnu", "guru", "tutu", "haiku", "tofu", "bayou", "sudoku", "snafu",
		"cache", "niche", "quiche", "cliche", "psyche", "headache", "avalanche", "mustache",
		"moustache", "microfiche", "axe", "finesse", "impasse", "crevasse", "posse",
		"status", "bus", "virus", "campus", "bonus", "focus", "census", "corpus", "radius",
		"cactus", "stimulus", "syllabus", "apparatus", "consensus", "prospectus", "nexus",
		"surplus", "chorus", "genus", "sinus", "circus", "fungus", "octopus", "thesaurus",
		"plus", "minus", "onus", "lotus",
	} {
		baseForms[w] = struct{}{}
	}
}

// knownBase strips -s, then -es, from w and reports a listed base form.
func knownBase(w string) (string, bool) {
	if _, ok := baseForms[w]; ok {
		return w, true
	}
	for _, suf := range []string{"s", "es"} {
		if !strings.HasSuffix(w, suf) {
			continue
		}
		if _, ok := baseForms[strings.TrimSuffix(w, suf)]; ok {
			return strings.TrimSuffix(w, suf), true
		}
	}
	return "", false
}

var adjectiveExceptions = map[string]string{
	"better": "good", "best": "good", "worse": "bad", "worst": "bad",
}

var adverbExceptions = map[string]string{
	"better": "well", "best": "well",
}

// Lemmatize reduces a lower-case word to its base form for the given word class.
// Rule output is accepted only when it keeps the Porter2 stem of the input,
// which stops rules from cutting into words that merely look inflected.
func Lemmatize(word string, pos POS) string {
	w := strings.ToLower(word)
	switch pos {
	case Noun:
		if base, ok := nounExceptions[w]; ok {
			return base
		}
		if base, ok := knownBase(w); ok {
			return base
		}
		return firstSameStem(w, nounCandidates(w))
	case Verb:
		if base, ok := verbExceptions[w]; ok {
			return base
		}
		if base, ok := knownBase(w); ok {
			return base
		}
		return firstSameStem(w, verbCandidates(w))
	case Adjective:
		if base, ok := adjectiveExceptions[w]; ok {
			return base
		}
		if base, ok := comparativeBase(w, "er"); ok {
			return base
		}
		if base, ok := comparativeBase(w, "est"); ok {
			return base
		}
		return w
	case Adverb:
		if base, ok := adverbExceptions[w]; ok {
			return base
		}
	}
	return w
}

func firstSameStem(w string, candidates []string) string {
	if len(candidates) == 0 {
		return w
	}
	stem := porter2.Stem(w)
	for _, c := range candidates {
		if len(c) >= 2 && porter2.Stem(c) == stem {
			return c
		}
	}
	return w
}

func nounCandidates(w string) []string {
	if len(w) <= 3 {
		return nil
	}
	var out []string
	switch {
	case strings.HasSuffix(w, "men"):
		out = append(out, strings.TrimSuffix(w, "men")+"man")
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		out = append(out, strings.TrimSuffix(w, "ies")+"y")
	case hasAnySuffix(w, "sses", "xes", "ches", "shes", "zes"):
		out = append(out, strings.TrimSuffix(w, "es"))
	}
	if pluralLike(w) {
		out = append(out, strings.TrimSuffix(w, "s"))
	}
	return out
}

func verbCandidates(w string) []string {
	if len(w) <= 3 {
		return nil
	}
	switch {
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		return []string{strings.TrimSuffix(w, "ies") + "y"}
	case hasAnySuffix(w, "sses", "xes", "ches", "shes", "zes"):
		return []string{strings.TrimSuffix(w, "es")}
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss"):
		return []string{strings.TrimSuffix(w, "s")}
	case strings.HasSuffix(w, "ied") && len(w) > 4:
		return []string{strings.TrimSuffix(w, "ied") + "y"}
	case strings.HasSuffix(w, "ed") && len(w) > 4:
		return restoreBase(strings.TrimSuffix(w, "ed"))
	case strings.HasSuffix(w, "ing") && len(w) > 5:
		return restoreBase(strings.TrimSuffix(w, "ing"))
	}
	return nil
}

// restoreBase orders the plausible base forms of a word whose -ed or -ing
// ending was removed: undoubled consonant, restored silent e, or bare stem.
func restoreBase(stem string) []string {
	n := len(stem)
	if n > 2 && stem[n-1] == stem[n-2] && strings.IndexByte("bdgmnprt", stem[n-1]) >= 0 {
		return []string{stem[:n-1], stem}
	}
	if needsSilentE(stem) {
		return []string{stem + "e", stem}
	}
	return []string{stem, stem + "e"}
}

func needsSilentE(stem string) bool {
	n := len(stem)
	if n < 2 {
		return false
	}
	last := stem[n-1]
	prev := stem[n-2]
	switch {
	case strings.HasSuffix(stem, "at") && n > 2 && !isVowel(stem[n-3]):
		return true
	case hasAnySuffix(stem, "bl", "iz", "yz", "ys", "dg", "nc", "rc", "rg", "ang", "ur", "ir"):
		return true
	case last == 'v' || (last == 'z' && prev != 'z'):
		return true
	case (last == 'c' || last == 'g') && isVowel(prev):
		return true
	case last == 'd' && strings.IndexByte("iuo", prev) >= 0 && n > 2 && !isVowel(stem[n-3]):
		return true
	case last == 't' && prev == 'u' && n > 2 && !isVowel(stem[n-3]):
		return true
	case last == 's' && strings.IndexByte("aeo", prev) >= 0:
		return true
	}
	return isShortWord(stem)
}

// isShortWord reports a Porter short word: an empty R1 region that ends in a
// short syllable, e.g. "stor", "us", "hop".
func isShortWord(w string) bool {
	r1 := -1
	for i := 1; i < len(w); i++ {
		if !isVowel(w[i]) && isVowel(w[i-1]) {
			r1 = i + 1
			break
		}
	}
	if r1 != len(w) {
		return false
	}
	n := len(w)
	if n == 2 {
		return isVowel(w[0]) && !isVowel(w[1])
	}
	return !isVowel(w[n-3]) && isVowel(w[n-2]) && !isVowel(w[n-1]) && strings.IndexByte("wxy", w[n-1]) < 0
}

func isVowel(b byte) bool {
	return strings.IndexByte("aeiouy", b) >= 0
}

func hasAnySuffix(w string, suffixes ...string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(w, s) {
			return true
		}
	}
	return false
}
