package preprocess

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfrtrace/internal/domain"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"The system shall encrypt data.", []string{"The", "system", "shall", "encrypt", "data", "."}},
		{"Users don't wait", []string{"Users", "do", "n't", "wait"}},
		{"the user's e-mail, v1.2", []string{"the", "user", "'s", "e-mail", ",", "v1.2"}},
		{"", nil},
		{"   ", nil},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got := Tokenize(tc.in)
			if tc.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestVariantApply(t *testing.T) {
	text := "The system shall encrypt the data."

	assert.Equal(t, domain.TokenDocument{"The", "system", "shall", "encrypt", "the", "data", "."}, V1.Apply(text))
	assert.Equal(t, domain.TokenDocument{"system", "shall", "encrypt", "data", "."}, V2.Apply(text))
	assert.Equal(t, domain.TokenDocument{"system", "shall", "encrypt", "data"}, V3.Apply(text))
}

func TestV3LemmatizesInflections(t *testing.T) {
	got := V3.Apply("The users stored the records.")
	assert.Equal(t, domain.TokenDocument{"user", "store", "record"}, got)

	got = V3.Apply("Interface displays menus")
	assert.Equal(t, domain.TokenDocument{"interface", "display", "menu"}, got)

	plural := V3.Apply("The system shall show menus and caches")
	singular := V3.Apply("The menu uses a cache")
	assert.Subset(t, plural, []string{"menu", "cache"})
	assert.Subset(t, singular, []string{"menu", "cache"})
	assert.NotContains(t, plural, "cach")
}

func TestPluralLikeAcceptsListedUsPlurals(t *testing.T) {
	assert.True(t, pluralLike("menus"))
	assert.True(t, pluralLike("records"))
	assert.False(t, pluralLike("status"))
	assert.False(t, pluralLike("campus"))
	assert.False(t, pluralLike("access"))
}

func TestVariantsNeverFailOnEmptyText(t *testing.T) {
	for _, v := range Variants() {
		assert.Empty(t, v.Apply(""), v)
	}
	assert.Empty(t, Variant("v9").Apply("some text"))
}

func TestV3NeverHasMoreDistinctTokensThanV1(t *testing.T) {
	texts := []string{
		"The system shall encrypt all stored passwords and stored keys.",
		"Users are running reports; the reports run nightly.",
		"Access requires login. Logins are logged.",
		"The interface must be simple, simpler than the old interfaces.",
		"",
	}
	for _, text := range texts {
		assert.LessOrEqual(t, distinct(V3.Apply(text)), distinct(V1.Apply(text)), text)
	}
}

func distinct(doc domain.TokenDocument) int {
	seen := map[string]struct{}{}
	for _, t := range doc {
		seen[t] = struct{}{}
	}
	return len(seen)
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant(" V2 ")
	require.NoError(t, err)
	assert.Equal(t, V2, v)

	_, err = ParseVariant("v4")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownVariant))
}

func TestProcessKeepsCorpusOrder(t *testing.T) {
	c, err := domain.NewCorpus([]domain.Requirement{
		{ID: "NFR1", Text: "fast"},
		{ID: "NFR2", Text: "safe"},
		{ID: "NFR3", Text: ""},
		{ID: "FR1", Text: "store data"},
	}, domain.DefaultNFRCount)
	require.NoError(t, err)

	docs, err := Process(c, V1)
	require.NoError(t, err)
	require.Len(t, docs, 4)
	assert.Equal(t, domain.TokenDocument{"fast"}, docs[0])
	assert.Empty(t, docs[2])
	assert.Equal(t, domain.TokenDocument{"store", "data"}, docs[3])

	_, err = Process(c, Variant("bogus"))
	assert.ErrorIs(t, err, domain.ErrUnknownVariant)
}

func TestPosTag(t *testing.T) {
	tags := func(text string) []Tag {
		var out []Tag
		for _, tt := range PosTag(Tokenize(text)) {
			out = append(out, tt.Tag)
		}
		return out
	}
	assert.Equal(t, []Tag{TagNoun, TagModal, TagVerb, TagNoun}, tags("system shall encrypt data"))
	assert.Equal(t, []Tag{TagNoun, TagVerbPresent, TagNoun}, tags("interface displays menu"))
	assert.Equal(t, []Tag{TagDeterminer, TagPluralNoun, TagVerbPast}, tags("the users logged"))
	assert.Equal(t, []Tag{TagNoun, TagModal, TagAdverb, TagVerb}, tags("system must quickly respond"))
	assert.Equal(t, []Tag{TagComparative, TagNumber, TagSymbol}, tags("faster 10 ."))
}

func TestLemmatize(t *testing.T) {
	tests := []struct {
		word string
		pos  POS
		want string
	}{
		{"children", Noun, "child"},
		{"boxes", Noun, "box"},
		{"users", Noun, "user"},
		{"policies", Noun, "policy"},
		{"status", Noun, "status"},
		{"statuses", Noun, "status"},
		{"buses", Noun, "bus"},
		{"menus", Noun, "menu"},
		{"caches", Noun, "cache"},
		{"batches", Noun, "batch"},
		{"caches", Verb, "cache"},
		{"focuses", Verb, "focus"},
		{"uses", Verb, "use"},
		{"news", Noun, "news"},
		{"running", Verb, "run"},
		{"applies", Verb, "apply"},
		{"encrypted", Verb, "encrypt"},
		{"stored", Verb, "store"},
		{"requires", Verb, "require"},
		{"was", Verb, "be"},
		{"simpler", Adjective, "simple"},
		{"best", Adjective, "good"},
		{"useful", Adjective, "useful"},
		{"quickly", Adverb, "quickly"},
	}
	for _, tc := range tests {
		t.Run(tc.word+"/"+strconv.Itoa(int(tc.pos)), func(t *testing.T) {
			assert.Equal(t, tc.want, Lemmatize(tc.word, tc.pos))
		})
	}
}

func TestWordNetPOS(t *testing.T) {
	assert.Equal(t, Adjective, WordNetPOS(TagComparative))
	assert.Equal(t, Verb, WordNetPOS(TagGerund))
	assert.Equal(t, Adverb, WordNetPOS(TagAdverb))
	assert.Equal(t, Noun, WordNetPOS(TagPluralNoun))
	assert.Equal(t, Noun, WordNetPOS(TagModal))
}
