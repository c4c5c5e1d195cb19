package lexical

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelbrown/paraphrase/internal/wordnet"
)

func testJudge() *Judge {
	lex := wordnet.NewMemLexicon().
		Add(wordnet.Verb, "announce", "declare", "reveal", "disclose").
		Add(wordnet.Noun, "government", "washington", "authorities").
		Add(wordnet.Noun, "girl", "miss", "kid").
		Add(wordnet.Noun, "child", "kid", "youngster").
		Add(wordnet.Noun, "alpha", "the").
		Add(wordnet.Noun, "beta", "the")
	return NewJudge(lex)
}

func TestAreEqualArgumentsReflexive(t *testing.T) {
	j := testJudge()
	for _, x := range []string{"us", "obama", "the us government", "2 girls", "a deal", "café"} {
		assert.True(t, j.AreEqualArguments(x, x), x)
	}
}

func TestAreEqualArguments(t *testing.T) {
	j := testJudge()

	tests := []struct {
		x, y string
		want bool
	}{
		{"2 girls", "two girls", true},
		{"obama", "obamaa", true},
		{"obama", "putin", false},
		{"a deal", "an agreement", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, j.AreEqualArguments(tt.x, tt.y), "%q vs %q", tt.x, tt.y)
	}
}

func TestAreEqualPredicatesCopulaInsertion(t *testing.T) {
	j := testJudge()

	tests := []struct {
		p1, p2 string
	}{
		{"{a0} happy", "{a0} be happy"},
		{"{a0} won {a1}", "{a0} have won {a1}"},
		{"{a0} have won {a1}", "{a0} won {a1}"},
	}
	for _, tt := range tests {
		assert.True(t, j.AreEqualPredicates(tt.p1, tt.p2), "%q vs %q", tt.p1, tt.p2)
	}

	assert.True(t, j.AreEqualPredicates("{a0} announced {a1}", "{a0} announced {a1}"))
	assert.False(t, j.AreEqualPredicates("{a0} announced {a1}", "{a0} revealed {a1}"))
	assert.False(t, j.AreEqualPredicates("{a0} won {a1}", "{a0} lost {a1}"))
}

func TestAreAlignedPredicates(t *testing.T) {
	j := testJudge()

	assert.True(t, j.AreAlignedPredicates("{a0} announce {a1}", "{a0} reveal {a1}"))
	assert.True(t, j.AreAlignedPredicates("{a0} announced {a1}", "{a0} revealed {a1}"), "inflected forms reduce to base")
	assert.False(t, j.AreAlignedPredicates("{a0} alpha {a1}", "{a0} beta {a1}"), "shared stop word does not align")
	assert.False(t, j.AreAlignedPredicates("{a0} announce {a1}", "{a0} win {a1}"))
	assert.False(t, j.AreAlignedPredicates("{a0} {a1}", "{a0} announce {a1}"))
}

func TestAreAlignedArguments(t *testing.T) {
	j := testJudge()

	tests := []struct {
		name string
		x, y string
		want bool
	}{
		{"substring at word boundary", "obama", "president obama", true},
		{"single word synonyms", "us government", "washington", true},
		{"plural synonyms", "two girls", "two kids", true},
		{"no overlap", "the storm", "the election", false},
		{"only stop words", "the", "a", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, j.AreAlignedArguments(tt.x, tt.y))
		})
	}
}

func TestSynonymCacheIsReused(t *testing.T) {
	j := testJudge()
	first := j.synonyms("government")
	second := j.synonyms("government")
	assert.Equal(t, first, second)
	assert.True(t, first["washington"])
	assert.Len(t, j.cache, 1)
}

func TestNumeralsToWords(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2 girls", "two girls"},
		{"21", "twenty one"},
		{"40 people", "forty people"},
		{"100", "one hundred"},
		{"105", "one hundred and five"},
		{"1005", "one thousand and five"},
		{"1984", "one thousand nine hundred and eighty four"},
		{"3rd place", "3rd place"},
		{"1,000", "1,000"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NumeralsToWords(tt.in), tt.in)
	}
}

func TestStopWords(t *testing.T) {
	assert.True(t, IsStopWord("the"))
	assert.False(t, IsStopWord("government"))
	assert.Equal(t, []string{"storm"}, ContentWords("the storm"))
}

func TestContentWordsKeepNumerals(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"2 girls", []string{"2", "girls"}},
		{"flight 370", []string{"flight", "370"}},
		{"the 5", []string{"5"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ContentWords(tt.in), tt.in)
	}
	assert.False(t, IsStopWord("5"))
}

func TestAreAlignedArgumentsNumerals(t *testing.T) {
	j := NewJudge(wordnet.NewMemLexicon().
		Add(wordnet.Noun, "girl", "lass").
		Add(wordnet.Noun, "kid", "lass"))

	tests := []struct {
		x, y string
		want bool
	}{
		{"girls", "kids", true},
		{"5 girls", "9 kids", false},
		{"5 girls", "5 girls", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, j.AreAlignedArguments(tt.x, tt.y), "%q vs %q", tt.x, tt.y)
	}
}

func TestPronouns(t *testing.T) {
	p := DefaultPronouns()
	assert.True(t, p.Any("obama", "he"))
	assert.False(t, p.Any("obama", "the us government"))

	path := filepath.Join(t.TempDir(), "pronouns.txt")
	require.NoError(t, os.WriteFile(path, []byte("He\n\nthey\n"), 0o644))
	loaded, err := LoadPronouns(path)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
	assert.True(t, loaded.Any("he"))

	_, err = LoadPronouns(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
