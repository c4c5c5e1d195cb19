package extract

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelbrown/paraphrase/internal/wordnet"
)

// tagged builds a parse tree from "word/TAG" pairs.
func tagged(s string) ParseTree {
	var toks []Token
	for _, f := range strings.Fields(s) {
		i := strings.LastIndexByte(f, '/')
		toks = append(toks, Token{Text: f[:i], Tag: f[i+1:]})
	}
	return ParseTree{Tokens: toks, Chunks: nounChunks(toks)}
}

func testExtractor() *Extractor {
	lex := wordnet.NewMemLexicon().
		Add(wordnet.Verb, "pass", "legislate").
		Add(wordnet.Verb, "approve", "sanction").
		Add(wordnet.Verb, "give").
		AddException(wordnet.Verb, "gave", "give")
	return &Extractor{Lex: lex}
}

func TestFromTree(t *testing.T) {
	tests := []struct {
		name    string
		tree    string
		surface string
		lemma   string
		args    []string
	}{
		{
			name:    "transitive",
			tree:    "the/DT senate/NN passed/VBD the/DT bill/NN",
			surface: "{a0} passed {a1}",
			lemma:   "{a0} pass {a1}",
			args:    []string{"the senate", "the bill"},
		},
		{
			name:    "passive with preposition",
			tree:    "the/DT bill/NN was/VBD approved/VBN by/IN lawmakers/NNS",
			surface: "{a0} was approved by {a1}",
			lemma:   "{a0} be approve by {a1}",
			args:    []string{"the bill", "lawmakers"},
		},
		{
			name:    "dative keeps a third argument",
			tree:    "obama/NNP gave/VBD the/DT girl/NN a/DT book/NN",
			surface: "{a0} gave {a1} {a2}",
			lemma:   "{a0} give {a1} {a2}",
			args:    []string{"obama", "the girl", "a book"},
		},
		{
			name:    "particle",
			tree:    "protesters/NNS shut/VBD down/RP the/DT highway/NN",
			surface: "{a0} shut down {a1}",
			lemma:   "{a0} shut down {a1}",
			args:    []string{"protesters", "the highway"},
		},
		{
			name:    "clitic",
			tree:    "arsenal/NNP beat/VBD chelsea/NNP 's/POS reserves/NNS",
			surface: "{a0} beat {a1}",
			lemma:   "{a0} beat {a1}",
			args:    []string{"arsenal", "chelsea's reserves"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := testExtractor().FromTree(tagged(tt.tree))
			require.NoError(t, res.Err)
			require.Len(t, res.Extractions, 1)
			ex := res.Extractions[0]
			assert.Equal(t, tt.surface, ex.Surface)
			assert.Equal(t, tt.lemma, ex.Lemma)
			assert.Equal(t, tt.args, ex.Args)
		})
	}
}

func TestFromTreeWithoutArguments(t *testing.T) {
	res := testExtractor().FromTree(tagged("approved/VBN by/IN lawmakers/NNS"))
	assert.NoError(t, res.Err)
	assert.Empty(t, res.Extractions)

	res = testExtractor().FromTree(tagged("breaking/NN news/NN"))
	assert.True(t, errors.Is(res.Err, ErrNoPredicate))
}

func TestNounChunks(t *testing.T) {
	tree := tagged("the/DT big/JJ storm/NN hit/VBD him/PRP the/DT day/NN")
	assert.Equal(t, []Span{{0, 3}, {4, 5}, {5, 7}}, tree.Chunks)
	assert.Equal(t, "the big storm", tree.Text(tree.Chunks[0]))
}

func TestParse(t *testing.T) {
	tree, err := Parse("The senate passed the bill.")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(tree.Tokens), 5)

	hasVerb := false
	for _, tok := range tree.Tokens {
		if strings.HasPrefix(tok.Tag, "VB") {
			hasVerb = true
		}
	}
	assert.True(t, hasVerb)
}

func TestSplitInput(t *testing.T) {
	id, sent := splitInput(1, "t1\tobama visits cuba")
	assert.Equal(t, "t1", id)
	assert.Equal(t, "obama visits cuba", sent)

	id, sent = splitInput(2, "2016_01_05\tt2\tcnn\tobama visits cuba")
	assert.Equal(t, "t2", id)
	assert.Equal(t, "obama visits cuba", sent)

	id, sent = splitInput(3, "obama visits cuba")
	assert.Equal(t, "line-3", id)
	assert.Equal(t, "obama visits cuba", sent)
}

func TestRunFile(t *testing.T) {
	input := "t1\tthe senate passed the bill\n\n2016_01_05\tt2\tcnn\tlawmakers approved the measure\nbreaking news\n"
	var out bytes.Buffer

	stats, err := testExtractor().RunFile(strings.NewReader(input), &out)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Sentences)
	assert.Equal(t, stats.Extractions, strings.Count(out.String(), "\n"))

	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		assert.GreaterOrEqual(t, len(fields), 8)
		assert.Contains(t, []string{"t1", "t2", "line-4"}, fields[0])
		assert.Equal(t, "a0", fields[4])
	}
}

func TestRunDir(t *testing.T) {
	in, out := t.TempDir(), filepath.Join(t.TempDir(), "props")
	require.NoError(t, os.WriteFile(filepath.Join(in, "2016_01_05.txt"), []byte("t1\tthe senate passed the bill\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "2016_01_06.txt"), []byte("t2\tlawmakers approved the measure\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "notes.md"), []byte("ignored\n"), 0o644))

	stats, err := testExtractor().RunDir(context.Background(), in, out, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Sentences)
	assert.FileExists(t, filepath.Join(out, "2016_01_05.prop"))
	assert.FileExists(t, filepath.Join(out, "2016_01_06.prop"))
	assert.NoFileExists(t, filepath.Join(out, "notes.prop"))
}
