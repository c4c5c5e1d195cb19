// Package extract produces shallow predicate-argument propositions from
// sentences using a part-of-speech tagger and a noun-chunk heuristic.
package extract

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// Token is a tagged word.
type Token struct {
	Text string
	Tag  string
}

// Span is a half-open token range [Start, End).
type Span struct {
	Start, End int
}

// ParseTree is the result of parsing one sentence. It owns all state; two
// parses never share anything.
type ParseTree struct {
	Tokens []Token
	Chunks []Span
}

// Parse tags sentence and groups its noun chunks. Tagger panics are returned
// as errors.
func Parse(sentence string) (tree ParseTree, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract: tagger panic: %v", r)
		}
	}()

	doc, err := prose.NewDocument(sentence,
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return ParseTree{}, fmt.Errorf("extract: parse: %w", err)
	}

	for _, tok := range doc.Tokens() {
		tree.Tokens = append(tree.Tokens, Token{Text: tok.Text, Tag: tok.Tag})
	}
	tree.Chunks = nounChunks(tree.Tokens)
	return tree, nil
}

// Text joins the tokens of s, attaching clitics and closing punctuation to
// the preceding word.
func (t ParseTree) Text(s Span) string {
	var b strings.Builder
	for i := s.Start; i < s.End; i++ {
		text := t.Tokens[i].Text
		if i > s.Start && !attaches(text) {
			b.WriteByte(' ')
		}
		b.WriteString(text)
	}
	return b.String()
}

func attaches(text string) bool {
	return strings.HasPrefix(text, "'") || text == "n't" || text == "," || text == "." || text == "%"
}

// ChunkEndingAt returns the noun chunk whose last token is i-1.
func (t ParseTree) ChunkEndingAt(i int) (Span, bool) {
	for _, c := range t.Chunks {
		if c.End == i {
			return c, true
		}
	}
	return Span{}, false
}

// ChunkStartingAt returns the noun chunk whose first token is i.
func (t ParseTree) ChunkStartingAt(i int) (Span, bool) {
	for _, c := range t.Chunks {
		if c.Start == i {
			return c, true
		}
	}
	return Span{}, false
}

func isVerb(tag string) bool { return strings.HasPrefix(tag, "VB") || tag == "MD" }

func isNounHead(tag string) bool {
	return strings.HasPrefix(tag, "NN") || tag == "PRP" || tag == "CD"
}

func isDeterminer(tag string) bool { return tag == "DT" || tag == "PDT" || tag == "PRP$" }

func isChunkTag(tag string) bool {
	switch tag {
	case "DT", "PDT", "PRP$", "JJ", "JJR", "JJS", "CD", "POS", "PRP", "HYPH",
		"NN", "NNS", "NNP", "NNPS":
		return true
	}
	return false
}

// nounChunks groups maximal runs of nominal tags that contain a head. A
// determiner after a head, or anything after a personal pronoun, starts a
// new chunk, so "gave the girl a book" yields two chunks.
func nounChunks(toks []Token) []Span {
	var chunks []Span
	start, hasHead := -1, false

	flush := func(end int) {
		if start >= 0 && hasHead {
			chunks = append(chunks, Span{Start: start, End: end})
		}
		start, hasHead = -1, false
	}

	for i, tok := range toks {
		if !isChunkTag(tok.Tag) {
			flush(i)
			continue
		}
		if start >= 0 && hasHead && (isDeterminer(tok.Tag) || toks[i-1].Tag == "PRP") {
			flush(i)
		}
		if start < 0 {
			start = i
		}
		if isNounHead(tok.Tag) {
			hasHead = true
		}
	}
	flush(len(toks))
	return chunks
}
