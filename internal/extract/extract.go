package extract

import (
	"errors"
	"strings"

	"github.com/abelbrown/paraphrase/internal/template"
	"github.com/abelbrown/paraphrase/internal/wordnet"
)

// ErrNoPredicate marks a sentence without any verb.
var ErrNoPredicate = errors.New("extract: no predicate")

// Extraction is one predicate with its arguments in template order. Args
// holds two or three arguments.
type Extraction struct {
	Surface string
	Lemma   string
	Args    []string
}

// Result is the outcome for one sentence.
type Result struct {
	Extractions []Extraction
	Err         error
}

var auxiliaryLemmas = map[string]string{
	"is": "be", "are": "be", "was": "be", "were": "be", "am": "be",
	"been": "be", "being": "be", "'s": "be", "'re": "be", "'m": "be",
	"has": "have", "had": "have", "having": "have", "'ve": "have",
	"does": "do", "did": "do",
}

// Extractor turns sentences into extractions. Lex lemmatizes the head verb;
// when nil, only auxiliaries are lemmatized.
type Extractor struct {
	Lex wordnet.Lexicon
}

// Extract parses sentence and returns every predicate that has a subject
// chunk immediately to its left and an object chunk to its right, directly
// or through one preposition.
func (e *Extractor) Extract(sentence string) Result {
	tree, err := Parse(sentence)
	if err != nil {
		return Result{Err: err}
	}
	return e.FromTree(tree)
}

// FromTree runs the extraction over an already parsed sentence.
func (e *Extractor) FromTree(tree ParseTree) Result {
	var out []Extraction
	sawVerb := false
	toks := tree.Tokens

	for i := 0; i < len(toks); {
		if !isVerb(toks[i].Tag) {
			i++
			continue
		}
		sawVerb = true

		// Verb group: verbs and adverbs up to the last verb.
		start, head := i, i
		for j := i; j < len(toks) && (isVerb(toks[j].Tag) || toks[j].Tag == "RB"); j++ {
			if isVerb(toks[j].Tag) {
				head = j
			}
		}
		i = head + 1

		if ex, ok := e.build(tree, start, head); ok {
			out = append(out, ex)
		}
	}

	if !sawVerb {
		return Result{Err: ErrNoPredicate}
	}
	return Result{Extractions: out}
}

func (e *Extractor) build(tree ParseTree, start, head int) (Extraction, bool) {
	toks := tree.Tokens

	subj, ok := tree.ChunkEndingAt(start)
	if !ok {
		return Extraction{}, false
	}

	surface := []string{template.A0}
	lemma := []string{template.A0}
	for k := start; k <= head; k++ {
		surface = append(surface, toks[k].Text)
		lemma = append(lemma, e.lemma(toks[k], k == head))
	}

	k := head + 1
	for k < len(toks) && toks[k].Tag == "RP" {
		surface = append(surface, toks[k].Text)
		lemma = append(lemma, toks[k].Text)
		k++
	}

	obj, prep, ok := e.argumentAt(tree, k)
	if !ok {
		return Extraction{}, false
	}
	if prep != "" {
		surface = append(surface, prep)
		lemma = append(lemma, prep)
	}
	surface = append(surface, template.A1)
	lemma = append(lemma, template.A1)
	args := []string{tree.Text(subj), tree.Text(obj)}

	if third, prep, ok := e.argumentAt(tree, obj.End); ok {
		if prep != "" {
			surface = append(surface, prep)
			lemma = append(lemma, prep)
		}
		surface = append(surface, template.A2)
		lemma = append(lemma, template.A2)
		args = append(args, tree.Text(third))
	}

	return Extraction{
		Surface: strings.Join(surface, " "),
		Lemma:   strings.Join(lemma, " "),
		Args:    args,
	}, true
}

// argumentAt finds a noun chunk at position k, or after one preposition at
// k. prep is empty for a direct argument.
func (e *Extractor) argumentAt(tree ParseTree, k int) (arg Span, prep string, ok bool) {
	if k >= len(tree.Tokens) {
		return Span{}, "", false
	}
	if c, ok := tree.ChunkStartingAt(k); ok {
		return c, "", true
	}
	if tag := tree.Tokens[k].Tag; tag == "IN" || tag == "TO" {
		if c, ok := tree.ChunkStartingAt(k + 1); ok {
			return c, tree.Tokens[k].Text, true
		}
	}
	return Span{}, "", false
}

func (e *Extractor) lemma(tok Token, isHead bool) string {
	lower := strings.ToLower(tok.Text)
	if l, ok := auxiliaryLemmas[lower]; ok {
		return l
	}
	if isHead && e.Lex != nil && strings.HasPrefix(tok.Tag, "VB") {
		return e.Lex.Lemma(lower, wordnet.Verb)
	}
	return tok.Text
}
