// Package template implements the predicate template micro-language.
//
// A template is a predicate string with exactly two argument slots, written
// {a0} and {a1}, e.g. "{a0} announced {a1}". Slot order is significant:
// "{a1} was announced by {a0}" is a different template from its swap.
package template

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// A0 is the first argument slot.
	A0 = "{a0}"
	// A1 is the second argument slot.
	A1 = "{a1}"
	// A2 only appears in raw three-argument extractions before merging.
	A2 = "{a2}"
)

// ErrMalformed is returned when a string does not carry exactly one {a0}
// and one {a1} slot.
var ErrMalformed = errors.New("template: malformed predicate template")

// Template is a validated predicate template.
type Template string

// Parse validates s and returns it as a Template.
func Parse(s string) (Template, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, A0) != 1 || strings.Count(s, A1) != 1 {
		return "", fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	return Template(s), nil
}

// MustParse is Parse for literals in tests and tables.
func MustParse(s string) Template {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Template) String() string { return string(t) }

// Swap exchanges the two slots in a single pass.
func (t Template) Swap() Template {
	r := strings.NewReplacer(A0, A1, A1, A0)
	return Template(r.Replace(string(t)))
}

// Fill instantiates the template with concrete argument strings.
func (t Template) Fill(a0, a1 string) string {
	r := strings.NewReplacer(A0, a0, A1, a1)
	return r.Replace(string(t))
}

// Strip removes both slots and surrounding whitespace, leaving the bare
// predicate words.
func (t Template) Strip() string {
	r := strings.NewReplacer(A0, "", A1, "")
	return strings.Join(strings.Fields(r.Replace(string(t))), " ")
}

// InsertAfterA0 inserts word right after the {a0} slot:
// "{a0} happy" -> "{a0} be happy".
func (t Template) InsertAfterA0(word string) Template {
	return Template(strings.Replace(string(t), A0+" ", A0+" "+word+" ", 1))
}

// StartsWithSlot reports whether the template begins with a slot.
func (t Template) StartsWithSlot() bool {
	return strings.HasPrefix(string(t), A0) || strings.HasPrefix(string(t), A1)
}

// EndsWithSlot reports whether the template ends with a slot.
func (t Template) EndsWithSlot() bool {
	return strings.HasSuffix(string(t), A0) || strings.HasSuffix(string(t), A1)
}

// SlotOffsets returns the byte offsets of {a0} and {a1}.
func (t Template) SlotOffsets() (a0, a1 int) {
	return strings.Index(string(t), A0), strings.Index(string(t), A1)
}

// TrimAfterLastSlot drops everything following the last argument slot.
// Raw extractions may carry trailing material there that no argument covers.
func TrimAfterLastSlot(s string) string {
	end := -1
	for _, slot := range []string{A0, A1} {
		if i := strings.LastIndex(s, slot); i >= 0 && i+len(slot) > end {
			end = i + len(slot)
		}
	}
	if end < 0 {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(s[:end])
}

// Merged is the result of MergeAdjacent.
type Merged struct {
	Surface string
	Lemma   string
	Arg0    string
	Arg1    string
}

// MergeAdjacent folds a three-argument extraction into two arguments when two
// slots are adjacent in the lemmatized template: "{a0} {a1}" becomes one
// composite a0 (and {a2} is renamed {a1}), "{a1} {a2}" becomes one composite a1.
// ok is false when no adjacency exists and the extraction keeps its first two
// arguments unchanged.
func MergeAdjacent(surface, lemma, a0, a1, a2 string) (m Merged, ok bool) {
	switch {
	case strings.Contains(lemma, A0+" "+A1):
		fold := strings.NewReplacer(A0+" "+A1, A0, A2, A1)
		return Merged{
			Surface: fold.Replace(surface),
			Lemma:   fold.Replace(lemma),
			Arg0:    a0 + " " + a1,
			Arg1:    a2,
		}, true
	case strings.Contains(lemma, A1+" "+A2):
		fold := strings.NewReplacer(A1+" "+A2, A1)
		return Merged{
			Surface: fold.Replace(surface),
			Lemma:   fold.Replace(lemma),
			Arg0:    a0,
			Arg1:    a1 + " " + a2,
		}, true
	}
	return Merged{Surface: surface, Lemma: lemma, Arg0: a0, Arg1: a1}, false
}
