// Package model defines the records that flow between pipeline stages.
package model

import "github.com/abelbrown/paraphrase/internal/template"

// Proposition is one predicate with two arguments extracted from a sentence.
type Proposition struct {
	SourceID    string
	Sentence    string
	SurfacePred template.Template
	Pred        template.Template
	Arg0        string
	Arg1        string
}

// Reversed returns the proposition with both templates slot-swapped and the
// arguments exchanged, so that it still instantiates the same sentence.
func (p Proposition) Reversed() Proposition {
	return Proposition{
		SourceID:    p.SourceID,
		Sentence:    p.Sentence,
		SurfacePred: p.SurfacePred.Swap(),
		Pred:        p.Pred.Swap(),
		Arg0:        p.Arg1,
		Arg1:        p.Arg0,
	}
}

// Tuple is the (predicate, arg0, arg1) identity of a proposition.
type Tuple struct {
	Pred template.Template
	Arg0 string
	Arg1 string
}

// Tuple returns the proposition's (predicate, arg0, arg1) identity.
func (p Proposition) Tuple() Tuple {
	return Tuple{Pred: p.Pred, Arg0: p.Arg0, Arg1: p.Arg1}
}

// AlignedPair is a positive instance: two propositions from different
// sources whose arguments align, with Right normalized to Left's argument
// order.
type AlignedPair struct {
	Date  string
	Left  Proposition
	Right Proposition
}

// SourceKey is an unordered pair of source identifiers.
type SourceKey [2]string

// Key returns the unordered source-id pair of the instance.
func (a AlignedPair) Key() SourceKey {
	if a.Left.SourceID <= a.Right.SourceID {
		return SourceKey{a.Left.SourceID, a.Right.SourceID}
	}
	return SourceKey{a.Right.SourceID, a.Left.SourceID}
}

// TupleKey returns the per-side (predicate, arg0, arg1) identity, order
// sensitive.
func (a AlignedPair) TupleKey() [2]Tuple {
	return [2]Tuple{a.Left.Tuple(), a.Right.Tuple()}
}

// NegativePair is a positive instance whose right predicate was replaced by
// a dissimilar one from another day.
type NegativePair struct {
	Left  Proposition
	Right Proposition
}
