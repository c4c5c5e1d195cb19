package align

// Case identifies which rule aligned a proposition pair.
type Case int

const (
	// NoCase means the pair is not emitted.
	NoCase Case = iota
	// CaseA: straight order, one argument side equal, predicate free.
	CaseA
	// CaseB: straight order, both sides aligned, predicates aligned.
	CaseB
	// CaseC: CaseA with crossed arguments.
	CaseC
	// CaseD: CaseB with crossed arguments.
	CaseD
)

func (c Case) String() string {
	switch c {
	case CaseA:
		return "A"
	case CaseB:
		return "B"
	case CaseC:
		return "C"
	case CaseD:
		return "D"
	}
	return "none"
}

// Swapped reports whether the right proposition must be slot-swapped.
func (c Case) Swapped() bool { return c == CaseC || c == CaseD }

// FreePredicate reports whether the case admits unrelated predicates.
func (c Case) FreePredicate() bool { return c == CaseA || c == CaseC }

// Flags are the judgments computed for one ordered proposition pair.
// Aligned flags already include equality. Argument names read
// left-argument then right-argument, so EqualA0A1 compares the left arg0
// with the right arg1.
type Flags struct {
	PredEqual   bool
	PredAligned bool

	EqualA0A0, EqualA1A1, EqualA0A1, EqualA1A0         bool
	AlignedA0A0, AlignedA1A1, AlignedA0A1, AlignedA1A0 bool
}

// Classify returns the first case whose conditions hold, in order A, B, C, D.
// Equal predicates never align: the pair would carry no paraphrase.
func Classify(f Flags) Case {
	if f.PredEqual {
		return NoCase
	}
	switch {
	case (f.EqualA0A0 && f.AlignedA1A1) || (f.AlignedA0A0 && f.EqualA1A1):
		return CaseA
	case f.PredAligned && f.AlignedA0A0 && f.AlignedA1A1:
		return CaseB
	case (f.EqualA0A1 && f.AlignedA1A0) || (f.AlignedA0A1 && f.EqualA1A0):
		return CaseC
	case f.PredAligned && f.AlignedA0A1 && f.AlignedA1A0:
		return CaseD
	}
	return NoCase
}
