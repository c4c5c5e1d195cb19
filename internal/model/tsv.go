package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abelbrown/paraphrase/internal/logging"
	"github.com/abelbrown/paraphrase/internal/template"
)

// ErrFieldCount is returned for a line with the wrong number of fields.
var ErrFieldCount = errors.New("model: wrong field count")

const (
	propositionFields   = 8
	threeArgumentFields = 10
	negativeFields      = 12
	alignedFields       = 13
)

// ParsePropositionLine parses one extractor output line:
//
//	source_id  sentence  surface_pred  pred  a0  arg0  a1  arg1  [a2  arg2]
//
// The line is lowercased. A trailing third argument is folded into the
// first two when its slot is adjacent to another one in pred. Templates are
// trimmed after their last slot.
func ParsePropositionLine(line string) (Proposition, error) {
	fields := strings.Split(strings.ToLower(strings.TrimRight(line, "\r\n")), "\t")
	if len(fields) < propositionFields {
		return Proposition{}, fmt.Errorf("%w: got %d, want at least %d", ErrFieldCount, len(fields), propositionFields)
	}

	surface, lemma := fields[2], fields[3]
	a0, a1 := fields[5], fields[7]
	if len(fields) >= threeArgumentFields {
		m, _ := template.MergeAdjacent(surface, lemma, a0, a1, fields[9])
		surface, lemma, a0, a1 = m.Surface, m.Lemma, m.Arg0, m.Arg1
	}

	sp, err := template.Parse(template.TrimAfterLastSlot(surface))
	if err != nil {
		return Proposition{}, err
	}
	p, err := template.Parse(template.TrimAfterLastSlot(lemma))
	if err != nil {
		return Proposition{}, err
	}

	return Proposition{
		SourceID:    fields[0],
		Sentence:    strings.TrimSpace(fields[1]),
		SurfacePred: sp,
		Pred:        p,
		Arg0:        strings.TrimSpace(a0),
		Arg1:        strings.TrimSpace(a1),
	}, nil
}

// FormatProposition renders p in the extractor output format.
func FormatProposition(p Proposition) string {
	return strings.Join([]string{
		p.SourceID, p.Sentence, p.SurfacePred.String(), p.Pred.String(),
		"a0", p.Arg0, "a1", p.Arg1,
	}, "\t")
}

// ParseAlignedPairLine parses a 13-field positive instance line.
func ParseAlignedPairLine(line string) (AlignedPair, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(fields) != alignedFields {
		return AlignedPair{}, fmt.Errorf("%w: got %d, want %d", ErrFieldCount, len(fields), alignedFields)
	}
	left, err := sideFromFields(fields[1:7])
	if err != nil {
		return AlignedPair{}, err
	}
	right, err := sideFromFields(fields[7:13])
	if err != nil {
		return AlignedPair{}, err
	}
	return AlignedPair{Date: fields[0], Left: left, Right: right}, nil
}

// ParseNegativePairLine parses a 12-field negative instance line.
func ParseNegativePairLine(line string) (NegativePair, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(fields) != negativeFields {
		return NegativePair{}, fmt.Errorf("%w: got %d, want %d", ErrFieldCount, len(fields), negativeFields)
	}
	left, err := sideFromFields(fields[0:6])
	if err != nil {
		return NegativePair{}, err
	}
	right, err := sideFromFields(fields[6:12])
	if err != nil {
		return NegativePair{}, err
	}
	return NegativePair{Left: left, Right: right}, nil
}

// sideFromFields reads id, sentence, surface_pred, pred, arg0, arg1.
func sideFromFields(f []string) (Proposition, error) {
	sp, err := template.Parse(f[2])
	if err != nil {
		return Proposition{}, err
	}
	p, err := template.Parse(f[3])
	if err != nil {
		return Proposition{}, err
	}
	return Proposition{SourceID: f[0], Sentence: f[1], SurfacePred: sp, Pred: p, Arg0: f[4], Arg1: f[5]}, nil
}

func sideFields(p Proposition) []string {
	return []string{p.SourceID, p.Sentence, p.SurfacePred.String(), p.Pred.String(), p.Arg0, p.Arg1}
}

// FormatAlignedPair renders a positive instance as one 13-field line.
func FormatAlignedPair(a AlignedPair) string {
	fields := append([]string{a.Date}, sideFields(a.Left)...)
	return strings.Join(append(fields, sideFields(a.Right)...), "\t")
}

// FormatNegativePair renders a negative instance as one 12-field line.
func FormatNegativePair(n NegativePair) string {
	return strings.Join(append(sideFields(n.Left), sideFields(n.Right)...), "\t")
}

// ReadPropositions reads an extractor output stream. Malformed lines are
// logged and counted, never fatal.
func ReadPropositions(r io.Reader) (props []Proposition, skipped int, err error) {
	err = eachLine(r, func(n int, line string) {
		p, perr := ParsePropositionLine(line)
		if perr != nil {
			logging.Warn("skipping proposition line", "line", n, "err", perr)
			skipped++
			return
		}
		props = append(props, p)
	})
	return props, skipped, err
}

// ReadAlignedPairs reads a positive instance stream.
func ReadAlignedPairs(r io.Reader) (pairs []AlignedPair, skipped int, err error) {
	err = eachLine(r, func(n int, line string) {
		a, perr := ParseAlignedPairLine(line)
		if perr != nil {
			logging.Warn("skipping aligned pair line", "line", n, "err", perr)
			skipped++
			return
		}
		pairs = append(pairs, a)
	})
	return pairs, skipped, err
}

// ReadNegativePairs reads a negative instance stream.
func ReadNegativePairs(r io.Reader) (pairs []NegativePair, skipped int, err error) {
	err = eachLine(r, func(n int, line string) {
		p, perr := ParseNegativePairLine(line)
		if perr != nil {
			logging.Warn("skipping negative pair line", "line", n, "err", perr)
			skipped++
			return
		}
		pairs = append(pairs, p)
	})
	return pairs, skipped, err
}

// WriteAlignedPairs writes one line per pair.
func WriteAlignedPairs(w io.Writer, pairs []AlignedPair) error {
	bw := bufio.NewWriter(w)
	for _, a := range pairs {
		if _, err := fmt.Fprintln(bw, FormatAlignedPair(a)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteNegativePairs writes one line per pair.
func WriteNegativePairs(w io.Writer, pairs []NegativePair) error {
	bw := bufio.NewWriter(w)
	for _, n := range pairs {
		if _, err := fmt.Fprintln(bw, FormatNegativePair(n)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// eachLine calls fn with the 1-based number of every non-blank line.
func eachLine(r io.Reader, fn func(n int, line string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4<<20)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fn(n, line)
	}
	return scanner.Err()
}
