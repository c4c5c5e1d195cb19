// Package negative builds negative instances from positive ones by swapping
// in a dissimilar predicate drawn from another day.
package negative

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/abelbrown/paraphrase/internal/lexical"
	"github.com/abelbrown/paraphrase/internal/logging"
	"github.com/abelbrown/paraphrase/internal/model"
	"github.com/abelbrown/paraphrase/internal/template"
)

// ErrPoolTooSmall is returned when a positive has some, but fewer than
// Ratio, eligible candidates.
var ErrPoolTooSmall = errors.New("negative: candidate pool smaller than ratio")

// Stats summarizes one sampling run.
type Stats struct {
	Positives int
	EmptyPool int
	Drawn     int
	Discarded int
	Generated int
}

// Result is the output of Sample.
type Result struct {
	Negatives []model.NegativePair
	Stats     Stats
}

// Sampler draws negative candidates for each positive instance.
type Sampler struct {
	Judge *lexical.Judge
	Ratio int
	Rand  *rand.Rand
	// Log receives every substitution; nil disables logging.
	Log *ActionLog
}

// NewSampler returns a sampler seeded with seed.
func NewSampler(j *lexical.Judge, ratio int, seed uint64) *Sampler {
	return &Sampler{
		Judge: j,
		Ratio: ratio,
		Rand:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Action is one recorded rewrite of a positive's second sentence.
type Action struct {
	Old         string
	New         string
	Pred        template.Template
	SurfacePred template.Template
}

// Sample generates up to Ratio negatives per positive. Positives with no
// eligible candidate are skipped and counted in Stats.EmptyPool.
func (s *Sampler) Sample(positives []model.AlignedPair) (res Result, err error) {
	if s.Log != nil {
		// The log covers everything sampled so far, even when sampling stops early.
		defer func() {
			if ferr := s.Log.Flush(); ferr != nil && err == nil {
				err = ferr
			}
		}()
	}
	if s.Ratio < 1 {
		return Result{}, fmt.Errorf("negative: ratio must be positive, got %d", s.Ratio)
	}

	for _, p := range positives {
		res.Stats.Positives++
		if s.Log != nil {
			if err := s.Log.Begin(p); err != nil {
				return res, err
			}
		}

		pool := s.Pool(p, positives)
		if len(pool) == 0 {
			res.Stats.EmptyPool++
			logging.Debug("no negative candidates", "left", p.Left.SourceID, "right", p.Right.SourceID, "date", p.Date)
			continue
		}
		if len(pool) < s.Ratio {
			return res, fmt.Errorf("%w: %s/%s has %d candidates, ratio %d",
				ErrPoolTooSmall, p.Left.SourceID, p.Right.SourceID, len(pool), s.Ratio)
		}

		n := 1
		for _, idx := range s.Rand.Perm(len(pool))[:s.Ratio] {
			res.Stats.Drawn++
			action, ok := Substitute(p, pool[idx])
			if !ok {
				res.Stats.Discarded++
				continue
			}
			if s.Log != nil {
				if err := s.Log.Record(n, action); err != nil {
					return res, err
				}
			}
			n++
			res.Negatives = append(res.Negatives, Apply(p, action))
			res.Stats.Generated++
		}
	}
	return res, nil
}

// Pool returns the positives usable as negative donors for p: a different
// date and a right predicate neither equal nor aligned to p's left one.
func (s *Sampler) Pool(p model.AlignedPair, positives []model.AlignedPair) []model.AlignedPair {
	pred1 := p.Left.Pred.String()
	var pool []model.AlignedPair
	for _, q := range positives {
		if q.Date == p.Date {
			continue
		}
		pred2 := q.Right.Pred.String()
		if s.Judge.AreEqualPredicates(pred1, pred2) || s.Judge.AreAlignedPredicates(pred1, pred2) {
			continue
		}
		pool = append(pool, q)
	}
	return pool
}

// Substitute locates p's right predicate, instantiated with p's right
// arguments, in p's right sentence and pairs it with donor's right predicate
// instantiated the same way. When the full instantiation is not found and
// the predicate is framed by slots, the bare predicate words are used
// instead. ok is false when no rewrite can be located.
func Substitute(p, donor model.AlignedPair) (a Action, ok bool) {
	right := p.Right
	sent := right.Sentence

	old := right.SurfacePred.Fill(right.Arg0, right.Arg1)
	repl := donor.Right.SurfacePred.Fill(right.Arg0, right.Arg1)

	if !strings.Contains(sent, old) {
		if !right.Pred.StartsWithSlot() || !right.Pred.EndsWithSlot() {
			return Action{}, false
		}
		old = right.SurfacePred.Strip()
		repl = donor.Right.SurfacePred.Strip()
		if old == "" || !strings.Contains(sent, old) {
			return Action{}, false
		}
	}

	return Action{
		Old:         old,
		New:         repl,
		Pred:        donor.Right.Pred,
		SurfacePred: donor.Right.SurfacePred,
	}, true
}

// Apply builds the negative instance for p from a recorded action.
func Apply(p model.AlignedPair, a Action) model.NegativePair {
	right := p.Right
	return model.NegativePair{
		Left: p.Left,
		Right: model.Proposition{
			SourceID:    right.SourceID,
			Sentence:    strings.ReplaceAll(right.Sentence, a.Old, a.New),
			SurfacePred: a.SurfacePred,
			Pred:        a.Pred,
			Arg0:        right.Arg0,
			Arg1:        right.Arg1,
		},
	}
}
