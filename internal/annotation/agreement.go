package annotation

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/abelbrown/paraphrase/internal/logging"
)

// Agreement thresholds used for the published evaluation.
const (
	DefaultMinHits    = 5
	DefaultMinMutual  = 5
	DefaultPruneBelow = 0.1
)

// CohenKappa returns Cohen's kappa of two binary label sequences of equal
// length. It is NaN when expected agreement is 1 (both raters constant and
// equal), and for empty input.
func CohenKappa(a, b []bool) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.NaN()
	}
	xa, xb := indicator(a), indicator(b)

	agree := make([]float64, len(a))
	for i := range a {
		if a[i] == b[i] {
			agree[i] = 1
		}
	}
	po := stat.Mean(agree, nil)
	pa, pb := stat.Mean(xa, nil), stat.Mean(xb, nil)
	pe := pa*pb + (1-pa)*(1-pb)
	if pe == 1 {
		return math.NaN()
	}
	return (po - pe) / (1 - pe)
}

func indicator(v []bool) []float64 {
	x := make([]float64, len(v))
	for i, b := range v {
		if b {
			x[i] = 1
		}
	}
	return x
}

// PairwiseAgreement computes kappa between every two workers who each
// answered at least minHits rules and share at least minMutual of them.
// Workers whose mean kappa with the others is below pruneBelow are
// returned in removed; kappa is the mean over the pairs of kept workers,
// NaN when there are none.
func PairwiseAgreement(r *Results, minHits, minMutual int, pruneBelow float64) (kappa float64, removed []string) {
	perWorker := make(map[string]map[Key]bool)
	for key, byWorker := range r.Answers {
		for w, ans := range byWorker {
			if perWorker[w] == nil {
				perWorker[w] = make(map[Key]bool)
			}
			perWorker[w][key] = ans.Yes
		}
	}

	var active []string
	for w, answers := range perWorker {
		if len(answers) >= minHits {
			active = append(active, w)
		}
	}
	slices.Sort(active)

	pairwise := make(map[string]map[string]float64, len(active))
	for _, w := range active {
		pairwise[w] = make(map[string]float64)
	}
	for i, w1 := range active {
		for _, w2 := range active[i+1:] {
			var l1, l2 []bool
			for key, y1 := range perWorker[w1] {
				if y2, ok := perWorker[w2][key]; ok {
					l1 = append(l1, y1)
					l2 = append(l2, y2)
				}
			}
			if len(l1) < minMutual {
				continue
			}
			if k := CohenKappa(l1, l2); !math.IsNaN(k) {
				pairwise[w1][w2] = k
				pairwise[w2][w1] = k
			}
		}
	}

	for _, w := range active {
		if len(pairwise[w]) == 0 {
			continue
		}
		if stat.Mean(values(pairwise[w]), nil) < pruneBelow {
			logging.Info("removing worker", "worker", w)
			removed = append(removed, w)
		}
	}

	var kept []float64
	for _, w1 := range active {
		if slices.Contains(removed, w1) {
			continue
		}
		for w2, k := range pairwise[w1] {
			if !slices.Contains(removed, w2) {
				kept = append(kept, k)
			}
		}
	}
	if len(kept) == 0 {
		return math.NaN(), removed
	}
	return stat.Mean(kept, nil), removed
}

func values(m map[string]float64) []float64 {
	out := make([]float64, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

// Majority returns the majority label of every judged rule. Ties and rules
// without answers count as false.
func Majority(r *Results) map[Key]bool {
	out := make(map[Key]bool, len(r.Answers))
	for key, byWorker := range r.Answers {
		yes := 0
		for _, a := range byWorker {
			if a.Yes {
				yes++
			}
		}
		out[key] = yes > len(byWorker)-yes
	}
	return out
}

// BinAccuracy returns, per bin, the percentage of its rules whose majority
// label is true.
func BinAccuracy(r *Results) map[int]float64 {
	majority := Majority(r)
	acc := make(map[int]float64, len(r.KeysByBin))
	for bin, keys := range r.KeysByBin {
		if len(keys) == 0 {
			continue
		}
		correct := make([]float64, len(keys))
		for i, k := range keys {
			if majority[k] {
				correct[i] = 100
			}
		}
		acc[bin] = stat.Mean(correct, nil)
	}
	return acc
}
