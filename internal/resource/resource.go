// Package resource turns aligned pairs into the published resource: a
// tweet-less instance file that only carries ids, and a rules file of
// predicate pairs ranked by how often and on how many days they were seen.
package resource

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/abelbrown/paraphrase/internal/logging"
	"github.com/abelbrown/paraphrase/internal/model"
	"github.com/abelbrown/paraphrase/internal/template"
)

const (
	instanceFields      = 10
	datedInstanceFields = 11
	ruleFields          = 4
)

// Rule is an unordered pair of lemma predicates with its support.
type Rule struct {
	Pred1, Pred2 string
	Count        int
	Days         int
	Score        float64
}

// Package builds the rule list from aligned pairs. A rule's score is
// count * (1 + days/totalDays), so rules seen on many days rank above
// rules with the same count from a single news day. Rules are sorted by
// descending score, then count, then predicates.
func Package(pairs []model.AlignedPair) []Rule {
	type key [2]string
	counts := make(map[key]int)
	days := make(map[key]map[string]bool)
	allDays := make(map[string]bool)

	for _, a := range pairs {
		k := key{a.Left.Pred.String(), a.Right.Pred.String()}
		if k[1] < k[0] {
			k[0], k[1] = k[1], k[0]
		}
		counts[k]++
		if days[k] == nil {
			days[k] = make(map[string]bool)
		}
		days[k][a.Date] = true
		allDays[a.Date] = true
	}

	rules := make([]Rule, 0, len(counts))
	for k, n := range counts {
		d := len(days[k])
		rules = append(rules, Rule{
			Pred1: k[0],
			Pred2: k[1],
			Count: n,
			Days:  d,
			Score: float64(n) * (1 + float64(d)/float64(len(allDays))),
		})
	}
	slices.SortFunc(rules, func(a, b Rule) int {
		return cmp.Or(
			cmp.Compare(b.Score, a.Score),
			cmp.Compare(b.Count, a.Count),
			cmp.Compare(a.Pred1, b.Pred1),
			cmp.Compare(a.Pred2, b.Pred2),
		)
	})
	return rules
}

// WriteRules writes "pred1<TAB>pred2<TAB>count<TAB>days" lines.
func WriteRules(w io.Writer, rules []Rule) error {
	bw := bufio.NewWriter(w)
	for _, r := range rules {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%d\t%d\n", r.Pred1, r.Pred2, r.Count, r.Days); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadRules reads a rules file. Scores are not stored and stay zero.
func ReadRules(r io.Reader) (rules []Rule, skipped int, err error) {
	err = eachLine(r, func(n int, line string) {
		f := strings.Split(line, "\t")
		if len(f) != ruleFields {
			logging.Warn("skipping rule line", "line", n, "err", model.ErrFieldCount)
			skipped++
			return
		}
		count, cerr := strconv.Atoi(f[2])
		days, derr := strconv.Atoi(f[3])
		if cerr != nil || derr != nil {
			logging.Warn("skipping rule line", "line", n, "err", "bad count")
			skipped++
			return
		}
		rules = append(rules, Rule{Pred1: f[0], Pred2: f[1], Count: count, Days: days})
	})
	return rules, skipped, err
}

// FormatInstance renders a pair without its sentences:
//
//	id1  surface_pred1  pred1  arg0  arg1  id2  surface_pred2  pred2  arg0  arg1
func FormatInstance(a model.AlignedPair) string {
	side := func(p model.Proposition) []string {
		return []string{p.SourceID, p.SurfacePred.String(), p.Pred.String(), p.Arg0, p.Arg1}
	}
	return strings.Join(append(side(a.Left), side(a.Right)...), "\t")
}

// ParseInstanceLine reads a tweet-less instance, optionally led by a date
// field.
func ParseInstanceLine(line string) (model.AlignedPair, error) {
	f := strings.Split(line, "\t")
	var a model.AlignedPair
	switch len(f) {
	case datedInstanceFields:
		a.Date, f = f[0], f[1:]
	case instanceFields:
	default:
		return model.AlignedPair{}, fmt.Errorf("%w: got %d, want %d", model.ErrFieldCount, len(f), instanceFields)
	}

	side := func(g []string) (model.Proposition, error) {
		sp, err := template.Parse(g[1])
		if err != nil {
			return model.Proposition{}, err
		}
		p, err := template.Parse(g[2])
		if err != nil {
			return model.Proposition{}, err
		}
		return model.Proposition{SourceID: g[0], SurfacePred: sp, Pred: p, Arg0: g[3], Arg1: g[4]}, nil
	}
	var err error
	if a.Left, err = side(f[:5]); err != nil {
		return model.AlignedPair{}, err
	}
	if a.Right, err = side(f[5:]); err != nil {
		return model.AlignedPair{}, err
	}
	return a, nil
}

// WriteInstances writes the tweet-less form of every pair.
func WriteInstances(w io.Writer, pairs []model.AlignedPair) error {
	bw := bufio.NewWriter(w)
	for _, a := range pairs {
		if _, err := fmt.Fprintln(bw, FormatInstance(a)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadInstances reads a tweet-less instance file.
func ReadInstances(r io.Reader) (pairs []model.AlignedPair, skipped int, err error) {
	err = eachLine(r, func(n int, line string) {
		a, perr := ParseInstanceLine(line)
		if perr != nil {
			logging.Warn("skipping instance line", "line", n, "err", perr)
			skipped++
			return
		}
		pairs = append(pairs, a)
	})
	return pairs, skipped, err
}

// TweetIDs returns the distinct source ids of pairs, sorted.
func TweetIDs(pairs []model.AlignedPair) []string {
	seen := make(map[string]bool, 2*len(pairs))
	for _, a := range pairs {
		seen[a.Left.SourceID] = true
		seen[a.Right.SourceID] = true
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Expand re-attaches sentences by source id. Pairs where either side has
// no text are dropped and counted.
func Expand(pairs []model.AlignedPair, texts map[string]string) (expanded []model.AlignedPair, dropped int) {
	expanded = make([]model.AlignedPair, 0, len(pairs))
	for _, a := range pairs {
		t1, ok1 := texts[a.Left.SourceID]
		t2, ok2 := texts[a.Right.SourceID]
		if !ok1 || !ok2 {
			dropped++
			continue
		}
		a.Left.Sentence, a.Right.Sentence = t1, t2
		expanded = append(expanded, a)
	}
	return expanded, dropped
}

func eachLine(r io.Reader, fn func(n int, line string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4<<20)
	n := 0
	for scanner.Scan() {
		n++
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			fn(n, line)
		}
	}
	return scanner.Err()
}
