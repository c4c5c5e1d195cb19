// Package annotation prepares crowdsourcing batches from the packaged rules
// and scores the returned judgments.
package annotation

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"github.com/abelbrown/paraphrase/internal/logging"
	"github.com/abelbrown/paraphrase/internal/model"
	"github.com/abelbrown/paraphrase/internal/resource"
	"github.com/abelbrown/paraphrase/internal/template"
)

// InstancesPerRule is how many example pairs each batch row shows.
const InstancesPerRule = 5

// Highlight colors for the two argument slots.
const (
	colorA0 = "#d95f02"
	colorA1 = "#7570b3"
)

var (
	// ErrBinTooSmall is returned when a bin holds fewer rules than requested.
	ErrBinTooSmall = errors.New("annotation: bin smaller than sample size")
	// ErrEmptyBatch is returned when there is nothing to write.
	ErrEmptyBatch = errors.New("annotation: empty batch")
)

// Key identifies a rule by its sorted predicate pair.
type Key struct {
	P1, P2 string
}

// RuleKey returns the key of a rule.
func RuleKey(r resource.Rule) Key {
	return keyOf(r.Pred1, r.Pred2)
}

func keyOf(p1, p2 string) Key {
	if p2 < p1 {
		p1, p2 = p2, p1
	}
	return Key{P1: p1, P2: p2}
}

// Selection is a rule chosen for annotation with the label written in the
// batch "days" column: the bin number, or the days it was drawn from.
type Selection struct {
	Key   Key
	Label string
}

// Row is one batch line: a rule and InstancesPerRule highlighted pairs.
type Row struct {
	Selection
	Instances [InstancesPerRule][2]string
}

// Bins splits rules into n consecutive chunks of len/n rules; the last
// chunk also takes the remainder.
func Bins(rules []resource.Rule, n int) [][]resource.Rule {
	if n <= 0 {
		return nil
	}
	size := len(rules) / n
	bins := make([][]resource.Rule, 0, n)
	for i := range n - 1 {
		bins = append(bins, rules[i*size:(i+1)*size])
	}
	return append(bins, rules[(n-1)*size:])
}

// SampleBins keeps the rules with at least minCount instances, splits them
// into numBins score bins (rules must be sorted by score) and draws perBin
// rules from each. Labels are 1-based bin numbers.
func SampleBins(rules []resource.Rule, numBins, perBin, minCount int, rng *rand.Rand) ([]Selection, error) {
	var kept []resource.Rule
	for _, r := range rules {
		if r.Count >= minCount {
			kept = append(kept, r)
		}
	}
	logging.Info("sampling rules", "eligible", len(kept), "min_count", minCount)

	var out []Selection
	for i, bin := range Bins(kept, numBins) {
		if len(bin) < perBin {
			return nil, fmt.Errorf("%w: bin %d has %d rules, want %d", ErrBinTooSmall, i+1, len(bin), perBin)
		}
		for _, j := range rng.Perm(len(bin))[:perBin] {
			out = append(out, Selection{Key: RuleKey(bin[j]), Label: strconv.Itoa(i + 1)})
		}
	}
	return out, nil
}

// SampleTopK draws perDay rules from the top k of every day's rule list.
// A rule drawn on several days gets one selection labelled with all of
// them, joined by "-".
func SampleTopK(rulesByDay map[string][]resource.Rule, k, perDay int, rng *rand.Rand) ([]Selection, error) {
	days := make([]string, 0, len(rulesByDay))
	for d := range rulesByDay {
		days = append(days, d)
	}
	slices.Sort(days)

	labels := make(map[Key][]string)
	var order []Key
	for _, d := range days {
		top := rulesByDay[d][:min(k, len(rulesByDay[d]))]
		if len(top) < perDay {
			return nil, fmt.Errorf("%w: day %s has %d rules, want %d", ErrBinTooSmall, d, len(top), perDay)
		}
		for _, j := range rng.Perm(len(top))[:perDay] {
			key := RuleKey(top[j])
			if labels[key] == nil {
				order = append(order, key)
			}
			labels[key] = append(labels[key], d)
		}
	}

	out := make([]Selection, 0, len(order))
	for _, key := range order {
		out = append(out, Selection{Key: key, Label: strings.Join(labels[key], "-")})
	}
	return out, nil
}

// escape keeps double quotes out of the CSV cells.
func escape(s string) string {
	return strings.ReplaceAll(s, `"`, "''")
}

// Highlight fills a surface template with colored arguments.
func Highlight(sf template.Template, a0, a1 string) string {
	return strings.NewReplacer(
		template.A0, fmt.Sprintf("<font color='%s'>%s</font>", colorA0, escape(a0)),
		template.A1, fmt.Sprintf("<font color='%s'>%s</font>", colorA1, escape(a1)),
	).Replace(escape(sf.String()))
}

// BuildBatch draws InstancesPerRule instances for every selected rule.
// Rules with too few instances are skipped and counted.
func BuildBatch(sel []Selection, instances []model.AlignedPair, rng *rand.Rand) (rows []Row, skipped int) {
	byKey := make(map[Key][]model.AlignedPair)
	for _, a := range instances {
		k := keyOf(a.Left.Pred.String(), a.Right.Pred.String())
		byKey[k] = append(byKey[k], a)
	}

	for _, s := range sel {
		pool := byKey[s.Key]
		if len(pool) < InstancesPerRule {
			logging.Warn("too few instances for rule", "p1", s.Key.P1, "p2", s.Key.P2, "have", len(pool))
			skipped++
			continue
		}
		row := Row{Selection: s}
		for i, j := range rng.Perm(len(pool))[:InstancesPerRule] {
			a := pool[j]
			row.Instances[i] = [2]string{
				Highlight(a.Left.SurfacePred, a.Left.Arg0, a.Left.Arg1),
				Highlight(a.Right.SurfacePred, a.Right.Arg0, a.Right.Arg1),
			}
		}
		rows = append(rows, row)
	}
	return rows, skipped
}

// header returns the batch CSV column names.
func header() []string {
	h := []string{"p1", "p2", "days"}
	for i := 1; i <= InstancesPerRule; i++ {
		h = append(h, fmt.Sprintf("inst%d_1", i), fmt.Sprintf("inst%d_2", i))
	}
	return h
}

// WriteBatch writes rows as the batch input CSV.
func WriteBatch(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		return ErrEmptyBatch
	}
	records := [][]string{header()}
	for _, r := range rows {
		rec := []string{escape(r.Key.P1), escape(r.Key.P2), r.Label}
		for _, inst := range r.Instances {
			rec = append(rec, inst[0], inst[1])
		}
		records = append(records, rec)
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
	)
	if df.Err != nil {
		return fmt.Errorf("build batch: %w", df.Err)
	}
	return df.WriteCSV(w)
}
