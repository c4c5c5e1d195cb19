package annotation

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// Answer is one worker's judgment of one rule.
type Answer struct {
	Yes     bool
	Comment string
}

// Results holds the judgments of a returned batch.
type Results struct {
	// Answers maps each rule to the answer of every worker who judged it.
	Answers   map[Key]map[string]Answer
	Workers   []string
	KeysByBin map[int][]Key
}

// LoadResults reads a batch results CSV. The columns used are WorkerId,
// Input.p1, Input.p2, Input.days ("-"-separated bin numbers or days) and
// Answer.ans1 to Answer.ans5; a rule is judged correct when any of its
// instances got "yes". Answer.comment is optional.
func LoadResults(r io.Reader) (*Results, error) {
	df := dataframe.ReadCSV(r,
		dataframe.DetectTypes(false),
		dataframe.HasHeader(true),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read results: %w", df.Err)
	}

	names := df.Names()
	col := func(name string) ([]string, error) {
		if !slices.Contains(names, name) {
			return nil, fmt.Errorf("read results: missing column %q", name)
		}
		return df.Col(name).Records(), nil
	}

	workers, err := col("WorkerId")
	if err != nil {
		return nil, err
	}
	p1s, err := col("Input.p1")
	if err != nil {
		return nil, err
	}
	p2s, err := col("Input.p2")
	if err != nil {
		return nil, err
	}
	bins, err := col("Input.days")
	if err != nil {
		return nil, err
	}
	var answers [InstancesPerRule][]string
	for i := range answers {
		if answers[i], err = col(fmt.Sprintf("Answer.ans%d", i+1)); err != nil {
			return nil, err
		}
	}
	var comments []string
	if slices.Contains(names, "Answer.comment") {
		comments = df.Col("Answer.comment").Records()
	}

	res := &Results{
		Answers:   make(map[Key]map[string]Answer),
		KeysByBin: make(map[int][]Key),
	}
	seenWorker := make(map[string]bool)
	seenInBin := make(map[int]map[Key]bool)

	for row := range df.Nrow() {
		key := keyOf(p1s[row], p2s[row])
		worker := workers[row]

		for _, b := range strings.Split(bins[row], "-") {
			bin, err := strconv.Atoi(strings.TrimSpace(b))
			if err != nil {
				return nil, fmt.Errorf("read results: row %d: bad bin %q", row+1, bins[row])
			}
			if seenInBin[bin] == nil {
				seenInBin[bin] = make(map[Key]bool)
			}
			if !seenInBin[bin][key] {
				seenInBin[bin][key] = true
				res.KeysByBin[bin] = append(res.KeysByBin[bin], key)
			}
		}

		ans := Answer{}
		for i := range answers {
			if strings.EqualFold(strings.TrimSpace(answers[i][row]), "yes") {
				ans.Yes = true
			}
		}
		if comments != nil {
			ans.Comment = comments[row]
		}

		if res.Answers[key] == nil {
			res.Answers[key] = make(map[string]Answer)
		}
		res.Answers[key][worker] = ans
		if !seenWorker[worker] {
			seenWorker[worker] = true
			res.Workers = append(res.Workers, worker)
		}
	}
	slices.Sort(res.Workers)
	return res, nil
}

// RemoveWorkers drops every answer of the given workers and returns how
// many answers were removed.
func (r *Results) RemoveWorkers(workers []string) int {
	removed := 0
	for _, byWorker := range r.Answers {
		for _, w := range workers {
			if _, ok := byWorker[w]; ok {
				delete(byWorker, w)
				removed++
			}
		}
	}
	r.Workers = slices.DeleteFunc(r.Workers, func(w string) bool {
		return slices.Contains(workers, w)
	})
	return removed
}
