package negative

import (
	"fmt"
	"strings"

	"github.com/abelbrown/paraphrase/internal/logging"
	"github.com/abelbrown/paraphrase/internal/model"
)

// ReplayStats summarizes a replay.
type ReplayStats struct {
	Entries   int
	Unmatched int
	Failed    int
	Generated int
}

// Replay regenerates the negatives recorded in entries from the positives
// they were sampled from, without drawing anything at random. Entries are
// matched to positives by their header parameters, in order.
func Replay(positives []model.AlignedPair, entries []Entry) ([]model.NegativePair, ReplayStats, error) {
	var stats ReplayStats
	var out []model.NegativePair

	next := 0
	for _, e := range entries {
		stats.Entries++

		idx := -1
		for k := next; k < len(positives); k++ {
			if e.Matches(positives[k]) {
				idx = k
				break
			}
		}
		if idx < 0 {
			stats.Unmatched++
			logging.Warn("no positive for log entry", "tweet_id1", e.Params["tweet_id1"], "tweet_id2", e.Params["tweet_id2"])
			continue
		}
		next = idx + 1
		p := positives[idx]

		for _, a := range e.Actions {
			a, ok := restoreQuotes(p.Right.Sentence, a)
			if !ok {
				stats.Failed++
				logging.Warn("logged substring not in sentence", "tweet_id2", p.Right.SourceID, "old", a.Old)
				continue
			}
			out = append(out, Apply(p, a))
			stats.Generated++
		}
	}

	if stats.Entries > 0 && stats.Unmatched == stats.Entries {
		return out, stats, fmt.Errorf("negative: no log entry matches the positives")
	}
	return out, stats, nil
}

// restoreQuotes undoes the quote rewriting of the log when the sentence
// holds single quotes.
func restoreQuotes(sentence string, a Action) (Action, bool) {
	if strings.Contains(sentence, a.Old) {
		return a, true
	}
	restored := a
	restored.Old = strings.ReplaceAll(a.Old, `"`, "'")
	restored.New = strings.ReplaceAll(a.New, `"`, "'")
	if strings.Contains(sentence, restored.Old) {
		return restored, true
	}
	return a, false
}
