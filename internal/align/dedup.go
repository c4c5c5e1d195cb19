package align

import "github.com/abelbrown/paraphrase/internal/model"

// Dedup keeps one pair per unordered source-id pair and then one pair per
// (predicate, arg0, arg1) tuple pair. The first pair of each group is kept,
// so output order is input order. Dedup is idempotent.
func Dedup(pairs []model.AlignedPair) []model.AlignedPair {
	bySource := firstOf(pairs, func(a model.AlignedPair) model.SourceKey { return a.Key() })
	return firstOf(bySource, func(a model.AlignedPair) [2]model.Tuple { return a.TupleKey() })
}

func firstOf[K comparable](pairs []model.AlignedPair, key func(model.AlignedPair) K) []model.AlignedPair {
	seen := make(map[K]bool, len(pairs))
	var out []model.AlignedPair
	for _, a := range pairs {
		k := key(a)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, a)
	}
	return out
}
