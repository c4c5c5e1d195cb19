package tweets

import "strings"

// newsPrefixes are headline lead-ins that carry no proposition.
var newsPrefixes = []string{
	"breaking:",
	"breaking news:",
	"update:",
	"updated:",
	"exclusive:",
	"just in:",
	"developing:",
	"watch:",
	"live:",
	"opinion:",
	"analysis:",
}

// StripNewsPrefix removes one leading news prefix such as "breaking:".
func StripNewsPrefix(s string) string {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	for _, prefix := range newsPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return strings.TrimSpace(s[len(prefix):])
		}
	}
	return s
}

// normalize is the comparison key for Dedup.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(StripNewsPrefix(s))), " ")
}

// Dedup drops items whose text repeats an earlier one, ignoring case,
// spacing and news prefixes. First occurrence wins; empty texts are dropped.
func Dedup[T any](items []T, text func(T) string) []T {
	seen := make(map[string]bool, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		key := normalize(text(it))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}
