// Package tweets normalizes raw tweet and headline text into the sentence
// form the extractor reads.
package tweets

import (
	"html"
	"regexp"
	"slices"
	"strings"
	"unicode"
)

var (
	retweetPrefix = regexp.MustCompile(`^rt [^\s]+\s?: `)
	viaSuffix     = regexp.MustCompile(`(?i)\s*\bvia\s?[^\s]*$`)
	spaceBeforeP  = regexp.MustCompile(`\s+([.,!?;:%])`)
	clitic        = regexp.MustCompile(`\s+(n't|'s|'re|'ve|'ll|'d|'m)\b`)
	trailingDots  = regexp.MustCompile(`\.\.\.$`)
)

// Clean lowercases a tweet and removes the parts that are not sentence text:
// a leading "rt @user: ", a trailing "via @source", URLs, and hashtags at
// the end of the tweet.
// Hashtags followed by text are kept as words ("#SyrianRefugees should"
// becomes "syrian refugees should") and mentions keep the name without "@".
func Clean(text string) string {
	text = html.UnescapeString(strings.ReplaceAll(text, "\n", " "))
	text = strings.ReplaceAll(text, "\u2026", "...")
	if loc := retweetPrefix.FindStringIndex(strings.ToLower(text)); loc != nil {
		text = text[loc[1]:]
	}
	text = viaSuffix.ReplaceAllString(text, "")

	toks := strings.Fields(text)
	kept := make([]string, 0, len(toks))
	for _, tok := range slices.Backward(toks) {
		low := strings.ToLower(tok)
		switch {
		case strings.HasPrefix(tok, "#"):
			// At the end, or followed only by hashtags and urls.
			if len(kept) == 0 {
				continue
			}
			kept = append(kept, CamelCaseSplit(tok))
		case strings.Contains(low, "t.co") || strings.Contains(low, "http"):
			continue
		case strings.HasPrefix(tok, "@"):
			kept = append(kept, low[1:])
		default:
			kept = append(kept, low)
		}
	}
	slices.Reverse(kept)

	out := spaceBeforeP.ReplaceAllString(strings.Join(kept, " "), "$1")
	out = clitic.ReplaceAllString(out, "$1")
	return strings.TrimSpace(trailingDots.ReplaceAllString(out, ""))
}

// CamelCaseSplit turns a hashtag into lowercase words, splitting at
// lower-to-upper transitions and before the last capital of an acronym:
// "#SyrianRefugees" -> "syrian refugees", "#BBCNews" -> "bbc news".
func CamelCaseSplit(tag string) string {
	r := []rune(strings.TrimPrefix(tag, "#"))
	var words []string
	start := 0
	for i := 1; i < len(r); i++ {
		lowerToUpper := unicode.IsLower(r[i-1]) && unicode.IsUpper(r[i])
		acronymEnd := unicode.IsUpper(r[i-1]) && unicode.IsUpper(r[i]) &&
			i+1 < len(r) && unicode.IsLower(r[i+1])
		if lowerToUpper || acronymEnd {
			words = append(words, string(r[start:i]))
			start = i
		}
	}
	if start < len(r) {
		words = append(words, string(r[start:]))
	}
	return strings.ToLower(strings.Join(words, " "))
}
