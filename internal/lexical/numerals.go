package lexical

import (
	"strconv"
	"strings"
)

var (
	ones = []string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
		"seventeen", "eighteen", "nineteen",
	}
	tens = []string{
		"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
	}
	scales = []struct {
		value uint64
		name  string
	}{
		{1_000_000_000_000, "trillion"},
		{1_000_000_000, "billion"},
		{1_000_000, "million"},
		{1_000, "thousand"},
	}
)

// NumeralsToWords rewrites every whitespace token made only of ASCII digits
// as English words, e.g. "2 girls" -> "two girls", "21" -> "twenty one".
// Hyphenated compounds are emitted with spaces.
func NumeralsToWords(s string) string {
	tokens := strings.Fields(s)
	for i, tok := range tokens {
		if !isDigits(tok) {
			continue
		}
		n, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			continue
		}
		tokens[i] = numberWords(n)
	}
	return strings.Join(tokens, " ")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func numberWords(n uint64) string {
	if n < 1000 {
		return hundreds(n)
	}

	var parts []string
	for _, sc := range scales {
		if n >= sc.value {
			parts = append(parts, numberWords(n/sc.value), sc.name)
			n %= sc.value
		}
	}
	switch {
	case n == 0:
	case n < 100:
		parts = append(parts, "and", hundreds(n))
	default:
		parts = append(parts, hundreds(n))
	}
	return strings.Join(parts, " ")
}

// hundreds spells n in [0, 999].
func hundreds(n uint64) string {
	switch {
	case n < 20:
		return ones[n]
	case n < 100:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + " " + ones[n%10]
	}
	out := ones[n/100] + " hundred"
	if n%100 != 0 {
		out += " and " + hundreds(n%100)
	}
	return out
}
