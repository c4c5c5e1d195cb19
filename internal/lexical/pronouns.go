package lexical

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

var defaultPronouns = []string{
	"i", "me", "my", "mine", "myself",
	"you", "your", "yours", "yourself", "yourselves",
	"he", "him", "his", "himself",
	"she", "her", "hers", "herself",
	"it", "its", "itself",
	"we", "us", "our", "ours", "ourselves",
	"they", "them", "their", "theirs", "themselves",
	"this", "that", "these", "those",
	"who", "whom", "whose", "which", "what",
	"someone", "somebody", "something", "anyone", "anybody", "anything",
	"everyone", "everybody", "everything", "nobody", "nothing",
	"one", "ones",
}

// Pronouns is a set of argument strings that cannot be aligned without
// coreference resolution.
type Pronouns map[string]bool

// DefaultPronouns returns the built-in English pronoun list.
func DefaultPronouns() Pronouns {
	p := make(Pronouns, len(defaultPronouns))
	for _, w := range defaultPronouns {
		p[w] = true
	}
	return p
}

// LoadPronouns reads one pronoun per line.
func LoadPronouns(path string) (Pronouns, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pronouns: %w", err)
	}
	defer f.Close()

	p := make(Pronouns)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if w := strings.ToLower(strings.TrimSpace(scanner.Text())); w != "" {
			p[w] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read pronouns: %w", err)
	}
	return p, nil
}

// Any reports whether any of args is a pronoun.
func (p Pronouns) Any(args ...string) bool {
	for _, a := range args {
		if p[a] {
			return true
		}
	}
	return false
}
