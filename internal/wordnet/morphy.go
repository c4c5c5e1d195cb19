package wordnet

import "strings"

type substitution struct{ suffix, replace string }

var detachment = map[POS][]substitution{
	Noun: {
		{"s", ""}, {"ses", "s"}, {"ves", "f"}, {"xes", "x"},
		{"zes", "z"}, {"ches", "ch"}, {"shes", "sh"}, {"men", "man"}, {"ies", "y"},
	},
	Verb: {
		{"s", ""}, {"ies", "y"}, {"es", "e"}, {"es", ""},
		{"ed", "e"}, {"ed", ""}, {"ing", "e"}, {"ing", ""},
	},
	Adjective: {
		{"er", ""}, {"est", ""}, {"er", "e"}, {"est", "e"},
	},
}

// Morphy returns the base forms of word for pos that known accepts, in
// discovery order. The word itself comes first when it is known. Exception
// entries take precedence over the detachment rules. Multi-word input is
// looked up with underscores, as WordNet stores collocations.
func Morphy(word string, pos POS, exceptions map[string][]string, known func(string) bool) []string {
	form := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(word)), " ", "_")
	if form == "" {
		return nil
	}

	var candidates []string
	if bases, ok := exceptions[form]; ok {
		candidates = append([]string{form}, bases...)
	} else {
		candidates = []string{form}
		for _, sub := range detachment[pos] {
			if strings.HasSuffix(form, sub.suffix) {
				candidates = append(candidates, form[:len(form)-len(sub.suffix)]+sub.replace)
			}
		}
	}

	seen := make(map[string]bool, len(candidates))
	var out []string
	for _, c := range candidates {
		if c == "" || seen[c] || !known(c) {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
