package wordnet

import "strings"

// MemLexicon is a small in-memory Lexicon, used in tests and when no WordNet
// directory is configured.
type MemLexicon struct {
	// lemma -> pos -> synset ids
	index      map[string]map[POS][]int
	synsets    [][]string
	exceptions map[POS]map[string][]string
}

// NewMemLexicon returns an empty lexicon.
func NewMemLexicon() *MemLexicon {
	return &MemLexicon{
		index:      make(map[string]map[POS][]int),
		exceptions: make(map[POS]map[string][]string),
	}
}

// AddException registers an irregular form, e.g. (Verb, "gave", "give").
func (m *MemLexicon) AddException(pos POS, inflected string, bases ...string) *MemLexicon {
	if m.exceptions[pos] == nil {
		m.exceptions[pos] = make(map[string][]string)
	}
	m.exceptions[pos][inflected] = append(m.exceptions[pos][inflected], bases...)
	return m
}

// Add registers one synset of the given part of speech.
func (m *MemLexicon) Add(pos POS, lemmas ...string) *MemLexicon {
	id := len(m.synsets)
	norm := make([]string, 0, len(lemmas))
	for _, l := range lemmas {
		key := strings.ReplaceAll(strings.ToLower(l), " ", "_")
		norm = append(norm, key)
		if m.index[key] == nil {
			m.index[key] = make(map[POS][]int)
		}
		m.index[key][pos] = append(m.index[key][pos], id)
	}
	m.synsets = append(m.synsets, norm)
	return m
}

func (m *MemLexicon) known(pos POS) func(string) bool {
	return func(form string) bool {
		_, ok := m.index[form][pos]
		return ok
	}
}

// Synonyms implements Lexicon.
func (m *MemLexicon) Synonyms(word string) []string {
	seen := make(map[string]bool)
	for _, pos := range AllPOS {
		for _, base := range Morphy(word, pos, m.exceptions[pos], m.known(pos)) {
			for _, id := range m.index[base][pos] {
				for _, lemma := range m.synsets[id] {
					seen[normalizeLemma(lemma)] = true
				}
			}
		}
	}
	return sortedKeys(seen)
}

// Lemma implements Lexicon.
func (m *MemLexicon) Lemma(word string, pos POS) string {
	if forms := Morphy(word, pos, m.exceptions[pos], m.known(pos)); len(forms) > 0 {
		return strings.ReplaceAll(forms[0], "_", " ")
	}
	return word
}
