// Package wordnet provides synonym lookup over the WordNet lexical database.
//
// The on-disk reader understands the plain-text WordNet 3.x dict directory
// (index.<pos>, data.<pos> and <pos>.exc files). Lookup mirrors the usual
// "all synsets of a word" query: the word is reduced to its base forms for
// every part of speech, and the lemma names of all matching synsets are
// unioned, lowercased, with underscores turned into spaces.
package wordnet

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// POS is a WordNet part of speech.
type POS byte

const (
	Noun      POS = 'n'
	Verb      POS = 'v'
	Adjective POS = 'a'
	Adverb    POS = 'r'
)

// AllPOS lists the parts of speech searched by Synonyms.
var AllPOS = []POS{Noun, Verb, Adjective, Adverb}

var posFiles = map[POS]string{
	Noun:      "noun",
	Verb:      "verb",
	Adjective: "adj",
	Adverb:    "adv",
}

// Lexicon answers the two questions the alignment code asks of WordNet.
type Lexicon interface {
	// Synonyms returns the union of lemma names over all synsets of word.
	// Unknown words yield an empty slice.
	Synonyms(word string) []string
	// Lemma returns the base form of word for pos, or word itself when
	// the lexicon has no entry for it.
	Lemma(word string, pos POS) string
}

// DB is a WordNet database loaded into memory.
type DB struct {
	// index maps pos -> lemma -> synset offsets
	index map[POS]map[string][]string
	// synsets maps pos -> offset -> lemma names
	synsets map[POS]map[string][]string
	// exceptions maps pos -> inflected form -> base forms
	exceptions map[POS]map[string][]string
}

// Open loads a WordNet dict directory.
func Open(dir string) (*DB, error) {
	db := &DB{
		index:      make(map[POS]map[string][]string),
		synsets:    make(map[POS]map[string][]string),
		exceptions: make(map[POS]map[string][]string),
	}

	for _, pos := range AllPOS {
		name := posFiles[pos]

		idx, err := readIndex(filepath.Join(dir, "index."+name))
		if err != nil {
			return nil, err
		}
		db.index[pos] = idx

		data, err := readData(filepath.Join(dir, "data."+name))
		if err != nil {
			return nil, err
		}
		db.synsets[pos] = data

		exc, err := readExceptions(filepath.Join(dir, name+".exc"))
		if err != nil {
			return nil, err
		}
		db.exceptions[pos] = exc
	}

	return db, nil
}

// Synonyms implements Lexicon.
func (db *DB) Synonyms(word string) []string {
	seen := make(map[string]bool)
	for _, pos := range AllPOS {
		known := func(form string) bool { _, ok := db.index[pos][form]; return ok }
		for _, base := range Morphy(word, pos, db.exceptions[pos], known) {
			for _, offset := range db.index[pos][base] {
				for _, lemma := range db.synsets[pos][offset] {
					seen[normalizeLemma(lemma)] = true
				}
			}
		}
	}
	return sortedKeys(seen)
}

// Lemma implements Lexicon.
func (db *DB) Lemma(word string, pos POS) string {
	known := func(form string) bool { _, ok := db.index[pos][form]; return ok }
	if forms := Morphy(word, pos, db.exceptions[pos], known); len(forms) > 0 {
		return strings.ReplaceAll(forms[0], "_", " ")
	}
	return word
}

// Size returns the number of synsets loaded per part of speech.
func (db *DB) Size() map[POS]int {
	out := make(map[POS]int, len(db.synsets))
	for pos, m := range db.synsets {
		out[pos] = len(m)
	}
	return out
}

// readIndex parses index.<pos>:
// lemma pos synset_cnt p_cnt [ptr_symbol...] sense_cnt tagsense_cnt offset...
func readIndex(path string) (map[string][]string, error) {
	out := make(map[string][]string)
	err := eachLine(path, func(fields []string) error {
		if len(fields) < 6 {
			return nil
		}
		synsetCount, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil
		}
		if synsetCount > len(fields) {
			return nil
		}
		out[fields[0]] = append([]string(nil), fields[len(fields)-synsetCount:]...)
		return nil
	})
	return out, err
}

// readData parses data.<pos>:
// offset lex_filenum ss_type w_cnt(hex) word lex_id [word lex_id...] ...
func readData(path string) (map[string][]string, error) {
	out := make(map[string][]string)
	err := eachLine(path, func(fields []string) error {
		if len(fields) < 4 {
			return nil
		}
		count, err := strconv.ParseInt(fields[3], 16, 32)
		if err != nil {
			return nil
		}
		words := make([]string, 0, count)
		for i := 0; i < int(count); i++ {
			pos := 4 + 2*i
			if pos >= len(fields) {
				break
			}
			words = append(words, stripAdjMarker(fields[pos]))
		}
		out[fields[0]] = words
		return nil
	})
	return out, err
}

// readExceptions parses <pos>.exc: inflected base [base...]
func readExceptions(path string) (map[string][]string, error) {
	out := make(map[string][]string)
	err := eachLine(path, func(fields []string) error {
		if len(fields) < 2 {
			return nil
		}
		out[fields[0]] = append(out[fields[0]], fields[1:]...)
		return nil
	})
	return out, err
}

// eachLine calls fn for every non-license line of path. The license header
// lines of WordNet files start with two spaces.
func eachLine(path string, fn func(fields []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("wordnet: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "  ") || line == "" {
			continue
		}
		if err := fn(strings.Fields(line)); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("wordnet: read %s: %w", path, err)
	}
	return nil
}

// stripAdjMarker removes syntactic markers such as "(a)" or "(ip)" that
// adjective entries may carry in data.adj.
func stripAdjMarker(word string) string {
	if i := strings.IndexByte(word, '('); i > 0 && strings.HasSuffix(word, ")") {
		return word[:i]
	}
	return word
}

func normalizeLemma(lemma string) string {
	return strings.ToLower(strings.ReplaceAll(lemma, "_", " "))
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
