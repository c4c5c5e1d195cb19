package negative

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/abelbrown/paraphrase/internal/model"
	"github.com/abelbrown/paraphrase/internal/template"
)

const headerPrefix = "Current positive instance: "

// headerKeys are the parameters written for every positive, in order.
var headerKeys = []string{
	"tweet_id1", "sf_pred1", "pred1", "sent1_a0", "sent1_a1",
	"tweet_id2", "sf_pred2", "pred2", "sent2_a0", "sent2_a1",
}

var (
	paramRe   = regexp.MustCompile(`(\w+) = '([^']*)'`)
	numberRe  = regexp.MustCompile(`^(\d+)\)$`)
	replaceRe = regexp.MustCompile(`^new_sent2 = sent2\.replace\('([^']*)', '([^']*)'\)$`)
	predRe    = regexp.MustCompile(`^new_pred2 = '([^']*)'$`)
	sfPredRe  = regexp.MustCompile(`^new_sf_pred2 = '([^']*)'$`)
)

var errMalformedAction = errors.New("malformed action")

// quote makes a value safe inside single quotes.
func quote(s string) string { return strings.ReplaceAll(s, "'", `"`) }

// ActionLog writes the replayable record of a sampling run: a header per
// positive followed by its numbered substitutions.
type ActionLog struct {
	w *bufio.Writer
}

// NewActionLog wraps w. Call Flush when done.
func NewActionLog(w io.Writer) *ActionLog {
	return &ActionLog{w: bufio.NewWriter(w)}
}

// Comment writes a line ignored by ReadActionLog.
func (l *ActionLog) Comment(text string) error {
	_, err := fmt.Fprintf(l.w, "# %s\n", text)
	return err
}

// Begin writes the header of positive p.
func (l *ActionLog) Begin(p model.AlignedPair) error {
	values := headerValues(p)
	parts := make([]string, len(headerKeys))
	for i, k := range headerKeys {
		parts[i] = fmt.Sprintf("%s = '%s'", k, quote(values[i]))
	}
	_, err := fmt.Fprintln(l.w, headerPrefix+strings.Join(parts, ", "))
	return err
}

// Record writes substitution number n of the current positive.
func (l *ActionLog) Record(n int, a Action) error {
	_, err := fmt.Fprintf(l.w, "%d)\nnew_sent2 = sent2.replace('%s', '%s')\nnew_pred2 = '%s'\nnew_sf_pred2 = '%s'\n",
		n, quote(a.Old), quote(a.New), quote(a.Pred.String()), quote(a.SurfacePred.String()))
	return err
}

// Flush flushes buffered output.
func (l *ActionLog) Flush() error { return l.w.Flush() }

func headerValues(p model.AlignedPair) []string {
	return []string{
		p.Left.SourceID, p.Left.SurfacePred.String(), p.Left.Pred.String(), p.Left.Arg0, p.Left.Arg1,
		p.Right.SourceID, p.Right.SurfacePred.String(), p.Right.Pred.String(), p.Right.Arg0, p.Right.Arg1,
	}
}

// Entry is one positive header and its substitutions as read back from a log.
type Entry struct {
	Params  map[string]string
	Actions []Action
}

// Matches reports whether the entry was written for p.
func (e Entry) Matches(p model.AlignedPair) bool {
	for i, v := range headerValues(p) {
		if e.Params[headerKeys[i]] != quote(v) {
			return false
		}
	}
	return true
}

// ReadActionLog parses a log written by ActionLog.
func ReadActionLog(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4<<20)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var entries []Entry
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
		case strings.HasPrefix(line, headerPrefix):
			params := make(map[string]string, len(headerKeys))
			for _, m := range paramRe.FindAllStringSubmatch(line[len(headerPrefix):], -1) {
				params[m[1]] = m[2]
			}
			entries = append(entries, Entry{Params: params})
		case numberRe.MatchString(line):
			if len(entries) == 0 {
				return nil, fmt.Errorf("negative: log line %d: action before any positive", i+1)
			}
			if i+3 >= len(lines) {
				return nil, fmt.Errorf("negative: log line %d: truncated action", i+1)
			}
			a, err := parseAction(lines[i+1 : i+4])
			if err != nil {
				return nil, fmt.Errorf("negative: log line %d: %w", i+1, err)
			}
			last := &entries[len(entries)-1]
			last.Actions = append(last.Actions, a)
			i += 3
		default:
			return nil, fmt.Errorf("negative: log line %d: unexpected %s", i+1, strconv.Quote(line))
		}
	}
	return entries, nil
}

func parseAction(lines []string) (Action, error) {
	rm := replaceRe.FindStringSubmatch(lines[0])
	pm := predRe.FindStringSubmatch(lines[1])
	sm := sfPredRe.FindStringSubmatch(lines[2])
	if rm == nil || pm == nil || sm == nil {
		return Action{}, errMalformedAction
	}
	pred, err := template.Parse(pm[1])
	if err != nil {
		return Action{}, err
	}
	sf, err := template.Parse(sm[1])
	if err != nil {
		return Action{}, err
	}
	return Action{Old: rm[1], New: rm[2], Pred: pred, SurfacePred: sf}, nil
}
