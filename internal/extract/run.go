package extract

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/paraphrase/internal/logging"
)

// Stats counts the work done over one or more input files.
type Stats struct {
	Sentences   int
	Extractions int
	NoPredicate int
	Failures    int
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Sentences += o.Sentences
	s.Extractions += o.Extractions
	s.NoPredicate += o.NoPredicate
	s.Failures += o.Failures
}

// splitInput reads one input line. Accepted shapes are
// "id<TAB>sentence", "date<TAB>id<TAB>user<TAB>sentence" and a bare
// sentence, which is given the id "line-<n>".
func splitInput(n int, line string) (id, sentence string) {
	fields := strings.Split(line, "\t")
	switch len(fields) {
	case 2:
		return fields[0], fields[1]
	case 4:
		return fields[1], fields[3]
	}
	return fmt.Sprintf("line-%d", n), fields[0]
}

// RunFile extracts propositions for every sentence of in and writes them to
// out in the proposition file format. A failing sentence contributes no
// extraction and is counted; it never stops the run.
func (e *Extractor) RunFile(in io.Reader, out io.Writer) (Stats, error) {
	var stats Stats
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 4<<20)
	w := bufio.NewWriter(out)

	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		id, sentence := splitInput(n, line)
		stats.Sentences++

		res := e.Extract(sentence)
		switch {
		case errors.Is(res.Err, ErrNoPredicate):
			stats.NoPredicate++
			continue
		case res.Err != nil:
			stats.Failures++
			logging.Warn("extraction failed", "line", n, "err", res.Err)
			continue
		}

		for _, ex := range res.Extractions {
			fields := []string{id, sentence, ex.Surface, ex.Lemma}
			for k, arg := range ex.Args {
				fields = append(fields, fmt.Sprintf("a%d", k), arg)
			}
			if _, err := fmt.Fprintln(w, strings.Join(fields, "\t")); err != nil {
				return stats, err
			}
			stats.Extractions++
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, err
	}
	return stats, w.Flush()
}

// RunPath processes one file, writing to outPath.
func (e *Extractor) RunPath(inPath, outPath string) (Stats, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return Stats{}, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return Stats{}, fmt.Errorf("create output: %w", err)
	}

	stats, err := e.RunFile(in, out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	logging.Info("extracted", "file", inPath, "sentences", stats.Sentences, "extractions", stats.Extractions)
	return stats, err
}

// RunDir processes every *.txt file of inDir into a *.prop file of outDir,
// at most limit files at a time.
func (e *Extractor) RunDir(ctx context.Context, inDir, outDir string, limit int) (Stats, error) {
	files, err := filepath.Glob(filepath.Join(inDir, "*.txt"))
	if err != nil {
		return Stats{}, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Stats{}, fmt.Errorf("create output dir: %w", err)
	}

	var (
		mu    sync.Mutex
		total Stats
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))

	for _, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			name := strings.TrimSuffix(filepath.Base(f), ".txt") + ".prop"
			stats, err := e.RunPath(f, filepath.Join(outDir, name))
			mu.Lock()
			total.Add(stats)
			mu.Unlock()
			return err
		})
	}

	err = g.Wait()
	return total, err
}
