package align

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/paraphrase/internal/logging"
	"github.com/abelbrown/paraphrase/internal/model"
)

// ErrDuplicateDate is returned by RunFiles when two inputs would write the
// same <date>.pairs file.
var ErrDuplicateDate = errors.New("align: duplicate date")

// RunStats counts the work done over one or more proposition files.
type RunStats struct {
	Files        int
	Propositions int
	Malformed    int
	Prefilter    PrefilterStats
	Pairs        Stats
	Written      int
}

// Add accumulates o into s.
func (s *RunStats) Add(o RunStats) {
	s.Files += o.Files
	s.Propositions += o.Propositions
	s.Malformed += o.Malformed
	s.Prefilter.NotEnglish += o.Prefilter.NotEnglish
	s.Prefilter.ShortArgument += o.Prefilter.ShortArgument
	s.Prefilter.Trivial += o.Prefilter.Trivial

	p := &s.Pairs
	p.Candidates += o.Pairs.Candidates
	p.SameSource += o.Pairs.SameSource
	p.NearDuplicate += o.Pairs.NearDuplicate
	p.Pronoun += o.Pairs.Pronoun
	p.Unmatched += o.Pairs.Unmatched
	p.FreePredicate += o.Pairs.FreePredicate
	p.AlignedPredicate += o.Pairs.AlignedPredicate
	if p.ByCase == nil {
		p.ByCase = make(map[Case]int)
	}
	for c, n := range o.Pairs.ByCase {
		p.ByCase[c] += n
	}
	s.Written += o.Written
}

// RunFile reads the propositions of one date from in, filters and pairs
// them, and writes the deduplicated aligned pairs to out.
func (p *Pairer) RunFile(date string, in io.Reader, out io.Writer) (RunStats, error) {
	stats := RunStats{Files: 1}

	props, malformed, err := model.ReadPropositions(in)
	stats.Propositions, stats.Malformed = len(props), malformed
	if err != nil {
		return stats, err
	}

	props, stats.Prefilter = Prefilter(props, p.English)
	pairs, pairStats := p.Pair(date, props)
	stats.Pairs = pairStats

	pairs = Dedup(pairs)
	stats.Written = len(pairs)
	return stats, model.WriteAlignedPairs(out, pairs)
}

// RunPath pairs one proposition file; the date label comes from its name.
func (p *Pairer) RunPath(inPath, outPath string) (RunStats, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return RunStats{}, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return RunStats{}, fmt.Errorf("create output: %w", err)
	}

	stats, err := p.RunFile(DateFromPath(inPath), in, out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	logging.Info("paired", "file", inPath, "propositions", stats.Propositions, "pairs", stats.Written)
	return stats, err
}

// RunFiles pairs every file into outDir/<date>.pairs, at most limit files
// at a time. Propositions are only paired within a file, so two inputs with
// the same date are rejected before anything is written.
func (p *Pairer) RunFiles(ctx context.Context, paths []string, outDir string, limit int) (RunStats, error) {
	seen := make(map[string]string, len(paths))
	for _, f := range paths {
		date := DateFromPath(f)
		if prev, ok := seen[date]; ok {
			return RunStats{}, fmt.Errorf("%w %s: %s and %s", ErrDuplicateDate, date, prev, f)
		}
		seen[date] = f
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return RunStats{}, fmt.Errorf("create output dir: %w", err)
	}

	var (
		mu    sync.Mutex
		total RunStats
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))

	for _, f := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			stats, err := p.RunPath(f, filepath.Join(outDir, DateFromPath(f)+".pairs"))
			mu.Lock()
			total.Add(stats)
			mu.Unlock()
			return err
		})
	}

	err := g.Wait()
	return total, err
}
