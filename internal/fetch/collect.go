package fetch

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/paraphrase/internal/logging"
	"github.com/abelbrown/paraphrase/internal/store"
	"github.com/abelbrown/paraphrase/internal/tweets"
)

// DateLayout names the dated sentence files: 2016_01_05.txt.
const DateLayout = "2006_01_02"

// CollectStats counts one collection round.
type CollectStats struct {
	Sources int
	Failed  int
	Fetched int
	New     int
}

// Collect fetches every source, at most limit at a time, and saves the
// headlines. A failing source is logged and counted; it does not stop the
// others.
func Collect(ctx context.Context, f *Fetcher, st *store.Store, sources []Source, limit int) (CollectStats, error) {
	var (
		mu    sync.Mutex
		stats = CollectStats{Sources: len(sources)}
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))
	for _, src := range sources {
		g.Go(func() error {
			items, err := f.Fetch(ctx, src)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logging.Warn("fetch failed", "source", src.Name, "err", err)
				mu.Lock()
				stats.Failed++
				mu.Unlock()
				return nil
			}

			n, err := st.SaveHeadlines(items)
			if err != nil {
				return fmt.Errorf("save %s: %w", src.Name, err)
			}
			logging.Debug("fetched", "source", src.Name, "items", len(items), "new", n)

			mu.Lock()
			stats.Fetched += len(items)
			stats.New += n
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	return stats, err
}

// WriteDay writes the headlines published on day (UTC) to
// dir/YYYY_MM_DD.txt as "date<TAB>id<TAB>source<TAB>sentence" lines. Titles
// are cleaned and repeated titles written once. It returns the number of
// lines written.
func WriteDay(st *store.Store, day time.Time, dir string) (int, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	items, err := st.HeadlinesBetween(from, from.AddDate(0, 0, 1))
	if err != nil {
		return 0, err
	}
	items = tweets.Dedup(items, func(h store.Headline) string { return h.Title })

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}
	date := from.Format(DateLayout)
	f, err := os.Create(filepath.Join(dir, date+".txt"))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	n := 0
	for _, h := range items {
		sentence := tweets.Clean(tweets.StripNewsPrefix(h.Title))
		if sentence == "" {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", date, h.ID, h.Source, sentence)
		n++
	}
	if err := w.Flush(); err != nil {
		return n, err
	}
	return n, f.Close()
}
