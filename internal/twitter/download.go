package twitter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abelbrown/paraphrase/internal/logging"
	"github.com/abelbrown/paraphrase/internal/store"
	"github.com/abelbrown/paraphrase/internal/tweets"
)

// Unavailable is the text recorded for a tweet that can no longer be
// fetched.
const Unavailable = "TWEET IS NOT AVAILABLE"

// Cache keeps fetched tweets between runs. *store.Store implements it.
type Cache interface {
	HasTweet(id string) (bool, error)
	SaveTweet(t store.Tweet) error
}

// DownloadStats counts one download run.
type DownloadStats struct {
	Requested   int
	Cached      int
	Fetched     int
	Unavailable int
}

// Downloader fetches the texts of a list of tweet ids into a Cache. Ids
// already cached are skipped, so an interrupted run resumes where it
// stopped.
type Downloader struct {
	Client *Client
	Cache  Cache
	// Clean normalizes the fetched text; defaults to tweets.Clean.
	Clean func(string) string
	// Interval turns the reported quota into a pause between requests;
	// defaults to SleepInterval.
	Interval func(remaining int, reset, now time.Time) time.Duration
	// Now defaults to time.Now.
	Now func() time.Time

	reset time.Time
}

// NewDownloader wires a client to a cache with the default pacing.
func NewDownloader(c *Client, cache Cache) *Downloader {
	return &Downloader{Client: c, Cache: cache}
}

func (d *Downloader) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// pace asks the API for the remaining quota and resets the client interval.
func (d *Downloader) pace(ctx context.Context) error {
	remaining, reset, err := d.Client.RateLimit(ctx)
	if err != nil {
		return err
	}
	interval := SleepInterval
	if d.Interval != nil {
		interval = d.Interval
	}
	wait := interval(remaining, reset, d.now())
	d.Client.SetInterval(wait)
	d.reset = reset
	logging.Info("pacing status requests", "interval", wait, "remaining", remaining, "reset", reset.Format(time.RFC3339))
	return nil
}

// Run fetches every id not yet cached. A permanent failure stores the
// Unavailable marker and the run goes on; ErrRateLimited and ErrUnauthorized
// stop the run and are returned with the stats so far.
func (d *Downloader) Run(ctx context.Context, ids []string) (DownloadStats, error) {
	clean := d.Clean
	if clean == nil {
		clean = tweets.Clean
	}

	stats := DownloadStats{Requested: len(ids)}
	if err := d.pace(ctx); err != nil {
		return stats, err
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		cached, err := d.Cache.HasTweet(id)
		if err != nil {
			return stats, fmt.Errorf("cache lookup %s: %w", id, err)
		}
		if cached {
			stats.Cached++
			continue
		}

		tw := store.Tweet{ID: id, Fetched: d.now()}
		st, err := d.Client.GetStatus(ctx, id)
		switch {
		case err == nil:
			tw.Text = clean(st.Body())
			stats.Fetched++
		case errors.Is(err, ErrUnavailable):
			logging.Warn("tweet unavailable", "id", id, "err", err)
			tw.Text = Unavailable
			tw.Unavailable = true
			stats.Unavailable++
		default:
			return stats, err
		}

		if err := d.Cache.SaveTweet(tw); err != nil {
			return stats, fmt.Errorf("cache save %s: %w", id, err)
		}

		if !d.now().Before(d.reset) {
			if err := d.pace(ctx); err != nil {
				return stats, err
			}
		}
	}
	return stats, nil
}

// WaitForReset blocks until the status quota resets, or ctx is done.
func (d *Downloader) WaitForReset(ctx context.Context) error {
	_, reset, err := d.Client.RateLimit(ctx)
	if err != nil {
		return err
	}
	wait := reset.Sub(d.now())
	if wait <= 0 {
		wait = FallbackInterval
	}
	logging.Info("rate limit exceeded, waiting for reset", "wait", wait)

	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
