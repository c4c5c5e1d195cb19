// Package fetch collects news headlines from RSS and Atom feeds and writes
// them out as dated sentence files for the extract stage.
package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/abelbrown/paraphrase/internal/store"
)

// Fetcher retrieves headlines from feed sources.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher with the given HTTP client timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the headlines of one source. It does not store them.
func (f *Fetcher) Fetch(ctx context.Context, src Source) ([]store.Headline, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "paraphrase-collector/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	now := time.Now().UTC()
	items := make([]store.Headline, 0, len(feed.Items))
	for _, it := range feed.Items {
		if strings.TrimSpace(it.Title) == "" {
			continue
		}
		items = append(items, convertFeedItem(it, src, now))
	}
	return items, nil
}

func convertFeedItem(it *gofeed.Item, src Source, fetchTime time.Time) store.Headline {
	published := fetchTime
	if it.PublishedParsed != nil {
		published = it.PublishedParsed.UTC()
	} else if it.UpdatedParsed != nil {
		published = it.UpdatedParsed.UTC()
	}

	return store.Headline{
		ID:        generateID(it),
		Source:    src.Name,
		Title:     strings.Join(strings.Fields(it.Title), " "),
		URL:       it.Link,
		Published: published,
		Fetched:   fetchTime,
	}
}

// generateID prefers the GUID, then the link, then title plus date.
func generateID(it *gofeed.Item) string {
	if it.GUID != "" {
		return hashString(it.GUID)
	}
	if it.Link != "" {
		return hashString(it.Link)
	}
	key := it.Title
	if it.PublishedParsed != nil {
		key += it.PublishedParsed.String()
	}
	return hashString(key)
}

// hashString returns a 16 character hex id.
func hashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:8])
}
