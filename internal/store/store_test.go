package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	st, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpen(t *testing.T) {
	st := openTest(t)

	for _, table := range []string{"tweets", "headlines"} {
		var name string
		err := st.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestOpenFile(t *testing.T) {
	path := t.TempDir() + "/cache.db"
	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.SaveTweet(Tweet{ID: "1", Text: "obama visits cuba"}))
	require.NoError(t, st.Close())

	// Reopening sees the earlier run.
	st, err = Open(path)
	require.NoError(t, err)
	defer st.Close()
	ok, err := st.HasTweet("1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTweets(t *testing.T) {
	st := openTest(t)

	require.NoError(t, st.SaveTweet(Tweet{ID: "1", Text: "obama visits cuba"}))
	require.NoError(t, st.SaveTweet(Tweet{ID: "2", Text: "TWEET IS NOT AVAILABLE", Unavailable: true}))

	tw, ok, err := st.GetTweet("1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "obama visits cuba", tw.Text)
	assert.False(t, tw.Unavailable)
	assert.False(t, tw.Fetched.IsZero())

	_, ok, err = st.GetTweet("3")
	require.NoError(t, err)
	assert.False(t, ok)

	has, err := st.HasTweet("2")
	require.NoError(t, err)
	assert.True(t, has)

	total, unavailable, err := st.CountTweets()
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, unavailable)

	texts, err := st.Texts()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1": "obama visits cuba"}, texts)

	// A later fetch replaces the cached entry.
	require.NoError(t, st.SaveTweet(Tweet{ID: "2", Text: "obama lands in havana"}))
	texts, err = st.Texts()
	require.NoError(t, err)
	assert.Len(t, texts, 2)
}

func TestHeadlines(t *testing.T) {
	st := openTest(t)
	day := time.Date(2016, 1, 5, 0, 0, 0, 0, time.UTC)

	items := []Headline{
		{ID: "a", Source: "cnn", Title: "Senate passes bill", Published: day.Add(9 * time.Hour), Fetched: day},
		{ID: "b", Source: "bbc", Title: "Lawmakers approve measure", Published: day.Add(3 * time.Hour), Fetched: day},
		{ID: "c", Source: "bbc", Title: "Storm hits coast", Published: day.Add(30 * time.Hour), Fetched: day},
	}
	n, err := st.SaveHeadlines(items)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = st.SaveHeadlines(items[:1])
	require.NoError(t, err)
	assert.Equal(t, 0, n, "known ids are ignored")

	got, err := st.HeadlinesBetween(day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)

	n, err = st.SaveHeadlines(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
