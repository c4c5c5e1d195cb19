package fetch

// Source is one news feed whose headlines are collected.
type Source struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
}

// DefaultSources returns general news wires. Headlines from several outlets
// covering the same events are what makes cross-source paraphrases.
func DefaultSources() []Source {
	return []Source{
		{Name: "AP News", URL: "https://feedx.net/rss/ap.xml"},
		{Name: "BBC World", URL: "https://feeds.bbci.co.uk/news/world/rss.xml"},
		{Name: "BBC Top", URL: "https://feeds.bbci.co.uk/news/rss.xml"},
		{Name: "NPR News", URL: "https://feeds.npr.org/1001/rss.xml"},
		{Name: "Guardian World", URL: "https://www.theguardian.com/world/rss"},
		{Name: "Al Jazeera", URL: "https://www.aljazeera.com/xml/rss/all.xml"},
		{Name: "Bloomberg", URL: "https://feeds.bloomberg.com/markets/news.rss"},
	}
}
