package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/abelbrown/paraphrase/internal/align"
	"github.com/abelbrown/paraphrase/internal/annotation"
	"github.com/abelbrown/paraphrase/internal/fetch"
	"github.com/abelbrown/paraphrase/internal/lexical"
)

// Config is the pipeline configuration
type Config struct {
	Thresholds  ThresholdConfig   `toml:"thresholds"`
	Negatives   NegativeConfig    `toml:"negatives"`
	Twitter     TwitterConfig     `toml:"twitter"`
	Annotation  AnnotationConfig  `toml:"annotation"`
	Concurrency ConcurrencyConfig `toml:"concurrency"`
	Paths       PathConfig        `toml:"paths"`
	Feeds       []fetch.Source    `toml:"feeds"`
}

// ThresholdConfig holds the cut-offs of the judges and the pairer
type ThresholdConfig struct {
	lexical.Thresholds
	Sentence int `toml:"sentence"`
}

// NegativeConfig controls negative sampling
type NegativeConfig struct {
	Ratio int    `toml:"ratio"`
	Seed  uint64 `toml:"seed"`
}

// TwitterConfig holds API access settings
type TwitterConfig struct {
	Endpoint    string `toml:"endpoint"`
	BearerToken string `toml:"bearer_token"`
}

// AnnotationConfig holds the worker agreement settings
type AnnotationConfig struct {
	MinHits    int     `toml:"min_hits"`
	MinMutual  int     `toml:"min_mutual"`
	PruneBelow float64 `toml:"prune_below"`
}

// ConcurrencyConfig bounds the per-file fan-out of the batch stages
type ConcurrencyConfig struct {
	Files int `toml:"files"`
	Feeds int `toml:"feeds"`
}

// PathConfig locates the external resources
type PathConfig struct {
	CacheDB      string `toml:"cache_db"`
	WordNetDir   string `toml:"wordnet_dir"`
	PronounsFile string `toml:"pronouns_file"`
	LogDir       string `toml:"log_dir"`
}

// DefaultConfig returns the settings the corpus was built with
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".paraphrase")

	return &Config{
		Thresholds: ThresholdConfig{
			Thresholds: lexical.DefaultThresholds(),
			Sentence:   align.DefaultSentenceThreshold,
		},
		Negatives: NegativeConfig{
			Ratio: 1,
			Seed:  1,
		},
		Twitter: TwitterConfig{
			Endpoint: "https://api.twitter.com/1.1",
		},
		Annotation: AnnotationConfig{
			MinHits:    annotation.DefaultMinHits,
			MinMutual:  annotation.DefaultMinMutual,
			PruneBelow: annotation.DefaultPruneBelow,
		},
		Concurrency: ConcurrencyConfig{
			Files: 1,
			Feeds: 4,
		},
		Paths: PathConfig{
			CacheDB: filepath.Join(base, "tweets.db"),
			LogDir:  filepath.Join(base, "logs"),
		},
		Feeds: fetch.DefaultSources(),
	}
}

// ConfigPath returns the default location of the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".paraphrase", "config.toml")
}

// Load reads the TOML file at path over the defaults. A missing file
// yields the defaults; a malformed one is an error. A file listing feeds
// replaces the default feed list.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	defaults := cfg.Feeds
	cfg.Feeds = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if len(cfg.Feeds) == 0 {
		cfg.Feeds = defaults
	}
	return cfg, nil
}

// Save writes the config to path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600) // bearer token
}

// LoadEnv loads a .env file when present. Variables already set in the
// environment win.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// AutoPopulateFromEnv fills in credentials and paths from environment variables
func (c *Config) AutoPopulateFromEnv() {
	if token := os.Getenv("TWITTER_BEARER_TOKEN"); token != "" {
		c.Twitter.BearerToken = token
	}
	if dir := os.Getenv("PARAPHRASE_WORDNET_DIR"); dir != "" {
		c.Paths.WordNetDir = dir
	}
	if db := os.Getenv("PARAPHRASE_CACHE_DB"); db != "" {
		c.Paths.CacheDB = db
	}
}
