package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/abelbrown/paraphrase/internal/config"
	"github.com/abelbrown/paraphrase/internal/lexical"
	"github.com/abelbrown/paraphrase/internal/logging"
	"github.com/abelbrown/paraphrase/internal/model"
	"github.com/abelbrown/paraphrase/internal/store"
	"github.com/abelbrown/paraphrase/internal/wordnet"
)

// configFlag registers the -config flag shared by every command.
func configFlag(fs *flag.FlagSet) *string {
	return fs.String("config", config.ConfigPath(), "Config file (TOML)")
}

// loadConfig reads .env, the config file and the environment, and starts
// the file log when a log directory is configured.
func loadConfig(path string) *config.Config {
	if err := config.LoadEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.AutoPopulateFromEnv()

	if cfg.Paths.LogDir != "" {
		if err := logging.InitFile(cfg.Paths.LogDir, envOrDefault("PARAPHRASE_LOG_LEVEL", "info")); err != nil {
			logging.Warn("file logging disabled", "err", err)
		}
	}
	return cfg
}

// openLexicon loads WordNet from the configured directory. Without one the
// judges fall back to string similarity only.
func openLexicon(cfg *config.Config) wordnet.Lexicon {
	if cfg.Paths.WordNetDir == "" {
		logging.Warn("no WordNet directory configured, synonym checks disabled")
		return wordnet.NewMemLexicon()
	}
	db, err := wordnet.Open(cfg.Paths.WordNetDir)
	if err != nil {
		log.Fatalf("failed to open WordNet: %v", err)
	}
	logging.Info("loaded WordNet", "dir", cfg.Paths.WordNetDir, "synsets", db.Size())
	return db
}

// newJudge builds the lexical judge with the configured thresholds.
func newJudge(cfg *config.Config) *lexical.Judge {
	j := lexical.NewJudge(openLexicon(cfg))
	j.Thresholds = cfg.Thresholds.Thresholds
	return j
}

// loadPronouns returns the configured pronoun list or the built-in one.
func loadPronouns(cfg *config.Config) lexical.Pronouns {
	if cfg.Paths.PronounsFile == "" {
		return lexical.DefaultPronouns()
	}
	p, err := lexical.LoadPronouns(cfg.Paths.PronounsFile)
	if err != nil {
		log.Fatalf("failed to load pronouns: %v", err)
	}
	return p
}

// openDB opens the tweet cache or fatals.
func openDB(cfg *config.Config) *store.Store {
	if err := os.MkdirAll(filepath.Dir(cfg.Paths.CacheDB), 0755); err != nil {
		log.Fatalf("failed to create data directory: %v", err)
	}
	st, err := store.Open(cfg.Paths.CacheDB)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	return st
}

// requireToken returns the Twitter bearer token or exits.
func requireToken(cfg *config.Config) string {
	if cfg.Twitter.BearerToken == "" {
		fmt.Fprintln(os.Stderr, "error: a Twitter bearer token is required")
		fmt.Fprintln(os.Stderr, "  export TWITTER_BEARER_TOKEN=... or set [twitter] bearer_token")
		os.Exit(1)
	}
	return cfg.Twitter.BearerToken
}

// requireArgs exits with the flag set's usage when fewer than n positional
// arguments were given.
func requireArgs(fs *flag.FlagSet, n int) {
	if fs.NArg() < n {
		fs.Usage()
		os.Exit(2)
	}
}

// flagSet reports whether the named flag was given on the command line,
// so an explicit zero can be told apart from the default.
func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// envOrDefault returns the environment variable value or a fallback.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// readAligned reads aligned pairs from every path in order.
func readAligned(paths []string) (pairs []model.AlignedPair, skipped int) {
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			log.Fatalf("failed to open %s: %v", p, err)
		}
		got, n, err := model.ReadAlignedPairs(f)
		f.Close()
		if err != nil {
			log.Fatalf("failed to read %s: %v", p, err)
		}
		pairs = append(pairs, got...)
		skipped += n
	}
	return pairs, skipped
}

// create opens path for writing, creating its directory, or fatals.
func create(path string) *os.File {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Fatalf("failed to create directory for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("failed to create %s: %v", path, err)
	}
	return f
}

// closeOrFatal closes a written file and fatals on error.
func closeOrFatal(f *os.File) {
	if err := f.Close(); err != nil {
		log.Fatalf("failed to close %s: %v", f.Name(), err)
	}
}
