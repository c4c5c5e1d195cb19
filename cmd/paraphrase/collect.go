package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/abelbrown/paraphrase/internal/fetch"
	"github.com/abelbrown/paraphrase/internal/report"
)

func runCollect() {
	fs := flag.NewFlagSet("collect", flag.ExitOnError)
	cfgPath := configFlag(fs)
	outDir := fs.String("out", "sentences", "Directory for the dated sentence files")
	day := fs.String("day", "", "Day to write, YYYY_MM_DD (default: today, UTC)")
	timeout := fs.Duration("timeout", 30*time.Second, "Per-feed fetch timeout")
	noFetch := fs.Bool("no-fetch", false, "Only write the day file from stored headlines")
	fs.Parse(os.Args[1:])

	cfg := loadConfig(*cfgPath)
	st := openDB(cfg)
	defer st.Close()

	when := time.Now().UTC()
	if *day != "" {
		t, err := time.Parse(fetch.DateLayout, *day)
		if err != nil {
			log.Fatalf("invalid -day %q: %v", *day, err)
		}
		when = t
	}

	summary := report.New("collect")
	if !*noFetch {
		stats, err := fetch.Collect(context.Background(), fetch.NewFetcher(*timeout), st, cfg.Feeds, cfg.Concurrency.Feeds)
		if err != nil {
			log.Fatalf("collect failed: %v", err)
		}
		summary.
			Add("sources", stats.Sources).
			Add("headlines fetched", stats.Fetched).
			Add("new headlines", stats.New).
			AddSkipped("failed sources", stats.Failed)
	}

	n, err := fetch.WriteDay(st, when, *outDir)
	if err != nil {
		log.Fatalf("failed to write day file: %v", err)
	}
	summary.Add("day", when.Format(fetch.DateLayout)).Add("sentences written", n)
	summary.Print(os.Stdout)
}
