package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/abelbrown/paraphrase/internal/model"
	"github.com/abelbrown/paraphrase/internal/report"
	"github.com/abelbrown/paraphrase/internal/resource"
	"github.com/abelbrown/paraphrase/internal/twitter"
)

func runDownload() {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	cfgPath := configFlag(fs)
	out := fs.String("o", "expanded.pairs", "Output file for the expanded instances")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: paraphrase download [flags] <instances.tsv>")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])
	requireArgs(fs, 1)

	cfg := loadConfig(*cfgPath)
	token := requireToken(cfg)

	in, err := os.Open(fs.Arg(0))
	if err != nil {
		log.Fatalf("failed to open instances: %v", err)
	}
	pairs, malformed, err := resource.ReadInstances(in)
	in.Close()
	if err != nil {
		log.Fatalf("failed to read instances: %v", err)
	}

	st := openDB(cfg)
	defer st.Close()

	client := twitter.NewClient(token)
	if cfg.Twitter.Endpoint != "" {
		client.SetEndpoint(cfg.Twitter.Endpoint)
	}
	dl := twitter.NewDownloader(client, st)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ids := resource.TweetIDs(pairs)
	var total twitter.DownloadStats
	for {
		stats, err := dl.Run(ctx, ids)
		total.Fetched += stats.Fetched
		total.Unavailable += stats.Unavailable
		if err == nil {
			break
		}
		if errors.Is(err, twitter.ErrUnauthorized) {
			log.Fatalf("download stopped: %v (check TWITTER_BEARER_TOKEN)", err)
		}
		if !errors.Is(err, twitter.ErrRateLimited) {
			log.Fatalf("download failed after %d tweets: %v", total.Fetched, err)
		}
		if err := dl.WaitForReset(ctx); err != nil {
			log.Fatalf("download interrupted: %v", err)
		}
	}
	total.Requested = len(ids)
	total.Cached = total.Requested - total.Fetched - total.Unavailable

	texts, err := st.Texts()
	if err != nil {
		log.Fatalf("failed to read cached tweets: %v", err)
	}
	expanded, dropped := resource.Expand(pairs, texts)

	f := create(*out)
	if err := model.WriteAlignedPairs(f, expanded); err != nil {
		log.Fatalf("failed to write expanded instances: %v", err)
	}
	closeOrFatal(f)

	report.New("download").
		Add("tweets requested", total.Requested).
		Add("already cached", total.Cached).
		Add("fetched", total.Fetched).
		Add("instances expanded", len(expanded)).
		AddSkipped("unavailable tweets", total.Unavailable).
		AddSkipped("instances dropped", dropped).
		AddSkipped("malformed lines", malformed).
		Print(os.Stdout)
}
