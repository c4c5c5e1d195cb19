package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/abelbrown/paraphrase/internal/model"
	"github.com/abelbrown/paraphrase/internal/negative"
	"github.com/abelbrown/paraphrase/internal/report"
)

func runNegatives() {
	fs := flag.NewFlagSet("negatives", flag.ExitOnError)
	cfgPath := configFlag(fs)
	out := fs.String("o", "negatives.tsv", "Output file for negative instances")
	logPath := fs.String("log", "negatives.log", "Action log file")
	ratio := fs.Int("ratio", 0, "Negatives per positive (default: from config)")
	seed := fs.Uint64("seed", 0, "Random seed (default: from config)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: paraphrase negatives [flags] <positives.pairs>...")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])
	requireArgs(fs, 1)

	cfg := loadConfig(*cfgPath)
	if !flagSet(fs, "ratio") {
		*ratio = cfg.Negatives.Ratio
	}
	if !flagSet(fs, "seed") {
		*seed = cfg.Negatives.Seed
	}

	positives, malformed := readAligned(fs.Args())

	logFile := create(*logPath)
	actions := negative.NewActionLog(logFile)
	runID := uuid.NewString()
	if err := actions.Comment(fmt.Sprintf("run %s seed=%d ratio=%d", runID, *seed, *ratio)); err != nil {
		logFile.Close()
		log.Fatalf("failed to write action log: %v", err)
	}

	sampler := negative.NewSampler(newJudge(cfg), *ratio, *seed)
	sampler.Log = actions
	res, err := sampler.Sample(positives)
	if err != nil {
		logFile.Close()
		if errors.Is(err, negative.ErrPoolTooSmall) {
			log.Fatalf("%v (lower -ratio or add more dates)", err)
		}
		log.Fatalf("sampling failed: %v", err)
	}
	closeOrFatal(logFile)

	f := create(*out)
	if err := model.WriteNegativePairs(f, res.Negatives); err != nil {
		log.Fatalf("failed to write negatives: %v", err)
	}
	closeOrFatal(f)

	report.New("negatives").
		Add("run", runID).
		Add("positives", res.Stats.Positives).
		Add("candidates drawn", res.Stats.Drawn).
		Add("negatives generated", res.Stats.Generated).
		AddSkipped("malformed lines", malformed).
		AddSkipped("positives without candidates", res.Stats.EmptyPool).
		AddSkipped("unlocatable substitutions", res.Stats.Discarded).
		Print(os.Stdout)
}

func runReplay() {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	cfgPath := configFlag(fs)
	out := fs.String("o", "negatives.tsv", "Output file for negative instances")
	logPath := fs.String("log", "negatives.log", "Action log to replay")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: paraphrase replay [flags] <positives.pairs>...")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])
	requireArgs(fs, 1)

	loadConfig(*cfgPath)
	positives, malformed := readAligned(fs.Args())

	logFile, err := os.Open(*logPath)
	if err != nil {
		log.Fatalf("failed to open action log: %v", err)
	}
	entries, err := negative.ReadActionLog(logFile)
	logFile.Close()
	if err != nil {
		log.Fatalf("failed to read action log: %v", err)
	}

	negatives, stats, err := negative.Replay(positives, entries)
	if err != nil {
		log.Fatalf("replay failed: %v", err)
	}

	f := create(*out)
	if err := model.WriteNegativePairs(f, negatives); err != nil {
		log.Fatalf("failed to write negatives: %v", err)
	}
	closeOrFatal(f)

	report.New("replay").
		Add("log entries", stats.Entries).
		Add("negatives generated", stats.Generated).
		AddSkipped("malformed lines", malformed).
		AddSkipped("unmatched entries", stats.Unmatched).
		AddSkipped("failed actions", stats.Failed).
		Print(os.Stdout)
}
