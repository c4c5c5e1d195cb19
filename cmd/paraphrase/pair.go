package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/abelbrown/paraphrase/internal/align"
	"github.com/abelbrown/paraphrase/internal/report"
)

func runPair() {
	fs := flag.NewFlagSet("pair", flag.ExitOnError)
	cfgPath := configFlag(fs)
	outDir := fs.String("out", "pairs", "Directory for the <date>.pairs files")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: paraphrase pair [flags] <date.prop>...")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])
	requireArgs(fs, 1)

	cfg := loadConfig(*cfgPath)
	p := align.NewPairer(newJudge(cfg))
	p.Pronouns = loadPronouns(cfg)
	p.SentenceThreshold = cfg.Thresholds.Sentence

	stats, err := p.RunFiles(context.Background(), fs.Args(), *outDir, cfg.Concurrency.Files)
	if err != nil {
		log.Fatalf("pairing failed: %v", err)
	}

	s := report.New("pair").
		Add("files", stats.Files).
		Add("propositions", stats.Propositions).
		Add("candidate pairs", stats.Pairs.Candidates)
	for _, c := range []align.Case{align.CaseA, align.CaseB, align.CaseC, align.CaseD} {
		s.Add("case "+c.String(), stats.Pairs.ByCase[c])
	}
	s.Add("pairs aligned", stats.Pairs.Aligned()).
		Add("pairs written", stats.Written).
		AddSkipped("malformed lines", stats.Malformed).
		AddSkipped("non-English", stats.Prefilter.NotEnglish).
		AddSkipped("short arguments", stats.Prefilter.ShortArgument).
		AddSkipped("trivial predicates", stats.Prefilter.Trivial).
		AddSkipped("same source", stats.Pairs.SameSource).
		AddSkipped("near duplicates", stats.Pairs.NearDuplicate).
		AddSkipped("pronoun arguments", stats.Pairs.Pronoun).
		AddSkipped("unmatched", stats.Pairs.Unmatched).
		Print(os.Stdout)
}
