package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/abelbrown/paraphrase/internal/extract"
	"github.com/abelbrown/paraphrase/internal/report"
)

func runExtract() {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	cfgPath := configFlag(fs)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: paraphrase extract [flags] <in.txt|in-dir> <out.prop|out-dir>")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])
	requireArgs(fs, 2)

	cfg := loadConfig(*cfgPath)
	ex := &extract.Extractor{Lex: openLexicon(cfg)}
	in, out := fs.Arg(0), fs.Arg(1)

	info, err := os.Stat(in)
	if err != nil {
		log.Fatalf("failed to read input: %v", err)
	}

	var stats extract.Stats
	if info.IsDir() {
		stats, err = ex.RunDir(context.Background(), in, out, cfg.Concurrency.Files)
	} else {
		stats, err = ex.RunPath(in, out)
	}
	if err != nil {
		log.Fatalf("extraction failed: %v", err)
	}

	report.New("extract").
		Add("sentences", stats.Sentences).
		Add("extractions", stats.Extractions).
		AddSkipped("sentences without predicate", stats.NoPredicate).
		AddSkipped("failed sentences", stats.Failures).
		Print(os.Stdout)
}
