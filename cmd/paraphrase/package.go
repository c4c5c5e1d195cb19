package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/abelbrown/paraphrase/internal/report"
	"github.com/abelbrown/paraphrase/internal/resource"
)

func runPackage() {
	fs := flag.NewFlagSet("package", flag.ExitOnError)
	cfgPath := configFlag(fs)
	rulesPath := fs.String("rules", "resource/rules.tsv", "Output rules file")
	instPath := fs.String("instances", "resource/instances.tsv", "Output tweet-less instances file")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: paraphrase package [flags] <positives.pairs>...")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])
	requireArgs(fs, 1)

	loadConfig(*cfgPath)
	pairs, malformed := readAligned(fs.Args())
	rules := resource.Package(pairs)

	f := create(*rulesPath)
	if err := resource.WriteRules(f, rules); err != nil {
		log.Fatalf("failed to write rules: %v", err)
	}
	closeOrFatal(f)

	f = create(*instPath)
	if err := resource.WriteInstances(f, pairs); err != nil {
		log.Fatalf("failed to write instances: %v", err)
	}
	closeOrFatal(f)

	report.New("package").
		Add("instances", len(pairs)).
		Add("rules", len(rules)).
		Add("tweets referenced", len(resource.TweetIDs(pairs))).
		AddSkipped("malformed lines", malformed).
		Print(os.Stdout)
}

func runStrip() {
	fs := flag.NewFlagSet("strip", flag.ExitOnError)
	cfgPath := configFlag(fs)
	out := fs.String("o", "instances.tsv", "Output tweet-less instances file")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: paraphrase strip [flags] <positives.pairs>...")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])
	requireArgs(fs, 1)

	loadConfig(*cfgPath)
	pairs, malformed := readAligned(fs.Args())

	f := create(*out)
	if err := resource.WriteInstances(f, pairs); err != nil {
		log.Fatalf("failed to write instances: %v", err)
	}
	closeOrFatal(f)

	report.New("strip").
		Add("instances", len(pairs)).
		AddSkipped("malformed lines", malformed).
		Print(os.Stdout)
}
