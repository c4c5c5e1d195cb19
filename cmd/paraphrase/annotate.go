package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/abelbrown/paraphrase/internal/annotation"
	"github.com/abelbrown/paraphrase/internal/model"
	"github.com/abelbrown/paraphrase/internal/report"
	"github.com/abelbrown/paraphrase/internal/resource"
)

func runSample() {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	cfgPath := configFlag(fs)
	out := fs.String("o", "batch.csv", "Output batch CSV")
	bins := fs.Int("bins", 5, "Number of score bins")
	perBin := fs.Int("per-bin", 20, "Rules drawn per bin (or per day with -topk)")
	minCount := fs.Int("min-count", 5, "Minimum instances per rule")
	topK := fs.Int("topk", 0, "Draw from the top k rules of every day instead of score bins")
	seed := fs.Uint64("seed", 1, "Random seed")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: paraphrase sample [flags] <positives.pairs>...")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])
	requireArgs(fs, 1)

	loadConfig(*cfgPath)
	pairs, malformed := readAligned(fs.Args())
	rng := rand.New(rand.NewPCG(*seed, *seed))

	var (
		sel []annotation.Selection
		err error
	)
	if *topK > 0 {
		byDay := make(map[string][]model.AlignedPair)
		for _, a := range pairs {
			// Results are read back with numeric day labels.
			day := strings.ReplaceAll(a.Date, "_", "")
			byDay[day] = append(byDay[day], a)
		}
		rulesByDay := make(map[string][]resource.Rule, len(byDay))
		for day, dayPairs := range byDay {
			rulesByDay[day] = resource.Package(dayPairs)
		}
		sel, err = annotation.SampleTopK(rulesByDay, *topK, *perBin, rng)
	} else {
		sel, err = annotation.SampleBins(resource.Package(pairs), *bins, *perBin, *minCount, rng)
	}
	if err != nil {
		log.Fatalf("sampling rules failed: %v", err)
	}

	rows, skipped := annotation.BuildBatch(sel, pairs, rng)
	f := create(*out)
	if err := annotation.WriteBatch(f, rows); err != nil {
		log.Fatalf("failed to write batch: %v", err)
	}
	closeOrFatal(f)

	report.New("sample").
		Add("instances", len(pairs)).
		Add("rules selected", len(sel)).
		Add("batch rows", len(rows)).
		AddSkipped("malformed lines", malformed).
		AddSkipped("rules with too few instances", skipped).
		Print(os.Stdout)
}

func runAgree() {
	fs := flag.NewFlagSet("agree", flag.ExitOnError)
	cfgPath := configFlag(fs)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: paraphrase agree [flags] <results.csv>")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])
	requireArgs(fs, 1)

	cfg := loadConfig(*cfgPath)
	f, err := os.Open(fs.Arg(0))
	if err != nil {
		log.Fatalf("failed to open results: %v", err)
	}
	res, err := annotation.LoadResults(f)
	f.Close()
	if err != nil {
		log.Fatalf("failed to load results: %v", err)
	}
	workers := len(res.Workers)

	a := cfg.Annotation
	kappa, removed := annotation.PairwiseAgreement(res, a.MinHits, a.MinMutual, a.PruneBelow)
	answers := res.RemoveWorkers(removed)

	s := report.New("agree").
		Add("workers", workers).
		Add("rules judged", len(res.Answers))
	if math.IsNaN(kappa) {
		s.Add("mean kappa", "n/a")
	} else {
		s.Add("mean kappa", kappa)
	}
	s.AddSkipped("workers removed", len(removed)).
		AddSkipped("answers removed", answers)

	acc := annotation.BinAccuracy(res)
	bins := make([]int, 0, len(acc))
	for b := range acc {
		bins = append(bins, b)
	}
	slices.Sort(bins)
	for _, b := range bins {
		s.Add("accuracy bin "+strconv.Itoa(b), fmt.Sprintf("%.1f%%", acc[b]))
	}
	s.Print(os.Stdout)
}
