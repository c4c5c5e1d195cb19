// Command paraphrase builds the predicate paraphrase corpus from dated
// news and tweet sentences.
//
// Usage:
//
//	paraphrase                    Show help
//	paraphrase collect            Fetch news headlines into dated sentence files
//	paraphrase extract            Extract propositions from sentence files
//	paraphrase pair               Align propositions into paraphrase pairs
//	paraphrase negatives          Sample negative instances with an action log
//	paraphrase replay             Regenerate negatives from an action log
//	paraphrase package            Build the ranked rules and tweet-less instances
//	paraphrase strip              Write tweet-less instances only
//	paraphrase download           Fetch tweet texts and expand a resource
//	paraphrase sample             Build an annotation batch
//	paraphrase agree              Worker agreement and accuracy of a batch
package main

import (
	"fmt"
	"os"

	"github.com/abelbrown/paraphrase/internal/logging"
)

const usage = `paraphrase - predicate paraphrase corpus pipeline

Usage:
  paraphrase <command> [flags] [args]

Commands:
  collect     Fetch news headlines into dated sentence files
  extract     Extract propositions from sentence files (*.txt -> *.prop)
  pair        Align propositions of each date into paraphrase pairs
  negatives   Sample negative instances and write the action log
  replay      Regenerate negative instances from an action log
  package     Build the ranked rules file and tweet-less instances
  strip       Write tweet-less instances of aligned pairs
  download    Fetch tweet texts (requires TWITTER_BEARER_TOKEN) and expand
  sample      Build an annotation batch CSV
  agree       Worker agreement and per-bin accuracy of a results CSV

Environment:
  TWITTER_BEARER_TOKEN     Twitter API bearer token (download)
  PARAPHRASE_WORDNET_DIR   WordNet dict directory
  PARAPHRASE_CACHE_DB      Tweet cache database
  PARAPHRASE_LOG_LEVEL     debug, info, warn or error (default: info)

Every command accepts -config (default: ~/.paraphrase/config.toml).
Run 'paraphrase <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	logging.Init(os.Stderr, envOrDefault("PARAPHRASE_LOG_LEVEL", "info"))
	defer logging.Close()

	switch cmd {
	case "collect":
		runCollect()
	case "extract":
		runExtract()
	case "pair":
		runPair()
	case "negatives":
		runNegatives()
	case "replay":
		runReplay()
	case "package":
		runPackage()
	case "strip":
		runStrip()
	case "download":
		runDownload()
	case "sample":
		runSample()
	case "agree":
		runAgree()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "paraphrase: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
