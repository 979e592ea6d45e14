package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phuslu/log"

	"github.com/haneulkim-dev/corpuskit/internal/config"
	"github.com/haneulkim-dev/corpuskit/internal/dataset"
	"github.com/haneulkim-dev/corpuskit/internal/rebalance"
)

func main() {
	// Command line flags
	var (
		configFlag = flag.String("config", config.DefaultPath, "Path to config file")
		labelFlag  = flag.String("label", "", "Label column (overrides config)")
		groupFlag  = flag.String("group", "", `Grouping column; pass -group "" to force per-row sampling`)
		ratioFlag  = flag.Float64("ratio", 0, "Per-class cap as a multiple of the smallest class (required)")
		seedFlag   = flag.Int64("seed", 0, "Random seed; 0 seeds from the clock")
	)

	flag.Parse()

	if flag.NArg() != 1 || *ratioFlag <= 0 {
		fmt.Println("Corpus Resampler - Cap over-represented classes of a dataset")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  corpus-resample -ratio <N> [options] <FILE>")
		fmt.Println()
		fmt.Println("Supported formats: .xlsx, .csv, .tsv, .json, .parquet")
		fmt.Println("The output lands next to the input with a _resampled suffix.")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}
	path := flag.Arg(0)

	logger := log.Logger{
		Level:      log.InfoLevel,
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			ColorOutput: true,
			Writer:      os.Stderr,
		},
	}

	settings, err := config.Load(*configFlag)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	opts := rebalance.Options{
		LabelColumn: settings.LabelColumn,
		GroupColumn: defaultGroupColumn(path, settings),
		Ratio:       *ratioFlag,
		Seed:        *seedFlag,
	}
	if *labelFlag != "" {
		opts.LabelColumn = *labelFlag
	}
	// An explicit -group always wins, including -group "" to force the
	// row policy on a tabular file.
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "group" {
			opts.GroupColumn = *groupFlag
		}
	})

	table, err := dataset.Load(path)
	if err != nil {
		logger.Fatal().Err(err).Msg("load dataset")
	}
	logger.Info().
		Str("path", path).
		Int("rows", len(table.Rows)).
		Int("columns", len(table.Columns)).
		Msg("dataset loaded")

	out, summary, err := rebalance.Resample(table, opts)
	if err != nil {
		logger.Fatal().Err(err).Msg("rebalance")
	}

	for _, c := range summary.Classes {
		e := logger.Info().
			Str("label", c.Label).
			Int("rows_before", c.RowsBefore).
			Int("rows_after", c.RowsAfter)
		if summary.Grouped {
			e = e.Int("groups_before", c.GroupsBefore).Int("groups_after", c.GroupsAfter)
		}
		e.Msg("class")
	}

	outPath := dataset.WithSuffix(path, "_resampled")
	if err := out.Write(outPath); err != nil {
		logger.Fatal().Err(err).Msg("write dataset")
	}

	policy := "row"
	if summary.Grouped {
		policy = "grouped"
	}
	logger.Info().
		Str("output", outPath).
		Str("policy", policy).
		Int("cap", summary.Cap).
		Int("rows_in", summary.RowsIn).
		Int("rows_out", summary.RowsOut).
		Int("null_dropped", summary.NullDropped).
		Msg("resampled dataset written")
}

// defaultGroupColumn picks the policy the data exports call for: JSON
// record dumps are sampled per row, tabular formats per conversation
// group.
func defaultGroupColumn(path string, settings *config.Settings) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ""
	}
	return settings.GroupColumn
}
