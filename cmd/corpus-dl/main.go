package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/haneulkim-dev/corpuskit/internal/config"
	"github.com/haneulkim-dev/corpuskit/internal/download"
	"github.com/haneulkim-dev/corpuskit/internal/manifest"
)

func main() {
	// Command line flags
	var (
		manifestFlag = flag.String("manifest", "", "Manifest file to download (.xlsx, .csv, .tsv)")
		outputFlag   = flag.String("output", "", "Output directory (overrides config)")
		configFlag   = flag.String("config", config.DefaultPath, "Path to config file")
		keepFlag     = flag.Bool("keep", false, "Keep existing files in the output directory")
		startFlag    = flag.Int("start", -1, "Starting folder ordinal (overrides config)")
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag   = flag.Bool("dry-run", false, "Read the manifest without downloading")
	)

	flag.Parse()

	// CLI mode - require a manifest
	if *manifestFlag == "" && flag.NArg() == 0 {
		fmt.Println("Corpus Downloader - Fetch every file a manifest lists")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  corpus-dl -manifest <FILE> [options]")
		fmt.Println("  corpus-dl <FILE> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: corpus-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Apply flags
	if *outputFlag != "" {
		settings.DownloadsPath = *outputFlag
	}
	if *keepFlag {
		settings.KeepExisting = true
	}
	if *startFlag >= 0 {
		settings.StartIndex = *startFlag
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get the manifest path
	manifestPath := *manifestFlag
	if manifestPath == "" && flag.NArg() > 0 {
		manifestPath = flag.Arg(0)
	}

	fmt.Println("📥 Corpus Downloader")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	// Dry run reads the manifest directly, leaving the output directory
	// untouched.
	if *dryRunFlag {
		rows, err := manifest.Read(manifestPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading manifest: %v\n", err)
			os.Exit(1)
		}
		withURL := 0
		for _, row := range rows {
			if row.HasURL() {
				withURL++
			}
		}
		fmt.Printf("%d rows, %d with a download link, %d will be skipped\n", len(rows), withURL, len(rows)-withURL)
		fmt.Println("\n[Dry run - not downloading]")
		return
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Create manager with progress callback
	manager := download.NewManager(settings, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case download.LevelError:
			prefix = "❌ "
		case download.LevelWarning:
			prefix = "⚠️  "
		case download.LevelSuccess:
			prefix = "✅ "
		case download.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})

	if err := manager.Initialize(manifestPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		os.Exit(1)
	}

	report, err := manager.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nDownload cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error during download: %v\n", err)
		os.Exit(1)
	}

	archivePath, err := report.SaveArchive()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing archive: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Complete! Downloaded %d/%d rows (%.2f MB)", report.Succeeded, report.Processed, float64(report.Bytes)/1024/1024)
	if report.Failed > 0 {
		fmt.Printf(", %d failed (see error.csv)", report.Failed)
	}
	if report.Skipped > 0 {
		fmt.Printf(", %d skipped", report.Skipped)
	}
	fmt.Println()
	fmt.Printf("   Archive: %s\n", archivePath)
}
