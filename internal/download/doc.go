// Package download provides the orchestration logic for fetching every
// file a manifest lists and packaging the result.
//
// # Manager
//
// The Manager coordinates the entire run:
//
//  1. Read the manifest and prepare a clean output directory
//  2. Fetch each row's file, strictly in manifest order
//  3. Record every outcome in the four-file Logbook
//  4. Zip the finished tree (logs included) into memory
//
// # Basic Usage
//
//	manager := download.NewManager(settings, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.Initialize("민원목록.xlsx"); err != nil {
//	    log.Fatal().Err(err).Msg("initialize")
//	}
//
//	report, err := manager.Run(ctx)
//	if err != nil {
//	    log.Fatal().Err(err).Msg("run")
//	}
//	report.SaveArchive()
//
// # Failure Handling
//
// A row that cannot be fetched (bad status, HTML masquerading as the
// file, network error) is logged and the run continues; its empty folder
// stays behind as a visible gap. Rows without a download link are skipped
// without a log entry. Only a cancelled context or an unusable output
// directory aborts the run.
//
// # Progress Tracking
//
// Progress is reported two ways: a callback receiving human-readable
// ProgressEvents, and a per-row callback with (current, total) counts
// that fires exactly once per manifest row. Counters are also readable
// via GetProgress for poll-style consumers like the TUI.
package download
