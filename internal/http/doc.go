// Package http provides the HTTP client used for manifest downloads.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Streaming downloads with progress tracking
//   - Rejection of HTML error pages served in place of files
//   - Timeout handling
//
// # Basic Usage
//
//	client := http.NewClient("corpuskit/1.0", 0)
//
//	err := client.DownloadFile(ctx, url, "/downloads/report.pdf", func(written, total int64) {
//	    fmt.Printf("%.1f%%\n", float64(written)/float64(total)*100)
//	})
//	if errors.Is(err, http.ErrHTMLContent) {
//	    // the link served an error page, not the file
//	}
//
// # Progress Tracking
//
// The ProgressWriter type can be used to wrap any io.Writer for progress tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   file,
//	    Total:    contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
