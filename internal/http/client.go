package http

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ErrHTMLContent is returned by DownloadFile when the payload sniffs as an
// HTML page. Download portals answer broken or expired links with an HTML
// error page and status 200, so an HTML body where a data file was expected
// means the link is bad.
var ErrHTMLContent = errors.New("payload looks like an HTML page, not a file")

// htmlSniffWindow is how many leading payload bytes are searched for an
// opening HTML tag. Real pages open with it well inside this window;
// binary formats that merely contain the tag bytes deeper in the file are
// not rejected.
const htmlSniffWindow = 512

// Client wraps HTTP operations for manifest downloads.
//
// Client provides:
//   - Configured User-Agent header
//   - Timeout handling
//   - Streaming file download with progress tracking
//   - HTML error-page rejection
//
// Example usage:
//
//	client := NewClient("corpuskit/1.0", 0)
//
//	err := client.DownloadFile(ctx, url, "/downloads/file.pdf", func(written, total int64) {
//	    fmt.Printf("%d / %d bytes\n", written, total)
//	})
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client.
//
// timeout bounds the whole request including the body transfer; zero means
// no timeout (downloads can be arbitrarily large).
func NewClient(userAgent string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// ProgressWriter wraps a writer to track download progress.
//
// Use this to monitor large downloads by providing an OnUpdate callback
// that receives the current bytes written and total expected bytes.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: file,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	// Parameters are (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// DownloadFile downloads a file to the specified path with optional progress callback.
//
// The response status must be in the 2xx range. The first bytes of the
// payload are sniffed for an opening HTML tag and rejected with
// ErrHTMLContent if one is found; otherwise the content is streamed
// directly to disk, avoiding loading the entire file into memory.
//
// A failed transfer never leaves a partial file behind: the destination is
// created only after the sniff passes and removed again if the copy fails.
//
// Parameters:
//   - ctx: Context for cancellation
//   - url: URL to download from
//   - destPath: Local file path to save to
//   - onProgress: Optional callback called with (bytesWritten, totalBytes)
//     Pass nil to disable progress tracking
//
// Example:
//
//	err := client.DownloadFile(ctx, url, "/downloads/report.pdf", func(written, total int64) {
//	    if total > 0 {
//	        fmt.Printf("%.1f%%\r", float64(written)/float64(total)*100)
//	    }
//	})
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP %s", resp.Status)
	}

	body := bufio.NewReaderSize(resp.Body, htmlSniffWindow)
	head, err := body.Peek(htmlSniffWindow)
	if err != nil && err != io.EOF {
		return err
	}
	if looksLikeHTML(head) {
		return ErrHTMLContent
	}

	file, err := os.Create(destPath)
	if err != nil {
		return err
	}

	var writer io.Writer = file
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   file,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	if _, err := io.Copy(writer, body); err != nil {
		file.Close()
		os.Remove(destPath)
		return err
	}

	return file.Close()
}

// looksLikeHTML reports whether the payload head contains an opening HTML
// tag, case-insensitively.
func looksLikeHTML(head []byte) bool {
	return bytes.Contains(bytes.ToLower(head), []byte("<html"))
}
