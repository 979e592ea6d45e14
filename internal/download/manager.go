package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/haneulkim-dev/corpuskit/internal/archive"
	"github.com/haneulkim-dev/corpuskit/internal/config"
	"github.com/haneulkim-dev/corpuskit/internal/http"
	ioutils "github.com/haneulkim-dev/corpuskit/internal/io"
	"github.com/haneulkim-dev/corpuskit/internal/manifest"
	"github.com/haneulkim-dev/corpuskit/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Report summarizes a completed run.
type Report struct {
	// RunID identifies the run; it is also stamped into the log banners.
	RunID string

	// ManifestPath is the manifest the run was built from.
	ManifestPath string

	Processed int
	Succeeded int
	Failed    int
	Skipped   int

	// Bytes is the total payload size received over the run.
	Bytes int64

	// Archive holds the zip of the whole output tree, logs included.
	Archive []byte

	// ArchiveName is the manifest's stem with a .zip extension.
	ArchiveName string
}

// SaveArchive writes the zip next to the manifest and returns its path.
func (r *Report) SaveArchive() (string, error) {
	path := filepath.Join(filepath.Dir(r.ManifestPath), r.ArchiveName)
	if err := os.WriteFile(path, r.Archive, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// Manager coordinates one manifest download run.
//
// Rows are fetched strictly in manifest order, one at a time; the per-row
// outcome goes to the Logbook and the row callback fires after every row,
// successful or not. Counters are atomic so a TUI can poll GetProgress
// from another goroutine while Run is in flight.
type Manager struct {
	settings   *config.Settings
	httpClient *http.Client

	manifestPath string
	rows         []model.ManifestRow

	// receivedBytes is 64-bit and leads the counter block so atomic ops
	// stay aligned on 32-bit platforms.
	receivedBytes int64
	processedRows int32
	totalRows     int32
	succeededRows int32
	failedRows    int32

	onProgress func(ProgressEvent)
	onRow      func(current, total int)
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	timeout := time.Duration(settings.TimeoutSeconds) * time.Second
	return &Manager{
		settings:   settings,
		httpClient: http.NewClient(settings.UserAgent, timeout),
		onProgress: onProgress,
	}
}

// OnRow registers a callback fired after every manifest row, with the
// 1-based row number and the manifest length.
func (m *Manager) OnRow(fn func(current, total int)) {
	m.onRow = fn
}

// Initialize reads the manifest and prepares the output directory. Unless
// the settings keep existing files, the directory is wiped for a clean
// run.
func (m *Manager) Initialize(manifestPath string) error {
	rows, err := manifest.Read(manifestPath)
	if err != nil {
		return err
	}

	if m.settings.KeepExisting {
		err = ioutils.EnsureDir(m.settings.DownloadsPath)
	} else {
		err = ioutils.ResetDir(m.settings.DownloadsPath)
	}
	if err != nil {
		return err
	}

	m.manifestPath = manifestPath
	m.rows = rows
	atomic.StoreInt32(&m.totalRows, int32(len(rows)))
	m.progress(ProgressEvent{Message: fmt.Sprintf("Loaded %d rows from %s", len(rows), filepath.Base(manifestPath)), Level: LevelInfo})
	return nil
}

// RowCount returns the number of manifest rows loaded by Initialize.
func (m *Manager) RowCount() int {
	return len(m.rows)
}

// Run downloads every manifest row in order and returns the run report
// with the zipped output tree.
//
// A row without a download link is skipped silently (no log entry); a row
// whose fetch fails is logged and the run moves on. Only a cancelled
// context or a broken output directory aborts the run.
func (m *Manager) Run(ctx context.Context) (*Report, error) {
	if m.rows == nil {
		return nil, errors.New("manager is not initialized")
	}

	runID := uuid.NewString()
	book, err := OpenLogbook(m.settings.DownloadsPath, runID)
	if err != nil {
		return nil, err
	}

	report := &Report{RunID: runID, ManifestPath: m.manifestPath}
	index := m.settings.StartIndex
	total := len(m.rows)
	for i, row := range m.rows {
		if ctx.Err() != nil {
			book.Close()
			return nil, ctx.Err()
		}
		report.Processed++

		if !row.HasURL() {
			report.Skipped++
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping row %d: no download link", i+1), Level: LevelVerbose})
			m.finishRow(i + 1, total)
			continue
		}

		// The ordinal is the success count plus one; failures do not
		// advance it, so the numbering of landed files has no gaps.
		job := model.NewJob(m.settings.DownloadsPath, index+1, row)

		// The directory is created before the fetch; a failed job leaves
		// its empty folder behind as a visible gap.
		err := ioutils.EnsureDir(job.Dir)
		if err == nil {
			var written int64
			err = m.httpClient.DownloadFile(ctx, row.URL, job.Path, func(w, _ int64) {
				atomic.AddInt64(&m.receivedBytes, w-written)
				written = w
			})
		}
		if err != nil {
			if ctx.Err() != nil {
				book.Close()
				return nil, ctx.Err()
			}
			report.Failed++
			atomic.AddInt32(&m.failedRows, 1)
			book.Failure(job, err)
			m.progress(ProgressEvent{Message: fmt.Sprintf("[%05d] %s: %v", job.Index, job.Row.Title, err), Level: LevelError})
		} else {
			index++
			report.Succeeded++
			atomic.AddInt32(&m.succeededRows, 1)
			book.Success(job)
			m.progress(ProgressEvent{Message: fmt.Sprintf("[%05d] downloaded %s", job.Index, job.RelPath()), Level: LevelSuccess})
		}
		m.finishRow(i + 1, total)
	}

	if err := book.Close(); err != nil {
		return nil, err
	}

	data, err := archive.Build(m.settings.DownloadsPath)
	if err != nil {
		return nil, err
	}
	report.Bytes = atomic.LoadInt64(&m.receivedBytes)
	report.Archive = data
	report.ArchiveName = archive.Name(m.manifestPath)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Archive ready: %s (%d files, %d failed)", report.ArchiveName, report.Succeeded, report.Failed), Level: LevelInfo})
	return report, nil
}

// GetProgress returns current run progress as row counters.
func (m *Manager) GetProgress() (processed, total, succeeded, failed int32) {
	return atomic.LoadInt32(&m.processedRows), atomic.LoadInt32(&m.totalRows),
		atomic.LoadInt32(&m.succeededRows), atomic.LoadInt32(&m.failedRows)
}

// BytesReceived returns the payload bytes received so far.
func (m *Manager) BytesReceived() int64 {
	return atomic.LoadInt64(&m.receivedBytes)
}

func (m *Manager) finishRow(current, total int) {
	atomic.AddInt32(&m.processedRows, 1)
	if m.onRow != nil {
		m.onRow(current, total)
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
