package download

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/phuslu/log"

	"github.com/haneulkim-dev/corpuskit/internal/model"
)

// Names of the four run log files. They are created inside the output
// directory so the final archive carries the run's own paper trail.
const (
	MainLogName  = "log.log"
	MainCSVName  = "log.csv"
	ErrorLogName = "error.log"
	ErrorCSVName = "error.csv"
)

// The csv header lines. Downstream tooling matches them byte for byte,
// leading spaces included, so they are written as raw lines rather than
// through the csv encoder (which would quote the space-prefixed fields).
const (
	mainCSVHeader  = "Index, Organization, Title, File Name, URL, Status, Message"
	errorCSVHeader = "Index, Organization, Title, File Name, URL, Error Message"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Logbook records per-row outcomes into the four run log files: the main
// pair (log.log, log.csv) receives every completed row, the error pair
// (error.log, error.csv) mirrors only the failures.
type Logbook struct {
	mainCSV  *csvLog
	errorCSV *csvLog
	mainLog  *lineLog
	errorLog *lineLog
}

// OpenLogbook creates the four log files inside dir, truncating leftovers
// from an earlier run, and stamps the run ID banner into both .log files.
func OpenLogbook(dir, runID string) (*Logbook, error) {
	book := &Logbook{}
	var err error
	if book.mainCSV, err = newCSVLog(filepath.Join(dir, MainCSVName), mainCSVHeader); err != nil {
		return nil, err
	}
	if book.errorCSV, err = newCSVLog(filepath.Join(dir, ErrorCSVName), errorCSVHeader); err != nil {
		book.Close()
		return nil, err
	}
	if book.mainLog, err = newLineLog(filepath.Join(dir, MainLogName), runID, "download log opened"); err != nil {
		book.Close()
		return nil, err
	}
	if book.errorLog, err = newLineLog(filepath.Join(dir, ErrorLogName), runID, "error log opened"); err != nil {
		book.Close()
		return nil, err
	}
	return book, nil
}

// Success records a completed job. The message column carries the
// destination path relative to the output root, so a log row can be
// matched to its file inside the archive.
func (b *Logbook) Success(job *model.Job) {
	rel := job.RelPath()
	b.mainCSV.append(jobRecord(job, "success", rel))
	b.mainLog.logger.Info().
		Int("index", job.Index).
		Str("organization", job.Row.Organization).
		Str("file", rel).
		Msg("downloaded")
}

// Failure records a failed job in the main pair and mirrors it into the
// error pair.
func (b *Logbook) Failure(job *model.Job, cause error) {
	b.mainCSV.append(jobRecord(job, "error", cause.Error()))
	b.errorCSV.append(errorRecord(job, cause.Error()))
	for _, l := range []*lineLog{b.mainLog, b.errorLog} {
		l.logger.Error().
			Int("index", job.Index).
			Str("organization", job.Row.Organization).
			Str("title", job.Row.Title).
			Str("url", job.Row.URL).
			Err(cause).
			Msg("download failed")
	}
}

// Close flushes and closes all four files. Write errors surface here.
func (b *Logbook) Close() error {
	var first error
	for _, c := range []*csvLog{b.mainCSV, b.errorCSV} {
		if c == nil {
			continue
		}
		if err := c.close(); err != nil && first == nil {
			first = err
		}
	}
	for _, l := range []*lineLog{b.mainLog, b.errorLog} {
		if l == nil {
			continue
		}
		if err := l.file.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func jobRecord(job *model.Job, status, message string) []string {
	return []string{
		strconv.Itoa(job.Index),
		job.Row.Organization,
		job.Row.Title,
		job.Row.FileName,
		job.Row.URL,
		status,
		message,
	}
}

func errorRecord(job *model.Job, message string) []string {
	return []string{
		strconv.Itoa(job.Index),
		job.Row.Organization,
		job.Row.Title,
		job.Row.FileName,
		job.Row.URL,
		message,
	}
}

// csvLog is one structured log file: UTF-8 with BOM, a fixed header line,
// then one csv record per completed row, flushed as it is written.
type csvLog struct {
	file   *os.File
	writer *csv.Writer
}

func newCSVLog(path, header string) (*csvLog, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if _, err := file.Write(utf8BOM); err != nil {
		file.Close()
		return nil, err
	}
	if _, err := file.WriteString(header + "\r\n"); err != nil {
		file.Close()
		return nil, err
	}

	writer := csv.NewWriter(file)
	writer.UseCRLF = true
	return &csvLog{file: file, writer: writer}, nil
}

// append writes one record. Errors are deferred to close so a bad disk
// does not break the download loop mid-run.
func (c *csvLog) append(record []string) {
	c.writer.Write(record)
	c.writer.Flush()
}

func (c *csvLog) close() error {
	c.writer.Flush()
	err := c.writer.Error()
	if cerr := c.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// lineLog is one human-readable log file fed by a structured console
// logger.
type lineLog struct {
	file   *os.File
	logger log.Logger
}

func newLineLog(path, runID, banner string) (*lineLog, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	l := &lineLog{
		file: file,
		logger: log.Logger{
			Level:      log.InfoLevel,
			TimeFormat: "2006-01-02 15:04:05",
			Writer: &log.ConsoleWriter{
				Writer:         file,
				ColorOutput:    false,
				EndWithMessage: true,
			},
		},
	}
	l.logger.Info().Str("run_id", runID).Msg(banner)
	return l, nil
}
