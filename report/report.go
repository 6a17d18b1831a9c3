package report

import (
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"

	"github.com/eoltools/eolscan/scan"
	"github.com/eoltools/eolscan/utils"
)

// timestampFormat sorts lexicographically, so repeated runs never collide
// and artifacts list in scan order.
const timestampFormat = "20060102_150405"

var csvHeader = []string{
	"product",
	"version",
	"status",
	"eol_date",
	"support_status",
	"message",
	"original_package",
	"row_number",
}

// Summary aggregates one scan run for the summary artifact.
type Summary struct {
	ScanTimestamp    string `json:"scan_timestamp"`
	TotalPackages    int    `json:"total_packages"`
	MatchedProducts  int    `json:"matched_products"`
	EOLPackages      int    `json:"eol_packages"`
	ActivePackages   int    `json:"active_packages"`
	UnknownPackages  int    `json:"unknown_packages"`
	NotFoundPackages int    `json:"not_found_packages"`
}

// Files lists the artifacts produced by one Write call.
type Files struct {
	Summary  string
	Detailed string
	AllCSV   string
	EOLCSV   string // empty when no EOL packages were found
	HTML     string
}

type option func(*Writer)

func WithAppFs(v afero.Fs) option {
	return func(w *Writer) {
		w.appFs = v
	}
}

func WithOutputDir(v string) option {
	return func(w *Writer) {
		w.outputDir = v
	}
}

func WithClock(v func() time.Time) option {
	return func(w *Writer) {
		w.clock = v
	}
}

type Writer struct {
	appFs     afero.Fs
	outputDir string
	clock     func() time.Time
}

func NewWriter(opts ...option) *Writer {
	writer := &Writer{
		appFs:     afero.NewOsFs(),
		outputDir: "output",
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(writer)
	}
	return writer
}

// Write emits all artifacts for one scan run: summary JSON, detailed
// JSON, the full CSV export, an EOL-only CSV export when there is
// anything EOL to report, and the HTML view.
func (w *Writer) Write(results []scan.Result) (Files, error) {
	now := w.clock()
	ts := now.Format(timestampFormat)

	if err := w.appFs.MkdirAll(w.outputDir, 0755); err != nil {
		return Files{}, xerrors.Errorf("mkdir error: %w", err)
	}

	fs := utils.NewFs(w.appFs)
	summary := Summarize(results, now)
	files := Files{
		Summary:  filepath.Join(w.outputDir, fmt.Sprintf("summary_%s.json", ts)),
		Detailed: filepath.Join(w.outputDir, fmt.Sprintf("detailed_results_%s.json", ts)),
		AllCSV:   filepath.Join(w.outputDir, fmt.Sprintf("eol_report_%s.csv", ts)),
		HTML:     filepath.Join(w.outputDir, fmt.Sprintf("eol_report_%s.html", ts)),
	}

	if err := fs.WriteJSON(files.Summary, summary); err != nil {
		return Files{}, xerrors.Errorf("failed to write summary: %w", err)
	}
	if err := fs.WriteJSON(files.Detailed, results); err != nil {
		return Files{}, xerrors.Errorf("failed to write detailed results: %w", err)
	}
	if err := fs.WriteCSV(files.AllCSV, csvHeader, csvRows(results)); err != nil {
		return Files{}, xerrors.Errorf("failed to write CSV report: %w", err)
	}

	eolResults := lo.Filter(results, func(r scan.Result, _ int) bool {
		return r.SupportStatus == scan.SupportEOL
	})
	if len(eolResults) > 0 {
		files.EOLCSV = filepath.Join(w.outputDir, fmt.Sprintf("eol_packages_%s.csv", ts))
		if err := fs.WriteCSV(files.EOLCSV, csvHeader, csvRows(eolResults)); err != nil {
			return Files{}, xerrors.Errorf("failed to write EOL-only report: %w", err)
		}
	}

	if err := w.writeHTML(files.HTML, summary, results); err != nil {
		return Files{}, xerrors.Errorf("failed to write HTML report: %w", err)
	}

	log.Println("Generated reports:")
	log.Printf("  - Summary: %s", filepath.Base(files.Summary))
	log.Printf("  - Detailed: %s", filepath.Base(files.Detailed))
	log.Printf("  - CSV: %s", filepath.Base(files.AllCSV))
	if files.EOLCSV != "" {
		log.Printf("  - EOL only: %s", filepath.Base(files.EOLCSV))
	}
	log.Printf("  - HTML: %s", filepath.Base(files.HTML))

	return files, nil
}

// Summarize counts one run's results by support status. Matched products
// are the distinct catalog keys behind every row that got past matching.
func Summarize(results []scan.Result, now time.Time) Summary {
	matched := lo.Uniq(lo.FilterMap(results, func(r scan.Result, _ int) (string, bool) {
		return r.Product, r.Status != scan.StatusNotFound
	}))
	counts := lo.CountValuesBy(results, func(r scan.Result) scan.SupportStatus {
		return r.SupportStatus
	})

	return Summary{
		ScanTimestamp:   now.Format(time.RFC3339),
		TotalPackages:   len(results),
		MatchedProducts: len(matched),
		EOLPackages:     counts[scan.SupportEOL],
		ActivePackages:  counts[scan.SupportActive],
		UnknownPackages: counts[scan.SupportUnknown],
		NotFoundPackages: lo.CountBy(results, func(r scan.Result) bool {
			return r.Status == scan.StatusNotFound
		}),
	}
}

func csvRows(results []scan.Result) [][]string {
	return lo.Map(results, func(r scan.Result, _ int) []string {
		return []string{
			r.Product,
			r.Version,
			string(r.Status),
			r.EOLDate,
			string(r.SupportStatus),
			r.Message,
			r.OriginalPackage,
			strconv.Itoa(r.RowNumber),
		}
	})
}
