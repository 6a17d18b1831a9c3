package report

import (
	"html/template"

	"github.com/araddon/dateparse"
	"github.com/samber/lo"
	"golang.org/x/xerrors"

	"github.com/eoltools/eolscan/scan"
)

const reportHTML = `<!DOCTYPE html>
<html>
<head>
    <title>EOL Scan Report - {{.Timestamp}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .summary { background-color: #f5f5f5; padding: 15px; border-radius: 5px; margin-bottom: 20px; }
        .eol { background-color: #ffebee; border-left: 4px solid #f44336; }
        .active { background-color: #e8f5e8; border-left: 4px solid #4caf50; }
        .unknown { background-color: #fff3e0; border-left: 4px solid #ff9800; }
        table { border-collapse: collapse; width: 100%; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f2f2f2; }
    </style>
</head>
<body>
    <h1>End of Life Scan Report</h1>
    <div class="summary">
        <h2>Summary</h2>
        <p><strong>Scan Date:</strong> {{.Summary.ScanTimestamp}}</p>
        <p><strong>Total Packages:</strong> {{.Summary.TotalPackages}}</p>
        <p><strong>Matched Products:</strong> {{.Summary.MatchedProducts}}</p>
        <p><strong>EOL Packages:</strong> {{.Summary.EOLPackages}}</p>
        <p><strong>Active Packages:</strong> {{.Summary.ActivePackages}}</p>
        <p><strong>Unknown Status:</strong> {{.Summary.UnknownPackages}}</p>
        <p><strong>Not Found:</strong> {{.Summary.NotFoundPackages}}</p>
    </div>

    <h2>Package Details</h2>
    <table>
        <tr>
            <th>Package</th>
            <th>Version</th>
            <th>Status</th>
            <th>EOL Date</th>
            <th>Message</th>
        </tr>
{{- range .Rows}}
        <tr class="{{.Class}}">
            <td>{{.Product}}</td>
            <td>{{.Version}}</td>
            <td>{{.Support}}</td>
            <td>{{.EOLDate}}</td>
            <td>{{.Message}}</td>
        </tr>
{{- end}}
    </table>
</body>
</html>
`

var reportTemplate = template.Must(template.New("report").Parse(reportHTML))

type htmlRow struct {
	Class   string
	Product string
	Version string
	Support string
	EOLDate string
	Message string
}

type htmlData struct {
	Timestamp string
	Summary   Summary
	Rows      []htmlRow
}

func (w *Writer) writeHTML(filePath string, summary Summary, results []scan.Result) error {
	data := htmlData{
		Timestamp: summary.ScanTimestamp,
		Summary:   summary,
		Rows: lo.Map(results, func(r scan.Result, _ int) htmlRow {
			return htmlRow{
				Class:   string(r.SupportStatus),
				Product: orNA(r.Product),
				Version: orNA(r.Version),
				Support: string(r.SupportStatus),
				EOLDate: formatEOLDate(r.EOLDate),
				Message: orNA(r.Message),
			}
		}),
	}

	f, err := w.appFs.Create(filePath)
	if err != nil {
		return xerrors.Errorf("unable to open a file: %w", err)
	}
	defer f.Close()

	if err := reportTemplate.Execute(f, data); err != nil {
		return xerrors.Errorf("failed to render template: %w", err)
	}
	return nil
}

// formatEOLDate normalizes whatever date spelling the database served for
// display. The raw value is kept when it doesn't parse.
func formatEOLDate(date string) string {
	if date == "" {
		return "N/A"
	}
	t, err := dateparse.ParseAny(date)
	if err != nil {
		return date
	}
	return t.Format("2006-01-02")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
