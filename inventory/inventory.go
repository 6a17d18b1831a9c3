package inventory

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"

	"github.com/eoltools/eolscan/utils"
)

// Column aliases seen across registry/inventory exports, in priority
// order. The first alias present with a non-empty value wins.
var (
	defaultNameColumns    = []string{"name", "package_name", "package", "component", "artifact"}
	defaultVersionColumns = []string{"version", "package_version", "ver", "release"}
)

// sniffSize is how much of the file the delimiter detection looks at.
const sniffSize = 1024

// Record is one inventory row. Name is empty when no recognized name
// column carried a value; callers skip such rows.
type Record struct {
	Name    string
	Version string
	Number  int
	Fields  map[string]string
}

type option func(*Loader)

func WithAppFs(v afero.Fs) option {
	return func(l *Loader) {
		l.appFs = v
	}
}

// WithNameColumns appends extra name-column aliases after the built-ins.
func WithNameColumns(v []string) option {
	return func(l *Loader) {
		l.nameColumns = append(l.nameColumns, v...)
	}
}

// WithVersionColumns appends extra version-column aliases after the built-ins.
func WithVersionColumns(v []string) option {
	return func(l *Loader) {
		l.versionColumns = append(l.versionColumns, v...)
	}
}

type Loader struct {
	appFs          afero.Fs
	nameColumns    []string
	versionColumns []string
}

func NewLoader(opts ...option) *Loader {
	loader := &Loader{
		appFs:          afero.NewOsFs(),
		nameColumns:    defaultNameColumns,
		versionColumns: defaultVersionColumns,
	}
	for _, opt := range opts {
		opt(loader)
	}
	return loader
}

// Load reads one delimited inventory export and returns its rows in input
// order. The delimiter is sniffed from the first 1KB among comma,
// semicolon and tab; the header row defines the column names. Files
// ending in .gz are decompressed first.
func (l *Loader) Load(filePath string) ([]Record, error) {
	lower := strings.ToLower(filePath)
	if !strings.HasSuffix(lower, ".csv") && !strings.HasSuffix(lower, ".csv.gz") {
		return nil, xerrors.Errorf("not an inventory file: %s", filePath)
	}

	f, err := l.appFs.Open(filePath)
	if err != nil {
		return nil, xerrors.Errorf("unable to open %s: %w", filePath, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(lower, ".gz") {
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, xerrors.Errorf("unable to decompress %s: %w", filePath, err)
		}
		defer gr.Close()
		r = gr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, xerrors.Errorf("unable to read %s: %w", filePath, err)
	}

	return l.parse(data)
}

func (l *Loader) parse(data []byte) ([]Record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, xerrors.Errorf("unable to read header row: %w", err)
	}
	for i, column := range header {
		header[i] = strings.ToLower(strings.TrimSpace(column))
	}

	var records []Record
	for number := 1; ; number++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, xerrors.Errorf("unable to read row %d: %w", number, err)
		}

		fields := make(map[string]string, len(header))
		for i, column := range header {
			if i < len(row) {
				fields[column] = row[i]
			}
		}

		records = append(records, Record{
			Name:    pick(fields, l.nameColumns),
			Version: pick(fields, l.versionColumns),
			Number:  number,
			Fields:  fields,
		})
	}
	return records, nil
}

func sniffDelimiter(data []byte) rune {
	sample := data
	if len(sample) > sniffSize {
		sample = sample[:sniffSize]
	}
	for _, delimiter := range []rune{',', ';', '\t'} {
		if bytes.ContainsRune(sample, delimiter) {
			return delimiter
		}
	}
	return ','
}

func pick(fields map[string]string, columns []string) string {
	for _, column := range columns {
		if v := utils.TrimSpaceNewline(fields[column]); v != "" {
			return v
		}
	}
	return ""
}
