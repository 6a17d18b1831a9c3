package scan

import (
	"log"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/xerrors"

	"github.com/eoltools/eolscan/catalog"
	"github.com/eoltools/eolscan/inventory"
)

type option func(*Scanner)

func WithClient(v *catalog.Client) option {
	return func(s *Scanner) {
		s.client = v
	}
}

func WithLoader(v *inventory.Loader) option {
	return func(s *Scanner) {
		s.loader = v
	}
}

func WithProgress(v bool) option {
	return func(s *Scanner) {
		s.progress = v
	}
}

// Scanner runs the row pipeline: load inventory rows, match each package
// name against the catalog, resolve its support status. Strictly
// sequential; the only state shared across files is the product snapshot,
// fetched at most once per run.
type Scanner struct {
	client   *catalog.Client
	loader   *inventory.Loader
	progress bool

	products *catalog.Snapshot
}

func NewScanner(opts ...option) *Scanner {
	scanner := &Scanner{
		client: catalog.NewClient(),
		loader: inventory.NewLoader(),
	}
	for _, opt := range opts {
		opt(scanner)
	}
	return scanner
}

// Products returns the catalog snapshot, fetching it on first use. A
// transport failure degrades to an empty snapshot so every row still
// terminates in a valid Result instead of aborting the run.
func (s *Scanner) Products() *catalog.Snapshot {
	if s.products != nil {
		return s.products
	}

	snapshot, err := s.client.Products()
	if err != nil {
		log.Printf("Failed to fetch product list: %s", err)
		snapshot = catalog.NewSnapshot(nil)
	}
	log.Printf("Found %d products in EOL database", snapshot.Len())

	s.products = snapshot
	return s.products
}

// ScanFile processes one inventory export and returns one Result per row
// that carried a package name, in input order. Rows without a resolvable
// name are logged and skipped.
func (s *Scanner) ScanFile(filePath string) ([]Result, error) {
	records, err := s.loader.Load(filePath)
	if err != nil {
		return nil, xerrors.Errorf("unable to read inventory: %w", err)
	}

	products := s.Products()

	var bar *pb.ProgressBar
	if s.progress {
		bar = pb.StartNew(len(records))
		defer bar.Finish()
	}

	// One cycles lookup per distinct product within this file.
	cache := make(map[string][]catalog.Cycle)

	results := make([]Result, 0, len(records))
	for _, record := range records {
		if bar != nil {
			bar.Increment()
		}
		if record.Name == "" {
			log.Printf("Row %d: no package name found", record.Number)
			continue
		}
		results = append(results, s.scanRecord(record, products, cache))
	}
	return results, nil
}

func (s *Scanner) scanRecord(record inventory.Record, products *catalog.Snapshot, cache map[string][]catalog.Cycle) Result {
	product, ok := Match(record.Name, products)
	if !ok {
		return Result{
			Product:         record.Name,
			Version:         record.Version,
			Status:          StatusNotFound,
			SupportStatus:   SupportUnknown,
			Message:         "Package not found in EOL database",
			OriginalPackage: record.Name,
			RowNumber:       record.Number,
			Raw:             record.Fields,
		}
	}

	cycles, ok := cache[product]
	if !ok {
		var err error
		cycles, err = s.client.Cycles(product)
		if err != nil {
			// Degrade to no data; Resolve reports the product as unknown.
			log.Printf("Failed to fetch cycles for %s: %s", product, err)
			cycles = nil
		}
		cache[product] = cycles
	}

	result := Resolve(product, record.Version, cycles)
	result.OriginalPackage = record.Name
	result.RowNumber = record.Number
	result.Raw = record.Fields
	return result
}
