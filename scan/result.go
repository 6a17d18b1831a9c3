package scan

// Status classifies how far a row got through matching and resolution.
type Status string

const (
	StatusFound           Status = "found"
	StatusVersionNotFound Status = "version_not_found"
	StatusNotFound        Status = "not_found"
	StatusUnknown         Status = "unknown"
)

// SupportStatus is the support verdict for a matched version.
type SupportStatus string

const (
	SupportActive  SupportStatus = "active"
	SupportEOL     SupportStatus = "eol"
	SupportUnknown SupportStatus = "unknown"
)

// Result is the outcome for a single inventory row. Exactly one Result is
// produced per row that carried a package name; it is never mutated after
// creation.
type Result struct {
	Product         string            `json:"product"`
	Version         string            `json:"version"`
	Status          Status            `json:"status"`
	EOLDate         string            `json:"eol_date,omitempty"`
	SupportStatus   SupportStatus     `json:"support_status"`
	Message         string            `json:"message"`
	OriginalPackage string            `json:"original_package,omitempty"`
	RowNumber       int               `json:"row_number,omitempty"`
	Raw             map[string]string `json:"raw_data,omitempty"`
}
