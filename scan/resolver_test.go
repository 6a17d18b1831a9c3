package scan_test

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"github.com/eoltools/eolscan/catalog"
	"github.com/eoltools/eolscan/scan"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		product string
		version string
		cycles  []catalog.Cycle
		want    scan.Result
	}{
		{
			name:    "active version",
			product: "myapp",
			version: "2.0",
			cycles: []catalog.Cycle{
				{Cycle: "2.0", EOL: catalog.EOLField{}},
			},
			want: scan.Result{
				Product:       "myapp",
				Version:       "2.0",
				Status:        scan.StatusFound,
				SupportStatus: scan.SupportActive,
				Message:       "Still supported",
			},
		},
		{
			name:    "eol version with date",
			product: "myapp",
			version: "1.0",
			cycles: []catalog.Cycle{
				{Cycle: "2.0", EOL: catalog.EOLField{}},
				{Cycle: "1.0", EOL: catalog.EOLField{EOLed: true, Date: "2020-01-01"}},
			},
			want: scan.Result{
				Product:       "myapp",
				Version:       "1.0",
				Status:        scan.StatusFound,
				SupportStatus: scan.SupportEOL,
				EOLDate:       "2020-01-01",
				Message:       "EOL date: 2020-01-01",
			},
		},
		{
			name:    "eol version flagged boolean only",
			product: "myapp",
			version: "0.9",
			cycles: []catalog.Cycle{
				{Cycle: "0.9", EOL: catalog.EOLField{EOLed: true}},
			},
			want: scan.Result{
				Product:       "myapp",
				Version:       "0.9",
				Status:        scan.StatusFound,
				SupportStatus: scan.SupportEOL,
				Message:       "No longer supported",
			},
		},
		{
			name:    "version not found",
			product: "myapp",
			version: "9.9",
			cycles: []catalog.Cycle{
				{Cycle: "1.0", EOL: catalog.EOLField{}},
			},
			want: scan.Result{
				Product:       "myapp",
				Version:       "9.9",
				Status:        scan.StatusVersionNotFound,
				SupportStatus: scan.SupportUnknown,
				Message:       "Version 9.9 not found for myapp",
			},
		},
		{
			name:    "exact label equality, no normalization",
			product: "myapp",
			version: "1.0.0",
			cycles: []catalog.Cycle{
				{Cycle: "1.0", EOL: catalog.EOLField{}},
			},
			want: scan.Result{
				Product:       "myapp",
				Version:       "1.0.0",
				Status:        scan.StatusVersionNotFound,
				SupportStatus: scan.SupportUnknown,
				Message:       "Version 1.0.0 not found for myapp",
			},
		},
		{
			name:    "no version uses the newest cycle",
			product: "myapp",
			cycles: []catalog.Cycle{
				{Cycle: "3.0", EOL: catalog.EOLField{}},
				{Cycle: "2.0", EOL: catalog.EOLField{EOLed: true, Date: "2021-06-30"}},
			},
			want: scan.Result{
				Product:       "myapp",
				Version:       "latest",
				Status:        scan.StatusFound,
				SupportStatus: scan.SupportActive,
				Message:       "Found 2 versions",
			},
		},
		{
			name:    "no version with newest cycle already eol",
			product: "myapp",
			cycles: []catalog.Cycle{
				{Cycle: "1.0", EOL: catalog.EOLField{EOLed: true, Date: "2020-01-01"}},
			},
			want: scan.Result{
				Product:       "myapp",
				Version:       "latest",
				Status:        scan.StatusFound,
				SupportStatus: scan.SupportEOL,
				EOLDate:       "2020-01-01",
				Message:       "Found 1 versions",
			},
		},
		{
			name:    "first matching cycle wins",
			product: "myapp",
			version: "1.0",
			cycles: []catalog.Cycle{
				{Cycle: "1.0", EOL: catalog.EOLField{EOLed: true, Date: "2019-12-31"}},
				{Cycle: "1.0", EOL: catalog.EOLField{}},
			},
			want: scan.Result{
				Product:       "myapp",
				Version:       "1.0",
				Status:        scan.StatusFound,
				SupportStatus: scan.SupportEOL,
				EOLDate:       "2019-12-31",
				Message:       "EOL date: 2019-12-31",
			},
		},
		{
			name:    "no cycles",
			product: "myapp",
			version: "1.0",
			want: scan.Result{
				Product:       "myapp",
				Version:       "1.0",
				Status:        scan.StatusUnknown,
				SupportStatus: scan.SupportUnknown,
				Message:       "Product not found in EOL database",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scan.Resolve(tt.product, tt.version, tt.cycles)
			if diff := pretty.Compare(got, tt.want); diff != "" {
				t.Errorf("result mismatch (-got +want):\n%s", diff)
			}
		})
	}
}
