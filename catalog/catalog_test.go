package catalog_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eoltools/eolscan/catalog"
)

func TestClient_Products(t *testing.T) {
	tests := []struct {
		name     string
		respFile string
		wantKeys []string
		wantErr  string
	}{
		{
			name:     "happy path with list response",
			respFile: "testdata/all_list.json",
			wantKeys: []string{"nginx", "nginx-ingress", "openjdk", "redis", "ubuntu"},
		},
		{
			name:     "happy path with map response",
			respFile: "testdata/all_map.json",
			wantKeys: []string{"nginx", "openjdk", "redis", "ubuntu"},
		},
		{
			name:    "sad path - 404",
			wantErr: "status code: 404",
		},
		{
			name:     "sad path - unparseable response",
			respFile: "testdata/sad.json",
			wantErr:  "unable to parse product list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.respFile == "" || r.URL.Path != "/all.json" {
					http.NotFound(w, r)
					return
				}
				http.ServeFile(w, r, tt.respFile)
			}))
			defer server.Close()

			c := catalog.NewClient(catalog.WithBaseURL(server.URL))

			got, err := c.Products()
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKeys, got.Keys())
			assert.Equal(t, len(tt.wantKeys), got.Len())
			assert.True(t, got.Has(tt.wantKeys[0]))
			assert.False(t, got.Has("no-such-product"))
		})
	}
}

func TestClient_Cycles(t *testing.T) {
	tests := []struct {
		name     string
		product  string
		respFile string
		want     []catalog.Cycle
		wantErr  string
	}{
		{
			name:     "happy path with mixed eol and label shapes",
			product:  "nginx",
			respFile: "testdata/nginx.json",
			want: []catalog.Cycle{
				{Cycle: "1.25", EOL: catalog.EOLField{}},
				{Cycle: "1.24", EOL: catalog.EOLField{EOLed: true, Date: "2024-04-23"}},
				{Cycle: "1.22", EOL: catalog.EOLField{EOLed: true}},
				{Cycle: "1.21", EOL: catalog.EOLField{}},
			},
		},
		{
			name:    "sad path - unknown product",
			product: "no-such-product",
			wantErr: "status code: 404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.respFile == "" {
					http.NotFound(w, r)
					return
				}
				http.ServeFile(w, r, tt.respFile)
			}))
			defer server.Close()

			c := catalog.NewClient(catalog.WithBaseURL(server.URL))

			got, err := c.Cycles(tt.product)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if diff := pretty.Compare(got, tt.want); diff != "" {
				t.Errorf("cycles mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

func TestNewSnapshot(t *testing.T) {
	s := catalog.NewSnapshot([]string{"Redis", "nginx", "redis", "OpenJDK"})
	assert.Equal(t, []string{"nginx", "openjdk", "redis"}, s.Keys())
	assert.True(t, s.Has("redis"))
	assert.Equal(t, 3, s.Len())

	empty := catalog.NewSnapshot(nil)
	assert.Empty(t, empty.Keys())
	assert.Equal(t, 0, empty.Len())
}
