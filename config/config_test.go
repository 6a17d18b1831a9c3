package config_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eoltools/eolscan/config"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		filePath string
		content  string
		want     config.Config
		wantErr  string
	}{
		{
			name:     "happy path",
			filePath: "eolscan.yaml",
			content: `api_url: https://eol.example.com/api
output_dir: reports
name_columns:
  - library
version_columns:
  - build
`,
			want: config.Config{
				APIURL:         "https://eol.example.com/api",
				OutputDir:      "reports",
				NameColumns:    []string{"library"},
				VersionColumns: []string{"build"},
			},
		},
		{
			name:     "sad path - missing file",
			filePath: "no-such-file.yaml",
			wantErr:  "unable to read config",
		},
		{
			name:     "sad path - bad yaml",
			filePath: "eolscan.yaml",
			content:  "api_url: [",
			wantErr:  "unable to parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appFs := afero.NewMemMapFs()
			if tt.content != "" {
				require.NoError(t, afero.WriteFile(appFs, tt.filePath, []byte(tt.content), 0644))
			}

			got, err := config.Load(appFs, tt.filePath)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
