package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 0.1, cfg.Analysis.LowerPercentile)
	assert.Equal(t, 99.9, cfg.Analysis.UpperPercentile)
	assert.Equal(t, 12.0, cfg.Analysis.MinPrice)
	assert.Equal(t, 35.0, cfg.Analysis.MaxPrice)
	assert.Equal(t, 20.0, cfg.Analysis.USDExchangeRate)
	assert.Equal(t, 15, cfg.Analysis.TopN)
	assert.Equal(t, 2024, cfg.Analysis.ReferenceYear)
	assert.Equal(t, "data/gas_prices_clean.csv", cfg.Paths.StationsFile)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := []byte(`
analysis:
  top_n: 10
  usd_exchange_rate: 17.5
paths:
  stations_file: /data/stations.csv
`)
	require.NoError(t, os.WriteFile(configFile, content, 0644))

	cfg, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Analysis.TopN)
	assert.Equal(t, 17.5, cfg.Analysis.USDExchangeRate)
	assert.Equal(t, "/data/stations.csv", cfg.Paths.StationsFile)
	// Untouched keys keep their defaults
	assert.Equal(t, 2024, cfg.Analysis.ReferenceYear)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("FUELMX_ANALYSIS_REFERENCE_YEAR", "2023")
	t.Setenv("FUELMX_SERVER_PORT", "9090")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 2023, cfg.Analysis.ReferenceYear)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "percentiles inverted",
			env:  map[string]string{"FUELMX_ANALYSIS_LOWER_PERCENTILE": "99.9", "FUELMX_ANALYSIS_UPPER_PERCENTILE": "0.1"},
		},
		{
			name: "zero exchange rate",
			env:  map[string]string{"FUELMX_ANALYSIS_USD_EXCHANGE_RATE": "0"},
		},
		{
			name: "negative top n",
			env:  map[string]string{"FUELMX_ANALYSIS_TOP_N": "-3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}
