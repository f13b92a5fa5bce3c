// internal/common/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "pool-rater", cfg.App.Name)
	assert.Equal(t, 0.75, cfg.Pipeline.WorkerFraction)
	assert.Equal(t, 30.0, cfg.Rating.AAAMax)
	assert.Equal(t, 65.0, cfg.Rating.BBBMax)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(cfg *Config) {}},
		{
			name:    "worker fraction above one",
			mutate:  func(cfg *Config) { cfg.Pipeline.WorkerFraction = 1.5 },
			wantErr: true,
		},
		{
			name:    "negative chunk count",
			mutate:  func(cfg *Config) { cfg.Pipeline.ChunkCount = -1 },
			wantErr: true,
		},
		{
			name:    "inverted thresholds",
			mutate:  func(cfg *Config) { cfg.Rating.AAAMax = 70; cfg.Rating.BBBMax = 30 },
			wantErr: true,
		},
		{
			name:    "cache enabled without address",
			mutate:  func(cfg *Config) { cfg.Cache.Enabled = true; cfg.Cache.Address = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg)
			cfg.Cache.Address = "localhost:6379"
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
