package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"1024", 1024, false},
		{"1KB", 1024, false},
		{"1MB", 1024 * 1024, false},
		{"2GB", 2 * 1024 * 1024 * 1024, false},
		{" 10 MB ", 10 * 1024 * 1024, false},
		{"1mb", 1024 * 1024, false},
		{"", 0, true},
		{"MB", 0, true},
		{"abc", 0, true},
		{"-1MB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateSelfHeals(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultWorkers, cfg.Concurrency.Workers)
	assert.Equal(t, DefaultTimeout, cfg.Concurrency.Timeout)
	assert.Equal(t, DefaultCacheTTL, cfg.Cache.TTL)
	assert.Equal(t, DefaultMaxFileSize, cfg.Acquire.MaxFileSize)
}

func TestValidateRejectsBadFileSize(t *testing.T) {
	cfg := Default()
	cfg.Acquire.MaxFileSize = "lots"
	require.Error(t, cfg.Validate())
}

func TestMaxFileSizeBytes(t *testing.T) {
	cfg := Default()
	cfg.Acquire.MaxFileSize = "2MB"
	assert.Equal(t, int64(2*1024*1024), cfg.MaxFileSizeBytes())

	cfg.Acquire.MaxFileSize = "garbage"
	fallback, err := ParseSize(DefaultMaxFileSize)
	require.NoError(t, err)
	assert.Equal(t, fallback, cfg.MaxFileSizeBytes())
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultOutputDir, cfg.Output.Directory)
	assert.False(t, cfg.Cache.Enabled)
	assert.Greater(t, cfg.Concurrency.Workers, 0)
	assert.GreaterOrEqual(t, cfg.Concurrency.Timeout, time.Second)
}
