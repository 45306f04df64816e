package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const merchantID = "d3cf1d33-6e38-4d86-9cbd-e18d3e9b2c0e"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFileYAML(t *testing.T) {
	path := writeFile(t, "pagador.yaml", `
merchant_id: `+merchantID+`
environment: homologation
timeout_seconds: 10
log:
  level: debug
  format: json
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, merchantID, cfg.MerchantID)
	assert.Equal(t, EnvHomologation, cfg.Environment)
	assert.Equal(t, 10, cfg.TimeoutSeconds)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFromFileJSON(t *testing.T) {
	path := writeFile(t, "pagador.json", `{"merchantId": "`+merchantID+`"}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, merchantID, cfg.MerchantID)
	assert.Empty(t, cfg.Environment)
	assert.Zero(t, cfg.TimeoutSeconds)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.True(t, errors.Is(err, ErrFileNotFound))
}

func TestLoadFromFileEmpty(t *testing.T) {
	path := writeFile(t, "empty.yaml", "")
	_, err := LoadFromFile(path)
	assert.True(t, errors.Is(err, ErrEmptyFile))
}

func TestParseYAMLSyntaxError(t *testing.T) {
	_, err := ParseYAML([]byte("merchant_id: [unclosed"))
	assert.True(t, errors.Is(err, ErrInvalidYAML))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"valid", Config{MerchantID: merchantID}, ""},
		{"missing merchant", Config{}, "merchant_id is required"},
		{"malformed merchant", Config{MerchantID: "not-a-guid"}, "not a well-formed identifier"},
		{"bad environment", Config{MerchantID: merchantID, Environment: "staging"}, "environment"},
		{"negative timeout", Config{MerchantID: merchantID, TimeoutSeconds: -1}, "timeout_seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOptionsAndNewClient(t *testing.T) {
	cfg := Config{MerchantID: merchantID, Environment: EnvHomologation, TimeoutSeconds: 5}

	// Logger + homologation + timeout.
	assert.Len(t, cfg.Options(), 3)
	assert.NotNil(t, cfg.NewClient())

	// Production with default timeout only carries the logger.
	cfg = Config{MerchantID: merchantID}
	assert.Len(t, cfg.Options(), 1)
}
