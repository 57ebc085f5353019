package config

import (
	"testing"

	"github.com/arthur-debert/cmdmail/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEncode_TOML(t *testing.T) {
	cfg := validConfig()
	cfg.SMTP.Password = "hunter2"

	out, err := Encode(cfg, FormatTOML)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "[smtp]")
	assert.Contains(t, s, "smtp.example.com")
	assert.Contains(t, s, "10s")
	assert.Contains(t, s, "max_lines = 200")
	assert.NotContains(t, s, "hunter2")
	assert.Contains(t, s, redacted)
}

func TestEncode_YAMLRoundTrip(t *testing.T) {
	out, err := Encode(validConfig(), FormatYAML)
	require.NoError(t, err)

	var decoded map[string]map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, "smtp.example.com", decoded["smtp"]["host"])
	assert.Equal(t, 100, decoded["output"]["keep_lines"])
	assert.Equal(t, "", decoded["smtp"]["password"])
}

func TestEncode_UnknownFormat(t *testing.T) {
	_, err := Encode(validConfig(), "json")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
