package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/cmdmail/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentOutConfigValues(t *testing.T) {
	in := "# header\n\n[smtp]\nhost = \"x\"\n  port = 25\n"
	want := "# header\n\n[smtp]\n# host = \"x\"\n#   port = 25\n"

	assert.Equal(t, want, commentOutConfigValues(in))
}

func TestGenerateConfigContent_HasNoActiveValues(t *testing.T) {
	for _, line := range strings.Split(GenerateConfigContent(), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "[") {
			continue
		}
		t.Errorf("active line in generated config: %q", line)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	require.NoError(t, WriteDefault(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, GenerateConfigContent(), string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	err = WriteDefault(path, false)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	require.NoError(t, os.WriteFile(path, []byte("old"), 0600))
	require.NoError(t, WriteDefault(path, true))
	data, _ = os.ReadFile(path)
	assert.NotEqual(t, "old", string(data))
}

func TestGeneratedConfigLoads(t *testing.T) {
	opts, dir := isolatedOptions(t)
	require.NoError(t, WriteDefault(filepath.Join(dir, "config.toml"), false))

	cfg, err := Load(opts)
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Output.MaxLines)
}
