package kushn

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, root, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte(content), 0644))
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultManifestName, cfg.OutputName)
	assert.Equal(t, "sha256", cfg.Algorithm)
	assert.Equal(t, PolicyStrict, cfg.Policy)
}

func TestLoadConfig_FullFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `[output]
name = hashes.json

[hash]
algorithm = sha512

[scan]
policy = lenient
`)

	cfg, err := LoadConfig(root)
	require.NoError(t, err)
	assert.Equal(t, "hashes.json", cfg.OutputName)
	assert.Equal(t, "sha512", cfg.Algorithm)
	assert.Equal(t, PolicyLenient, cfg.Policy)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[output]\nname = custom.json\n")

	cfg, err := LoadConfig(root)
	require.NoError(t, err)
	assert.Equal(t, "custom.json", cfg.OutputName)
	assert.Equal(t, "sha256", cfg.Algorithm)
	assert.Equal(t, PolicyStrict, cfg.Policy)
}

func TestLoadConfig_UnknownAlgorithm(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[hash]\nalgorithm = crc32\n")

	_, err := LoadConfig(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "crc32")
}

func TestLoadConfig_UnknownPolicy(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[scan]\npolicy = sometimes\n")

	_, err := LoadConfig(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sometimes")
}
