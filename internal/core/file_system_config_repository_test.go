package core

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kustomate/internal/core/domain"
	"kustomate/internal/ports"
	"kustomate/internal/testutil"
)

func TestLoadConfig_DefaultsWhenFileMissing(t *testing.T) {
	fs := testutil.NewTestFileSystem(t)
	repo := ProvideFileSystemConfigRepository(fs)

	config, err := repo.LoadConfig()

	require.NoError(t, err)
	assert.Empty(t, config.Parser.Provider)
	assert.NotEmpty(t, config.Parser.Endpoint)
	assert.NotEmpty(t, config.Parser.Model)
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	fs := testutil.NewTestFileSystem(t)
	configContent := `parser:
  provider: llm
  endpoint: https://example.com/v1/chat/completions
  model: test-model
namespace: staging
`
	configPath := filepath.Join("~", ".kustomate.yaml")
	require.NoError(t, fs.WriteFile(configPath, []byte(configContent), ports.ReadWrite))

	repo := ProvideFileSystemConfigRepository(fs)
	config, err := repo.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, domain.ParserProviderLLM, config.Parser.Provider)
	assert.Equal(t, "test-model", config.Parser.Model)
	assert.Equal(t, "staging", config.Namespace)
}

func TestLoadConfig_CachesResult(t *testing.T) {
	fs := testutil.NewTestFileSystem(t)
	repo := ProvideFileSystemConfigRepository(fs)

	config1, err := repo.LoadConfig()
	require.NoError(t, err)
	config2, err := repo.LoadConfig()
	require.NoError(t, err)

	assert.Same(t, config1, config2, "LoadConfig should return cached result")
}

func TestLoadConfig_RejectsInvalidProvider(t *testing.T) {
	fs := testutil.NewTestFileSystem(t)
	configPath := filepath.Join("~", ".kustomate.yaml")
	require.NoError(t, fs.WriteFile(configPath, []byte("parser:\n  provider: oracle\n"), ports.ReadWrite))

	repo := ProvideFileSystemConfigRepository(fs)
	_, err := repo.LoadConfig()

	assert.ErrorContains(t, err, "config validation failed")
}

func TestLoadConfig_RejectsLLMWithoutEndpoint(t *testing.T) {
	fs := testutil.NewTestFileSystem(t)
	configPath := filepath.Join("~", ".kustomate.yaml")
	require.NoError(t, fs.WriteFile(configPath, []byte("parser:\n  provider: llm\n"), ports.ReadWrite))

	repo := ProvideFileSystemConfigRepository(fs)
	_, err := repo.LoadConfig()

	assert.Error(t, err)
}

func TestSaveConfig_RoundTrips(t *testing.T) {
	fs := testutil.NewTestFileSystem(t)
	repo := ProvideFileSystemConfigRepository(fs)

	config := domain.CreateDefaultConfig()
	config.Namespace = "production"
	require.NoError(t, repo.SaveConfig(&config))

	exists, err := repo.ConfigExists()
	require.NoError(t, err)
	assert.True(t, exists)

	fresh := ProvideFileSystemConfigRepository(fs)
	loaded, err := fresh.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "production", loaded.Namespace)
}

func TestConfigExists_FalseInitially(t *testing.T) {
	fs := testutil.NewTestFileSystem(t)
	repo := ProvideFileSystemConfigRepository(fs)

	exists, err := repo.ConfigExists()

	require.NoError(t, err)
	assert.False(t, exists)
}
