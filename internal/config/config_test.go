package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/roadmap-content/internal/generate"
)

func TestDecode(t *testing.T) {
	cfg := Default()
	err := Decode("test.hcl", []byte(`
roadmaps_dir      = "/srv/roadmaps"
concurrency       = 4
strict_collisions = true
`), &cfg)
	require.NoError(t, err)

	assert.Equal(t, "/srv/roadmaps", cfg.RoadmapsDir)
	assert.Equal(t, generate.DefaultModel, cfg.Model, "absent attributes keep defaults")
	assert.Equal(t, 4, cfg.Concurrency)
	assert.True(t, cfg.StrictCollisions)
}

func TestDecode_Invalid(t *testing.T) {
	cfg := Default()
	err := Decode("test.hcl", []byte(`concurrency = "many"`), &cfg)
	require.Error(t, err)

	err = Decode("test.hcl", []byte(`unknown_attr = 1`), &cfg)
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Setenv(APIKeyEnv, "sk-test")
	t.Setenv(BaseURLEnv, "")

	path := filepath.Join(t.TempDir(), "cfg.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`model = "gpt-4o"`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, DefaultRoadmapsDir, cfg.RoadmapsDir)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.NotNil(t, cfg.Generator())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
}

func TestLoad_NoDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(APIKeyEnv, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Nil(t, cfg.Generator())
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(func(key string) string {
		return map[string]string{
			APIKeyEnv:  "sk-1",
			BaseURLEnv: "http://localhost:8080/v1",
		}[key]
	})
	assert.Equal(t, "sk-1", cfg.APIKey)
	assert.Equal(t, "http://localhost:8080/v1", cfg.APIBaseURL)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	cfg := Default()
	cfg.Concurrency = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.RoadmapsDir = ""
	assert.Error(t, cfg.Validate())
}
