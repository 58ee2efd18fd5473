package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "keyword", cfg.Provider.Kind)
	assert.True(t, cfg.Provider.Sentiment)
	assert.Equal(t, 4000, cfg.Chunking.MaxChars)
	assert.Equal(t, 4, cfg.Batch.Workers)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "keyword", cfg.Provider.Kind)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
provider:
  kind: openai
  model: gpt-4o
  api_key: sk-test
  timeout: 30s
scoring:
  base_score: 55
  penalties:
    critical: 40
    high: 30
thresholds:
  very_low: 92
chunking:
  max_chars: 2000
  parallel: 8
batch:
  workers: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Provider.Kind)
	assert.Equal(t, "gpt-4o", cfg.Provider.Model)
	assert.Equal(t, 30*time.Second, cfg.Provider.TimeoutDuration())
	assert.Equal(t, 2000, cfg.Chunking.MaxChars)
	assert.Equal(t, 2, cfg.Batch.Workers)

	w, err := cfg.Weights()
	require.NoError(t, err)
	assert.Equal(t, 40.0, w.Penalty("critical"))
	assert.Equal(t, 30.0, w.Penalty("high"))
	// Untouched tiers keep their defaults.
	assert.Equal(t, 15.0, w.Penalty("medium"))

	thr := cfg.AnalysisThresholds()
	assert.Equal(t, 92.0, thr.VeryLow)
	assert.Equal(t, 75.0, thr.Low)

	assert.Equal(t, 55.0, cfg.Policy().BaseScore)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: [not a map"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	// Critical below high inverts the severity ordering.
	content := `
scoring:
  penalties:
    critical: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("rejects unknown provider kind", func(t *testing.T) {
		cfg := Default()
		cfg.Provider.Kind = "oracle"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects negative worker count", func(t *testing.T) {
		cfg := Default()
		cfg.Batch.Workers = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects inverted thresholds", func(t *testing.T) {
		cfg := Default()
		cfg.Thresholds.VeryLow = 10
		assert.Error(t, cfg.Validate())
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Run("provider kind and model", func(t *testing.T) {
		t.Setenv("LYRICLENS_PROVIDER", "gemini")
		t.Setenv("LYRICLENS_MODEL", "gemini-2.0-pro")

		cfg := Default()
		applyEnvOverrides(cfg)

		assert.Equal(t, "gemini", cfg.Provider.Kind)
		assert.Equal(t, "gemini-2.0-pro", cfg.Provider.Model)
	})

	t.Run("direct API key wins over provider-specific", func(t *testing.T) {
		t.Setenv("LYRICLENS_PROVIDER", "openai")
		t.Setenv("LYRICLENS_API_KEY", "ll-key")
		t.Setenv("OPENAI_API_KEY", "oa-key")

		cfg := Default()
		applyEnvOverrides(cfg)
		assert.Equal(t, "ll-key", cfg.Provider.APIKey)
	})

	t.Run("provider-specific key used as fallback", func(t *testing.T) {
		t.Setenv("LYRICLENS_PROVIDER", "openai")
		t.Setenv("LYRICLENS_API_KEY", "")
		t.Setenv("OPENAI_API_KEY", "oa-key")

		cfg := Default()
		applyEnvOverrides(cfg)
		assert.Equal(t, "oa-key", cfg.Provider.APIKey)
	})

	t.Run("gemini key ignored for keyword provider", func(t *testing.T) {
		t.Setenv("LYRICLENS_PROVIDER", "")
		t.Setenv("LYRICLENS_API_KEY", "")
		t.Setenv("GEMINI_API_KEY", "gm-key")

		cfg := Default()
		applyEnvOverrides(cfg)
		assert.Empty(t, cfg.Provider.APIKey)
	})

	t.Run("worker count", func(t *testing.T) {
		t.Setenv("LYRICLENS_WORKERS", "7")
		cfg := Default()
		applyEnvOverrides(cfg)
		assert.Equal(t, 7, cfg.Batch.Workers)
	})

	t.Run("invalid worker count ignored", func(t *testing.T) {
		t.Setenv("LYRICLENS_WORKERS", "lots")
		cfg := Default()
		applyEnvOverrides(cfg)
		assert.Equal(t, 4, cfg.Batch.Workers)
	})

	t.Run("debug flag", func(t *testing.T) {
		t.Setenv("LYRICLENS_DEBUG", "1")
		cfg := Default()
		applyEnvOverrides(cfg)
		assert.True(t, cfg.Logging.Debug)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})
}

func TestTimeoutDuration(t *testing.T) {
	assert.Equal(t, 60*time.Second, ProviderConfig{}.TimeoutDuration())
	assert.Equal(t, 60*time.Second, ProviderConfig{Timeout: "bogus"}.TimeoutDuration())
	assert.Equal(t, 60*time.Second, ProviderConfig{Timeout: "-5s"}.TimeoutDuration())
	assert.Equal(t, 90*time.Second, ProviderConfig{Timeout: "90s"}.TimeoutDuration())
}

func TestPolicy_LamentToggle(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Policy().Lament.Enabled)

	cfg.Scoring.Lament.Disabled = true
	assert.False(t, cfg.Policy().Lament.Enabled)
}

func TestDefaultHome(t *testing.T) {
	t.Setenv("LYRICLENS_HOME", "/tmp/lyriclens-test")
	assert.Equal(t, "/tmp/lyriclens-test", DefaultHome())
	assert.Equal(t, filepath.Join("/tmp/lyriclens-test", "config.yaml"), DefaultPath())
}
