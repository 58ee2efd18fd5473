package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_DisabledIsNoop(t *testing.T) {
	defer Reset()
	require.NoError(t, Initialize(Options{Debug: false}))

	// Logging while disabled must not create any files.
	Pipeline("this goes nowhere")
	Get(CategoryScoring).Warn("neither does this")
}

func TestInitialize_DebugRequiresDir(t *testing.T) {
	defer Reset()
	assert.Error(t, Initialize(Options{Debug: true}))
}

func TestCategoryFilesAndLevels(t *testing.T) {
	defer Reset()
	dir := t.TempDir()
	require.NoError(t, Initialize(Options{Dir: dir, Debug: true, Level: "info"}))

	Pipeline("analysis started for %s", "test-song")
	PipelineDebug("this is below the level and must be dropped")
	ProviderWarn("provider hiccup: %v", "timeout")
	CloseAll()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var pipelineLog, providerLog string
	for _, e := range entries {
		switch {
		case strings.Contains(e.Name(), "pipeline"):
			pipelineLog = filepath.Join(dir, e.Name())
		case strings.Contains(e.Name(), "provider"):
			providerLog = filepath.Join(dir, e.Name())
		}
	}
	require.NotEmpty(t, pipelineLog)
	require.NotEmpty(t, providerLog)

	data, err := os.ReadFile(pipelineLog)
	require.NoError(t, err)
	assert.Contains(t, string(data), "analysis started for test-song")
	assert.NotContains(t, string(data), "below the level")

	data, err = os.ReadFile(providerLog)
	require.NoError(t, err)
	assert.Contains(t, string(data), "provider hiccup")
}

func TestJSONFormat(t *testing.T) {
	defer Reset()
	dir := t.TempDir()
	require.NoError(t, Initialize(Options{Dir: dir, Debug: true, Level: "debug", JSONFormat: true}))

	Scoring("final score %0.1f", 87.5)
	CloseAll()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var found bool
	for _, e := range entries {
		if !strings.Contains(e.Name(), "scoring") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg"`)
		assert.Contains(t, string(data), "87.5")
		found = true
	}
	assert.True(t, found, "scoring log file missing")
}

func TestTimer(t *testing.T) {
	defer Reset()
	dir := t.TempDir()
	require.NoError(t, Initialize(Options{Dir: dir, Debug: true, Level: "debug"}))

	timer := StartTimer(CategoryPipeline, "test operation")
	timer.Stop()
	CloseAll()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
}
