package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lyriclens/internal/analysis"
)

func testResult(title string, score float64, created time.Time) *analysis.AnalysisResult {
	return &analysis.AnalysisResult{
		ID:           uuid.NewString(),
		Title:        title,
		Artist:       "Test Artist",
		CreatedAt:    created,
		FinalScore:   score,
		QualityLevel: analysis.QualityLow,
		Themes: []analysis.ThemeSignal{
			{Name: "Worship", Confidence: 0.9, Category: analysis.CategoryNeutral},
		},
		Verdict: analysis.Verdict{
			QualityLevel: analysis.QualityLow,
			Summary:      "summary",
			Guidance:     "guidance",
		},
	}
}

func TestResultStore_SaveAndGet(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	r := testResult("Amazing Grace", 88, time.Now().UTC())
	require.NoError(t, s.Save(ctx, r))

	loaded, err := s.Get(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, r.Title, loaded.Title)
	assert.Equal(t, r.FinalScore, loaded.FinalScore)
	assert.Equal(t, r.QualityLevel, loaded.QualityLevel)
	require.Len(t, loaded.Themes, 1)
	assert.Equal(t, "Worship", loaded.Themes[0].Name)
	assert.Equal(t, "summary", loaded.Verdict.Summary)
}

func TestResultStore_GetAbsent(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	loaded, err := s.Get(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestResultStore_DuplicateIDRejected(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	r := testResult("Once", 70, time.Now().UTC())
	require.NoError(t, s.Save(ctx, r))
	assert.Error(t, s.Save(ctx, r), "results are immutable, same id cannot be inserted twice")
}

func TestResultStore_ListRecent(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	now := time.Now().UTC()
	oldest := testResult("Oldest", 60, now.Add(-2*time.Hour))
	middle := testResult("Middle", 70, now.Add(-time.Hour))
	newest := testResult("Newest", 80, now)
	for _, r := range []*analysis.AnalysisResult{oldest, middle, newest} {
		require.NoError(t, s.Save(ctx, r))
	}

	t.Run("newest first", func(t *testing.T) {
		out, err := s.ListRecent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, out, 3)
		assert.Equal(t, "Newest", out[0].Title)
		assert.Equal(t, "Oldest", out[2].Title)
	})

	t.Run("limit respected", func(t *testing.T) {
		out, err := s.ListRecent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "Newest", out[0].Title)
	})

	t.Run("non-positive limit defaults", func(t *testing.T) {
		out, err := s.ListRecent(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, out, 3)
	})
}

func TestResultStore_DeleteOlderThan(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	now := time.Now().UTC()
	old := testResult("Old", 50, now.Add(-48*time.Hour))
	fresh := testResult("Fresh", 90, now)
	require.NoError(t, s.Save(ctx, old))
	require.NoError(t, s.Save(ctx, fresh))

	deleted, err := s.DeleteOlderThan(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	out, err := s.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Fresh", out[0].Title)
}
