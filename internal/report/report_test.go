package report

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lockstep/internal/checker"
)

func sampleResults() []checker.Result {
	return []checker.Result{
		{
			Type: "RemoveNodeSignal", Kind: "signal",
			Interface: "org.example.Node", Member: "RemoveNode", Document: "node.xml",
			Declared: "so", Reported: "(so)", Status: checker.StatusPass,
		},
		{
			Type: "InUse", Kind: "property",
			Interface: "org.example.Node", Member: "InUse", Document: "node.xml",
			Declared: "b", Reported: "s", Status: checker.StatusFail,
			Detail: "signature mismatch:\n  declared: \"b\"\n  reported: \"s\"\n",
		},
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	run := &Run{
		StartedAt: time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC),
		XMLPath:   "xml",
		Total:     2, Passed: 1, Failed: 1,
	}

	id, err := store.SaveRun(ctx, run, sampleResults())
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)

	t.Run("ListRuns", func(t *testing.T) {
		runs, err := store.ListRuns(ctx, 10)
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, id, runs[0].ID)
		assert.Equal(t, "xml", runs[0].XMLPath)
		assert.Equal(t, 2, runs[0].Total)
		assert.True(t, run.StartedAt.Equal(runs[0].StartedAt))
	})

	t.Run("RunResults", func(t *testing.T) {
		results, err := store.RunResults(ctx, id)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "RemoveNodeSignal", results[0].Type)
		assert.Equal(t, checker.StatusFail, results[1].Status)
		assert.Contains(t, results[1].Detail, "mismatch")
	})

	t.Run("Newest First", func(t *testing.T) {
		later := &Run{StartedAt: time.Now(), Total: 1, Passed: 1}
		_, err := store.SaveRun(ctx, later, nil)
		require.NoError(t, err)

		runs, err := store.ListRuns(ctx, 10)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, later.ID, runs[0].ID)
	})
}

func TestRenderMarkdown(t *testing.T) {
	run := &Run{
		StartedAt: time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC),
		XMLPath:   "xml",
		Total:     2, Passed: 1, Failed: 1,
	}
	out := RenderMarkdown(run, sampleResults())

	assert.Contains(t, out, "# Lockstep check report")
	assert.Contains(t, out, "2 total, 1 passed, 1 failed")
	assert.Contains(t, out, "org.example.Node.RemoveNode")
	assert.Contains(t, out, "✅")
	assert.Contains(t, out, "❌")
	assert.Contains(t, out, "## Failures")
	assert.Contains(t, out, "### InUse")
}
