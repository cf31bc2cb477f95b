package stats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abeckett/ferry/internal/engine"
)

func runJob(t *testing.T, files map[string]string, spec engine.Spec) (*engine.Job, *Collector) {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(src, 0755))
	for rel, content := range files {
		path := filepath.Join(src, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	spec.Source = src
	spec.Destination = filepath.Join(dir, "dst")
	j, err := engine.NewJob(spec)
	require.NoError(t, err)
	require.NoError(t, j.Plan())

	c := NewCollector()
	require.NoError(t, j.Execute(NewRecorder(c)))
	return j, c
}

func TestRecorderCountsOutcomes(t *testing.T) {
	j, c := runJob(t, map[string]string{
		"a.txt":     "12345",
		"sub/b.txt": "123",
	}, engine.Spec{})

	s := c.Snapshot()
	assert.Equal(t, int64(3), s.ItemsTotal)
	assert.Equal(t, int64(8), s.BytesTotal)
	assert.Equal(t, int64(3), s.ItemsDone)
	assert.Zero(t, s.ItemsSkipped)
	assert.Zero(t, s.ItemsFailed)
	assert.Equal(t, j.BytesCopied, s.BytesCopied)
	assert.Equal(t, s.ItemsTotal, s.Processed())
}

func TestRecorderCountsSkips(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.MkdirAll(dst, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("new"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dst, "a.txt"), []byte("old"), 0644))

	j, err := engine.NewJob(engine.Spec{Source: src, Destination: dst, Policy: engine.Skip})
	require.NoError(t, err)
	require.NoError(t, j.Plan())

	c := NewCollector()
	require.NoError(t, j.Execute(NewRecorder(c)))

	s := c.Snapshot()
	assert.Equal(t, int64(1), s.ItemsSkipped)
	assert.Zero(t, s.ItemsDone)
	assert.Zero(t, s.BytesCopied)
}

func TestRecorderCountsVerification(t *testing.T) {
	_, c := runJob(t, map[string]string{
		"a.txt": "payload",
	}, engine.Spec{Verify: true})

	s := c.Snapshot()
	assert.Equal(t, int64(1), s.ItemsVerified)
	assert.Zero(t, s.ItemsVerifyFailed)
}
