package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "filter.rules")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeRules(t, `# This is a comment
- *.log

- build/
noprefix.txt
`)

	c := NewChain()
	require.NoError(t, c.LoadFile(path))
	assert.Len(t, c.excludes, 3)

	assert.False(t, c.Match("app.log", false, 100))
	assert.False(t, c.Match("build", true, 0))
	assert.False(t, c.Match("noprefix.txt", false, 100))
	assert.True(t, c.Match("main.go", false, 100))
	assert.True(t, c.Match("build", false, 100), "dir-only rule ignores files")
}

func TestLoadFileOnlyComments(t *testing.T) {
	path := writeRules(t, "# only comments\n\n# more\n")

	c := NewChain()
	require.NoError(t, c.LoadFile(path))
	assert.Empty(t, c.excludes)
}

func TestLoadFileNotExists(t *testing.T) {
	c := NewChain()
	err := c.LoadFile(filepath.Join(t.TempDir(), "missing.rules"))
	assert.Error(t, err)
}

func TestLoadFileInvalidPattern(t *testing.T) {
	path := writeRules(t, "- [\n")

	c := NewChain()
	err := c.LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}
