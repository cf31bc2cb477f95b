package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyChainIncludesAll(t *testing.T) {
	c := NewChain()
	assert.True(t, c.Match("any/file.txt", false, 1024))
	assert.True(t, c.Match("any/dir", true, 0))
	assert.True(t, c.Empty())
}

func TestNilChainIncludesAll(t *testing.T) {
	var c *Chain
	assert.True(t, c.Match("any/file.txt", false, 1024))
	assert.True(t, c.Empty())
}

func TestExcludeByName(t *testing.T) {
	c := NewChain()
	require.NoError(t, c.AddExclude("*.log"))

	// A name-only pattern matches in any directory.
	assert.False(t, c.Match("app.log", false, 100))
	assert.False(t, c.Match("sub/deep/debug.log", false, 100))
	assert.True(t, c.Match("app.txt", false, 100))
}

func TestExcludeByPath(t *testing.T) {
	c := NewChain()
	require.NoError(t, c.AddExclude("build/**"))

	assert.False(t, c.Match("build/out.o", false, 100))
	assert.False(t, c.Match("build/nested/out.o", false, 100))
	assert.True(t, c.Match("src/build.go", false, 100))
}

func TestExcludeDoublestar(t *testing.T) {
	c := NewChain()
	require.NoError(t, c.AddExclude("**/node_modules/**"))

	assert.False(t, c.Match("web/node_modules/pkg/index.js", false, 100))
	assert.True(t, c.Match("web/src/index.js", false, 100))
}

func TestDirOnlyPattern(t *testing.T) {
	c := NewChain()
	require.NoError(t, c.AddExclude("build/"))

	assert.False(t, c.Match("build", true, 0))
	// A file named "build" is not excluded.
	assert.True(t, c.Match("build", false, 100))
}

func TestInvalidPattern(t *testing.T) {
	c := NewChain()
	assert.Error(t, c.AddExclude("["))
	assert.Error(t, c.AddExclude(""))
	assert.Error(t, c.AddExclude("/"))
}

func TestSizeBounds(t *testing.T) {
	c := NewChain()
	c.SetMinSize(100)
	c.SetMaxSize(1000)

	assert.False(t, c.Match("small.txt", false, 99))
	assert.True(t, c.Match("ok.txt", false, 100))
	assert.True(t, c.Match("ok2.txt", false, 1000))
	assert.False(t, c.Match("big.txt", false, 1001))

	// Directories ignore size bounds.
	assert.True(t, c.Match("dir", true, 0))
	assert.False(t, c.Empty())
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"100", 100},
		{"100B", 100},
		{"1K", 1024},
		{"1k", 1024},
		{"2M", 2 * 1024 * 1024},
		{"3G", 3 * 1024 * 1024 * 1024},
		{"1T", 1024 * 1024 * 1024 * 1024},
		{"1.5K", 1536},
		{" 64K ", 64 * 1024},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSizeInvalid(t *testing.T) {
	for _, in := range []string{"", "K", "abc", "12Q", "-5", "-1K"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseSize(in)
			assert.Error(t, err)
		})
	}
}
