package filter

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Chain holds an ordered list of exclude globs plus size bounds. A nil
// Chain includes everything.
type Chain struct {
	excludes []exclude
	minSize  int64
	maxSize  int64
}

type exclude struct {
	pattern string
	dirOnly bool
}

// NewChain creates an empty filter chain.
func NewChain() *Chain {
	return &Chain{}
}

// AddExclude adds an exclude glob. Patterns use doublestar syntax ("**"
// crosses directory boundaries); a pattern without a slash matches the
// entry name in any directory; a trailing slash restricts the pattern to
// directories.
func (c *Chain) AddExclude(pattern string) error {
	p := strings.TrimSpace(pattern)
	dirOnly := strings.HasSuffix(p, "/")
	p = strings.TrimSuffix(p, "/")
	if p == "" {
		return fmt.Errorf("empty exclude pattern")
	}
	if !doublestar.ValidatePattern(p) {
		return fmt.Errorf("invalid exclude pattern %q", pattern)
	}
	c.excludes = append(c.excludes, exclude{pattern: p, dirOnly: dirOnly})
	return nil
}

// SetMinSize sets the minimum file size bound.
func (c *Chain) SetMinSize(n int64) {
	c.minSize = n
}

// SetMaxSize sets the maximum file size bound.
func (c *Chain) SetMaxSize(n int64) {
	c.maxSize = n
}

// Empty reports whether the chain filters nothing.
func (c *Chain) Empty() bool {
	return c == nil || (len(c.excludes) == 0 && c.minSize == 0 && c.maxSize == 0)
}

// Match reports whether the entry should be included. relPath is the
// slash-separated path relative to the walk root, isDir marks directories,
// and size is the file size (ignored for directories).
func (c *Chain) Match(relPath string, isDir bool, size int64) bool {
	if c == nil {
		return true
	}

	// Size bounds apply only to regular files.
	if !isDir {
		if c.minSize > 0 && size < c.minSize {
			return false
		}
		if c.maxSize > 0 && size > c.maxSize {
			return false
		}
	}

	for _, ex := range c.excludes {
		if ex.dirOnly && !isDir {
			continue
		}
		if ex.matches(relPath) {
			return false
		}
	}
	return true
}

func (ex exclude) matches(relPath string) bool {
	if ok, _ := doublestar.Match(ex.pattern, relPath); ok {
		return true
	}
	// Name-only patterns apply to the entry name in any directory.
	if !strings.Contains(ex.pattern, "/") {
		if ok, _ := doublestar.Match(ex.pattern, path.Base(relPath)); ok {
			return true
		}
	}
	return false
}

// ParseSize parses a human-readable size like "100", "64K" or "1.5G" into
// bytes. Suffixes B/K/M/G/T are powers of 1024, case-insensitive.
func ParseSize(s string) (int64, error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return 0, fmt.Errorf("empty size string")
	}

	mult := int64(1)
	last := in[len(in)-1]
	if last >= 'a' && last <= 'z' {
		last -= 'a' - 'A'
	}
	if m, ok := sizeSuffixes[last]; ok {
		mult = m
		in = in[:len(in)-1]
		if in == "" {
			return 0, fmt.Errorf("invalid size: %q", s)
		}
	}

	if n, err := strconv.ParseInt(in, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative size: %q", s)
		}
		return n * mult, nil
	}

	f, err := strconv.ParseFloat(in, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("invalid size: %q", s)
	}
	return int64(f * float64(mult)), nil
}

var sizeSuffixes = map[byte]int64{
	'B': 1,
	'K': 1 << 10,
	'M': 1 << 20,
	'G': 1 << 30,
	'T': 1 << 40,
}
