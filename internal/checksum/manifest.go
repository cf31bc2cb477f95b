package checksum

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
)

// ManifestEntry is one manifest record: a lowercase hex digest and the
// root-relative slash path it was computed from.
type ManifestEntry struct {
	Hex  string
	Path string
}

// WriteManifest writes entries as manifest text: a comment header naming the
// algorithm (informational only), then one "<hex> <path>" line per entry.
func WriteManifest(w io.Writer, a Algorithm, entries []ManifestEntry) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "; checksum manifest generated by ferry")
	fmt.Fprintf(bw, "; algorithm: %s\n", a)
	fmt.Fprintln(bw)
	for _, e := range entries {
		fmt.Fprintf(bw, "%s %s\n", e.Hex, e.Path)
	}
	return bw.Flush()
}

// ManifestAlgorithm extracts the algorithm named in a manifest's header
// comments. Returns false when no header names one before the first entry.
func ManifestAlgorithm(r io.Reader) (Algorithm, bool) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ";") {
			break
		}
		rest, ok := strings.CutPrefix(line, "; algorithm:")
		if !ok {
			continue
		}
		a, err := ParseAlgorithm(strings.TrimSpace(rest))
		if err != nil {
			return 0, false
		}
		return a, true
	}
	return 0, false
}

// ParseManifest reads manifest text. Blank lines, lines starting with ";"
// and lines without a "<hex> <path>" shape are skipped.
func ParseManifest(r io.Reader) ([]ManifestEntry, error) {
	var entries []ManifestEntry
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		entries = append(entries, ManifestEntry{
			Hex:  strings.ToLower(parts[0]),
			Path: parts[1],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return entries, nil
}

// BuildManifest walks root and hashes every regular file, producing entries
// in walk order keyed by slash-separated root-relative paths.
func BuildManifest(root string, a Algorithm) ([]ManifestEntry, error) {
	var entries []ManifestEntry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		v, err := File(path, a)
		if err != nil {
			return err
		}
		entries = append(entries, ManifestEntry{Hex: v.Hex(), Path: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("build manifest for %s: %w", root, err)
	}
	return entries, nil
}

// VerifyResult records the verification outcome for one manifest entry.
type VerifyResult struct {
	Path string
	Want string
	Got  string
	OK   bool
}

// VerifyManifest recomputes each entry's digest under root and compares it
// to the recorded one. A mismatch is a recorded result, not an error; an
// I/O failure while hashing aborts with that error.
func VerifyManifest(root string, a Algorithm, entries []ManifestEntry) ([]VerifyResult, error) {
	results := make([]VerifyResult, 0, len(entries))
	for _, e := range entries {
		v, err := File(filepath.Join(root, filepath.FromSlash(e.Path)), a)
		if err != nil {
			return nil, err
		}
		results = append(results, VerifyResult{
			Path: e.Path,
			Want: e.Hex,
			Got:  v.Hex(),
			OK:   v.Hex() == e.Hex,
		})
	}
	return results, nil
}
