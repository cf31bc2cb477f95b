package checksum

import (
	"crypto/md5" //nolint:gosec // md5 is an integrity option, not an auth primitive
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
	"os"
	"strings"

	"github.com/zeebo/blake3"
)

// Algorithm selects one of the supported checksum algorithms.
type Algorithm int

const (
	CRC32 Algorithm = iota + 1
	MD5
	SHA256
	BLAKE3
)

var algorithmNames = [...]string{
	CRC32:  "crc32",
	MD5:    "md5",
	SHA256: "sha256",
	BLAKE3: "blake3",
}

func (a Algorithm) String() string {
	if a >= 1 && int(a) < len(algorithmNames) {
		return algorithmNames[a]
	}
	return "unknown"
}

// ParseAlgorithm maps a user-supplied name to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "crc32":
		return CRC32, nil
	case "md5":
		return MD5, nil
	case "sha256", "sha-256":
		return SHA256, nil
	case "blake3":
		return BLAKE3, nil
	default:
		return 0, fmt.Errorf("unknown checksum algorithm %q (use crc32, md5, sha256 or blake3)", s)
	}
}

// Value is a finalized digest: the algorithm that produced it plus the
// lowercase hex encoding. Values are immutable once constructed.
type Value struct {
	algorithm Algorithm
	hex       string
}

// NewValue builds a Value from an already-computed hex digest, normalizing
// the digest to lowercase.
func NewValue(a Algorithm, hexDigest string) Value {
	return Value{algorithm: a, hex: strings.ToLower(hexDigest)}
}

func (v Value) Algorithm() Algorithm { return v.algorithm }

// Hex returns the lowercase hex digest.
func (v Value) Hex() string { return v.hex }

func (v Value) String() string { return v.hex }

// Hasher streams data into one algorithm. It implements io.Writer so file
// contents can be copied straight into it.
type Hasher struct {
	algorithm Algorithm
	h         hash.Hash
}

// New returns a streaming hasher for the given algorithm.
func New(a Algorithm) (*Hasher, error) {
	var h hash.Hash
	switch a {
	case CRC32:
		h = crc32.NewIEEE()
	case MD5:
		h = md5.New() //nolint:gosec // see import note
	case SHA256:
		h = sha256.New()
	case BLAKE3:
		h = blake3.New()
	default:
		return nil, fmt.Errorf("unknown checksum algorithm %d", int(a))
	}
	return &Hasher{algorithm: a, h: h}, nil
}

func (h *Hasher) Write(p []byte) (int, error) { return h.h.Write(p) }

// Sum finalizes the stream and returns the digest. The hasher may keep
// accepting writes afterwards; Sum reflects everything written so far.
func (h *Hasher) Sum() Value {
	return Value{algorithm: h.algorithm, hex: hex.EncodeToString(h.h.Sum(nil))}
}

// bufferSize bounds memory use when hashing, independent of file size.
const bufferSize = 64 * 1024

// File computes the digest of the file at path with the given algorithm,
// streaming through a fixed-size buffer.
func File(path string, a Algorithm) (Value, error) {
	h, err := New(a)
	if err != nil {
		return Value{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Value{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, bufferSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return Value{}, fmt.Errorf("hash %s: %w", path, err)
	}
	return h.Sum(), nil
}
