package engine

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// copyBufferSize is the chunk size for streaming copies.
const copyBufferSize = 1 << 20 // 1 MiB

var copyBufPool = sync.Pool{
	New: func() any {
		buf := make([]byte, copyBufferSize)
		return &buf
	},
}

// ensureParentDir creates the parent directory of path, recursively.
func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return newError(KindDirCreateFailed, dir, err)
	}
	return nil
}

// copyFile streams the full content of src to dst, creating missing
// destination parent directories first. Read-side and write-side failures
// come back as distinct error kinds. The source's mtime is applied to the
// destination afterwards on a best-effort basis. Returns the number of
// bytes written.
func copyFile(src, dst string, mtime time.Time, limiter *rate.Limiter) (int64, error) {
	if err := ensureParentDir(dst); err != nil {
		return 0, err
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, newError(KindReadFailed, src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, newError(KindWriteFailed, dst, err)
	}

	var r io.Reader = in
	chunk := copyBufferSize
	if limiter != nil {
		r = newRateLimitedReader(in, limiter)
		// Reads above the burst would stall the limiter forever.
		if b := limiter.Burst(); b < chunk {
			chunk = b
		}
	}

	bufp := copyBufPool.Get().(*[]byte)
	buf := *bufp
	defer copyBufPool.Put(bufp)

	var written int64
	for {
		n, rerr := r.Read(buf[:chunk])
		if n > 0 {
			w, werr := out.Write(buf[:n])
			written += int64(w)
			if werr != nil {
				out.Close()
				return written, newError(KindWriteFailed, dst, werr)
			}
			if w < n {
				out.Close()
				return written, newError(KindWriteFailed, dst, io.ErrShortWrite)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			out.Close()
			return written, newError(KindReadFailed, src, rerr)
		}
	}

	if err := out.Close(); err != nil {
		return written, newError(KindWriteFailed, dst, err)
	}

	// Timestamp preservation never fails the copy.
	if !mtime.IsZero() {
		_ = preserveModTime(dst, mtime)
	}

	return written, nil
}
