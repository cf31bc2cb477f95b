package engine

import (
	"fmt"

	"github.com/abeckett/ferry/internal/checksum"
)

// verifyItem hashes the item's source and destination with the job's
// algorithm and records the outcome on the item's metadata. Directories
// pass trivially. A mismatch attaches an explanatory message but never
// demotes the item's terminal state; a hashing I/O failure is likewise
// recorded on the item rather than aborting the job.
func (j *Job) verifyItem(item *Item) {
	if item.IsDir {
		pass := true
		item.Meta.VerifyPassed = &pass
		return
	}

	src := item.Meta.SourceChecksum
	if src == nil {
		v, err := checksum.File(item.Source, j.Algorithm)
		if err != nil {
			item.ErrorMessage = newError(KindChecksumFailed, item.Source, err).Error()
			return
		}
		item.Meta.SourceChecksum = &v
		src = &v
	}

	dst, err := checksum.File(item.Destination, j.Algorithm)
	if err != nil {
		item.ErrorMessage = newError(KindChecksumFailed, item.Destination, err).Error()
		return
	}
	item.Meta.DestChecksum = &dst

	pass := src.Hex() == dst.Hex()
	item.Meta.VerifyPassed = &pass
	if !pass {
		item.ErrorMessage = fmt.Sprintf("checksum mismatch: source %s, destination %s",
			src.Hex(), dst.Hex())
	}
}
