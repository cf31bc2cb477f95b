package engine

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/abeckett/ferry/internal/filter"
)

// enumerateTree walks src recursively and returns one Item per entry, each
// directory preceding its own descendants. Every item's destination swaps
// the source root for dst at the same relative position. A read failure at
// the root is fatal; a read failure inside a subdirectory marks that
// directory's item Failed while its siblings carry on, and the failed
// directory's descendants are never produced. Entries are visited in
// sorted name order, so the output is deterministic for a given tree.
func enumerateTree(src, dst string, fltr *filter.Chain) ([]Item, error) {
	var items []Item
	if err := enumerateDir(src, dst, src, fltr, &items); err != nil {
		return nil, newError(KindEnumerationFailed, src, err)
	}
	return items, nil
}

func enumerateDir(dir, dstDir, root string, fltr *filter.Chain, items *[]Item) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(dir, entry.Name())
		dstPath := filepath.Join(dstDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			return err
		}

		if !fltr.Empty() {
			rel, relErr := filepath.Rel(root, srcPath)
			if relErr == nil && !fltr.Match(filepath.ToSlash(rel), entry.IsDir(), info.Size()) {
				continue
			}
		}

		if entry.IsDir() {
			dirIdx := len(*items)
			*items = append(*items, Item{
				ID:          uuid.New(),
				Source:      srcPath,
				Destination: dstPath,
				State:       ItemPending,
				IsDir:       true,
				ModTime:     info.ModTime(),
			})
			if err := enumerateDir(srcPath, dstPath, root, fltr, items); err != nil {
				// Collapse the failed subtree to its directory item.
				*items = (*items)[:dirIdx+1]
				(*items)[dirIdx].fail(newError(KindEnumerationFailed, srcPath, err))
			}
			continue
		}

		*items = append(*items, Item{
			ID:          uuid.New(),
			Source:      srcPath,
			Destination: dstPath,
			Size:        info.Size(),
			State:       ItemPending,
			ModTime:     info.ModTime(),
		})
	}
	return nil
}
