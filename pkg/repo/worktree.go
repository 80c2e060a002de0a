package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/grit-scm/grit/pkg/object"
)

// WriteTree snapshots the directory at dir into the object store and
// returns the root tree hash. Children are hashed bottom-up: blobs for
// files (link target text for symlinks), subtrees via recursion, then
// the parent tree over the collected entries. The repository metadata
// directory is skipped.
//
// A directory with zero entries still produces a valid empty tree and
// is listed in its parent; callers wanting git's "no empty
// directories" behavior must filter beforehand.
func (r *Repo) WriteTree(dir string) (object.Hash, error) {
	children, err := os.ReadDir(dir)
	if err != nil {
		return object.Hash{}, fmt.Errorf("write tree %q: %w", dir, err)
	}

	tree := &object.Tree{}
	for _, child := range children {
		name := child.Name()
		if name == GritDirName {
			continue
		}
		childPath := filepath.Join(dir, name)

		info, err := child.Info()
		if err != nil {
			return object.Hash{}, fmt.Errorf("write tree %q: stat %q: %w", dir, name, err)
		}
		mode := treeModeFor(info)

		var h object.Hash
		switch mode {
		case object.ModeDir:
			h, err = r.WriteTree(childPath)
			if err != nil {
				return object.Hash{}, err
			}
		case object.ModeSymlink:
			target, err := os.Readlink(childPath)
			if err != nil {
				return object.Hash{}, fmt.Errorf("write tree %q: readlink %q: %w", dir, name, err)
			}
			h, err = r.Store.WriteBlob(&object.Blob{Data: []byte(target)})
			if err != nil {
				return object.Hash{}, fmt.Errorf("write tree %q: %w", dir, err)
			}
		default:
			data, err := os.ReadFile(childPath)
			if err != nil {
				return object.Hash{}, fmt.Errorf("write tree %q: read %q: %w", dir, name, err)
			}
			h, err = r.Store.WriteBlob(&object.Blob{Data: data})
			if err != nil {
				return object.Hash{}, fmt.Errorf("write tree %q: %w", dir, err)
			}
		}

		tree.Entries = append(tree.Entries, object.TreeEntry{
			Mode: mode,
			Name: name,
			Hash: h,
		})
	}

	// The codec sorts again before hashing; sorting here keeps the
	// in-memory value canonical too.
	tree.Sort()

	h, err := r.Store.WriteTree(tree)
	if err != nil {
		return object.Hash{}, fmt.Errorf("write tree %q: %w", dir, err)
	}
	return h, nil
}
