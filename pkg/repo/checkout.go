package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/grit-scm/grit/pkg/object"
)

// Checkout materializes the object at h into dest. A commit checks out
// its tree; a tree becomes the directory dest with one filesystem
// entry per tree entry, recursing into subtrees; a blob becomes a
// single file at dest itself.
func (r *Repo) Checkout(h object.Hash, dest string) error {
	o, err := r.Store.ReadObject(h)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	switch v := o.(type) {
	case *object.Commit:
		return r.checkoutTree(v.Tree, dest)
	case *object.Tree:
		return r.materializeTree(v, dest)
	case *object.Blob:
		if err := os.WriteFile(dest, v.Data, 0o644); err != nil {
			return fmt.Errorf("checkout: write %q: %w", dest, err)
		}
		return nil
	default:
		return fmt.Errorf("checkout %s: %w: %q", h, object.ErrUnexpectedKind, o.Kind())
	}
}

// checkoutTree reads the tree at h and materializes it into dest.
// Resolving anything other than a tree here is a corrupt reference.
func (r *Repo) checkoutTree(h object.Hash, dest string) error {
	tree, err := r.Store.ReadTree(h)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	return r.materializeTree(tree, dest)
}

func (r *Repo) materializeTree(tree *object.Tree, dest string) error {
	// An existing destination directory is fine.
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("checkout: mkdir %q: %w", dest, err)
	}

	for _, entry := range tree.Entries {
		path := filepath.Join(dest, entry.Name)

		switch entry.Mode {
		case object.ModeDir:
			if err := r.checkoutTree(entry.Hash, path); err != nil {
				return err
			}

		case object.ModeFile, object.ModeExecutable:
			blob, err := r.Store.ReadBlob(entry.Hash)
			if err != nil {
				return fmt.Errorf("checkout: read blob for %q: %w", entry.Name, err)
			}
			if err := os.WriteFile(path, blob.Data, filePermFromMode(entry.Mode)); err != nil {
				return fmt.Errorf("checkout: write %q: %w", path, err)
			}
			// WriteFile perm is masked by umask; chmod makes the
			// executable bit unconditional.
			if entry.Mode == object.ModeExecutable {
				if err := os.Chmod(path, 0o755); err != nil {
					return fmt.Errorf("checkout: chmod %q: %w", path, err)
				}
			}

		case object.ModeSymlink:
			blob, err := r.Store.ReadBlob(entry.Hash)
			if err != nil {
				return fmt.Errorf("checkout: read link target for %q: %w", entry.Name, err)
			}
			// Replace any stale link from a previous checkout.
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("checkout: remove %q: %w", path, err)
			}
			if err := os.Symlink(string(blob.Data), path); err != nil {
				return fmt.Errorf("checkout: symlink %q: %w", path, err)
			}

		default:
			return fmt.Errorf("checkout %q: %w: %q", entry.Name, object.ErrUnsupportedMode, entry.Mode)
		}
	}
	return nil
}
