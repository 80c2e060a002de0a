package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grit-scm/grit/pkg/object"
)

// Head reads .grit/HEAD. If the content starts with "ref: ", it
// returns the ref path (e.g., "refs/heads/main"). Otherwise it returns
// the raw content as a detached hash string.
func (r *Repo) Head() (string, error) {
	data, err := os.ReadFile(filepath.Join(r.GritDir, "HEAD"))
	if err != nil {
		return "", fmt.Errorf("head: %w", err)
	}
	content := strings.TrimRight(string(data), "\n")

	if strings.HasPrefix(content, "ref: ") {
		return strings.TrimPrefix(content, "ref: "), nil
	}
	return content, nil
}

// ResolveRef resolves a ref name to an object hash.
//
// Resolution order:
//  1. If name is "HEAD", read HEAD. If HEAD is symbolic, resolve the target ref.
//  2. If name starts with "refs/", read .grit/<name>.
//  3. Otherwise, try "refs/heads/<name>".
func (r *Repo) ResolveRef(name string) (object.Hash, error) {
	if name == "HEAD" {
		head, err := r.Head()
		if err != nil {
			return object.Hash{}, err
		}
		if strings.HasPrefix(head, "refs/") {
			return r.ResolveRef(head)
		}
		// Detached HEAD: the value is a hex hash.
		return object.ParseHash(head)
	}

	var refPath string
	if strings.HasPrefix(name, "refs/") {
		refPath = filepath.Join(r.GritDir, name)
	} else {
		refPath = filepath.Join(r.GritDir, "refs", "heads", name)
	}

	data, err := os.ReadFile(refPath)
	if err != nil {
		return object.Hash{}, fmt.Errorf("resolve ref %q: %w", name, err)
	}
	return object.ParseHash(strings.TrimSpace(string(data)))
}

// UpdateRef writes a hash to the named ref file under .grit/ using
// lockfile + rename semantics. Parent directories are created as
// needed. Short branch names are stored under refs/heads/.
func (r *Repo) UpdateRef(name string, h object.Hash) error {
	if !strings.HasPrefix(name, "refs/") && name != "HEAD" {
		name = "refs/heads/" + name
	}
	refPath := filepath.Join(r.GritDir, name)

	if err := os.MkdirAll(filepath.Dir(refPath), 0o755); err != nil {
		return fmt.Errorf("update ref %q: mkdir: %w", name, err)
	}

	lockPath := refPath + ".lock"
	lock, err := os.OpenFile(lockPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("update ref %q: lock: %w", name, err)
	}
	cleanup := true
	defer func() {
		if cleanup {
			lock.Close()
			os.Remove(lockPath)
		}
	}()

	if _, err := lock.WriteString(h.Hex() + "\n"); err != nil {
		return fmt.Errorf("update ref %q: write: %w", name, err)
	}
	if err := lock.Close(); err != nil {
		return fmt.Errorf("update ref %q: close: %w", name, err)
	}
	if err := os.Rename(lockPath, refPath); err != nil {
		return fmt.Errorf("update ref %q: rename: %w", name, err)
	}
	cleanup = false
	return nil
}
