package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grit-scm/grit/pkg/object"
)

// ErrAlreadyInitialized reports an Init target that already contains a
// repository metadata directory.
var ErrAlreadyInitialized = errors.New("repository already initialized")

// Init creates a new grit repository at path. It creates the .grit/
// directory structure: HEAD, objects/, and refs/heads/. A pre-existing
// .grit/ is never overwritten.
func Init(path string) (*Repo, error) {
	gritDir := filepath.Join(path, GritDirName)

	if _, err := os.Stat(gritDir); err == nil {
		return nil, fmt.Errorf("init: %w at %s", ErrAlreadyInitialized, gritDir)
	}

	dirs := []string{
		filepath.Join(gritDir, "objects"),
		filepath.Join(gritDir, "refs", "heads"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	headPath := filepath.Join(gritDir, "HEAD")
	if err := os.WriteFile(headPath, []byte("ref: refs/heads/"+DefaultBranch+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("init: write HEAD: %w", err)
	}

	return &Repo{
		RootDir: path,
		GritDir: gritDir,
		Store:   object.NewStore(gritDir),
	}, nil
}
