package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/grit-scm/grit/pkg/object"
)

// GritDirName is the repository metadata directory created by Init and
// skipped by the tree builder.
const GritDirName = ".grit"

// DefaultBranch is the branch HEAD points at in a fresh repository.
const DefaultBranch = "main"

// Repo represents an opened grit repository.
type Repo struct {
	RootDir string        // working directory root
	GritDir string        // .grit/ directory
	Store   *object.Store // content-addressed object store
}

// Open searches upward from path for a .grit/ directory and opens the
// repository. Returns an error if no .grit/ directory is found.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		gritDir := filepath.Join(cur, GritDirName)
		info, err := os.Stat(gritDir)
		if err == nil && info.IsDir() {
			return &Repo{
				RootDir: cur,
				GritDir: gritDir,
				Store:   object.NewStore(gritDir),
			}, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("open: not a grit repository (or any parent up to /)")
		}
		cur = parent
	}
}
