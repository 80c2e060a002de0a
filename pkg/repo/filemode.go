package repo

import (
	"io/fs"
	"os"

	"github.com/grit-scm/grit/pkg/object"
)

// treeModeFor maps a directory entry to its tree mode string. Symlinks
// are checked before regular-file bits since fs.FileMode sets both.
func treeModeFor(info fs.FileInfo) string {
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		return object.ModeSymlink
	case info.IsDir():
		return object.ModeDir
	case info.Mode()&0o111 != 0:
		return object.ModeExecutable
	default:
		return object.ModeFile
	}
}

// filePermFromMode maps a tree mode back to the permission bits used
// when materializing the file.
func filePermFromMode(mode string) os.FileMode {
	if mode == object.ModeExecutable {
		return 0o755
	}
	return 0o644
}
