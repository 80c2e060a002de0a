package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grit-scm/grit/pkg/object"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestWriteTreeSingleFile(t *testing.T) {
	r := tempRepo(t)
	writeFile(t, filepath.Join(r.RootDir, "a.txt"), "hello\n")

	rootHash, err := r.WriteTree(r.RootDir)
	if err != nil {
		t.Fatalf("WriteTree: %v", err)
	}

	tree, err := r.Store.ReadTree(rootHash)
	if err != nil {
		t.Fatalf("ReadTree: %v", err)
	}
	if len(tree.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(tree.Entries))
	}

	e := tree.Entries[0]
	if e.Name != "a.txt" || e.Mode != object.ModeFile {
		t.Errorf("entry = %+v, want 100644 a.txt", e)
	}
	wantBlob := object.HashObject(object.TypeBlob, []byte("hello\n"))
	if e.Hash != wantBlob {
		t.Errorf("blob hash = %s, want %s", e.Hash, wantBlob)
	}
}

func TestWriteTreeSkipsMetadataDir(t *testing.T) {
	r := tempRepo(t)
	writeFile(t, filepath.Join(r.RootDir, "a.txt"), "x")

	rootHash, err := r.WriteTree(r.RootDir)
	if err != nil {
		t.Fatalf("WriteTree: %v", err)
	}
	tree, err := r.Store.ReadTree(rootHash)
	if err != nil {
		t.Fatalf("ReadTree: %v", err)
	}
	for _, e := range tree.Entries {
		if e.Name == GritDirName {
			t.Errorf("tree lists the metadata directory %q", e.Name)
		}
	}
}

func TestWriteTreeDeterministic(t *testing.T) {
	r := tempRepo(t)
	writeFile(t, filepath.Join(r.RootDir, "b.txt"), "b")
	writeFile(t, filepath.Join(r.RootDir, "a.txt"), "a")
	writeFile(t, filepath.Join(r.RootDir, "sub", "c.txt"), "c")

	h1, err := r.WriteTree(r.RootDir)
	if err != nil {
		t.Fatalf("WriteTree 1: %v", err)
	}
	h2, err := r.WriteTree(r.RootDir)
	if err != nil {
		t.Fatalf("WriteTree 2: %v", err)
	}
	if h1 != h2 {
		t.Errorf("same directory hashed differently: %s != %s", h1, h2)
	}

	// The same content created in a different order must hash the same.
	other := tempRepo(t)
	writeFile(t, filepath.Join(other.RootDir, "sub", "c.txt"), "c")
	writeFile(t, filepath.Join(other.RootDir, "a.txt"), "a")
	writeFile(t, filepath.Join(other.RootDir, "b.txt"), "b")

	h3, err := other.WriteTree(other.RootDir)
	if err != nil {
		t.Fatalf("WriteTree other: %v", err)
	}
	if h1 != h3 {
		t.Errorf("equal directories hashed differently: %s != %s", h1, h3)
	}
}

func TestWriteTreeNestedDirectories(t *testing.T) {
	r := tempRepo(t)
	writeFile(t, filepath.Join(r.RootDir, "top.txt"), "top")
	writeFile(t, filepath.Join(r.RootDir, "sub", "mid.txt"), "mid")
	writeFile(t, filepath.Join(r.RootDir, "sub", "deep", "leaf.txt"), "leaf")

	rootHash, err := r.WriteTree(r.RootDir)
	if err != nil {
		t.Fatalf("WriteTree: %v", err)
	}

	root, err := r.Store.ReadTree(rootHash)
	if err != nil {
		t.Fatalf("ReadTree root: %v", err)
	}
	var subEntry *object.TreeEntry
	for i, e := range root.Entries {
		if e.Name == "sub" {
			subEntry = &root.Entries[i]
		}
	}
	if subEntry == nil || subEntry.Mode != object.ModeDir {
		t.Fatalf("missing directory entry for sub: %+v", root.Entries)
	}

	sub, err := r.Store.ReadTree(subEntry.Hash)
	if err != nil {
		t.Fatalf("ReadTree sub: %v", err)
	}
	names := make(map[string]string)
	for _, e := range sub.Entries {
		names[e.Name] = e.Mode
	}
	if names["mid.txt"] != object.ModeFile || names["deep"] != object.ModeDir {
		t.Errorf("sub entries = %v", names)
	}
}

func TestWriteTreeExecutableMode(t *testing.T) {
	r := tempRepo(t)
	script := filepath.Join(r.RootDir, "run.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	rootHash, err := r.WriteTree(r.RootDir)
	if err != nil {
		t.Fatalf("WriteTree: %v", err)
	}
	tree, err := r.Store.ReadTree(rootHash)
	if err != nil {
		t.Fatalf("ReadTree: %v", err)
	}
	if tree.Entries[0].Mode != object.ModeExecutable {
		t.Errorf("mode = %q, want %q", tree.Entries[0].Mode, object.ModeExecutable)
	}
}

func TestWriteTreeSymlink(t *testing.T) {
	r := tempRepo(t)
	writeFile(t, filepath.Join(r.RootDir, "target.txt"), "content")
	if err := os.Symlink("target.txt", filepath.Join(r.RootDir, "link")); err != nil {
		t.Skipf("symlinks unsupported here: %v", err)
	}

	rootHash, err := r.WriteTree(r.RootDir)
	if err != nil {
		t.Fatalf("WriteTree: %v", err)
	}
	tree, err := r.Store.ReadTree(rootHash)
	if err != nil {
		t.Fatalf("ReadTree: %v", err)
	}

	var linkEntry *object.TreeEntry
	for i, e := range tree.Entries {
		if e.Name == "link" {
			linkEntry = &tree.Entries[i]
		}
	}
	if linkEntry == nil {
		t.Fatalf("no entry for symlink: %+v", tree.Entries)
	}
	if linkEntry.Mode != object.ModeSymlink {
		t.Errorf("mode = %q, want %q", linkEntry.Mode, object.ModeSymlink)
	}

	blob, err := r.Store.ReadBlob(linkEntry.Hash)
	if err != nil {
		t.Fatalf("ReadBlob: %v", err)
	}
	if string(blob.Data) != "target.txt" {
		t.Errorf("link blob = %q, want target path text", blob.Data)
	}
}

func TestWriteTreeIncludesEmptyDirectory(t *testing.T) {
	r := tempRepo(t)
	if err := os.Mkdir(filepath.Join(r.RootDir, "empty"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	rootHash, err := r.WriteTree(r.RootDir)
	if err != nil {
		t.Fatalf("WriteTree: %v", err)
	}
	root, err := r.Store.ReadTree(rootHash)
	if err != nil {
		t.Fatalf("ReadTree: %v", err)
	}
	if len(root.Entries) != 1 || root.Entries[0].Name != "empty" || root.Entries[0].Mode != object.ModeDir {
		t.Fatalf("root entries = %+v, want one directory entry", root.Entries)
	}

	empty, err := r.Store.ReadTree(root.Entries[0].Hash)
	if err != nil {
		t.Fatalf("ReadTree empty: %v", err)
	}
	if len(empty.Entries) != 0 {
		t.Errorf("empty dir tree has %d entries", len(empty.Entries))
	}
}
