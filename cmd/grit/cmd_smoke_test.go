package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}

func runCmd(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%s %v: %v\noutput:\n%s", cmd.Use, args, err, out.String())
	}
	return out.String()
}

func TestInitCmdCreatesRepository(t *testing.T) {
	dir := t.TempDir()
	out := runCmd(t, newInitCmd(), dir)

	if !strings.Contains(out, "initialized empty grit repository") {
		t.Errorf("unexpected output: %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, ".grit", "HEAD")); err != nil {
		t.Errorf("missing HEAD after init: %v", err)
	}
}

func TestHashObjectCmdWithoutWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "hello.txt")
	if err := os.WriteFile(file, []byte("hello\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	out := runCmd(t, newHashObjectCmd(), file)
	// git hash-object of "hello\n".
	if strings.TrimSpace(out) != "ce013625030ba8dba906f756967f9e9ca394464a" {
		t.Errorf("hash = %q", out)
	}
}

func TestWriteTreeCommitTreeCheckoutFlow(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	runCmd(t, newInitCmd())
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	treeHex := strings.TrimSpace(runCmd(t, newWriteTreeCmd()))
	if len(treeHex) != 40 {
		t.Fatalf("write-tree output = %q", treeHex)
	}

	commitHex := strings.TrimSpace(runCmd(t, newCommitTreeCmd(), treeHex, "-m", "first", "--update-ref"))
	if len(commitHex) != 40 {
		t.Fatalf("commit-tree output = %q", commitHex)
	}

	// The branch advanced, so log finds the commit via HEAD.
	logOut := runCmd(t, newLogCmd(), "--oneline")
	if !strings.Contains(logOut, "first") {
		t.Errorf("log output = %q", logOut)
	}

	out := filepath.Join(t.TempDir(), "out")
	runCmd(t, newCheckoutCmd(), commitHex, out)

	data, err := os.ReadFile(filepath.Join(out, "a.txt"))
	if err != nil {
		t.Fatalf("read checked out file: %v", err)
	}
	if string(data) != "hello\n" {
		t.Errorf("a.txt = %q", data)
	}
}

func TestCatFileCmd(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	runCmd(t, newInitCmd())
	if err := os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hello\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	blobHex := strings.TrimSpace(runCmd(t, newHashObjectCmd(), "-w", filepath.Join(dir, "hello.txt")))

	if got := strings.TrimSpace(runCmd(t, newCatFileCmd(), "-t", blobHex)); got != "blob" {
		t.Errorf("cat-file -t = %q, want blob", got)
	}
	if got := runCmd(t, newCatFileCmd(), "-p", blobHex); got != "hello\n" {
		t.Errorf("cat-file -p = %q, want %q", got, "hello\n")
	}
}

func TestConfigCmdRoundTrip(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	runCmd(t, newInitCmd())
	runCmd(t, newConfigCmd(), "set", "user.name", "Ada")
	out := runCmd(t, newConfigCmd(), "get", "user.name")
	if strings.TrimSpace(out) != "Ada" {
		t.Errorf("config get = %q", out)
	}
}
