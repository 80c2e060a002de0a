package object

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zlib"
)

// Store is a content-addressed loose-object store with a 2-character
// fan-out directory layout: objects/ab/cdef0123... Each file holds the
// zlib-compressed canonical encoding; the filename is derived from the
// SHA-1 of the uncompressed bytes.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the repository metadata directory
// (the one containing objects/). Fan-out directories are created
// lazily on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(h Hash) string {
	hx := h.Hex()
	return filepath.Join(s.root, "objects", hx[:2], hx[2:])
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	_, err := os.Stat(s.objectPath(h))
	return err == nil
}

// WriteRaw stores already-encoded object bytes and returns their hash.
// Identical bytes always land at the same path, so a duplicate write
// is skipped entirely. Writes go through a temp file and rename so a
// crash never leaves a partial object at the final path, and an
// "already exists" outcome on the fan-out directory is success.
func (s *Store) WriteRaw(encoded []byte) (Hash, error) {
	h := HashBytes(encoded)

	// Fast path: content-addressing makes duplicates byte-identical.
	if s.Has(h) {
		return h, nil
	}

	hx := h.Hex()
	dir := filepath.Join(s.root, "objects", hx[:2])
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Hash{}, fmt.Errorf("object write mkdir: %w", err)
	}

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(encoded); err != nil {
		zw.Close()
		return Hash{}, fmt.Errorf("object write compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return Hash{}, fmt.Errorf("object write compress close: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return Hash{}, fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(compressed.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return Hash{}, fmt.Errorf("object write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return Hash{}, fmt.Errorf("object write close: %w", err)
	}
	if err := os.Rename(tmpName, s.objectPath(h)); err != nil {
		os.Remove(tmpName)
		return Hash{}, fmt.Errorf("object write rename: %w", err)
	}

	return h, nil
}

// Write encodes a payload under the given type tag and stores it.
func (s *Store) Write(objType Type, payload []byte) (Hash, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %d\x00", objType, len(payload))
	buf.Write(payload)
	return s.WriteRaw(buf.Bytes())
}

// ReadRaw retrieves the uncompressed encoded bytes for a hash.
func (s *Store) ReadRaw(h Hash) ([]byte, error) {
	f, err := os.Open(s.objectPath(h))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("object read %s: %w", h, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}
	defer f.Close()

	zr, err := zlib.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("object read %s: %w: %v", h, ErrMalformedObject, err)
	}
	defer zr.Close()

	encoded, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("object read %s: %w: %v", h, ErrMalformedObject, err)
	}
	return encoded, nil
}

// ReadObject retrieves and decodes an object by hash.
func (s *Store) ReadObject(h Hash) (Object, error) {
	encoded, err := s.ReadRaw(h)
	if err != nil {
		return nil, err
	}
	o, err := Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}
	return o, nil
}

// WriteObject encodes and stores any object value.
func (s *Store) WriteObject(o Object) (Hash, error) {
	return s.WriteRaw(Encode(o))
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// WriteBlob serializes and stores a Blob.
func (s *Store) WriteBlob(b *Blob) (Hash, error) {
	return s.Write(TypeBlob, MarshalBlob(b))
}

// ReadBlob reads a Blob by hash.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	o, err := s.ReadObject(h)
	if err != nil {
		return nil, err
	}
	b, ok := o.(*Blob)
	if !ok {
		return nil, fmt.Errorf("object %s: %w: got %q, want %q", h, ErrUnexpectedKind, o.Kind(), TypeBlob)
	}
	return b, nil
}

// WriteTree serializes and stores a Tree. Duplicate entry names
// violate the tree invariant and are rejected before encoding.
func (s *Store) WriteTree(t *Tree) (Hash, error) {
	seen := make(map[string]struct{}, len(t.Entries))
	for _, e := range t.Entries {
		if _, dup := seen[e.Name]; dup {
			return Hash{}, fmt.Errorf("write tree: %w: duplicate entry name %q", ErrMalformedObject, e.Name)
		}
		seen[e.Name] = struct{}{}
	}
	return s.Write(TypeTree, MarshalTree(t))
}

// ReadTree reads a Tree by hash.
func (s *Store) ReadTree(h Hash) (*Tree, error) {
	o, err := s.ReadObject(h)
	if err != nil {
		return nil, err
	}
	t, ok := o.(*Tree)
	if !ok {
		return nil, fmt.Errorf("object %s: %w: got %q, want %q", h, ErrUnexpectedKind, o.Kind(), TypeTree)
	}
	return t, nil
}

// WriteCommit serializes and stores a Commit.
func (s *Store) WriteCommit(c *Commit) (Hash, error) {
	return s.Write(TypeCommit, MarshalCommit(c))
}

// ReadCommit reads a Commit by hash.
func (s *Store) ReadCommit(h Hash) (*Commit, error) {
	o, err := s.ReadObject(h)
	if err != nil {
		return nil, err
	}
	c, ok := o.(*Commit)
	if !ok {
		return nil, fmt.Errorf("object %s: %w: got %q, want %q", h, ErrUnexpectedKind, o.Kind(), TypeCommit)
	}
	return c, nil
}
