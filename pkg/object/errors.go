package object

import "errors"

// Failure classes surfaced by the codec and the store. Callers match
// with errors.Is; every wrap site adds context with %w.
var (
	// ErrInvalidHash reports a hex string that is not a well-formed
	// 40-character hash.
	ErrInvalidHash = errors.New("invalid hash encoding")

	// ErrObjectNotFound reports a hash with no file at its derived
	// store path.
	ErrObjectNotFound = errors.New("object not found")

	// ErrMalformedObject reports a stored object that cannot be
	// decompressed or whose encoding violates the canonical format
	// (bad header, length mismatch, truncated tree entry).
	ErrMalformedObject = errors.New("malformed object")

	// ErrUnsupportedType reports an object header tag other than
	// blob, tree, or commit.
	ErrUnsupportedType = errors.New("unsupported object type")

	// ErrUnsupportedMode reports an unrecognized tree entry mode
	// string.
	ErrUnsupportedMode = errors.New("unsupported tree entry mode")

	// ErrUnexpectedKind reports an operation that expected one object
	// variant and resolved another.
	ErrUnexpectedKind = errors.New("unexpected object kind")
)
