package repo

import (
	"errors"
	"fmt"

	"github.com/grit-scm/grit/pkg/object"
)

// CommitSigner signs canonical commit payload bytes and returns an
// encoded signature string to be persisted in the gpgsig header.
type CommitSigner func(payload []byte) (string, error)

// CreateCommit builds a commit exactly as given and stores it: no
// default parents, no implicit tree lookup, and no ref movement — ref
// advancement is the caller's responsibility. The committer identity
// mirrors the author.
func (r *Repo) CreateCommit(tree object.Hash, parents []object.Hash, message string, author object.Ident, signer CommitSigner) (object.Hash, error) {
	c := &object.Commit{
		Tree:      tree,
		Parents:   parents,
		Author:    author,
		Committer: author,
		Message:   message,
	}

	if signer != nil {
		sig, err := signer(object.CommitSigningPayload(c))
		if err != nil {
			return object.Hash{}, fmt.Errorf("commit: sign: %w", err)
		}
		c.GPGSig = sig
	}

	h, err := r.Store.WriteCommit(c)
	if err != nil {
		return object.Hash{}, fmt.Errorf("commit: %w", err)
	}
	return h, nil
}

// LogEntry pairs a commit with the hash it was read under.
type LogEntry struct {
	Hash   object.Hash
	Commit *object.Commit
}

// Log walks the commit history starting from the given hash, following
// first-parent links, returning up to limit commits newest first.
func (r *Repo) Log(start object.Hash, limit int) ([]LogEntry, error) {
	var entries []LogEntry
	current := start

	for len(entries) < limit {
		c, err := r.Store.ReadCommit(current)
		if err != nil {
			if errors.Is(err, object.ErrObjectNotFound) {
				break
			}
			return nil, fmt.Errorf("log: read commit %s: %w", current, err)
		}
		entries = append(entries, LogEntry{Hash: current, Commit: c})

		if len(c.Parents) == 0 {
			break
		}
		current = c.Parents[0]
	}

	return entries, nil
}
