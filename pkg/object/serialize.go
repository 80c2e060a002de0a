package object

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Envelope
// ---------------------------------------------------------------------------

// Encode produces the canonical byte stream "<type> <len>\0<payload>"
// for any object. These are the exact bytes the hash covers and the
// store compresses.
func Encode(o Object) []byte {
	payload := Payload(o)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %d\x00", o.Kind(), len(payload))
	buf.Write(payload)
	return buf.Bytes()
}

// Payload serializes an object's payload without the envelope header.
func Payload(o Object) []byte {
	switch v := o.(type) {
	case *Blob:
		return MarshalBlob(v)
	case *Tree:
		return MarshalTree(v)
	case *Commit:
		return MarshalCommit(v)
	default:
		panic(fmt.Sprintf("object: unknown concrete type %T", o))
	}
}

// Decode parses a canonical encoded stream back into an object. The
// type tag up to the first space selects the variant; the declared
// decimal length is authoritative and must match the remaining byte
// count exactly.
func Decode(data []byte) (Object, error) {
	nul := bytes.IndexByte(data, 0)
	if nul < 0 {
		return nil, fmt.Errorf("decode: %w: no NUL after header", ErrMalformedObject)
	}
	header := string(data[:nul])
	payload := data[nul+1:]

	tag, lenStr, ok := strings.Cut(header, " ")
	if !ok {
		return nil, fmt.Errorf("decode: %w: header %q has no length", ErrMalformedObject, header)
	}
	declared, err := strconv.Atoi(lenStr)
	if err != nil || declared < 0 {
		return nil, fmt.Errorf("decode: %w: bad length %q", ErrMalformedObject, lenStr)
	}
	if declared != len(payload) {
		return nil, fmt.Errorf("decode: %w: length mismatch (header=%d, actual=%d)", ErrMalformedObject, declared, len(payload))
	}

	switch Type(tag) {
	case TypeBlob:
		return UnmarshalBlob(payload)
	case TypeTree:
		return UnmarshalTree(payload)
	case TypeCommit:
		return UnmarshalCommit(payload)
	default:
		return nil, fmt.Errorf("decode: %w: %q", ErrUnsupportedType, tag)
	}
}

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// MarshalBlob serializes a Blob to raw bytes (identity).
func MarshalBlob(b *Blob) []byte {
	out := make([]byte, len(b.Data))
	copy(out, b.Data)
	return out
}

// UnmarshalBlob deserializes raw bytes into a Blob.
func UnmarshalBlob(data []byte) (*Blob, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return &Blob{Data: out}, nil
}

// ---------------------------------------------------------------------------
// Tree
// ---------------------------------------------------------------------------

// Sort orders entries ascending by raw name bytes. The order is part
// of the canonical encoding, so it must be applied before hashing.
// Names are compared without git's trailing-slash convention for
// directories; one deterministic total order, applied everywhere.
func (t *Tree) Sort() {
	sort.Slice(t.Entries, func(i, j int) bool {
		return t.Entries[i].Name < t.Entries[j].Name
	})
}

// MarshalTree serializes a Tree. Entries are sorted by name first so
// two trees with the same entry set always produce identical bytes.
// Each entry is "<mode> <name>\0" followed by the raw 20 hash bytes
// (binary, never hex).
func MarshalTree(t *Tree) []byte {
	sorted := &Tree{Entries: make([]TreeEntry, len(t.Entries))}
	copy(sorted.Entries, t.Entries)
	sorted.Sort()

	var buf bytes.Buffer
	for _, e := range sorted.Entries {
		mode := e.Mode
		if mode == "" {
			mode = ModeFile
		}
		buf.WriteString(mode)
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte(0)
		buf.Write(e.Hash[:])
	}
	return buf.Bytes()
}

// UnmarshalTree parses a Tree payload. Mode strings are accepted with
// or without leading zero padding ("040000" and "40000" are the same
// mode); exactly HashSize raw bytes follow each name's NUL.
func UnmarshalTree(data []byte) (*Tree, error) {
	t := &Tree{}
	rest := data
	for len(rest) > 0 {
		sp := bytes.IndexByte(rest, ' ')
		if sp < 0 {
			return nil, fmt.Errorf("unmarshal tree: %w: entry missing mode separator", ErrMalformedObject)
		}
		mode, err := canonicalTreeMode(string(rest[:sp]))
		if err != nil {
			return nil, fmt.Errorf("unmarshal tree: %w", err)
		}
		rest = rest[sp+1:]

		nul := bytes.IndexByte(rest, 0)
		if nul < 0 {
			return nil, fmt.Errorf("unmarshal tree: %w: entry name missing NUL", ErrMalformedObject)
		}
		name := string(rest[:nul])
		rest = rest[nul+1:]

		if len(rest) < HashSize {
			return nil, fmt.Errorf("unmarshal tree: %w: truncated hash for entry %q", ErrMalformedObject, name)
		}
		var h Hash
		copy(h[:], rest[:HashSize])
		rest = rest[HashSize:]

		t.Entries = append(t.Entries, TreeEntry{Mode: mode, Name: name, Hash: h})
	}
	return t, nil
}

// canonicalTreeMode maps a wire mode string (possibly zero-padded) to
// its canonical form.
func canonicalTreeMode(mode string) (string, error) {
	trimmed := strings.TrimLeft(mode, "0")
	switch trimmed {
	case ModeDir, ModeFile, ModeExecutable, ModeSymlink:
		return trimmed, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMode, mode)
	}
}

// ---------------------------------------------------------------------------
// Commit
// ---------------------------------------------------------------------------

// MarshalCommit serializes a Commit:
//
//	tree <hex>
//	parent <hex>     (one per parent, in order)
//	author Name <email> seconds +HHMM
//	committer Name <email> seconds +HHMM
//	gpgsig <sig>     (optional; continuation lines lead with a space)
//
//	message
//
// The committer falls back to the author when unset, and the message
// always ends with a newline.
func MarshalCommit(c *Commit) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", c.Tree.Hex())
	for _, p := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", p.Hex())
	}

	committer := c.Committer
	if committer == (Ident{}) {
		committer = c.Author
	}
	fmt.Fprintf(&buf, "author %s\n", formatIdent(c.Author))
	fmt.Fprintf(&buf, "committer %s\n", formatIdent(committer))

	if c.GPGSig != "" {
		sigLines := strings.Split(strings.TrimRight(c.GPGSig, "\n"), "\n")
		fmt.Fprintf(&buf, "gpgsig %s\n", sigLines[0])
		for _, line := range sigLines[1:] {
			fmt.Fprintf(&buf, " %s\n", line)
		}
	}

	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	if !strings.HasSuffix(c.Message, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// UnmarshalCommit parses a Commit payload. Unknown header keys fail;
// the message is everything after the first blank line, verbatim.
func UnmarshalCommit(data []byte) (*Commit, error) {
	sep := bytes.Index(data, []byte("\n\n"))
	if sep < 0 {
		return nil, fmt.Errorf("unmarshal commit: %w: missing header/message separator", ErrMalformedObject)
	}
	header := string(data[:sep])
	message := string(data[sep+2:])

	c := &Commit{Message: message}
	lines := strings.Split(header, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("unmarshal commit: %w: malformed header line %q", ErrMalformedObject, line)
		}
		switch key {
		case "tree":
			h, err := ParseHash(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: tree: %w", err)
			}
			c.Tree = h
		case "parent":
			h, err := ParseHash(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: parent: %w", err)
			}
			c.Parents = append(c.Parents, h)
		case "author":
			ident, err := parseIdent(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: author: %w", err)
			}
			c.Author = ident
		case "committer":
			ident, err := parseIdent(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: committer: %w", err)
			}
			c.Committer = ident
		case "gpgsig":
			sig := []string{val}
			for i+1 < len(lines) && strings.HasPrefix(lines[i+1], " ") {
				i++
				sig = append(sig, lines[i][1:])
			}
			c.GPGSig = strings.Join(sig, "\n")
		default:
			return nil, fmt.Errorf("unmarshal commit: %w: unknown header key %q", ErrMalformedObject, key)
		}
	}
	return c, nil
}

// formatIdent renders "Name <email> seconds +HHMM". A missing TZ
// defaults to UTC.
func formatIdent(id Ident) string {
	tz := id.TZ
	if tz == "" {
		tz = "+0000"
	}
	return fmt.Sprintf("%s <%s> %d %s", id.Name, id.Email, id.When, tz)
}

// parseIdent parses the "Name <email> seconds +HHMM" form. The email
// framing follows what git itself writes; a line without it is
// malformed.
func parseIdent(s string) (Ident, error) {
	open := strings.IndexByte(s, '<')
	end := strings.IndexByte(s, '>')
	if open < 0 || end < open {
		return Ident{}, fmt.Errorf("%w: identity %q missing <email>", ErrMalformedObject, s)
	}

	id := Ident{
		Name:  strings.TrimRight(s[:open], " "),
		Email: s[open+1 : end],
	}

	fields := strings.Fields(s[end+1:])
	if len(fields) != 2 {
		return Ident{}, fmt.Errorf("%w: identity %q missing timestamp", ErrMalformedObject, s)
	}
	when, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Ident{}, fmt.Errorf("%w: identity timestamp %q: %v", ErrMalformedObject, fields[0], err)
	}
	id.When = when
	id.TZ = fields[1]
	return id, nil
}
