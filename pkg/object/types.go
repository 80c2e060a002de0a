package object

// HashSize is the byte length of a SHA-1 digest.
const HashSize = 20

// Hash is the raw 20-byte SHA-1 digest of an object's encoded form
// (header + payload). The zero value is not a valid object hash.
type Hash [HashSize]byte

// Type identifies the kind of object stored.
type Type string

const (
	TypeBlob   Type = "blob"
	TypeTree   Type = "tree"
	TypeCommit Type = "commit"
)

// Tree entry mode strings, matching Git's canonical encoding.
const (
	ModeDir        = "40000"
	ModeFile       = "100644"
	ModeExecutable = "100755"
	ModeSymlink    = "120000"
)

// Object is the closed Blob/Tree/Commit variant. Exactly one concrete
// type implements it per stored object; the on-disk header tag decides
// which during decoding.
type Object interface {
	Kind() Type
}

// Blob holds raw file data. The payload is opaque and need not be
// valid text.
type Blob struct {
	Data []byte
}

func (*Blob) Kind() Type { return TypeBlob }

// TreeEntry is one entry in a tree object. Name is treated as an
// opaque byte sequence; it is conventionally UTF-8 but never required
// to be.
type TreeEntry struct {
	Mode string
	Name string
	Hash Hash
}

// Tree is an ordered directory listing. Canonical form has entries
// sorted ascending by raw name bytes; the order is part of the
// encoding and therefore part of the hash.
type Tree struct {
	Entries []TreeEntry
}

func (*Tree) Kind() Type { return TypeTree }

// Ident is an author or committer identity with its timestamp. TZ is
// the literal "+HHMM"/"-HHMM" offset string from the wire format.
type Ident struct {
	Name  string
	Email string
	When  int64
	TZ    string
}

// Commit points at a tree and zero or more parent commits, in order.
// GPGSig, when non-empty, holds a detached signature over the commit
// payload with the signature header removed.
type Commit struct {
	Tree      Hash
	Parents   []Hash
	Author    Ident
	Committer Ident
	GPGSig    string
	Message   string
}

func (*Commit) Kind() Type { return TypeCommit }
