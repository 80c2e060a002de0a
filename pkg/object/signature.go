package object

// CommitSigningPayload returns the canonical bytes that are signed for
// a commit: the full commit payload with the gpgsig header removed.
func CommitSigningPayload(c *Commit) []byte {
	if c == nil {
		return nil
	}
	unsigned := *c
	unsigned.GPGSig = ""
	return MarshalCommit(&unsigned)
}
