package compiler

import "crypto/sha256"

// SourceUnit is one named piece of source text plus its content
// checksum. Units are immutable; replacing a unit's text produces a new
// SourceUnit occupying the same path slot.
type SourceUnit struct {
	path     string
	text     string
	checksum [sha256.Size]byte
}

// NewSourceUnit creates a source unit whose checksum is the SHA-256 of
// its text.
func NewSourceUnit(path, text string) *SourceUnit {
	return &SourceUnit{
		path:     path,
		text:     text,
		checksum: sha256.Sum256([]byte(text)),
	}
}

// Path returns the unit's file path.
func (u *SourceUnit) Path() string { return u.path }

// Text returns the unit's source text.
func (u *SourceUnit) Text() string { return u.text }

// Checksum returns a copy of the unit's content checksum. The checksum
// normally matches the text, but the plugin pipeline may retrofit a
// rewritten unit with the checksum of the text it replaced so that
// debug positions keep resolving against the originally compiled
// source.
func (u *SourceUnit) Checksum() []byte {
	sum := make([]byte, len(u.checksum))
	copy(sum, u.checksum[:])
	return sum
}

// withChecksum returns a copy of the unit carrying the given checksum
// instead of the natural one.
func (u *SourceUnit) withChecksum(sum []byte) *SourceUnit {
	clone := *u
	copy(clone.checksum[:], sum)
	return &clone
}
