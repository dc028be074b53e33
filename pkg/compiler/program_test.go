package compiler

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewSourceUnit tests that a unit's checksum matches its text
func TestNewSourceUnit(t *testing.T) {
	unit := NewSourceUnit("Foo.qll", "fn main() {}")

	assert.Equal(t, "Foo.qll", unit.Path())
	assert.Equal(t, "fn main() {}", unit.Text())

	want := sha256.Sum256([]byte("fn main() {}"))
	assert.Equal(t, want[:], unit.Checksum())
}

// TestSourceUnit_ChecksumCopy tests that mutating a returned checksum
// does not affect the unit
func TestSourceUnit_ChecksumCopy(t *testing.T) {
	unit := NewSourceUnit("Foo.qll", "text")

	sum := unit.Checksum()
	sum[0] ^= 0xff

	assert.NotEqual(t, sum, unit.Checksum())
}

// TestProgram_WithUnit tests that replacing a unit produces a new
// snapshot and leaves the original valid
func TestProgram_WithUnit(t *testing.T) {
	original := NewProgram("app", []*SourceUnit{
		NewSourceUnit("Foo.qll", "original"),
	}, nil, nil)

	replaced := original.WithUnit(NewSourceUnit("Foo.qll", "rewritten"))

	origUnit, ok := original.Unit("Foo.qll")
	require.True(t, ok)
	assert.Equal(t, "original", origUnit.Text())

	newUnit, ok := replaced.Unit("Foo.qll")
	require.True(t, ok)
	assert.Equal(t, "rewritten", newUnit.Text())
}

// TestProgram_WithoutUnit tests unit removal
func TestProgram_WithoutUnit(t *testing.T) {
	program := NewProgram("app", []*SourceUnit{
		NewSourceUnit("Foo.qll", "a"),
		NewSourceUnit("Bar.qll", "b"),
	}, nil, nil)

	trimmed := program.WithoutUnit("Foo.qll")

	_, ok := trimmed.Unit("Foo.qll")
	assert.False(t, ok)
	_, ok = program.Unit("Foo.qll")
	assert.True(t, ok)
	assert.Len(t, trimmed.Units(), 1)
}

// TestProgram_Units tests deterministic ordering by path
func TestProgram_Units(t *testing.T) {
	program := NewProgram("app", []*SourceUnit{
		NewSourceUnit("b.qll", ""),
		NewSourceUnit("a.qll", ""),
		NewSourceUnit("c.qll", ""),
	}, nil, nil)

	units := program.Units()
	require.Len(t, units, 3)
	assert.Equal(t, "a.qll", units[0].Path())
	assert.Equal(t, "b.qll", units[1].Path())
	assert.Equal(t, "c.qll", units[2].Path())
}

// TestProgram_ResolveType tests resolution against referenced exports
func TestProgram_ResolveType(t *testing.T) {
	marker := &TypeDef{FullName: "acme.Marker"}
	ref := &ModuleReference{Name: "acme", Path: "/lib/acme", Exports: []*TypeDef{marker}}
	marker.Module = ref

	program := NewProgram("app", nil, []*ModuleReference{ref}, nil)

	resolved, ok := program.ResolveType("acme.Marker")
	require.True(t, ok)
	assert.Same(t, marker, resolved)

	_, ok = program.ResolveType("acme.Missing")
	assert.False(t, ok)
}

// TestProgram_WithReference tests derived snapshots and no-op adds
func TestProgram_WithReference(t *testing.T) {
	marker := &TypeDef{FullName: "acme.Marker"}
	ref := &ModuleReference{Name: "acme", Exports: []*TypeDef{marker}}

	program := NewProgram("app", nil, nil, nil)
	derived := program.WithReference(ref)

	_, ok := program.ResolveType("acme.Marker")
	assert.False(t, ok, "original program should be untouched")

	resolved, ok := derived.ResolveType("acme.Marker")
	require.True(t, ok)
	assert.Same(t, marker, resolved)

	// Adding the same reference again returns the same snapshot.
	assert.Same(t, derived, derived.WithReference(ref))
}

// TestProgram_WithUnitChecksum tests checksum override
func TestProgram_WithUnitChecksum(t *testing.T) {
	original := NewSourceUnit("Foo.qll", "original")
	program := NewProgram("app", []*SourceUnit{
		NewSourceUnit("Foo.qll", "rewritten"),
	}, nil, nil)

	retro, err := program.WithUnitChecksum("Foo.qll", original.Checksum())
	require.NoError(t, err)

	unit, ok := retro.Unit("Foo.qll")
	require.True(t, ok)
	assert.Equal(t, "rewritten", unit.Text())
	assert.Equal(t, original.Checksum(), unit.Checksum())

	// The pre-override snapshot keeps its natural checksum.
	unit, ok = program.Unit("Foo.qll")
	require.True(t, ok)
	assert.NotEqual(t, original.Checksum(), unit.Checksum())
}

// TestProgram_WithUnitChecksum_MissingPath tests the error path
func TestProgram_WithUnitChecksum_MissingPath(t *testing.T) {
	program := NewProgram("app", nil, nil, nil)

	_, err := program.WithUnitChecksum("Foo.qll", make([]byte, sha256.Size))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Foo.qll")
}

// TestTypeDef_Implements tests transitive, identity-based matching
func TestTypeDef_Implements(t *testing.T) {
	marker := &TypeDef{FullName: "quill.plugins.Binding"}
	direct := &TypeDef{FullName: "acme.Direct", Interfaces: []*TypeDef{marker}}
	mid := &TypeDef{FullName: "acme.Mid", Interfaces: []*TypeDef{direct}}
	viaBase := &TypeDef{FullName: "acme.Derived", Base: direct}
	unrelated := &TypeDef{FullName: "acme.Plain"}

	assert.True(t, marker.Implements(marker))
	assert.True(t, direct.Implements(marker))
	assert.True(t, mid.Implements(marker))
	assert.True(t, viaBase.Implements(marker))
	assert.False(t, unrelated.Implements(marker))
}

// TestTypeDef_Implements_IdentityNotName tests that a same-named type
// from a different reference does not match
func TestTypeDef_Implements_IdentityNotName(t *testing.T) {
	marker := &TypeDef{FullName: "quill.plugins.Binding"}
	decoy := &TypeDef{FullName: "quill.plugins.Binding"}
	attr := &TypeDef{FullName: "acme.Attr", Interfaces: []*TypeDef{decoy}}

	assert.False(t, attr.Implements(marker))
	assert.True(t, attr.Implements(decoy))
}

// TestTypeDef_Implements_Nil tests nil receivers and arguments
func TestTypeDef_Implements_Nil(t *testing.T) {
	marker := &TypeDef{FullName: "quill.plugins.Binding"}

	var none *TypeDef
	assert.False(t, none.Implements(marker))
	assert.False(t, marker.Implements(nil))
}
