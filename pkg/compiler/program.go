package compiler

import (
	"fmt"
	"sort"
)

// Program is an immutable snapshot of a compiling program: its source
// units, module reference table, and program-level attributes.
type Program struct {
	name  string
	units map[string]*SourceUnit
	refs  []*ModuleReference
	attrs []Attribute
}

// NewProgram creates a program snapshot from the given units,
// references, and attributes. Later units win when two share a path.
func NewProgram(name string, units []*SourceUnit, refs []*ModuleReference, attrs []Attribute) *Program {
	byPath := make(map[string]*SourceUnit, len(units))
	for _, u := range units {
		byPath[u.Path()] = u
	}
	return &Program{
		name:  name,
		units: byPath,
		refs:  append([]*ModuleReference(nil), refs...),
		attrs: append([]Attribute(nil), attrs...),
	}
}

// Name returns the compiling unit's name.
func (p *Program) Name() string { return p.name }

// Units returns the program's source units sorted by path.
func (p *Program) Units() []*SourceUnit {
	out := make([]*SourceUnit, 0, len(p.units))
	for _, u := range p.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path() < out[j].Path() })
	return out
}

// Unit returns the source unit at path, if present.
func (p *Program) Unit(path string) (*SourceUnit, bool) {
	u, ok := p.units[path]
	return u, ok
}

// References returns the program's module reference table.
func (p *Program) References() []*ModuleReference {
	return append([]*ModuleReference(nil), p.refs...)
}

// Attributes returns the declarative markers attached to the compiling
// unit's metadata.
func (p *Program) Attributes() []Attribute {
	return append([]Attribute(nil), p.attrs...)
}

// ResolveType resolves a qualified type name against the program's
// visible type system, i.e. the exports of every referenced module.
func (p *Program) ResolveType(fullName string) (*TypeDef, bool) {
	for _, ref := range p.refs {
		for _, t := range ref.Exports {
			if t.FullName == fullName {
				return t, true
			}
		}
	}
	return nil, false
}

// WithUnit returns a new snapshot with the unit added, or replacing the
// unit occupying the same path slot.
func (p *Program) WithUnit(unit *SourceUnit) *Program {
	clone := p.clone()
	clone.units[unit.Path()] = unit
	return clone
}

// WithoutUnit returns a new snapshot with the unit at path removed. It
// is a no-op when no such unit exists.
func (p *Program) WithoutUnit(path string) *Program {
	clone := p.clone()
	delete(clone.units, path)
	return clone
}

// WithReference returns a new snapshot with ref appended to the
// reference table. Adding a reference already present is a no-op.
func (p *Program) WithReference(ref *ModuleReference) *Program {
	for _, existing := range p.refs {
		if existing == ref {
			return p
		}
	}
	clone := p.clone()
	clone.refs = append(clone.refs, ref)
	return clone
}

// WithUnitChecksum returns a new snapshot in which the unit at path
// carries the given checksum instead of its natural one. The unit's
// text is unchanged.
func (p *Program) WithUnitChecksum(path string, sum []byte) (*Program, error) {
	u, ok := p.units[path]
	if !ok {
		return nil, fmt.Errorf("no source unit at path %q", path)
	}
	clone := p.clone()
	clone.units[path] = u.withChecksum(sum)
	return clone, nil
}

func (p *Program) clone() *Program {
	units := make(map[string]*SourceUnit, len(p.units))
	for path, u := range p.units {
		units[path] = u
	}
	return &Program{
		name:  p.name,
		units: units,
		refs:  append([]*ModuleReference(nil), p.refs...),
		attrs: append([]Attribute(nil), p.attrs...),
	}
}
