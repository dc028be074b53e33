package compiler

// ModuleReference is an entry in a program's reference table. It names
// a referenced module, records the filesystem path the module can be
// loaded from, and lists the type definitions the module exports.
type ModuleReference struct {
	Name    string
	Path    string
	Exports []*TypeDef
}

// TypeDef describes one type visible to the compiling program. Type
// identity is pointer identity: two TypeDefs with the same FullName but
// different addresses are different types. This mirrors how the
// compiler's binder treats types resolved from different references.
type TypeDef struct {
	// FullName is the qualified type name, e.g. "acme.plugins.TraceBinding".
	FullName string

	// Module is the reference that declares this type, nil for types
	// declared by the compiling unit itself.
	Module *ModuleReference

	// Base is the direct base type, if any.
	Base *TypeDef

	// Interfaces lists the directly implemented interfaces.
	Interfaces []*TypeDef
}

// Implements reports whether t is iface or transitively implements it,
// walking the base chain and the interface graph. Matching is by
// pointer identity, never by name.
func (t *TypeDef) Implements(iface *TypeDef) bool {
	if t == nil || iface == nil {
		return false
	}
	if t == iface {
		return true
	}
	for _, impl := range t.Interfaces {
		if impl.Implements(iface) {
			return true
		}
	}
	return t.Base.Implements(iface)
}

// Attribute is an inert declarative marker attached to the compiling
// unit's metadata. It carries the attribute's type; per-attribute
// argument payloads are not modeled here.
type Attribute struct {
	Type *TypeDef
}
