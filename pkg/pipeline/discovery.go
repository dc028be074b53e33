package pipeline

import (
	"github.com/quillc/quill/pkg/compiler"
	"github.com/quillc/quill/pkg/plugins"
)

// Discover returns the plugin bindings declared on the compiling unit,
// in declaration order, or nil when it declares none.
//
// The marker interface is resolved against the program's visible type
// system. When the compiling unit does not reference the plugin
// framework itself, resolution retries against a derived representation
// that adds the framework's own reference; the derived representation
// is used only for this lookup and the original stays untouched. A
// marker that still does not resolve means the unit cannot declare
// bindings, which is not an error.
func Discover(program *compiler.Program) []plugins.Binding {
	marker, ok := program.ResolveType(plugins.BindingInterfaceName)
	if !ok {
		derived := program.WithReference(plugins.FrameworkReference())
		marker, ok = derived.ResolveType(plugins.BindingInterfaceName)
		if !ok {
			return nil
		}
	}

	var bindings []plugins.Binding
	for _, attr := range program.Attributes() {
		if attr.Type == nil || !attr.Type.Implements(marker) {
			continue
		}
		bindings = append(bindings, plugins.Binding{
			TypeName: attr.Type.FullName,
			Module:   attr.Type.Module,
		})
	}

	return bindings
}
