package plugins

import "github.com/quillc/quill/pkg/compiler"

// BindingInterfaceName is the qualified name of the marker interface a
// binding attribute type must implement to count as a plugin binding.
const BindingInterfaceName = "quill.plugins.Binding"

// FrameworkModuleName is the name of the plugin framework's own module.
const FrameworkModuleName = "quill.plugins"

// bindingInterface and frameworkRef are package singletons. Binding
// matching is by type identity, so every binding attribute type and
// every discovery lookup must end up at these exact definitions.
var (
	bindingInterface = &compiler.TypeDef{FullName: BindingInterfaceName}

	frameworkRef = &compiler.ModuleReference{
		Name:    FrameworkModuleName,
		Exports: []*compiler.TypeDef{bindingInterface},
	}
)

func init() {
	bindingInterface.Module = frameworkRef
}

// BindingInterface returns the marker interface type. Plugin modules
// list it in their binding attribute type's Interfaces.
func BindingInterface() *compiler.TypeDef { return bindingInterface }

// FrameworkReference returns the plugin framework's own module
// reference. Discovery adds it to a derived representation when the
// compiling unit does not reference the framework itself.
func FrameworkReference() *compiler.ModuleReference { return frameworkRef }
