// Package plugins is the Quill compiler plugin SDK.
//
// # Overview
//
// This package defines the contract between the Quill compiler and
// external plugin modules, and the loading machinery that turns a
// declared plugin binding into a live plugin instance.
//
// # Plugin System
//
// Plugin Interface: the behavioral contract (BeforeCompile, AfterCompile, Dispose)
// Factory: locates and constructs plugin instances inside a loaded module
// ModuleLoader: injected capability resolving a module path to a Module
// Registry: link-time module registry keyed by load path
// DirLoader: manifest-driven loader resolving implementations through the registry
//
// # Binding Model
//
// A plugin binding is a declarative attribute on the compiling program
// whose type implements the quill.plugins.Binding marker interface.
// The marker type is a package singleton so that matching works by
// type identity, never by name:
//
//	attrType := &compiler.TypeDef{
//		FullName:   "acme.plugins.TraceBinding",
//		Module:     acmeRef,
//		Interfaces: []*compiler.TypeDef{plugins.BindingInterface()},
//	}
//
// # Usage Example
//
// Register an in-process plugin module and load it:
//
//	mod := plugins.NewStaticModule("acme.plugins")
//	mod.RegisterFactory("acme.plugins.TraceBinding", func() plugins.Factory {
//		return &traceFactory{}
//	})
//	plugins.RegisterModule("/lib/acme-plugins", mod)
//
//	loader := plugins.NewCachingLoader(&plugins.RegistryLoader{}, 0)
//	module, err := loader.Load("/lib/acme-plugins")
//
// # Related Packages
//
//   - pkg/compiler: the program representation plugins observe and rewrite
//   - pkg/pipeline: the executor invoking plugin hooks around a compilation
package plugins
