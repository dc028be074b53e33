package plugins

import (
	"io"

	"github.com/quillc/quill/pkg/compiler"
)

// Plugin is the behavioral contract implemented by compiler plugins.
// Hooks report failure through their error return; the pipeline also
// recovers panics and treats them the same way.
type Plugin interface {
	// BeforeCompile runs before the main compile pass. It returns the
	// program the compilation should continue with; returning nil (or
	// the context's current program) means no replacement.
	BeforeCompile(ctx *BeforeContext) (*compiler.Program, error)

	// AfterCompile runs after the compile pass has emitted artifacts.
	// The context's program is final; replacing it has no effect on
	// the compiled output.
	AfterCompile(ctx *AfterContext) error

	// Dispose releases plugin resources. The pipeline calls it exactly
	// once per instance, after both extension points have run.
	Dispose() error
}

// Factory produces a Plugin instance. A loaded module exposes one
// factory constructor per binding type it declares.
type Factory interface {
	CreatePlugin() (Plugin, error)
}

// FactoryConstructor is the default constructor of a factory type.
type FactoryConstructor func() Factory

// Module is a loaded plugin module. Lookup locates the factory type
// declared under the given qualified name.
type Module interface {
	Name() string
	Lookup(fullName string) (FactoryConstructor, bool)
}

// ModuleLoader is the injected capability that resolves a module path
// to a loaded Module.
type ModuleLoader interface {
	Load(path string) (Module, error)
}

// Binding identifies one plugin declared on the compiling unit: the
// qualified name of the binding type and the reference of the module
// declaring it.
type Binding struct {
	TypeName string
	Module   *compiler.ModuleReference
}

// BeforeContext is the execution context passed to BeforeCompile. It
// is shared by every before hook of one compilation; the pipeline
// updates Program with each hook's replacement before invoking the
// next hook.
type BeforeContext struct {
	Program     *compiler.Program
	Diagnostics *DiagnosticBag
}

// AfterContext is the execution context passed to AfterCompile. The
// artifact streams are fully written and still open, positioned
// arbitrarily; a hook wishing to inspect content must seek explicitly.
// The pipeline neither closes nor rewinds them.
type AfterContext struct {
	Program     *compiler.Program
	Diagnostics *DiagnosticBag
	Assembly    io.ReadSeeker
	Symbols     io.ReadSeeker
}

// ValidationError represents a manifest validation error
type ValidationError struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // error, warning
}
