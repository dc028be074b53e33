package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/quillc/quill/pkg/compiler"
	"github.com/quillc/quill/pkg/plugins"
)

// instance pairs a live plugin with the qualified name of the binding
// that produced it.
type instance struct {
	plugin   plugins.Plugin
	typeName string
}

// Executor runs the plugin pipeline for one compilation. It owns the
// diagnostics list and every plugin instance it creates. Executors are
// single-use and not safe for concurrent use; the host compiler drives
// them sequentially.
type Executor struct {
	loader  plugins.ModuleLoader
	log     *logrus.Logger
	metrics *Metrics

	compilationID string
	diags         *plugins.DiagnosticBag
	instances     []instance
	closed        bool
}

// Option configures an Executor
type Option func(*Executor)

// WithLogger sets the executor's logger
func WithLogger(log *logrus.Logger) Option {
	return func(e *Executor) {
		if log != nil {
			e.log = log
		}
	}
}

// WithMetrics attaches Prometheus metrics to the executor
func WithMetrics(metrics *Metrics) Option {
	return func(e *Executor) {
		e.metrics = metrics
	}
}

// New creates an executor for one compilation. The loader is wrapped so
// that each distinct module path is loaded once.
func New(loader plugins.ModuleLoader, opts ...Option) (*Executor, error) {
	if loader == nil {
		return nil, fmt.Errorf("module loader is required")
	}

	cached, err := plugins.NewCachingLoader(loader, 0)
	if err != nil {
		return nil, err
	}

	e := &Executor{
		loader:        cached,
		log:           logrus.New(),
		compilationID: uuid.NewString(),
		diags:         plugins.NewDiagnosticBag(),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// RunBeforeCompile is the pre-compile extension point. It discovers the
// bindings declared on program, instantiates their plugins, and invokes
// every before hook in discovery order. The returned representation is
// the one the compilation should continue with; the returned
// diagnostics belong to this phase only.
func (e *Executor) RunBeforeCompile(program *compiler.Program) (*compiler.Program, []plugins.Diagnostic) {
	e.diags.Clear()

	bindings := Discover(program)
	if len(bindings) == 0 {
		e.logger().Debug("no plugin bindings declared")
		return program, e.diags.Items()
	}

	if aborted := e.instantiate(bindings); aborted {
		// A failed instantiation suppresses the whole before phase,
		// including hooks of plugins that did instantiate.
		return program, e.diags.Items()
	}

	// Checksums of every unit present before any hook runs, keyed by
	// path. Used to retrofit rewritten units afterwards.
	original := make(map[string][]byte, len(program.Units()))
	for _, unit := range program.Units() {
		original[unit.Path()] = unit.Checksum()
	}

	ctx := &plugins.BeforeContext{Program: program, Diagnostics: e.diags}
	for _, inst := range e.instances {
		start := time.Now()
		next, err := invokeBefore(inst.plugin, ctx)
		e.metrics.observeHook("before", err, time.Since(start))

		if err != nil {
			e.addDiagnostic(plugins.NewPluginException(runtimeTypeName(inst.plugin), err))
			e.logger().WithField("plugin", runtimeTypeName(inst.plugin)).
				WithError(err).Warn("before-compile hook failed, skipping remaining plugins")
			break
		}
		if next != nil {
			ctx.Program = next
		}
	}

	return e.retrofitChecksums(ctx.Program, original), e.diags.Items()
}

// RunAfterCompile is the post-compile extension point. The program is
// final; assembly and symbols are the emitted artifact streams, fully
// written and still open at an arbitrary position. The pipeline never
// closes or rewinds them.
func (e *Executor) RunAfterCompile(program *compiler.Program, assembly, symbols io.ReadSeeker) []plugins.Diagnostic {
	// Fixed at pre-compile time: no instances, no after phase.
	if len(e.instances) == 0 {
		return nil
	}

	e.diags.Clear()

	ctx := &plugins.AfterContext{
		Program:     program,
		Diagnostics: e.diags,
		Assembly:    assembly,
		Symbols:     symbols,
	}
	for _, inst := range e.instances {
		start := time.Now()
		err := invokeAfter(inst.plugin, ctx)
		e.metrics.observeHook("after", err, time.Since(start))

		if err != nil {
			e.addDiagnostic(plugins.NewPluginException(runtimeTypeName(inst.plugin), err))
			e.logger().WithField("plugin", runtimeTypeName(inst.plugin)).
				WithError(err).Warn("after-compile hook failed, skipping remaining plugins")
			break
		}
	}

	return e.diags.Items()
}

// Close disposes every successfully instantiated plugin exactly once,
// in discovery order. A failing disposal is logged and does not stop
// the remaining disposals. Close is idempotent.
func (e *Executor) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	for _, inst := range e.instances {
		if err := invokeDispose(inst.plugin); err != nil {
			e.logger().WithField("plugin", runtimeTypeName(inst.plugin)).
				WithError(err).Warn("plugin dispose failed")
		}
	}
	e.instances = nil

	return nil
}

// instantiate turns bindings into live plugins in discovery order.
// Fail-fast: the first failure records one diagnostic tagged with the
// binding's qualified type name and abandons the remaining bindings.
// Instances created before the failure are kept; they still get the
// after phase and disposal.
func (e *Executor) instantiate(bindings []plugins.Binding) (aborted bool) {
	for _, binding := range bindings {
		plugin, err := e.instantiateOne(binding)
		if err != nil {
			e.addDiagnostic(plugins.NewPluginException(binding.TypeName, err))
			e.logger().WithField("binding", binding.TypeName).
				WithError(err).Warn("plugin instantiation failed, abandoning remaining bindings")
			return true
		}

		e.instances = append(e.instances, instance{plugin: plugin, typeName: binding.TypeName})
		e.metrics.observeInstance()
	}

	return false
}

func (e *Executor) instantiateOne(binding plugins.Binding) (plugins.Plugin, error) {
	if binding.Module == nil {
		return nil, fmt.Errorf("binding %s has no containing module reference", binding.TypeName)
	}

	module, err := e.loader.Load(binding.Module.Path)
	e.metrics.observeLoad(err)
	if err != nil {
		return nil, fmt.Errorf("failed to load module %s: %w", binding.Module.Path, err)
	}

	return constructPlugin(module, binding.TypeName)
}

// retrofitChecksums forces every result unit whose path existed before
// the hooks ran back to its original checksum, so a debugger can still
// correlate positions in rewritten-but-path-stable source against the
// originally compiled text. Units introduced by a plugin keep their
// natural checksum.
func (e *Executor) retrofitChecksums(result *compiler.Program, original map[string][]byte) *compiler.Program {
	for path, sum := range original {
		unit, ok := result.Unit(path)
		if !ok || bytes.Equal(unit.Checksum(), sum) {
			continue
		}

		retro, err := result.WithUnitChecksum(path, sum)
		if err != nil {
			continue
		}
		result = retro
		e.logger().WithField("path", path).Debug("retrofitted source unit checksum")
	}

	return result
}

func (e *Executor) addDiagnostic(diag plugins.Diagnostic) {
	e.diags.Add(diag)
	e.metrics.observeDiagnostic()
}

func (e *Executor) logger() *logrus.Entry {
	return e.log.WithField("compilation", e.compilationID)
}
