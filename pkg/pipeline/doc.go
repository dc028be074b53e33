// Package pipeline executes compiler plugins around a Quill
// compilation.
//
// # Overview
//
// The host compiler constructs one Executor per compilation, calls
// RunBeforeCompile once with the initial program representation, later
// calls RunAfterCompile once with the final representation and the
// emitted artifact streams, and finally calls Close.
//
// # Execution Model
//
// Everything is synchronous and runs inline on the caller's goroutine,
// in strict discovery order, with no internal parallelism. Plugin
// failures never escape the pipeline: instantiation failures abort
// instantiation and skip the before phase, hook failures abort the
// remaining hooks of that phase, and every failure is reported as a
// single QUILL1001 diagnostic. Disposal runs for every successfully
// instantiated plugin exactly once regardless of which phase failed.
//
// # Usage Example
//
//	exec, err := pipeline.New(&plugins.RegistryLoader{})
//	if err != nil {
//		return err
//	}
//	defer exec.Close()
//
//	program, diags := exec.RunBeforeCompile(program)
//	// ... main compile pass, emitting assembly and symbols ...
//	diags = exec.RunAfterCompile(final, assemblyFile, symbolsFile)
package pipeline
