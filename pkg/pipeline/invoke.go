package pipeline

import (
	"fmt"

	"github.com/quillc/quill/pkg/compiler"
	"github.com/quillc/quill/pkg/plugins"
)

// Plugin code is third-party: every call into it converts a panic into
// an error so that failures surface as diagnostics instead of taking
// down the host compiler.

func recoverError(r any) error {
	if r == nil {
		return nil
	}
	return fmt.Errorf("panic: %v", r)
}

func constructPlugin(module plugins.Module, typeName string) (plugin plugins.Plugin, err error) {
	defer func() {
		if rerr := recoverError(recover()); rerr != nil {
			plugin, err = nil, rerr
		}
	}()

	ctor, ok := module.Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("factory type %s not found in module %s", typeName, module.Name())
	}

	factory := ctor()
	if factory == nil {
		return nil, fmt.Errorf("factory constructor for %s returned nil", typeName)
	}

	plugin, err = factory.CreatePlugin()
	if err == nil && plugin == nil {
		err = fmt.Errorf("factory for %s produced nil plugin", typeName)
	}
	return plugin, err
}

func invokeBefore(plugin plugins.Plugin, ctx *plugins.BeforeContext) (next *compiler.Program, err error) {
	defer func() {
		if rerr := recoverError(recover()); rerr != nil {
			next, err = nil, rerr
		}
	}()
	return plugin.BeforeCompile(ctx)
}

func invokeAfter(plugin plugins.Plugin, ctx *plugins.AfterContext) (err error) {
	defer func() {
		if rerr := recoverError(recover()); rerr != nil {
			err = rerr
		}
	}()
	return plugin.AfterCompile(ctx)
}

func invokeDispose(plugin plugins.Plugin) (err error) {
	defer func() {
		if rerr := recoverError(recover()); rerr != nil {
			err = rerr
		}
	}()
	return plugin.Dispose()
}

// runtimeTypeName is the name hook-failure diagnostics are tagged with.
func runtimeTypeName(plugin plugins.Plugin) string {
	return fmt.Sprintf("%T", plugin)
}
