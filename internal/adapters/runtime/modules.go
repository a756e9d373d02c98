package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	goruntime "runtime"
	"slices"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/require"
	"go.trai.ch/coil/internal/core/domain"
)

// ChildProcessModule is the name scripts require to start child processes.
const ChildProcessModule = "child_process"

// sourceLoader returns the module body for path. Registered extensions are
// compiled through their handler; other files are read as they are. A path
// without a file tries the primary extension, then every other registered
// extension.
func (r *Runtime) sourceLoader(ctx context.Context) require.SourceLoader {
	return func(path string) ([]byte, error) {
		info, err := os.Stat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			for _, ext := range r.resolveOrder() {
				if candidate, statErr := os.Stat(path + ext); statErr == nil && !candidate.IsDir() {
					return r.load(ctx, path+ext)
				}
			}
			return nil, require.ModuleFileDoesNotExistError
		case err != nil:
			return nil, err
		case info.IsDir():
			return nil, require.ModuleFileDoesNotExistError
		}
		return r.load(ctx, path)
	}
}

func (r *Runtime) resolveOrder() []string {
	exts := r.handlers.Extensions()
	if r.primary == "" || !slices.Contains(exts, r.primary) {
		return exts
	}
	order := make([]string, 0, len(exts))
	order = append(order, r.primary)
	for _, ext := range exts {
		if ext != r.primary {
			order = append(order, ext)
		}
	}
	return order
}

func (r *Runtime) load(ctx context.Context, path string) ([]byte, error) {
	handler, ok := r.handlers.Lookup(path)
	if !ok {
		return os.ReadFile(path) //nolint:gosec // module paths come from require
	}
	artifact, err := handler(ctx, path)
	if err != nil {
		return nil, err
	}
	return artifact.Code, nil
}

// exitState records the code passed to process.exit, or -1.
type exitState struct {
	value atomic.Int64
}

func (e *exitState) code() int {
	return int(e.value.Load())
}

// installProcess defines the process global.
func installProcess(vm *goja.Runtime, entry string, args []string) *exitState {
	exec, err := os.Executable()
	if err != nil {
		exec = ExecPath
	}

	argv := make([]any, 0, len(args)+2)
	argv = append(argv, exec, entry)
	for _, a := range args {
		argv = append(argv, a)
	}

	env := vm.NewObject()
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			_ = env.Set(k, v)
		}
	}

	state := &exitState{}
	state.value.Store(-1)

	process := vm.NewObject()
	_ = process.Set("argv", argv)
	_ = process.Set("env", env)
	_ = process.Set("execPath", exec)
	_ = process.Set("platform", goruntime.GOOS)
	_ = process.Set("cwd", func() string {
		wd, _ := os.Getwd()
		return wd
	})
	_ = process.Set("exit", func(call goja.FunctionCall) goja.Value {
		code := 0
		if arg := call.Argument(0); !isNullish(arg) {
			code = int(arg.ToInteger())
		}
		state.value.Store(int64(code))
		vm.Interrupt(&domain.ExitStatus{Code: code})
		return goja.Undefined()
	})
	_ = vm.Set("process", process)

	return state
}

// childProcess builds the child_process module. fork and spawnSync run the
// child to completion through the rewriter and the process runner and return
// its exit code.
func (r *Runtime) childProcess(ctx context.Context) require.ModuleLoader {
	return func(vm *goja.Runtime, module *goja.Object) {
		exports := module.Get("exports").ToObject(vm)

		fork := func(call goja.FunctionCall) goja.Value {
			req, err := r.rewriter.Rewrite(spawnRequest(vm, call))
			if err != nil {
				panic(vm.NewGoError(err))
			}
			code, err := r.runner.Run(ctx, req, r.stdout, r.stderr)
			if err != nil {
				panic(vm.NewGoError(err))
			}
			return vm.ToValue(code)
		}
		_ = exports.Set("fork", fork)
		_ = exports.Set("spawnSync", func(call goja.FunctionCall) goja.Value {
			result := vm.NewObject()
			_ = result.Set("status", fork(call))
			return result
		})
	}
}

// spawnRequest reads (path, args?, options?) from a call. A second argument
// that is not an array is taken as the options.
func spawnRequest(vm *goja.Runtime, call goja.FunctionCall) domain.SpawnRequest {
	path := call.Argument(0)
	if isNullish(path) {
		panic(vm.NewTypeError("fork: path must be a string"))
	}
	req := domain.SpawnRequest{Path: path.String(), Args: []string{}}

	argsVal, optsVal := call.Argument(1), call.Argument(2)
	if !isNullish(argsVal) && !isArray(argsVal) {
		argsVal, optsVal = goja.Undefined(), argsVal
	}

	if !isNullish(argsVal) {
		var args []string
		if err := vm.ExportTo(argsVal, &args); err != nil {
			panic(vm.NewTypeError("fork: args must be an array of strings"))
		}
		req.Args = args
	}

	if obj, ok := optsVal.(*goja.Object); ok {
		req.Options = spawnOptions(vm, obj)
	}
	return req
}

func spawnOptions(vm *goja.Runtime, obj *goja.Object) domain.SpawnOptions {
	var opts domain.SpawnOptions
	if cwd := obj.Get("cwd"); !isNullish(cwd) {
		opts.Dir = cwd.String()
	}
	if envVal := obj.Get("env"); !isNullish(envVal) {
		env := envVal.ToObject(vm)
		keys := env.Keys()
		sort.Strings(keys)
		for _, k := range keys {
			opts.Env = append(opts.Env, k+"="+env.Get(k).String())
		}
	}
	return opts
}

func isNullish(v goja.Value) bool {
	return v == nil || goja.IsUndefined(v) || goja.IsNull(v)
}

func isArray(v goja.Value) bool {
	obj, ok := v.(*goja.Object)
	return ok && obj.ClassName() == "Array"
}

// printer routes console output to the runtime writers.
type printer struct {
	stdout io.Writer
	stderr io.Writer
}

func (p *printer) Log(s string) {
	_, _ = fmt.Fprintln(p.stdout, s)
}

func (p *printer) Warn(s string) {
	_, _ = fmt.Fprintln(p.stderr, s)
}

func (p *printer) Error(s string) {
	_, _ = fmt.Fprintln(p.stderr, s)
}
