package sandbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dop251/goja"
)

// asyncMarker flags scripts that declare an asynchronous entry point. Such
// scripts are evaluated and then main() is invoked and its promise settled.
const asyncMarker = "async function main("

// GojaBox runs scripts on a fresh goja runtime per call. Each run gets its
// own global scope, so nothing leaks between executions.
type GojaBox struct {
	logger *slog.Logger
}

func NewGoja(logger *slog.Logger) *GojaBox {
	if logger == nil {
		logger = slog.Default()
	}
	return &GojaBox{logger: logger}
}

func (b *GojaBox) Execute(ctx context.Context, source string, namespace map[string]any) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = &Result{Stdout: fmt.Sprintf("erro ao executar o código: %v", r)}
			err = nil
		}
	}()

	vm := goja.New()

	var stdout strings.Builder
	logFn := func(call goja.FunctionCall) goja.Value {
		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			parts = append(parts, formatValue(arg))
		}
		stdout.WriteString(strings.Join(parts, " "))
		stdout.WriteByte('\n')
		return goja.Undefined()
	}
	console := vm.NewObject()
	console.Set("log", logFn)
	console.Set("error", logFn)
	vm.Set("console", console)
	vm.Set("print", logFn)

	for name, entry := range namespace {
		if fn, ok := entry.(ToolFunc); ok {
			vm.Set(name, bindTool(ctx, vm, fn))
			continue
		}
		vm.Set(name, entry)
	}

	baseline := make(map[string]struct{})
	for _, key := range vm.GlobalObject().Keys() {
		baseline[key] = struct{}{}
	}

	watchdogDone := make(chan struct{})
	defer close(watchdogDone)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-watchdogDone:
		}
	}()

	if _, runErr := vm.RunString(source); runErr != nil {
		return evalFault(runErr)
	}
	if strings.Contains(source, asyncMarker) {
		fault, mainErr := b.settleMain(vm)
		if mainErr != nil {
			return nil, mainErr
		}
		if fault != nil {
			return fault, nil
		}
	}

	global := vm.GlobalObject()
	vars := make(map[string]any)
	for _, key := range global.Keys() {
		if _, ok := baseline[key]; ok {
			continue
		}
		if strings.HasPrefix(key, "_") {
			continue
		}
		v := global.Get(key)
		if v == nil {
			continue
		}
		if _, isFn := goja.AssertFunction(v); isFn {
			continue
		}
		vars[key] = v.Export()
	}
	adoptOutput(global, vars)

	return &Result{Stdout: stdout.String(), Vars: vars}, nil
}

// settleMain invokes the declared entry point when it really is an async
// function. Tools are synchronous underneath, so the promise settles within
// the call. A non-nil fault describes a failed run; a nil fault and nil
// error mean success or a skipped entry point.
func (b *GojaBox) settleMain(vm *goja.Runtime) (*Result, error) {
	mainVal := vm.GlobalObject().Get("main")
	fn, callable := goja.AssertFunction(mainVal)
	if !callable || !isAsyncFunction(vm) {
		b.logger.Warn("async marker present but no async main() declared")
		return nil, nil
	}
	ret, err := fn(goja.Undefined())
	if err != nil {
		return evalFault(err)
	}
	if p, ok := ret.Export().(*goja.Promise); ok {
		switch p.State() {
		case goja.PromiseStateRejected:
			return &Result{Stdout: fmt.Sprintf("erro ao executar o código: %s", p.Result().String())}, nil
		case goja.PromiseStatePending:
			return &Result{Stdout: "erro ao executar o código: main() não terminou"}, nil
		}
	}
	return nil, nil
}

func isAsyncFunction(vm *goja.Runtime) bool {
	probe, err := vm.RunString(`typeof main === "function" && main.constructor.name === "AsyncFunction"`)
	if err != nil {
		return false
	}
	return probe.ToBoolean()
}

// adoptOutput fixes the canonical output binding: the declared output
// variable wins when non-null; otherwise the first non-null alias is adopted
// under the canonical name.
func adoptOutput(global *goja.Object, vars map[string]any) {
	if v := global.Get(OutputVar); isSet(v) {
		vars[OutputVar] = v.Export()
		return
	}
	for _, alias := range outputAliases {
		if v := global.Get(alias); isSet(v) {
			vars[OutputVar] = v.Export()
			return
		}
	}
}

func isSet(v goja.Value) bool {
	return v != nil && !goja.IsUndefined(v) && !goja.IsNull(v)
}

// bindTool exposes a ToolFunc as a sandbox global. Invocation errors are
// thrown as JS exceptions so generated code may catch them.
func bindTool(ctx context.Context, vm *goja.Runtime, fn ToolFunc) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		args := map[string]any{}
		if len(call.Arguments) > 0 {
			if m, ok := call.Arguments[0].Export().(map[string]any); ok {
				args = m
			}
		}
		out, invokeErr := fn(ctx, args)
		if invokeErr != nil {
			panic(vm.NewGoError(invokeErr))
		}
		return vm.ToValue(out)
	}
}

// evalFault renders an evaluation failure as a result, except for context
// interruption, which is a real error.
func evalFault(err error) (*Result, error) {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		if inner, isErr := interrupted.Value().(error); isErr {
			return nil, inner
		}
		return nil, fmt.Errorf("script interrupted: %v", interrupted.Value())
	}
	return &Result{Stdout: fmt.Sprintf("erro ao executar o código: %v", err)}, nil
}

func formatValue(v goja.Value) string {
	exported := v.Export()
	if s, ok := exported.(string); ok {
		return s
	}
	raw, err := json.Marshal(exported)
	if err != nil {
		return v.String()
	}
	return string(raw)
}
