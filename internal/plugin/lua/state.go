package lua

import (
	"context"
	"errors"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultExecutionTimeout bounds each top-level script call.
const DefaultExecutionTimeout = 5 * time.Second

// State wraps a gopher-lua state restricted to safe libraries.
//
// gopher-lua's LState is not goroutine-safe, and neither is State. Calls
// may nest: a Go function invoked from Lua can call back into the same
// State. The timeout covers the outermost call only.
type State struct {
	L *lua.LState

	timeout time.Duration
	print   func(string)
	depth   int
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout bounds each top-level call. Zero disables the limit.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		if d >= 0 {
			s.timeout = d
		}
	}
}

// WithPrint redirects the print function.
func WithPrint(fn func(string)) StateOption {
	return func(s *State) {
		s.print = fn
	}
}

// NewState creates a sandboxed Lua state.
func NewState(opts ...StateOption) *State {
	s := &State{
		timeout: DefaultExecutionTimeout,
		print:   func(string) {},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	s.restrict()
	return s
}

// openSafeLibraries opens the libraries without file, process or module
// access.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// restrict removes globals that load code and replaces print.
func (s *State) restrict() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		out := make([]byte, 0, 64)
		for i := 1; i <= n; i++ {
			if i > 1 {
				out = append(out, '\t')
			}
			out = append(out, L.ToStringMeta(L.Get(i)).String()...)
		}
		s.print(string(out))
		return 0
	}))
}

// DoString executes a chunk of Lua source.
func (s *State) DoString(code string) error {
	return s.run(func() error {
		return s.L.DoString(code)
	})
}

// DoFile executes the script at path.
func (s *State) DoFile(path string) error {
	return s.run(func() error {
		return s.L.DoFile(path)
	})
}

// Call invokes fn with args and returns its results.
func (s *State) Call(fn lua.LValue, args ...lua.LValue) ([]lua.LValue, error) {
	f, ok := fn.(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotFunction, fn.Type())
	}

	var results []lua.LValue
	err := s.run(func() error {
		top := s.L.GetTop()
		s.L.Push(f)
		for _, arg := range args {
			s.L.Push(arg)
		}
		if err := s.L.PCall(len(args), lua.MultRet, nil); err != nil {
			return err
		}
		n := s.L.GetTop() - top
		results = make([]lua.LValue, n)
		for i := range n {
			results[i] = s.L.Get(top + i + 1)
		}
		s.L.Pop(n)
		return nil
	})
	return results, err
}

// run executes fn with panic recovery, arming the deadline for the
// outermost call.
func (s *State) run(fn func() error) (err error) {
	if s.closed {
		return ErrStateClosed
	}
	if s.depth == 0 && s.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		s.L.SetContext(ctx)
		defer func() {
			if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				err = fmt.Errorf("%w after %s", ErrExecutionTimeout, s.timeout)
			}
			s.L.RemoveContext()
			cancel()
		}()
	}

	s.depth++
	defer func() { s.depth-- }()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// SetGlobal sets a global variable.
func (s *State) SetGlobal(name string, value lua.LValue) {
	if s.closed {
		return
	}
	s.L.SetGlobal(name, value)
}

// GetGlobal returns a global variable, or nil once closed.
func (s *State) GetGlobal(name string) lua.LValue {
	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// RegisterModule installs funcs as the global table name.
func (s *State) RegisterModule(name string, funcs map[string]lua.LGFunction) {
	if s.closed {
		return
	}
	s.L.SetGlobal(name, s.L.SetFuncs(s.L.NewTable(), funcs))
}

// Close releases the state. Later calls return ErrStateClosed.
func (s *State) Close() {
	if s.closed {
		return
	}
	s.L.Close()
	s.closed = true
}
