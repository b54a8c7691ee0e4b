package lua

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultExecutionTimeout bounds one script run.
const DefaultExecutionTimeout = 5 * time.Second

// State wraps a gopher-lua state restricted to safe libraries.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes calls
// from Go.
type State struct {
	L *lua.LState

	mu sync.Mutex

	executionTimeout time.Duration
	out              io.Writer

	closed bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the deadline for each DoFile or DoString call.
// Zero disables it.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.executionTimeout = d
	}
}

// WithOutput redirects the Lua print function.
func WithOutput(w io.Writer) StateOption {
	return func(s *State) {
		s.out = w
	}
}

// NewState creates a new sandboxed Lua state.
func NewState(opts ...StateOption) *State {
	state := &State{
		executionTimeout: DefaultExecutionTimeout,
		out:              os.Stdout,
	}
	for _, opt := range opts {
		opt(state)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	state.L = L

	openSafeLibraries(L)
	state.installSandbox()

	return state
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// io, os, debug and package stay closed.
}

// installSandbox removes loaders that reach the file system and routes
// print to the configured writer.
func (s *State) installSandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		s.L.SetGlobal(name, lua.LNil)
	}

	out := s.out
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		top := L.GetTop()
		parts := make([]string, 0, top)
		for i := 1; i <= top; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		_, _ = fmt.Fprintln(out, strings.Join(parts, "\t"))
		return 0
	}))
}

// LuaState returns the underlying gopher-lua state.
func (s *State) LuaState() *lua.LState {
	return s.L
}

// SetGlobal sets a global value.
func (s *State) SetGlobal(name string, value lua.LValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.L.SetGlobal(name, value)
}

// GetGlobal returns a global value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.L.GetGlobal(name)
}

// DoFile executes a Lua file.
func (s *State) DoFile(ctx context.Context, path string) error {
	return s.do(ctx, func() error {
		return s.L.DoFile(path)
	})
}

// DoString executes a Lua string.
func (s *State) DoString(ctx context.Context, code string) error {
	return s.do(ctx, func() error {
		return s.L.DoString(code)
	})
}

func (s *State) do(ctx context.Context, fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	if s.executionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.executionTimeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	if err := fn(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", ErrExecutionTimeout, err)
		}
		return err
	}
	return nil
}

// IsClosed reports whether Close has been called.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the Lua state.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}
