/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package factory holds the initializer registry and matcher. Go reflection
// exposes neither constructors nor parameter names, so initializers are
// ordinary functions registered against their return type together with
// the member names their arguments are fed from. The matcher then selects,
// per plan, the cheapest fully-satisfiable initializer and compiles a
// direct construction fast path from it.
package factory

import (
	"errors"
	"reflect"
	"sync"
)

var (
	// ErrNilInitializer is returned when a nil initializer is provided.
	ErrNilInitializer = errors.New("mpx(factory): nil initializer provided")
	// ErrNotFunc is returned when the provided initializer is not a function.
	ErrNotFunc = errors.New("mpx(factory): initializer is not a function")
	// ErrNoArgs rejects zero-argument initializers; parameterless
	// construction is the engine's default path, not a factory concern.
	ErrNoArgs = errors.New("mpx(factory): initializer takes no arguments")
	// ErrVariadic is returned for variadic initializers.
	ErrVariadic = errors.New("mpx(factory): variadic initializers are not supported")
	// ErrBadReturn is returned when the initializer does not return a single
	// value, optionally followed by an error.
	ErrBadReturn = errors.New("mpx(factory): initializer must return a value, optionally with an error")
	// ErrArgNames is returned when the argument name count does not match
	// the initializer arity.
	ErrArgNames = errors.New("mpx(factory): argument name count does not match initializer arity")
	// ErrDuplicateArg is returned when two arguments share a name.
	ErrDuplicateArg = errors.New("mpx(factory): duplicate argument name")
)

// Initializer is a parsed constructor function: argument names, argument
// types, and the produced target type. Immutable after Parse.
type Initializer struct {
	fn     reflect.Value
	args   []string
	in     []reflect.Type
	out    reflect.Type
	hasErr bool
}

// Arity returns the number of arguments the initializer requires.
func (in *Initializer) Arity() int { return len(in.in) }

// Target returns the type the initializer produces.
func (in *Initializer) Target() reflect.Type { return in.out }

// Args returns the registered argument names, positionally.
func (in *Initializer) Args() []string {
	out := make([]string, len(in.args))
	copy(out, in.args)
	return out
}

// Parse inspects fn and returns an Initializer if it is a valid
// constructor shape.
//
// Supported shapes:
//   - func(a A, b B, ...) T
//   - func(a A, b B, ...) (T, error)
//
// argNames supplies, positionally, the member names the arguments are fed
// from.
func Parse(fn any, argNames ...string) (*Initializer, error) {
	if fn == nil {
		return nil, ErrNilInitializer
	}
	fv := reflect.ValueOf(fn)
	ft := fv.Type()
	if ft.Kind() != reflect.Func {
		return nil, ErrNotFunc
	}
	if ft.IsVariadic() {
		return nil, ErrVariadic
	}
	if ft.NumIn() == 0 {
		return nil, ErrNoArgs
	}
	switch ft.NumOut() {
	case 1:
	case 2:
		if ft.Out(1) != errType {
			return nil, ErrBadReturn
		}
	default:
		return nil, ErrBadReturn
	}
	if len(argNames) != ft.NumIn() {
		return nil, ErrArgNames
	}
	seen := make(map[string]struct{}, len(argNames))
	for _, n := range argNames {
		if _, dup := seen[n]; dup {
			return nil, ErrDuplicateArg
		}
		seen[n] = struct{}{}
	}

	in := make([]reflect.Type, ft.NumIn())
	for i := range in {
		in[i] = ft.In(i)
	}
	args := make([]string, len(argNames))
	copy(args, argNames)

	return &Initializer{
		fn:     fv,
		args:   args,
		in:     in,
		out:    ft.Out(0),
		hasErr: ft.NumOut() == 2,
	}, nil
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Registry is a process-wide store of initializer candidates per target
// type. Reads are lock-free via sync.Map; the write side is mutex-guarded
// to keep candidate lists and the counter consistent.
type Registry struct {
	// mu guards write-side consistency and counter.
	mu sync.Mutex
	// m maps reflect.Type to []*Initializer.
	m sync.Map
	// count tracks the number of registered initializers.
	count int
}

// NewRegistry returns an empty initializer Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register parses fn and adds it as an initializer candidate for its
// return type. Candidates are kept in registration order, which is also
// the tie-break order during matching.
func (r *Registry) Register(fn any, argNames ...string) error {
	init, err := Parse(fn, argNames...)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var cands []*Initializer
	if v, ok := r.m.Load(init.out); ok {
		prev := v.([]*Initializer)
		// Copy-on-write so concurrent readers never see a list mid-append.
		cands = make([]*Initializer, len(prev), len(prev)+1)
		copy(cands, prev)
	}
	cands = append(cands, init)
	r.m.Store(init.out, cands)
	r.count++
	return nil
}

// Candidates returns the initializer candidates for a target type, in
// registration order. The returned slice must not be mutated.
func (r *Registry) Candidates(t reflect.Type) []*Initializer {
	if t == nil {
		return nil
	}
	if v, ok := r.m.Load(t); ok {
		return v.([]*Initializer)
	}
	return nil
}

// Count returns the number of registered initializers.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered initializers.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = sync.Map{}
	r.count = 0
}

// def is the process-wide default registry used by the package-level
// helpers and the default builder.
var def = NewRegistry()

// Default returns the process-wide initializer registry.
func Default() *Registry { return def }

// Register adds an initializer to the process-wide registry.
func Register(fn any, argNames ...string) error {
	return def.Register(fn, argNames...)
}

// Reset clears the process-wide registry. Intended for tests.
func Reset() { def.Reset() }
