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

package mpx

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/mpx/accessor"
	"dirpx.dev/mpx/apis"
	"dirpx.dev/mpx/builder"
	"dirpx.dev/mpx/config"
	"dirpx.dev/mpx/member"
)

// init initializes the global mpx state.
func init() {
	// Initialize state with default cfg, cache, and eng.
	s := &state{cfg: config.Default()}
	b := builder.New()
	s.cache = b.BuildCache(s.cfg, nil, nil)
	s.eng = b.BuildEngine(s.cfg, s.cache, nil, nil)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilCache is returned when a builder returns a nil cache.
	ErrNilCache = errors.New("mpx: builder returned nil cache")
	// ErrNilEngine is returned when a builder returns a nil engine.
	ErrNilEngine = errors.New("mpx: builder returned nil engine")
	// ErrMemberMissing is returned by Update when the named member does not
	// exist on the target type.
	ErrMemberMissing = errors.New("mpx: no such member")
	// ErrMemberType is returned by Update when the value is not assignable
	// to the named member.
	ErrMemberType = errors.New("mpx: value not assignable to member")
	// ErrInvalidTarget is returned by Update when the target is not a
	// usable non-nil pointer to a struct.
	ErrInvalidTarget = errors.New("mpx: target must be a non-nil pointer to a struct")
)

// Build constructs a fresh T from src using the global mpx engine.
// It layers the given options over the global mpx configuration.
// An absent source yields the zero T with a nil error.
// This is a convenience wrapper around the global eng.
func Build[T any](src any, opts ...config.Option) (T, error) {
	s := st.Load()
	return buildAs[T](s.eng.Build(src, baseOf[T](), config.Apply(s.cfg, opts...)))
}

// BuildContext is the suspension-capable twin of Build.
// This is a convenience wrapper around the global eng.
func BuildContext[T any](ctx context.Context, src any, opts ...config.Option) (T, error) {
	s := st.Load()
	return buildAs[T](s.eng.BuildContext(ctx, src, baseOf[T](), config.Apply(s.cfg, opts...)))
}

// Assign maps src into the existing target dst using the global mpx engine.
// It layers the given options over the global mpx configuration.
// This is a convenience wrapper around the global eng.
func Assign(src, dst any, opts ...config.Option) error {
	s := st.Load()
	return s.eng.Copy(src, dst, config.Apply(s.cfg, opts...))
}

// AssignContext is the suspension-capable twin of Assign.
// This is a convenience wrapper around the global eng.
func AssignContext(ctx context.Context, src, dst any, opts ...config.Option) error {
	s := st.Load()
	return s.eng.CopyContext(ctx, src, dst, config.Apply(s.cfg, opts...))
}

// Update sets a single named member of dst, honoring the tag renaming and
// error policy of the effective configuration. dst must be a non-nil
// pointer to a struct.
func Update(dst any, name string, value any, opts ...config.Option) error {
	cfg := config.Apply(st.Load().cfg, opts...)

	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return ErrInvalidTarget
	}
	de := dv.Elem()
	for de.Kind() == reflect.Ptr {
		if de.IsNil() {
			de.Set(reflect.New(de.Type().Elem()))
		}
		de = de.Elem()
	}
	if de.Kind() != reflect.Struct {
		return ErrInvalidTarget
	}

	var m *apis.Member
	for _, c := range member.Members(de.Type(), cfg.Tag, true) {
		if member.Equal(c.Name, name, cfg.Fold) {
			m = c
			break
		}
	}
	if m == nil {
		return ErrMemberMissing
	}

	vt := reflect.TypeOf(value)
	var val reflect.Value
	if vt == nil {
		switch m.Type.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			val = reflect.Zero(m.Type)
		default:
			if cfg.Suppress {
				return nil
			}
			return ErrMemberType
		}
	} else {
		if !vt.AssignableTo(m.Type) {
			if cfg.Suppress {
				return nil
			}
			return ErrMemberType
		}
		val = reflect.ValueOf(value)
	}

	accessor.CompileSetter(m)(de, val)
	return nil
}

// Pair is a typed handle over a compiled source/target plan. Obtain one
// with For; the handle resolves its plan through the static table of the
// global cache once per call, so it observes cache swaps.
type Pair[S, T any] struct {
	opts []config.Option
}

// For returns a typed mapping handle from S to T. The given options are
// layered over the global configuration for every call made through the
// handle.
func For[S, T any](opts ...config.Option) Pair[S, T] {
	return Pair[S, T]{opts: opts}
}

// Build constructs a fresh T from src through the handle's plan.
func (h Pair[S, T]) Build(src S) (T, error) {
	s := st.Load()
	cfg := config.Apply(s.cfg, h.opts...)
	p, err := s.cache.Lookup(baseOf[S](), baseOf[T](), cfg)
	if err != nil {
		var zero T
		return zero, err
	}
	return buildAs[T](s.eng.Run(p, src, cfg))
}

// BuildContext is the suspension-capable twin of Pair.Build.
func (h Pair[S, T]) BuildContext(ctx context.Context, src S) (T, error) {
	s := st.Load()
	cfg := config.Apply(s.cfg, h.opts...)
	p, err := s.cache.Lookup(baseOf[S](), baseOf[T](), cfg)
	if err != nil {
		var zero T
		return zero, err
	}
	return buildAs[T](s.eng.RunContext(ctx, p, src, cfg))
}

// Assign maps src into the existing target dst through the handle's plan.
func (h Pair[S, T]) Assign(src S, dst *T) error {
	s := st.Load()
	cfg := config.Apply(s.cfg, h.opts...)
	p, err := s.cache.Lookup(baseOf[S](), baseOf[T](), cfg)
	if err != nil {
		return err
	}
	return s.eng.RunCopy(p, src, dst, cfg)
}

// AssignContext is the suspension-capable twin of Pair.Assign.
func (h Pair[S, T]) AssignContext(ctx context.Context, src S, dst *T) error {
	s := st.Load()
	cfg := config.Apply(s.cfg, h.opts...)
	p, err := s.cache.Lookup(baseOf[S](), baseOf[T](), cfg)
	if err != nil {
		return err
	}
	return s.eng.RunCopyContext(ctx, p, src, dst, cfg)
}

// Plan returns the handle's compiled plan for inspection.
func (h Pair[S, T]) Plan() (apis.Plan, error) {
	s := st.Load()
	return s.cache.Lookup(baseOf[S](), baseOf[T](), config.Apply(s.cfg, h.opts...))
}

// baseOf reduces the type parameter to its base struct type: pointer
// indirections are stripped so Build[*T] and Build[T] share one plan.
func baseOf[T any]() reflect.Type {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// buildAs shapes an engine build result (a pointer to a new base struct
// value, or nil for an absent source) into the requested T.
func buildAs[T any](out any, err error) (T, error) {
	var zero T
	if err != nil || out == nil {
		return zero, err
	}
	if v, ok := out.(T); ok {
		return v, nil
	}
	if v, ok := reflect.ValueOf(out).Elem().Interface().(T); ok {
		return v, nil
	}
	return zero, nil
}

// SetAll explicitly sets all global mpx state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced.
//
// This is a convenience wrapper around the global state.
func SetAll(cfg *apis.Config, ext any, cache apis.Cache, eng apis.Engine, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Extension
	next := ext

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Cache
	ncache := cache
	npcache := false
	if ncache == nil {
		ncache = nbld.BuildCache(ncfg, old.cache, next)
	} else {
		npcache = true
	}

	// Engine
	neng := eng
	npeng := false
	if neng == nil {
		neng = nbld.BuildEngine(ncfg, ncache, old.eng, next)
	} else {
		npeng = true
	}

	// Ensure non-nil cache and eng.
	if ncache == nil {
		panic(ErrNilCache)
	}
	if neng == nil {
		panic(ErrNilEngine)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:    ncfg,
			ext:    next,
			cache:  ncache,
			eng:    neng,
			bld:    nbld,
			pcache: npcache,
			peng:   npeng,
		},
	)
}

// Config returns the global mpx configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global mpx configuration to cfg.
// It rebuilds the global cache and eng using the new configuration.
// This is a convenience wrapper around the global state.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new cache and eng based on the new cfg and old state.
	ncache := old.cache
	if !old.pcache {
		ncache = b.BuildCache(cfg, old.cache, old.ext)
	}
	neng := old.eng
	if !old.peng {
		neng = b.BuildEngine(cfg, ncache, old.eng, old.ext)
	}

	// Ensure non-nil cache and eng.
	if ncache == nil {
		panic(ErrNilCache)
	}
	if neng == nil {
		panic(ErrNilEngine)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:    cfg,
			ext:    old.ext,
			cache:  ncache,
			eng:    neng,
			bld:    b,
			pcache: old.pcache,
			peng:   old.peng,
		},
	)
}

// Cache returns the global mpx cache.
func Cache() apis.Cache {
	return st.Load().cache
}

// SetCache sets the global mpx cache to cache.
// It uses the global mpx configuration to rebuild the global eng.
// This is a convenience wrapper around the global state.
func SetCache(cache apis.Cache) {
	if cache == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new eng based on the old cfg and new cache.
	neng := old.eng
	if !old.peng {
		neng = b.BuildEngine(old.cfg, cache, old.eng, old.ext)
	}

	// Ensure non-nil eng.
	if neng == nil {
		panic(ErrNilEngine)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:    old.cfg,
			ext:    old.ext,
			cache:  cache,
			eng:    neng,
			bld:    b,
			pcache: true,
			peng:   old.peng,
		},
	)
}

// Engine returns the global mpx eng.
func Engine() apis.Engine {
	return st.Load().eng
}

// SetEngine sets the global mpx eng to eng.
// It uses the global mpx configuration and cache.
// This is a convenience wrapper around the global state.
func SetEngine(eng apis.Engine) {
	if eng == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:    old.cfg,
			ext:    old.ext,
			cache:  old.cache,
			eng:    eng,
			bld:    old.bld,
			pcache: old.pcache,
			peng:   true,
		},
	)
}

// Builder returns the global mpx bld.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global mpx bld to b.
// This is a convenience wrapper around the global state.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new cache and eng based on the new bld and old state.
	ncache := old.cache
	if !old.pcache {
		ncache = b.BuildCache(old.cfg, old.cache, old.ext)
	}
	neng := old.eng
	if !old.peng {
		neng = b.BuildEngine(old.cfg, ncache, old.eng, old.ext)
	}

	// Ensure non-nil cache and eng.
	if ncache == nil {
		panic(ErrNilCache)
	}
	if neng == nil {
		panic(ErrNilEngine)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:    old.cfg,
			ext:    old.ext,
			cache:  ncache,
			eng:    neng,
			bld:    b,
			pcache: old.pcache,
			peng:   old.peng,
		},
	)
}

// SetExt replaces extension config and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new cache and eng based on the new ext and old state.
	ncache := old.cache
	if !old.pcache {
		ncache = b.BuildCache(old.cfg, old.cache, ext)
	}
	neng := old.eng
	if !old.peng {
		neng = b.BuildEngine(old.cfg, ncache, old.eng, ext)
	}

	// Ensure non-nil cache and eng.
	if ncache == nil {
		panic(ErrNilCache)
	}
	if neng == nil {
		panic(ErrNilEngine)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:    old.cfg,
			ext:    ext,
			cache:  ncache,
			eng:    neng,
			bld:    b,
			pcache: old.pcache,
			peng:   old.peng,
		},
	)
}

// ExtAs returns the global mpx extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsCachePinned returns whether the global mpx cache is pinned (immutable).
func IsCachePinned() bool {
	return st.Load().pcache
}

// PinCache makes the global mpx cache immutable.
func PinCache() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:    old.cfg,
			ext:    old.ext,
			cache:  old.cache,
			eng:    old.eng,
			bld:    old.bld,
			pcache: true,
			peng:   old.peng,
		},
	)
}

// UnpinCache makes the global mpx cache mutable again.
func UnpinCache() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:    old.cfg,
			ext:    old.ext,
			cache:  old.cache,
			eng:    old.eng,
			bld:    old.bld,
			pcache: false,
			peng:   old.peng,
		},
	)
}

// IsEnginePinned returns whether the global mpx eng is pinned (immutable).
func IsEnginePinned() bool {
	return st.Load().peng
}

// PinEngine makes the global mpx eng immutable.
func PinEngine() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:    old.cfg,
			ext:    old.ext,
			cache:  old.cache,
			eng:    old.eng,
			bld:    old.bld,
			pcache: old.pcache,
			peng:   true,
		},
	)
}

// UnpinEngine makes the global mpx eng mutable again.
func UnpinEngine() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:    old.cfg,
			ext:    old.ext,
			cache:  old.cache,
			eng:    old.eng,
			bld:    old.bld,
			pcache: old.pcache,
			peng:   false,
		},
	)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global mpx state.
var st atomic.Pointer[state]

// state is the global mpx state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global mpx configuration.
	cfg apis.Config
	// ext is the global mpx extension configuration.
	ext any
	// cache is the global mpx cache.
	cache apis.Cache
	// eng is the global mpx eng.
	eng apis.Engine
	// bld is the global mpx bld.
	bld apis.Builder
	// pcache indicates whether the cache is pinned (immutable).
	pcache bool
	// peng indicates whether the eng is pinned (immutable).
	peng bool
}
