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

package plan

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/mpx/accessor"
	"dirpx.dev/mpx/apis"
	"dirpx.dev/mpx/factory"
	"dirpx.dev/mpx/member"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("mpx(plan): nil reflect.Type provided")
	// ErrNotStruct is returned when a type pair does not resolve to structs.
	ErrNotStruct = errors.New("mpx(plan): mapping requires struct types")
)

// Cache memoizes compiled plans. It keeps two stores: one for
// statically-known type pairs and one for pairs whose concrete source type
// is discovered only at call time. Both are intentionally unbounded: keys
// are type-pair identities, bounded by the set of distinct pairs the
// program actually maps, and plans are never evicted.
//
// Concurrent misses for the same key may compile redundantly; compilation
// has no side effect other than producing a value, and LoadOrStore makes
// the first-inserted plan win, so duplicates are wasted work, not a
// correctness bug.
type Cache struct {
	reg *factory.Registry

	static  sync.Map // Key -> *Plan
	dynamic sync.Map // Key -> *Plan

	// compiles counts plan compilations, observable in tests to assert
	// plan reuse.
	compiles atomic.Uint64
}

var _ apis.Cache = (*Cache)(nil)

// NewCache returns a Cache that matches initializers from reg.
// A nil reg disables the factory fast path.
func NewCache(reg *factory.Registry) *Cache {
	return &Cache{reg: reg}
}

// Lookup serves statically-known type pairs.
func (c *Cache) Lookup(source, target reflect.Type, cfg apis.Config) (apis.Plan, error) {
	return c.lookup(&c.static, source, target, cfg)
}

// LookupDynamic serves pairs whose concrete source type is discovered only
// at call time.
func (c *Cache) LookupDynamic(source, target reflect.Type, cfg apis.Config) (apis.Plan, error) {
	return c.lookup(&c.dynamic, source, target, cfg)
}

func (c *Cache) lookup(store *sync.Map, source, target reflect.Type, cfg apis.Config) (apis.Plan, error) {
	if source == nil || target == nil {
		return nil, ErrNilType
	}
	key := Key{Source: source, Target: target, Fold: cfg.Fold, Directives: Fingerprint(cfg)}
	if v, ok := store.Load(key); ok {
		return v.(*Plan), nil
	}
	p, err := c.compile(source, target, cfg)
	if err != nil {
		return nil, err
	}
	actual, _ := store.LoadOrStore(key, p)
	return actual.(*Plan), nil
}

// compile runs member resolution, accessor compilation, and initializer
// matching for one type pair.
func (c *Cache) compile(source, target reflect.Type, cfg apis.Config) (*Plan, error) {
	if source.Kind() != reflect.Struct || target.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}
	c.compiles.Add(1)

	resolved := member.Resolve(source, target, cfg)
	pairs := make([]pair, len(resolved))
	getters := make([]accessor.Getter, len(resolved))
	for i, d := range resolved {
		g := accessor.CompileGetter(d.Source)
		pairs[i] = pair{d: d, get: g, set: accessor.CompileSetter(d.Target)}
		getters[i] = g
	}

	p := &Plan{source: source, target: target, pairs: pairs}
	if c.reg != nil {
		p.factory = factory.Match(c.reg, target, resolved, getters, cfg.Fold)
	}
	return p, nil
}

// Compilations returns the number of plan compilations performed.
func (c *Cache) Compilations() uint64 {
	return c.compiles.Load()
}

// Reset clears both stores and the compilation counter. Intended for tests.
func (c *Cache) Reset() {
	c.static = sync.Map{}
	c.dynamic = sync.Map{}
	c.compiles.Store(0)
}
