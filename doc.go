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

// Package mpx provides a global, process-wide structure-to-structure
// mapping service.
//
// mpx is responsible for moving values between structurally similar Go
// types: DTOs to domain entities, storage rows to API responses, wire
// payloads to internal records. Mapping is driven by compiled plans, so
// the reflective analysis of a type pair happens once per process and
// every subsequent call replays precompiled accessors.
//
// # Design
//
// The core of mpx is a read-mostly global snapshot (state). The snapshot
// holds four things:
//
//   - Config: rules that control how members are matched and how mapping
//     failures are treated (case folding, tag key, rename/skip directives,
//     the transformer chain, the suppress error policy, and the recursion
//     depth guard).
//
//   - Cache: a process-wide table of compiled mapping plans, keyed by
//     (source type, target type, directive content). A plan records the
//     resolved member pairs with their compiled getters/setters, plus a
//     matched initializer for direct construction when one is registered.
//     Plans are compiled on first use and never evicted.
//
//   - Engine: a read-only object that executes plans. It drives the
//     transform resolution chain per member pair, in plan order:
//     1. Offer the pair to the transformer chain, first with any value
//     already produced for the same source member in this call, then
//     without prior context.
//     2. Recursively map self-referential structural members, or fall
//     back to the plain member read.
//     3. Type-check and write under the configured error policy.
//     Engine is expected to be concurrency-safe: all per-call state (the
//     transform memo) is private to each invocation.
//
//   - Builder: a pluggable factory that knows how to construct Cache and
//     Engine instances for a given Config (and optional extension data).
//
// All of these live inside a single immutable struct called state.
// The package holds an atomic pointer to the current state. Readers load
// that pointer, use it, and never mutate it. Writers build a brand-new
// state and atomically swap it in.
//
// This means mpx calls are lock-free on the hot path once a plan is
// compiled:
//
//	out, err := mpx.Build[Person](dto)
//	err = mpx.Assign(dto, &existing)
//
// and concurrent callers always see a consistent snapshot.
//
// # Global API
//
// The package exposes three groups of operations:
//
//  1. Mapping helpers:
//
//     Build[T](src any, opts ...config.Option) (T, error)
//     BuildContext[T](ctx, src, opts...) (T, error)
//     Assign(src, dst any, opts ...config.Option) error
//     AssignContext(ctx, src, dst, opts...) error
//     Update(dst any, name string, value any, opts...) error
//     For[S, T](opts...) Pair[S, T]
//
//     These are safe for concurrent use without additional locking.
//     They always read from the latest published snapshot. The Context
//     variants additionally consult context-aware transformers, which
//     may block; cancellation aborts the call between member pairs.
//
//     For returns a typed handle bound to a source/target pair. Calls
//     through the handle resolve their plan in the static plan table,
//     keeping statically-known traffic apart from dynamic lookups.
//
//  2. Mutation helpers:
//
//     SetConfig(cfg apis.Config)
//     SetBuilder(b apis.Builder)
//     SetExt(ext T)
//     SetCache(cache apis.Cache)
//     SetEngine(eng apis.Engine)
//     UnpinCache()
//     UnpinEngine()
//     SetAll(...)
//
//     Each of these acquires an internal build lock, derives a new
//     snapshot (rebuilding or reusing Cache / Engine as needed),
//     and then atomically publishes that snapshot.
//
//     Semantics in short:
//
//     - Config is the process-wide default; per-call options layer on
//     top of it. Calling SetConfig() may trigger a rebuild of Cache
//     and/or Engine, unless they are explicitly "pinned".
//
//     - Builder controls how Cache and Engine are constructed. Swapping
//     the Builder lets you replace planning or execution logic at
//     runtime.
//
//     - Ext is an opaque extension payload. It is not interpreted by
//     mpx itself. It is simply passed down to the Builder so custom
//     builders (in other binaries) can carry extra policy/state.
//
//     - SetCache() / SetEngine() directly overwrite the current Cache /
//     Engine in the snapshot and "pin" them. Once a layer is pinned,
//     mpx will stop rebuilding that layer automatically until you call
//     UnpinCache()/UnpinEngine().
//
//     - SetAll(...) is the "hard reset" API. It lets a process replace
//     Builder, Config, Ext, Cache, Engine in one shot. This is mainly
//     used by tests to get a clean deterministic state between test
//     cases.
//
//  3. Introspection:
//
//     Config() apis.Config
//     Cache() apis.Cache
//     Engine() apis.Engine
//     ExtAs[T]() (T, bool)
//     // plus Pair.Plan() and Plan.Describe(), etc.
//
//     These let callers examine the currently published snapshot for
//     debugging or documentation.
//
// # Concurrency model
//
// Reads (Build, Assign, Cache, Engine, handle calls) are wait-free at the
// snapshot level: they load the current *state atomically and never take
// locks. The Cache and Engine returned by that state must themselves be
// concurrency-safe.
//
// Writes (SetConfig, SetBuilder, SetExt, SetCache, SetEngine, etc.) take
// a short build mutex, assemble a brand-new state struct, and then
// publish it via an atomic pointer swap. This gives the calling binary a
// predictable "last write wins" behavior without forcing per-call
// locking.
//
// Plan compilation itself is at-most-once-per-key in effect: concurrent
// first calls for the same pair may compile redundantly, but only the
// first-inserted plan is published and the duplicates are discarded.
//
// # Initializers
//
// Target types whose required members are not settable from outside
// (unexported write-once fields) can register constructor functions with
// the factory registry:
//
//	factory.Register(func(name string, age int) Person {
//	    return Person{name: name, age: age}
//	}, "Name", "Age")
//
// During plan compilation, mpx matches registered initializers whose
// argument names correspond to resolved source members, preferring the
// candidate with the fewest arguments. When a build call has no
// transformers configured, the matched initializer constructs the target
// directly from source member reads.
//
// # Usage pattern in a binary
//
// A typical component does:
//
//  1. Let mpx init with default builder/config.
//
//  2. Optionally register initializers for opaque domain types up front.
//
//  3. Optionally call mpx.SetConfig(...) to install process-wide
//     directives (tag key, fold policy, shared transformers).
//
//  4. Use mpx.Build / mpx.Assign (or typed For handles) everywhere a
//     structural mapping is needed.
//
//  5. In tests, call mpx.SetAll(...) to get deterministic snapshots and
//     to inject a mock Builder.
//
// # Scope
//
// mpx is intentionally small. It does not try to be a serialization
// framework or an ORM. It only solves one job:
//
//	"Given a source value and a structurally similar target type, move
//	 the corresponding members across, applying the configured renames,
//	 transformations, and error policy."
//
// Everything else (validation, persistence, wire encoding, etc.) belongs
// to higher layers.
package mpx
