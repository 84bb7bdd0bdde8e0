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

package apis

import "reflect"

// Plan is the compiled, cached description of how to move values from a
// source type's members to a target type's members, plus an optional
// direct-construction factory. Plans are immutable after compilation and
// safe for concurrent use; all per-call state lives in the engine.
type Plan interface {
	// Source returns the exact source struct type the plan was compiled for.
	Source() reflect.Type
	// Target returns the exact target struct type the plan was compiled for.
	Target() reflect.Type

	// Len returns the number of member pairs, in write order.
	Len() int
	// Pair returns the i-th member pair descriptor.
	Pair(i int) Pair

	// Read invokes the i-th pair's compiled getter against a source value.
	// ok is false when the member is unreadable (e.g. a nil embedded
	// pointer on the access path).
	Read(i int, src reflect.Value) (val reflect.Value, ok bool)

	// Write invokes the i-th pair's compiled setter against a target value.
	// For write-once members this is a backing-storage write; it reports
	// false when the accessor degraded to a no-op.
	Write(i int, dst reflect.Value, val reflect.Value) bool

	// HasFactory reports whether an initializer was matched for the target.
	HasFactory() bool
	// Construct builds a target instance through the matched initializer,
	// reading each argument from the source via the pair getters.
	Construct(src reflect.Value) (reflect.Value, error)

	// Describe returns a one-line diagnostic summary of the plan.
	Describe() string
}

// Cache memoizes compiled plans per (source type, target type,
// configuration shape). Implementations must support concurrent reads and
// at-most-once-per-key publication: concurrent misses may compile
// redundantly, but the first-inserted plan wins and duplicates are
// discarded. Plans are never evicted.
type Cache interface {
	// Lookup serves statically-known type pairs.
	Lookup(source, target reflect.Type, cfg Config) (Plan, error)

	// LookupDynamic serves pairs whose concrete source type is discovered
	// only at call time. Kept as a separate store so dynamic traffic never
	// contends with, or pollutes, the static table.
	LookupDynamic(source, target reflect.Type, cfg Config) (Plan, error)
}
