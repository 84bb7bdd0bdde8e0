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

// Package plan compiles and caches mapping plans: the resolved member
// pairs of a type pair, their compiled accessors, and an optional
// construction fast path through a matched initializer.
package plan

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/mpx/accessor"
	"dirpx.dev/mpx/apis"
	"dirpx.dev/mpx/factory"
)

// ErrNoFactory is returned by Construct when the plan matched no initializer.
var ErrNoFactory = errors.New("mpx(plan): no initializer matched for target type")

// pair is one member pair with its compiled accessors.
type pair struct {
	d   apis.Pair
	get accessor.Getter
	set accessor.Setter
}

// Plan is an immutable compiled mapping plan. It is owned by the cache and
// shared read-only by all callers mapping its type pair under its
// configuration shape; lifetime is the process lifetime.
type Plan struct {
	source  reflect.Type
	target  reflect.Type
	pairs   []pair
	factory *factory.Compiled
}

var _ apis.Plan = (*Plan)(nil)

// Source returns the exact source struct type the plan was compiled for.
func (p *Plan) Source() reflect.Type { return p.source }

// Target returns the exact target struct type the plan was compiled for.
func (p *Plan) Target() reflect.Type { return p.target }

// Len returns the number of member pairs, in write order.
func (p *Plan) Len() int { return len(p.pairs) }

// Pair returns the i-th member pair descriptor.
func (p *Plan) Pair(i int) apis.Pair { return p.pairs[i].d }

// Read invokes the i-th pair's compiled getter.
func (p *Plan) Read(i int, src reflect.Value) (reflect.Value, bool) {
	return p.pairs[i].get(src)
}

// Write invokes the i-th pair's compiled setter.
func (p *Plan) Write(i int, dst reflect.Value, val reflect.Value) bool {
	return p.pairs[i].set(dst, val)
}

// HasFactory reports whether an initializer was matched for the target.
func (p *Plan) HasFactory() bool { return p.factory != nil }

// Construct builds a target instance through the matched initializer.
func (p *Plan) Construct(src reflect.Value) (reflect.Value, error) {
	if p.factory == nil {
		return reflect.Value{}, ErrNoFactory
	}
	return p.factory.Construct(src)
}

// Describe returns a one-line diagnostic summary of the plan.
func (p *Plan) Describe() string {
	if p.factory != nil {
		return fmt.Sprintf("%v -> %v (%d pairs, factory/%d)",
			p.source, p.target, len(p.pairs), p.factory.Arity())
	}
	return fmt.Sprintf("%v -> %v (%d pairs)", p.source, p.target, len(p.pairs))
}
