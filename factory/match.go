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

package factory

import (
	"reflect"
	"strings"

	"dirpx.dev/mpx/accessor"
	"dirpx.dev/mpx/apis"
)

// Compiled is a construction fast path: a matched initializer plus one
// compiled reader per argument. Immutable once matched into a plan.
type Compiled struct {
	init    *Initializer
	readers []accessor.Getter
}

// Arity returns the argument count of the underlying initializer.
func (c *Compiled) Arity() int { return c.init.Arity() }

// Construct reads each argument from src through its pair's getter and
// forwards it positionally into the initializer. An unreadable member
// yields the argument type's zero value. An error returned by the
// initializer itself is passed through.
func (c *Compiled) Construct(src reflect.Value) (reflect.Value, error) {
	in := make([]reflect.Value, len(c.readers))
	for j, rd := range c.readers {
		v, ok := rd(src)
		if !ok || !v.IsValid() {
			v = reflect.Zero(c.init.in[j])
		}
		in[j] = v
	}
	out := c.init.fn.Call(in)
	if c.init.hasErr && !out[1].IsNil() {
		return reflect.Value{}, out[1].Interface().(error)
	}
	return out[0], nil
}

// Match searches the registry's candidates for target and selects the
// fully-satisfiable initializer with the fewest arguments (ties broken by
// registration order). An initializer is fully satisfiable when every
// argument name resolves, under the naming policy, to a distinct mapped
// target member whose source member type is assignable to the argument
// type. Returns nil when no candidate qualifies.
//
// pairs and getters are parallel: getters[i] is the compiled read function
// for pairs[i].Source.
func Match(reg *Registry, target reflect.Type, pairs []apis.Pair, getters []accessor.Getter, fold bool) *Compiled {
	if reg == nil {
		return nil
	}
	var best *Compiled
	for _, cand := range reg.Candidates(target) {
		if best != nil && cand.Arity() >= best.Arity() {
			continue
		}
		if c := satisfy(cand, pairs, getters, fold); c != nil {
			best = c
		}
	}
	return best
}

// satisfy checks one candidate against the mapped pairs and compiles it
// when every argument is covered and no target member is used twice.
func satisfy(cand *Initializer, pairs []apis.Pair, getters []accessor.Getter, fold bool) *Compiled {
	used := make(map[*apis.Member]struct{}, cand.Arity())
	readers := make([]accessor.Getter, cand.Arity())
	for j, name := range cand.args {
		found := -1
		for i, p := range pairs {
			if _, taken := used[p.Target]; taken {
				continue
			}
			if !nameEqual(p.Target.Name, name, fold) {
				continue
			}
			if !p.Source.Type.AssignableTo(cand.in[j]) {
				continue
			}
			found = i
			break
		}
		if found < 0 {
			return nil
		}
		used[pairs[found].Target] = struct{}{}
		readers[j] = getters[found]
	}
	return &Compiled{init: cand, readers: readers}
}

func nameEqual(a, b string, fold bool) bool {
	if fold {
		return strings.EqualFold(a, b)
	}
	return a == b
}
