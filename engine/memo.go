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

package engine

import "dirpx.dev/mpx/apis"

// memo is the per-call record of already-resolved values. It is created
// fresh for each copy operation, is private to that operation, and is
// discarded afterwards; it must never be shared across concurrent calls.
//
// Values are keyed twice: by member descriptor identity for the resolution
// protocol's own-member prior lookups, and by member name for cross-pair
// reads exposed to transformers through Request.Lookup.
type memo struct {
	byMember map[*apis.Member]any
	byName   map[string]any
}

func newMemo() *memo {
	return &memo{
		byMember: make(map[*apis.Member]any),
		byName:   make(map[string]any),
	}
}

// prior returns the value previously produced for a member in this call.
func (m *memo) prior(mem *apis.Member) (any, bool) {
	v, ok := m.byMember[mem]
	return v, ok
}

// put records a value under a member's identity and name.
func (m *memo) put(mem *apis.Member, v any) {
	m.byMember[mem] = v
	m.byName[mem.Name] = v
}

// lookup reads a value by member name; exposed to transformers.
func (m *memo) lookup(name string) (any, bool) {
	v, ok := m.byName[name]
	return v, ok
}
