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

// Member describes a named, typed slot on a structured type.
// Members are always descriptors of the exact declared type a plan was
// compiled for; plans hold them by pointer so descriptor identity can be
// used as a memo key during one copy operation.
type Member struct {
	// Name is the effective member name after tag renaming.
	Name string
	// Type is the declared member type.
	Type reflect.Type
	// Index is the reflect field index path from the enclosing type.
	Index []int
	// Tag is the raw struct tag, consulted by attribute-level transformers.
	Tag reflect.StructTag
	// CanSet reports direct write capability. False marks a write-once
	// member: settable only through an initializer or a backing-storage
	// write, never through a plain setter.
	CanSet bool
}

// Pair associates one source member with one target member.
// A pair is immutable once placed in a plan.
type Pair struct {
	Source *Member
	Target *Member
}
