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

// Package accessor compiles reusable read and write functions for single
// members. Accessors are compiled once per plan and never recompiled per
// call; a member shape that cannot be compiled degrades to a no-op rather
// than failing the plan.
package accessor

import (
	"reflect"
	"unsafe"

	"dirpx.dev/mpx/apis"
)

// Getter reads a member value from a source instance.
// ok is false when the member is unreadable, e.g. a nil embedded pointer
// sits on the field index path.
type Getter func(src reflect.Value) (val reflect.Value, ok bool)

// Setter writes a value into a member of a target instance.
// It reports false when the write degraded to a no-op.
type Setter func(dst, val reflect.Value) bool

// CompileGetter builds the read function for a member.
func CompileGetter(m *apis.Member) Getter {
	if len(m.Index) == 1 {
		i := m.Index[0]
		return func(src reflect.Value) (reflect.Value, bool) {
			return src.Field(i), true
		}
	}
	idx := m.Index
	return func(src reflect.Value) (reflect.Value, bool) {
		v, err := src.FieldByIndexErr(idx)
		if err != nil {
			return reflect.Value{}, false
		}
		return v, true
	}
}

// CompileSetter builds the write function for a member.
//
// Directly writable members get a plain setter. Write-once members
// (unexported fields, settable only at construction in the general case)
// get a backing-storage write through the field's address; when the target
// is not addressable the accessor degrades to a no-op, leaving the member
// at its default value. That degradation is deliberate and never surfaced
// as an error.
func CompileSetter(m *apis.Member) Setter {
	idx := m.Index
	if m.CanSet {
		return func(dst, val reflect.Value) bool {
			f, ok := fieldAlloc(dst, idx)
			if !ok || !f.CanSet() {
				return false
			}
			f.Set(val)
			return true
		}
	}
	return func(dst, val reflect.Value) bool {
		f, ok := fieldAlloc(dst, idx)
		if !ok || !f.CanAddr() {
			return false
		}
		reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem().Set(val)
		return true
	}
}

// fieldAlloc walks an index path on a target value, allocating nil
// embedded pointers along the way so the terminal field is reachable.
func fieldAlloc(v reflect.Value, idx []int) (reflect.Value, bool) {
	for n, i := range idx {
		if n > 0 {
			for v.Kind() == reflect.Ptr {
				if v.IsNil() {
					if !v.CanSet() {
						return reflect.Value{}, false
					}
					v.Set(reflect.New(v.Type().Elem()))
				}
				v = v.Elem()
			}
		}
		if v.Kind() != reflect.Struct || i >= v.NumField() {
			return reflect.Value{}, false
		}
		v = v.Field(i)
	}
	return v, true
}
