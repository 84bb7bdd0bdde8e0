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

package reflect

import (
	"errors"
	"reflect"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectNotStruct indicates that the provided type (after unwrapping
	// pointers) is not a struct type.
	ErrReflectNotStruct = errors.New("reflect: type does not unwrap to a struct")
)

// maxUnwrap bounds pointer/interface unwrapping as a guard against
// pathological nesting.
const maxUnwrap = 8

// BaseStruct unwraps pointer containers and returns the underlying struct
// type, or an error if none is found within the unwrap budget.
func BaseStruct(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	for i := 0; t != nil && i < maxUnwrap; i++ {
		switch t.Kind() {
		case reflect.Ptr:
			t = t.Elem()
		case reflect.Struct:
			return t, nil
		default:
			return nil, ErrReflectNotStruct
		}
	}
	if t != nil && t.Kind() == reflect.Struct {
		return t, nil
	}
	return nil, ErrReflectNotStruct
}

// ConcreteValue dereferences interfaces and pointers and returns the
// underlying value. ok is false when a nil is encountered on the way, in
// which case the value is absent.
func ConcreteValue(v reflect.Value) (reflect.Value, bool) {
	for i := 0; i < maxUnwrap; i++ {
		switch v.Kind() {
		case reflect.Interface, reflect.Ptr:
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		default:
			return v, v.IsValid()
		}
	}
	return v, v.IsValid()
}

// SameBase reports whether two types share the same base struct type after
// pointer unwrapping. Non-struct types never match.
func SameBase(a, b reflect.Type) bool {
	ba, err := BaseStruct(a)
	if err != nil {
		return false
	}
	bb, err := BaseStruct(b)
	if err != nil {
		return false
	}
	return ba == bb
}

// IsNil reports whether v is an untyped nil or a nil value of a nilable
// kind (pointer, interface, map, slice, chan, func).
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
