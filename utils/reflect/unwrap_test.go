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

package reflect_test

import (
	"errors"
	"reflect"
	"testing"

	uref "dirpx.dev/mpx/utils/reflect"
)

type sample struct {
	Name string
}

func TestBaseStruct_Plain(t *testing.T) {
	got, err := uref.BaseStruct(reflect.TypeOf(sample{}))
	if err != nil {
		t.Fatalf("BaseStruct error = %v, want nil", err)
	}
	if got != reflect.TypeOf(sample{}) {
		t.Fatalf("BaseStruct = %v, want %v", got, reflect.TypeOf(sample{}))
	}
}

func TestBaseStruct_UnwrapsPointers(t *testing.T) {
	got, err := uref.BaseStruct(reflect.TypeOf((***sample)(nil)))
	if err != nil {
		t.Fatalf("BaseStruct error = %v, want nil", err)
	}
	if got != reflect.TypeOf(sample{}) {
		t.Fatalf("BaseStruct = %v, want %v", got, reflect.TypeOf(sample{}))
	}
}

func TestBaseStruct_NilType(t *testing.T) {
	if _, err := uref.BaseStruct(nil); !errors.Is(err, uref.ErrReflectNilType) {
		t.Fatalf("BaseStruct(nil) error = %v, want %v", err, uref.ErrReflectNilType)
	}
}

func TestBaseStruct_NonStruct(t *testing.T) {
	if _, err := uref.BaseStruct(reflect.TypeOf(42)); !errors.Is(err, uref.ErrReflectNotStruct) {
		t.Fatalf("BaseStruct(int) error = %v, want %v", err, uref.ErrReflectNotStruct)
	}
	if _, err := uref.BaseStruct(reflect.TypeOf((*int)(nil))); !errors.Is(err, uref.ErrReflectNotStruct) {
		t.Fatalf("BaseStruct(*int) error = %v, want %v", err, uref.ErrReflectNotStruct)
	}
}

func TestConcreteValue_DereferencesPointerChain(t *testing.T) {
	s := sample{Name: "x"}
	p := &s
	pp := &p

	got, ok := uref.ConcreteValue(reflect.ValueOf(pp))
	if !ok {
		t.Fatalf("ConcreteValue ok = false, want true")
	}
	if got.Kind() != reflect.Struct || got.Interface().(sample).Name != "x" {
		t.Fatalf("ConcreteValue = %v, want sample{x}", got)
	}
}

func TestConcreteValue_NilOnPath(t *testing.T) {
	var p *sample
	if _, ok := uref.ConcreteValue(reflect.ValueOf(p)); ok {
		t.Fatalf("ConcreteValue(nil *sample) ok = true, want false")
	}

	var i any = (*sample)(nil)
	if _, ok := uref.ConcreteValue(reflect.ValueOf(&i).Elem()); ok {
		t.Fatalf("ConcreteValue(interface holding nil ptr) ok = true, want false")
	}
}

func TestSameBase(t *testing.T) {
	if !uref.SameBase(reflect.TypeOf(sample{}), reflect.TypeOf((**sample)(nil))) {
		t.Fatalf("SameBase(sample, **sample) = false, want true")
	}
	if uref.SameBase(reflect.TypeOf(sample{}), reflect.TypeOf(struct{ Name string }{})) {
		t.Fatalf("SameBase(sample, anonymous) = true, want false")
	}
	if uref.SameBase(reflect.TypeOf(42), reflect.TypeOf(42)) {
		t.Fatalf("SameBase(int, int) = true, want false (non-struct)")
	}
}

func TestIsNil(t *testing.T) {
	if !uref.IsNil(nil) {
		t.Fatalf("IsNil(nil) = false, want true")
	}

	var p *sample
	if !uref.IsNil(p) {
		t.Fatalf("IsNil((*sample)(nil)) = false, want true")
	}

	var m map[string]int
	if !uref.IsNil(m) {
		t.Fatalf("IsNil(nil map) = false, want true")
	}

	if uref.IsNil(sample{}) {
		t.Fatalf("IsNil(sample{}) = true, want false")
	}
	if uref.IsNil(0) {
		t.Fatalf("IsNil(0) = true, want false")
	}
	if uref.IsNil(&sample{}) {
		t.Fatalf("IsNil(&sample{}) = true, want false")
	}
}
