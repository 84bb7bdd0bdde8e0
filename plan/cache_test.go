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

package plan_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"dirpx.dev/mpx/apis"
	"dirpx.dev/mpx/config"
	"dirpx.dev/mpx/factory"
	"dirpx.dev/mpx/plan"
)

type src struct {
	Name string
	Age  int
}

type dst struct {
	Name string
	Age  int
}

type opaque struct {
	name string
}

func (o opaque) Name() string { return o.name }

func TestLookup_CompilesOncePerKey(t *testing.T) {
	c := plan.NewCache(nil)
	cfg := config.New()

	p1, err := c.Lookup(reflect.TypeOf(src{}), reflect.TypeOf(dst{}), cfg)
	if err != nil {
		t.Fatalf("Lookup error = %v, want nil", err)
	}
	p2, err := c.Lookup(reflect.TypeOf(src{}), reflect.TypeOf(dst{}), cfg)
	if err != nil {
		t.Fatalf("Lookup error = %v, want nil", err)
	}

	if p1 != p2 {
		t.Fatalf("Lookup returned distinct plans for one key")
	}
	if got := c.Compilations(); got != 1 {
		t.Fatalf("Compilations = %d, want 1", got)
	}
}

// Two configurations with equal directive counts but different directive
// content must not share a plan.
func TestLookup_DirectiveContentSplitsKeys(t *testing.T) {
	c := plan.NewCache(nil)

	p1, err := c.Lookup(reflect.TypeOf(src{}), reflect.TypeOf(dst{}),
		config.New(config.WithRename("Name", "Age")))
	if err != nil {
		t.Fatalf("Lookup error = %v, want nil", err)
	}
	p2, err := c.Lookup(reflect.TypeOf(src{}), reflect.TypeOf(dst{}),
		config.New(config.WithRename("Age", "Name")))
	if err != nil {
		t.Fatalf("Lookup error = %v, want nil", err)
	}

	if p1 == p2 {
		t.Fatalf("plans shared across different directive content")
	}
	if got := c.Compilations(); got != 2 {
		t.Fatalf("Compilations = %d, want 2", got)
	}
}

// Transformers are call-time state, not plan shape: configurations that
// differ only in transformers share a plan.
func TestLookup_TransformersDoNotSplitKeys(t *testing.T) {
	c := plan.NewCache(nil)

	p1, err := c.Lookup(reflect.TypeOf(src{}), reflect.TypeOf(dst{}), config.New())
	if err != nil {
		t.Fatalf("Lookup error = %v, want nil", err)
	}
	p2, err := c.Lookup(reflect.TypeOf(src{}), reflect.TypeOf(dst{}),
		config.New(config.WithTransformer(noop{})))
	if err != nil {
		t.Fatalf("Lookup error = %v, want nil", err)
	}

	if p1 != p2 {
		t.Fatalf("plans split on transformers; transformers must not shape the key")
	}
	if got := c.Compilations(); got != 1 {
		t.Fatalf("Compilations = %d, want 1", got)
	}
}

type noop struct{}

func (noop) TryTransform(apis.Request) (any, bool) {
	return nil, false
}

func TestLookupDynamic_SeparateStore(t *testing.T) {
	c := plan.NewCache(nil)
	cfg := config.New()

	if _, err := c.Lookup(reflect.TypeOf(src{}), reflect.TypeOf(dst{}), cfg); err != nil {
		t.Fatalf("Lookup error = %v, want nil", err)
	}
	if _, err := c.LookupDynamic(reflect.TypeOf(src{}), reflect.TypeOf(dst{}), cfg); err != nil {
		t.Fatalf("LookupDynamic error = %v, want nil", err)
	}

	// The stores are independent, so the pair compiles once per store.
	if got := c.Compilations(); got != 2 {
		t.Fatalf("Compilations = %d, want 2", got)
	}
}

func TestLookup_Errors(t *testing.T) {
	c := plan.NewCache(nil)
	cfg := config.New()

	if _, err := c.Lookup(nil, reflect.TypeOf(dst{}), cfg); !errors.Is(err, plan.ErrNilType) {
		t.Fatalf("Lookup(nil source) error = %v, want %v", err, plan.ErrNilType)
	}
	if _, err := c.Lookup(reflect.TypeOf(src{}), nil, cfg); !errors.Is(err, plan.ErrNilType) {
		t.Fatalf("Lookup(nil target) error = %v, want %v", err, plan.ErrNilType)
	}
	if _, err := c.Lookup(reflect.TypeOf(42), reflect.TypeOf(dst{}), cfg); !errors.Is(err, plan.ErrNotStruct) {
		t.Fatalf("Lookup(int source) error = %v, want %v", err, plan.ErrNotStruct)
	}
}

func TestPlan_ReadWriteRoundTrip(t *testing.T) {
	c := plan.NewCache(nil)
	p, err := c.Lookup(reflect.TypeOf(src{}), reflect.TypeOf(dst{}), config.New())
	if err != nil {
		t.Fatalf("Lookup error = %v, want nil", err)
	}
	if p.Len() != 2 {
		t.Fatalf("Len = %d, want 2", p.Len())
	}

	sv := reflect.ValueOf(src{Name: "ada", Age: 36})
	dv := reflect.New(reflect.TypeOf(dst{})).Elem()
	for i := 0; i < p.Len(); i++ {
		v, ok := p.Read(i, sv)
		if !ok {
			t.Fatalf("Read(%d) ok = false, want true", i)
		}
		if !p.Write(i, dv, v) {
			t.Fatalf("Write(%d) = false, want true", i)
		}
	}

	got := dv.Interface().(dst)
	if got.Name != "ada" || got.Age != 36 {
		t.Fatalf("round trip = %+v, want {ada 36}", got)
	}
}

func TestPlan_NoFactoryWithoutRegistry(t *testing.T) {
	c := plan.NewCache(nil)
	p, err := c.Lookup(reflect.TypeOf(src{}), reflect.TypeOf(dst{}), config.New())
	if err != nil {
		t.Fatalf("Lookup error = %v, want nil", err)
	}

	if p.HasFactory() {
		t.Fatalf("HasFactory = true, want false")
	}
	if _, err := p.Construct(reflect.ValueOf(src{})); !errors.Is(err, plan.ErrNoFactory) {
		t.Fatalf("Construct error = %v, want %v", err, plan.ErrNoFactory)
	}
}

func TestPlan_FactoryMatchedFromRegistry(t *testing.T) {
	reg := factory.NewRegistry()
	if err := reg.Register(func(name string) opaque { return opaque{name: name} }, "Name"); err != nil {
		t.Fatalf("Register error = %v", err)
	}

	c := plan.NewCache(reg)
	p, err := c.Lookup(reflect.TypeOf(src{}), reflect.TypeOf(opaque{}),
		config.New(config.WithFold(true)))
	if err != nil {
		t.Fatalf("Lookup error = %v, want nil", err)
	}

	if !p.HasFactory() {
		t.Fatalf("HasFactory = false, want true")
	}
	v, err := p.Construct(reflect.ValueOf(src{Name: "ada"}))
	if err != nil {
		t.Fatalf("Construct error = %v, want nil", err)
	}
	if got := v.Interface().(opaque).Name(); got != "ada" {
		t.Fatalf("constructed name = %q, want %q", got, "ada")
	}
}

func TestPlan_Describe(t *testing.T) {
	c := plan.NewCache(nil)
	p, err := c.Lookup(reflect.TypeOf(src{}), reflect.TypeOf(dst{}), config.New())
	if err != nil {
		t.Fatalf("Lookup error = %v, want nil", err)
	}

	d := p.Describe()
	if !strings.Contains(d, "->") || !strings.Contains(d, "2 pairs") {
		t.Fatalf("Describe = %q, want source, target and pair count", d)
	}
}

func TestCache_Reset(t *testing.T) {
	c := plan.NewCache(nil)
	if _, err := c.Lookup(reflect.TypeOf(src{}), reflect.TypeOf(dst{}), config.New()); err != nil {
		t.Fatalf("Lookup error = %v, want nil", err)
	}
	c.Reset()
	if got := c.Compilations(); got != 0 {
		t.Fatalf("Compilations after Reset = %d, want 0", got)
	}
	if _, err := c.Lookup(reflect.TypeOf(src{}), reflect.TypeOf(dst{}), config.New()); err != nil {
		t.Fatalf("Lookup error = %v, want nil", err)
	}
	if got := c.Compilations(); got != 1 {
		t.Fatalf("Compilations = %d, want 1 (recompiled after Reset)", got)
	}
}
