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

package transform

import (
	"context"

	"dirpx.dev/mpx/apis"
)

// ByType returns a type-level transformer: it accepts every member whose
// value is a T, regardless of which member it is, and replaces it with
// fn's result. When a prior value for the member exists, the prior value
// is the one transformed.
func ByType[T any](fn func(T) any) apis.Transformer {
	return typeTransformer[T]{fn: fn}
}

type typeTransformer[T any] struct {
	fn func(T) any
}

func (t typeTransformer[T]) TryTransform(req apis.Request) (any, bool) {
	if req.HasPrior {
		if v, ok := req.Prior.(T); ok {
			return t.fn(v), true
		}
		return nil, false
	}
	if !req.HasValue {
		return nil, false
	}
	v, ok := req.Value.(T)
	if !ok {
		return nil, false
	}
	return t.fn(v), true
}

// ByTag returns a tag-level transformer: it accepts a pair when the source
// or target member carries a struct tag under key, and hands the tag value
// to fn along with the full request. Source-side tags take precedence.
func ByTag(key string, fn func(tag string, req apis.Request) (any, bool)) apis.Transformer {
	return tagTransformer{key: key, fn: fn}
}

type tagTransformer struct {
	key string
	fn  func(tag string, req apis.Request) (any, bool)
}

func (t tagTransformer) TryTransform(req apis.Request) (any, bool) {
	if tv, ok := req.Pair.Source.Tag.Lookup(t.key); ok {
		return t.fn(tv, req)
	}
	if tv, ok := req.Pair.Target.Tag.Lookup(t.key); ok {
		return t.fn(tv, req)
	}
	return nil, false
}

// ByField returns a field-level transformer: it accepts only the pair
// whose source or target member carries the given name.
func ByField(name string, fn func(req apis.Request) (any, bool)) apis.Transformer {
	return fieldTransformer{name: name, fn: fn}
}

type fieldTransformer struct {
	name string
	fn   func(req apis.Request) (any, bool)
}

func (t fieldTransformer) TryTransform(req apis.Request) (any, bool) {
	if req.Pair.Source.Name != t.name && req.Pair.Target.Name != t.name {
		return nil, false
	}
	return t.fn(req)
}

// Func adapts a plain function to apis.Transformer.
type Func func(req apis.Request) (any, bool)

// TryTransform implements apis.Transformer for Func.
func (f Func) TryTransform(req apis.Request) (any, bool) {
	return f(req)
}

// ContextFunc adapts a plain function to apis.ContextTransformer. The
// synchronous path always declines, so a context-only transformer is
// simply skipped by synchronous engines.
type ContextFunc func(ctx context.Context, req apis.Request) (any, bool, error)

// TryTransform implements the synchronous side; it declines.
func (ContextFunc) TryTransform(apis.Request) (any, bool) {
	return nil, false
}

// TryTransformContext implements apis.ContextTransformer for ContextFunc.
func (f ContextFunc) TryTransformContext(ctx context.Context, req apis.Request) (any, bool, error) {
	return f(ctx, req)
}
