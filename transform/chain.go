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

// Package transform provides the transformer resolution chain and the
// built-in transformer kinds: type-level (every member of a value type),
// tag-level (members carrying a metadata tag), and field-level (one
// specific named member).
package transform

import (
	"context"

	"dirpx.dev/mpx/apis"
)

// NewChain builds an ordered resolution chain over the given transformers.
// Nil transformers are ignored. The returned chain is immutable and safe
// for concurrent use provided the transformers themselves are.
func NewChain(ts ...apis.Transformer) Chain {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Transformer, 0, len(ts))
	for _, t := range ts {
		if t != nil {
			out = append(out, t)
		}
	}
	return Chain{ts: out}
}

// Chain is an immutable, order-preserving resolver over transformers.
// The first transformer that accepts a value wins.
type Chain struct {
	ts []apis.Transformer
}

// Empty reports whether the chain holds no transformers.
func (c Chain) Empty() bool { return len(c.ts) == 0 }

// Resolve consults transformers in order until one accepts.
func (c Chain) Resolve(req apis.Request) (any, bool) {
	for _, t := range c.ts {
		if v, ok := t.TryTransform(req); ok {
			return v, true
		}
	}
	return nil, false
}

// ResolveContext is the suspension-capable twin of Resolve. Transformers
// implementing apis.ContextTransformer are consulted through their context
// method, which may block; plain transformers are consulted synchronously.
// A transformer error aborts the chain and propagates unmodified.
func (c Chain) ResolveContext(ctx context.Context, req apis.Request) (any, bool, error) {
	for _, t := range c.ts {
		if ct, ok := t.(apis.ContextTransformer); ok {
			v, acc, err := ct.TryTransformContext(ctx, req)
			if err != nil {
				return nil, false, err
			}
			if acc {
				return v, true, nil
			}
			continue
		}
		if v, ok := t.TryTransform(req); ok {
			return v, true, nil
		}
	}
	return nil, false, nil
}
