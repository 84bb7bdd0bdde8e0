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

import "context"

// Request carries everything a transformer may consult for one member pair.
// It is built fresh for each consultation and must not be retained.
type Request struct {
	// Source is the enclosing source instance being mapped.
	Source any

	// Value is the raw value read from the source member via the compiled
	// getter. HasValue is false when the member was unreadable.
	Value    any
	HasValue bool

	// Prior is a value already produced for this pair's source member
	// earlier in the same copy operation. HasPrior is false on the first
	// consultation for the member.
	Prior    any
	HasPrior bool

	// Pair identifies the members under consideration.
	Pair Pair

	// Lookup reads a value produced for another member earlier in the same
	// copy operation, by member name. It lets a transformer derive a value
	// from an already-transformed field. Nil outside a copy operation.
	Lookup func(name string) (any, bool)
}

// Transformer is a pluggable value-interception rule. A copy engine chains
// transformers in order; the first one that accepts a pair's value wins.
// Typical kinds: type-level (every member of a value type), tag-level
// (members carrying a metadata tag), field-level (one named member).
type Transformer interface {
	// TryTransform either declines (accepted=false, the chain falls
	// through) or produces the replacement value to write.
	TryTransform(req Request) (value any, accepted bool)
}

// ContextTransformer is a suspension-capable Transformer. Context-aware
// engines prefer TryTransformContext, which may block on ctx-scoped work;
// synchronous engines fall back to the embedded TryTransform.
//
// Errors returned here propagate to the caller unmodified; the engine
// never swallows a transformer error.
type ContextTransformer interface {
	Transformer

	TryTransformContext(ctx context.Context, req Request) (value any, accepted bool, err error)
}
