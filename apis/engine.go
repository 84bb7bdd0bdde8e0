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

import (
	"context"
	"reflect"
)

// Engine drives plan compilation and member copying.
//
// Build constructs a fresh target instance (returned as a pointer to a new
// value of the target's base struct type) or returns (nil, nil) when the
// source is absent. Copy writes into an existing target, which must be a
// non-nil pointer.
//
// The Context variants are the suspension-capable twins: they share plans
// with the synchronous paths and differ only in consulting
// ContextTransformer implementations, which may block. Members are always
// processed strictly in plan order, never concurrently, because later
// pairs may depend on memoized values from earlier pairs.
//
// The Run variants operate on a caller-supplied plan (typically obtained
// from the static cache through a typed pair handle) and skip the dynamic
// plan lookup.
//
// An Engine instance is safe for concurrent use: per-call state is private
// to each invocation and plans are immutable.
type Engine interface {
	Build(src any, target reflect.Type, cfg Config) (any, error)
	Copy(src, dst any, cfg Config) error

	BuildContext(ctx context.Context, src any, target reflect.Type, cfg Config) (any, error)
	CopyContext(ctx context.Context, src, dst any, cfg Config) error

	Run(p Plan, src any, cfg Config) (any, error)
	RunCopy(p Plan, src, dst any, cfg Config) error

	RunContext(ctx context.Context, p Plan, src any, cfg Config) (any, error)
	RunCopyContext(ctx context.Context, p Plan, src, dst any, cfg Config) error
}
