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

package builder

import (
	"dirpx.dev/mpx/apis"
	"dirpx.dev/mpx/engine"
	"dirpx.dev/mpx/factory"
	"dirpx.dev/mpx/plan"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildCache builds a fresh plan cache over the process-wide initializer
// registry. The previous cache is not migrated: plans are cheap to
// recompile and are keyed by content, so a rebuild only costs one
// compilation per pair on next use.
func (b *builder) BuildCache(_ apis.Config, _ apis.Cache, _ any) apis.Cache {
	return plan.NewCache(factory.Default())
}

// BuildEngine builds an engine over the given cache, creating a fresh
// cache when none is provided.
func (b *builder) BuildEngine(_ apis.Config, cache apis.Cache, _ apis.Engine, _ any) apis.Engine {
	if cache == nil {
		cache = plan.NewCache(factory.Default())
	}
	return engine.New(cache)
}
