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

package common

// Describer exposes a human-readable summary of a compiled mapping.
//
// # Overview
//
// Describer is a diagnostic contract implemented by compiled mapping
// artifacts (plans, handles, caches). It exists so that operators and
// tests can inspect what a mapping will do — which type pair it covers,
// how many member pairs it moves, whether direct construction applies —
// without executing it.
//
// The description is intended for humans: logs, debug endpoints, test
// failure messages. It is NOT a serialization format.
//
// # Usage
//
//	p, _ := handle.Plan()
//	log.Println(p.Describe()) // e.g. "pkg.UserDTO -> pkg.User (3 pairs)"
//
// # Contract
//
//   - The returned description MUST be non-empty for a valid artifact.
//   - The description SHOULD fit on a single line.
//   - Callers MUST NOT parse the description programmatically; its format
//     MAY change between releases without notice.
//   - Implementations MUST be safe for concurrent calls and MUST NOT
//     mutate the artifact being described.
type Describer interface {
	// Describe returns a one-line human-readable summary.
	Describe() string
}

// Counter exposes the compilation activity of a plan cache.
//
// # Overview
//
// Counter is a diagnostic contract implemented by plan caches that track
// how many plan compilations they have performed. Because plans are
// compiled at most once per key in effect, a monotonically growing count
// against a fixed workload indicates a cache-key problem (for example,
// directive sets that hash differently on every call).
//
// # Usage
//
//	before := cache.Compilations()
//	runWorkload()
//	if cache.Compilations() != before {
//	    // workload triggered unexpected recompilation
//	}
//
// # Contract
//
//   - The returned count MUST be monotonically non-decreasing for the
//     lifetime of the cache, except across an explicit reset.
//   - Implementations MUST be safe for concurrent calls.
//   - The count covers compilations performed, not plans published:
//     concurrent first lookups for one key MAY compile redundantly and
//     each such compilation MUST be counted.
type Counter interface {
	// Compilations returns the number of plan compilations performed.
	Compilations() uint64
}
