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

// Rename redirects one source member onto a differently named target member.
// An explicit rename overrides an automatic same-name match for either of
// the two members it involves.
type Rename struct {
	// From is the source member name.
	From string
	// To is the target member name.
	To string
}

// Config carries the directive set for one mapping call.
// It is passed by value and must be treated as immutable by the core:
// resolvers and engines consume it but never mutate it.
type Config struct {
	// Fold enables case-insensitive member matching.
	// When false, members match by exact name only.
	Fold bool

	// Suppress selects the error policy for assignment-type mismatches.
	// When true, an incompatible pair is skipped (the target member keeps
	// its default/constructed value) and the call runs to completion.
	// When false, the mismatch aborts the call with an AssignmentError.
	// Construction failures are never suppressed.
	Suppress bool

	// Tag names the struct tag key consulted for member renames and skips
	// (a tag value of "-" excludes the member). Empty disables tag handling.
	Tag string

	// MaxDepth limits recursive mapping of self-referential members.
	// Acts as a safety guard against pathological value cycles.
	MaxDepth int

	// Renames are explicit member redirections, applied in order after
	// automatic name matching.
	Renames []Rename

	// Skips are member names excluded from matching on both sides.
	Skips []string

	// Transformers are consulted in order for every mapped pair;
	// the first transformer that accepts a value wins.
	Transformers []Transformer
}
