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

package match

import (
	"fmt"
	"strings"
)

// Policy controls how member names are matched between a mapping source
// and a mapping target.
//
// # Overview
//
// Policy is a small enumerated type that describes the name comparison
// rule applied during member resolution. It governs which source members
// pair with which target members when no explicit rename directive covers
// them. Concrete mapping implementations use this value to select the
// comparison function used by their resolvers.
//
// Policy is intentionally minimal and format-agnostic: it does not define
// explicit rename directives, skip lists, or tag keys, but instead selects
// a broad class of automatic matching behavior (e.g., exact vs folded).
//
// # Values
//
// The following policies are defined:
//
//   - Exact — byte-for-byte name equality.
//   - Fold  — case-insensitive name equality (Unicode simple folding).
//   - Snake — separator- and case-insensitive equality.
//   - Tag   — names taken from struct tags before comparison.
//
// Implementations MAY support additional, implementation-specific tuning
// parameters (such as the tag key consulted under Tag, or explicit rename
// directives layered on top of the automatic matches), but those are
// configured separately from Policy.
//
// # Contract
//
//   - Mapping implementations MUST treat Policy as a stable, public API;
//     adding new values is allowed, but existing values MUST NOT change
//     their semantics in breaking ways.
//   - Policy values MUST be safe to use concurrently across goroutines
//     (they are plain integers).
//   - Policy SHOULD be used as an input to configuration or plan
//     compilation, not consulted per member on performance-critical paths.
type Policy int

const (
	// Exact selects byte-for-byte name equality.
	//
	// # Semantics
	//
	// Under Exact, a source member pairs with a target member only when
	// their effective names are identical strings. This is the strictest
	// and cheapest policy, and the RECOMMENDED default for code bases that
	// control both sides of a mapping.
	//
	// Recommended usage:
	//
	//   - Internal DTO-to-entity mappings where both types follow the same
	//     naming convention.
	//   - Situations where silent pairing of similarly named members would
	//     be a correctness hazard.
	Exact Policy = iota

	// Fold selects case-insensitive name equality.
	//
	// # Semantics
	//
	// Under Fold, names are compared under Unicode simple case folding, so
	// "UserID", "UserId", and "userid" all pair with each other. Folding
	// applies to automatic matching, skip lists, and rename directive
	// lookup alike.
	//
	// Recommended usage:
	//
	//   - Mapping against types generated from external schemas whose
	//     casing conventions differ from Go's.
	//
	// Implementation notes:
	//
	//   - Implementations SHOULD use a simple-folding comparison (for
	//     example strings.EqualFold) rather than locale-aware collation.
	Fold

	// Snake selects separator- and case-insensitive equality.
	//
	// # Semantics
	//
	// Under Snake, underscore and hyphen separators are stripped before a
	// folded comparison, so "user_id", "user-id", and "UserID" all pair
	// with each other. This is the most permissive automatic policy.
	//
	// Recommended usage:
	//
	//   - Bridging wire or storage schemas that use snake_case or
	//     kebab-case against idiomatic Go member names.
	//
	// Implementation notes:
	//
	//   - Implementations SHOULD normalize both names once per resolution,
	//     not once per comparison.
	Snake

	// Tag selects tag-derived naming.
	//
	// # Semantics
	//
	// Under Tag, each member's effective name is read from a struct tag
	// under an implementation-configured key before comparison; members
	// without a tag fall back to their declared names. A tag value of "-"
	// MUST exclude the member from matching entirely.
	//
	// Tag does not, by itself, define:
	//
	//   - The tag key consulted.
	//   - Whether the post-tag comparison is exact or folded.
	//
	// These aspects MUST be configured separately by the mapping
	// implementation or its caller.
	//
	// Recommended usage:
	//
	//   - Types already annotated for serialization, where the annotation
	//     names are the authoritative vocabulary.
	Tag
)

// String returns a human-readable representation of the Policy value.
//
// # Semantics
//
// String implements fmt.Stringer and provides short, stable identifiers
// suitable for logging, configuration dumps, and debugging. For all
// defined enum values, the returned strings are:
//
//   - Exact -> "Exact"
//   - Fold  -> "Fold"
//   - Snake -> "Snake"
//   - Tag   -> "Tag"
//
// For unknown or out-of-range values, String returns a diagnostic form
// "Unknown(<n>)", where <n> is the underlying integer value. This behavior
// is intentional and MUST NOT panic, so that corrupted or unexpected
// values can still be surfaced safely in logs and diagnostics.
//
// # Contract
//
//   - The mapping from known Policy values to strings MUST remain stable;
//     changing the spelling or casing is a breaking change for systems
//     that persist or parse these strings.
//   - Callers MAY use the returned string for display or logging, but they
//     SHOULD NOT rely on it as a primary configuration format unless this
//     is explicitly documented and properly versioned.
func (p Policy) String() string {
	switch p {
	case Exact:
		return "Exact"
	case Fold:
		return "Fold"
	case Snake:
		return "Snake"
	case Tag:
		return "Tag"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// Parse parses a textual representation of a Policy.
//
// # Overview
//
// Parse converts a string token into the corresponding Policy value. It
// accepts the same canonical tokens that are produced by Policy.String()
// for known values, with case-insensitive matching.
//
// Accepted (case-insensitive) inputs:
//
//   - "Exact" -> Exact
//   - "Fold"  -> Fold
//   - "Snake" -> Snake
//   - "Tag"   -> Tag
//
// Any other input results in a non-nil error.
//
// # Contract
//
//   - s MAY contain surrounding whitespace; it will be trimmed.
//   - On success, Parse returns a valid Policy and a nil error.
//   - On failure, Parse returns Exact and a non-nil error;
//     callers MUST NOT rely on the returned Policy value in the error case.
//   - Parse MUST NOT panic for any input.
//
// # Usage
//
// Parse is suitable for parsing configuration values, environment
// variables, CLI flags, and other human-authored or external inputs. For
// hard-coded values that are expected to be valid, callers MAY prefer
// MustParse for brevity.
//
// Example:
//
//	policy, err := Parse("fold")
//	if err != nil {
//	    // handle invalid configuration
//	}
//
//	_ = policy // Fold
func Parse(s string) (Policy, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Exact, fmt.Errorf("match: empty policy")
	}

	switch strings.ToUpper(trimmed) {
	case "EXACT":
		return Exact, nil
	case "FOLD":
		return Fold, nil
	case "SNAKE":
		return Snake, nil
	case "TAG":
		return Tag, nil
	default:
		return Exact, fmt.Errorf("match: unknown policy %q", s)
	}
}

// MustParse is like Parse but panics on invalid input.
//
// # Overview
//
// MustParse is a convenience helper for contexts where the input string is
// expected to be a valid Policy token and encountering an invalid value is
// considered a programmer error rather than a recoverable condition.
//
// It is intended for:
//
//   - Hard-coded configuration in Go code.
//   - Tests and examples.
//   - Initialization code where failing fast with a panic is acceptable.
//
// # Contract
//
//   - On valid input, MustParse returns the same value as Parse and MUST
//     NOT panic.
//   - On invalid input (including empty strings), MustParse panics with a
//     diagnostic message.
//   - Callers MUST NOT use MustParse on untrusted or user-supplied data;
//     they SHOULD use Parse instead and handle errors.
//
// # Usage
//
//	var defaultPolicy = MustParse("Exact")
func MustParse(s string) Policy {
	policy, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return policy
}

// MarshalText encodes Policy as text.
//
// # Overview
//
// MarshalText implements encoding.TextMarshaler for Policy. It converts a
// Policy value into its canonical textual representation, suitable for use
// in textual encodings such as:
//
//   - encoding/json (when using ",string" struct tags or custom handling),
//   - encoding/xml,
//   - encoding/yaml (via third-party libraries),
//   - configuration files and human-readable dumps.
//
// For all defined Policy values, MarshalText returns the same tokens as
// Policy.String() for known values ("Exact", "Fold", "Snake", "Tag").
//
// # Contract
//
//   - On success, MarshalText returns a non-nil byte slice and a nil error.
//   - For unknown or out-of-range Policy values, MarshalText returns a
//     non-nil error and MUST NOT silently serialize an "Unknown(...)"
//     form; this avoids persisting potentially invalid states.
//   - MarshalText MUST NOT panic for any Policy value.
//
// # Usage
//
// MarshalText is typically called indirectly by encoding frameworks.
// Direct callers MAY use it when they need an explicit textual form:
//
//	b, err := policy.MarshalText()
//	if err != nil {
//	    // handle unknown/invalid policy
//	}
//	fmt.Println(string(b)) // e.g. "Fold"
func (p Policy) MarshalText() ([]byte, error) {
	switch p {
	case Exact, Fold, Snake, Tag:
		return []byte(p.String()), nil
	default:
		return nil, fmt.Errorf("match: cannot marshal unknown policy %d", p)
	}
}

// UnmarshalText decodes a Policy from its textual representation.
//
// # Overview
//
// UnmarshalText implements encoding.TextUnmarshaler for Policy. It accepts
// the same textual tokens as Parse, with case-insensitive matching:
//
//   - "Exact" -> Exact
//   - "Fold"  -> Fold
//   - "Snake" -> Snake
//   - "Tag"   -> Tag
//
// Leading and trailing whitespace are ignored. Any other value results in
// a non-nil error, and the target is left unchanged.
//
// # Contract
//
//   - text MAY contain surrounding whitespace; it will be trimmed.
//   - On success, *p is set to the parsed value and a nil error is
//     returned.
//   - On failure, *p MUST NOT be modified and a non-nil error is returned.
//   - UnmarshalText MUST NOT panic for any input.
//   - Callers MUST NOT assume that an empty text slice is valid; it is
//     treated as an error.
//
// # Usage
//
// UnmarshalText is typically invoked by encoding frameworks when decoding
// configuration or serialized state. It can also be used directly:
//
//	var policy Policy
//	if err := policy.UnmarshalText([]byte("snake")); err != nil {
//	    // handle invalid input
//	}
//
//	_ = policy // Snake
func (p *Policy) UnmarshalText(text []byte) error {
	trimmed := strings.TrimSpace(string(text))
	if trimmed == "" {
		return fmt.Errorf("match: empty policy")
	}

	value, err := Parse(trimmed)
	if err != nil {
		return err
	}

	*p = value
	return nil
}
