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

package match_test

import (
	"testing"

	"dirpx.dev/mpx/api/match"
)

// TestPolicyString verifies that String() returns the expected stable
// tokens for all known match.Policy values and a diagnostic form for
// unknown values.
func TestPolicyString(t *testing.T) {
	tests := []struct {
		name   string
		policy match.Policy
		want   string
	}{
		{
			name:   "Exact",
			policy: match.Exact,
			want:   "Exact",
		},
		{
			name:   "Fold",
			policy: match.Fold,
			want:   "Fold",
		},
		{
			name:   "Snake",
			policy: match.Snake,
			want:   "Snake",
		},
		{
			name:   "Tag",
			policy: match.Tag,
			want:   "Tag",
		},
		{
			name:   "Unknown",
			policy: match.Policy(42),
			want:   "Unknown(42)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.policy.String()
			if got != tt.want {
				t.Fatalf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestParsePolicyValid verifies that match.Parse correctly parses all
// supported textual representations in a case-insensitive way and with
// optional surrounding whitespace.
func TestParsePolicyValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  match.Policy
	}{
		{"Exact canonical", "Exact", match.Exact},
		{"Exact lower", "exact", match.Exact},
		{"Exact mixed", "eXaCt", match.Exact},
		{"Exact trimmed", "  exact  ", match.Exact},

		{"Fold canonical", "Fold", match.Fold},
		{"Fold lower", "fold", match.Fold},

		{"Snake canonical", "Snake", match.Snake},
		{"Snake lower", "snake", match.Snake},

		{"Tag canonical", "Tag", match.Tag},
		{"Tag lower", "tag", match.Tag},
		{"Tag trimmed", "  tag  ", match.Tag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := match.Parse(tt.input)
			if err != nil {
				t.Fatalf("match.Parse(%q) error = %v, want nil", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("match.Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestParsePolicyInvalid verifies that match.Parse rejects invalid input,
// returns a non-nil error, and does not rely on the returned match.Policy
// value in the error case.
func TestParsePolicyInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"Whitespace", "   "},
		{"Unknown token", "invalid"},
		{"Partial match", "Exact1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := match.Parse(tt.input); err == nil {
				t.Fatalf("match.Parse(%q) error = nil, want non-nil", tt.input)
			}
		})
	}
}

// TestMustParsePolicy verifies that match.MustParse returns the parsed
// value on valid input and panics on invalid input.
func TestMustParsePolicy(t *testing.T) {
	if got := match.MustParse("snake"); got != match.Snake {
		t.Fatalf("match.MustParse(\"snake\") = %v, want %v", got, match.Snake)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("match.MustParse(\"bogus\") did not panic")
		}
	}()
	match.MustParse("bogus")
}

// TestPolicyTextRoundTrip verifies that MarshalText and UnmarshalText
// round-trip all known match.Policy values.
func TestPolicyTextRoundTrip(t *testing.T) {
	for _, p := range []match.Policy{match.Exact, match.Fold, match.Snake, match.Tag} {
		b, err := p.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error = %v, want nil", p, err)
		}

		var got match.Policy
		if err := got.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v, want nil", b, err)
		}
		if got != p {
			t.Fatalf("round trip of %v = %v, want %v", p, got, p)
		}
	}
}

// TestPolicyMarshalTextUnknown verifies that unknown values refuse to
// marshal and that failed unmarshals leave the target unchanged.
func TestPolicyMarshalTextUnknown(t *testing.T) {
	if _, err := match.Policy(42).MarshalText(); err == nil {
		t.Fatalf("MarshalText(42) error = nil, want non-nil")
	}

	got := match.Fold
	if err := got.UnmarshalText([]byte("bogus")); err == nil {
		t.Fatalf("UnmarshalText(\"bogus\") error = nil, want non-nil")
	}
	if got != match.Fold {
		t.Fatalf("failed UnmarshalText modified target: got %v, want %v", got, match.Fold)
	}
}
