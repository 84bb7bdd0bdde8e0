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

package plan

import (
	"reflect"
	"sort"

	"github.com/cespare/xxhash/v2"

	"dirpx.dev/mpx/apis"
)

// Key identifies a compiled plan. Type identity, not structural equality:
// a plan is never reused across a type pair it was not compiled for, even
// if the pair is structurally identical.
//
// Directives is a content hash of the rename/skip/tag directives, so two
// configurations with the same directive counts but different content
// never share a plan.
type Key struct {
	Source     reflect.Type
	Target     reflect.Type
	Fold       bool
	Directives uint64
}

// Fingerprint hashes the directive content of cfg. Rename order is
// semantic (later directives override earlier pairs) and is preserved;
// skips are a set and are hashed in sorted order.
func Fingerprint(cfg apis.Config) uint64 {
	d := xxhash.New()
	for _, r := range cfg.Renames {
		_, _ = d.WriteString("r\x00")
		_, _ = d.WriteString(r.From)
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(r.To)
		_, _ = d.WriteString("\x00")
	}
	if len(cfg.Skips) > 0 {
		skips := make([]string, len(cfg.Skips))
		copy(skips, cfg.Skips)
		sort.Strings(skips)
		for _, s := range skips {
			_, _ = d.WriteString("s\x00")
			_, _ = d.WriteString(s)
			_, _ = d.WriteString("\x00")
		}
	}
	_, _ = d.WriteString("t\x00")
	_, _ = d.WriteString(cfg.Tag)
	return d.Sum64()
}
