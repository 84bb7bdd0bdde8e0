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

// Package member resolves which source members correspond to which target
// members. Resolution is a pure function of the two types and the
// configuration; caching happens one layer up, in the plan cache.
package member

import (
	"reflect"
	"strings"

	"dirpx.dev/mpx/apis"
)

// Members enumerates the mappable members of a struct type, in declaration
// order, including fields promoted from embedded structs.
//
// Source-side enumeration yields exported fields only. Target-side
// enumeration additionally yields locally declared unexported fields as
// write-once members (CanSet=false): they can be populated through an
// initializer or a backing-storage write, never through a plain setter.
//
// When tag is non-empty, a struct tag under that key renames the member;
// a tag value of "-" excludes it.
func Members(t reflect.Type, tag string, target bool) []*apis.Member {
	fields := reflect.VisibleFields(t)
	out := make([]*apis.Member, 0, len(fields))
	for _, f := range fields {
		if f.Anonymous {
			continue
		}
		if f.PkgPath != "" {
			// Unexported: write-once target member when declared locally,
			// invisible otherwise.
			if !target || len(f.Index) != 1 {
				continue
			}
		}
		name := f.Name
		if tag != "" {
			if tv, ok := f.Tag.Lookup(tag); ok {
				tv, _, _ = strings.Cut(tv, ",")
				if tv == "-" {
					continue
				}
				if tv != "" {
					name = tv
				}
			}
		}
		out = append(out, &apis.Member{
			Name:   name,
			Type:   f.Type,
			Index:  f.Index,
			Tag:    f.Tag,
			CanSet: f.PkgPath == "",
		})
	}
	return out
}

// Resolve produces the ordered list of member pairs for a source/target
// type pair under cfg. Automatic same-name matches come first, in source
// declaration order; explicit renames are applied afterwards, each one
// removing any existing pair that already involves either of its two
// members before appending the explicit pair. A rename directive naming an
// absent member is skipped.
func Resolve(source, target reflect.Type, cfg apis.Config) []apis.Pair {
	src := filterSkips(Members(source, cfg.Tag, false), cfg)
	dst := filterSkips(Members(target, cfg.Tag, true), cfg)

	pairs := make([]apis.Pair, 0, len(src))
	for _, s := range src {
		for _, d := range dst {
			if Equal(s.Name, d.Name, cfg.Fold) {
				pairs = append(pairs, apis.Pair{Source: s, Target: d})
				break
			}
		}
	}

	for _, rn := range cfg.Renames {
		s := find(src, rn.From, cfg.Fold)
		d := find(dst, rn.To, cfg.Fold)
		if s == nil || d == nil {
			continue
		}
		kept := pairs[:0]
		for _, p := range pairs {
			if p.Source == s || p.Target == d {
				continue
			}
			kept = append(kept, p)
		}
		pairs = append(kept, apis.Pair{Source: s, Target: d})
	}
	return pairs
}

func filterSkips(ms []*apis.Member, cfg apis.Config) []*apis.Member {
	if len(cfg.Skips) == 0 {
		return ms
	}
	out := ms[:0]
	for _, m := range ms {
		skipped := false
		for _, s := range cfg.Skips {
			if Equal(m.Name, s, cfg.Fold) {
				skipped = true
				break
			}
		}
		if !skipped {
			out = append(out, m)
		}
	}
	return out
}

func find(ms []*apis.Member, name string, fold bool) *apis.Member {
	for _, m := range ms {
		if Equal(m.Name, name, fold) {
			return m
		}
	}
	return nil
}

// Equal reports whether two member names match under the fold policy.
func Equal(a, b string, fold bool) bool {
	if fold {
		return strings.EqualFold(a, b)
	}
	return a == b
}
