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

// Package record bridges open objects (map[string]any records) and
// structured types. Decoding rides on mapstructure; encoding reuses the
// member enumeration and compiled getters of the core.
package record

import (
	"errors"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"

	"dirpx.dev/mpx/accessor"
	"dirpx.dev/mpx/config"
	"dirpx.dev/mpx/member"
	uref "dirpx.dev/mpx/utils/reflect"
)

var (
	// ErrInvalidTarget is returned when the decode target is not a usable
	// non-nil pointer.
	ErrInvalidTarget = errors.New("mpx(record): target must be a non-nil pointer")
	// ErrNotStruct is returned when an encode source does not unwrap to a
	// struct.
	ErrNotStruct = errors.New("mpx(record): encoding requires a struct source")
)

// Decode maps a record into dst, honoring the configured tag key and the
// fold naming policy.
func Decode(rec map[string]any, dst any, opts ...config.Option) error {
	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return ErrInvalidTarget
	}
	cfg := config.New(opts...)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  dst,
		TagName: cfg.Tag,
		MatchName: func(mapKey, fieldName string) bool {
			if cfg.Fold {
				return strings.EqualFold(mapKey, fieldName)
			}
			return mapKey == fieldName
		},
	})
	if err != nil {
		return err
	}
	return dec.Decode(rec)
}

// Encode shapes src into a record keyed by effective member names.
// Skipped members are excluded; an absent source yields a nil record.
func Encode(src any, opts ...config.Option) (map[string]any, error) {
	if uref.IsNil(src) {
		return nil, nil
	}
	sv, ok := uref.ConcreteValue(reflect.ValueOf(src))
	if !ok {
		return nil, nil
	}
	if sv.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}
	cfg := config.New(opts...)
	out := make(map[string]any)
	for _, m := range member.Members(sv.Type(), cfg.Tag, false) {
		if skipped(m.Name, cfg.Skips, cfg.Fold) {
			continue
		}
		if v, ok := accessor.CompileGetter(m)(sv); ok && v.CanInterface() {
			out[m.Name] = v.Interface()
		}
	}
	return out, nil
}

func skipped(name string, skips []string, fold bool) bool {
	for _, s := range skips {
		if member.Equal(name, s, fold) {
			return true
		}
	}
	return false
}
