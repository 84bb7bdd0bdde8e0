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

package record_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/mpx/config"
	"dirpx.dev/mpx/record"
)

type profile struct {
	Name  string
	Age   int
	Alias string `mpx:"Handle"`
	Token string
}

func TestDecode_ByMemberName(t *testing.T) {
	var got profile
	err := record.Decode(map[string]any{"Name": "Ada", "Age": 36}, &got)
	require.NoError(t, err)

	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, 36, got.Age)
}

func TestDecode_TagNameWins(t *testing.T) {
	var got profile
	err := record.Decode(map[string]any{"Handle": "al"}, &got)
	require.NoError(t, err)
	assert.Equal(t, "al", got.Alias)
}

func TestDecode_FoldPolicy(t *testing.T) {
	var strict profile
	require.NoError(t, record.Decode(map[string]any{"name": "Ada"}, &strict))
	assert.Empty(t, strict.Name, "exact policy must not fold case")

	var folded profile
	require.NoError(t, record.Decode(map[string]any{"name": "Ada"}, &folded, config.WithFold(true)))
	assert.Equal(t, "Ada", folded.Name)
}

func TestDecode_InvalidTarget(t *testing.T) {
	assert.ErrorIs(t, record.Decode(map[string]any{}, nil), record.ErrInvalidTarget)
	assert.ErrorIs(t, record.Decode(map[string]any{}, profile{}), record.ErrInvalidTarget)
	assert.ErrorIs(t, record.Decode(map[string]any{}, (*profile)(nil)), record.ErrInvalidTarget)
}

func TestEncode_KeysByEffectiveName(t *testing.T) {
	got, err := record.Encode(profile{Name: "Ada", Age: 36, Alias: "al", Token: "x"})
	require.NoError(t, err)

	want := map[string]any{
		"Name":   "Ada",
		"Age":    36,
		"Handle": "al",
		"Token":  "x",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Encode mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_SkipsDirectedMembers(t *testing.T) {
	got, err := record.Encode(profile{Name: "Ada", Token: "x"},
		config.WithSkip("Token"))
	require.NoError(t, err)

	_, present := got["Token"]
	assert.False(t, present, "skipped member must be excluded from the record")
	assert.Equal(t, "Ada", got["Name"])
}

func TestEncode_AbsentSource(t *testing.T) {
	got, err := record.Encode(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = record.Encode((*profile)(nil))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEncode_NonStruct(t *testing.T) {
	_, err := record.Encode(42)
	assert.ErrorIs(t, err, record.ErrNotStruct)
}

func TestEncodeDecode_RoundTripThroughPointer(t *testing.T) {
	src := &profile{Name: "Ada", Age: 36, Alias: "al"}
	rec, err := record.Encode(src)
	require.NoError(t, err)

	var got profile
	require.NoError(t, record.Decode(rec, &got))
	assert.Equal(t, *src, got)
}
