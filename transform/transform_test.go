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

package transform_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/mpx/apis"
	"dirpx.dev/mpx/transform"
)

func pairOf(srcName, srcTag, dstName, dstTag string) apis.Pair {
	return apis.Pair{
		Source: &apis.Member{Name: srcName, Tag: reflect.StructTag(srcTag)},
		Target: &apis.Member{Name: dstName, Tag: reflect.StructTag(dstTag)},
	}
}

func TestChain_FirstAcceptWins(t *testing.T) {
	first := transform.Func(func(apis.Request) (any, bool) { return "first", true })
	second := transform.Func(func(apis.Request) (any, bool) { return "second", true })

	v, ok := transform.NewChain(first, second).Resolve(apis.Request{})
	require.True(t, ok)
	assert.Equal(t, "first", v)
}

func TestChain_FallsThroughDecliners(t *testing.T) {
	decline := transform.Func(func(apis.Request) (any, bool) { return nil, false })
	accept := transform.Func(func(apis.Request) (any, bool) { return 42, true })

	v, ok := transform.NewChain(decline, accept).Resolve(apis.Request{})
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestChain_AllDecline(t *testing.T) {
	decline := transform.Func(func(apis.Request) (any, bool) { return nil, false })

	_, ok := transform.NewChain(decline, decline).Resolve(apis.Request{})
	assert.False(t, ok)
}

func TestNewChain_FiltersNils(t *testing.T) {
	accept := transform.Func(func(apis.Request) (any, bool) { return 1, true })

	c := transform.NewChain(nil, accept, nil)
	assert.False(t, c.Empty())

	v, ok := c.Resolve(apis.Request{})
	require.True(t, ok)
	assert.Equal(t, 1, v)

	assert.True(t, transform.NewChain().Empty())
	assert.True(t, transform.NewChain(nil, nil).Empty())
}

func TestByType_TransformsMatchingValue(t *testing.T) {
	upper := transform.ByType(func(s string) any { return strings.ToUpper(s) })

	v, ok := upper.TryTransform(apis.Request{Value: "ada", HasValue: true})
	require.True(t, ok)
	assert.Equal(t, "ADA", v)
}

func TestByType_DeclinesOtherTypes(t *testing.T) {
	upper := transform.ByType(func(s string) any { return strings.ToUpper(s) })

	_, ok := upper.TryTransform(apis.Request{Value: 42, HasValue: true})
	assert.False(t, ok)

	_, ok = upper.TryTransform(apis.Request{})
	assert.False(t, ok)
}

// With a prior value present, the prior value is the one transformed; the
// raw member value is ignored.
func TestByType_PrefersPrior(t *testing.T) {
	upper := transform.ByType(func(s string) any { return strings.ToUpper(s) })

	v, ok := upper.TryTransform(apis.Request{
		Value:    "raw",
		HasValue: true,
		Prior:    "prior",
		HasPrior: true,
	})
	require.True(t, ok)
	assert.Equal(t, "PRIOR", v)
}

func TestByType_PriorOfOtherTypeDeclines(t *testing.T) {
	upper := transform.ByType(func(s string) any { return strings.ToUpper(s) })

	_, ok := upper.TryTransform(apis.Request{
		Value:    "raw",
		HasValue: true,
		Prior:    42,
		HasPrior: true,
	})
	assert.False(t, ok)
}

func TestByTag_SourceTagTakesPrecedence(t *testing.T) {
	tagged := transform.ByTag("scrub", func(tag string, _ apis.Request) (any, bool) {
		return tag, true
	})

	v, ok := tagged.TryTransform(apis.Request{
		Pair: pairOf("A", `scrub:"src"`, "B", `scrub:"dst"`),
	})
	require.True(t, ok)
	assert.Equal(t, "src", v)
}

func TestByTag_TargetTagFallback(t *testing.T) {
	tagged := transform.ByTag("scrub", func(tag string, _ apis.Request) (any, bool) {
		return tag, true
	})

	v, ok := tagged.TryTransform(apis.Request{
		Pair: pairOf("A", "", "B", `scrub:"dst"`),
	})
	require.True(t, ok)
	assert.Equal(t, "dst", v)
}

func TestByTag_DeclinesUntagged(t *testing.T) {
	tagged := transform.ByTag("scrub", func(string, apis.Request) (any, bool) {
		return nil, true
	})

	_, ok := tagged.TryTransform(apis.Request{Pair: pairOf("A", "", "B", "")})
	assert.False(t, ok)
}

func TestByField_MatchesEitherSide(t *testing.T) {
	named := transform.ByField("Age", func(apis.Request) (any, bool) { return 1, true })

	_, ok := named.TryTransform(apis.Request{Pair: pairOf("Age", "", "Years", "")})
	assert.True(t, ok, "source name must match")

	_, ok = named.TryTransform(apis.Request{Pair: pairOf("Years", "", "Age", "")})
	assert.True(t, ok, "target name must match")

	_, ok = named.TryTransform(apis.Request{Pair: pairOf("Name", "", "Name", "")})
	assert.False(t, ok)
}

func TestContextFunc_SyncPathDeclines(t *testing.T) {
	cf := transform.ContextFunc(func(context.Context, apis.Request) (any, bool, error) {
		return "ctx", true, nil
	})

	_, ok := cf.TryTransform(apis.Request{})
	assert.False(t, ok)
}

func TestResolveContext_PrefersContextPath(t *testing.T) {
	cf := transform.ContextFunc(func(context.Context, apis.Request) (any, bool, error) {
		return "ctx", true, nil
	})

	v, ok, err := transform.NewChain(cf).ResolveContext(context.Background(), apis.Request{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ctx", v)
}

func TestResolveContext_MixedChain(t *testing.T) {
	declineCtx := transform.ContextFunc(func(context.Context, apis.Request) (any, bool, error) {
		return nil, false, nil
	})
	plain := transform.Func(func(apis.Request) (any, bool) { return "plain", true })

	v, ok, err := transform.NewChain(declineCtx, plain).ResolveContext(context.Background(), apis.Request{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "plain", v)
}

// A transformer error aborts the chain and propagates unmodified; later
// transformers are never consulted.
func TestResolveContext_ErrorAbortsChain(t *testing.T) {
	boom := errors.New("boom")
	failing := transform.ContextFunc(func(context.Context, apis.Request) (any, bool, error) {
		return nil, false, boom
	})
	reached := false
	later := transform.Func(func(apis.Request) (any, bool) {
		reached = true
		return "late", true
	})

	_, ok, err := transform.NewChain(failing, later).ResolveContext(context.Background(), apis.Request{})
	require.ErrorIs(t, err, boom)
	assert.False(t, ok)
	assert.False(t, reached)
}
