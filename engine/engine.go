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

// Package engine orchestrates construction and member copying over cached
// mapping plans. The synchronous and the context-aware (suspension-capable)
// paths share one implementation parameterized on how the transformer
// chain is consulted; both process member pairs strictly in plan order,
// because later pairs may depend on values memoized by earlier ones.
package engine

import (
	"context"
	"reflect"

	"dirpx.dev/mpx/apis"
	"dirpx.dev/mpx/config"
	"dirpx.dev/mpx/transform"
	uref "dirpx.dev/mpx/utils/reflect"
)

// Engine drives copy/build operations against a plan cache. Instances are
// stateless apart from the cache reference: all per-call state (the
// transform memo) is private to each invocation, so one Engine is safe
// for concurrent use.
type Engine struct {
	cache apis.Cache
}

var _ apis.Engine = (*Engine)(nil)

// New returns an Engine over the given plan cache.
func New(cache apis.Cache) *Engine {
	return &Engine{cache: cache}
}

// Cache returns the engine's plan cache.
func (e *Engine) Cache() apis.Cache { return e.cache }

// Build constructs a fresh target instance from src, returning a pointer
// to a new value of target's base struct type. An absent source (nil, or
// a nil pointer chain) yields (nil, nil) with no side effects.
func (e *Engine) Build(src any, target reflect.Type, cfg apis.Config) (any, error) {
	return e.build(context.Background(), src, target, cfg, false, 0)
}

// BuildContext is the suspension-capable twin of Build.
func (e *Engine) BuildContext(ctx context.Context, src any, target reflect.Type, cfg apis.Config) (any, error) {
	return e.build(ctx, src, target, cfg, true, 0)
}

// Copy maps src into an existing target, which must be a non-nil pointer
// to a struct (intermediate nil pointers are allocated). An absent source
// leaves dst untouched.
func (e *Engine) Copy(src, dst any, cfg apis.Config) error {
	return e.copy(context.Background(), src, dst, cfg, false)
}

// CopyContext is the suspension-capable twin of Copy.
func (e *Engine) CopyContext(ctx context.Context, src, dst any, cfg apis.Config) error {
	return e.copy(ctx, src, dst, cfg, true)
}

// Run builds a fresh target through a caller-supplied plan, skipping the
// dynamic plan lookup.
func (e *Engine) Run(p apis.Plan, src any, cfg apis.Config) (any, error) {
	return e.runPlan(context.Background(), p, src, cfg, false)
}

// RunContext is the suspension-capable twin of Run.
func (e *Engine) RunContext(ctx context.Context, p apis.Plan, src any, cfg apis.Config) (any, error) {
	return e.runPlan(ctx, p, src, cfg, true)
}

// RunCopy copies through a caller-supplied plan into an existing target.
func (e *Engine) RunCopy(p apis.Plan, src, dst any, cfg apis.Config) error {
	return e.runPlanCopy(context.Background(), p, src, dst, cfg, false)
}

// RunCopyContext is the suspension-capable twin of RunCopy.
func (e *Engine) RunCopyContext(ctx context.Context, p apis.Plan, src, dst any, cfg apis.Config) error {
	return e.runPlanCopy(ctx, p, src, dst, cfg, true)
}

func (e *Engine) build(ctx context.Context, src any, target reflect.Type, cfg apis.Config, useCtx bool, depth int) (any, error) {
	if uref.IsNil(src) {
		return nil, nil
	}
	base, err := uref.BaseStruct(target)
	if err != nil {
		return nil, &ConstructError{Target: target, Err: err}
	}
	sv, ok := uref.ConcreteValue(reflect.ValueOf(src))
	if !ok {
		return nil, nil
	}
	p, err := e.cache.LookupDynamic(sv.Type(), base, cfg)
	if err != nil {
		return nil, err
	}
	return e.construct(ctx, p, sv, cfg, useCtx, depth)
}

func (e *Engine) copy(ctx context.Context, src, dst any, cfg apis.Config, useCtx bool) error {
	if uref.IsNil(src) {
		return nil
	}
	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return ErrInvalidTarget
	}
	de := dv.Elem()
	for de.Kind() == reflect.Ptr {
		if de.IsNil() {
			de.Set(reflect.New(de.Type().Elem()))
		}
		de = de.Elem()
	}
	if de.Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	sv, ok := uref.ConcreteValue(reflect.ValueOf(src))
	if !ok {
		return nil
	}
	p, err := e.cache.LookupDynamic(sv.Type(), de.Type(), cfg)
	if err != nil {
		return err
	}
	return e.run(ctx, p, sv, de, cfg, useCtx, 0)
}

func (e *Engine) runPlan(ctx context.Context, p apis.Plan, src any, cfg apis.Config, useCtx bool) (any, error) {
	if p == nil {
		return nil, ErrNilPlan
	}
	if uref.IsNil(src) {
		return nil, nil
	}
	sv, ok := uref.ConcreteValue(reflect.ValueOf(src))
	if !ok {
		return nil, nil
	}
	if sv.Type() != p.Source() {
		return nil, ErrPlanMismatch
	}
	return e.construct(ctx, p, sv, cfg, useCtx, 0)
}

func (e *Engine) runPlanCopy(ctx context.Context, p apis.Plan, src, dst any, cfg apis.Config, useCtx bool) error {
	if p == nil {
		return ErrNilPlan
	}
	if uref.IsNil(src) {
		return nil
	}
	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return ErrInvalidTarget
	}
	de := dv.Elem()
	for de.Kind() == reflect.Ptr {
		if de.IsNil() {
			de.Set(reflect.New(de.Type().Elem()))
		}
		de = de.Elem()
	}
	if de.Type() != p.Target() {
		return ErrInvalidTarget
	}
	sv, ok := uref.ConcreteValue(reflect.ValueOf(src))
	if !ok {
		return nil
	}
	if sv.Type() != p.Source() {
		return ErrPlanMismatch
	}
	return e.run(ctx, p, sv, de, cfg, useCtx, 0)
}

// construct produces a new target instance for one build call: through the
// factory fast path when an initializer was matched and no transformers
// are configured, or through default construction followed by the member
// loop otherwise.
func (e *Engine) construct(ctx context.Context, p apis.Plan, sv reflect.Value, cfg apis.Config, useCtx bool, depth int) (any, error) {
	if p.HasFactory() && len(cfg.Transformers) == 0 {
		v, err := p.Construct(sv)
		if err != nil {
			return nil, &ConstructError{Target: p.Target(), Err: err}
		}
		out := reflect.New(p.Target())
		out.Elem().Set(v)
		return out.Interface(), nil
	}
	out := reflect.New(p.Target())
	if err := e.run(ctx, p, sv, out.Elem(), cfg, useCtx, depth); err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

// run drives the transform resolution chain over all pairs, in plan
// order. For each pair: the per-call memo is consulted first (a prior
// value for the pair's source member is offered to the chain), then the
// chain with no prior context, then the fallbacks (recursive mapping for
// self-referential members, the plain compiled getter, and finally a
// reflective read). The resolved value is type-checked against the target
// member and written under the configured error policy.
func (e *Engine) run(ctx context.Context, p apis.Plan, sv, dv reflect.Value, cfg apis.Config, useCtx bool, depth int) error {
	chain := transform.NewChain(cfg.Transformers...)
	m := newMemo()
	srcIface := sv.Interface()

	for i := 0; i < p.Len(); i++ {
		pr := p.Pair(i)

		raw, readable := p.Read(i, sv)
		var rawIface any
		if readable && raw.IsValid() && raw.CanInterface() {
			rawIface = raw.Interface()
		} else {
			readable = false
		}

		req := apis.Request{
			Source:   srcIface,
			Value:    rawIface,
			HasValue: readable,
			Pair:     pr,
			Lookup:   m.lookup,
		}

		var resolved any
		var have bool

		if prior, hasPrior := m.prior(pr.Source); hasPrior {
			req.Prior, req.HasPrior = prior, true
			v, acc, err := resolve(ctx, chain, req, useCtx)
			if err != nil {
				return err
			}
			if acc {
				resolved, have = v, true
				m.put(pr.Source, v)
			}
			req.Prior, req.HasPrior = nil, false
		}

		if !have {
			v, acc, err := resolve(ctx, chain, req, useCtx)
			if err != nil {
				return err
			}
			if acc {
				resolved, have = v, true
				m.put(pr.Source, v)
			}
		}

		if !have {
			if selfRef(pr, p) {
				if readable && !uref.IsNil(rawIface) && depth < maxDepth(cfg) {
					nested, err := e.build(ctx, rawIface, pr.Target.Type, cfg, useCtx, depth+1)
					if err != nil {
						return err
					}
					if nested != nil {
						if pr.Target.Type.Kind() == reflect.Ptr {
							resolved = nested
						} else {
							resolved = reflect.ValueOf(nested).Elem().Interface()
						}
						have = true
					}
				}
				if !have {
					// Absent or depth-guarded nested source: the member
					// stays at its default.
					continue
				}
			} else if readable {
				resolved, have = rawIface, true
			}
		}

		if !have {
			// Unreadable through the compiled getter: best-effort
			// reflective fallback before leaving the member at its default.
			if fv, err := sv.FieldByIndexErr(pr.Source.Index); err == nil && fv.IsValid() && fv.CanInterface() {
				resolved, have = fv.Interface(), true
			}
		}

		if !have {
			continue
		}

		vt := reflect.TypeOf(resolved)
		var val reflect.Value
		switch {
		case vt == nil:
			if !nilable(pr.Target.Type.Kind()) {
				if cfg.Suppress {
					continue
				}
				return &AssignmentError{Value: nil, Member: pr.Target.Name, Target: pr.Target.Type}
			}
			val = reflect.Zero(pr.Target.Type)
		case !vt.AssignableTo(pr.Target.Type):
			if cfg.Suppress {
				continue
			}
			return &AssignmentError{Value: vt, Member: pr.Target.Name, Target: pr.Target.Type}
		default:
			val = reflect.ValueOf(resolved)
		}

		if p.Write(i, dv, val) {
			m.put(pr.Target, resolved)
		}
	}
	return nil
}

// resolve consults the chain through the path matching the engine variant.
func resolve(ctx context.Context, c transform.Chain, req apis.Request, useCtx bool) (any, bool, error) {
	if useCtx {
		return c.ResolveContext(ctx, req)
	}
	v, acc := c.Resolve(req)
	return v, acc, nil
}

// selfRef reports whether a pair maps a self-referential structural
// member: the member types share the plan's own source/target base types,
// which themselves differ.
func selfRef(pr apis.Pair, p apis.Plan) bool {
	if p.Source() == p.Target() {
		return false
	}
	return uref.SameBase(pr.Source.Type, p.Source()) && uref.SameBase(pr.Target.Type, p.Target())
}

func maxDepth(cfg apis.Config) int {
	if cfg.MaxDepth <= 0 {
		return config.DefaultMaxDepth
	}
	return cfg.MaxDepth
}

func nilable(k reflect.Kind) bool {
	switch k {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return true
	default:
		return false
	}
}
