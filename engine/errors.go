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

package engine

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalidTarget is returned when a copy target is not a usable
	// non-nil pointer to a struct.
	ErrInvalidTarget = errors.New("mpx(engine): target must be a non-nil pointer to a struct")
	// ErrNilPlan is returned when a nil plan is provided to a Run variant.
	ErrNilPlan = errors.New("mpx(engine): nil plan provided")
	// ErrPlanMismatch is returned when the source value's concrete type
	// does not match the plan's source type.
	ErrPlanMismatch = errors.New("mpx(engine): source value does not match plan source type")
)

// AssignmentError reports that a resolved value's runtime type is not
// assignable to its target member's declared type. Under the default
// policy it aborts the remaining writes of the call; under the suppress
// policy the pair is skipped instead and this error is never produced.
type AssignmentError struct {
	// Value is the runtime type of the offending value; nil for an
	// untyped nil value.
	Value reflect.Type
	// Member is the target member name.
	Member string
	// Target is the member's declared type.
	Target reflect.Type
}

func (e *AssignmentError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("mpx(engine): nil value is not assignable to member %q (%v)", e.Member, e.Target)
	}
	return fmt.Sprintf("mpx(engine): value of type %v is not assignable to member %q (%v)", e.Value, e.Member, e.Target)
}

// ConstructError reports that no target instance could be produced.
// Construction failure is never suppressed: without an instance the call
// has no usable result.
type ConstructError struct {
	// Target is the type that could not be constructed.
	Target reflect.Type
	// Err is the underlying initializer error, if any.
	Err error
}

func (e *ConstructError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mpx(engine): constructing %v: %v", e.Target, e.Err)
	}
	return fmt.Sprintf("mpx(engine): no instance of %v could be constructed", e.Target)
}

func (e *ConstructError) Unwrap() error { return e.Err }
