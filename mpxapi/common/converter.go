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

package common

// Converter lets a value produce its own mapped representation.
//
// # Overview
//
// Converter is the zero-reflection fast-path for structure-to-structure
// mapping. When a source value implements Converter and reports that it
// can produce the requested target, the mapping logic MUST prefer this
// interface and MUST NOT run plan-based member copying for that value.
//
// Semantically, Converter is a value-level contract: ConvertTo produces a
// fully formed instance of the requested target kind from the receiver's
// own state. The conversion is expected to be deterministic for a given
// receiver state and target kind.
//
// # Performance
//
// Implementations are intended to be cheap:
//
//   - SHOULD be linear in the size of the produced value, at worst.
//   - MUST NOT perform blocking operations or I/O.
//   - MUST be safe to call from multiple goroutines concurrently when the
//     receiver itself is immutable or guarded by the caller.
//
// # Usage
//
// A typical pattern is to implement Converter on a DTO that knows its
// domain representation:
//
//	type UserDTO struct {
//	    Name string
//	    Age  int
//	}
//
//	func (d UserDTO) ConvertTo(target string) (any, bool) {
//	    if target != "domain.user" {
//	        return nil, false
//	    }
//	    return User{Name: d.Name, Age: d.Age}, true
//	}
//
// The target token is an application-chosen vocabulary; it is NOT
// interpreted by the mapping core beyond equality comparison.
type Converter interface {
	// ConvertTo produces the receiver's representation for the named
	// target kind.
	//
	// # Contract
	//
	//   - When the receiver does not recognize the target kind, it MUST
	//     return (nil, false) and MUST NOT produce partial results.
	//   - When ok is true, the returned value MUST be a complete, usable
	//     instance; callers MAY use it without further mapping.
	//   - The implementation MUST be deterministic for a given receiver
	//     state and target token.
	//   - The implementation MUST be safe for concurrent calls when the
	//     receiver is not concurrently mutated.
	ConvertTo(target string) (v any, ok bool)
}

// TypeConverter provides generic, type-parametric conversion from S to T.
//
// # Overview
//
// TypeConverter is the strongly typed counterpart of Converter. It allows
// a conversion strategy to be expressed in terms of Go type parameters,
// separating:
//
//   - The *subject* being converted (a value of type S), and
//   - The *strategy* that decides how to derive its T representation.
//
// This is useful when:
//
//   - The same conversion should be reused across call sites without
//     re-deriving a mapping plan.
//   - Conversion needs to be configured or injected (for example, per
//     module or per environment).
//   - Compile-time type safety between a specific pair of types matters
//     more than plan-driven generality.
//
// # Usage
//
//	type UserFromDTO struct{}
//
//	func (UserFromDTO) Convert(d UserDTO) (User, error) {
//	    return User{Name: d.Name, Age: d.Age}, nil
//	}
//
//	var conv TypeConverter[UserDTO, User] = UserFromDTO{}
//	user, err := conv.Convert(dto)
type TypeConverter[S, T any] interface {
	// Convert derives the T representation of src.
	//
	// # Contract
	//
	//   - On success, Convert returns a complete T and a nil error.
	//   - On failure, Convert returns the zero T and a non-nil error;
	//     callers MUST NOT rely on the returned value in the error case.
	//   - The implementation MUST be deterministic for a given src.
	//   - The implementation MUST be safe for concurrent calls from
	//     multiple goroutines.
	//
	// # Performance and side-effects
	//
	//   - Implementations SHOULD keep per-call cost proportional to the
	//     size of the produced value.
	//   - Implementations MUST NOT perform blocking operations or I/O in
	//     Convert.
	Convert(src S) (T, error)
}

// ConverterFunc adapts a plain function to the TypeConverter interface.
//
// # Overview
//
// ConverterFunc is a convenience adapter that allows standalone functions
// with signature `func(S) (T, error)` to satisfy TypeConverter[S, T]. This
// is useful when a conversion is naturally expressed as a function rather
// than a method on a dedicated strategy type.
//
// Using ConverterFunc does not change the semantics of TypeConverter: the
// function is still expected to be deterministic, concurrency-safe, and
// free of blocking operations.
//
// # Usage
//
//	var conv TypeConverter[UserDTO, User] = ConverterFunc[UserDTO, User](
//	    func(d UserDTO) (User, error) {
//	        return User{Name: d.Name, Age: d.Age}, nil
//	    },
//	)
//
// # Performance
//
// ConverterFunc adds virtually no overhead compared to calling the
// underlying function directly: Convert is a single function call
// indirection with no additional allocations under normal circumstances.
type ConverterFunc[S, T any] func(S) (T, error)

// Convert implements TypeConverter for ConverterFunc.
//
// # Semantics
//
// Calling Convert on a ConverterFunc is equivalent to invoking the
// underlying function value directly. All contractual requirements of
// TypeConverter apply to the wrapped function.
func (f ConverterFunc[S, T]) Convert(src S) (T, error) {
	return f(src)
}
