// Copyright (c) 2026 Palantir Technologies. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package kotlin

import (
	werror "github.com/palantir/witchcraft-go-error"

	"github.com/ZacSweers/kotlinpoet-contracts/internal/kotlinsyntax"
)

// ParameterSpec is an immutable value parameter of a function declaration.
// Names that collide with Kotlin hard keywords are stored in backticked form.
type ParameterSpec struct {
	name string
	typ  TypeName
}

// NewParameter validates the parameter name and returns the spec. The name
// may be a plain identifier, a backticked identifier, or a hard keyword
// (which is backticked automatically).
func NewParameter(name string, typ TypeName) (ParameterSpec, error) {
	escaped := kotlinsyntax.EscapeIfNecessary(name)
	if !kotlinsyntax.IsIdentifier(escaped) {
		return ParameterSpec{}, werror.Error("parameter name is not a valid Kotlin identifier",
			werror.SafeParam("parameterName", name))
	}
	if typ.IsZero() {
		return ParameterSpec{}, werror.Error("parameter type is required",
			werror.SafeParam("parameterName", name))
	}
	return ParameterSpec{name: escaped, typ: typ}, nil
}

// MustParameter is a convenience for statically known parameters; it panics
// on invalid input.
func MustParameter(name string, typ TypeName) ParameterSpec {
	p, err := NewParameter(name, typ)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the parameter name, backticked if it collides with a keyword.
func (p ParameterSpec) Name() string {
	return p.name
}

// Type returns the declared parameter type.
func (p ParameterSpec) Type() TypeName {
	return p.typ
}

// String renders the declaration form "name: Type".
func (p ParameterSpec) String() string {
	return p.name + ": " + p.typ.String()
}
