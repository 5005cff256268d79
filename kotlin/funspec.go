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
	"strings"

	werror "github.com/palantir/witchcraft-go-error"

	"github.com/ZacSweers/kotlinpoet-contracts/internal/kotlinsyntax"
)

// FunSpec is an immutable Kotlin function declaration: name, optional
// receiver, value parameters, modifiers, optional return type and a body of
// statement lines. Construct through NewFunSpec and FunSpecBuilder.Build.
type FunSpec struct {
	name       string
	receiver   *TypeName
	returnType *TypeName
	parameters []ParameterSpec
	modifiers  []Modifier
	body       []string
}

// FunSpecBuilder accumulates the parts of a FunSpec. Builders are mutable and
// not safe for concurrent use; the FunSpec produced by Build is detached from
// the builder.
type FunSpecBuilder struct {
	name       string
	receiver   *TypeName
	returnType *TypeName
	parameters []ParameterSpec
	modifiers  []Modifier
	body       []string
}

// NewFunSpec starts a builder for a function with the given name.
func NewFunSpec(name string) *FunSpecBuilder {
	return &FunSpecBuilder{name: name}
}

// Receiver sets the extension receiver type.
func (b *FunSpecBuilder) Receiver(t TypeName) *FunSpecBuilder {
	b.receiver = &t
	return b
}

// Returns sets the declared return type. Functions without one render as
// Unit-returning declarations with the ": Unit" clause omitted.
func (b *FunSpecBuilder) Returns(t TypeName) *FunSpecBuilder {
	b.returnType = &t
	return b
}

// AddParameters appends value parameters in declaration order.
func (b *FunSpecBuilder) AddParameters(params ...ParameterSpec) *FunSpecBuilder {
	b.parameters = append(b.parameters, params...)
	return b
}

// AddModifiers appends modifiers in declaration order.
func (b *FunSpecBuilder) AddModifiers(modifiers ...Modifier) *FunSpecBuilder {
	b.modifiers = append(b.modifiers, modifiers...)
	return b
}

// AddStatement appends one body line. Lines are emitted verbatim (plus body
// indentation), so callers provide their own nested indentation.
func (b *FunSpecBuilder) AddStatement(line string) *FunSpecBuilder {
	b.body = append(b.body, line)
	return b
}

// Build validates the accumulated declaration and returns the immutable
// FunSpec. The builder remains usable afterwards.
func (b *FunSpecBuilder) Build() (FunSpec, error) {
	name := kotlinsyntax.EscapeIfNecessary(b.name)
	if !kotlinsyntax.IsIdentifier(name) {
		return FunSpec{}, werror.Error("function name is not a valid Kotlin identifier",
			werror.SafeParam("functionName", b.name))
	}
	if b.receiver != nil && b.receiver.IsZero() {
		return FunSpec{}, werror.Error("receiver type is invalid", werror.SafeParam("functionName", name))
	}
	if b.returnType != nil && b.returnType.IsZero() {
		return FunSpec{}, werror.Error("return type is invalid", werror.SafeParam("functionName", name))
	}
	seen := make(map[string]struct{}, len(b.parameters))
	for _, p := range b.parameters {
		if p.name == "" {
			return FunSpec{}, werror.Error("parameter was not constructed through NewParameter",
				werror.SafeParam("functionName", name))
		}
		if _, ok := seen[p.name]; ok {
			return FunSpec{}, werror.Error("duplicate parameter name",
				werror.SafeParam("functionName", name),
				werror.SafeParam("parameterName", p.name))
		}
		seen[p.name] = struct{}{}
	}
	for _, m := range b.modifiers {
		if !m.Valid() {
			return FunSpec{}, werror.Error("unknown function modifier",
				werror.SafeParam("functionName", name),
				werror.SafeParam("modifier", string(m)))
		}
	}
	f := FunSpec{
		name:       name,
		parameters: append([]ParameterSpec(nil), b.parameters...),
		modifiers:  append([]Modifier(nil), b.modifiers...),
		body:       append([]string(nil), b.body...),
	}
	if b.receiver != nil {
		recv := *b.receiver
		f.receiver = &recv
	}
	if b.returnType != nil {
		ret := *b.returnType
		f.returnType = &ret
	}
	return f, nil
}

// ToBuilder returns a builder seeded with a copy of f's state.
func (f FunSpec) ToBuilder() *FunSpecBuilder {
	b := &FunSpecBuilder{
		name:       f.name,
		parameters: append([]ParameterSpec(nil), f.parameters...),
		modifiers:  append([]Modifier(nil), f.modifiers...),
		body:       append([]string(nil), f.body...),
	}
	if f.receiver != nil {
		recv := *f.receiver
		b.receiver = &recv
	}
	if f.returnType != nil {
		ret := *f.returnType
		b.returnType = &ret
	}
	return b
}

// Name returns the function name, backticked if it collides with a keyword.
func (f FunSpec) Name() string {
	return f.name
}

// Parameters returns a copy of the value parameters in declaration order.
func (f FunSpec) Parameters() []ParameterSpec {
	return append([]ParameterSpec(nil), f.parameters...)
}

// ParameterNames returns the parameter names in declaration order.
func (f FunSpec) ParameterNames() []string {
	names := make([]string, len(f.parameters))
	for i, p := range f.parameters {
		names[i] = p.name
	}
	return names
}

// Receiver returns the extension receiver type, if any.
func (f FunSpec) Receiver() (TypeName, bool) {
	if f.receiver == nil {
		return TypeName{}, false
	}
	return *f.receiver, true
}

// ReturnType returns the declared return type, if any.
func (f FunSpec) ReturnType() (TypeName, bool) {
	if f.returnType == nil {
		return TypeName{}, false
	}
	return *f.returnType, true
}

// Modifiers returns a copy of the modifiers in declaration order.
func (f FunSpec) Modifiers() []Modifier {
	return append([]Modifier(nil), f.modifiers...)
}

// HasModifier reports whether m appears in the modifier list.
func (f FunSpec) HasModifier(m Modifier) bool {
	for _, have := range f.modifiers {
		if have == m {
			return true
		}
	}
	return false
}

// Body returns a copy of the body statement lines.
func (f FunSpec) Body() []string {
	return append([]string(nil), f.body...)
}

// PrependStatements returns a copy of f with the given lines inserted before
// the existing body.
func (f FunSpec) PrependStatements(lines ...string) FunSpec {
	body := make([]string, 0, len(lines)+len(f.body))
	body = append(body, lines...)
	body = append(body, f.body...)
	f.body = body
	f.parameters = append([]ParameterSpec(nil), f.parameters...)
	f.modifiers = append([]Modifier(nil), f.modifiers...)
	return f
}

// String renders the full declaration:
//
//	public inline fun <receiver.>name(p1: T1, p2: T2): R {
//	  body...
//	}
//
// Body lines are indented by two spaces per their own nesting plus the
// function body level.
func (f FunSpec) String() string {
	var b strings.Builder
	for _, m := range f.modifiers {
		b.WriteString(string(m))
		b.WriteByte(' ')
	}
	b.WriteString("fun ")
	if f.receiver != nil {
		b.WriteString(receiverToken(*f.receiver))
		b.WriteByte('.')
	}
	b.WriteString(f.name)
	b.WriteByte('(')
	for i, p := range f.parameters {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	if f.returnType != nil {
		b.WriteString(": ")
		b.WriteString(f.returnType.String())
	}
	b.WriteString(" {\n")
	for _, line := range f.body {
		if line == "" {
			b.WriteByte('\n')
			continue
		}
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('}')
	return b.String()
}

// receiverToken parenthesizes bare function-type receivers, which would
// otherwise be ambiguous in the "Recv.name" position.
func receiverToken(t TypeName) string {
	if t.lambda != nil && !t.nullable {
		return "(" + t.String() + ")"
	}
	return t.String()
}
