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

// Package kotlin models the slice of Kotlin declarations that function
// contracts attach to: type references, value parameters and function
// declarations, each rendered in canonical Kotlin source form.
package kotlin

import (
	"regexp"
	"strings"

	werror "github.com/palantir/witchcraft-go-error"

	"github.com/ZacSweers/kotlinpoet-contracts/internal/kotlinsyntax"
)

// functionClassPattern matches the kotlin.FunctionN classifier family, which
// denotes function types when they surface as plain class references
// (e.g. out of compiled metadata).
var functionClassPattern = regexp.MustCompile(`^kotlin\.Function\d+$`)

// TypeName is an immutable reference to a Kotlin type: either a (possibly
// dotted) class reference or a function type, with an orthogonal nullability
// marker. The zero value is not a valid type; construct through NewClassName,
// NewLambdaTypeName or ParseTypeName.
type TypeName struct {
	className string
	nullable  bool
	lambda    *lambdaType
}

type lambdaType struct {
	receiver   *TypeName
	parameters []TypeName
	returnType TypeName
	suspending bool
}

// NewClassName returns a TypeName for a class reference such as "String",
// "kotlin.Any" or "List<String>". Each dotted segment must be a Kotlin
// identifier, optionally carrying a generic argument list.
func NewClassName(name string) (TypeName, error) {
	if err := validateClassName(name); err != nil {
		return TypeName{}, err
	}
	return TypeName{className: name}, nil
}

// MustClassName is a convenience for statically known class names; it panics
// on invalid input.
func MustClassName(name string) TypeName {
	t, err := NewClassName(name)
	if err != nil {
		panic(err)
	}
	return t
}

// NewLambdaTypeName returns a function type "(P1, P2) -> R".
func NewLambdaTypeName(returnType TypeName, parameters ...TypeName) TypeName {
	params := make([]TypeName, len(parameters))
	copy(params, parameters)
	return TypeName{lambda: &lambdaType{parameters: params, returnType: returnType}}
}

// NewReceiverLambdaTypeName returns a function type with a receiver,
// "Recv.(P1) -> R".
func NewReceiverLambdaTypeName(receiver, returnType TypeName, parameters ...TypeName) TypeName {
	t := NewLambdaTypeName(returnType, parameters...)
	t.lambda.receiver = &receiver
	return t
}

// Suspending returns a copy marked as a suspend function type. It has no
// effect on class references.
func (t TypeName) Suspending() TypeName {
	if t.lambda == nil {
		return t
	}
	inner := *t.lambda
	inner.suspending = true
	t.lambda = &inner
	return t
}

// Nullable returns a copy of t marked nullable.
func (t TypeName) Nullable() TypeName {
	t.nullable = true
	return t
}

// NonNull returns a copy of t with the nullable marker cleared.
func (t TypeName) NonNull() TypeName {
	t.nullable = false
	return t
}

// IsNullable reports whether t carries the nullable marker.
func (t TypeName) IsNullable() bool {
	return t.nullable
}

// IsFunctionType reports whether t denotes a function type, either as a
// lambda shape or as a kotlin.FunctionN class reference.
func (t TypeName) IsFunctionType() bool {
	if t.lambda != nil {
		return true
	}
	return functionClassPattern.MatchString(t.className)
}

// IsZero reports whether t is the zero TypeName, which is not a valid type.
func (t TypeName) IsZero() bool {
	return t.className == "" && t.lambda == nil
}

// String renders the canonical Kotlin source form: "String?",
// "(String) -> String", "suspend () -> Unit", "String.(Int) -> Unit".
// Nullable function types are parenthesized: "((String) -> String)?".
func (t TypeName) String() string {
	if t.lambda == nil {
		if t.nullable {
			return t.className + "?"
		}
		return t.className
	}
	var b strings.Builder
	if t.lambda.suspending {
		b.WriteString("suspend ")
	}
	if t.lambda.receiver != nil {
		b.WriteString(t.lambda.receiver.String())
		b.WriteByte('.')
	}
	b.WriteByte('(')
	for i, p := range t.lambda.parameters {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(") -> ")
	b.WriteString(t.lambda.returnType.String())
	if t.nullable {
		return "(" + b.String() + ")?"
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler (used by encoding/json and others).
func (t TypeName) MarshalText() ([]byte, error) {
	if t.IsZero() {
		return nil, werror.Error("cannot marshal zero TypeName")
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler (used by encoding/json and others).
func (t *TypeName) UnmarshalText(text []byte) error {
	parsed, err := ParseTypeName(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTypeName parses the canonical source form produced by TypeName.String.
func ParseTypeName(s string) (TypeName, error) {
	t, err := parseType(strings.TrimSpace(s))
	if err != nil {
		return TypeName{}, werror.Wrap(err, "invalid Kotlin type", werror.SafeParam("type", s))
	}
	return t, nil
}

func parseType(s string) (TypeName, error) {
	if s == "" {
		return TypeName{}, werror.Error("type is empty")
	}
	if rest, ok := strings.CutPrefix(s, "suspend "); ok {
		inner, err := parseType(strings.TrimSpace(rest))
		if err != nil {
			return TypeName{}, err
		}
		if inner.lambda == nil {
			return TypeName{}, werror.Error("suspend modifier requires a function type", werror.SafeParam("type", s))
		}
		return inner.Suspending(), nil
	}
	// A trailing "?" marks the whole type nullable only when no top-level
	// arrow follows it: in "(String) -> String?" the marker binds to the
	// return type, while "((String) -> String)?" is a nullable function type.
	if strings.HasSuffix(s, "?") && topLevelIndex(s, " -> ") < 0 {
		inner, err := parseType(strings.TrimSpace(strings.TrimSuffix(s, "?")))
		if err != nil {
			return TypeName{}, err
		}
		return inner.Nullable(), nil
	}
	// A fully parenthesized group wraps a nested type, e.g. "((A) -> B)".
	if inner, ok := unwrapGroup(s); ok {
		return parseType(inner)
	}
	if arrow := topLevelIndex(s, " -> "); arrow >= 0 {
		return parseLambda(s[:arrow], strings.TrimSpace(s[arrow+4:]))
	}
	if err := validateClassName(s); err != nil {
		return TypeName{}, err
	}
	return TypeName{className: s}, nil
}

func parseLambda(lhs, returnPart string) (TypeName, error) {
	lhs = strings.TrimSpace(lhs)
	ret, err := parseType(returnPart)
	if err != nil {
		return TypeName{}, err
	}

	var receiver *TypeName
	if dot := topLevelIndex(lhs, ".("); dot >= 0 {
		recv, err := parseType(lhs[:dot])
		if err != nil {
			return TypeName{}, err
		}
		receiver = &recv
		lhs = lhs[dot+1:]
	}
	if !strings.HasPrefix(lhs, "(") || !strings.HasSuffix(lhs, ")") {
		return TypeName{}, werror.Error("function type parameters must be parenthesized", werror.SafeParam("parameters", lhs))
	}

	var params []TypeName
	for _, piece := range splitTopLevel(lhs[1 : len(lhs)-1]) {
		p, err := parseType(strings.TrimSpace(piece))
		if err != nil {
			return TypeName{}, err
		}
		params = append(params, p)
	}
	t := TypeName{lambda: &lambdaType{receiver: receiver, parameters: params, returnType: ret}}
	return t, nil
}

// unwrapGroup strips one pair of outer parentheses when they enclose the whole
// string and the content still contains a top-level arrow (so "(String)" is
// not mistaken for a group).
func unwrapGroup(s string) (string, bool) {
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return "", false
	}
	inner := s[1 : len(s)-1]
	if !balanced(inner) {
		return "", false
	}
	if topLevelIndex(inner, " -> ") < 0 {
		return "", false
	}
	return inner, true
}

func balanced(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '(' || s[i] == '<':
			depth++
		case s[i] == ')' || closingAngle(s, i):
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// topLevelIndex returns the index of the first occurrence of sub outside any
// parenthesized or generic-argument nesting, or -1.
func topLevelIndex(s, sub string) int {
	depth := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		switch {
		case s[i] == '(' || s[i] == '<':
			depth++
		case s[i] == ')' || closingAngle(s, i):
			depth--
		}
		if depth == 0 && strings.HasPrefix(s[i:], sub) {
			return i
		}
	}
	return -1
}

func splitTopLevel(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var pieces []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '(' || s[i] == '<':
			depth++
		case s[i] == ')' || closingAngle(s, i):
			depth--
		case s[i] == ',':
			if depth == 0 {
				pieces = append(pieces, s[start:i])
				start = i + 1
			}
		}
	}
	return append(pieces, s[start:])
}

// closingAngle reports whether s[i] closes a generic-argument list. The ">"
// of a "->" arrow is not a closer.
func closingAngle(s string, i int) bool {
	return s[i] == '>' && (i == 0 || s[i-1] != '-')
}

var classSegmentPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(<.+>)?$`)

func validateClassName(name string) error {
	if name == "" {
		return werror.Error("class name is empty")
	}
	for _, segment := range splitDotted(name) {
		if classSegmentPattern.MatchString(segment) && !kotlinsyntax.IsHardKeyword(segment) {
			continue
		}
		if kotlinsyntax.IsIdentifier(segment) {
			continue
		}
		return werror.Error("class name segment is not a valid Kotlin identifier",
			werror.SafeParam("segment", segment),
			werror.SafeParam("className", name))
	}
	return nil
}

// splitDotted splits a dotted class reference on dots outside generic
// arguments, so "kotlin.collections.List<Map.Entry<K, V>>" has three segments.
func splitDotted(name string) []string {
	var segments []string
	depth, start := 0, 0
	for i := 0; i < len(name); i++ {
		switch {
		case name[i] == '<':
			depth++
		case closingAngle(name, i):
			depth--
		case name[i] == '.':
			if depth == 0 {
				segments = append(segments, name[start:i])
				start = i + 1
			}
		}
	}
	return append(segments, name[start:])
}
