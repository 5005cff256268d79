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

package contract

import (
	werror "github.com/palantir/witchcraft-go-error"

	"github.com/ZacSweers/kotlinpoet-contracts/kotlin"
)

// ReceiverTarget addresses the function's receiver value; parameter targets
// start at 1 for the first declared parameter.
const ReceiverTarget = 0

// nullLiteral is the Kotlin null token. Comparisons against it must go
// through NullCheck so that they render with the null-check operators.
const nullLiteral = "null"

// EffectExpression is one immutable boolean proposition inside a contract
// effect: a null check, an instance check or a constant comparison against a
// parameter or the receiver, or a bare token (a literal or a parameter name
// used as a call argument). Conjuncts and disjuncts attach to the root node
// as flat sibling lists via And and Or.
type EffectExpression struct {
	negated      bool
	nullCheck    bool
	target       int
	hasTarget    bool
	constant     string
	hasConstant  bool
	instanceType *kotlin.TypeName
	andArgs      []EffectExpression
	orArgs       []EffectExpression
}

// NullCheck returns the proposition "<target> == null". Negate flips it to
// "!= null". The target addresses the receiver (ReceiverTarget) or a 1-based
// parameter position.
func NullCheck(target int) (EffectExpression, error) {
	if err := validateTarget(target); err != nil {
		return EffectExpression{}, err
	}
	return EffectExpression{nullCheck: true, target: target, hasTarget: true}, nil
}

// IsInstance returns the proposition "<target> is <typ>". Negate flips it to
// "!is".
func IsInstance(target int, typ kotlin.TypeName) (EffectExpression, error) {
	if err := validateTarget(target); err != nil {
		return EffectExpression{}, err
	}
	if typ.IsZero() {
		return EffectExpression{}, werror.Error("instance check requires a type")
	}
	return EffectExpression{instanceType: &typ, target: target, hasTarget: true}, nil
}

// Constant returns a bare literal proposition. The token is emitted verbatim,
// e.g. Constant("true") renders as "(true)" in conclusion position.
func Constant(token string) EffectExpression {
	return EffectExpression{constant: token, hasConstant: true}
}

// ConstantComparison returns the proposition "<target> == <token>". Negate
// flips it to "!=". Comparisons against the null literal are rejected; use
// NullCheck for those so the dedicated null operators render.
func ConstantComparison(target int, token string) (EffectExpression, error) {
	if err := validateTarget(target); err != nil {
		return EffectExpression{}, err
	}
	if token == nullLiteral {
		return EffectExpression{}, werror.Error("null literal comparison must use a null check",
			werror.SafeParam("parameterTarget", target))
	}
	return EffectExpression{constant: token, hasConstant: true, target: target, hasTarget: true}, nil
}

// ParameterReference returns an expression that emits the parameter name
// verbatim. It exists for the first constructor argument of callsInPlace
// effects, where the rendered form is the bare name rather than a
// proposition.
func ParameterReference(name string) EffectExpression {
	return EffectExpression{constant: name, hasConstant: true}
}

func validateTarget(target int) error {
	if target < 0 {
		return werror.Error("parameter target must be non-negative",
			werror.SafeParam("parameterTarget", target))
	}
	return nil
}

// Negate returns a copy of e with the comparison operator flipped: "==" to
// "!=", "is" to "!is". Negating a bare token has no rendered effect.
func (e EffectExpression) Negate() EffectExpression {
	e.negated = !e.negated
	return e
}

// And returns a copy of e with other appended to its conjunct list. All
// conjuncts render before any disjunct regardless of the order And and Or
// were called in; see Render.
func (e EffectExpression) And(other EffectExpression) EffectExpression {
	e.andArgs = append(append([]EffectExpression(nil), e.andArgs...), other)
	return e
}

// Or returns a copy of e with other appended to its disjunct list.
func (e EffectExpression) Or(other EffectExpression) EffectExpression {
	e.orArgs = append(append([]EffectExpression(nil), e.orArgs...), other)
	return e
}

// IsNegated reports whether the comparison operator is flipped.
func (e EffectExpression) IsNegated() bool {
	return e.negated
}

// IsNullCheck reports whether e is a null-check proposition.
func (e EffectExpression) IsNullCheck() bool {
	return e.nullCheck
}

// Target returns the parameter target and whether one is set.
func (e EffectExpression) Target() (int, bool) {
	return e.target, e.hasTarget
}

// ConstantValue returns the constant token and whether one is set.
func (e EffectExpression) ConstantValue() (string, bool) {
	return e.constant, e.hasConstant
}

// InstanceType returns the instance-check type and whether one is set.
func (e EffectExpression) InstanceType() (kotlin.TypeName, bool) {
	if e.instanceType == nil {
		return kotlin.TypeName{}, false
	}
	return *e.instanceType, true
}

// AndArguments returns a copy of the conjunct list.
func (e EffectExpression) AndArguments() []EffectExpression {
	return append([]EffectExpression(nil), e.andArgs...)
}

// OrArguments returns a copy of the disjunct list.
func (e EffectExpression) OrArguments() []EffectExpression {
	return append([]EffectExpression(nil), e.orArgs...)
}

// CanonicalString renders e against a fixed placeholder signature ("this"
// for the receiver, "p1", "p2", ... for parameters) in conclusion position.
// Expressions are equal exactly when their canonical strings are equal.
func (e EffectExpression) CanonicalString() string {
	buf := renderBuffers.Get()
	defer renderBuffers.Put(buf)
	// Placeholder targets resolve for every index, so this cannot fail.
	_ = writeExpression(buf, e, canonicalResolver(), false)
	return buf.String()
}

// Equal reports whether e and other render identically. Differently-shaped
// trees that produce the same text are equal.
func (e EffectExpression) Equal(other EffectExpression) bool {
	return e.CanonicalString() == other.CanonicalString()
}

// Render emits the expression against sig in conclusion position, outer
// parentheses included. It fails only when a target addresses a parameter
// position beyond sig's parameter count.
func (e EffectExpression) Render(sig Signature) (string, error) {
	buf := renderBuffers.Get()
	defer renderBuffers.Put(buf)
	if err := writeExpression(buf, e, resolverFor(sig), false); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ExpressionBuilder is a mutable staging structure for EffectExpression.
// Build snapshots the builder, so later mutation never affects built values.
// The metadata-import path assembles expressions through this builder.
type ExpressionBuilder struct {
	negated      bool
	nullCheck    bool
	target       int
	hasTarget    bool
	constant     string
	hasConstant  bool
	instanceType *kotlin.TypeName
	andArgs      []EffectExpression
	orArgs       []EffectExpression
}

// NewExpression starts an empty expression builder.
func NewExpression() *ExpressionBuilder {
	return &ExpressionBuilder{}
}

// ToBuilder returns a builder seeded with a copy of e's state.
func (e EffectExpression) ToBuilder() *ExpressionBuilder {
	b := &ExpressionBuilder{
		negated:     e.negated,
		nullCheck:   e.nullCheck,
		target:      e.target,
		hasTarget:   e.hasTarget,
		constant:    e.constant,
		hasConstant: e.hasConstant,
		andArgs:     append([]EffectExpression(nil), e.andArgs...),
		orArgs:      append([]EffectExpression(nil), e.orArgs...),
	}
	if e.instanceType != nil {
		typ := *e.instanceType
		b.instanceType = &typ
	}
	return b
}

// Target sets the parameter target.
func (b *ExpressionBuilder) Target(target int) *ExpressionBuilder {
	b.target = target
	b.hasTarget = true
	return b
}

// Negated sets the operator-flip flag.
func (b *ExpressionBuilder) Negated(negated bool) *ExpressionBuilder {
	b.negated = negated
	return b
}

// NullCheck marks the expression as a null-check proposition.
func (b *ExpressionBuilder) NullCheck(nullCheck bool) *ExpressionBuilder {
	b.nullCheck = nullCheck
	return b
}

// Constant sets the constant token.
func (b *ExpressionBuilder) Constant(token string) *ExpressionBuilder {
	b.constant = token
	b.hasConstant = true
	return b
}

// InstanceOf sets the instance-check type.
func (b *ExpressionBuilder) InstanceOf(typ kotlin.TypeName) *ExpressionBuilder {
	b.instanceType = &typ
	return b
}

// AndArguments appends conjuncts.
func (b *ExpressionBuilder) AndArguments(exprs ...EffectExpression) *ExpressionBuilder {
	b.andArgs = append(b.andArgs, exprs...)
	return b
}

// OrArguments appends disjuncts.
func (b *ExpressionBuilder) OrArguments(exprs ...EffectExpression) *ExpressionBuilder {
	b.orArgs = append(b.orArgs, exprs...)
	return b
}

// Build validates the staged fields and returns the immutable expression.
// Exactly one of null check, constant and instance type must be staged when
// a target is set; without a target only a bare constant token is valid.
func (b *ExpressionBuilder) Build() (EffectExpression, error) {
	if b.hasTarget {
		if err := validateTarget(b.target); err != nil {
			return EffectExpression{}, err
		}
		active := 0
		for _, set := range []bool{b.nullCheck, b.hasConstant, b.instanceType != nil} {
			if set {
				active++
			}
		}
		switch {
		case active == 0:
			return EffectExpression{}, werror.Error("expression with a parameter target requires a predicate",
				werror.SafeParam("parameterTarget", b.target))
		case active > 1:
			return EffectExpression{}, werror.Error("null check, constant comparison and instance check are mutually exclusive",
				werror.SafeParam("parameterTarget", b.target))
		}
		if b.hasConstant && b.constant == nullLiteral {
			return EffectExpression{}, werror.Error("null literal comparison must use a null check",
				werror.SafeParam("parameterTarget", b.target))
		}
	} else {
		if b.nullCheck || b.instanceType != nil {
			return EffectExpression{}, werror.Error("null check and instance check expressions require a parameter target")
		}
		if !b.hasConstant {
			return EffectExpression{}, werror.Error("expression without a parameter target requires a constant token")
		}
	}
	if b.instanceType != nil && b.instanceType.IsZero() {
		return EffectExpression{}, werror.Error("instance check requires a type")
	}
	e := EffectExpression{
		negated:     b.negated,
		nullCheck:   b.nullCheck,
		target:      b.target,
		hasTarget:   b.hasTarget,
		constant:    b.constant,
		hasConstant: b.hasConstant,
		andArgs:     append([]EffectExpression(nil), b.andArgs...),
		orArgs:      append([]EffectExpression(nil), b.orArgs...),
	}
	if b.instanceType != nil {
		typ := *b.instanceType
		e.instanceType = &typ
	}
	return e, nil
}
