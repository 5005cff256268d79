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

// EffectType discriminates the three contract effect kinds.
type EffectType string

const (
	// EffectTypeReturnsConstant renders as "returns()" or "returns(value)"
	// followed by an implies clause.
	EffectTypeReturnsConstant EffectType = "RETURNS_CONSTANT"
	// EffectTypeReturnsNotNull renders as "returnsNotNull()" followed by an
	// implies clause.
	EffectTypeReturnsNotNull EffectType = "RETURNS_NOT_NULL"
	// EffectTypeCalls renders as "callsInPlace(param, kind)".
	EffectTypeCalls EffectType = "CALLS"
)

// Valid reports whether t is one of the three effect types.
func (t EffectType) Valid() bool {
	switch t {
	case EffectTypeReturnsConstant, EffectTypeReturnsNotNull, EffectTypeCalls:
		return true
	}
	return false
}

func (t EffectType) String() string {
	return string(t)
}

// InvocationKind is the cardinality guarantee a callsInPlace effect states
// for how many times the function invokes a function-typed parameter.
type InvocationKind string

const (
	InvocationKindAtMostOnce  InvocationKind = "AT_MOST_ONCE"
	InvocationKindAtLeastOnce InvocationKind = "AT_LEAST_ONCE"
	InvocationKindExactlyOnce InvocationKind = "EXACTLY_ONCE"
	InvocationKindUnknown     InvocationKind = "UNKNOWN"
)

// Valid reports whether k is one of the four invocation kinds.
func (k InvocationKind) Valid() bool {
	switch k {
	case InvocationKindAtMostOnce, InvocationKindAtLeastOnce, InvocationKindExactlyOnce, InvocationKindUnknown:
		return true
	}
	return false
}

func (k InvocationKind) String() string {
	return string(k)
}

// Token returns the qualified source token, e.g.
// "InvocationKind.EXACTLY_ONCE".
func (k InvocationKind) Token() string {
	return "InvocationKind." + string(k)
}

// ContractEffect is one immutable effect inside a contract. Per-kind
// structure is validated at construction; see EffectBuilder.Build.
type ContractEffect struct {
	effectType EffectType
	invocation InvocationKind
	args       []EffectExpression
	conclusion *EffectExpression
}

// Returns builds the effect "returns() implies (conclusion)".
func Returns(conclusion EffectExpression) (ContractEffect, error) {
	return NewEffect(EffectTypeReturnsConstant).Conclusion(conclusion).Build()
}

// ReturnsValue builds the effect "returns(value) implies (conclusion)". The
// value token is emitted verbatim; the null literal is permitted here, where
// it is a returned value rather than a comparison operand.
func ReturnsValue(value string, conclusion EffectExpression) (ContractEffect, error) {
	return NewEffect(EffectTypeReturnsConstant).
		ConstructorArguments(Constant(value)).
		Conclusion(conclusion).
		Build()
}

// ReturnsNotNull builds the effect "returnsNotNull() implies (conclusion)".
func ReturnsNotNull(conclusion EffectExpression) (ContractEffect, error) {
	return NewEffect(EffectTypeReturnsNotNull).Conclusion(conclusion).Build()
}

// Calls builds the effect "callsInPlace(param, kind)". The parameter's
// declared type must be a function type.
func Calls(param kotlin.ParameterSpec, kind InvocationKind) (ContractEffect, error) {
	if !param.Type().IsFunctionType() {
		return ContractEffect{}, werror.Error("callsInPlace is only applicable to function parameters",
			werror.SafeParam("parameterName", param.Name()),
			werror.SafeParam("parameterType", param.Type().String()))
	}
	return NewEffect(EffectTypeCalls).
		ConstructorArguments(ParameterReference(param.Name())).
		Invocation(kind).
		Build()
}

// Type returns the effect kind.
func (e ContractEffect) Type() EffectType {
	return e.effectType
}

// InvocationKind returns the invocation kind and whether one is set. Only
// CALLS effects carry one.
func (e ContractEffect) InvocationKind() (InvocationKind, bool) {
	return e.invocation, e.invocation != ""
}

// ConstructorArguments returns a copy of the constructor argument list.
func (e ContractEffect) ConstructorArguments() []EffectExpression {
	return append([]EffectExpression(nil), e.args...)
}

// Conclusion returns the implies-clause expression and whether one is set.
func (e ContractEffect) Conclusion() (EffectExpression, bool) {
	if e.conclusion == nil {
		return EffectExpression{}, false
	}
	return *e.conclusion, true
}

// CanonicalString renders e against the fixed placeholder signature; see
// EffectExpression.CanonicalString.
func (e ContractEffect) CanonicalString() string {
	buf := renderBuffers.Get()
	defer renderBuffers.Put(buf)
	_ = writeEffect(buf, e, canonicalResolver())
	return buf.String()
}

// Equal reports whether e and other render identically.
func (e ContractEffect) Equal(other ContractEffect) bool {
	return e.CanonicalString() == other.CanonicalString()
}

// Render emits the single effect line against sig, e.g.
// "returnsNotNull() implies (value != null)".
func (e ContractEffect) Render(sig Signature) (string, error) {
	buf := renderBuffers.Get()
	defer renderBuffers.Put(buf)
	if err := writeEffect(buf, e, resolverFor(sig)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// EffectBuilder is the mutable staging structure for ContractEffect. Build
// is the single place the per-kind structure table is enforced:
//
//	RETURNS_NOT_NULL   no constructor arguments   conclusion required
//	RETURNS_CONSTANT   at most one argument       conclusion required
//	CALLS              exactly one argument       no conclusion, kind required
type EffectBuilder struct {
	effectType EffectType
	invocation InvocationKind
	args       []EffectExpression
	conclusion *EffectExpression
}

// NewEffect starts a builder for the given effect kind.
func NewEffect(effectType EffectType) *EffectBuilder {
	return &EffectBuilder{effectType: effectType}
}

// ToBuilder returns a builder seeded with a copy of e's state.
func (e ContractEffect) ToBuilder() *EffectBuilder {
	b := &EffectBuilder{
		effectType: e.effectType,
		invocation: e.invocation,
		args:       append([]EffectExpression(nil), e.args...),
	}
	if e.conclusion != nil {
		conclusion := *e.conclusion
		b.conclusion = &conclusion
	}
	return b
}

// ConstructorArguments appends constructor arguments.
func (b *EffectBuilder) ConstructorArguments(args ...EffectExpression) *EffectBuilder {
	b.args = append(b.args, args...)
	return b
}

// Conclusion sets the implies-clause expression.
func (b *EffectBuilder) Conclusion(expr EffectExpression) *EffectBuilder {
	b.conclusion = &expr
	return b
}

// Invocation sets the invocation kind.
func (b *EffectBuilder) Invocation(kind InvocationKind) *EffectBuilder {
	b.invocation = kind
	return b
}

// Build validates the staged effect against the per-kind structure table and
// returns the immutable effect.
func (b *EffectBuilder) Build() (ContractEffect, error) {
	if !b.effectType.Valid() {
		return ContractEffect{}, werror.Error("unknown effect type",
			werror.SafeParam("effectType", string(b.effectType)))
	}
	if b.invocation != "" && !b.invocation.Valid() {
		return ContractEffect{}, werror.Error("unknown invocation kind",
			werror.SafeParam("invocationKind", string(b.invocation)))
	}
	switch b.effectType {
	case EffectTypeReturnsNotNull:
		if len(b.args) != 0 {
			return ContractEffect{}, werror.Error("returnsNotNull effects accept no constructor arguments",
				werror.SafeParam("constructorArguments", len(b.args)))
		}
		if b.conclusion == nil {
			return ContractEffect{}, werror.Error("returnsNotNull effects require a conclusion")
		}
		if b.invocation != "" {
			return ContractEffect{}, werror.Error("invocation kind is only applicable to callsInPlace effects",
				werror.SafeParam("effectType", string(b.effectType)))
		}
	case EffectTypeReturnsConstant:
		if len(b.args) > 1 {
			return ContractEffect{}, werror.Error("returns effects accept at most one constructor argument",
				werror.SafeParam("constructorArguments", len(b.args)))
		}
		if b.conclusion == nil {
			return ContractEffect{}, werror.Error("returns effects require a conclusion")
		}
		if b.invocation != "" {
			return ContractEffect{}, werror.Error("invocation kind is only applicable to callsInPlace effects",
				werror.SafeParam("effectType", string(b.effectType)))
		}
	case EffectTypeCalls:
		if len(b.args) != 1 {
			return ContractEffect{}, werror.Error("callsInPlace effects require exactly one constructor argument",
				werror.SafeParam("constructorArguments", len(b.args)))
		}
		if b.conclusion != nil {
			return ContractEffect{}, werror.Error("callsInPlace effects cannot carry a conclusion")
		}
		if b.invocation == "" {
			return ContractEffect{}, werror.Error("callsInPlace effects require an invocation kind")
		}
	}
	e := ContractEffect{
		effectType: b.effectType,
		invocation: b.invocation,
		args:       append([]EffectExpression(nil), b.args...),
	}
	if b.conclusion != nil {
		conclusion := *b.conclusion
		e.conclusion = &conclusion
	}
	return e, nil
}
