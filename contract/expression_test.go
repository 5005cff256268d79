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

package contract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZacSweers/kotlinpoet-contracts/contract"
	"github.com/ZacSweers/kotlinpoet-contracts/kotlin"
)

func TestExpression_RenderForms(t *testing.T) {
	fn := testFunction(t, "check", "value")
	stringType := kotlin.MustClassName("String")

	nullCheck, err := contract.NullCheck(1)
	require.NoError(t, err)
	instance, err := contract.IsInstance(1, stringType)
	require.NoError(t, err)
	comparison, err := contract.ConstantComparison(1, "true")
	require.NoError(t, err)

	for _, test := range []struct {
		Name       string
		Expression contract.EffectExpression
		Expected   string
	}{
		{Name: "null check", Expression: nullCheck, Expected: "(value == null)"},
		{Name: "negated null check", Expression: nullCheck.Negate(), Expected: "(value != null)"},
		{Name: "double negation restores", Expression: nullCheck.Negate().Negate(), Expected: "(value == null)"},
		{Name: "instance check", Expression: instance, Expected: "(value is String)"},
		{Name: "negated instance check", Expression: instance.Negate(), Expected: "(value !is String)"},
		{Name: "constant comparison", Expression: comparison, Expected: "(value == true)"},
		{Name: "negated constant comparison", Expression: comparison.Negate(), Expected: "(value != true)"},
		{Name: "bare constant", Expression: contract.Constant("true"), Expected: "(true)"},
		{Name: "parameter reference", Expression: contract.ParameterReference("value"), Expected: "(value)"},
	} {
		t.Run(test.Name, func(t *testing.T) {
			rendered, err := test.Expression.Render(fn)
			require.NoError(t, err)
			assert.Equal(t, test.Expected, rendered)
		})
	}
}

func TestExpression_FactoryErrors(t *testing.T) {
	_, err := contract.NullCheck(-1)
	require.EqualError(t, err, "parameter target must be non-negative")

	_, err = contract.IsInstance(-2, kotlin.MustClassName("String"))
	require.EqualError(t, err, "parameter target must be non-negative")

	_, err = contract.IsInstance(1, kotlin.TypeName{})
	require.EqualError(t, err, "instance check requires a type")

	_, err = contract.ConstantComparison(-1, "true")
	require.EqualError(t, err, "parameter target must be non-negative")

	_, err = contract.ConstantComparison(1, "null")
	require.EqualError(t, err, "null literal comparison must use a null check")
}

func TestExpression_CombinatorsFlattenOntoRoot(t *testing.T) {
	a := notNull(t, 1)
	b := notNull(t, 2)
	c := notNull(t, 3)
	d := notNull(t, 4)

	combined := a.And(b).Or(c).And(d)
	assert.Len(t, combined.AndArguments(), 2)
	assert.Len(t, combined.OrArguments(), 1)

	fn := testFunction(t, "check", "p1", "p2", "p3", "p4")
	rendered, err := combined.Render(fn)
	require.NoError(t, err)
	assert.Equal(t, "(p1 != null && (p2 != null) && (p4 != null) || (p3 != null))", rendered)
}

func TestExpression_CombinatorsDoNotMutate(t *testing.T) {
	base := notNull(t, 1)
	withAnd := base.And(notNull(t, 2))

	assert.Empty(t, base.AndArguments())
	assert.Len(t, withAnd.AndArguments(), 1)

	// Diverging from the same value must not cross-contaminate.
	left := withAnd.And(notNull(t, 3))
	right := withAnd.And(notNull(t, 4))
	fn := testFunction(t, "check", "p1", "p2", "p3", "p4")
	leftText, err := left.Render(fn)
	require.NoError(t, err)
	rightText, err := right.Render(fn)
	require.NoError(t, err)
	assert.Equal(t, "(p1 != null && (p2 != null) && (p3 != null))", leftText)
	assert.Equal(t, "(p1 != null && (p2 != null) && (p4 != null))", rightText)
}

func TestExpression_BareConstantIgnoresCombinatorArguments(t *testing.T) {
	expr := contract.Constant("true").And(notNull(t, 1)).Or(notNull(t, 2))
	rendered, err := expr.Render(testFunction(t, "check", "param"))
	require.NoError(t, err)
	assert.Equal(t, "(true)", rendered)
}

func TestExpression_ReceiverTargetToken(t *testing.T) {
	nullCheck, err := contract.NullCheck(contract.ReceiverTarget)
	require.NoError(t, err)
	rendered, err := nullCheck.Negate().Render(testFunction(t, "isNotNull"))
	require.NoError(t, err)
	assert.Equal(t, "(this@isNotNull != null)", rendered)
}

func TestExpression_TextualEquality(t *testing.T) {
	// Equality is defined by rendered text: a null check against p1 and a
	// bare token spelling the same text compare equal despite having
	// different shapes.
	nullCheck, err := contract.NullCheck(1)
	require.NoError(t, err)
	bare := contract.Constant("p1 == null")

	assert.True(t, nullCheck.Equal(bare))
	assert.Equal(t, nullCheck.CanonicalString(), bare.CanonicalString())

	byCanonical := map[string]int{}
	byCanonical[nullCheck.CanonicalString()]++
	byCanonical[bare.CanonicalString()]++
	assert.Equal(t, map[string]int{"(p1 == null)": 2}, byCanonical)

	assert.False(t, nullCheck.Equal(nullCheck.Negate()))
}

func TestExpression_CanonicalStringPlaceholders(t *testing.T) {
	receiverCheck, err := contract.NullCheck(contract.ReceiverTarget)
	require.NoError(t, err)
	assert.Equal(t, "(this == null)", receiverCheck.CanonicalString())

	paramCheck, err := contract.NullCheck(12)
	require.NoError(t, err)
	assert.Equal(t, "(p12 == null)", paramCheck.CanonicalString())
}

func TestExpressionBuilder_Build(t *testing.T) {
	expr, err := contract.NewExpression().
		Target(2).
		Negated(true).
		InstanceOf(kotlin.MustClassName("String")).
		Build()
	require.NoError(t, err)
	rendered, err := expr.Render(testFunction(t, "check", "a", "b"))
	require.NoError(t, err)
	assert.Equal(t, "(b !is String)", rendered)
}

func TestExpressionBuilder_Errors(t *testing.T) {
	for _, test := range []struct {
		Name          string
		Builder       *contract.ExpressionBuilder
		ExpectedError string
	}{
		{
			Name:          "negative target",
			Builder:       contract.NewExpression().Target(-1).NullCheck(true),
			ExpectedError: "parameter target must be non-negative",
		},
		{
			Name:          "target without predicate",
			Builder:       contract.NewExpression().Target(1),
			ExpectedError: "expression with a parameter target requires a predicate",
		},
		{
			Name:          "two predicates",
			Builder:       contract.NewExpression().Target(1).NullCheck(true).Constant("true"),
			ExpectedError: "null check, constant comparison and instance check are mutually exclusive",
		},
		{
			Name:          "null literal comparison",
			Builder:       contract.NewExpression().Target(1).Constant("null"),
			ExpectedError: "null literal comparison must use a null check",
		},
		{
			Name:          "null check without target",
			Builder:       contract.NewExpression().NullCheck(true),
			ExpectedError: "null check and instance check expressions require a parameter target",
		},
		{
			Name:          "empty builder",
			Builder:       contract.NewExpression(),
			ExpectedError: "expression without a parameter target requires a constant token",
		},
	} {
		t.Run(test.Name, func(t *testing.T) {
			_, err := test.Builder.Build()
			require.EqualError(t, err, test.ExpectedError)
		})
	}
}

func TestExpressionBuilder_SnapshotOnBuild(t *testing.T) {
	builder := contract.NewExpression().Target(1).NullCheck(true)
	built, err := builder.Build()
	require.NoError(t, err)

	builder.Negated(true).AndArguments(notNull(t, 2))
	assert.Equal(t, "(p1 == null)", built.CanonicalString())

	rebuilt, err := builder.Build()
	require.NoError(t, err)
	assert.Equal(t, "(p1 != null && (p2 != null))", rebuilt.CanonicalString())
}

func TestExpression_ToBuilderRoundTrip(t *testing.T) {
	original := notNull(t, 1).And(notNull(t, 2)).Or(notNull(t, 3))
	rebuilt, err := original.ToBuilder().Build()
	require.NoError(t, err)
	assert.True(t, original.Equal(rebuilt))

	extended, err := original.ToBuilder().OrArguments(notNull(t, 4)).Build()
	require.NoError(t, err)
	assert.Equal(t, "(p1 != null && (p2 != null) || (p3 != null))", original.CanonicalString())
	assert.Equal(t, "(p1 != null && (p2 != null) || (p3 != null) || (p4 != null))", extended.CanonicalString())
}

func TestExpression_Accessors(t *testing.T) {
	instance, err := contract.IsInstance(2, kotlin.MustClassName("String"))
	require.NoError(t, err)

	target, hasTarget := instance.Target()
	assert.True(t, hasTarget)
	assert.Equal(t, 2, target)

	typ, hasType := instance.InstanceType()
	assert.True(t, hasType)
	assert.Equal(t, "String", typ.String())

	_, hasConstant := instance.ConstantValue()
	assert.False(t, hasConstant)
	assert.False(t, instance.IsNegated())
	assert.False(t, instance.IsNullCheck())

	bare := contract.Constant("false")
	_, hasTarget = bare.Target()
	assert.False(t, hasTarget)
	token, hasConstant := bare.ConstantValue()
	assert.True(t, hasConstant)
	assert.Equal(t, "false", token)
}
