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

// testFunction builds a signature whose parameters are all nullable Any.
func testFunction(t *testing.T, name string, paramNames ...string) kotlin.FunSpec {
	t.Helper()
	builder := kotlin.NewFunSpec(name)
	for _, paramName := range paramNames {
		builder.AddParameters(kotlin.MustParameter(paramName, kotlin.MustClassName("Any").Nullable()))
	}
	fn, err := builder.Build()
	require.NoError(t, err)
	return fn
}

func notNull(t *testing.T, target int) contract.EffectExpression {
	t.Helper()
	expr, err := contract.NullCheck(target)
	require.NoError(t, err)
	return expr.Negate()
}

func TestNewContract_RequiresEffects(t *testing.T) {
	_, err := contract.NewContract()
	require.EqualError(t, err, "contract requires at least one effect")

	effect, err := contract.Returns(contract.Constant("true"))
	require.NoError(t, err)
	_, err = contract.NewContract(effect)
	require.NoError(t, err)
}

func TestContract_RenderCallsInPlace(t *testing.T) {
	lambda := kotlin.NewLambdaTypeName(kotlin.MustClassName("String"), kotlin.MustClassName("String"))
	body := kotlin.MustParameter("body", lambda)
	fn, err := kotlin.NewFunSpec("transform").
		AddModifiers(kotlin.ModifierInline).
		AddParameters(body).
		Build()
	require.NoError(t, err)

	calls, err := contract.Calls(body, contract.InvocationKindExactlyOnce)
	require.NoError(t, err)
	c, err := contract.NewContract(calls)
	require.NoError(t, err)

	block, err := c.Render(fn)
	require.NoError(t, err)
	assert.Equal(t,
		"contract {\n"+
			"  callsInPlace(body, InvocationKind.EXACTLY_ONCE)\n"+
			"}",
		block)
}

func TestContract_RenderReturnsNotNull(t *testing.T) {
	fn := testFunction(t, "requireValue", "param")
	effect, err := contract.ReturnsNotNull(notNull(t, 1))
	require.NoError(t, err)
	c, err := contract.NewContract(effect)
	require.NoError(t, err)

	block, err := c.Render(fn)
	require.NoError(t, err)
	assert.Equal(t,
		"contract {\n"+
			"  returnsNotNull() implies (param != null)\n"+
			"}",
		block)
}

func TestContract_RenderCombinatorOrder(t *testing.T) {
	// Disjuncts render after conjuncts even when Or was called first: the
	// root's conjunct list and disjunct list are emitted in that fixed
	// order, not in combinator call order.
	fn := testFunction(t, "check", "param1", "param2", "param3")
	expr := notNull(t, 1).Or(notNull(t, 2)).And(notNull(t, 3))
	effect, err := contract.Returns(expr)
	require.NoError(t, err)
	c, err := contract.NewContract(effect)
	require.NoError(t, err)

	block, err := c.Render(fn)
	require.NoError(t, err)
	assert.Equal(t,
		"contract {\n"+
			"  returns() implies (param1 != null && (param3 != null) || (param2 != null))\n"+
			"}",
		block)
}

func TestContract_RenderBooleanReceiver(t *testing.T) {
	fn := testFunction(t, "isValid")
	effect, err := contract.Returns(contract.Constant("true"))
	require.NoError(t, err)
	c, err := contract.NewContract(effect)
	require.NoError(t, err)

	block, err := c.Render(fn)
	require.NoError(t, err)
	assert.Equal(t,
		"contract {\n"+
			"  returns() implies (true)\n"+
			"}",
		block)
}

func TestContract_RenderMultipleEffectsInOrder(t *testing.T) {
	lambda := kotlin.NewLambdaTypeName(kotlin.MustClassName("Unit"))
	blockParam := kotlin.MustParameter("block", lambda)
	fn, err := kotlin.NewFunSpec("withValue").
		AddModifiers(kotlin.ModifierInline).
		AddParameters(
			kotlin.MustParameter("value", kotlin.MustClassName("Any").Nullable()),
			blockParam,
		).
		Build()
	require.NoError(t, err)

	returns, err := contract.Returns(notNull(t, 1))
	require.NoError(t, err)
	calls, err := contract.Calls(blockParam, contract.InvocationKindExactlyOnce)
	require.NoError(t, err)
	c, err := contract.NewContract(returns, calls)
	require.NoError(t, err)

	rendered, err := c.Render(fn)
	require.NoError(t, err)
	assert.Equal(t,
		"contract {\n"+
			"  returns() implies (value != null)\n"+
			"  callsInPlace(block, InvocationKind.EXACTLY_ONCE)\n"+
			"}",
		rendered)
}

func TestContract_RenderIsIdempotent(t *testing.T) {
	fn := testFunction(t, "requireValue", "param")
	effect, err := contract.ReturnsNotNull(notNull(t, 1))
	require.NoError(t, err)
	c, err := contract.NewContract(effect)
	require.NoError(t, err)

	first, err := c.Render(fn)
	require.NoError(t, err)
	second, err := c.Render(fn)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestContract_RenderAgainstMultipleSignatures(t *testing.T) {
	// The contract holds no function reference, so the same value renders
	// against any signature with enough parameters.
	effect, err := contract.ReturnsNotNull(notNull(t, 1))
	require.NoError(t, err)
	c, err := contract.NewContract(effect)
	require.NoError(t, err)

	first, err := c.Render(testFunction(t, "requireA", "a"))
	require.NoError(t, err)
	second, err := c.Render(testFunction(t, "requireB", "b"))
	require.NoError(t, err)
	assert.Equal(t, "contract {\n  returnsNotNull() implies (a != null)\n}", first)
	assert.Equal(t, "contract {\n  returnsNotNull() implies (b != null)\n}", second)
}

func TestContract_RenderTargetBeyondArity(t *testing.T) {
	fn := testFunction(t, "check", "only")
	effect, err := contract.Returns(notNull(t, 3))
	require.NoError(t, err)
	c, err := contract.NewContract(effect)
	require.NoError(t, err)

	_, err = c.Render(fn)
	require.EqualError(t, err, "parameter target exceeds the function's parameter count")
}

func TestContract_RenderReceiverToken(t *testing.T) {
	fn, err := kotlin.NewFunSpec("isNullOrBlank").
		Receiver(kotlin.MustClassName("CharSequence").Nullable()).
		Returns(kotlin.MustClassName("Boolean")).
		Build()
	require.NoError(t, err)

	nullCheck, err := contract.NullCheck(contract.ReceiverTarget)
	require.NoError(t, err)
	effect, err := contract.ReturnsValue("false", nullCheck.Negate())
	require.NoError(t, err)
	c, err := contract.NewContract(effect)
	require.NoError(t, err)

	block, err := c.Render(fn)
	require.NoError(t, err)
	assert.Equal(t,
		"contract {\n"+
			"  returns(false) implies (this@isNullOrBlank != null)\n"+
			"}",
		block)
}

func TestContract_AttachTo(t *testing.T) {
	lambda := kotlin.NewLambdaTypeName(kotlin.MustClassName("Unit"))
	body := kotlin.MustParameter("body", lambda)
	fn, err := kotlin.NewFunSpec("runOnce").
		AddModifiers(kotlin.ModifierPublic, kotlin.ModifierInline).
		AddParameters(body).
		AddStatement("body()").
		Build()
	require.NoError(t, err)

	calls, err := contract.Calls(body, contract.InvocationKindExactlyOnce)
	require.NoError(t, err)
	c, err := contract.NewContract(calls)
	require.NoError(t, err)

	attached, err := c.AttachTo(fn)
	require.NoError(t, err)
	assert.Equal(t,
		"public inline fun runOnce(body: () -> Unit) {\n"+
			"  contract {\n"+
			"    callsInPlace(body, InvocationKind.EXACTLY_ONCE)\n"+
			"  }\n"+
			"  body()\n"+
			"}",
		attached.String())
	// The input declaration is unchanged.
	assert.Equal(t, []string{"body()"}, fn.Body())
}

func TestContract_AttachToRequiresInline(t *testing.T) {
	lambda := kotlin.NewLambdaTypeName(kotlin.MustClassName("Unit"))
	body := kotlin.MustParameter("body", lambda)
	fn, err := kotlin.NewFunSpec("runOnce").AddParameters(body).Build()
	require.NoError(t, err)

	calls, err := contract.Calls(body, contract.InvocationKindExactlyOnce)
	require.NoError(t, err)
	c, err := contract.NewContract(calls)
	require.NoError(t, err)

	_, err = c.AttachTo(fn)
	require.EqualError(t, err, "contracts with callsInPlace effects require an inline function")

	inlined, err := fn.ToBuilder().AddModifiers(kotlin.ModifierInline).Build()
	require.NoError(t, err)
	_, err = c.AttachTo(inlined)
	require.NoError(t, err)
}

func TestContract_AttachToWithoutCallsDoesNotRequireInline(t *testing.T) {
	fn := testFunction(t, "requireValue", "param")
	effect, err := contract.ReturnsNotNull(notNull(t, 1))
	require.NoError(t, err)
	c, err := contract.NewContract(effect)
	require.NoError(t, err)

	attached, err := c.AttachTo(fn)
	require.NoError(t, err)
	assert.Equal(t,
		"fun requireValue(param: Any?) {\n"+
			"  contract {\n"+
			"    returnsNotNull() implies (param != null)\n"+
			"  }\n"+
			"}",
		attached.String())
}

func TestContract_Equality(t *testing.T) {
	returnsTrue := func(t *testing.T) contract.Contract {
		t.Helper()
		effect, err := contract.Returns(contract.Constant("true"))
		require.NoError(t, err)
		c, err := contract.NewContract(effect)
		require.NoError(t, err)
		return c
	}

	a := returnsTrue(t)
	b := returnsTrue(t)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.CanonicalString(), b.CanonicalString())

	other, err := contract.ReturnsNotNull(notNull(t, 1))
	require.NoError(t, err)
	different, err := contract.NewContract(other)
	require.NoError(t, err)
	assert.False(t, a.Equal(different))
}

func TestContract_EffectOrderAffectsEquality(t *testing.T) {
	first, err := contract.Returns(contract.Constant("true"))
	require.NoError(t, err)
	second, err := contract.ReturnsNotNull(notNull(t, 1))
	require.NoError(t, err)

	ab, err := contract.NewContract(first, second)
	require.NoError(t, err)
	ba, err := contract.NewContract(second, first)
	require.NoError(t, err)
	assert.False(t, ab.Equal(ba))
}

func TestContractBuilder_DetachedFromBuilt(t *testing.T) {
	effect, err := contract.Returns(contract.Constant("true"))
	require.NoError(t, err)
	builder := contract.NewContractBuilder().AddEffects(effect)
	built, err := builder.Build()
	require.NoError(t, err)

	extra, err := contract.ReturnsNotNull(notNull(t, 1))
	require.NoError(t, err)
	builder.AddEffects(extra)
	assert.Len(t, built.Effects(), 1)

	rebuilt, err := built.ToBuilder().AddEffects(extra).Build()
	require.NoError(t, err)
	assert.Len(t, built.Effects(), 1)
	assert.Len(t, rebuilt.Effects(), 2)
}

func TestContractBuilder_RejectsZeroEffect(t *testing.T) {
	_, err := contract.NewContract(contract.ContractEffect{})
	require.EqualError(t, err, "effect was not constructed through an effect builder")
}
