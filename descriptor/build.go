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

package descriptor

import (
	werror "github.com/palantir/witchcraft-go-error"

	"github.com/ZacSweers/kotlinpoet-contracts/contract"
	"github.com/ZacSweers/kotlinpoet-contracts/internal/kotlinsyntax"
	"github.com/ZacSweers/kotlinpoet-contracts/kotlin"
)

// BuiltFunction is one descriptor function converted into the model types.
// Contract is nil when the descriptor declared none.
type BuiltFunction struct {
	Function kotlin.FunSpec
	Contract *contract.Contract
}

// Declaration returns the function with its contract block attached, or the
// function unchanged when there is no contract. Build resolves every target
// and the inline requirement eagerly, so attaching cannot fail afterwards.
func (b BuiltFunction) Declaration() (kotlin.FunSpec, error) {
	if b.Contract == nil {
		return b.Function, nil
	}
	return b.Contract.AttachTo(b.Function)
}

// Build converts every descriptor function into a BuiltFunction, failing on
// the first function that does not construct cleanly. Callers wanting an
// exhaustive report use Validate instead.
func Build(file *File) ([]BuiltFunction, error) {
	built := make([]BuiltFunction, 0, len(file.Functions))
	for i, fn := range file.Functions {
		bf, err := buildFunction(fn)
		if err != nil {
			return nil, werror.Wrap(err, "failed to build descriptor function",
				werror.SafeParam("functionIndex", i),
				werror.SafeParam("functionName", fn.Name))
		}
		built = append(built, bf)
	}
	return built, nil
}

func buildFunction(fn Function) (BuiltFunction, error) {
	sig, err := buildSignature(fn)
	if err != nil {
		return BuiltFunction{}, err
	}
	c, err := buildContract(fn, sig)
	if err != nil {
		return BuiltFunction{}, err
	}
	return BuiltFunction{Function: sig, Contract: c}, nil
}

func buildSignature(fn Function) (kotlin.FunSpec, error) {
	b := kotlin.NewFunSpec(fn.Name)
	if fn.Receiver != "" {
		recv, err := kotlin.ParseTypeName(fn.Receiver)
		if err != nil {
			return kotlin.FunSpec{}, werror.Wrap(err, "invalid receiver type")
		}
		b.Receiver(recv)
	}
	for _, m := range fn.Modifiers {
		b.AddModifiers(kotlin.Modifier(m))
	}
	for _, p := range fn.Parameters {
		typ, err := kotlin.ParseTypeName(p.Type)
		if err != nil {
			return kotlin.FunSpec{}, werror.Wrap(err, "invalid parameter type",
				werror.SafeParam("parameterName", p.Name))
		}
		param, err := kotlin.NewParameter(p.Name, typ)
		if err != nil {
			return kotlin.FunSpec{}, err
		}
		b.AddParameters(param)
	}
	if fn.Returns != "" {
		ret, err := kotlin.ParseTypeName(fn.Returns)
		if err != nil {
			return kotlin.FunSpec{}, werror.Wrap(err, "invalid return type")
		}
		b.Returns(ret)
	}
	for _, line := range fn.Body {
		b.AddStatement(line)
	}
	if fn.Todo != "" {
		if len(fn.Body) > 0 {
			return kotlin.FunSpec{}, werror.Error("function body and todo are mutually exclusive",
				werror.SafeParam("functionName", fn.Name))
		}
		b.AddStatement("TODO(" + kotlinsyntax.StringLiteral(fn.Todo) + ")")
	}
	return b.Build()
}

// buildContract constructs the contract and resolves it against the
// signature once, so that later AttachTo calls on the BuiltFunction are
// total.
func buildContract(fn Function, sig kotlin.FunSpec) (*contract.Contract, error) {
	if fn.Contract == nil {
		return nil, nil
	}
	cb := contract.NewContractBuilder()
	for i, spec := range fn.Contract.Effects {
		eff, err := buildEffect(spec, fn, sig)
		if err != nil {
			return nil, werror.Wrap(err, "failed to build contract effect",
				werror.SafeParam("effectIndex", i))
		}
		cb.AddEffects(eff)
	}
	c, err := cb.Build()
	if err != nil {
		return nil, err
	}
	if _, err := c.AttachTo(sig); err != nil {
		return nil, err
	}
	return &c, nil
}

func buildEffect(spec Effect, fn Function, sig kotlin.FunSpec) (contract.ContractEffect, error) {
	if n := countEffectKinds(spec); n != 1 {
		return contract.ContractEffect{}, werror.Error("effect requires exactly one of returns, returnsNotNull and callsInPlace",
			werror.SafeParam("keysSet", n))
	}
	switch {
	case spec.Returns != nil:
		if spec.Returns.Implies == nil {
			return contract.ContractEffect{}, werror.Error("returns effects require an implies clause")
		}
		conclusion, err := buildExpression(*spec.Returns.Implies)
		if err != nil {
			return contract.ContractEffect{}, err
		}
		if spec.Returns.Value != "" {
			return contract.ReturnsValue(spec.Returns.Value, conclusion)
		}
		return contract.Returns(conclusion)
	case spec.ReturnsNotNull != nil:
		if spec.ReturnsNotNull.Implies == nil {
			return contract.ContractEffect{}, werror.Error("returnsNotNull effects require an implies clause")
		}
		conclusion, err := buildExpression(*spec.ReturnsNotNull.Implies)
		if err != nil {
			return contract.ContractEffect{}, err
		}
		return contract.ReturnsNotNull(conclusion)
	default:
		param, ok := declaredParameter(fn, sig, spec.CallsInPlace.Parameter)
		if !ok {
			return contract.ContractEffect{}, werror.Error("callsInPlace references an undeclared parameter",
				werror.SafeParam("parameterName", spec.CallsInPlace.Parameter))
		}
		return contract.Calls(param, contract.InvocationKind(spec.CallsInPlace.Kind))
	}
}

func buildExpression(spec Expression) (contract.EffectExpression, error) {
	b := contract.NewExpression()
	if spec.Target != nil {
		b.Target(*spec.Target)
	}
	b.Negated(spec.Negated)
	if spec.NullCheck {
		b.NullCheck(true)
	}
	if spec.Constant != "" {
		b.Constant(spec.Constant)
	}
	if spec.IsInstance != "" {
		typ, err := kotlin.ParseTypeName(spec.IsInstance)
		if err != nil {
			return contract.EffectExpression{}, werror.Wrap(err, "invalid instance check type")
		}
		b.InstanceOf(typ)
	}
	for _, sub := range spec.And {
		expr, err := buildExpression(sub)
		if err != nil {
			return contract.EffectExpression{}, err
		}
		b.AndArguments(expr)
	}
	for _, sub := range spec.Or {
		expr, err := buildExpression(sub)
		if err != nil {
			return contract.EffectExpression{}, err
		}
		b.OrArguments(expr)
	}
	return b.Build()
}

func countEffectKinds(spec Effect) int {
	n := 0
	if spec.Returns != nil {
		n++
	}
	if spec.ReturnsNotNull != nil {
		n++
	}
	if spec.CallsInPlace != nil {
		n++
	}
	return n
}

// declaredParameter resolves a descriptor-level parameter name to the built
// ParameterSpec. Matching is by declared (unescaped) name; the built
// parameter may carry backticks.
func declaredParameter(fn Function, sig kotlin.FunSpec, name string) (kotlin.ParameterSpec, bool) {
	params := sig.Parameters()
	for i, p := range fn.Parameters {
		if p.Name == name && i < len(params) {
			return params[i], true
		}
	}
	return kotlin.ParameterSpec{}, false
}
