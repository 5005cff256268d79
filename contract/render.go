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
	"bytes"
	"strconv"

	"github.com/palantir/pkg/bytesbuffers"
	werror "github.com/palantir/witchcraft-go-error"
)

// Signature is the read-only view of a function that rendering needs: its
// name (for the "this@name" receiver token) and its parameter names in
// declaration order. kotlin.FunSpec satisfies it.
type Signature interface {
	Name() string
	ParameterNames() []string
}

// Rendered contract blocks are small; recycle buffers rather than allocating
// per render.
var renderBuffers = bytesbuffers.NewSizedPool(256, 2048)

// targetResolver maps parameter targets to display tokens. The canonical
// resolver substitutes fixed placeholders and resolves every index, which
// keeps CanonicalString total.
type targetResolver struct {
	functionName string
	parameters   []string
	canonical    bool
}

func resolverFor(sig Signature) targetResolver {
	return targetResolver{functionName: sig.Name(), parameters: sig.ParameterNames()}
}

func canonicalResolver() targetResolver {
	return targetResolver{canonical: true}
}

func (r targetResolver) displayToken(target int) (string, error) {
	if r.canonical {
		if target == ReceiverTarget {
			return "this", nil
		}
		return "p" + strconv.Itoa(target), nil
	}
	if target == ReceiverTarget {
		return "this@" + r.functionName, nil
	}
	if target > len(r.parameters) {
		return "", werror.Error("parameter target exceeds the function's parameter count",
			werror.SafeParam("parameterTarget", target),
			werror.SafeParam("parameterCount", len(r.parameters)),
			werror.SafeParam("functionName", r.functionName))
	}
	return r.parameters[target-1], nil
}

// writeExpression emits one expression. Targeted expressions render their
// primary proposition, then every conjunct, then every disjunct; bare
// expressions emit the constant token verbatim and ignore both lists.
func writeExpression(buf *bytes.Buffer, e EffectExpression, r targetResolver, suppressParens bool) error {
	if !suppressParens {
		buf.WriteByte('(')
	}
	if e.hasTarget {
		token, err := r.displayToken(e.target)
		if err != nil {
			return err
		}
		switch {
		case e.nullCheck:
			buf.WriteString(token)
			buf.WriteString(operator("==", "!=", e.negated))
			buf.WriteString(nullLiteral)
		case e.hasConstant:
			buf.WriteString(token)
			buf.WriteString(operator("==", "!=", e.negated))
			buf.WriteString(e.constant)
		case e.instanceType != nil:
			buf.WriteString(token)
			buf.WriteString(operator("is", "!is", e.negated))
			buf.WriteString(e.instanceType.String())
		}
		for _, arg := range e.andArgs {
			buf.WriteString(" && ")
			if err := writeExpression(buf, arg, r, false); err != nil {
				return err
			}
		}
		for _, arg := range e.orArgs {
			buf.WriteString(" || ")
			if err := writeExpression(buf, arg, r, false); err != nil {
				return err
			}
		}
	} else {
		buf.WriteString(e.constant)
	}
	if !suppressParens {
		buf.WriteByte(')')
	}
	return nil
}

func operator(plain, negated string, isNegated bool) string {
	if isNegated {
		return " " + negated + " "
	}
	return " " + plain + " "
}

func writeEffect(buf *bytes.Buffer, e ContractEffect, r targetResolver) error {
	switch e.effectType {
	case EffectTypeReturnsConstant:
		buf.WriteString("returns")
		if len(e.args) == 1 {
			if err := writeExpression(buf, e.args[0], r, false); err != nil {
				return err
			}
		} else {
			buf.WriteString("()")
		}
	case EffectTypeReturnsNotNull:
		buf.WriteString("returnsNotNull()")
	case EffectTypeCalls:
		buf.WriteString("callsInPlace(")
		if err := writeExpression(buf, e.args[0], r, true); err != nil {
			return err
		}
		buf.WriteString(", ")
		buf.WriteString(e.invocation.Token())
		buf.WriteByte(')')
	}
	if e.conclusion != nil {
		buf.WriteString(" implies ")
		if err := writeExpression(buf, *e.conclusion, r, false); err != nil {
			return err
		}
	}
	return nil
}

func writeContract(buf *bytes.Buffer, c Contract, r targetResolver) error {
	buf.WriteString("contract {\n")
	for _, effect := range c.effects {
		buf.WriteString("  ")
		if err := writeEffect(buf, effect, r); err != nil {
			return err
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return nil
}
