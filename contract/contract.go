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
	"strings"

	werror "github.com/palantir/witchcraft-go-error"

	"github.com/ZacSweers/kotlinpoet-contracts/kotlin"
)

// Contract is an immutable, non-empty ordered collection of effects. It
// holds no reference to any function: the same contract renders against any
// number of signatures independently.
type Contract struct {
	effects []ContractEffect
}

// NewContract builds a contract from the given effects. At least one effect
// is required.
func NewContract(effects ...ContractEffect) (Contract, error) {
	return NewContractBuilder().AddEffects(effects...).Build()
}

// Effects returns a copy of the effect list in declaration order.
func (c Contract) Effects() []ContractEffect {
	return append([]ContractEffect(nil), c.effects...)
}

// HasCalls reports whether any effect is a callsInPlace effect.
func (c Contract) HasCalls() bool {
	for _, effect := range c.effects {
		if effect.effectType == EffectTypeCalls {
			return true
		}
	}
	return false
}

// Render emits the full contract block against sig:
//
//	contract {
//	  returns() implies (value != null)
//	  callsInPlace(body, InvocationKind.EXACTLY_ONCE)
//	}
//
// Effects render in declaration order, one per line. The result carries no
// trailing newline. Rendering fails only when an expression targets a
// parameter position beyond sig's parameter count.
func (c Contract) Render(sig Signature) (string, error) {
	buf := renderBuffers.Get()
	defer renderBuffers.Put(buf)
	if err := writeContract(buf, c, resolverFor(sig)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// AttachTo renders the contract against fn and returns a copy of fn with the
// block prepended to its body. Contracts containing a callsInPlace effect
// attach only to inline functions. Neither c nor fn is mutated.
func (c Contract) AttachTo(fn kotlin.FunSpec) (kotlin.FunSpec, error) {
	if c.HasCalls() && !fn.HasModifier(kotlin.ModifierInline) {
		return kotlin.FunSpec{}, werror.Error("contracts with callsInPlace effects require an inline function",
			werror.SafeParam("functionName", fn.Name()))
	}
	block, err := c.Render(fn)
	if err != nil {
		return kotlin.FunSpec{}, err
	}
	return fn.PrependStatements(strings.Split(block, "\n")...), nil
}

// CanonicalString renders c against the fixed placeholder signature; see
// EffectExpression.CanonicalString.
func (c Contract) CanonicalString() string {
	buf := renderBuffers.Get()
	defer renderBuffers.Put(buf)
	_ = writeContract(buf, c, canonicalResolver())
	return buf.String()
}

// Equal reports whether c and other render identically.
func (c Contract) Equal(other Contract) bool {
	return c.CanonicalString() == other.CanonicalString()
}

// ContractBuilder is the mutable staging structure for Contract.
type ContractBuilder struct {
	effects []ContractEffect
}

// NewContractBuilder starts an empty contract builder.
func NewContractBuilder() *ContractBuilder {
	return &ContractBuilder{}
}

// ToBuilder returns a builder seeded with a copy of c's effect list.
func (c Contract) ToBuilder() *ContractBuilder {
	return &ContractBuilder{effects: append([]ContractEffect(nil), c.effects...)}
}

// AddEffects appends effects in declaration order.
func (b *ContractBuilder) AddEffects(effects ...ContractEffect) *ContractBuilder {
	b.effects = append(b.effects, effects...)
	return b
}

// Build validates the staged contract and returns the immutable value.
func (b *ContractBuilder) Build() (Contract, error) {
	if len(b.effects) == 0 {
		return Contract{}, werror.Error("contract requires at least one effect")
	}
	for _, effect := range b.effects {
		if !effect.effectType.Valid() {
			return Contract{}, werror.Error("effect was not constructed through an effect builder")
		}
	}
	return Contract{effects: append([]ContractEffect(nil), b.effects...)}, nil
}
