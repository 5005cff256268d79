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

// Package metadata converts contracts read out of compiled Kotlin metadata
// into the contract model. The types here mirror the metadata reader's shape
// field for field; conversion is a pure structural mapping that funnels
// through the contract builders, so malformed metadata fails fast instead of
// mis-rendering.
package metadata

import (
	"strings"

	werror "github.com/palantir/witchcraft-go-error"

	"github.com/ZacSweers/kotlinpoet-contracts/contract"
	"github.com/ZacSweers/kotlinpoet-contracts/kotlin"
)

// Classifier kinds a metadata type reference can carry. Only class
// references convert; contracts never target the other two in practice and
// their conversion is unimplemented.
const (
	ClassifierClass         = "class"
	ClassifierTypeParameter = "typeParameter"
	ClassifierTypeAlias     = "typeAlias"
)

// File is the top-level shape of a metadata contract dump: every function in
// a compiled file that carried a contract, in declaration order.
type File struct {
	Functions []Function `json:"functions"`
}

// Function pairs a dumped contract with the signature facts rendering needs.
// ParameterNames lists declared value parameters in order; a receiver, when
// present, is addressed by index zero and carries no entry here.
type Function struct {
	Name           string   `json:"name"`
	ParameterNames []string `json:"parameterNames,omitempty"`
	Contract       Contract `json:"contract"`
}

// Signature adapts the dumped function for contract rendering.
func (f Function) Signature() contract.Signature {
	return signature{name: f.Name, parameters: f.ParameterNames}
}

type signature struct {
	name       string
	parameters []string
}

func (s signature) Name() string             { return s.name }
func (s signature) ParameterNames() []string { return s.parameters }

// Contract is the metadata form of a function contract.
type Contract struct {
	Effects []Effect `json:"effects"`
}

// Effect is the metadata form of one contract effect. Type uses the same
// names as contract.EffectType; InvocationKind is empty for non-CALLS
// effects.
type Effect struct {
	Type                 string       `json:"type"`
	InvocationKind       string       `json:"invocationKind,omitempty"`
	ConstructorArguments []Expression `json:"constructorArguments,omitempty"`
	Conclusion           *Expression  `json:"conclusion,omitempty"`
}

// Expression is the metadata form of one effect expression. ParameterIndex
// follows the receiver-is-zero addressing scheme; ConstantValue carries the
// literal token verbatim.
type Expression struct {
	IsNegated            bool         `json:"isNegated,omitempty"`
	IsNullCheckPredicate bool         `json:"isNullCheckPredicate,omitempty"`
	ParameterIndex       *int         `json:"parameterIndex,omitempty"`
	ConstantValue        *string      `json:"constantValue,omitempty"`
	IsInstanceType       *TypeRef     `json:"isInstanceType,omitempty"`
	AndArguments         []Expression `json:"andArguments,omitempty"`
	OrArguments          []Expression `json:"orArguments,omitempty"`
}

// TypeRef is the metadata form of a type reference. Name holds the binary
// class name ("kotlin/collections/List") for class classifiers.
type TypeRef struct {
	Classifier      string `json:"classifier"`
	Name            string `json:"name,omitempty"`
	TypeParameterID *int   `json:"typeParameterId,omitempty"`
	Nullable        bool   `json:"nullable,omitempty"`
}

// ConvertContract maps a metadata contract into the contract model.
func ConvertContract(c Contract) (contract.Contract, error) {
	builder := contract.NewContractBuilder()
	for i, effect := range c.Effects {
		converted, err := ConvertEffect(effect)
		if err != nil {
			return contract.Contract{}, werror.Wrap(err, "failed to convert metadata effect",
				werror.SafeParam("effectIndex", i))
		}
		builder.AddEffects(converted)
	}
	return builder.Build()
}

// ConvertEffect maps one metadata effect into the contract model.
func ConvertEffect(e Effect) (contract.ContractEffect, error) {
	builder := contract.NewEffect(contract.EffectType(e.Type))
	if e.InvocationKind != "" {
		builder.Invocation(contract.InvocationKind(e.InvocationKind))
	}
	for _, arg := range e.ConstructorArguments {
		converted, err := ConvertExpression(arg)
		if err != nil {
			return contract.ContractEffect{}, err
		}
		builder.ConstructorArguments(converted)
	}
	if e.Conclusion != nil {
		converted, err := ConvertExpression(*e.Conclusion)
		if err != nil {
			return contract.ContractEffect{}, err
		}
		builder.Conclusion(converted)
	}
	return builder.Build()
}

// ConvertExpression maps one metadata expression into the contract model.
func ConvertExpression(e Expression) (contract.EffectExpression, error) {
	builder := contract.NewExpression().
		Negated(e.IsNegated).
		NullCheck(e.IsNullCheckPredicate)
	if e.ParameterIndex != nil {
		builder.Target(*e.ParameterIndex)
	}
	if e.ConstantValue != nil {
		builder.Constant(*e.ConstantValue)
	}
	if e.IsInstanceType != nil {
		typ, err := ConvertTypeRef(*e.IsInstanceType)
		if err != nil {
			return contract.EffectExpression{}, err
		}
		builder.InstanceOf(typ)
	}
	for _, arg := range e.AndArguments {
		converted, err := ConvertExpression(arg)
		if err != nil {
			return contract.EffectExpression{}, err
		}
		builder.AndArguments(converted)
	}
	for _, arg := range e.OrArguments {
		converted, err := ConvertExpression(arg)
		if err != nil {
			return contract.EffectExpression{}, err
		}
		builder.OrArguments(converted)
	}
	return builder.Build()
}

// ConvertTypeRef maps a metadata type reference to a kotlin.TypeName.
// Type-parameter and type-alias classifiers fail fast rather than rendering
// a wrong class reference.
func ConvertTypeRef(t TypeRef) (kotlin.TypeName, error) {
	switch t.Classifier {
	case ClassifierClass:
	case ClassifierTypeParameter:
		return kotlin.TypeName{}, werror.Error("type parameter classifiers are not yet supported",
			werror.SafeParam("typeParameterId", t.TypeParameterID))
	case ClassifierTypeAlias:
		return kotlin.TypeName{}, werror.Error("type alias classifiers are not yet supported",
			werror.SafeParam("typeAliasName", t.Name))
	default:
		return kotlin.TypeName{}, werror.Error("unknown classifier kind",
			werror.SafeParam("classifier", t.Classifier))
	}
	if t.Name == "" {
		return kotlin.TypeName{}, werror.Error("class classifiers require a name")
	}
	typ, err := kotlin.NewClassName(sourceName(t.Name))
	if err != nil {
		return kotlin.TypeName{}, err
	}
	if t.Nullable {
		typ = typ.Nullable()
	}
	return typ, nil
}

// sourceName converts a binary class name to its source spelling. Top-level
// kotlin builtins drop the package prefix, matching how contract blocks
// reference them.
func sourceName(binaryName string) string {
	dotted := strings.ReplaceAll(binaryName, "/", ".")
	if rest, ok := strings.CutPrefix(dotted, "kotlin."); ok && !strings.Contains(rest, ".") {
		return rest
	}
	return dotted
}
