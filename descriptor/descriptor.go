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

// Package descriptor defines the declarative file format for
// contract-annotated Kotlin function declarations and provides strict
// loading, three-phase validation and model building. Descriptor files are
// YAML or JSON (optionally gzip- or snappy-compressed); Build converts them
// into kotlin.FunSpec values paired with their contract.Contract.
package descriptor

// File is the top-level descriptor document.
type File struct {
	Functions []Function `yaml:"functions" json:"functions" jsonschema:"required"`
}

// Function declares one Kotlin function and, optionally, its contract.
type Function struct {
	Name       string      `yaml:"name" json:"name" jsonschema:"required"`
	Receiver   string      `yaml:"receiver,omitempty" json:"receiver,omitempty"`
	Modifiers  []string    `yaml:"modifiers,omitempty" json:"modifiers,omitempty"`
	Parameters []Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Returns    string      `yaml:"returns,omitempty" json:"returns,omitempty"`
	// Body lines are emitted verbatim below the contract block. Todo instead
	// generates a single TODO("...") statement; the two are mutually
	// exclusive.
	Body     []string  `yaml:"body,omitempty" json:"body,omitempty"`
	Todo     string    `yaml:"todo,omitempty" json:"todo,omitempty"`
	Contract *Contract `yaml:"contract,omitempty" json:"contract,omitempty"`
}

// Parameter is a declared value parameter. Type is Kotlin source text, e.g.
// "T?" or "() -> Any".
type Parameter struct {
	Name string `yaml:"name" json:"name" jsonschema:"required"`
	Type string `yaml:"type" json:"type" jsonschema:"required"`
}

// Contract is the declared contract block.
type Contract struct {
	Effects []Effect `yaml:"effects" json:"effects" jsonschema:"required,minItems=1"`
}

// Effect is a union: exactly one of the three keys must be set.
type Effect struct {
	Returns        *Returns      `yaml:"returns,omitempty" json:"returns,omitempty"`
	ReturnsNotNull *Implication  `yaml:"returnsNotNull,omitempty" json:"returnsNotNull,omitempty"`
	CallsInPlace   *CallsInPlace `yaml:"callsInPlace,omitempty" json:"callsInPlace,omitempty"`
}

// Returns declares "returns() implies ..." or, with Value set,
// "returns(value) implies ...". Value is a literal token and must be written
// as a quoted string in YAML ("true", "false", "null").
type Returns struct {
	Value   string      `yaml:"value,omitempty" json:"value,omitempty"`
	Implies *Expression `yaml:"implies" json:"implies" jsonschema:"required"`
}

// Implication declares the conclusion of a returnsNotNull effect.
type Implication struct {
	Implies *Expression `yaml:"implies" json:"implies" jsonschema:"required"`
}

// CallsInPlace declares "callsInPlace(parameter, InvocationKind.<kind>)". The
// parameter is referenced by its declared name and must have a function type.
type CallsInPlace struct {
	Parameter string `yaml:"parameter" json:"parameter" jsonschema:"required"`
	Kind      string `yaml:"kind" json:"kind" jsonschema:"required,enum=AT_MOST_ONCE,enum=AT_LEAST_ONCE,enum=EXACTLY_ONCE,enum=UNKNOWN"`
}

// Expression is one boolean proposition. Target addresses the receiver (0)
// or a 1-based parameter position; without a target only Constant is valid.
// Exactly one of nullCheck, constant and isInstance may be set alongside a
// target. And and Or attach sibling propositions to this one.
type Expression struct {
	Target     *int         `yaml:"target,omitempty" json:"target,omitempty"`
	Negated    bool         `yaml:"negated,omitempty" json:"negated,omitempty"`
	NullCheck  bool         `yaml:"nullCheck,omitempty" json:"nullCheck,omitempty"`
	Constant   string       `yaml:"constant,omitempty" json:"constant,omitempty"`
	IsInstance string       `yaml:"isInstance,omitempty" json:"isInstance,omitempty"`
	And        []Expression `yaml:"and,omitempty" json:"and,omitempty"`
	Or         []Expression `yaml:"or,omitempty" json:"or,omitempty"`
}
