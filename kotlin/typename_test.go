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

package kotlin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZacSweers/kotlinpoet-contracts/kotlin"
)

func TestParseTypeName_RoundTrip(t *testing.T) {
	for _, typ := range []string{
		"String",
		"String?",
		"kotlin.Any",
		"kotlin.collections.List<String>",
		"Map.Entry<K, V>",
		"() -> Unit",
		"(String) -> String",
		"(String) -> String?",
		"((String) -> String)?",
		"(String, Int) -> Unit",
		"((String) -> String, Int) -> Unit",
		"Map<String, () -> Int>",
		"suspend () -> Unit",
		"String.(Int) -> Unit",
		"suspend String.(Int) -> Unit",
		"(suspend () -> Unit)?",
	} {
		t.Run(typ, func(t *testing.T) {
			parsed, err := kotlin.ParseTypeName(typ)
			require.NoError(t, err)
			assert.Equal(t, typ, parsed.String())
		})
	}
}

func TestParseTypeName_Invalid(t *testing.T) {
	for _, test := range []struct {
		Name string
		Type string
	}{
		{Name: "empty", Type: ""},
		{Name: "leading digit", Type: "1String"},
		{Name: "bare hard keyword", Type: "object"},
		{Name: "empty dotted segment", Type: "kotlin..Any"},
		{Name: "suspend on class reference", Type: "suspend String"},
		{Name: "unbalanced generic", Type: "List<String"},
	} {
		t.Run(test.Name, func(t *testing.T) {
			_, err := kotlin.ParseTypeName(test.Type)
			require.Error(t, err)
		})
	}
}

func TestParseTypeName_NullableBinding(t *testing.T) {
	// The "?" in "(String) -> String?" belongs to the return type, not to
	// the function type as a whole.
	parsed, err := kotlin.ParseTypeName("(String) -> String?")
	require.NoError(t, err)
	assert.False(t, parsed.IsNullable())

	parsed, err = kotlin.ParseTypeName("((String) -> String)?")
	require.NoError(t, err)
	assert.True(t, parsed.IsNullable())
}

func TestTypeName_NullableNonNull(t *testing.T) {
	base := kotlin.MustClassName("String")
	nullable := base.Nullable()
	assert.Equal(t, "String", base.String())
	assert.Equal(t, "String?", nullable.String())
	assert.Equal(t, "String", nullable.NonNull().String())
}

func TestTypeName_IsFunctionType(t *testing.T) {
	for _, test := range []struct {
		Name     string
		Type     kotlin.TypeName
		Expected bool
	}{
		{
			Name:     "lambda",
			Type:     kotlin.NewLambdaTypeName(kotlin.MustClassName("Unit")),
			Expected: true,
		},
		{
			Name:     "nullable lambda",
			Type:     kotlin.NewLambdaTypeName(kotlin.MustClassName("Any"), kotlin.MustClassName("String")).Nullable(),
			Expected: true,
		},
		{
			Name:     "kotlin.FunctionN classifier",
			Type:     kotlin.MustClassName("kotlin.Function2"),
			Expected: true,
		},
		{
			Name:     "classifier that merely starts with Function",
			Type:     kotlin.MustClassName("kotlin.Functional"),
			Expected: false,
		},
		{
			Name:     "plain class",
			Type:     kotlin.MustClassName("String"),
			Expected: false,
		},
	} {
		t.Run(test.Name, func(t *testing.T) {
			assert.Equal(t, test.Expected, test.Type.IsFunctionType())
		})
	}
}

func TestNewClassName_BacktickedSegment(t *testing.T) {
	_, err := kotlin.NewClassName("object")
	require.EqualError(t, err, "class name segment is not a valid Kotlin identifier")

	typ, err := kotlin.NewClassName("`object`")
	require.NoError(t, err)
	assert.Equal(t, "`object`", typ.String())
}

func TestTypeName_MarshalText(t *testing.T) {
	typ := kotlin.NewReceiverLambdaTypeName(
		kotlin.MustClassName("String"),
		kotlin.MustClassName("Unit"),
		kotlin.MustClassName("Int"),
	)
	text, err := typ.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "String.(Int) -> Unit", string(text))

	var decoded kotlin.TypeName
	require.NoError(t, decoded.UnmarshalText(text))
	assert.Equal(t, typ.String(), decoded.String())

	var zero kotlin.TypeName
	_, err = zero.MarshalText()
	require.EqualError(t, err, "cannot marshal zero TypeName")
}

func TestTypeName_SuspendingOnClassIsNoop(t *testing.T) {
	typ := kotlin.MustClassName("String").Suspending()
	assert.Equal(t, "String", typ.String())
}
