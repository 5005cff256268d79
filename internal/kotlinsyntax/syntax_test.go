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

package kotlinsyntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIdentifier(t *testing.T) {
	for _, test := range []struct {
		Name     string
		In       string
		Expected bool
	}{
		{Name: "plain", In: "value", Expected: true},
		{Name: "underscore start", In: "_backing", Expected: true},
		{Name: "digits after first", In: "arg0", Expected: true},
		{Name: "soft keyword ok", In: "inline", Expected: true},
		{Name: "hard keyword", In: "object", Expected: false},
		{Name: "backticked hard keyword", In: "`object`", Expected: true},
		{Name: "backticked spaces", In: "`my test`", Expected: true},
		{Name: "leading digit", In: "0arg", Expected: false},
		{Name: "dash", In: "my-name", Expected: false},
		{Name: "empty", In: "", Expected: false},
		{Name: "empty backticks", In: "``", Expected: false},
	} {
		t.Run(test.Name, func(t *testing.T) {
			assert.Equal(t, test.Expected, IsIdentifier(test.In))
		})
	}
}

func TestEscapeIfNecessary(t *testing.T) {
	assert.Equal(t, "value", EscapeIfNecessary("value"))
	assert.Equal(t, "`fun`", EscapeIfNecessary("fun"))
	assert.Equal(t, "`in`", EscapeIfNecessary("in"))
}

func TestStringLiteral(t *testing.T) {
	for _, test := range []struct {
		Name     string
		In       string
		Expected string
	}{
		{Name: "plain", In: "hello", Expected: `"hello"`},
		{Name: "quote", In: `say "hi"`, Expected: `"say \"hi\""`},
		{Name: "backslash", In: `a\b`, Expected: `"a\\b"`},
		{Name: "template marker", In: "cost: $5", Expected: `"cost: \$5"`},
		{Name: "newline and tab", In: "a\n\tb", Expected: `"a\n\tb"`},
		{Name: "control char", In: "a\x01b", Expected: `"ab"`},
		{Name: "unicode passthrough", In: "héllo", Expected: `"héllo"`},
	} {
		t.Run(test.Name, func(t *testing.T) {
			assert.Equal(t, test.Expected, StringLiteral(test.In))
		})
	}
}
