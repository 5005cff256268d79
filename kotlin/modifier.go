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

package kotlin

// Modifier is a Kotlin function modifier keyword. The constants below cover
// the modifiers applicable to top-level functions; they render in declaration
// order as given to a FunSpecBuilder.
type Modifier string

const (
	ModifierPublic    Modifier = "public"
	ModifierPrivate   Modifier = "private"
	ModifierInternal  Modifier = "internal"
	ModifierProtected Modifier = "protected"
	ModifierExpect    Modifier = "expect"
	ModifierActual    Modifier = "actual"
	ModifierExternal  Modifier = "external"
	ModifierInline    Modifier = "inline"
	ModifierInfix     Modifier = "infix"
	ModifierOperator  Modifier = "operator"
	ModifierSuspend   Modifier = "suspend"
	ModifierTailrec   Modifier = "tailrec"
)

var knownModifiers = map[Modifier]struct{}{
	ModifierPublic:    {},
	ModifierPrivate:   {},
	ModifierInternal:  {},
	ModifierProtected: {},
	ModifierExpect:    {},
	ModifierActual:    {},
	ModifierExternal:  {},
	ModifierInline:    {},
	ModifierInfix:     {},
	ModifierOperator:  {},
	ModifierSuspend:   {},
	ModifierTailrec:   {},
}

// Valid reports whether m is one of the supported function modifiers.
func (m Modifier) Valid() bool {
	_, ok := knownModifiers[m]
	return ok
}

func (m Modifier) String() string {
	return string(m)
}
