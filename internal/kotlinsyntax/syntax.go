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

// Package kotlinsyntax holds the lexical rules of Kotlin source text that the
// renderer depends on: identifier classification, hard-keyword escaping and
// literal quoting.
package kotlinsyntax

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	simpleIdentifierPattern     = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	backtickedIdentifierPattern = regexp.MustCompile("^`[^`\r\n]+`$")
)

// hardKeywords are the Kotlin keywords that can never be used as bare
// identifiers; they must be escaped in backticks to appear as names.
// Soft and modifier keywords (e.g. "value", "inline") remain valid identifiers.
var hardKeywords = map[string]struct{}{
	"as":        {},
	"break":     {},
	"class":     {},
	"continue":  {},
	"do":        {},
	"else":      {},
	"false":     {},
	"for":       {},
	"fun":       {},
	"if":        {},
	"in":        {},
	"interface": {},
	"is":        {},
	"null":      {},
	"object":    {},
	"package":   {},
	"return":    {},
	"super":     {},
	"this":      {},
	"throw":     {},
	"true":      {},
	"try":       {},
	"typealias": {},
	"typeof":    {},
	"val":       {},
	"var":       {},
	"when":      {},
	"while":     {},
}

// IsHardKeyword reports whether name is a Kotlin hard keyword.
func IsHardKeyword(name string) bool {
	_, ok := hardKeywords[name]
	return ok
}

// IsIdentifier reports whether name is usable as a Kotlin identifier as
// written: either a plain identifier that is not a hard keyword, or an
// already-backticked identifier.
func IsIdentifier(name string) bool {
	if backtickedIdentifierPattern.MatchString(name) {
		return true
	}
	return simpleIdentifierPattern.MatchString(name) && !IsHardKeyword(name)
}

// EscapeIfNecessary wraps name in backticks when it is a hard keyword and
// returns it unchanged otherwise. It does not attempt to repair names that are
// not identifiers at all; callers validate with IsIdentifier first.
func EscapeIfNecessary(name string) string {
	if IsHardKeyword(name) {
		return "`" + name + "`"
	}
	return name
}

// StringLiteral renders s as a Kotlin double-quoted string literal, escaping
// backslashes, quotes, template markers and control characters.
func StringLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '$':
			b.WriteString(`\$`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString(fmt.Sprintf(`\u%04x`, r))
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
