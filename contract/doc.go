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

// Package contract models Kotlin function contracts: boolean propositions
// about a function's parameters and receiver (EffectExpression), the three
// effect kinds that wrap them (ContractEffect), and the ordered collection
// (Contract) that renders as a canonical `contract { ... }` source block.
//
// All model values are immutable once built and every structural rule is
// checked at construction, so rendering an existing value against a
// function signature can only fail when an expression targets a parameter
// position the signature does not have.
//
// Equality is textual: two values compare equal exactly when their
// canonical renderings match, even if they were assembled differently.
// CanonicalString returns that rendering and is usable as a map key.
//
// This package validates structure only. It never checks that a contract
// is true for any function body; that remains the compiler's job.
package contract
