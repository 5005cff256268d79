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
	"encoding/json"

	"github.com/invopop/jsonschema"
	werror "github.com/palantir/witchcraft-go-error"
)

// JSONSchema produces a JSON Schema Draft 2020-12 document for the descriptor
// format, reflected from the Go structs. Unknown keys are rejected by the
// schema (additionalProperties is false throughout), which is what makes the
// semantic validation phase strict.
func JSONSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = false

	s := r.Reflect(&File{})
	s.ID = "https://github.com/ZacSweers/kotlinpoet-contracts/schemas/contracts-v1.json"
	s.Title = "Kotlin Function Contract Descriptor v1"
	s.Description = "Schema for contract descriptor documents (Draft 2020-12)"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, werror.Wrap(err, "failed to marshal descriptor schema")
	}
	return data, nil
}
