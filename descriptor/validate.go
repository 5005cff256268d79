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
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	werror "github.com/palantir/witchcraft-go-error"
	wparams "github.com/palantir/witchcraft-go-params"
	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/ZacSweers/kotlinpoet-contracts/codecs"
	"github.com/ZacSweers/kotlinpoet-contracts/contract"
	"github.com/ZacSweers/kotlinpoet-contracts/kotlin"
)

// ValidationError is a single finding with location context.
type ValidationError struct {
	Phase    string `json:"phase"` // structural, semantic, domain
	Path     string `json:"path"`  // e.g. "functions[0].contract.effects[1]"
	Message  string `json:"message"`
	Severity string `json:"severity"` // error, warning
}

var _ wparams.ParamStorer = (*ValidationError)(nil)

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Phase, e.Path, e.Message)
}

// SafeParams returns the finding's coordinates so it can ride on service log
// entries as a param storer; the message itself is the log line.
func (e *ValidationError) SafeParams() map[string]interface{} {
	return map[string]interface{}{
		"phase":    e.Phase,
		"path":     e.Path,
		"severity": e.Severity,
	}
}

func (e *ValidationError) UnsafeParams() map[string]interface{} {
	return map[string]interface{}{}
}

// ValidateFile runs the full three-phase validation pipeline on a descriptor
// file. Phase 1 is structural (decode through the extension's codec), phase 2
// is semantic (the document against the generated JSON Schema) and phase 3 is
// domain (constructing the model through the contract and kotlin factories).
// The decoded file is returned alongside the findings; it is nil only when
// phase 1 fails.
func ValidateFile(path string) (*File, []*ValidationError) {
	codec, err := codecs.ForFile(path)
	if err != nil {
		return nil, []*ValidationError{structuralError(err)}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []*ValidationError{structuralError(werror.Wrap(err, "failed to read descriptor file"))}
	}
	return Validate(data, codec)
}

// Validate runs the three validation phases on an in-memory document.
func Validate(data []byte, codec codecs.Codec) (*File, []*ValidationError) {
	file, err := Load(data, codec)
	if err != nil {
		return nil, []*ValidationError{structuralError(err)}
	}

	allErrors := validateSemantic(data, codec)
	allErrors = append(allErrors, validateDomain(file)...)
	return file, allErrors
}

func structuralError(err error) *ValidationError {
	return &ValidationError{
		Phase:    "structural",
		Path:     "",
		Message:  reportMessage(err),
		Severity: "error",
	}
}

// validateSemantic checks the raw document against the generated JSON
// Schema. Validating the raw form rather than the re-marshaled struct is what
// surfaces unknown keys: the schema closes every object with
// additionalProperties false.
func validateSemantic(data []byte, codec codecs.Codec) []*ValidationError {
	semanticError := func(msg string) []*ValidationError {
		return []*ValidationError{{Phase: "semantic", Path: "", Message: msg, Severity: "error"}}
	}

	var doc interface{}
	if err := codec.Unmarshal(data, &doc); err != nil {
		return semanticError(fmt.Sprintf("decode document: %v", err))
	}
	doc = jsonShape(doc)

	schemaJSON, err := JSONSchema()
	if err != nil {
		return semanticError(fmt.Sprintf("generate schema: %v", err))
	}
	var schemaDoc interface{}
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return semanticError(fmt.Sprintf("unmarshal schema: %v", err))
	}

	c := sjsonschema.NewCompiler()
	if err := c.AddResource("contracts-v1.json", schemaDoc); err != nil {
		return semanticError(fmt.Sprintf("add schema resource: %v", err))
	}
	sch, err := c.Compile("contracts-v1.json")
	if err != nil {
		return semanticError(fmt.Sprintf("compile schema: %v", err))
	}

	if err := sch.Validate(doc); err != nil {
		ve, ok := err.(*sjsonschema.ValidationError)
		if !ok {
			return semanticError(err.Error())
		}
		var errs []*ValidationError
		for _, cause := range flattenCauses(ve) {
			errs = append(errs, &ValidationError{
				Phase:    "semantic",
				Path:     strings.Join(cause.InstanceLocation, "/"),
				Message:  fmt.Sprintf("%v", cause.ErrorKind),
				Severity: "error",
			})
		}
		return errs
	}
	return nil
}

// flattenCauses recursively collects the leaf validation errors.
func flattenCauses(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var flat []*sjsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenCauses(cause)...)
	}
	return flat
}

// jsonShape converts the YAML codec's generic representation into the form
// the schema validator walks: string-keyed maps (yaml.v2 produces
// map[interface{}]interface{}) and json.Number integers. JSON-decoded
// documents pass through unchanged.
func jsonShape(v interface{}) interface{} {
	switch val := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, item := range val {
			m[fmt.Sprint(k)] = jsonShape(item)
		}
		return m
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, item := range val {
			m[k] = jsonShape(item)
		}
		return m
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = jsonShape(item)
		}
		return out
	case int:
		return json.Number(strconv.Itoa(val))
	case int64:
		return json.Number(strconv.FormatInt(val, 10))
	default:
		return v
	}
}

// validateDomain walks every function exhaustively, reporting each failure
// the model factories would raise plus descriptor-level cross checks. Unlike
// Build it does not stop at the first bad function.
func validateDomain(file *File) []*ValidationError {
	var errs []*ValidationError
	domainError := func(path, msg string) {
		errs = append(errs, &ValidationError{Phase: "domain", Path: path, Message: msg, Severity: "error"})
	}
	domainWarning := func(path, msg string) {
		errs = append(errs, &ValidationError{Phase: "domain", Path: path, Message: msg, Severity: "warning"})
	}

	for i, fn := range file.Functions {
		prefix := fmt.Sprintf("functions[%d]", i)

		signatureOK := true
		if fn.Todo != "" && len(fn.Body) > 0 {
			domainError(prefix, fmt.Sprintf("function %q declares both body and todo", fn.Name))
			signatureOK = false
		}
		if fn.Receiver != "" {
			if _, err := kotlin.ParseTypeName(fn.Receiver); err != nil {
				domainError(prefix+".receiver", reportMessage(err))
				signatureOK = false
			}
		}
		if fn.Returns != "" {
			if _, err := kotlin.ParseTypeName(fn.Returns); err != nil {
				domainError(prefix+".returns", reportMessage(err))
				signatureOK = false
			}
		}
		for j, m := range fn.Modifiers {
			if !kotlin.Modifier(m).Valid() {
				domainError(fmt.Sprintf("%s.modifiers[%d]", prefix, j), fmt.Sprintf("unknown function modifier %q", m))
				signatureOK = false
			}
		}
		for j, p := range fn.Parameters {
			ppath := fmt.Sprintf("%s.parameters[%d]", prefix, j)
			typ, err := kotlin.ParseTypeName(p.Type)
			if err != nil {
				domainError(ppath+".type", reportMessage(err))
				signatureOK = false
				continue
			}
			if _, err := kotlin.NewParameter(p.Name, typ); err != nil {
				domainError(ppath, reportMessage(err))
				signatureOK = false
			}
		}
		if !signatureOK {
			// The contract checks below resolve against the built signature;
			// skip them rather than cascade.
			continue
		}
		sig, err := buildSignature(fn)
		if err != nil {
			domainError(prefix, reportMessage(err))
			continue
		}

		if fn.Contract == nil {
			continue
		}
		cpath := prefix + ".contract"
		seen := make(map[string]int, len(fn.Contract.Effects))
		effects := make([]contract.ContractEffect, 0, len(fn.Contract.Effects))
		effectsOK := true
		for j, spec := range fn.Contract.Effects {
			epath := fmt.Sprintf("%s.effects[%d]", cpath, j)
			if n := countEffectKinds(spec); n != 1 {
				domainError(epath, fmt.Sprintf("exactly one of returns, returnsNotNull and callsInPlace must be set, got %d", n))
				effectsOK = false
				continue
			}
			eff, err := buildEffect(spec, fn, sig)
			if err != nil {
				domainError(epath, reportMessage(err))
				effectsOK = false
				continue
			}
			canonical := eff.CanonicalString()
			if first, ok := seen[canonical]; ok {
				domainWarning(epath, fmt.Sprintf("duplicate effect %q (first at effects[%d])", canonical, first))
			} else {
				seen[canonical] = j
			}
			effects = append(effects, eff)
		}
		if !effectsOK {
			continue
		}
		c, err := contract.NewContract(effects...)
		if err != nil {
			domainError(cpath, reportMessage(err))
			continue
		}
		if _, err := c.AttachTo(sig); err != nil {
			domainError(cpath, reportMessage(err))
		}
	}
	return errs
}

// reportMessage flattens an error's message chain and safe params into one
// human-readable line. Construction errors carry their offending values as
// safe params, which Error() deliberately omits; a validation report wants
// them inline.
func reportMessage(err error) string {
	safe, _ := werror.ParamsFromError(err)
	if len(safe) == 0 {
		return err.Error()
	}
	keys := make([]string, 0, len(safe))
	for k := range safe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %v", k, safe[k])
	}
	return fmt.Sprintf("%s (%s)", err.Error(), strings.Join(parts, ", "))
}
