package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/trelloqa/trello-contract-tests/framework"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const diagnosticPrefix = "JSON SCHEMA VALIDATION ERROR, GOT RESPONSE: "

// Bodier is implemented by HTTP response envelopes. The validator checks the envelope's JSON
// body rather than the envelope itself.
type Bodier interface {
	JSONBody() []byte
}

// Validator checks response payloads against the schema of an operation.
type Validator struct {
	registry    *Registry
	diagnostics framework.Logger
}

// NewValidator creates a Validator. Whenever a payload fails validation, the raw payload is
// written to diagnostics; if diagnostics is nil, it is discarded.
func NewValidator(registry *Registry, diagnostics framework.Logger) *Validator {
	if diagnostics == nil {
		diagnostics = framework.NullLogger()
	}
	return &Validator{registry: registry, diagnostics: diagnostics}
}

// WithDiagnostics returns a Validator that shares this one's registry and schema cache, but
// writes failed payloads to a different logger.
func (v *Validator) WithDiagnostics(diagnostics framework.Logger) *Validator {
	return NewValidator(v.registry, diagnostics)
}

// Validate checks a payload against the schema mapped to the operation name and returns true if
// it conforms.
//
// The payload may be any JSON-compatible value: a decoded JSON document, raw JSON bytes, an
// ldvalue.Value, a struct with JSON tags, or a Bodier. It is not modified.
//
// The error is a *SchemaNotFoundError if no schema can be selected, a *SchemaParseError if the
// schema file is broken, or a *ValidationFailure listing every violation if the payload does
// not conform.
func (v *Validator) Validate(operation string, payload interface{}) (bool, error) {
	s, err := v.registry.Schema(operation)
	if err != nil {
		return false, err
	}
	instance, err := normalizePayload(payload)
	if err != nil {
		return false, fmt.Errorf("payload for %q is not a JSON value: %w", operation, err)
	}

	err = s.Validate(instance)
	if err == nil {
		return true, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return false, err
	}
	v.dumpPayload(instance)
	return false, &ValidationFailure{Operation: operation, Violations: collectViolations(ve)}
}

// MustValidate validates a payload and fails the test immediately if the payload does not conform or
// no schema could be used.
func (v *Validator) MustValidate(t require.TestingT, operation string, payload interface{}) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	ok, err := v.Validate(operation, payload)
	require.NoError(t, err)
	require.True(t, ok)
}

func (v *Validator) dumpPayload(instance interface{}) {
	defer func() {
		_ = recover()
	}()
	data, err := json.Marshal(instance)
	if err != nil {
		v.diagnostics.Printf("%s(cannot serialize: %s)", diagnosticPrefix, err)
		return
	}
	v.diagnostics.Printf("%s%s", diagnosticPrefix, string(data))
}

// collectViolations flattens the tree of validation errors into the leaf errors, which are the
// ones naming a specific failed constraint.
func collectViolations(ve *jsonschema.ValidationError) []Violation {
	var ret []Violation
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			ret = append(ret, Violation{
				InstanceLocation: e.InstanceLocation,
				KeywordLocation:  e.KeywordLocation,
				Message:          e.Message,
			})
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return ret
}

func normalizePayload(payload interface{}) (interface{}, error) {
	switch p := payload.(type) {
	case Bodier:
		return decodeJSON(p.JSONBody())
	case json.RawMessage:
		return decodeJSON(p)
	case []byte:
		return decodeJSON(p)
	case ldvalue.Value:
		return p.AsArbitraryValue(), nil
	case nil, bool, string, float64, json.Number:
		return p, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) (interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var ret interface{}
	if err := decoder.Decode(&ret); err != nil {
		return nil, err
	}
	return ret, nil
}
