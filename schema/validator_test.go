package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/trelloqa/trello-contract-tests/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const validBoardJSON = `{"id": "5f1a2b3c4d5e6f7081920a1b", "name": "Test Board", "desc": "", "closed": false}`

type fakeEnvelope struct {
	StatusCode int
	body       []byte
}

func (e fakeEnvelope) JSONBody() []byte { return e.body }

type boardStruct struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Closed bool   `json:"closed"`
}

type fakeTestingT struct {
	errors []string
	failed bool
}

func (f *fakeTestingT) Errorf(format string, args ...interface{}) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func (f *fakeTestingT) FailNow() { f.failed = true }

func makeValidator(t *testing.T) (*Validator, *framework.CapturingLogger) {
	r, err := DefaultRegistry()
	require.NoError(t, err)
	logger := &framework.CapturingLogger{}
	return NewValidator(r, logger), logger
}

func decode(t *testing.T, s string) interface{} {
	var ret interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &ret))
	return ret
}

func requireFailure(t *testing.T, err error) *ValidationFailure {
	var failure *ValidationFailure
	require.ErrorAs(t, err, &failure)
	return failure
}

func TestValidBoardPayload(t *testing.T) {
	v, logger := makeValidator(t)

	ok, err := v.Validate(OpCreateBoard, decode(t, validBoardJSON))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, logger.Output())
}

func TestEmptyBoardPayloadListsMissingFields(t *testing.T) {
	v, _ := makeValidator(t)

	ok, err := v.Validate(OpCreateBoard, map[string]interface{}{})
	assert.False(t, ok)
	failure := requireFailure(t, err)
	assert.Equal(t, OpCreateBoard, failure.Operation)
	assert.Contains(t, err.Error(), "JSON Schema Validation Error")
	require.Len(t, failure.Violations, 1)
	assert.Equal(t, "", failure.Violations[0].InstanceLocation)
	assert.Contains(t, failure.Violations[0].Message, "'id'")
	assert.Contains(t, failure.Violations[0].Message, "'name'")
}

func TestAllViolationsAreReported(t *testing.T) {
	v, _ := makeValidator(t)

	_, err := v.Validate(OpCreateBoard, decode(t, `{"id": "5f1a2b3c4d5e6f7081920a1b", "name": 5, "closed": "no"}`))
	failure := requireFailure(t, err)

	var locations []string
	for _, violation := range failure.Violations {
		locations = append(locations, violation.InstanceLocation)
	}
	assert.Contains(t, locations, "/name")
	assert.Contains(t, locations, "/closed")
	assert.Contains(t, err.Error(), "/name: ")
	assert.Contains(t, err.Error(), "/closed: ")
}

func TestViolationsIdentifyKeyword(t *testing.T) {
	v, _ := makeValidator(t)

	_, err := v.Validate(OpCreateBoard, decode(t, `{"id": "5f1a2b3c4d5e6f7081920a1b", "name": "x", "closed": 1}`))
	failure := requireFailure(t, err)
	require.Len(t, failure.Violations, 1)
	assert.Equal(t, "/closed", failure.Violations[0].InstanceLocation)
	assert.True(t, strings.HasSuffix(failure.Violations[0].KeywordLocation, "/type"),
		"unexpected keyword location %q", failure.Violations[0].KeywordLocation)
}

func TestUnmappedOperation(t *testing.T) {
	v, logger := makeValidator(t)

	ok, err := v.Validate("archiveBoard", decode(t, validBoardJSON))
	assert.False(t, ok)
	var notFound *SchemaNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, err.Error(), "archiveBoard")
	assert.Empty(t, logger.Output())
}

func TestValidationIsIdempotent(t *testing.T) {
	v, _ := makeValidator(t)
	payload := decode(t, `{"name": "x"}`)

	ok1, err1 := v.Validate(OpGetBoard, payload)
	ok2, err2 := v.Validate(OpGetBoard, payload)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, err1, err2)

	ok3, err3 := v.Validate(OpGetBoard, decode(t, validBoardJSON))
	ok4, err4 := v.Validate(OpGetBoard, decode(t, validBoardJSON))
	assert.True(t, ok3)
	assert.True(t, ok4)
	assert.NoError(t, err3)
	assert.NoError(t, err4)
}

func TestPayloadIsNotModified(t *testing.T) {
	v, _ := makeValidator(t)
	payload := map[string]interface{}{"name": "x"}

	_, _ = v.Validate(OpCreateBoard, payload)
	assert.Equal(t, map[string]interface{}{"name": "x"}, payload)
}

func TestFailedPayloadIsWrittenToDiagnostics(t *testing.T) {
	v, logger := makeValidator(t)

	_, err := v.Validate(OpCreateBoard, decode(t, `{"name": "dump me"}`))
	require.Error(t, err)

	output := logger.Output()
	require.Len(t, output, 1)
	assert.True(t, strings.HasPrefix(output[0].Message, diagnosticPrefix))
	assert.Contains(t, output[0].Message, `{"name":"dump me"}`)
	assert.NotContains(t, err.Error(), "dump me")
}

func TestWithDiagnosticsSharesRegistry(t *testing.T) {
	v, original := makeValidator(t)
	other := &framework.CapturingLogger{}

	_, err := v.WithDiagnostics(other).Validate(OpCreateBoard, decode(t, `{}`))
	require.Error(t, err)
	assert.Len(t, other.Output(), 1)
	assert.Empty(t, original.Output())
}

func TestPayloadForms(t *testing.T) {
	v, _ := makeValidator(t)

	forms := map[string]interface{}{
		"raw bytes":       []byte(validBoardJSON),
		"raw message":     json.RawMessage(validBoardJSON),
		"envelope":        fakeEnvelope{StatusCode: 200, body: []byte(validBoardJSON)},
		"ldvalue":         ldvalue.Parse([]byte(validBoardJSON)),
		"struct":          boardStruct{ID: "5f1a2b3c4d5e6f7081920a1b", Name: "Test Board"},
		"pointer":         &boardStruct{ID: "5f1a2b3c4d5e6f7081920a1b", Name: "Test Board"},
		"decoded generic": decode(t, validBoardJSON),
	}
	for name, payload := range forms {
		t.Run(name, func(t *testing.T) {
			ok, err := v.Validate(OpCreateBoard, payload)
			assert.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestNonObjectPayloadIsValidatedAsIs(t *testing.T) {
	v, _ := makeValidator(t)

	for _, payload := range []interface{}{nil, "a string", 3.5, []interface{}{}} {
		_, err := v.Validate(OpCreateBoard, payload)
		var failure *ValidationFailure
		assert.ErrorAs(t, err, &failure, "payload %v", payload)
	}
}

func TestUnserializablePayload(t *testing.T) {
	v, _ := makeValidator(t)

	_, err := v.Validate(OpCreateBoard, make(chan int))
	require.Error(t, err)
	var failure *ValidationFailure
	assert.False(t, errors.As(err, &failure))
}

func TestListAndCardSchemas(t *testing.T) {
	v, _ := makeValidator(t)

	list := `{"id": "5f1a2b3c4d5e6f7081920a1c", "name": "Todo", "closed": false,
		"idBoard": "5f1a2b3c4d5e6f7081920a1b", "pos": 65535}`
	for _, op := range []string{OpCreateList, OpGetList, OpUpdateList} {
		ok, err := v.Validate(op, decode(t, list))
		assert.NoError(t, err, op)
		assert.True(t, ok, op)
	}

	card := `{"id": "5f1a2b3c4d5e6f7081920a1d", "name": "Card", "desc": "", "closed": false,
		"idBoard": "5f1a2b3c4d5e6f7081920a1b", "idList": "5f1a2b3c4d5e6f7081920a1c",
		"idMembers": [], "labels": [], "due": null, "dueComplete": false, "isTemplate": false,
		"url": "https://trello.com/c/abc/1-card", "shortUrl": "https://trello.com/c/abc"}`
	for _, op := range []string{OpCreateCard, OpGetCard, OpUpdateCard} {
		ok, err := v.Validate(op, decode(t, card))
		assert.NoError(t, err, op)
		assert.True(t, ok, op)
	}

	_, err := v.Validate(OpGetCard, decode(t, `{"id": "5f1a2b3c4d5e6f7081920a1d", "name": "Card", "closed": false,
		"idBoard": "nope", "idList": "5f1a2b3c4d5e6f7081920a1c"}`))
	failure := requireFailure(t, err)
	require.Len(t, failure.Violations, 1)
	assert.Equal(t, "/idBoard", failure.Violations[0].InstanceLocation)
}

func TestConcurrentValidation(t *testing.T) {
	v, _ := makeValidator(t)

	var wg sync.WaitGroup
	results := make([]error, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload := validBoardJSON
			if i%2 == 1 {
				payload = `{}`
			}
			_, results[i] = v.Validate(OpCreateBoard, []byte(payload))
		}(i)
	}
	wg.Wait()

	for i, err := range results {
		if i%2 == 1 {
			assert.Error(t, err)
		} else {
			assert.NoError(t, err)
		}
	}
}

func TestMustValidatePassesForValidPayload(t *testing.T) {
	v, _ := makeValidator(t)
	ft := &fakeTestingT{}

	v.MustValidate(ft, OpCreateBoard, decode(t, validBoardJSON))
	assert.False(t, ft.failed)
	assert.Empty(t, ft.errors)
}

func TestMustValidateFailsWithViolationText(t *testing.T) {
	v, _ := makeValidator(t)
	ft := &fakeTestingT{}

	v.MustValidate(ft, OpCreateBoard, decode(t, `{}`))
	assert.True(t, ft.failed)
	require.NotEmpty(t, ft.errors)
	assert.Contains(t, ft.errors[0], "JSON Schema Validation Error")
}
