package trellotests

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/trelloqa/trello-contract-tests/framework"
	"github.com/trelloqa/trello-contract-tests/schema"
	"github.com/trelloqa/trello-contract-tests/trelloapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const defaultRequestTimeout = time.Second * 30

// Environment is the configuration shared by every test in a run.
type Environment struct {
	// API is configured with valid credentials.
	API *trelloapi.Client
	// Validator checks response payloads against the operation schemas.
	Validator *schema.Validator
	// RequestTimeout bounds each API call; if zero, a default is used.
	RequestTimeout time.Duration
}

// T represents a test or subtest in the Trello test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is outside
// of the Go test runner, and with some extra features such as debug logging that are convenient for
// our use case. Those features are provided by our lower-level framework package.
//
// It also provides functionality that is specific to the Trello API: an authorized client, a client
// with empty credentials, schema validation, and helpers that create resources and delete them
// again when the test ends.
//
// To make test assertions, you can use the assert and require packages, passing the *T as if it were
// a *testing.T.
type T struct {
	context   *framework.Context
	env       *Environment
	api       *trelloapi.Client
	noAuthAPI *trelloapi.Client
	validator *schema.Validator
}

func newTestScope(context *framework.Context, env *Environment) *T {
	logger := context.DebugLogger()
	return &T{
		context:   context,
		env:       env,
		api:       env.API.WithLogger(logger),
		noAuthAPI: trelloapi.NewClient(env.API.Config().Unauthenticated(), framework.LoggerWithPrefix(logger, "[no auth] ")),
		validator: env.Validator.WithDiagnostics(logger),
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

func (t *T) ID() framework.TestID {
	return t.context.ID()
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Defer schedules an action to run when the test ends.
func (t *T) Defer(action func()) {
	t.context.Defer(action)
}

// API returns a client with valid credentials.
func (t *T) API() *trelloapi.Client {
	return t.api
}

// UnauthorizedAPI returns a client whose key and token are empty.
func (t *T) UnauthorizedAPI() *trelloapi.Client {
	return t.noAuthAPI
}

// Ctx returns a context for a single API call.
func (t *T) Ctx() context.Context {
	timeout := t.env.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Defer(cancel)
	return ctx
}

// RequireValidSchema fails the test immediately if the payload does not match the schema of the
// operation.
func (t *T) RequireValidSchema(operation string, payload interface{}) {
	t.validator.MustValidate(t, operation, payload)
}

// RequireAPIError fails the test immediately unless err is an API error with the expected status.
// If message is not empty, the error message must also match it exactly.
func (t *T) RequireAPIError(err error, statusCode int, message string) *trelloapi.APIError {
	require.Error(t, err, "expected the request to fail")
	var apiErr *trelloapi.APIError
	if !errors.As(err, &apiErr) {
		require.Fail(t, "expected an API error", "got: %s", err)
	}
	assert.Equal(t, statusCode, apiErr.StatusCode, "unexpected status code")
	if message != "" {
		assert.Equal(t, message, apiErr.Message, "unexpected error message")
	}
	return apiErr
}

// CreateBoardResponse creates a board, requiring success, and deletes it when the test ends.
func (t *T) CreateBoardResponse(params interface{}) *trelloapi.Response {
	resp, err := t.api.CreateBoard(t.Ctx(), params)
	require.NoError(t, err)
	if id := resp.Value().GetByKey("id").StringValue(); id != "" {
		t.deleteBoardLater(id)
	}
	var board trelloapi.Board
	require.NoError(t, resp.Decode(&board))
	return resp
}

// CreateBoard creates a board, requiring success, and deletes it when the test ends.
func (t *T) CreateBoard(params interface{}) trelloapi.Board {
	var board trelloapi.Board
	require.NoError(t, t.CreateBoardResponse(params).Decode(&board))
	return board
}

// CreateList creates a list on a board, requiring success. Lists are removed along with their
// board.
func (t *T) CreateList(params interface{}) trelloapi.List {
	resp, err := t.api.CreateList(t.Ctx(), params)
	require.NoError(t, err)
	var list trelloapi.List
	require.NoError(t, resp.Decode(&list))
	return list
}

// CreateCardResponse creates a card, requiring success. Cards are removed along with their board.
func (t *T) CreateCardResponse(params interface{}) *trelloapi.Response {
	resp, err := t.api.CreateCard(t.Ctx(), params)
	require.NoError(t, err)
	return resp
}

func (t *T) CreateCard(params interface{}) trelloapi.Card {
	var card trelloapi.Card
	require.NoError(t, t.CreateCardResponse(params).Decode(&card))
	return card
}

func (t *T) deleteBoardLater(boardID string) {
	t.Defer(func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultRequestTimeout)
		defer cancel()
		_, err := t.api.DeleteBoard(ctx, boardID)
		var apiErr *trelloapi.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			return // the test already deleted it
		}
		if err != nil {
			t.Debug("Could not delete board %s: %s", boardID, err)
		}
	})
}

// RequireSameValue fails the test unless two JSON values are equal.
func (t *T) RequireSameValue(expected, actual ldvalue.Value, message string) {
	require.JSONEq(t, expected.JSONString(), actual.JSONString(), message)
}

// withoutKeys returns a copy of a JSON object without the specified properties.
func withoutKeys(value ldvalue.Value, keys ...string) ldvalue.Value {
	m := value.AsValueMap().AsMap()
	for _, k := range keys {
		delete(m, k)
	}
	return ldvalue.CopyObject(m)
}

func assertHasPrefix(t *T, s, prefix, field string) {
	assert.True(t, strings.HasPrefix(s, prefix), "%s %q should start with %q", field, s, prefix)
}
