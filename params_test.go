package main

import (
	"regexp"
	"testing"
	"time"

	"github.com/trelloqa/trello-contract-tests/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadParams(t *testing.T) {
	t.Setenv("TRELLO_KEY", "")
	t.Setenv("KEY", "legacy-key")
	t.Setenv("TRELLO_TOKEN", "new-token")
	t.Setenv("TOKEN", "legacy-token")
	t.Setenv("TRELLO_HOST", "")
	t.Setenv("HOST", "")

	var params commandParams
	ok := params.Read([]string{"trello-contract-tests", "-run", "boards", "-skip", "delete", "-clean", "-debug"})
	require.True(t, ok)
	assert.Equal(t, "legacy-key", params.key)
	assert.Equal(t, "new-token", params.token)
	assert.Equal(t, "", params.host)
	assert.True(t, params.clean)
	assert.True(t, params.debug)
	assert.False(t, params.debugAll)
	assert.True(t, params.filters.AsFilter(framework.TestID{Path: []string{"boards", "create"}}))
	assert.False(t, params.filters.AsFilter(framework.TestID{Path: []string{"boards", "delete"}}))
}

func TestReadParamsRequiresCredentials(t *testing.T) {
	for _, name := range []string{"TRELLO_KEY", "KEY", "TRELLO_TOKEN", "TOKEN"} {
		t.Setenv(name, "")
	}
	t.Setenv("TRELLO_KEY", "some-key")

	var params commandParams
	assert.False(t, params.Read([]string{"trello-contract-tests"}))
}

func TestReadParamsHostFromEnvironment(t *testing.T) {
	t.Setenv("TRELLO_KEY", "k")
	t.Setenv("TRELLO_TOKEN", "t")
	t.Setenv("TRELLO_HOST", "http://localhost:9000")

	var params commandParams
	require.True(t, params.Read([]string{"trello-contract-tests"}))
	assert.Equal(t, "http://localhost:9000", params.host)

	var overridden commandParams
	require.True(t, overridden.Read([]string{"trello-contract-tests", "-host", "http://other"}))
	assert.Equal(t, "http://other", overridden.host)
}

func TestRerunCommand(t *testing.T) {
	params := commandParams{host: "http://localhost:9000", debugAll: true}
	failed := framework.TestID{Path: []string{"cards", "names", "B567%)^ )Ord"}}

	cmd := params.rerunCommand("./trello-contract-tests", []framework.TestResult{{TestID: failed}})
	pattern := framework.ExactMatchPattern(failed)
	assert.Equal(t,
		"./trello-contract-tests -host http://localhost:9000 -run '"+pattern+"' -debug-all",
		cmd)
	assert.True(t, regexp.MustCompile(pattern).MatchString(failed.String()))
}

func TestRerunCommandKeepsTimeoutAndDebugLevel(t *testing.T) {
	failed := []framework.TestResult{{TestID: framework.TestID{Path: []string{"lists"}}}}

	params := commandParams{requestTimeout: time.Minute, debug: true}
	assert.Equal(t, "prog -run '^lists$' -timeout 1m0s -debug", params.rerunCommand("prog", failed))

	params = commandParams{requestTimeout: defaultRequestTimeout, debug: true, debugAll: true}
	assert.Equal(t, "prog -run '^lists$' -debug-all", params.rerunCommand("prog", failed))
}
