package framework

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	events []string
}

func (r *recordingTestLogger) TestStarted(id TestID) {
	r.events = append(r.events, "start "+id.String())
}

func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.events = append(r.events, "error "+id.String()+": "+err.Error())
}

func (r *recordingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	r.events = append(r.events, fmt.Sprintf("finish %s failed=%t debug=%d", id, failed, len(debugOutput)))
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.events = append(r.events, "skip "+id.String()+": "+reason)
}

func failedIDs(results Results) []string {
	var ret []string
	for _, f := range results.Failures {
		ret = append(ret, f.TestID.String())
	}
	return ret
}

func TestPassingSubtests(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Run("b", func(c *Context) {
				assert.Equal(c, []string{"a", "b"}, c.ID().Path)
			})
		})
	})
	assert.True(t, results.OK())
	assert.Equal(t, []string{
		"start a",
		"start a/b",
		"finish a/b failed=false debug=0",
		"finish a failed=false debug=0",
	}, logger.events)
}

func TestErrorfContinuesAndFailNowStops(t *testing.T) {
	reachedAfterErrorf := false
	reachedAfterFailNow := false
	results := Run(nil, nil, func(c *Context) {
		c.Run("errorf", func(c *Context) {
			c.Errorf("first problem")
			reachedAfterErrorf = true
		})
		c.Run("failnow", func(c *Context) {
			require.Fail(c, "second problem")
			reachedAfterFailNow = true
		})
		c.Run("ok", func(c *Context) {})
	})
	assert.True(t, reachedAfterErrorf)
	assert.False(t, reachedAfterFailNow)
	assert.False(t, results.OK())
	assert.Equal(t, []string{"errorf", "failnow"}, failedIDs(results))
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Equal(t, "first problem", results.Failures[0].Errors[0].Error())
}

func TestFailNowWithoutMessage(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("silent", func(c *Context) {
			c.FailNow()
		})
	})
	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Equal(t, "test failed with no failure message", results.Failures[0].Errors[0].Error())
}

func TestUnexpectedPanicFailsTest(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("panics", func(c *Context) {
			panic(errors.New("boom"))
		})
		c.Run("still runs", func(c *Context) {})
	})
	assert.Equal(t, []string{"panics"}, failedIDs(results))
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "unexpected panic in test: boom")
}

func TestSkip(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("skipped", func(c *Context) {
			c.SkipWithReason("not today")
		})
	})
	assert.True(t, results.OK())
	assert.Contains(t, logger.events, "skip skipped: not today")
	assert.Equal(t, 1, results.SkippedCount())
}

func TestFailedReportsFailureSoFar(t *testing.T) {
	var before, after bool
	results := Run(nil, nil, func(c *Context) {
		c.Run("test", func(c *Context) {
			before = c.Failed()
			assert.Fail(c, "not yet")
			after = c.Failed()
		})
	})
	assert.False(t, before)
	assert.True(t, after)
	assert.False(t, results.OK())
}

func TestFilterExcludesSubtreeOfFilteredParent(t *testing.T) {
	var ran []string
	filter := func(id TestID) bool { return id.String() != "b" }
	logger := &recordingTestLogger{}
	Run(filter, logger, func(c *Context) {
		for _, name := range []string{"a", "b"} {
			c.Run(name, func(c *Context) {
				c.Run("x", func(c *Context) {
					ran = append(ran, c.ID().String())
				})
			})
		}
	})
	assert.Equal(t, []string{"a/x"}, ran)
	assert.Contains(t, logger.events, "skip b: excluded by filter parameters")
}

func TestDeferRunsInReverseOrderAfterTest(t *testing.T) {
	var calls []string
	Run(nil, nil, func(c *Context) {
		c.Run("test", func(c *Context) {
			c.Defer(func() { calls = append(calls, "first") })
			c.Defer(func() { calls = append(calls, "second") })
			calls = append(calls, "body")
		})
	})
	assert.Equal(t, []string{"body", "second", "first"}, calls)
}

func TestDeferRunsAfterFailureAndSkip(t *testing.T) {
	var calls []string
	Run(nil, nil, func(c *Context) {
		c.Run("fails", func(c *Context) {
			c.Defer(func() { calls = append(calls, "fails") })
			c.FailNow()
		})
		c.Run("skips", func(c *Context) {
			c.Defer(func() { calls = append(calls, "skips") })
			c.Skip()
		})
	})
	assert.Equal(t, []string{"fails", "skips"}, calls)
}

func TestPanicInDeferDoesNotStopOtherDeferredActions(t *testing.T) {
	called := false
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("test", func(c *Context) {
			c.Defer(func() { called = true })
			c.Defer(func() { panic("cleanup failed") })
		})
	})
	assert.True(t, called)
	assert.True(t, results.OK())
	assert.Contains(t, logger.events, "finish test failed=false debug=1")
}

func TestDebugOutputIsPassedToLogger(t *testing.T) {
	logger := &recordingTestLogger{}
	Run(nil, logger, func(c *Context) {
		c.Run("test", func(c *Context) {
			c.Debug("one")
			c.DebugLogger().Printf("two %d", 2)
		})
	})
	assert.Contains(t, logger.events, "finish test failed=false debug=2")
}

func TestErrorIsReformattedForLogger(t *testing.T) {
	logger := &recordingTestLogger{}
	Run(nil, logger, func(c *Context) {
		c.Run("test", func(c *Context) {
			c.Errorf("\n\tError Trace:\tfile.go:1\n\tError:      \tbad  \n")
		})
	})
	assert.Contains(t, logger.events, "error test: Error Trace:\tfile.go:1\nError:      \tbad\n")
}
