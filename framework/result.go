package framework

import (
	"strings"
)

// Results is the outcome of a test run. Failures is the subset of Tests that failed.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

// TestResult holds the errors reported by one test. A test with no errors that was not skipped
// passed.
type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// SkippedCount returns the number of tests that skipped themselves. Tests excluded by a filter
// are not counted, since they never ran.
func (r Results) SkippedCount() int {
	n := 0
	for _, t := range r.Tests {
		if t.Skipped {
			n++
		}
	}
	return n
}

// TestID identifies a test by the names of the test and all of its parents.
type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}
