// Package framework contains the test runner infrastructure that is not specific to the
// Trello API.
//
// There is a general notion of a test context which is similar to Go's *testing.T, allowing
// pieces of test logic to be associated with a test identifier, to register cleanup actions,
// and to accumulate success/failure results. Tests are selected with regex filters and their
// progress is reported through a TestLogger.
//
// The domain-specific code that knows what is being tested (the trellotests package) builds a
// domain-specific test API on top of the test context.
package framework
