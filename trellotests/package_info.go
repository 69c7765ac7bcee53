// Package trellotests contains the Trello API contract tests themselves and their supporting API.
//
// Test runner infrastructure that is not specific to Trello, such as test contexts, filtering,
// and result reporting, is in the lower-level framework package.
package trellotests
