// Package factory produces random request payloads for the test suites. Every generated name
// carries QAPrefix so that test data is recognizable in a shared account.
package factory

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/oklog/ulid/v2"
)

const QAPrefix = "QATest"

const dateFormat = "2006-01-02"

// RunTag uniquely identifies this test run. It is included in the description of every board
// built by Board, so that boards created by this run can be told apart from others in the
// same account.
var RunTag = ulid.Make().String()

// BoardParams is the body of a create or update board request.
type BoardParams struct {
	Name string `json:"name,omitempty"`
	Desc string `json:"desc,omitempty"`
}

// ListParams is the body of a create or update list request.
type ListParams struct {
	Name    string `json:"name,omitempty"`
	IDBoard string `json:"idBoard,omitempty"`
}

// CardParams is the body of a create or update card request. Closed is a pointer so that an
// update can leave it unchanged.
type CardParams struct {
	Name   string `json:"name,omitempty"`
	Desc   string `json:"desc,omitempty"`
	IDList string `json:"idList,omitempty"`
	Closed *bool  `json:"closed,omitempty"`
}

// RandomString returns a lowercase alphanumeric string of the given length.
func RandomString(length int) string {
	if length <= 0 {
		return ""
	}
	return gofakeit.Regex(fmt.Sprintf("[0-9a-z]{%d}", length))
}

// Paragraph returns a few sentences of placeholder text.
func Paragraph() string {
	return gofakeit.Paragraph(1, 3, 8, " ")
}

func Board() BoardParams {
	return BoardParams{
		Name: "Test Board (" + QAPrefix + ") " + RandomString(8),
		Desc: Paragraph() + " [" + RunTag + "]",
	}
}

// CompanyBoard returns board parameters named after a random company.
func CompanyBoard() BoardParams {
	return BoardParams{
		Name: gofakeit.Company(),
		Desc: "[" + RunTag + "]",
	}
}

// List returns list parameters without a board ID; the caller must set IDBoard.
func List() ListParams {
	return ListParams{
		Name: "Test List (" + QAPrefix + ") " + RandomString(5),
	}
}

// Card returns card parameters without a list ID; the caller must set IDList.
func Card() CardParams {
	return CardParams{
		Name: "Test Card (" + QAPrefix + ") " + RandomString(8),
		Desc: Paragraph(),
	}
}

// Bool returns a pointer to b, for optional fields such as CardParams.Closed.
func Bool(b bool) *bool {
	return &b
}

// Today returns the current local date as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(dateFormat)
}

// Tomorrow returns the next local date as YYYY-MM-DD.
func Tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format(dateFormat)
}
