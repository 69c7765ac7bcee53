package trellotests

import (
	"github.com/trelloqa/trello-contract-tests/factory"
)

const invalidKeyMessage = "invalid key"

// DoAuthorizationTests verifies that requests without a key and token are rejected, for
// resources that exist and are visible to the configured member.
func DoAuthorizationTests(t *T) {
	t.Run("boards", func(t *T) {
		board := t.CreateBoard(factory.Board())
		noAuth := t.UnauthorizedAPI()

		t.Run("create", func(t *T) {
			_, err := noAuth.CreateBoard(t.Ctx(), factory.Board())
			t.RequireAPIError(err, 401, invalidKeyMessage)
		})
		t.Run("get", func(t *T) {
			_, err := noAuth.GetBoard(t.Ctx(), board.ID)
			t.RequireAPIError(err, 401, invalidKeyMessage)
		})
		t.Run("update", func(t *T) {
			_, err := noAuth.UpdateBoard(t.Ctx(), board.ID, factory.BoardParams{Name: "Hijacked"})
			t.RequireAPIError(err, 401, invalidKeyMessage)
		})
		t.Run("delete", func(t *T) {
			_, err := noAuth.DeleteBoard(t.Ctx(), board.ID)
			t.RequireAPIError(err, 401, invalidKeyMessage)
		})
	})

	t.Run("cards", func(t *T) {
		listID := t.newCardList()
		card := t.CreateCard(cardIn(listID))
		noAuth := t.UnauthorizedAPI()

		t.Run("create", func(t *T) {
			_, err := noAuth.CreateCard(t.Ctx(), cardIn(listID))
			t.RequireAPIError(err, 401, invalidKeyMessage)
		})
		t.Run("get", func(t *T) {
			_, err := noAuth.GetCard(t.Ctx(), card.ID)
			t.RequireAPIError(err, 401, invalidKeyMessage)
		})
		t.Run("update", func(t *T) {
			_, err := noAuth.UpdateCard(t.Ctx(), card.ID, factory.CardParams{Name: "Hijacked"})
			t.RequireAPIError(err, 401, invalidKeyMessage)
		})
		t.Run("delete", func(t *T) {
			_, err := noAuth.DeleteCard(t.Ctx(), card.ID)
			t.RequireAPIError(err, 401, invalidKeyMessage)
		})
	})
}
