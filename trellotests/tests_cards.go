package trellotests

import (
	"github.com/trelloqa/trello-contract-tests/factory"
	"github.com/trelloqa/trello-contract-tests/schema"
	"github.com/trelloqa/trello-contract-tests/trelloapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Card properties that GET returns but POST does not, or the other way round.
var cardOnlyOnCreateOrGet = []string{"attachments", "descData", "limits", "stickers"}

func DoCardTests(t *T) {
	t.Run("create card (POST /1/cards/)", doCreateCardTests)
	t.Run("get card by ID (GET /1/cards/{id})", doGetCardTests)
	t.Run("delete card by ID (DELETE /1/cards/{id})", doDeleteCardTests)
	t.Run("update card by ID (PUT /1/cards/{id})", doUpdateCardTests)
}

// newCardList creates a board and a list on it, and returns the list ID.
func (t *T) newCardList() string {
	board := t.CreateBoard(factory.Board())
	return t.CreateList(listOn(board.ID)).ID
}

func cardIn(listID string) factory.CardParams {
	params := factory.Card()
	params.IDList = listID
	return params
}

func doCreateCardTests(t *T) {
	t.Run("with required parameters", func(t *T) {
		listID := t.newCardList()
		params := cardIn(listID)

		resp := t.CreateCardResponse(params)
		t.RequireValidSchema(schema.OpCreateCard, resp)
		assert.Equal(t, 200, resp.StatusCode)

		var card trelloapi.Card
		require.NoError(t, resp.Decode(&card))
		assert.Len(t, card.ID, 24)
		assert.Equal(t, params.Name, card.Name)
		assert.Equal(t, params.Desc, card.Desc)
		assert.Equal(t, listID, card.IDList)
		assert.Len(t, card.IDBoard, 24)
		assert.False(t, card.Closed)
		assert.False(t, card.IsTemplate)
		assert.False(t, card.DueComplete)
		assertHasPrefix(t, card.URL, "https://trello.com/c/", "url")
		assertHasPrefix(t, card.ShortURL, "https://trello.com/c/", "shortUrl")
	})

	t.Run("without list ID", func(t *T) {
		_, err := t.API().CreateCard(t.Ctx(), factory.Card())
		t.RequireAPIError(err, 400, "invalid value for idList")
	})

	t.Run("names", func(t *T) {
		listID := t.newCardList()
		for _, name := range nameScenarios {
			name := name
			t.Run(name, func(t *T) {
				params := cardIn(listID)
				params.Name = name
				card := t.CreateCard(params)
				assert.Equal(t, name, card.Name)
			})
		}
	})
}

func doGetCardTests(t *T) {
	t.Run("by ID", func(t *T) {
		created := t.CreateCardResponse(cardIn(t.newCardList()))
		var card trelloapi.Card
		require.NoError(t, created.Decode(&card))

		resp, err := t.API().GetCard(t.Ctx(), card.ID)
		require.NoError(t, err)
		t.RequireValidSchema(schema.OpGetCard, resp)
		assert.Equal(t, 200, resp.StatusCode)

		t.RequireSameValue(
			withoutKeys(created.Value(), cardOnlyOnCreateOrGet...),
			withoutKeys(resp.Value(), cardOnlyOnCreateOrGet...),
			"card from GET is different from the card created")
	})

	t.Run("with unknown ID", func(t *T) {
		_, err := t.API().GetCard(t.Ctx(), "unknownCardId")
		t.RequireAPIError(err, 400, "invalid id")
	})
}

func doDeleteCardTests(t *T) {
	t.Run("by ID", func(t *T) {
		card := t.CreateCard(cardIn(t.newCardList()))

		resp, err := t.API().DeleteCard(t.Ctx(), card.ID)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		t.RequireSameValue(ldvalue.ObjectBuild().Set("limits", ldvalue.ObjectBuild().Build()).Build(),
			resp.Value(), "unexpected delete response")

		_, err = t.API().GetCard(t.Ctx(), card.ID)
		t.RequireAPIError(err, 404, notFoundMessage)
	})

	t.Run("twice", func(t *T) {
		card := t.CreateCard(cardIn(t.newCardList()))

		_, err := t.API().DeleteCard(t.Ctx(), card.ID)
		require.NoError(t, err)

		_, err = t.API().DeleteCard(t.Ctx(), card.ID)
		t.RequireAPIError(err, 404, notFoundMessage)
	})
}

func doUpdateCardTests(t *T) {
	t.Run("by ID", func(t *T) {
		card := t.CreateCard(cardIn(t.newCardList()))
		params := factory.CardParams{Name: "Updated Card " + factory.RandomString(5), Closed: factory.Bool(true)}

		resp, err := t.API().UpdateCard(t.Ctx(), card.ID, params)
		require.NoError(t, err)
		t.RequireValidSchema(schema.OpUpdateCard, resp)

		var updated trelloapi.Card
		require.NoError(t, resp.Decode(&updated))
		assert.Equal(t, card.ID, updated.ID)
		assert.Equal(t, params.Name, updated.Name)
		assert.True(t, updated.Closed)
		assert.Equal(t, card.IDList, updated.IDList)
	})

	t.Run("after delete", func(t *T) {
		card := t.CreateCard(cardIn(t.newCardList()))
		_, err := t.API().DeleteCard(t.Ctx(), card.ID)
		require.NoError(t, err)

		_, err = t.API().UpdateCard(t.Ctx(), card.ID, factory.CardParams{Name: "Too Late"})
		t.RequireAPIError(err, 404, notFoundMessage)
	})
}
