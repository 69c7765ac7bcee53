package trellotests

import (
	"github.com/trelloqa/trello-contract-tests/factory"
	"github.com/trelloqa/trello-contract-tests/schema"
	"github.com/trelloqa/trello-contract-tests/trelloapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoListTests(t *T) {
	t.Run("create list (POST /1/lists/)", func(t *T) {
		t.Run("on a board", func(t *T) {
			board := t.CreateBoard(factory.Board())
			params := factory.List()
			params.IDBoard = board.ID

			resp, err := t.API().CreateList(t.Ctx(), params)
			require.NoError(t, err)
			t.RequireValidSchema(schema.OpCreateList, resp)

			var list trelloapi.List
			require.NoError(t, resp.Decode(&list))
			assert.Len(t, list.ID, 24)
			assert.Equal(t, params.Name, list.Name)
			assert.Equal(t, board.ID, list.IDBoard)
			assert.False(t, list.Closed)
		})

		t.Run("without board ID", func(t *T) {
			_, err := t.API().CreateList(t.Ctx(), factory.ListParams{Name: "Orphan List"})
			t.RequireAPIError(err, 400, "")
		})
	})

	t.Run("get list by ID (GET /1/lists/{id})", func(t *T) {
		board := t.CreateBoard(factory.Board())
		list := t.CreateList(listOn(board.ID))

		resp, err := t.API().GetList(t.Ctx(), list.ID)
		require.NoError(t, err)
		t.RequireValidSchema(schema.OpGetList, resp)

		var got trelloapi.List
		require.NoError(t, resp.Decode(&got))
		assert.Equal(t, list, got)
	})

	t.Run("update list by ID (PUT /1/lists/{id})", func(t *T) {
		t.Run("rename", func(t *T) {
			board := t.CreateBoard(factory.Board())
			list := t.CreateList(listOn(board.ID))

			resp, err := t.API().UpdateList(t.Ctx(), list.ID, map[string]string{"name": "Renamed List"})
			require.NoError(t, err)
			t.RequireValidSchema(schema.OpUpdateList, resp)

			var got trelloapi.List
			require.NoError(t, resp.Decode(&got))
			assert.Equal(t, list.ID, got.ID)
			assert.Equal(t, "Renamed List", got.Name)
		})

		t.Run("archive", func(t *T) {
			board := t.CreateBoard(factory.Board())
			list := t.CreateList(listOn(board.ID))

			resp, err := t.API().ArchiveList(t.Ctx(), list.ID, true)
			require.NoError(t, err)
			t.RequireValidSchema(schema.OpUpdateList, resp)
			assert.True(t, resp.Value().GetByKey("closed").BoolValue())

			resp, err = t.API().GetList(t.Ctx(), list.ID)
			require.NoError(t, err)
			assert.True(t, resp.Value().GetByKey("closed").BoolValue(), "list should stay archived")
		})

		t.Run("with invalid ID", func(t *T) {
			_, err := t.API().UpdateList(t.Ctx(), invalidID, map[string]string{"name": "x"})
			t.RequireAPIError(err, 400, "invalid id")
		})
	})
}

func listOn(boardID string) factory.ListParams {
	params := factory.List()
	params.IDBoard = boardID
	return params
}
