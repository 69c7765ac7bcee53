package trellotests

import (
	"strings"

	"github.com/trelloqa/trello-contract-tests/factory"
	"github.com/trelloqa/trello-contract-tests/schema"
	"github.com/trelloqa/trello-contract-tests/trelloapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// A syntactically invalid board ID; Trello answers 400 rather than 404 for these.
const invalidID = "76432424487"

const notFoundMessage = "The requested resource was not found."

// Names that Trello must store exactly as given.
var nameScenarios = []string{
	"B",
	"VeryVeryLOOOOOOOOOooooooooooooooonggggggggggggggNameeeeeeeeeeeeeeee",
	"lower case name",
	"N_a_m_e_",
	"Name@gel.com",
	"B567%)^ )Ord",
	"3769808089674",
	"+=*$%_!@#$%^&*()_)",
	"   Spaces   Name    ",
}

func DoBoardTests(t *T) {
	t.Run("create board (POST /1/boards/)", doCreateBoardTests)
	t.Run("get board by ID (GET /1/boards/{id})", doGetBoardTests)
	t.Run("get boards member belongs to (GET /1/members/me/boards)", doMemberBoardsTests)
	t.Run("update board by ID (PUT /1/boards/{id})", doUpdateBoardTests)
	t.Run("delete board by ID (DELETE /1/boards/{id})", doDeleteBoardTests)
}

func doCreateBoardTests(t *T) {
	t.Run("with required parameters", func(t *T) {
		params := factory.BoardParams{Name: "Test Board"}
		resp := t.CreateBoardResponse(params)

		t.RequireValidSchema(schema.OpCreateBoard, resp)
		assert.Equal(t, 200, resp.StatusCode)

		var board trelloapi.Board
		require.NoError(t, resp.Decode(&board))
		assert.Len(t, board.ID, 24)
		assert.Equal(t, params.Name, board.Name)
		assert.Equal(t, "", board.Desc)
		assert.False(t, board.Closed)
		assert.False(t, board.Pinned)
		assertHasPrefix(t, board.URL, "https://trello.com/b/", "url")
		assertHasPrefix(t, board.ShortURL, "https://trello.com/b/", "shortUrl")
	})

	t.Run("without required parameters", func(t *T) {
		_, err := t.API().CreateBoard(t.Ctx(), factory.BoardParams{})
		t.RequireAPIError(err, 400, "invalid value for name")
	})

	t.Run("with company name", func(t *T) {
		params := factory.CompanyBoard()
		board := t.CreateBoard(params)
		assert.Equal(t, params.Name, board.Name)
	})

	for _, name := range nameScenarios {
		name := name
		t.Run("with name: "+name, func(t *T) {
			params := factory.Board()
			params.Name = name
			board := t.CreateBoard(params)
			assert.Equal(t, name, board.Name)
		})
	}
}

func doGetBoardTests(t *T) {
	t.Run("by ID", func(t *T) {
		created := t.CreateBoardResponse(factory.Board())
		var newBoard trelloapi.Board
		require.NoError(t, created.Decode(&newBoard))

		resp, err := t.API().GetBoard(t.Ctx(), newBoard.ID)
		require.NoError(t, err)
		t.RequireValidSchema(schema.OpGetBoard, resp)

		t.RequireSameValue(withoutKeys(created.Value(), "limits"), resp.Value(),
			"board from GET is different from the board created")

		var gotBoard trelloapi.Board
		require.NoError(t, resp.Decode(&gotBoard))
		assert.Equal(t, newBoard, gotBoard)
	})

	t.Run("with invalid ID", func(t *T) {
		_, err := t.API().GetBoard(t.Ctx(), invalidID)
		t.RequireAPIError(err, 400, "invalid id")
	})
}

func doMemberBoardsTests(t *T) {
	t.Run("includes created boards", func(t *T) {
		var created []trelloapi.Board
		for i := 0; i < 3; i++ {
			board := t.CreateBoard(factory.Board())
			assert.NotEmpty(t, board.Name)
			assert.Contains(t, board.Desc, factory.RunTag)
			created = append(created, board)
		}

		resp, err := t.API().GetMemberBoards(t.Ctx(), "me")
		require.NoError(t, err)
		boards := resp.Value()
		require.Equal(t, ldvalue.ArrayType, boards.Type(), "expected an array of boards")

		var ours []string
		for i := 0; i < boards.Count(); i++ {
			b := boards.GetByIndex(i)
			if strings.Contains(b.GetByKey("desc").StringValue(), factory.RunTag) {
				ours = append(ours, b.GetByKey("id").StringValue())
			}
		}
		require.Len(t, ours, 3)
		for _, board := range created {
			assert.Contains(t, ours, board.ID)
		}
	})
}

func doUpdateBoardTests(t *T) {
	t.Run("by ID", func(t *T) {
		newBoard := t.CreateBoard(factory.Board())
		params := factory.BoardParams{Name: "Updated Name"}

		resp, err := t.API().UpdateBoard(t.Ctx(), newBoard.ID, params)
		require.NoError(t, err)
		t.RequireValidSchema(schema.OpUpdateBoard, resp)
		assert.Equal(t, 200, resp.StatusCode)

		value := resp.Value()
		assert.Equal(t, ldvalue.ObjectType, value.Type())
		assert.Equal(t, newBoard.ID, value.GetByKey("id").StringValue())
		assert.Equal(t, params.Name, value.GetByKey("name").StringValue())
	})

	t.Run("with invalid ID", func(t *T) {
		_, err := t.API().UpdateBoard(t.Ctx(), invalidID, factory.Board())
		t.RequireAPIError(err, 400, "invalid id")
	})
}

func doDeleteBoardTests(t *T) {
	t.Run("by ID", func(t *T) {
		newBoard := t.CreateBoard(factory.Board())

		resp, err := t.API().DeleteBoard(t.Ctx(), newBoard.ID)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		value := resp.Value()
		require.True(t, value.GetByKey("_value").IsNull(), "expected _value to be null")
		assert.Contains(t, value.Keys(), "_value")

		_, err = t.API().GetBoard(t.Ctx(), newBoard.ID)
		t.RequireAPIError(err, 404, notFoundMessage)
	})

	t.Run("with invalid ID", func(t *T) {
		_, err := t.API().DeleteBoard(t.Ctx(), invalidID)
		t.RequireAPIError(err, 400, "invalid id")
	})
}
