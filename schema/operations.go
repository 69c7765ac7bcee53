package schema

// Schema families. A schema file belongs to a family if its name starts with the family
// identifier followed by a dot, as in "trelloBoard.schema.json".
const (
	FamilyBoard = "trelloBoard"
	FamilyList  = "trelloList"
	FamilyCard  = "trelloCard"
)

// Operation names that test code passes to Validator.Validate.
const (
	OpCreateBoard = "createBoard"
	OpGetBoard    = "getBoard"
	OpUpdateBoard = "updateBoard"
	OpCreateList  = "createList"
	OpGetList     = "getList"
	OpUpdateList  = "updateList"
	OpCreateCard  = "createCard"
	OpGetCard     = "getCard"
	OpUpdateCard  = "updateCard"
)

var defaultOperations = map[string]string{
	OpCreateBoard: FamilyBoard,
	OpGetBoard:    FamilyBoard,
	OpUpdateBoard: FamilyBoard,
	OpCreateList:  FamilyList,
	OpGetList:     FamilyList,
	OpUpdateList:  FamilyList,
	OpCreateCard:  FamilyCard,
	OpGetCard:     FamilyCard,
	OpUpdateCard:  FamilyCard,
}

// DefaultOperations returns a copy of the built-in operation-to-family table.
func DefaultOperations() map[string]string {
	ret := make(map[string]string, len(defaultOperations))
	for k, v := range defaultOperations {
		ret[k] = v
	}
	return ret
}
