// Package schema validates Trello API response payloads against JSON schemas.
//
// Test code names the operation that produced a payload ("createBoard", "getCard", ...). A fixed
// table maps each operation to a schema family, and a Registry maps each family to exactly one
// schema file. Schemas may declare draft-04, draft-06, or draft-07; all violations in a payload
// are reported together.
package schema
