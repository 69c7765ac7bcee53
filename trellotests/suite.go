package trellotests

import (
	"github.com/trelloqa/trello-contract-tests/framework"
)

func RunTestSuite(
	env *Environment,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, env)

		t.Run("boards", DoBoardTests)
		t.Run("lists", DoListTests)
		t.Run("cards", DoCardTests)
		t.Run("authorization", DoAuthorizationTests)
	})
}
