package trellotests

import (
	"context"
	"fmt"

	"github.com/trelloqa/trello-contract-tests/framework"
	"github.com/trelloqa/trello-contract-tests/trelloapi"
)

// DeleteMemberBoards deletes every board of the authenticated member, including boards that
// were not created by this tool. It returns the number of boards deleted. Deletion continues
// after a failure, and the first error is returned.
func DeleteMemberBoards(ctx context.Context, api *trelloapi.Client, logger framework.Logger) (int, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	resp, err := api.GetMemberBoards(ctx, "me")
	if err != nil {
		return 0, fmt.Errorf("could not list boards: %w", err)
	}
	var boards []trelloapi.Board
	if err := resp.Decode(&boards); err != nil {
		return 0, fmt.Errorf("could not parse board list: %w", err)
	}

	deleted := 0
	var firstErr error
	for _, b := range boards {
		if _, err := api.DeleteBoard(ctx, b.ID); err != nil {
			logger.Printf("Could not delete board %s (%q): %s", b.ID, b.Name, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		deleted++
	}
	return deleted, firstErr
}
