package trelloapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const probeInterval = time.Millisecond * 500

// Probe verifies that the API is reachable and that the configured credentials are accepted,
// by querying the authenticated member. Network errors and 5xx statuses are retried until the
// timeout elapses; any other error status fails immediately, since retrying cannot fix bad
// credentials.
func (c *Client) Probe(ctx context.Context, timeout time.Duration, output io.Writer) (Member, error) {
	fmt.Fprintf(output, "Connecting to Trello API at %s", c.config.baseURL())

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := c.do(ctx, http.MethodGet, prefixMembers+"me", nil, nil)
		if err == nil {
			fmt.Fprintln(output)
			var member Member
			if err := resp.Decode(&member); err != nil {
				return Member{}, err
			}
			fmt.Fprintf(output, "Authenticated as %s (%s)\n", member.Username, member.ID)
			return member, nil
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
			fmt.Fprintln(output)
			return Member{}, fmt.Errorf("API rejected the configured credentials: %w", err)
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return Member{}, fmt.Errorf("timed out, result of last query was: %w", err)
		}
		select {
		case <-ctx.Done():
			fmt.Fprintln(output)
			return Member{}, ctx.Err()
		case <-time.After(probeInterval):
		}
	}
}
