package trelloapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/trelloqa/trello-contract-tests/framework"
)

const (
	prefixBoards  = "/1/boards/"
	prefixLists   = "/1/lists/"
	prefixCards   = "/1/cards/"
	prefixMembers = "/1/members/"
)

// Client is a thin wrapper for the Trello boards, lists, and cards endpoints. Request bodies
// are marshaled with encoding/json, so they can be structs, maps, or ldvalue.Value.
//
// Every method returns a *Response for a 2xx status, or an *APIError otherwise.
type Client struct {
	config Config
	logger framework.Logger
}

// NewClient creates a Client. Each request is described on logger, if it is not nil.
func NewClient(config Config, logger framework.Logger) *Client {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Client{config: config, logger: logger}
}

// WithLogger returns a Client with the same configuration that logs to a different logger.
func (c *Client) WithLogger(logger framework.Logger) *Client {
	return NewClient(c.config, logger)
}

// Config returns the client's configuration.
func (c *Client) Config() Config {
	return c.config
}

// ################ Boards #####################

func (c *Client) GetBoard(ctx context.Context, boardID string) (*Response, error) {
	return c.do(ctx, http.MethodGet, prefixBoards+url.PathEscape(boardID), nil, nil)
}

// GetMemberBoards lists the boards of a member; "me" is the authenticated user.
func (c *Client) GetMemberBoards(ctx context.Context, member string) (*Response, error) {
	return c.do(ctx, http.MethodGet, prefixMembers+url.PathEscape(member)+"/boards", nil, nil)
}

func (c *Client) CreateBoard(ctx context.Context, body interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPost, prefixBoards, nil, body)
}

func (c *Client) UpdateBoard(ctx context.Context, boardID string, body interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPut, prefixBoards+url.PathEscape(boardID), nil, body)
}

func (c *Client) DeleteBoard(ctx context.Context, boardID string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, prefixBoards+url.PathEscape(boardID), nil, nil)
}

// ################ Lists #####################

func (c *Client) CreateList(ctx context.Context, body interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPost, prefixLists, nil, body)
}

func (c *Client) GetList(ctx context.Context, listID string) (*Response, error) {
	return c.do(ctx, http.MethodGet, prefixLists+url.PathEscape(listID), nil, nil)
}

func (c *Client) UpdateList(ctx context.Context, listID string, body interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPut, prefixLists+url.PathEscape(listID), nil, body)
}

// ArchiveList closes (archived=true) or reopens a list. Lists cannot be deleted.
func (c *Client) ArchiveList(ctx context.Context, listID string, archived bool) (*Response, error) {
	query := url.Values{"value": {fmt.Sprint(archived)}}
	return c.do(ctx, http.MethodPut, prefixLists+url.PathEscape(listID)+"/closed", query, nil)
}

// ################ Cards #####################

func (c *Client) CreateCard(ctx context.Context, body interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPost, prefixCards, nil, body)
}

func (c *Client) GetCard(ctx context.Context, cardID string) (*Response, error) {
	return c.do(ctx, http.MethodGet, prefixCards+url.PathEscape(cardID), nil, nil)
}

func (c *Client) UpdateCard(ctx context.Context, cardID string, body interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPut, prefixCards+url.PathEscape(cardID), nil, body)
}

func (c *Client) DeleteCard(ctx context.Context, cardID string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, prefixCards+url.PathEscape(cardID), nil, nil)
}

// ################ Misc #####################

// Search runs a search query. If modelTypes is empty, Trello searches all model types.
func (c *Client) Search(ctx context.Context, query string, modelTypes string) (*Response, error) {
	params := url.Values{"query": {query}}
	if modelTypes != "" {
		params.Set("modelTypes", modelTypes)
	}
	return c.do(ctx, http.MethodGet, "/1/search", params, nil)
}

func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	body interface{},
) (*Response, error) {
	params := url.Values{}
	for k, v := range query {
		params[k] = v
	}
	params.Set("key", c.config.Key)
	params.Set("token", c.config.Token)
	fullURL := c.config.baseURL() + path + "?" + params.Encode()

	var reqBody io.Reader
	var data []byte
	if body != nil {
		var err error
		data, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		c.logger.Printf("%s %s %s", method, path, string(data))
	} else {
		c.logger.Printf("%s %s", method, path)
	}

	resp, err := c.config.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body from %s %s: %w", method, path, err)
	}
	c.logger.Printf("  => HTTP %d: %s", resp.StatusCode, string(respData))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respData),
		}
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: respData}, nil
}
