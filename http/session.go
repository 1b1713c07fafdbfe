package http

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fwojciec/pricex"
)

type startResponse struct {
	SessionID string `json:"session_id"`
	Error     string `json:"error"`
}

// StartSession posts urls to /extract and returns the session ID.
func (c *Client) StartSession(ctx context.Context, urls []string) (string, error) {
	var resp startResponse
	if err := c.do(ctx, http.MethodPost, "/extract", urlsRequest{URLs: urls}, &resp); err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", pricex.Errorf(pricex.EPROTOCOL, "%s", resp.Error)
	}
	if resp.SessionID == "" {
		return "", pricex.Errorf(pricex.EPROTOCOL, "response is missing session_id")
	}
	return resp.SessionID, nil
}

// SessionStatus fetches /status/{id}.
func (c *Client) SessionStatus(ctx context.Context, id string) (*pricex.SessionState, error) {
	var state pricex.SessionState
	if err := c.do(ctx, http.MethodGet, "/status/"+url.PathEscape(id), nil, &state); err != nil {
		return nil, err
	}
	if state.Status == "" {
		return nil, pricex.Errorf(pricex.EPROTOCOL, "status response is missing status")
	}
	state.ID = id
	return &state, nil
}

// SessionResults fetches /results/{id}.
func (c *Client) SessionResults(ctx context.Context, id string) ([]*pricex.Result, error) {
	var results []*pricex.Result
	if err := c.do(ctx, http.MethodGet, "/results/"+url.PathEscape(id), nil, &results); err != nil {
		return nil, err
	}
	if err := checkResults(results); err != nil {
		return nil, err
	}
	if results == nil {
		results = []*pricex.Result{}
	}
	return results, nil
}
