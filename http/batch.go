package http

import (
	"context"
	"net/http"

	"github.com/fwojciec/pricex"
)

type batchResponse struct {
	Results    []*pricex.Result `json:"results"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Error      string           `json:"error"`
}

// ExtractBatch posts urls to /api/extract and waits for the results.
func (c *Client) ExtractBatch(ctx context.Context, urls []string) (*pricex.Batch, error) {
	var resp batchResponse
	if err := c.do(ctx, http.MethodPost, "/api/extract", urlsRequest{URLs: urls}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, pricex.Errorf(pricex.EPROTOCOL, "%s", resp.Error)
	}

	if err := checkResults(resp.Results); err != nil {
		return nil, err
	}

	results := resp.Results
	if results == nil {
		results = []*pricex.Result{}
	}
	return &pricex.Batch{
		Results:    results,
		Successful: resp.Successful,
		Failed:     resp.Failed,
	}, nil
}
