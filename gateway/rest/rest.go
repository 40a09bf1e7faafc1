// Package rest provides a Gateway that speaks to the httpapi REST server,
// so a manager can run against a remote backend the same way it runs
// against a local database.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/windfab/towerdesk/gateway"
	"github.com/windfab/towerdesk/record"
)

// Gateway is an HTTP client implementation of gateway.Gateway.
type Gateway struct {
	baseURL string
	client  *http.Client
}

// New creates a Gateway for a base URL like "http://localhost:8476". A nil
// client uses a default with a 30 second timeout.
func New(baseURL string, client *http.Client) *Gateway {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type listResponse struct {
	Data  []record.Record `json:"data"`
	Total int             `json:"total"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// List fetches records from the server.
func (g *Gateway) List(ctx context.Context, table string, params gateway.ListParams) (gateway.Page, error) {
	query := url.Values{}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
		query.Set("page", strconv.Itoa(params.Page))
	}
	for field, value := range params.Filters {
		query.Set("filter."+field, value)
	}

	endpoint := g.baseURL + "/api/" + url.PathEscape(table)
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var out listResponse
	if err := g.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return gateway.Page{}, err
	}
	return gateway.Page{Records: out.Data, Total: out.Total}, nil
}

// Create posts a new record.
func (g *Gateway) Create(ctx context.Context, table string, fld record.Record) (record.Record, error) {
	var created record.Record
	endpoint := g.baseURL + "/api/" + url.PathEscape(table)
	if err := g.do(ctx, http.MethodPost, endpoint, fld, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update puts changed fields for an existing record.
func (g *Gateway) Update(ctx context.Context, table string, id string, fld record.Record) (record.Record, error) {
	var updated record.Record
	endpoint := g.baseURL + "/api/" + url.PathEscape(table) + "/" + url.PathEscape(id)
	if err := g.do(ctx, http.MethodPut, endpoint, fld, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a record.
func (g *Gateway) Delete(ctx context.Context, table string, id string) error {
	endpoint := g.baseURL + "/api/" + url.PathEscape(table) + "/" + url.PathEscape(id)
	return g.do(ctx, http.MethodDelete, endpoint, nil, nil)
}

// do issues one request and decodes the response, mapping the server's
// status codes back onto the gateway sentinel errors.
func (g *Gateway) do(ctx context.Context, method, endpoint string, body, into any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	// Drain whatever decoding leaves behind so the connection can be reused.
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return gateway.ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return gateway.ErrAlreadyExists
	case resp.StatusCode >= 400:
		var serverErr errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&serverErr); err == nil && serverErr.Message != "" {
			return fmt.Errorf("%s %s: server returned %d: %s", method, endpoint, resp.StatusCode, serverErr.Message)
		}
		return fmt.Errorf("%s %s: server returned %d", method, endpoint, resp.StatusCode)
	}

	if into == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
