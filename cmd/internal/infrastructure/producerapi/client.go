// Package producerapi is the HTTP client for the producer REST API. It is
// the registry store's data source outside the API process.
package producerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"farmregistry/cmd/internal/contract"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
)

// ResponseError is returned for any non-2xx answer other than 404.
type ResponseError struct {
	StatusCode int
	Message    string
	Fields     map[string][]string
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("producer api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("producer api: status %d", e.StatusCode)
}

// FieldErrors returns the per-field messages of a 400 answer, if any.
func (e *ResponseError) FieldErrors() map[string][]string {
	return e.Fields
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient builds a client rooted at baseURL, e.g. http://localhost:7070/api/.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse producer api url: %w", err)
	}

	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// ListProducers fetches GET /producers, filtered by query when not empty.
func (c *Client) ListProducers(ctx context.Context, query string) ([]*contract.Producer, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}

	var producers []*contract.Producer
	if err := c.do(ctx, http.MethodGet, "producers", params, nil, &producers); err != nil {
		return nil, err
	}
	return producers, nil
}

func (c *Client) GetProducer(ctx context.Context, id int64) (*contract.Producer, error) {
	var producer contract.Producer
	if err := c.do(ctx, http.MethodGet, producerPath(id), nil, nil, &producer); err != nil {
		return nil, err
	}
	return &producer, nil
}

func (c *Client) CreateProducer(ctx context.Context, req *contract.ProducerRequest) (*contract.Producer, error) {
	var producer contract.Producer
	if err := c.do(ctx, http.MethodPost, "producers", nil, req, &producer); err != nil {
		return nil, err
	}
	return &producer, nil
}

func (c *Client) UpdateProducer(ctx context.Context, id int64, req *contract.ProducerRequest) (*contract.Producer, error) {
	var producer contract.Producer
	if err := c.do(ctx, http.MethodPut, producerPath(id), nil, req, &producer); err != nil {
		return nil, err
	}
	return &producer, nil
}

func (c *Client) DeleteProducer(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, producerPath(id), nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	target := c.baseURL.ResolveReference(&url.URL{Path: path, RawQuery: params.Encode()})

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	// Best effort: a proxy may answer with a non-JSON body.
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload)

	return &ResponseError{
		StatusCode: resp.StatusCode,
		Message:    payload.Message,
		Fields:     payload.Errors,
	}
}

func producerPath(id int64) string {
	return "producers/" + strconv.FormatInt(id, 10)
}
