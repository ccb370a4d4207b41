package minhareceita

import (
	"context"
	"encoding/json"
	"errors"
	"farmregistry/cmd/internal/domain/entity"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://minhareceita.org/"

var (
	ErrNotFound = errors.New("not found")
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetByCNPJ fetches the registration of a CNPJ given as 14 bare digits.
func (c *Client) GetByCNPJ(ctx context.Context, cnpj string) (*entity.Company, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+url.PathEscape(cnpj), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// minhareceita answers 400 for CNPJs it considers malformed
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest {
		return nil, ErrNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("minhareceita failed with status code: %d", resp.StatusCode)
	}

	var company companyResponse
	if err = json.NewDecoder(resp.Body).Decode(&company); err != nil {
		return nil, fmt.Errorf("decode minhareceita response: %w", err)
	}
	return company.ToDomain(), nil
}
