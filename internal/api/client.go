// Package api provides an HTTP client for the treasury API. It is the only
// path between the screen and the backend; every call takes a context, returns
// a typed result, and surfaces failures as AppErrors so the screen can handle
// transport errors and server-reported validation errors differently.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "tresoria/internal/errors"
)

func init() {
	// The treasury contract carries amounts as JSON numbers (150.00), not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Client communicates with the treasury API. The company id scopes every write
// call; it is injected here once instead of being baked into request bodies.
type Client struct {
	baseURL    string
	companyID  string
	httpClient *http.Client
}

// NewClient creates a new treasury API client.
func NewClient(baseURL, companyID string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		companyID:  companyID,
		httpClient: httpClient,
	}
}

// ListTransactions fetches all transactions for the company.
func (c *Client) ListTransactions(ctx context.Context) ([]Transaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/transactions", nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrTransport, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, rejected(fmt.Sprintf("listing transactions: unexpected status %d", resp.StatusCode))
	}

	var wire []wireTransaction
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrTransport, err)
	}

	transactions := make([]Transaction, 0, len(wire))
	for _, w := range wire {
		t, err := w.normalize()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrTransport, err)
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}

// CreateTransaction creates a transaction and returns the server-assigned entity.
func (c *Client) CreateTransaction(ctx context.Context, p TransactionPayload) (*Transaction, error) {
	return c.writeTransaction(ctx, http.MethodPost, p)
}

// UpdateTransaction replaces every field of an existing transaction.
func (c *Client) UpdateTransaction(ctx context.Context, p TransactionPayload) (*Transaction, error) {
	if p.ID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction id is required for updates")
	}
	return c.writeTransaction(ctx, http.MethodPatch, p)
}

func (c *Client) writeTransaction(ctx context.Context, method string, p TransactionPayload) (*Transaction, error) {
	var result struct {
		wireTransaction
		Error string `json:"error"`
	}
	if err := c.send(ctx, method, "/api/transactions", p.wire(c.companyID), &result); err != nil {
		return nil, err
	}
	if result.Error != "" {
		return nil, rejected(result.Error)
	}
	t, err := result.normalize()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrTransport, err)
	}
	return &t, nil
}

// DeleteTransaction removes a transaction from the company ledger.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	body := struct {
		ID        string `json:"id"`
		CompanyID string `json:"companyId"`
	}{ID: id, CompanyID: c.companyID}

	var result struct {
		Error string `json:"error"`
	}
	if err := c.send(ctx, http.MethodDelete, "/api/transactions", body, &result); err != nil {
		return err
	}
	if result.Error != "" {
		return rejected(result.Error)
	}
	return nil
}

// ListCategories fetches all categories for the company.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/categories", nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrTransport, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, rejected(fmt.Sprintf("listing categories: unexpected status %d", resp.StatusCode))
	}

	var categories []Category
	if err := json.NewDecoder(resp.Body).Decode(&categories); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrTransport, err)
	}
	return categories, nil
}

// CreateCategory creates a category by name. A duplicate name comes back as a
// server-reported validation error, which callers show inline.
func (c *Client) CreateCategory(ctx context.Context, name string) (*Category, error) {
	body := struct {
		Name      string `json:"name"`
		CompanyID string `json:"companyId"`
	}{Name: name, CompanyID: c.companyID}

	var result struct {
		Category
		Error string `json:"error"`
	}
	if err := c.send(ctx, http.MethodPost, "/api/categories", body, &result); err != nil {
		return nil, err
	}
	if result.Error != "" {
		return nil, rejected(result.Error)
	}
	return &result.Category, nil
}

// UpdateCategory updates the name and color of an existing category.
func (c *Client) UpdateCategory(ctx context.Context, id, name, color string) (*Category, error) {
	body := struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
	}{ID: id, Name: name, Color: color}

	var result struct {
		Category
		Error string `json:"error"`
	}
	if err := c.send(ctx, http.MethodPatch, "/api/categories", body, &result); err != nil {
		return nil, err
	}
	if result.Error != "" {
		return nil, rejected(result.Error)
	}
	return &result.Category, nil
}

// send issues a JSON request and decodes the response body into out.
// Non-2xx statuses with an {error} body become rejection errors; anything
// unreachable or undecodable becomes a transport error.
func (c *Client) send(ctx context.Context, method, path string, body, out interface{}) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure struct {
			Error json.RawMessage `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&failure); decodeErr == nil && len(failure.Error) > 0 {
			return rejected(errorText(failure.Error))
		}
		return rejected(fmt.Sprintf("%s %s: unexpected status %d", method, path, resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.ErrTransport, err)
	}
	return nil
}

// rejected builds the AppError for a server-reported failure.
func rejected(message string) *apperrors.AppError {
	return apperrors.WithMessage(apperrors.ErrRejected, message)
}

// errorText renders the {error} payload, which may be a bare string or a
// structured {code, message} object.
func errorText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var structured struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &structured); err == nil && structured.Message != "" {
		return structured.Message
	}
	return string(raw)
}
