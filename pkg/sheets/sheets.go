// Package sheets is the client for the spreadsheet proxy backing the
// record store. Every domain persists to one named sheet; rows are
// positional, row 1 is the header and data starts at row 2, so the
// record at data index i lives at spreadsheet row i+2.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/config"
)

// HeaderOffset converts a data index into a 1-based spreadsheet row.
const HeaderOffset = 2

// Store is the record-store boundary: range reads, appends, range
// updates and row deletes against a named sheet.
type Store interface {
	ReadRows(ctx context.Context, sheet, rng string) ([][]string, error)
	AppendRow(ctx context.Context, sheet string, row []string) error
	UpdateRange(ctx context.Context, sheet, rng string, rows [][]string) error
	DeleteRow(ctx context.Context, sheet string, rowIndex int) error
}

// Client talks to the spreadsheet proxy over JSON HTTP.
type Client struct {
	baseURL       string
	apiKey        string
	spreadsheetID string
	httpClient    *http.Client
	logger        *zap.Logger
}

// NewClient builds a proxy client from configuration.
func NewClient(cfg *config.SheetsConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:       cfg.BaseURL,
		apiKey:        cfg.APIKey,
		spreadsheetID: cfg.SpreadsheetID,
		httpClient:    &http.Client{Timeout: timeout},
		logger:        logger,
	}
}

type valuesPayload struct {
	Values [][]string `json:"values"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// Row converts a data index into the spreadsheet row number.
func Row(dataIndex int) int { return dataIndex + HeaderOffset }

// RowRange builds an A1 range covering the given columns of one data row,
// e.g. RowRange(3, "E", "G") == "E5:G5".
func RowRange(dataIndex int, fromCol, toCol string) string {
	r := Row(dataIndex)
	return fmt.Sprintf("%s%d:%s%d", fromCol, r, toCol, r)
}

// ReadRows fetches the rows in the given A1 range, e.g. "A2:G".
// Trailing empty cells are not guaranteed; callers pad positionally.
func (c *Client) ReadRows(ctx context.Context, sheet, rng string) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/v1/sheets/%s/values?range=%s",
		c.baseURL, url.PathEscape(sheet), url.QueryEscape(rng))

	var payload valuesPayload
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return nil, fmt.Errorf("read %s!%s: %w", sheet, rng, err)
	}
	return payload.Values, nil
}

// AppendRow appends a single row after the last data row of the sheet.
func (c *Client) AppendRow(ctx context.Context, sheet string, row []string) error {
	endpoint := fmt.Sprintf("%s/v1/sheets/%s/values:append", c.baseURL, url.PathEscape(sheet))

	if err := c.do(ctx, http.MethodPost, endpoint, &valuesPayload{Values: [][]string{row}}, nil); err != nil {
		return fmt.Errorf("append to %s: %w", sheet, err)
	}
	return nil
}

// UpdateRange overwrites the cells in the given A1 range.
func (c *Client) UpdateRange(ctx context.Context, sheet, rng string, rows [][]string) error {
	endpoint := fmt.Sprintf("%s/v1/sheets/%s/values?range=%s",
		c.baseURL, url.PathEscape(sheet), url.QueryEscape(rng))

	if err := c.do(ctx, http.MethodPut, endpoint, &valuesPayload{Values: rows}, nil); err != nil {
		return fmt.Errorf("update %s!%s: %w", sheet, rng, err)
	}
	return nil
}

// DeleteRow removes one spreadsheet row (1-based, header included).
func (c *Client) DeleteRow(ctx context.Context, sheet string, rowIndex int) error {
	endpoint := fmt.Sprintf("%s/v1/sheets/%s/rows/%d", c.baseURL, url.PathEscape(sheet), rowIndex)

	if err := c.do(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("delete row %d of %s: %w", rowIndex, sheet, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	if c.spreadsheetID != "" {
		req.Header.Set("X-Spreadsheet-ID", c.spreadsheetID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ep errorPayload
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(raw, &ep) == nil && ep.Error != "" {
			return fmt.Errorf("proxy returned %d: %s", resp.StatusCode, ep.Error)
		}
		return fmt.Errorf("proxy returned %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Cell returns column col of row, or "" when the row is too short.
// The proxy omits trailing empty cells, so positional reads go through
// this instead of indexing directly.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
