package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://equran.id/api/v2"

// ErrInvalidResponse is returned when the API answers but the payload does
// not have the expected shape.
var ErrInvalidResponse = errors.New("invalid response format")

// Client communicates with the equran.id imsakiyah API.
type Client struct {
	httpClient *http.Client
	// BaseURL is the API base URL. Defaults to equran.id v2.
	// Exported for testing with httptest.
	BaseURL string
}

// NewClient creates a new API client with sensible defaults.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		BaseURL: defaultBaseURL,
	}
}

// Provinces lists every province the API knows about.
func (c *Client) Provinces(ctx context.Context) ([]string, error) {
	data, err := c.do(ctx, http.MethodGet, "/imsakiyah/provinsi", nil)
	if err != nil {
		return nil, err
	}
	return decodeNames(data)
}

// Cities lists the cities and regencies (kabupaten/kota) of a province.
func (c *Client) Cities(ctx context.Context, provinsi string) ([]string, error) {
	body := map[string]string{"provinsi": provinsi}
	data, err := c.do(ctx, http.MethodPost, "/imsakiyah/kabkota", body)
	if err != nil {
		return nil, err
	}
	return decodeNames(data)
}

// Schedule fetches the imsakiyah table for a province and city.
func (c *Client) Schedule(ctx context.Context, provinsi, kabkota string) (*Schedule, error) {
	body := map[string]string{"provinsi": provinsi, "kabkota": kabkota}
	data, err := c.do(ctx, http.MethodPost, "/imsakiyah", body)
	if err != nil {
		return nil, err
	}

	sched, err := decodeSchedule(data)
	if err != nil {
		return nil, err
	}
	if sched.Provinsi == "" {
		sched.Provinsi = provinsi
	}
	if sched.Kabkota == "" {
		sched.Kabkota = kabkota
	}
	return sched, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(msg))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode API response: %w", err)
	}

	if env.Code != http.StatusOK {
		return nil, fmt.Errorf("API error: code=%d message=%s: %w", env.Code, env.Message, ErrInvalidResponse)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, fmt.Errorf("API response has no data: %w", ErrInvalidResponse)
	}

	return env.Data, nil
}

func decodeNames(data json.RawMessage) ([]string, error) {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("failed to decode name list: %w", ErrInvalidResponse)
	}
	return names, nil
}
