// Package geo finds where the user is: an IP-based position lookup and a
// reverse geocoder that turns coordinates into an Indonesian address.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Failure classes for location lookups. Callers map these to user messages.
var (
	ErrUnsupported         = errors.New("location lookup not supported")
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrTimeout             = errors.New("location request timed out")
)

const (
	defaultIPURL      = "http://ip-api.com/json/?fields=status,message,lat,lon,city,regionName,country,timezone"
	defaultReverseURL = "https://nominatim.openstreetmap.org/reverse"
	defaultUserAgent  = "imsakiyah-cli"
)

// Location holds geographic coordinates detected from the user's IP.
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	City      string  `json:"city"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Timezone  string  `json:"timezone"`
}

// ipAPIResponse maps the response from ip-api.com.
type ipAPIResponse struct {
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	City       string  `json:"city"`
	RegionName string  `json:"regionName"`
	Country    string  `json:"country"`
	Timezone   string  `json:"timezone"`
}

// Client performs location lookups.
type Client struct {
	httpClient *http.Client
	// IPURL is the IP geolocation endpoint. Empty disables detection.
	IPURL string
	// ReverseURL is the Nominatim reverse endpoint.
	ReverseURL string
	// UserAgent is sent on every request; Nominatim rejects anonymous clients.
	UserAgent string
}

// NewClient creates a Client using ip-api.com and OpenStreetMap Nominatim.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		IPURL:      defaultIPURL,
		ReverseURL: defaultReverseURL,
		UserAgent:  defaultUserAgent,
	}
}

// DetectLocation uses ip-api.com to determine the user's location from their
// public IP address. This is a free service that requires no API key.
func (c *Client) DetectLocation(ctx context.Context) (*Location, error) {
	if c.IPURL == "" {
		return nil, ErrUnsupported
	}

	var result ipAPIResponse
	if err := c.getJSON(ctx, c.IPURL, &result); err != nil {
		return nil, err
	}

	if result.Status != "success" {
		return nil, fmt.Errorf("geolocation failed: %s: %w", result.Message, ErrPositionUnavailable)
	}

	return &Location{
		Latitude:  result.Lat,
		Longitude: result.Lon,
		City:      result.City,
		Region:    result.RegionName,
		Country:   result.Country,
		Timezone:  result.Timezone,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build geolocation request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classify(fmt.Errorf("geolocation request failed: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("geolocation API returned status %d: %w", resp.StatusCode, ErrPermissionDenied)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("geolocation API returned status %d: %w", resp.StatusCode, ErrPositionUnavailable)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("geolocation API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode geolocation response: %w", err)
	}
	return nil
}

// classify tags transport errors that are really timeouts.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}
