package geo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Address is the subset of a Nominatim address the schedule lookup needs.
type Address struct {
	State    string `json:"state"`
	Province string `json:"province"`
	City     string `json:"city"`
	Town     string `json:"town"`
	County   string `json:"county"`
	Country  string `json:"country"`
}

// ProvinceName returns the province-level name, preferring "state".
func (a Address) ProvinceName() string {
	if a.State != "" {
		return a.State
	}
	return a.Province
}

// CityName returns the most specific city-level name available.
func (a Address) CityName() string {
	switch {
	case a.City != "":
		return a.City
	case a.Town != "":
		return a.Town
	default:
		return a.County
	}
}

type nominatimResponse struct {
	Error   string  `json:"error"`
	Address Address `json:"address"`
}

// ReverseGeocode resolves coordinates to an address with Indonesian names.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (*Address, error) {
	if c.ReverseURL == "" {
		return nil, ErrUnsupported
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("accept-language", "id")

	var result nominatimResponse
	if err := c.getJSON(ctx, c.ReverseURL+"?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	if result.Error != "" {
		return nil, fmt.Errorf("reverse geocoding failed: %s: %w", result.Error, ErrPositionUnavailable)
	}

	return &result.Address, nil
}
