// Package cache keeps API responses and the detected position around so
// repeated commands do not hit the network. Every read is best effort: a
// failing or empty store is reported as a miss.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/smokyabdulrahman/imsakiyah/internal/api"
	"github.com/smokyabdulrahman/imsakiyah/internal/geo"
)

const (
	regionTTL   = 7 * 24 * time.Hour
	scheduleTTL = 24 * time.Hour
	geoTTL      = 24 * time.Hour
)

// Cache stores typed values on top of a Store.
type Cache struct {
	store Store
}

func New(store Store) *Cache {
	return &Cache{store: store}
}

func provincesKey() string { return "provinsi" }

func citiesKey(provinsi string) string { return "kabkota|" + provinsi }

func scheduleKey(provinsi, kabkota string) string {
	return fmt.Sprintf("jadwal|%s|%s", provinsi, kabkota)
}

func geoKey() string { return "geo" }

func (c *Cache) load(ctx context.Context, key string, v any) bool {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

func (c *Cache) save(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return c.store.Set(ctx, key, data, ttl)
}

// LoadProvinces returns the cached province list, if any.
func (c *Cache) LoadProvinces(ctx context.Context) ([]string, bool) {
	var names []string
	if !c.load(ctx, provincesKey(), &names) || len(names) == 0 {
		return nil, false
	}
	return names, true
}

func (c *Cache) SaveProvinces(ctx context.Context, names []string) error {
	return c.save(ctx, provincesKey(), names, regionTTL)
}

// LoadCities returns the cached cities of provinsi, if any.
func (c *Cache) LoadCities(ctx context.Context, provinsi string) ([]string, bool) {
	var names []string
	if !c.load(ctx, citiesKey(provinsi), &names) || len(names) == 0 {
		return nil, false
	}
	return names, true
}

func (c *Cache) SaveCities(ctx context.Context, provinsi string, names []string) error {
	return c.save(ctx, citiesKey(provinsi), names, regionTTL)
}

// LoadSchedule returns the cached schedule for a province and city, if any.
func (c *Cache) LoadSchedule(ctx context.Context, provinsi, kabkota string) (*api.Schedule, bool) {
	var s api.Schedule
	if !c.load(ctx, scheduleKey(provinsi, kabkota), &s) || len(s.Days) == 0 {
		return nil, false
	}
	return &s, true
}

// SaveSchedule stores s under the requested names, which may be spelled
// differently from the ones echoed in the response.
func (c *Cache) SaveSchedule(ctx context.Context, provinsi, kabkota string, s *api.Schedule) error {
	return c.save(ctx, scheduleKey(provinsi, kabkota), s, scheduleTTL)
}

// LoadGeo returns the last detected position if it is younger than a day.
func (c *Cache) LoadGeo(ctx context.Context) (*geo.Location, bool) {
	var loc geo.Location
	if !c.load(ctx, geoKey(), &loc) {
		return nil, false
	}
	return &loc, true
}

func (c *Cache) SaveGeo(ctx context.Context, loc *geo.Location) error {
	return c.save(ctx, geoKey(), loc, geoTTL)
}
