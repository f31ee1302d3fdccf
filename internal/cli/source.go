package cli

import (
	"context"
	"strings"
	"time"

	"github.com/smokyabdulrahman/imsakiyah/internal/api"
	"github.com/smokyabdulrahman/imsakiyah/internal/cache"
	"github.com/smokyabdulrahman/imsakiyah/internal/config"
	"github.com/smokyabdulrahman/imsakiyah/internal/geo"
	"github.com/smokyabdulrahman/imsakiyah/internal/region"
)

const redisDialTimeout = 2 * time.Second

// source fetches regions and schedules, consulting the cache first.
type source struct {
	api   *api.Client
	cache *cache.Cache // nil when no cache backend could be opened
	close func()
}

func newSource(ctx context.Context, cfg *config.Config) *source {
	client := api.NewClient()
	if loadedEnv.APIBase != "" {
		client.BaseURL = strings.TrimRight(loadedEnv.APIBase, "/")
	}

	s := &source{api: client, close: func() {}}
	s.openCache(ctx, cfg.CacheDir)
	return s
}

// openCache prefers Redis when an address is configured and falls back to
// the file store. Failing both leaves the source uncached.
func (s *source) openCache(ctx context.Context, dir string) {
	if loadedEnv.RedisAddr != "" {
		dialCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
		rs, err := cache.NewRedisStore(dialCtx, loadedEnv.RedisAddr, loadedEnv.RedisPassword)
		cancel()
		if err == nil {
			s.cache = cache.New(rs)
			s.close = func() { _ = rs.Close() }
			logger.Debug().Str("addr", loadedEnv.RedisAddr).Msg("using redis cache")
			return
		}
		logger.Warn().Err(err).Msg("redis cache unavailable, using file cache")
	}

	fs, err := cache.NewFileStore(dir)
	if err != nil {
		logger.Warn().Err(err).Msg("cache disabled")
		return
	}
	s.cache = cache.New(fs)
	logger.Debug().Str("dir", fs.Dir()).Msg("using file cache")
}

// Close releases the cache backend.
func (s *source) Close() {
	s.close()
}

func (s *source) provinces(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		if names, ok := s.cache.LoadProvinces(ctx); ok {
			return names, nil
		}
	}

	names, err := s.api.Provinces(ctx)
	if err != nil {
		return nil, alert(msgLoadProvinces, err)
	}
	if s.cache != nil {
		if err := s.cache.SaveProvinces(ctx, names); err != nil {
			logger.Debug().Err(err).Msg("cache write failed")
		}
	}
	return names, nil
}

// cities lists the cities of provinsi. A successful fetch persists the
// province as the user's selection.
func (s *source) cities(ctx context.Context, provinsi string) ([]string, error) {
	var names []string
	ok := false
	if s.cache != nil {
		names, ok = s.cache.LoadCities(ctx, provinsi)
	}
	if !ok {
		var err error
		names, err = s.api.Cities(ctx, provinsi)
		if err != nil {
			return nil, alert(msgLoadCities, err)
		}
		if s.cache != nil {
			if err := s.cache.SaveCities(ctx, provinsi, names); err != nil {
				logger.Debug().Err(err).Msg("cache write failed")
			}
		}
	}

	savePreference("provinsi", provinsi)
	return names, nil
}

// schedule fetches the imsakiyah rows for a city. A successful fetch
// persists the city as the user's selection.
func (s *source) schedule(ctx context.Context, provinsi, kabkota string) (*api.Schedule, error) {
	var sched *api.Schedule
	ok := false
	if s.cache != nil {
		sched, ok = s.cache.LoadSchedule(ctx, provinsi, kabkota)
	}
	if !ok {
		var err error
		sched, err = s.api.Schedule(ctx, provinsi, kabkota)
		if err != nil {
			return nil, alert(msgLoadSchedule, err)
		}
		if s.cache != nil {
			if err := s.cache.SaveSchedule(ctx, provinsi, kabkota, sched); err != nil {
				logger.Debug().Err(err).Msg("cache write failed")
			}
		}
	}

	savePreference("kota", kabkota)
	return sched, nil
}

// resolveSelection matches the configured province and city against the
// API's names and returns the canonical spellings.
func (s *source) resolveSelection(ctx context.Context, cfg *config.Config) (string, string, error) {
	if strings.TrimSpace(cfg.Provinsi) == "" || strings.TrimSpace(cfg.Kota) == "" {
		return "", "", alert(msgSelectFirst, nil)
	}

	provinsi, err := s.matchProvince(ctx, cfg.Provinsi)
	if err != nil {
		return "", "", err
	}

	cities, err := s.cities(ctx, provinsi)
	if err != nil {
		return "", "", err
	}
	kota, ok := region.Match(cities, cfg.Kota)
	if !ok {
		return "", "", alert(msgCityNotInProvince, nil)
	}
	return provinsi, kota, nil
}

func (s *source) matchProvince(ctx context.Context, name string) (string, error) {
	provinces, err := s.provinces(ctx)
	if err != nil {
		return "", err
	}
	provinsi, ok := region.Match(provinces, name)
	if !ok {
		return "", alert(msgProvinceNotFound, nil)
	}
	return provinsi, nil
}

// selectionFromAddress maps a reverse-geocoded address onto the API's
// province and city names.
func (s *source) selectionFromAddress(ctx context.Context, addr *geo.Address) (string, string, error) {
	name := addr.ProvinceName()
	if name == "" {
		return "", "", alert(msgProvinceNotFound, nil)
	}
	provinsi, err := s.matchProvince(ctx, name)
	if err != nil {
		return "", "", err
	}

	cities, err := s.cities(ctx, provinsi)
	if err != nil {
		return "", "", err
	}
	city := addr.CityName()
	if city == "" {
		return "", "", alert(msgCityNotFound, nil)
	}
	kota, ok := region.Match(cities, city)
	if !ok {
		return "", "", alert(msgCityNotInProvince, nil)
	}
	return provinsi, kota, nil
}

// savePreference writes one key to the config file. It re-reads the file so
// flag overrides held in memory are never persisted. Failures are logged.
func savePreference(key, value string) {
	path, err := config.Path()
	if err != nil {
		logger.Warn().Err(err).Msg("cannot locate config file")
		return
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		logger.Warn().Err(err).Msg("cannot read config file")
		return
	}
	if current, _ := cfg.Get(key); current == value {
		return
	}
	if err := cfg.Set(key, value); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("cannot store preference")
		return
	}
	if err := cfg.SaveTo(path); err != nil {
		logger.Warn().Err(err).Msg("cannot write config file")
		return
	}
	if loadedConfig != nil {
		_ = loadedConfig.Set(key, value)
	}
}
