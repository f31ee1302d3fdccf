package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smokyabdulrahman/imsakiyah/internal/api"
	"github.com/smokyabdulrahman/imsakiyah/internal/geo"
)

func newTestCache(t *testing.T) (*Cache, *FileStore) {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	return New(s), s
}

func sampleSchedule() *api.Schedule {
	return &api.Schedule{
		Provinsi: "Jawa Barat",
		Kabkota:  "Kota Bandung",
		Days: []api.Day{
			{Tanggal: 1, Imsak: "04:21", Subuh: "04:31", Dzuhur: "11:58", Ashar: "15:09", Maghrib: "18:05", Isya: "19:14"},
			{Tanggal: 2, Imsak: "04:21", Subuh: "04:31", Dzuhur: "11:58", Ashar: "15:08", Maghrib: "18:04", Isya: "-"},
		},
	}
}

func TestProvinces_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if err := c.SaveProvinces(ctx, []string{"Aceh", "Bali", "Banten"}); err != nil {
		t.Fatalf("SaveProvinces error: %v", err)
	}

	got, ok := c.LoadProvinces(ctx)
	if !ok {
		t.Fatal("LoadProvinces missed after save")
	}
	if len(got) != 3 || got[2] != "Banten" {
		t.Errorf("LoadProvinces = %v", got)
	}
}

func TestProvinces_EmptyIsMiss(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_ = c.SaveProvinces(ctx, []string{})
	if _, ok := c.LoadProvinces(ctx); ok {
		t.Error("expected miss for empty province list")
	}
}

func TestCities_KeyedByProvince(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_ = c.SaveCities(ctx, "Bali", []string{"Kab. Badung", "Kota Denpasar"})

	got, ok := c.LoadCities(ctx, "Bali")
	if !ok || len(got) != 2 {
		t.Fatalf("LoadCities(Bali) = %v, %v", got, ok)
	}
	if _, ok := c.LoadCities(ctx, "Aceh"); ok {
		t.Error("expected miss for a different province")
	}
}

func TestSchedule_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if err := c.SaveSchedule(ctx, "Jawa Barat", "Kota Bandung", sampleSchedule()); err != nil {
		t.Fatalf("SaveSchedule error: %v", err)
	}

	got, ok := c.LoadSchedule(ctx, "Jawa Barat", "Kota Bandung")
	if !ok {
		t.Fatal("LoadSchedule missed after save")
	}
	if len(got.Days) != 2 {
		t.Fatalf("Days = %d, want 2", len(got.Days))
	}
	if got.Days[0].Maghrib != "18:05" {
		t.Errorf("Days[0].Maghrib = %q, want %q", got.Days[0].Maghrib, "18:05")
	}
	if got.Days[1].Tanggal != 2 || got.Days[1].Isya != "-" {
		t.Errorf("Days[1] = %+v", got.Days[1])
	}
}

func TestSchedule_DifferentCity(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_ = c.SaveSchedule(ctx, "Jawa Barat", "Kota Bandung", sampleSchedule())
	if _, ok := c.LoadSchedule(ctx, "Jawa Barat", "Kota Bogor"); ok {
		t.Error("expected miss for a different city")
	}
}

func TestSchedule_KeyedByRequestedNames(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	sched := sampleSchedule()
	sched.Provinsi = "JAWA BARAT"
	sched.Kabkota = "KOTA BANDUNG"
	_ = c.SaveSchedule(ctx, "Jawa Barat", "Kota Bandung", sched)

	if _, ok := c.LoadSchedule(ctx, "Jawa Barat", "Kota Bandung"); !ok {
		t.Error("expected a hit under the requested names")
	}
}

func TestSchedule_EmptyIsMiss(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_ = c.SaveSchedule(ctx, "Jawa Barat", "Kota Bandung", &api.Schedule{Provinsi: "Jawa Barat", Kabkota: "Kota Bandung"})
	if _, ok := c.LoadSchedule(ctx, "Jawa Barat", "Kota Bandung"); ok {
		t.Error("expected miss for a schedule without days")
	}
}

func TestSchedule_Stale(t *testing.T) {
	c, s := newTestCache(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	_ = c.SaveSchedule(ctx, "Jawa Barat", "Kota Bandung", sampleSchedule())

	now = now.Add(25 * time.Hour)
	if _, ok := c.LoadSchedule(ctx, "Jawa Barat", "Kota Bandung"); ok {
		t.Error("expected miss for a schedule older than a day")
	}
}

func TestGeo_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	loc := &geo.Location{
		Latitude:  -6.9175,
		Longitude: 107.6191,
		City:      "Bandung",
		Region:    "West Java",
		Country:   "Indonesia",
		Timezone:  "Asia/Jakarta",
	}
	if err := c.SaveGeo(ctx, loc); err != nil {
		t.Fatalf("SaveGeo error: %v", err)
	}

	got, ok := c.LoadGeo(ctx)
	if !ok {
		t.Fatal("LoadGeo missed after save")
	}
	if got.Latitude != -6.9175 || got.City != "Bandung" || got.Timezone != "Asia/Jakarta" {
		t.Errorf("LoadGeo = %+v", got)
	}
}

func TestGeo_ExpiredTTL(t *testing.T) {
	c, s := newTestCache(t)
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now.Add(-25 * time.Hour) }
	_ = c.SaveGeo(ctx, &geo.Location{City: "Bandung"})

	s.now = func() time.Time { return now }
	if _, ok := c.LoadGeo(ctx); ok {
		t.Error("expected miss for expired geo cache")
	}
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func TestCache_FailingStoreIsMiss(t *testing.T) {
	c := New(failingStore{})
	ctx := context.Background()

	if _, ok := c.LoadProvinces(ctx); ok {
		t.Error("expected miss from failing store")
	}
	if err := c.SaveProvinces(ctx, []string{"Aceh"}); err == nil {
		t.Error("expected error from failing store")
	}
}
