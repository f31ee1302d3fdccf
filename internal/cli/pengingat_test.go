package cli

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/smokyabdulrahman/imsakiyah/internal/config"
	"github.com/smokyabdulrahman/imsakiyah/internal/notify"
)

func TestPengingat_NothingLeftToRemind(t *testing.T) {
	env := newTestEnv(t)
	selectBandung(env)

	// The default schedule month is in the past, so nothing is armed.
	out, _, err := env.run("", "pengingat", "--izinkan", "--notifier", "console")
	if err != nil {
		t.Fatalf("pengingat failed: %v", err)
	}
	if !strings.Contains(out, msgNoRemindersRemaining) {
		t.Errorf("unexpected output:\n%s", out)
	}
	if got := env.savedConfig().Notifikasi; got != "granted" {
		t.Errorf("notifikasi = %q, want granted", got)
	}
}

func TestPengingat_ArmsFutureReminders(t *testing.T) {
	env := newTestEnv(t)
	selectBandung(env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(300*time.Millisecond, cancel)

	nextYear := strconv.Itoa(time.Now().Year() + 1)
	out, _, err := env.runContext(ctx, "", "pengingat", "--izinkan", "--notifier", "console", "--tahun", nextYear)
	if err != nil {
		t.Fatalf("pengingat failed: %v", err)
	}

	// Two days of six slots, minus the missing isya on day 2.
	if !strings.Contains(out, "11 pengingat dijadwalkan untuk Kota Bandung, Jawa Barat.") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "Berikutnya: Imsak 04:27") {
		t.Errorf("next reminder missing:\n%s", out)
	}
}

func TestPengingat_DeniedShowsHint(t *testing.T) {
	env := newTestEnv(t)
	selectBandung(env)

	_, stderr, err := env.run("n\n", "pengingat", "--notifier", "console")
	if err != nil {
		t.Fatalf("pengingat failed: %v", err)
	}
	if !strings.Contains(stderr, msgNotificationConsent) {
		t.Errorf("permission prompt missing:\n%s", stderr)
	}
	if !strings.Contains(stderr, msgEnableNotifications) {
		t.Errorf("hint missing:\n%s", stderr)
	}
	if got := env.savedConfig().Notifikasi; got != "denied" {
		t.Errorf("notifikasi = %q, want denied", got)
	}
}

func TestPengingat_AsksOnlyOnce(t *testing.T) {
	env := newTestEnv(t)
	env.saveConfig(&config.Config{Provinsi: "Jawa Barat", Kota: "Kota Bandung", Notifikasi: "denied"})

	_, stderr, err := env.run("y\n", "pengingat", "--notifier", "console")
	if err != nil {
		t.Fatalf("pengingat failed: %v", err)
	}
	if strings.Contains(stderr, msgNotificationConsent) {
		t.Error("a stored answer must not be asked again")
	}
	if got := env.savedConfig().Notifikasi; got != "denied" {
		t.Errorf("notifikasi = %q, want denied kept", got)
	}
}

func TestPengingat_InvalidNotifier(t *testing.T) {
	env := newTestEnv(t)
	selectBandung(env)

	_, _, err := env.run("", "pengingat", "--notifier", "pager")
	if err == nil || !strings.Contains(err.Error(), "invalid notifier") {
		t.Fatalf("expected invalid notifier error, got %v", err)
	}
}

func TestStoredPermission(t *testing.T) {
	env := newTestEnv(t)

	if got := storedPermission(); got != notify.PermissionDefault {
		t.Errorf("no config: permission = %q, want default", got)
	}
	env.saveConfig(&config.Config{Notifikasi: "granted"})
	if got := storedPermission(); got != notify.PermissionGranted {
		t.Errorf("permission = %q, want granted", got)
	}
}

func TestBuildNotifier_FallsBackToConsole(t *testing.T) {
	newTestEnv(t)
	loadedEnv = config.Environment{}

	var out bytes.Buffer
	n, closeAll := buildNotifier([]string{"mqtt"}, &out)
	defer closeAll()

	multi, ok := n.(notify.Multi)
	if !ok || len(multi) != 1 {
		t.Fatalf("notifier = %#v, want a single console notifier", n)
	}
	if _, ok := multi[0].(*notify.Console); !ok {
		t.Errorf("fallback = %T, want *notify.Console", multi[0])
	}

	at := time.Date(2026, time.March, 1, 4, 37, 0, 0, time.UTC)
	if err := n.Notify(context.Background(), notify.NewNotification("subuh", at)); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if !strings.Contains(out.String(), "Waktu Subuh telah tiba") {
		t.Errorf("console output = %q", out.String())
	}
}
