package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokyabdulrahman/imsakiyah/internal/api"
)

func TestParsePermission(t *testing.T) {
	assert.Equal(t, PermissionGranted, ParsePermission("granted"))
	assert.Equal(t, PermissionGranted, ParsePermission(" Granted "))
	assert.Equal(t, PermissionDenied, ParsePermission("denied"))
	assert.Equal(t, PermissionDefault, ParsePermission(""))
	assert.Equal(t, PermissionDefault, ParsePermission("maybe"))
}

func TestNewNotification(t *testing.T) {
	at := time.Date(2026, 3, 1, 4, 37, 0, 0, time.UTC)
	n := NewNotification("subuh", at)

	assert.Equal(t, "Waktu Subuh telah tiba", n.Title)
	assert.Equal(t, "Selamat menunaikan ibadah Subuh", n.Body)
	assert.Equal(t, "subuh", n.Prayer)
	assert.True(t, n.At.Equal(at))
}

func TestBuildAlerts(t *testing.T) {
	s := &api.Schedule{
		Provinsi: "DKI Jakarta",
		Kabkota:  "Kota Jakarta Selatan",
		Days: []api.Day{
			{Tanggal: 1, Imsak: "04:27", Subuh: "04:37", Dzuhur: "12:03", Ashar: "15:13", Maghrib: "18:10", Isya: "19:19"},
			{Tanggal: 2, Imsak: "-", Subuh: "", Dzuhur: "12.03", Ashar: "nanti", Maghrib: "18:09", Isya: "19:18"},
			{Tanggal: 32, Imsak: "04:27"},
		},
	}

	alerts := BuildAlerts(s, 2026, time.March, time.UTC)
	require.Len(t, alerts, 9)

	assert.Equal(t, Alert{Day: 1, Prayer: "imsak", At: time.Date(2026, 3, 1, 4, 27, 0, 0, time.UTC)}, alerts[0])
	assert.Equal(t, "dzuhur", alerts[6].Prayer)
	assert.Equal(t, 2, alerts[6].Day)
	assert.Equal(t, 12, alerts[6].At.Hour())
	assert.Equal(t, "isya", alerts[8].Prayer)
}

func TestBuildAlerts_Nil(t *testing.T) {
	assert.Nil(t, BuildAlerts(nil, 2026, time.March, time.UTC))
}

type recordingNotifier struct {
	got []Notification
	err error
}

func (r *recordingNotifier) Notify(_ context.Context, n Notification) error {
	r.got = append(r.got, n)
	return r.err
}

func TestMulti(t *testing.T) {
	a := &recordingNotifier{}
	b := &recordingNotifier{err: errors.New("broker down")}
	c := &recordingNotifier{}

	err := Multi{a, b, c}.Notify(context.Background(), NewNotification("isya", time.Now()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Len(t, a.got, 1)
	assert.Len(t, c.got, 1, "later notifiers still run after a failure")
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	at := time.Date(2026, 3, 1, 18, 10, 0, 0, time.UTC)

	require.NoError(t, NewConsole(&buf).Notify(context.Background(), NewNotification("maghrib", at)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[18:10] Waktu Maghrib telah tiba\n"), out)
	assert.Contains(t, out, "Selamat menunaikan ibadah Maghrib")
}

func TestDesktop_Linux(t *testing.T) {
	var gotName string
	var gotArgs []string
	d := &Desktop{goos: "linux", run: func(_ context.Context, name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}}

	require.True(t, d.Supported())
	require.NoError(t, d.Notify(context.Background(), NewNotification("ashar", time.Now())))

	assert.Equal(t, "notify-send", gotName)
	assert.Equal(t, []string{"--app-name=imsakiyah", "Waktu Ashar telah tiba", "Selamat menunaikan ibadah Ashar"}, gotArgs)
}

func TestDesktop_Darwin(t *testing.T) {
	var gotName string
	var gotArgs []string
	d := &Desktop{goos: "darwin", run: func(_ context.Context, name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}}

	require.NoError(t, d.Notify(context.Background(), NewNotification("imsak", time.Now())))

	assert.Equal(t, "osascript", gotName)
	require.Len(t, gotArgs, 2)
	assert.Equal(t, "-e", gotArgs[0])
	assert.Equal(t, `display notification "Selamat menunaikan ibadah Imsak" with title "Waktu Imsak telah tiba"`, gotArgs[1])
}

func TestDesktop_Unsupported(t *testing.T) {
	d := &Desktop{goos: "plan9", run: func(context.Context, string, ...string) error {
		t.Fatal("runner should not be called")
		return nil
	}}

	assert.False(t, d.Supported())
	assert.ErrorIs(t, d.Notify(context.Background(), Notification{}), ErrUnsupported)
}
