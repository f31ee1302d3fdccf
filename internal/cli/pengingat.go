package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/smokyabdulrahman/imsakiyah/internal/config"
	"github.com/smokyabdulrahman/imsakiyah/internal/display"
	"github.com/smokyabdulrahman/imsakiyah/internal/notify"
	"github.com/smokyabdulrahman/imsakiyah/internal/prayer"
	"github.com/spf13/cobra"
)

func newPengingatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pengingat",
		Short: "Send a reminder at every remaining prayer time",
		Long: "Arm one reminder per remaining prayer time of the selected schedule and\n" +
			"wait for them. Interrupting the command discards every pending reminder.\n\n" +
			"Notifiers: desktop, console, mqtt (IMSAKIYAH_MQTT_BROKER). Combine them\n" +
			"with commas, e.g. --notifier desktop,mqtt.",
		Args: cobra.NoArgs,
		RunE: runPengingat,
	}

	cmd.Flags().Bool("izinkan", false, "Grant notification permission without asking")
	cmd.Flags().String("notifier", "", "Comma-separated notifiers (overrides config)")

	return cmd
}

func runPengingat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := effectiveConfig(cmd)
	if err := validatePeriod(cfg); err != nil {
		return err
	}
	if n, _ := cmd.Flags().GetString("notifier"); n != "" {
		if err := (&config.Config{}).Set("notifier", n); err != nil {
			return err
		}
		cfg.Notifier = n
	}

	src := newSource(ctx, cfg)
	defer src.Close()

	provinsi, kota, err := src.resolveSelection(ctx, cfg)
	if err != nil {
		return err
	}
	sched, err := src.schedule(ctx, provinsi, kota)
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	perm := notify.ParsePermission(cfg.Notifikasi)
	if perm == notify.PermissionDefault {
		perm = requestPermission(cmd)
	}
	if perm != notify.PermissionGranted {
		fmt.Fprintln(errOut, display.Yellow(msgEnableNotifications))
	}

	notifier, closeNotifiers := buildNotifier(cfg.Notifiers(), out)
	defer closeNotifiers()

	scheduler := notify.NewScheduler(notifier, storedPermission, logger)
	alerts := notify.BuildAlerts(sched, cfg.Tahun, time.Month(cfg.Bulan), time.Local)
	armed := scheduler.Schedule(ctx, alerts)
	if armed == 0 {
		fmt.Fprintln(out, msgNoRemindersRemaining)
		return nil
	}

	fmt.Fprintf(out, "%s pengingat dijadwalkan untuk %s, %s.\n",
		display.Bold(fmt.Sprint(armed)), sched.Kabkota, sched.Provinsi)
	now := nowFunc()
	if next, ok := nextPrayer(sched, cfg.Tahun, time.Month(cfg.Bulan), now); ok {
		fmt.Fprintf(out, "Berikutnya: %s\n", display.Accent(prayer.FormatOutput(next, now, prayer.FormatFull)))
	}

	if err := scheduler.Wait(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// requestPermission asks once and persists the answer.
func requestPermission(cmd *cobra.Command) notify.Permission {
	perm := notify.PermissionDenied
	if yes, _ := cmd.Flags().GetBool("izinkan"); yes || confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), msgNotificationConsent) {
		perm = notify.PermissionGranted
	}
	savePreference("notifikasi", string(perm))
	return perm
}

// storedPermission re-reads the permission from disk so a `reset` or a
// `config set notifikasi` in another terminal applies to pending reminders.
func storedPermission() notify.Permission {
	path, err := config.Path()
	if err != nil {
		return notify.PermissionDefault
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return notify.PermissionDefault
	}
	return notify.ParsePermission(cfg.Notifikasi)
}

// buildNotifier combines the named notifiers. Ones that cannot be set up are
// skipped with a warning; the console is used when nothing else is left.
func buildNotifier(names []string, out io.Writer) (notify.Notifier, func()) {
	var (
		multi   notify.Multi
		closers []func()
	)

	for _, name := range names {
		switch strings.TrimSpace(name) {
		case "desktop":
			d := notify.NewDesktop()
			if !d.Supported() {
				logger.Warn().Msg("desktop notifications are not supported here")
				continue
			}
			multi = append(multi, d)
		case "console":
			multi = append(multi, notify.NewConsole(out))
		case "mqtt":
			if loadedEnv.MQTTBroker == "" {
				logger.Warn().Msg("mqtt notifier needs IMSAKIYAH_MQTT_BROKER")
				continue
			}
			clientID := fmt.Sprintf("imsakiyah-%d", os.Getpid())
			m, err := notify.DialMQTT(loadedEnv.MQTTBroker, clientID, loadedEnv.MQTTTopic)
			if err != nil {
				logger.Warn().Err(err).Msg("mqtt notifier disabled")
				continue
			}
			multi = append(multi, m)
			closers = append(closers, m.Close)
		}
	}

	if len(multi) == 0 {
		multi = append(multi, notify.NewConsole(out))
	}

	return multi, func() {
		for _, c := range closers {
			c()
		}
	}
}
