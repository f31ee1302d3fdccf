package cli

import (
	"fmt"
	"slices"
	"time"

	"github.com/smokyabdulrahman/imsakiyah/internal/api"
	"github.com/smokyabdulrahman/imsakiyah/internal/config"
	"github.com/smokyabdulrahman/imsakiyah/internal/prayer"
	"github.com/spf13/cobra"
)

// nextOutput is the json/yaml form of the next prayer.
type nextOutput struct {
	Prayer    string    `json:"prayer" yaml:"prayer"`
	Name      string    `json:"name" yaml:"name"`
	Time      time.Time `json:"time" yaml:"time"`
	Remaining string    `json:"remaining" yaml:"remaining"`
	Seconds   int64     `json:"seconds" yaml:"seconds"`
	Current   string    `json:"current,omitempty" yaml:"current,omitempty"`
}

func newBerikutnyaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "berikutnya",
		Aliases: []string{"next"},
		Short:   "Show the next prayer time",
		Long: fmt.Sprintf("Show the next prayer of the selected schedule, suited for status bars.\n\n"+
			"Formats: %s, %s, %s, %s, %s, %s,\n"+
			"or a Go template such as \"{{.Name}} dalam {{.Remaining}}\".\n"+
			"Template fields: .Name, .ShortName, .Time, .Remaining, .Hours, .Minutes",
			prayer.FormatTimeRemaining, prayer.FormatNextPrayerTime, prayer.FormatNameAndTime,
			prayer.FormatNameAndRemaining, prayer.FormatShortNameAndTime, prayer.FormatFull),
		Args: cobra.NoArgs,
		RunE: runBerikutnya,
	}

	cmd.Flags().String("format", "", "Status-line format (overrides config)")

	return cmd
}

func runBerikutnya(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := effectiveConfig(cmd)
	if err := validatePeriod(cfg); err != nil {
		return err
	}
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		if err := (&config.Config{}).Set("format", f); err != nil {
			return err
		}
		cfg.Format = f
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

	now := nowFunc()
	next, ok := nextPrayer(sched, cfg.Tahun, time.Month(cfg.Bulan), now)
	if !ok {
		return alert(msgNoUpcoming, nil)
	}

	out := cmd.OutOrStdout()
	if FlagOutput != outputTable {
		d := prayer.TimeRemaining(next, now)
		o := nextOutput{
			Prayer:    next.Name,
			Name:      prayer.DisplayName(next.Name),
			Time:      next.Time,
			Remaining: prayer.FormatRemaining(d),
			Seconds:   int64(d / time.Second),
		}
		prayers := schedulePrayers(sched, cfg.Tahun, time.Month(cfg.Bulan), now.Location())
		if cur := prayer.CurrentPrayer(prayers, now); cur != nil {
			o.Current = cur.Name
		}
		return writeStructured(out, FlagOutput, o)
	}

	fmt.Fprintln(out, prayer.FormatOutput(next, now, cfg.Format))
	return nil
}

// nextPrayer returns the first prayer of the schedule strictly after now.
// It looks past today, so after isya the next day's imsak is returned.
func nextPrayer(sched *api.Schedule, year int, month time.Month, now time.Time) (prayer.Prayer, bool) {
	next := prayer.NextPrayer(schedulePrayers(sched, year, month, now.Location()), now)
	if next == nil {
		return prayer.Prayer{}, false
	}
	return *next, true
}

// schedulePrayers flattens every row of sched into one chronological list.
// Rows that do not parse are skipped.
func schedulePrayers(sched *api.Schedule, year int, month time.Month, loc *time.Location) []prayer.Prayer {
	var all []prayer.Prayer
	for _, d := range sched.Days {
		prayers, err := prayer.ParseDay(d, year, month, loc)
		if err != nil {
			logger.Debug().Err(err).Msg("skipping schedule row")
			continue
		}
		all = append(all, prayers...)
	}
	slices.SortStableFunc(all, func(a, b prayer.Prayer) int {
		return a.Time.Compare(b.Time)
	})
	return all
}
