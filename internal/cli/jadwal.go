package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/smokyabdulrahman/imsakiyah/internal/api"
	"github.com/smokyabdulrahman/imsakiyah/internal/config"
	"github.com/smokyabdulrahman/imsakiyah/internal/display"
	"github.com/smokyabdulrahman/imsakiyah/internal/notify"
	"github.com/smokyabdulrahman/imsakiyah/internal/prayer"
	"github.com/spf13/cobra"
)

var scheduleColumns = []string{"Tanggal", "Hari", "Imsak", "Subuh", "Dzuhur", "Ashar", "Maghrib", "Isya"}

// scheduleOutput is the json/yaml form of a schedule.
type scheduleOutput struct {
	Tahun    int         `json:"tahun" yaml:"tahun"`
	Bulan    int         `json:"bulan" yaml:"bulan"`
	Provinsi string      `json:"provinsi" yaml:"provinsi"`
	Kabkota  string      `json:"kabkota" yaml:"kabkota"`
	Hari     []dayOutput `json:"imsakiyah" yaml:"imsakiyah"`
}

type dayOutput struct {
	Tanggal int    `json:"tanggal" yaml:"tanggal"`
	Hari    string `json:"hari" yaml:"hari"`
	Imsak   string `json:"imsak" yaml:"imsak"`
	Subuh   string `json:"subuh" yaml:"subuh"`
	Terbit  string `json:"terbit,omitempty" yaml:"terbit,omitempty"`
	Dhuha   string `json:"dhuha,omitempty" yaml:"dhuha,omitempty"`
	Dzuhur  string `json:"dzuhur" yaml:"dzuhur"`
	Ashar   string `json:"ashar" yaml:"ashar"`
	Maghrib string `json:"maghrib" yaml:"maghrib"`
	Isya    string `json:"isya" yaml:"isya"`
}

func newJadwalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jadwal",
		Short: "Show the imsakiyah schedule of a city",
		Long: "Show the month's imsakiyah schedule for the selected province and city.\n" +
			"The selection is remembered, so later runs need no flags.\n\n" +
			"Examples:\n" +
			"  imsakiyah jadwal --provinsi \"Jawa Barat\" --kota \"Kota Bandung\"\n" +
			"  imsakiyah jadwal -o json",
		Args: cobra.NoArgs,
		RunE: runJadwal,
	}
}

func runJadwal(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := effectiveConfig(cmd)
	if err := validatePeriod(cfg); err != nil {
		return err
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

	return showSchedule(cmd, cfg, sched)
}

// showSchedule renders sched in the selected output format and reminds the
// user to enable notifications when they are not granted.
func showSchedule(cmd *cobra.Command, cfg *config.Config, sched *api.Schedule) error {
	year, month := cfg.Tahun, time.Month(cfg.Bulan)
	out := cmd.OutOrStdout()

	if FlagOutput != outputTable {
		return writeStructured(out, FlagOutput, newScheduleOutput(sched, year, month))
	}

	renderSchedule(out, sched, year, month, nowFunc())

	if notify.ParsePermission(cfg.Notifikasi) != notify.PermissionGranted {
		fmt.Fprintln(cmd.ErrOrStderr(), display.Yellow(msgEnableNotifications))
	}
	return nil
}

func renderSchedule(w io.Writer, sched *api.Schedule, year int, month time.Month, now time.Time) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Boldf("Jadwal Imsakiyah %d", year))
	fmt.Fprintf(w, "  %s, %s\n", sched.Kabkota, sched.Provinsi)
	fmt.Fprintf(w, "  %s\n\n", display.Muted(fmt.Sprintf("%s %d", prayer.MonthName(month), year)))

	tbl := display.NewTable(scheduleColumns)
	showToday := now.Year() == year && now.Month() == month
	for _, d := range sched.Days {
		day := int(d.Tanggal)
		if showToday && day == now.Day() {
			tbl.SetHighlightRow(tbl.Len())
		}
		tbl.AddRow([]string{
			strconv.Itoa(day),
			prayer.DayName(year, month, day),
			cell(d.Imsak),
			cell(d.Subuh),
			cell(d.Dzuhur),
			cell(d.Ashar),
			cell(d.Maghrib),
			cell(d.Isya),
		})
	}

	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
}

// cell normalizes a raw time for the table; the table renders "" as "-".
func cell(raw string) string {
	if !prayer.HasTime(raw) {
		return ""
	}
	return raw
}

func newScheduleOutput(sched *api.Schedule, year int, month time.Month) scheduleOutput {
	out := scheduleOutput{
		Tahun:    year,
		Bulan:    int(month),
		Provinsi: sched.Provinsi,
		Kabkota:  sched.Kabkota,
		Hari:     make([]dayOutput, 0, len(sched.Days)),
	}
	for _, d := range sched.Days {
		day := int(d.Tanggal)
		out.Hari = append(out.Hari, dayOutput{
			Tanggal: day,
			Hari:    prayer.DayName(year, month, day),
			Imsak:   d.Imsak,
			Subuh:   d.Subuh,
			Terbit:  d.Terbit,
			Dhuha:   d.Dhuha,
			Dzuhur:  d.Dzuhur,
			Ashar:   d.Ashar,
			Maghrib: d.Maghrib,
			Isya:    d.Isya,
		})
	}
	return out
}
