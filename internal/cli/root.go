package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/smokyabdulrahman/imsakiyah/internal/config"
	"github.com/smokyabdulrahman/imsakiyah/internal/display"
	"github.com/smokyabdulrahman/imsakiyah/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Output formats accepted by --output.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// Global flags shared across all subcommands.
var (
	FlagProvinsi string
	FlagKota     string
	FlagOutput   string
	FlagCacheDir string
	FlagTahun    int
	FlagBulan    int
	FlagVerbose  bool
)

// loadedConfig holds the config loaded during PersistentPreRunE.
// Available to all subcommand handlers.
var loadedConfig *config.Config

// loadedEnv holds endpoint and backend settings from the environment.
var loadedEnv config.Environment

var logger = zerolog.Nop()

// nowFunc is the clock used for "today" and "next"; tests pin it.
var nowFunc = time.Now

// NewRootCmd creates the root command for the imsakiyah CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "imsakiyah",
		Short: "Jadwal imsakiyah Ramadan di terminal",
		Long: "Jadwal imsakiyah per provinsi dan kabupaten/kota dari equran.id,\n" +
			"lengkap dengan pengingat waktu sholat.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loadedEnv = config.LoadEnvironment()
			logger = logging.New(cmd.ErrOrStderr(), loadedEnv.LogLevel, FlagVerbose)

			switch FlagOutput {
			case outputTable, outputJSON, outputYAML:
			default:
				return fmt.Errorf("invalid output %q: must be table, json or yaml", FlagOutput)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loadedConfig = cfg

			if FlagOutput != outputTable {
				display.SetEnabled(false)
			}
			display.SetTheme(effectiveConfig(cmd).Theme)
			return nil
		},
		// Default action: restore the saved selection and show its schedule.
		RunE:          runJadwal,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register global persistent flags.
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&FlagProvinsi, "provinsi", "", "Override province (takes precedence over config)")
	pf.StringVar(&FlagKota, "kota", "", "Override city or regency")
	pf.StringVarP(&FlagOutput, "output", "o", outputTable, "Output format: table, json or yaml")
	pf.StringVar(&FlagCacheDir, "cache-dir", "", "Cache directory (default: ~/.cache/imsakiyah/)")
	pf.IntVar(&FlagTahun, "tahun", 0, "Schedule year (overrides config)")
	pf.IntVar(&FlagBulan, "bulan", 0, "Schedule month, 1-12 (overrides config)")
	pf.BoolVarP(&FlagVerbose, "verbose", "v", false, "Log debug details to stderr")

	// Register subcommands.
	rootCmd.AddCommand(newJadwalCmd())
	rootCmd.AddCommand(newProvinsiCmd())
	rootCmd.AddCommand(newKabkotaCmd())
	rootCmd.AddCommand(newBerikutnyaCmd())
	rootCmd.AddCommand(newLokasiCmd())
	rootCmd.AddCommand(newPengingatCmd())
	rootCmd.AddCommand(newJamCmd())
	rootCmd.AddCommand(newTemaCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
// The loaded config is copied so flag values never leak into a later save.
func effectiveConfig(cmd *cobra.Command) *config.Config {
	var cfg config.Config
	if loadedConfig != nil {
		cfg = *loadedConfig
	}

	defaults := config.Defaults()

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	if flagWasSet(flags, root, "provinsi") {
		cfg.Provinsi = FlagProvinsi
	}
	if flagWasSet(flags, root, "kota") {
		cfg.Kota = FlagKota
	}
	if flagWasSet(flags, root, "cache-dir") {
		cfg.CacheDir = FlagCacheDir
	}
	if flagWasSet(flags, root, "tahun") {
		cfg.Tahun = FlagTahun
	}
	if flagWasSet(flags, root, "bulan") {
		cfg.Bulan = FlagBulan
	}

	if cfg.Theme == "" {
		cfg.Theme = defaults.Theme
	}
	if cfg.Tahun == 0 {
		cfg.Tahun = defaults.Tahun
	}
	if cfg.Bulan == 0 {
		cfg.Bulan = defaults.Bulan
	}
	if cfg.Notifier == "" {
		cfg.Notifier = defaults.Notifier
	}
	if cfg.Format == "" {
		cfg.Format = defaults.Format
	}

	return &cfg
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}

// validatePeriod rejects a year or month given on the command line that the
// config layer would not accept.
func validatePeriod(cfg *config.Config) error {
	if cfg.Tahun < 2000 || cfg.Tahun > 2100 {
		return fmt.Errorf("invalid tahun %d: must be between 2000 and 2100", cfg.Tahun)
	}
	if cfg.Bulan < 1 || cfg.Bulan > 12 {
		return fmt.Errorf("invalid bulan %d: must be between 1 and 12", cfg.Bulan)
	}
	return nil
}
