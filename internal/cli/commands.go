package cli

import (
	"fmt"
	"strings"

	"github.com/smokyabdulrahman/imsakiyah/internal/config"
	"github.com/smokyabdulrahman/imsakiyah/internal/display"
	"github.com/spf13/cobra"
)

func newTemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tema [gelap|terang]",
		Short: "Switch between the dark and light theme",
		Long:  "Set the color theme. Without an argument the current theme is toggled.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current := effectiveConfig(cmd).Theme

			theme := config.ThemeDark
			if current == config.ThemeDark {
				theme = config.ThemeLight
			}
			if len(args) == 1 {
				t, ok := config.ParseTheme(args[0])
				if !ok {
					return fmt.Errorf("invalid theme %q: must be \"gelap\" or \"terang\"", args[0])
				}
				theme = t
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Set("theme", theme); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}

			display.SetTheme(theme)
			fmt.Fprintf(cmd.OutOrStdout(), "Tema: %s\n", display.Accent(themeLabel(theme)))
			return nil
		},
	}
}

func themeLabel(theme string) string {
	if theme == config.ThemeDark {
		return "gelap"
	}
	return "terang"
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved theme, selection and notification permission",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				if !confirm(cmd.InOrStdin(), out, msgResetConfirm) {
					fmt.Fprintln(out, msgResetCanceled)
					return nil
				}
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg.ClearPreferences()
			if err := cfg.Save(); err != nil {
				return err
			}

			fmt.Fprintln(out, display.Green(msgResetDone))
			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Reset without asking")

	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nExamples:\n  imsakiyah config set provinsi \"Jawa Barat\"\n  imsakiyah config set kota \"Kota Bandung\"\n  imsakiyah config set bulan 3\n  imsakiyah config set notifier desktop,mqtt\n  imsakiyah config set format \"{{.Name}} {{.Remaining}}\"",
			strings.Join(config.ValidKeys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if FlagOutput != outputTable {
		return writeStructured(out, FlagOutput, cfg)
	}

	fmt.Fprintf(out, "  Configuration (%s)\n\n", path)

	defaults := config.Defaults()
	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		shown := val
		if shown == "" {
			shown = "(not set)"
			if def, _ := defaults.Get(key); def != "" {
				shown = display.Muted(fmt.Sprintf("(default: %s)", def))
			}
		}
		if key == "theme" && val != "" {
			shown = fmt.Sprintf("%s (%s)", val, themeLabel(val))
		}
		fmt.Fprintf(out, "  %-14s %s\n", key, shown)
	}
	return nil
}

// runConfigSet sets a config key to the given value.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

// runConfigReset deletes the config file.
func runConfigReset(cmd *cobra.Command, args []string) error {
	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
