package cli

import (
	"fmt"
	"io"

	"github.com/smokyabdulrahman/imsakiyah/internal/display"
	"github.com/spf13/cobra"
)

func newProvinsiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "provinsi",
		Short: "List provinces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src := newSource(ctx, effectiveConfig(cmd))
			defer src.Close()

			names, err := src.provinces(ctx)
			if err != nil {
				return err
			}
			return writeNames(cmd.OutOrStdout(), "Provinsi", names)
		},
	}
}

func newKabkotaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kabkota [provinsi]",
		Short: "List the cities and regencies of a province",
		Long: "List the cities and regencies of a province. Without an argument the\n" +
			"--provinsi flag or the saved province is used.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := effectiveConfig(cmd)
			if len(args) == 1 {
				cfg.Provinsi = args[0]
			}
			if cfg.Provinsi == "" {
				return alert(msgSelectFirst, nil)
			}

			src := newSource(ctx, cfg)
			defer src.Close()

			provinsi, err := src.matchProvince(ctx, cfg.Provinsi)
			if err != nil {
				return err
			}
			names, err := src.cities(ctx, provinsi)
			if err != nil {
				return err
			}
			return writeNames(cmd.OutOrStdout(), "Kabupaten/Kota di "+provinsi, names)
		},
	}
}

// writeNames prints a numbered list, or the bare names for json/yaml.
func writeNames(w io.Writer, title string, names []string) error {
	if FlagOutput != outputTable {
		return writeStructured(w, FlagOutput, names)
	}

	fmt.Fprintf(w, "\n  %s\n\n", display.Bold(title))
	width := len(fmt.Sprint(len(names)))
	for i, name := range names {
		fmt.Fprintf(w, "  %s %s\n", display.Muted(fmt.Sprintf("%*d.", width, i+1)), name)
	}
	fmt.Fprintln(w)
	return nil
}
