package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/smokyabdulrahman/imsakiyah/internal/display"
	"github.com/smokyabdulrahman/imsakiyah/internal/prayer"
	"github.com/spf13/cobra"
)

func newJamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jam",
		Short: "Show a live clock with the Indonesian date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if once, _ := cmd.Flags().GetBool("once"); once {
				fmt.Fprintln(out, clockLine(nowFunc()))
				return nil
			}

			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()

			ctx := cmd.Context()
			writeClock(out, nowFunc())
			for {
				select {
				case <-ctx.Done():
					fmt.Fprintln(out)
					return nil
				case t := <-ticker.C:
					writeClock(out, t)
				}
			}
		},
	}

	cmd.Flags().Bool("once", false, "Print the date and time once and exit")

	return cmd
}

func clockLine(t time.Time) string {
	return fmt.Sprintf("%s  %s", prayer.FormatDate(t), display.Bold(prayer.FormatClock(t)))
}

// writeClock redraws the clock in place.
func writeClock(w io.Writer, t time.Time) {
	fmt.Fprintf(w, "\r%s", clockLine(t))
}
