package cli

import (
	"context"
	"errors"

	"github.com/smokyabdulrahman/imsakiyah/internal/geo"
	"github.com/spf13/cobra"
)

func newLokasiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lokasi",
		Short: "Pick the province and city from your location",
		Long: "Find your position, look up the province and city at that point and\n" +
			"show their schedule. Without --lat/--lon the position is estimated from\n" +
			"your IP address after asking for consent.",
		Args: cobra.NoArgs,
		RunE: runLokasi,
	}

	cmd.Flags().Float64("lat", 0, "Latitude (skips position detection)")
	cmd.Flags().Float64("lon", 0, "Longitude (skips position detection)")
	cmd.Flags().BoolP("yes", "y", false, "Allow location detection without asking")

	return cmd
}

func runLokasi(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := effectiveConfig(cmd)
	if err := validatePeriod(cfg); err != nil {
		return err
	}

	src := newSource(ctx, cfg)
	defer src.Close()

	g := newGeoClient()

	lat, lon, err := position(ctx, cmd, g, src)
	if err != nil {
		return locationAlert(err)
	}
	logger.Debug().Float64("lat", lat).Float64("lon", lon).Msg("position")

	addr, err := g.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return locationAlert(err)
	}

	provinsi, kota, err := src.selectionFromAddress(ctx, addr)
	if err != nil {
		return err
	}
	sched, err := src.schedule(ctx, provinsi, kota)
	if err != nil {
		return err
	}

	return showSchedule(cmd, cfg, sched)
}

func newGeoClient() *geo.Client {
	g := geo.NewClient()
	if loadedEnv.GeoURL != "" {
		g.IPURL = loadedEnv.GeoURL
	}
	if loadedEnv.GeocodeURL != "" {
		g.ReverseURL = loadedEnv.GeocodeURL
	}
	return g
}

// position returns explicit coordinates when both flags are given. Otherwise
// it asks for consent and then uses a cached detection or detects anew.
func position(ctx context.Context, cmd *cobra.Command, g *geo.Client, src *source) (float64, float64, error) {
	flags := cmd.Flags()
	if flags.Changed("lat") && flags.Changed("lon") {
		lat, _ := flags.GetFloat64("lat")
		lon, _ := flags.GetFloat64("lon")
		return lat, lon, nil
	}

	if yes, _ := flags.GetBool("yes"); !yes {
		if !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), msgLocationConsent) {
			return 0, 0, geo.ErrPermissionDenied
		}
	}

	if src.cache != nil {
		if loc, ok := src.cache.LoadGeo(ctx); ok {
			return loc.Latitude, loc.Longitude, nil
		}
	}

	loc, err := g.DetectLocation(ctx)
	if err != nil {
		return 0, 0, err
	}
	if src.cache != nil {
		if err := src.cache.SaveGeo(ctx, loc); err != nil {
			logger.Debug().Err(err).Msg("cache write failed")
		}
	}
	return loc.Latitude, loc.Longitude, nil
}

// locationAlert maps a position or geocoding failure onto its message.
func locationAlert(err error) error {
	switch {
	case isAlert(err):
		return err
	case errors.Is(err, geo.ErrUnsupported):
		return alert(msgGeoUnsupported, err)
	case errors.Is(err, geo.ErrPermissionDenied):
		return alert(msgGeoDenied, err)
	case errors.Is(err, geo.ErrPositionUnavailable):
		return alert(msgPositionUnavailable, err)
	case errors.Is(err, geo.ErrTimeout):
		return alert(msgGeoTimeout, err)
	default:
		return alert(msgGeoFailed, err)
	}
}
