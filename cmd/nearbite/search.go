package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/nearbite/internal/domain/card"
	"github.com/kailas-cloud/nearbite/internal/domain/geo"
	"github.com/kailas-cloud/nearbite/internal/domain/options"
	logpkg "github.com/kailas-cloud/nearbite/internal/logger"
	finderuc "github.com/kailas-cloud/nearbite/internal/usecase/finder"
)

type searchFlags struct {
	lat, lon    float64
	distance    float64
	tags        []string
	onlyMatches bool
	local       bool
	asJSON      bool
}

func searchCmd() *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search restaurants around a point",
		Args:  cobra.NoArgs,
		Example: heredoc.Doc(`
			$ nearbite search --lat 39.0997 --lon -94.5786
			$ nearbite search --lat 39.0997 --lon -94.5786 --distance 2 --tag Burgers --tag Diner --only-matches
			$ nearbite search --lat 0 --lon 0 --local --json
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger, err := logpkg.NewLogger("cli", cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			if cmd.Flags().Changed("distance") {
				cfg.Search.DefaultDistance = f.distance
			}
			if cmd.Flags().Changed("tag") {
				cfg.Search.DefaultTags = f.tags
			}
			if cmd.Flags().Changed("only-matches") {
				cfg.Search.OnlyShowTagMatches = f.onlyMatches
			}
			initial, err := initialOptions(cfg.Search)
			if err != nil {
				return err
			}

			a, err := buildApp(cmd.Context(), &cfg, initial, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			src := finderuc.SourceRemote
			if f.local {
				src = finderuc.SourceLocal
			}

			out, err := a.finder.Search(cmd.Context(), "", src, geo.Coordinates{Lat: f.lat, Lon: f.lon})
			if err != nil {
				return err
			}

			if f.asJSON {
				return printJSON(cmd.OutOrStdout(), out)
			}
			return printCards(cmd.OutOrStdout(), out.Options, out.Cards)
		},
	}

	cmd.Flags().Float64Var(&f.lat, "lat", 0, "latitude of the search center")
	cmd.Flags().Float64Var(&f.lon, "lon", 0, "longitude of the search center")
	cmd.Flags().Float64VarP(&f.distance, "distance", "d", options.DefaultSearchDistance, "search radius in miles")
	cmd.Flags().StringArrayVarP(&f.tags, "tag", "t", nil, "cuisine tag of interest (repeatable, exact match)")
	cmd.Flags().BoolVar(&f.onlyMatches, "only-matches", false, "only show restaurants matching a tag")
	cmd.Flags().BoolVar(&f.local, "local", false, "read the local fixture instead of the remote API")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")

	return cmd
}

func printCards(w io.Writer, opts options.Options, cards []card.Card) error {
	if len(cards) == 0 {
		_, err := fmt.Fprintln(w, "No restaurants found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tCUISINES\tDISTANCE\tSTREET\tPHONE\tWEBSITE")
	for _, c := range cards {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%.2f mi\t%s\t%s\t%s\n",
			c.Name,
			strings.Join(c.Cuisines, ", "),
			c.DistanceMeters/geo.MetersPerMile,
			c.Street, c.Phone, c.Website,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d restaurants within %.1f mi", len(cards), opts.SearchDistance())
	if err == nil && opts.OnlyShowTagMatches() {
		_, err = fmt.Fprintf(w, " matching %s", strings.Join(opts.SearchTags().Sorted(), ", "))
	}
	if err == nil {
		_, err = fmt.Fprintln(w)
	}
	return err
}

type cardJSON struct {
	Name           string   `json:"name"`
	Street         string   `json:"street"`
	Phone          string   `json:"phone"`
	Website        string   `json:"website"`
	Cuisines       []string `json:"cuisines"`
	Lat            float64  `json:"lat"`
	Lon            float64  `json:"lon"`
	DistanceMeters float64  `json:"distance_meters"`
}

func printJSON(w io.Writer, out finderuc.Outcome) error {
	cards := make([]cardJSON, len(out.Cards))
	for i, c := range out.Cards {
		cards[i] = cardJSON{
			Name:           c.Name,
			Street:         c.Street,
			Phone:          c.Phone,
			Website:        c.Website,
			Cuisines:       c.Cuisines,
			Lat:            c.Marker.Lat,
			Lon:            c.Marker.Lon,
			DistanceMeters: c.DistanceMeters,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"search_id": out.ID.String(),
		"source":    string(out.Source),
		"center":    map[string]float64{"lat": out.Center.Lat, "lon": out.Center.Lon},
		"cards":     cards,
	})
}
