// gpxbide inspects, validates, and converts GPX files from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/mikelarr/gpxbide/internal/adapters/xmlcodec"
	"github.com/mikelarr/gpxbide/internal/core/domain"
	"github.com/mikelarr/gpxbide/internal/core/usecases"
	"github.com/mikelarr/gpxbide/internal/pkg/config"
	"github.com/mikelarr/gpxbide/internal/pkg/logging"
	"github.com/mikelarr/gpxbide/internal/pkg/metrics"
)

var cfg *config.Config

func main() {
	app := &cli.App{
		Name:  "gpxbide",
		Usage: "inspect, validate and convert GPX files",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "log-format", Usage: "text or json"},
			&cli.BoolFlag{Name: "metrics", Usage: "dump pipeline counters to stderr on exit"},
		},
		Before: func(c *cli.Context) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			level := cfg.Log.Level
			if c.String("log-level") != "" {
				level = c.String("log-level")
			}
			format := cfg.Log.Format
			if c.String("log-format") != "" {
				format = c.String("log-format")
			}
			logging.Setup(level, format)
			return nil
		},
		After: func(c *cli.Context) error {
			if c.Bool("metrics") {
				return metrics.Dump(os.Stderr)
			}
			return nil
		},
		Commands: []*cli.Command{
			infoCommand(),
			validateCommand(),
			convertCommand(),
			findCommand(),
			betweenCommand(),
			routesCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadDocument reads and builds the GPX file named by the first argument.
func loadDocument(c *cli.Context) (*domain.Document, error) {
	path := c.Args().First()
	if path == "" {
		return nil, cli.Exit("missing GPX file argument", 2)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	builder := usecases.NewBuildService(xmlcodec.New())
	doc, err := builder.FromBytes(c.Context, data)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", path, err)
	}
	return doc, nil
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "print the document summary as JSON",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "also print the full document dump"},
		},
		Action: func(c *cli.Context) error {
			doc, err := loadDocument(c)
			if err != nil {
				return err
			}
			ser := usecases.NewSerializeService(nil)
			fmt.Println(ser.DocumentJSON(doc))
			if c.Bool("verbose") {
				fmt.Println(doc.String())
			}
			return nil
		},
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check a GPX file against the model invariants",
		ArgsUsage: "FILE",
		Action: func(c *cli.Context) error {
			doc, err := loadDocument(c)
			if err != nil {
				return err
			}
			validator := usecases.NewValidationService(nil)
			if !validator.ValidateModel(doc) {
				color.Red("invalid")
				return cli.Exit("", 1)
			}
			color.Green("valid")
			return nil
		},
	}
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "round-trip a GPX file through the document model",
		ArgsUsage: "IN OUT",
		Action: func(c *cli.Context) error {
			doc, err := loadDocument(c)
			if err != nil {
				return err
			}
			out := c.Args().Get(1)
			if out == "" {
				return cli.Exit("missing output file argument", 2)
			}
			ser := usecases.NewSerializeService(xmlcodec.New())
			data, err := ser.ToBytes(c.Context, doc)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			return nil
		},
	}
}

func findCommand() *cli.Command {
	return &cli.Command{
		Name:      "find",
		Usage:     "look up a waypoint, route, or track by name",
		ArgsUsage: "FILE NAME",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "kind", Value: "waypoint", Usage: "waypoint, route or track"},
		},
		Action: func(c *cli.Context) error {
			doc, err := loadDocument(c)
			if err != nil {
				return err
			}
			name := c.Args().Get(1)
			if name == "" {
				return cli.Exit("missing name argument", 2)
			}
			ser := usecases.NewSerializeService(nil)
			switch c.String("kind") {
			case "waypoint":
				if w, ok := doc.FindWaypoint(name); ok {
					fmt.Println(ser.WaypointJSON(w))
					return nil
				}
			case "route":
				if r, ok := doc.FindRoute(name); ok {
					fmt.Println(ser.RouteJSON(r))
					return nil
				}
			case "track":
				if t, ok := doc.FindTrack(name); ok {
					fmt.Println(ser.TrackJSON(t))
					return nil
				}
			default:
				return cli.Exit("kind must be waypoint, route or track", 2)
			}
			color.Yellow("not found")
			return cli.Exit("", 1)
		},
	}
}

func betweenCommand() *cli.Command {
	return &cli.Command{
		Name:      "between",
		Usage:     "list routes (or tracks) running between two coordinates",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "src-lat", Required: true},
			&cli.Float64Flag{Name: "src-lon", Required: true},
			&cli.Float64Flag{Name: "dst-lat", Required: true},
			&cli.Float64Flag{Name: "dst-lon", Required: true},
			&cli.Float64Flag{Name: "delta", Usage: "tolerance in meters (default from config)"},
			&cli.BoolFlag{Name: "tracks", Usage: "search tracks instead of routes"},
		},
		Action: func(c *cli.Context) error {
			doc, err := loadDocument(c)
			if err != nil {
				return err
			}
			delta := cfg.Query.Delta
			if c.IsSet("delta") {
				delta = c.Float64("delta")
			}
			queries := usecases.NewQueryService()
			ser := usecases.NewSerializeService(nil)
			if c.Bool("tracks") {
				view := queries.TracksBetween(doc,
					c.Float64("src-lat"), c.Float64("src-lon"),
					c.Float64("dst-lat"), c.Float64("dst-lon"), delta)
				fmt.Println(ser.TrackListJSON(view.Iter()))
				return nil
			}
			view := queries.RoutesBetween(doc,
				c.Float64("src-lat"), c.Float64("src-lon"),
				c.Float64("dst-lat"), c.Float64("dst-lon"), delta)
			fmt.Println(ser.RouteListJSON(view.Iter()))
			return nil
		},
	}
}

func routesCommand() *cli.Command {
	return &cli.Command{
		Name:      "routes",
		Usage:     "print every route and its points as JSON",
		ArgsUsage: "FILE",
		Action: func(c *cli.Context) error {
			doc, err := loadDocument(c)
			if err != nil {
				return err
			}
			ser := usecases.NewSerializeService(nil)
			fmt.Println(ser.RoutePointsReport(doc))
			return nil
		},
	}
}
