package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/delaneyj/hookflow/demo"
	"github.com/delaneyj/hookflow/lifecycle"
	"github.com/urfave/cli/v3"
)

const (
	scriptKey  = "script"
	traceKey   = "trace"
	verboseKey = "verbose"
	noColorKey = "no-color"
	outlineKey = "outline"
	idsKey     = "ids"
	outKey     = "out"
	itersKey   = "iters"
	depthKey   = "depth"
	fanoutKey  = "fanout"
)

func main() {
	cmd := &cli.Command{
		Name:  "hookflow",
		Usage: "Show the render and effect order of a component tree",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    scriptKey,
				Aliases: []string{"s"},
				Usage:   "YAML script to play, the built-in walkthrough when empty",
				Sources: cli.EnvVars("HOOKFLOW_SCRIPT"),
			},
			&cli.BoolFlag{
				Name:    traceKey,
				Usage:   "include the scheduler's own lifecycle events",
				Sources: cli.EnvVars("HOOKFLOW_TRACE"),
			},
			&cli.BoolFlag{
				Name:    verboseKey,
				Aliases: []string{"v"},
				Usage:   "log scheduler passes to stderr",
				Sources: cli.EnvVars("HOOKFLOW_VERBOSE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Play a script and print the lifecycle log",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    noColorKey,
						Usage:   "print without colours",
						Sources: cli.EnvVars("NO_COLOR"),
					},
					&cli.BoolFlag{
						Name:  outlineKey,
						Usage: "print the rendered tree after every step",
					},
					&cli.BoolFlag{
						Name:  idsKey,
						Usage: "show node IDs in the outline",
					},
				},
				Action: run,
			},
			{
				Name:  "report",
				Usage: "Play a script and write a Markdown trace",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    outKey,
						Aliases: []string{"o"},
						Usage:   "output file, stdout when empty",
					},
				},
				Action: writeReport,
			},
			{
				Name:   "summary",
				Usage:  "Play a script and count events per source and category",
				Action: summary,
			},
			{
				Name:  "bench",
				Usage: "Time mount and unmount flushes of generated trees",
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:  itersKey,
						Usage: "samples per tree shape",
						Value: 100,
					},
					&cli.UintFlag{
						Name:  depthKey,
						Usage: "deepest tree to generate",
						Value: 8,
					},
					&cli.UintFlag{
						Name:  fanoutKey,
						Usage: "children per node",
						Value: 2,
					},
				},
				Action: bench,
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadScript(cmd *cli.Command) (*demo.Script, error) {
	if path := cmd.String(scriptKey); path != "" {
		return demo.LoadScript(path)
	}
	return demo.DefaultScript()
}

// sessionOptions turns the shared flags into scheduler options.
func sessionOptions(cmd *cli.Command) []lifecycle.Option {
	opts := []lifecycle.Option{lifecycle.WithLogger(newLogger(cmd.Bool(verboseKey)))}
	if cmd.Bool(traceKey) {
		opts = append(opts, lifecycle.WithTrace())
	}
	return opts
}

func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
