package main

import (
	"context"
	"log"
	"os"

	"github.com/delaneyj/hookflow/demo"
	"github.com/delaneyj/hookflow/report"
	"github.com/urfave/cli/v3"
)

func writeReport(ctx context.Context, cmd *cli.Command) error {
	sc, err := loadScript(cmd)
	if err != nil {
		return err
	}
	ss := demo.NewSession(sessionOptions(cmd)...)
	playErr := ss.Play(sc, nil)

	contents := report.Trace(sc.Name, ss.Steps)
	out := cmd.String(outKey)
	if out == "" {
		if _, err := os.Stdout.WriteString(contents); err != nil {
			return err
		}
		return playErr
	}
	if err := os.WriteFile(out, []byte(contents), 0644); err != nil {
		return err
	}
	log.Printf("wrote %d steps to %s", len(ss.Steps), out)
	return playErr
}
