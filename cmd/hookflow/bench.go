package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/hookflow/demo"
	"github.com/delaneyj/hookflow/lifecycle"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

type benchResult struct {
	name   string
	nodes  int
	passes int
	mount  *tachymeter.Metrics
	remove *tachymeter.Metrics
}

// benchNested mounts and removes the generated subtree iters times, timing
// each flush separately.
func benchNested(depth, fanout, iters int) (benchResult, error) {
	res := benchResult{
		name:  fmt.Sprintf("nested: %d * %d", depth, fanout),
		nodes: demo.NestedSize(depth, fanout),
	}
	s := lifecycle.NewScheduler()
	if _, err := s.Mount(demo.Nested(depth, fanout)); err != nil {
		return res, err
	}
	if err := s.Flush(); err != nil {
		return res, err
	}

	toggle := func(show bool, tach *tachymeter.Tachymeter) error {
		view, ok := s.Root().Output().(demo.NestedView)
		if !ok {
			return fmt.Errorf("unexpected root output %T", s.Root().Output())
		}
		if err := view.Toggle(show); err != nil {
			return err
		}
		start := time.Now()
		err := s.Flush()
		tach.AddTime(time.Since(start))
		return err
	}

	mount := tachymeter.New(&tachymeter.Config{Size: iters})
	remove := tachymeter.New(&tachymeter.Config{Size: iters})
	before := s.Passes()
	for i := 0; i < iters; i++ {
		if err := toggle(true, mount); err != nil {
			return res, err
		}
		if err := toggle(false, remove); err != nil {
			return res, err
		}
	}
	res.passes = s.Passes() - before
	res.mount = mount.Calc()
	res.remove = remove.Calc()
	return res, nil
}

func bench(ctx context.Context, cmd *cli.Command) error {
	iters := int(cmd.Uint(itersKey))
	maxDepth := int(cmd.Uint(depthKey))
	fanout := int(cmd.Uint(fanoutKey))
	if iters == 0 || fanout == 0 {
		return fmt.Errorf("iters and fanout must be positive")
	}

	tbl := table.NewWriter()
	tbl.SetTitle("Lifecycle flushes")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "nodes", "passes", "phase", "avg", "min", "p75", "p99", "max"})

	start := time.Now()
	for depth := 1; depth <= maxDepth; depth *= 2 {
		res, err := benchNested(depth, fanout, iters)
		if err != nil {
			return err
		}
		for _, phase := range []struct {
			name string
			calc *tachymeter.Metrics
		}{{"mount", res.mount}, {"unmount", res.remove}} {
			tbl.AppendRow(table.Row{
				res.name,
				humanize.Comma(int64(res.nodes)),
				humanize.Comma(int64(res.passes)),
				phase.name,
				phase.calc.Time.Avg,
				phase.calc.Time.Min,
				phase.calc.Time.P75,
				phase.calc.Time.P99,
				phase.calc.Time.Max,
			})
		}
		tbl.AppendSeparator()
	}
	tbl.Render()
	log.Printf("bench finished in %v", time.Since(start))
	return nil
}
