package main

import (
	"context"
	"os"
	"slices"

	"github.com/delaneyj/hookflow/demo"
	"github.com/delaneyj/hookflow/lifecycle"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

type tally struct {
	categories []lifecycle.Category
	sources    []string
	counts     map[string]map[lifecycle.Category]int64
}

func countEvents(events []lifecycle.Event) tally {
	t := tally{counts: map[string]map[lifecycle.Category]int64{}}
	for _, e := range events {
		if !slices.Contains(t.categories, e.Category) {
			t.categories = append(t.categories, e.Category)
		}
		bySource, ok := t.counts[e.Source]
		if !ok {
			bySource = map[lifecycle.Category]int64{}
			t.counts[e.Source] = bySource
			t.sources = append(t.sources, e.Source)
		}
		bySource[e.Category]++
	}
	return t
}

// rows lays the tally out as one row per source with a total column.
func (t tally) rows() (header []string, rows [][]string, footer []string) {
	header = append(header, "source")
	for _, c := range t.categories {
		header = append(header, string(c))
	}
	header = append(header, "total")

	totals := make([]int64, len(t.categories))
	var all int64
	for _, src := range t.sources {
		row := []string{src}
		var sum int64
		for i, c := range t.categories {
			n := t.counts[src][c]
			totals[i] += n
			sum += n
			row = append(row, humanize.Comma(n))
		}
		all += sum
		rows = append(rows, append(row, humanize.Comma(sum)))
	}

	footer = append(footer, "total")
	for _, n := range totals {
		footer = append(footer, humanize.Comma(n))
	}
	footer = append(footer, humanize.Comma(all))
	return header, rows, footer
}

func summary(ctx context.Context, cmd *cli.Command) error {
	sc, err := loadScript(cmd)
	if err != nil {
		return err
	}
	ss := demo.NewSession(sessionOptions(cmd)...)
	if err := ss.Play(sc, nil); err != nil {
		return err
	}

	header, rows, footer := countEvents(ss.Recorder.Events()).rows()
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetFooter(footer)
	table.AppendBulk(rows)
	table.Render()
	return nil
}
