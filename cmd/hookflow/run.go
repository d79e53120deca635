package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/delaneyj/hookflow/demo"
	"github.com/delaneyj/hookflow/lifecycle"
	"github.com/delaneyj/hookflow/report"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/urfave/cli/v3"
)

// palette follows the walkthrough's console colours.
var palette = map[lifecycle.Category]text.Colors{
	demo.CategoryRender:     {text.FgHiGreen},
	demo.CategoryState:      {text.FgRed},
	demo.EffectNoDeps:       {text.FgHiRed},
	demo.EffectEmptyDeps:    {text.FgHiCyan},
	demo.EffectWithDep:      {text.FgHiMagenta},
	lifecycle.CategoryTrace: {text.FgHiBlack, text.Italic},
}

// printer writes events as they happen, indented by tree depth.
type printer struct {
	w     io.Writer
	color bool
}

func (p printer) Emit(e lifecycle.Event) {
	line := strings.Repeat("    ", e.Depth) + e.String()
	if colors, ok := palette[e.Category]; ok && p.color {
		line = colors.Sprint(line)
	}
	fmt.Fprintln(p.w, line)
}

func (p printer) header(i int, st demo.Step) {
	line := fmt.Sprintf("-- %d. %s", i+1, st)
	if p.color {
		line = text.Bold.Sprint(line)
	}
	if i > 0 {
		fmt.Fprintln(p.w)
	}
	fmt.Fprintln(p.w, line)
}

func (p printer) outline(s *lifecycle.Scheduler) {
	out, _ := s.Output().(string)
	if s.Root() == nil || out == "" {
		out = "(nothing mounted)\n"
	}
	fmt.Fprint(p.w, "\n"+out)
}

func run(ctx context.Context, cmd *cli.Command) error {
	sc, err := loadScript(cmd)
	if err != nil {
		return err
	}

	p := printer{w: os.Stdout, color: !cmd.Bool(noColorKey)}
	ss := demo.NewSession(append(sessionOptions(cmd),
		lifecycle.WithSink(p),
		lifecycle.WithRenderer(report.Outline{IDs: cmd.Bool(idsKey)}),
	)...)

	withOutline := cmd.Bool(outlineKey)
	err = ss.Play(sc, func(i int, st demo.Step) {
		if withOutline && i > 0 {
			p.outline(ss.Scheduler)
		}
		p.header(i, st)
	})
	if err != nil {
		return err
	}
	if withOutline && len(sc.Steps) > 0 {
		p.outline(ss.Scheduler)
	}
	return nil
}
