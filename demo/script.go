package demo

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/delaneyj/hookflow/lifecycle"
	"gopkg.in/yaml.v3"
)

//go:embed scenarios/hookflow.yaml
var defaultScript []byte

const (
	ActionMount   = "mount"
	ActionToggle  = "toggle"
	ActionClick   = "click"
	ActionUnmount = "unmount"
)

var ErrUnknownAction = errors.New("unknown action")

// Step is one user interaction. Value applies to toggle; without it the
// checkbox flips. Times applies to click and defaults to one.
type Step struct {
	Action string `yaml:"action"`
	Value  *bool  `yaml:"value,omitempty"`
	Times  int    `yaml:"times,omitempty"`
	Note   string `yaml:"note,omitempty"`
}

func (st Step) String() string {
	label := st.Action
	switch {
	case st.Action == ActionToggle && st.Value != nil:
		label = fmt.Sprintf("%s %t", st.Action, *st.Value)
	case st.Action == ActionClick && st.Times > 1:
		label = fmt.Sprintf("%s x%d", st.Action, st.Times)
	}
	if st.Note != "" {
		label += " (" + st.Note + ")"
	}
	return label
}

type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// DefaultScript is the walkthrough: mount, show, click, hide, unmount.
func DefaultScript() (*Script, error) {
	return ParseScript(defaultScript)
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	sc, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

func ParseScript(data []byte) (*Script, error) {
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case ActionMount, ActionToggle, ActionClick, ActionUnmount:
		default:
			return nil, fmt.Errorf("step %d: %w %q", i+1, ErrUnknownAction, st.Action)
		}
		if st.Times < 0 {
			return nil, fmt.Errorf("step %d: negative times", i+1)
		}
	}
	if sc.Name == "" {
		sc.Name = "untitled"
	}
	return &sc, nil
}

// Apply performs the step against s and flushes.
func (st Step) Apply(s *lifecycle.Scheduler) error {
	switch st.Action {
	case ActionMount:
		if _, err := s.Mount(App); err != nil {
			return err
		}
	case ActionUnmount:
		if err := s.Unmount(); err != nil {
			return err
		}
	case ActionToggle:
		app, err := AppOf(s)
		if err != nil {
			return err
		}
		show := !app.ShowChild
		if st.Value != nil {
			show = *st.Value
		}
		if err := app.Toggle(show); err != nil {
			return err
		}
	case ActionClick:
		times := st.Times
		if times == 0 {
			times = 1
		}
		// clicks land one at a time, each flushed before the next
		for i := 0; i < times; i++ {
			child, err := ChildOf(s)
			if err != nil {
				return err
			}
			if err := child.Click(); err != nil {
				return err
			}
			if err := s.Flush(); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w %q", ErrUnknownAction, st.Action)
	}
	return s.Flush()
}
