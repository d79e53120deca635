package demo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/delaneyj/hookflow/demo"
	"github.com/delaneyj/hookflow/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultScript(t *testing.T) {
	sc, err := demo.DefaultScript()
	require.NoError(t, err)
	assert.Equal(t, "hook flow", sc.Name)
	require.Len(t, sc.Steps, 5)
	assert.Equal(t, demo.ActionMount, sc.Steps[0].Action)
	assert.Equal(t, "toggle true (show the child)", sc.Steps[1].String())
}

func TestPlayDefaultScript(t *testing.T) {
	sc, err := demo.DefaultScript()
	require.NoError(t, err)

	ss := demo.NewSession()
	var seen []int
	require.NoError(t, ss.Play(sc, func(i int, st demo.Step) { seen = append(seen, i) }))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, seen)
	require.Len(t, ss.Steps, 5)

	assert.Len(t, ss.Steps[0].Events, 6)
	assert.Len(t, ss.Steps[1].Events, 12)
	assert.Len(t, ss.Steps[2].Events, 6)
	assert.Len(t, ss.Steps[3].Events, 9)
	assert.Len(t, ss.Steps[4].Events, 3)

	total := 0
	for _, st := range ss.Steps {
		total += len(st.Events)
	}
	assert.Equal(t, ss.Recorder.Len(), total)
	assert.Nil(t, ss.Scheduler.Root())
}

func TestParseScript(t *testing.T) {
	sc, err := demo.ParseScript([]byte(`
steps:
  - action: mount
  - action: toggle
  - action: click
    times: 3
  - action: toggle
`))
	require.NoError(t, err)
	assert.Equal(t, "untitled", sc.Name)
	assert.Equal(t, "click x3", sc.Steps[2].String())

	ss := demo.NewSession()
	require.NoError(t, ss.Play(sc, nil))

	// the bare toggles flip the box on and then off again
	app, err := demo.AppOf(ss.Scheduler)
	require.NoError(t, err)
	assert.False(t, app.ShowChild)
	assert.Len(t, ss.Steps[2].Events, 18)
}

func TestParseScriptRejectsUnknownActions(t *testing.T) {
	_, err := demo.ParseScript([]byte("steps:\n  - action: dance\n"))
	assert.ErrorIs(t, err, demo.ErrUnknownAction)

	_, err = demo.ParseScript([]byte("steps:\n  - action: click\n    times: -1\n"))
	assert.Error(t, err)

	_, err = demo.ParseScript([]byte("steps: [\n"))
	assert.Error(t, err)
}

func TestClickWithoutChildFails(t *testing.T) {
	sc, err := demo.ParseScript([]byte("steps:\n  - action: mount\n  - action: click\n"))
	require.NoError(t, err)

	ss := demo.NewSession()
	err = ss.Play(sc, nil)
	assert.ErrorIs(t, err, lifecycle.ErrNoChild)
	assert.Len(t, ss.Steps, 2)
}

func TestToggleBeforeMountFails(t *testing.T) {
	sc, err := demo.ParseScript([]byte("steps:\n  - action: toggle\n"))
	require.NoError(t, err)
	assert.ErrorIs(t, demo.NewSession().Play(sc, nil), lifecycle.ErrNotMounted)
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: tiny\nsteps:\n  - action: mount\n"), 0o644))

	sc, err := demo.LoadScript(path)
	require.NoError(t, err)
	assert.Equal(t, "tiny", sc.Name)

	_, err = demo.LoadScript(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
