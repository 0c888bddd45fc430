package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/xvierd/pomo-cli/internal/domain"
)

func seedExport(t *testing.T, env *testEnv) {
	t.Helper()
	_, err := env.run("task", "add", "Export me", "-e", "2")
	require.NoError(t, err)
	_, err = env.run("task", "select", "Export me")
	require.NoError(t, err)
	_, err = env.run("settings", "set", "--focus", "30")
	require.NoError(t, err)
}

func TestExportCmd_JSON(t *testing.T) {
	env := newTestEnv(t)
	seedExport(t, env)

	out, err := env.run("export")
	require.NoError(t, err)

	var state domain.AppState
	require.NoError(t, json.Unmarshal([]byte(out), &state))
	assert.Equal(t, 30, state.Settings.FocusDuration)
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, "Export me", state.Tasks[0].Title)
	assert.Equal(t, state.Tasks[0].ID, state.ActiveTaskID)
	assert.NotEmpty(t, state.Weekly.WeekStartDate)
}

func TestExportCmd_YAML(t *testing.T) {
	env := newTestEnv(t)
	seedExport(t, env)

	out, err := env.run("export", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "focusDuration: 30")

	var state domain.AppState
	require.NoError(t, yaml.Unmarshal([]byte(out), &state))
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, 2, state.Tasks[0].EstimatedPomodoros)
}

func TestExportCmd_CSV(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("export", "-f", "csv")
	require.NoError(t, err)
	assert.Equal(t, "date,focus_minutes,pomodoros_completed", strings.TrimSpace(out))
}

func TestExportCmd_Raw(t *testing.T) {
	env := newTestEnv(t)
	seedExport(t, env)

	out, err := env.run("export", "--raw")
	require.NoError(t, err)

	var dump map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &dump))
	for _, key := range []string{"pomodoro-tasks", "pomodoro-settings", "pomodoro-active-task"} {
		assert.Contains(t, dump, key)
	}
}

func TestExportCmd_UnknownFormat(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("export", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}
