package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetCmd(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("task", "add", "Doomed")
	require.NoError(t, err)

	rootCmd.SetIn(strings.NewReader("no\n"))
	out, err := env.run("reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Erase all pomo data in")
	assert.Contains(t, out, "Kept everything.")
	_, statErr := os.Stat(env.dbPath)
	require.NoError(t, statErr, "database should survive a declined reset")

	rootCmd.SetIn(strings.NewReader("y\n"))
	out, err = env.run("reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Erased pomo data")
	_, statErr = os.Stat(env.dbPath)
	assert.True(t, os.IsNotExist(statErr))

	out, err = env.run("reset", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "No pomo data at")

	var tasks []taskJSON
	env.runJSON(&tasks, "task", "list")
	assert.Empty(t, tasks)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" yes \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yep\n", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		if got := confirm(strings.NewReader(tt.input), &out, "Sure? "); got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if out.String() != "Sure? " {
			t.Errorf("confirm() wrote %q, want the question", out.String())
		}
	}
}
