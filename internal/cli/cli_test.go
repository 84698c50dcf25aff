package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/embedded"
)

const tinyProfile = `name: tiny
width: 40
height: 30
fps: 5
durationSeconds: 1
spawnInterval: 2
gravity: 0.1
fadeRate: 0.98
count: "[5 10]"
speed: "[1 3]"
decay: "[0.85 0.95]"
originX: "[0.25 0.75]"
originY: "[0.25 0.5]"
mark: segment
strokeWidth: 2
repeat: 2
`

func TestMain(m *testing.M) {
	embedded.Init(os.DirFS("../.."))
	os.Exit(m.Run())
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestProfilesCommand(t *testing.T) {
	out, _, err := execute(t, "profiles")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.True(t, strings.HasPrefix(lines[1], "burst"))
	assert.True(t, strings.HasPrefix(lines[2], "classic"))
	assert.Contains(t, lines[2], "once")
	assert.True(t, strings.HasPrefix(lines[3], "glow"))
	assert.Contains(t, lines[3], "3840x2160")
}

func TestRenderCommand_PNGFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "tiny.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(tinyProfile), 0o644))
	outDir := filepath.Join(dir, "render")

	out, stderr, err := execute(t, "render", "--config", cfg, "--output-dir", outDir, "--format", "png", "--seed", "5", "--repeat", "1")
	require.NoError(t, err)

	paths := strings.Fields(out)
	require.Len(t, paths, 1)
	assert.Equal(t, outDir, filepath.Dir(paths[0]))

	entries, err := os.ReadDir(paths[0])
	require.NoError(t, err)
	assert.Len(t, entries, 5)

	assert.Contains(t, stderr, "starting render")
	assert.Contains(t, stderr, "video saved")
}

func TestRenderCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown profile", []string{"render", "--profile", "sparkler"}, config.ErrUnknownProfile.Error()},
		{"missing config", []string{"render", "--config", "/nonexistent/profile.yaml"}, "failed to read profile"},
		{"bad format", []string{"render", "--profile", "classic", "--format", "gif"}, "unknown output format"},
		{"negative repeat", []string{"render", "--profile", "classic", "--repeat", "-1"}, "repeat must not be negative"},
		{"extra args", []string{"render", "now"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, append(tt.args, "--output-dir", t.TempDir())...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRenderCommand_HelpDescribesNaming(t *testing.T) {
	out, _, err := execute(t, "render", "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "<output-dir>/<epoch>.mp4")
	assert.Contains(t, out, "next free second")
}
