package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/decker502/fireworks/internal/particle"
	"github.com/decker502/fireworks/pkg/embedded"
)

// profileYAML renders a valid test profile with the given keys replaced
func profileYAML(t *testing.T, overrides map[string]any) []byte {
	t.Helper()
	doc := map[string]any{
		"name":            "test",
		"width":           320,
		"height":          180,
		"fps":             30,
		"durationSeconds": 2,
		"spawnInterval":   30,
		"gravity":         0.1,
		"fadeRate":        0.98,
		"count":           "[50 150]",
		"speed":           "[5 15]",
		"decay":           "[0.85 0.95]",
		"originX":         "[0.25 0.75]",
		"originY":         "[0.25 0.5]",
		"mark":            "segment",
		"strokeWidth":     2,
		"trail":           true,
		"trailAlpha":      0.05,
		"glow":            true,
		"glowKernel":      21,
	}
	for k, v := range overrides {
		doc[k] = v
	}
	data, err := yaml.Marshal(doc)
	require.NoError(t, err)
	return data
}

func TestParseProfile(t *testing.T) {
	tests := []struct {
		name        string
		overrides   map[string]any
		raw         string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *Profile)
	}{
		{
			name: "valid profile",
			validate: func(t *testing.T, p *Profile) {
				assert.Equal(t, "test", p.Name)
				assert.Equal(t, 60, p.TotalFrames())
				assert.Equal(t, particle.Range{Min: 50, Max: 150}, p.Count)
				assert.Equal(t, particle.Range{Min: 0.85, Max: 0.95}, p.Decay)
				assert.Equal(t, MarkSegment, p.Mark)
				assert.Equal(t, "mpeg4", p.Codec, "codec defaults to mpeg4")
				assert.Equal(t, 1, p.Repeat, "repeat defaults to 1")
				assert.True(t, p.Glow)
				assert.Equal(t, 21, p.GlowKernel)
			},
		},
		{
			name:        "unknown field",
			overrides:   map[string]any{"sparkle": true},
			wantErr:     true,
			errContains: "sparkle",
		},
		{
			name:        "zero width",
			overrides:   map[string]any{"width": 0},
			wantErr:     true,
			errContains: "frame size",
		},
		{
			name:        "even glow kernel",
			overrides:   map[string]any{"glowKernel": 20},
			wantErr:     true,
			errContains: "glow kernel",
		},
		{
			name:        "decay above one",
			overrides:   map[string]any{"decay": "[0.9 1.2]"},
			wantErr:     true,
			errContains: "decay",
		},
		{
			name:        "inverted range",
			overrides:   map[string]any{"speed": "[15 5]"},
			wantErr:     true,
			errContains: "min > max",
		},
		{
			name:        "origin outside canvas",
			overrides:   map[string]any{"originX": "[0.5 1.5]"},
			wantErr:     true,
			errContains: "origin",
		},
		{
			name:        "unknown mark",
			overrides:   map[string]any{"mark": "star"},
			wantErr:     true,
			errContains: "mark kind",
		},
		{
			name:        "circle without radius",
			overrides:   map[string]any{"mark": "circle"},
			wantErr:     true,
			errContains: "radius",
		},
		{
			name:        "trail alpha of one",
			overrides:   map[string]any{"trailAlpha": 1},
			wantErr:     true,
			errContains: "trail alpha",
		},
		{
			name:        "empty document",
			raw:         " ",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(tt.raw)
			if tt.raw == "" {
				data = profileYAML(t, tt.overrides)
			}
			p, err := ParseProfile(data)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(file, profileYAML(t, nil), 0o644))

	p, err := LoadProfile(file)
	require.NoError(t, err)
	assert.Equal(t, "test", p.Name)

	_, err = LoadProfile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestBuiltinProfiles(t *testing.T) {
	embedded.Init(os.DirFS(filepath.Join("..", "..")))

	names, err := BuiltinProfileNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"burst", "classic", "glow"}, names)

	classic, err := LoadBuiltinProfile("classic")
	require.NoError(t, err)
	assert.Equal(t, MarkCircle, classic.Mark)
	assert.Equal(t, 0, classic.SpawnInterval)
	assert.Equal(t, particle.Fixed(100), classic.Count)
	assert.Equal(t, 1.0, classic.FadeRate)
	assert.Equal(t, 3600, classic.TotalFrames())
	assert.False(t, classic.Trail)

	burst, err := LoadBuiltinProfile("burst")
	require.NoError(t, err)
	assert.Equal(t, 30, burst.SpawnInterval)
	assert.Equal(t, 0.98, burst.FadeRate)
	assert.False(t, burst.Glow)

	glow, err := LoadBuiltinProfile("glow")
	require.NoError(t, err)
	assert.Equal(t, 3840, glow.Width)
	assert.Equal(t, 2160, glow.Height)
	assert.Equal(t, 216000, glow.TotalFrames())
	assert.True(t, glow.Trail)
	assert.Equal(t, 0.05, glow.TrailAlpha)
	assert.Equal(t, 21, glow.GlowKernel)
	assert.Equal(t, 10, glow.Repeat)

	_, err = LoadBuiltinProfile("sparkler")
	assert.ErrorIs(t, err, ErrUnknownProfile)
}
