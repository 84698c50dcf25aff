package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/decker502/fireworks/internal/particle"
	"github.com/decker502/fireworks/pkg/embedded"
)

// ProfileDir is the embedded directory holding the built-in render profiles.
const ProfileDir = "data/profiles"

// ErrUnknownProfile is returned when a built-in profile name does not exist.
var ErrUnknownProfile = errors.New("unknown profile")

// MarkKind selects how a particle is drawn.
type MarkKind string

const (
	// MarkCircle draws a filled circle at the particle position, color unmodified.
	MarkCircle MarkKind = "circle"
	// MarkSegment draws a stroke from the previous to the current position,
	// color scaled by the burst alpha.
	MarkSegment MarkKind = "segment"
)

// Profile is a complete render configuration for one firework variant.
//
// Built-in profiles live in data/profiles/*.yaml and are embedded into the
// binary; LoadProfile reads the same format from disk.
type Profile struct {
	// Name identifies the profile (classic, burst, glow)
	Name string `yaml:"name"`

	// Output frame geometry and timing
	Width           int    `yaml:"width"`
	Height          int    `yaml:"height"`
	FPS             int    `yaml:"fps"`
	DurationSeconds int    `yaml:"durationSeconds"`
	Codec           string `yaml:"codec"`

	// SpawnInterval spawns one burst every N frames. 0 spawns a single burst
	// on frame 0 only.
	SpawnInterval int `yaml:"spawnInterval"`

	// Integrator constants
	Gravity  float64 `yaml:"gravity"`
	FadeRate float64 `yaml:"fadeRate"`

	// Burst parameter ranges, sampled uniformly from [min, max)
	Count particle.Range `yaml:"count"`
	Speed particle.Range `yaml:"speed"`
	Decay particle.Range `yaml:"decay"`

	// Origin bounds as fractions of the canvas size
	OriginX particle.Range `yaml:"originX"`
	OriginY particle.Range `yaml:"originY"`

	// Rasterization
	Mark        MarkKind `yaml:"mark"`
	MarkRadius  float64  `yaml:"markRadius"`
	StrokeWidth float64  `yaml:"strokeWidth"`

	// Compositing
	Trail      bool    `yaml:"trail"`
	TrailAlpha float64 `yaml:"trailAlpha"`
	Glow       bool    `yaml:"glow"`
	GlowKernel int     `yaml:"glowKernel"`

	// Prune drops inert bursts instead of keeping them for the whole run
	Prune bool `yaml:"prune"`

	// Repeat renders the whole run this many times, one file each
	Repeat int `yaml:"repeat"`
}

// TotalFrames returns the number of frames in one run (fps × duration).
func (p *Profile) TotalFrames() int {
	return p.FPS * p.DurationSeconds
}

// ParseProfile decodes and validates a profile document.
// Unknown keys are rejected so that typos do not silently fall back to zero values.
func ParseProfile(data []byte) (*Profile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	// 拒绝未知字段，防止拼写错误被静默忽略
	dec.KnownFields(true)

	var p Profile
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	// 填充默认值后再校验
	p.applyDefaults()

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %q: %w", p.Name, err)
	}

	return &p, nil
}

// LoadProfile loads a profile from a YAML file on disk.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return ParseProfile(data)
}

// LoadBuiltinProfile loads one of the embedded profiles by name.
func LoadBuiltinProfile(name string) (*Profile, error) {
	file := path.Join(ProfileDir, name+".yaml")
	// 内置配置不存在时返回哨兵错误，便于调用方用 errors.Is 判断
	if !embedded.Exists(file) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}

	data, err := embedded.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", name, err)
	}
	return ParseProfile(data)
}

// BuiltinProfileNames lists the embedded profile names in sorted order.
func BuiltinProfileNames() ([]string, error) {
	files, err := embedded.Glob(path.Join(ProfileDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(path.Base(f), ".yaml"))
	}
	// 排序保证输出稳定
	sort.Strings(names)
	return names, nil
}

// applyDefaults fills fields that a profile may omit
func (p *Profile) applyDefaults() {
	// 默认编码器与原始脚本一致
	if p.Codec == "" {
		p.Codec = "mpeg4"
	}
	if p.Mark == "" {
		p.Mark = MarkSegment
	}
	if p.FadeRate == 0 {
		p.FadeRate = 1.0
	}
	if p.Repeat == 0 {
		p.Repeat = 1
	}
}

// Validate checks that all values are usable:
//   - geometry, fps and duration are positive
//   - decay and fade rate lie in (0, 1]
//   - every range has min <= max, origin fractions lie in [0, 1]
//   - the glow kernel is a positive odd size
//
// Returns nil on success.
func (p *Profile) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("frame size must be positive, got %dx%d", p.Width, p.Height)
	}
	if p.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", p.FPS)
	}
	if p.DurationSeconds <= 0 {
		return fmt.Errorf("duration must be positive, got %d", p.DurationSeconds)
	}
	if p.SpawnInterval < 0 {
		return fmt.Errorf("spawn interval must not be negative, got %d", p.SpawnInterval)
	}
	if p.Repeat < 1 {
		return fmt.Errorf("repeat must be at least 1, got %d", p.Repeat)
	}

	// 校验所有随机范围
	ranges := []struct {
		name string
		r    particle.Range
	}{
		{"count", p.Count},
		{"speed", p.Speed},
		{"decay", p.Decay},
		{"originX", p.OriginX},
		{"originY", p.OriginY},
	}
	for _, nr := range ranges {
		if nr.r.Min > nr.r.Max {
			return fmt.Errorf("%s range invalid: min(%g) > max(%g)", nr.name, nr.r.Min, nr.r.Max)
		}
	}

	if p.Count.Min < 1 {
		return fmt.Errorf("count must be at least 1, got %s", p.Count)
	}
	if p.Decay.Min <= 0 || p.Decay.Max > 1 {
		return fmt.Errorf("decay must lie in (0, 1], got %s", p.Decay)
	}
	if p.FadeRate <= 0 || p.FadeRate > 1 {
		return fmt.Errorf("fade rate must lie in (0, 1], got %g", p.FadeRate)
	}
	if p.OriginX.Min < 0 || p.OriginX.Max > 1 || p.OriginY.Min < 0 || p.OriginY.Max > 1 {
		return fmt.Errorf("origin fractions must lie in [0, 1], got x=%s y=%s", p.OriginX, p.OriginY)
	}

	// 标记类型及其尺寸
	switch p.Mark {
	case MarkCircle:
		if p.MarkRadius <= 0 {
			return fmt.Errorf("circle radius must be positive, got %g", p.MarkRadius)
		}
	case MarkSegment:
		if p.StrokeWidth <= 0 {
			return fmt.Errorf("stroke width must be positive, got %g", p.StrokeWidth)
		}
	default:
		return fmt.Errorf("unknown mark kind %q", p.Mark)
	}

	// 合成参数：拖尾透明度和辉光核大小
	if p.Trail && (p.TrailAlpha <= 0 || p.TrailAlpha >= 1) {
		return fmt.Errorf("trail alpha must lie in (0, 1), got %g", p.TrailAlpha)
	}
	if p.Glow && (p.GlowKernel <= 0 || p.GlowKernel%2 == 0) {
		return fmt.Errorf("glow kernel must be a positive odd size, got %d", p.GlowKernel)
	}

	return nil
}
