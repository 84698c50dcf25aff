package particle

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Range is a closed-open numeric interval [Min, Max) used to randomize burst
// parameters. A fixed value has Min == Max.
type Range struct {
	Min float64
	Max float64
}

// Fixed returns a range that always samples v.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// ParseRange parses a range value.
// Supports two formats:
//   - Fixed value: "100" → min=100, max=100
//   - Range: "[0.85 0.95]" → min=0.85, max=0.95
//
// Returns an error for malformed input or when min > max.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("empty range value")
	}

	// 固定值格式
	if !strings.HasPrefix(s, "[") {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Range{}, fmt.Errorf("invalid range value %q: %w", s, err)
		}
		return Fixed(v), nil
	}

	if !strings.HasSuffix(s, "]") {
		return Range{}, fmt.Errorf("invalid range value %q: missing closing bracket", s)
	}

	// 范围格式 [min max]
	parts := strings.Fields(strings.TrimSuffix(strings.TrimPrefix(s, "["), "]"))
	if len(parts) != 2 {
		return Range{}, fmt.Errorf("invalid range value %q: want [min max]", s)
	}

	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range min %q: %w", parts[0], err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range max %q: %w", parts[1], err)
	}
	if lo > hi {
		return Range{}, fmt.Errorf("invalid range value %q: min > max", s)
	}

	return Range{Min: lo, Max: hi}, nil
}

// UnmarshalYAML accepts either a scalar number or a "[min max]" string.
func (r *Range) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: range must be a scalar or \"[min max]\" string", value.Line)
	}
	parsed, err := ParseRange(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*r = parsed
	return nil
}

// String formats the range in the syntax accepted by ParseRange.
func (r Range) String() string {
	if r.Min == r.Max {
		return strconv.FormatFloat(r.Min, 'g', -1, 64)
	}
	return fmt.Sprintf("[%s %s]",
		strconv.FormatFloat(r.Min, 'g', -1, 64),
		strconv.FormatFloat(r.Max, 'g', -1, 64))
}

// IsFixed reports whether the range always samples the same value.
func (r Range) IsFixed() bool {
	return r.Min == r.Max
}

// Float samples a float uniformly from [Min, Max).
func (r Range) Float(rng *rand.Rand) float64 {
	if r.IsFixed() {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Int samples an integer uniformly from [int(Min), int(Max)).
// A range whose integer bounds collapse returns int(Min) without consuming
// randomness.
func (r Range) Int(rng *rand.Rand) int {
	lo, hi := int(r.Min), int(r.Max)
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo)
}
