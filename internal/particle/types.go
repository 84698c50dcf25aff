// Package particle provides the firework burst data model and the range
// values used to randomize burst parameters.
package particle

import (
	"image/color"
	"math"
)

// Burst is one firework burst: a fixed-size batch of particles that share a
// spawn frame, an origin, a velocity decay and a fade alpha.
//
// Particles are stored as parallel slices (struct of arrays). Index i across
// every slice describes particle i; all slices have the same length, fixed at
// spawn time.
type Burst struct {
	// Position
	X []float64
	Y []float64

	// Position before the most recent step, used for segment marks
	PrevX []float64
	PrevY []float64

	// Velocity in pixels per frame
	VX []float64
	VY []float64

	// Colors are fixed at spawn. Rendered intensity is scaled by Alpha.
	Colors []color.RGBA

	// Decay damps velocity each step, shared by all particles
	Decay float64

	// Alpha starts at 1.0 and is multiplied by the fade rate each step
	Alpha float64

	OriginX    float64
	OriginY    float64
	SpawnFrame int
}

// BurstAngle returns the launch angle of particle i in a burst of n
// particles. Angles are evenly spaced over [0, 2π).
func BurstAngle(i, n int) float64 {
	return 2 * math.Pi * float64(i) / float64(n)
}

// NewBurst creates a burst at (originX, originY). Particle i launches with
// speeds[i] along BurstAngle(i, len(speeds)) and keeps colors[i] for its
// lifetime. colors must have the same length as speeds.
func NewBurst(originX, originY float64, speeds []float64, colors []color.RGBA, decay float64, spawnFrame int) *Burst {
	n := len(speeds)
	b := &Burst{
		X:          make([]float64, n),
		Y:          make([]float64, n),
		PrevX:      make([]float64, n),
		PrevY:      make([]float64, n),
		VX:         make([]float64, n),
		VY:         make([]float64, n),
		Colors:     colors,
		Decay:      decay,
		Alpha:      1.0,
		OriginX:    originX,
		OriginY:    originY,
		SpawnFrame: spawnFrame,
	}

	for i, speed := range speeds {
		// 角度在 [0, 2π) 上均匀分布
		angle := BurstAngle(i, n)
		b.X[i] = originX
		b.Y[i] = originY
		b.PrevX[i] = originX
		b.PrevY[i] = originY
		b.VX[i] = math.Cos(angle) * speed
		b.VY[i] = math.Sin(angle) * speed
	}

	return b
}

// Len returns the number of particles in the burst.
func (b *Burst) Len() int {
	return len(b.X)
}

// InBounds reports whether particle i currently lies inside [0,width)×[0,height).
func (b *Burst) InBounds(i, width, height int) bool {
	x, y := b.X[i], b.Y[i]
	return x >= 0 && x < float64(width) && y >= 0 && y < float64(height)
}

// Inert reports whether the burst can no longer contribute visibly to a
// canvas of the given height: either its alpha fell below epsilon, or every
// particle is below the canvas and not moving up.
func (b *Burst) Inert(height int, epsilon float64) bool {
	if b.Alpha < epsilon {
		return true
	}
	for i := range b.Y {
		if b.Y[i] < float64(height) || b.VY[i] < 0 {
			return false
		}
	}
	return true
}
