package utils

import (
	"image"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// GaussianSigma returns the standard deviation used for a kernel of the given
// size when none is specified: 0.3*((size-1)*0.5-1)+0.8.
func GaussianSigma(size int) float64 {
	return 0.3*(float64(size-1)*0.5-1) + 0.8
}

// GaussianKernel returns a normalized 1-D Gaussian kernel of odd length size.
func GaussianKernel(size int) []float32 {
	sigma := GaussianSigma(size)
	radius := size / 2
	weights := make([]float64, size)
	sum := 0.0
	for i := range weights {
		d := float64(i - radius)
		weights[i] = math.Exp(-(d * d) / (2 * sigma * sigma))
		sum += weights[i]
	}

	kernel := make([]float32, size)
	for i, w := range weights {
		kernel[i] = float32(w / sum)
	}
	return kernel
}

// reflect101 maps an out-of-range index back into [0, n) by mirroring around
// the edge pixels without repeating them (dcb|abcdefgh|gfe).
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*n - 2 - i
		}
	}
	return i
}

// GaussianBlur is a separable Gaussian filter over the RGB channels of an
// opaque RGBA image. It keeps its intermediate buffer between calls so that a
// per-frame blur does not reallocate.
//
// Rows are processed in horizontal bands on separate goroutines; each output
// pixel depends only on the input, so the result is identical to a
// sequential pass.
type GaussianBlur struct {
	size   int
	kernel []float32
	tmp    []float32
	bands  int
}

// NewGaussianBlur creates a blur with a size×size kernel. size must be odd.
func NewGaussianBlur(size int) *GaussianBlur {
	return &GaussianBlur{
		size:   size,
		kernel: GaussianKernel(size),
		bands:  runtime.GOMAXPROCS(0),
	}
}

// Size returns the kernel size.
func (g *GaussianBlur) Size() int {
	return g.size
}

// Apply blurs src into dst. Both images must have identical bounds and must
// not alias each other. dst alpha is set opaque.
func (g *GaussianBlur) Apply(dst, src *image.RGBA) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	if cap(g.tmp) < w*h*3 {
		g.tmp = make([]float32, w*h*3)
	}
	tmp := g.tmp[:w*h*3]

	g.forBands(h, func(y0, y1 int) {
		g.horizontal(tmp, src, w, y0, y1)
	})
	g.forBands(h, func(y0, y1 int) {
		g.vertical(dst, tmp, w, h, y0, y1)
	})
}

// forBands splits [0,h) into row bands and runs fn on each concurrently
func (g *GaussianBlur) forBands(h int, fn func(y0, y1 int)) {
	bands := g.bands
	if bands < 1 {
		bands = 1
	}
	if bands > h {
		bands = h
	}
	step := (h + bands - 1) / bands

	var eg errgroup.Group
	for y0 := 0; y0 < h; y0 += step {
		y0, y1 := y0, min(y0+step, h)
		eg.Go(func() error {
			fn(y0, y1)
			return nil
		})
	}
	_ = eg.Wait()
}

// horizontal convolves rows [y0,y1) of src into tmp (3 floats per pixel)
func (g *GaussianBlur) horizontal(tmp []float32, src *image.RGBA, w, y0, y1 int) {
	radius := g.size / 2
	for y := y0; y < y1; y++ {
		row := src.Pix[y*src.Stride:]
		out := tmp[y*w*3:]
		for x := 0; x < w; x++ {
			var r, gr, bl float32
			for k, weight := range g.kernel {
				sx := reflect101(x+k-radius, w) * 4
				r += weight * float32(row[sx+0])
				gr += weight * float32(row[sx+1])
				bl += weight * float32(row[sx+2])
			}
			out[x*3+0] = r
			out[x*3+1] = gr
			out[x*3+2] = bl
		}
	}
}

// vertical convolves columns of tmp into rows [y0,y1) of dst
func (g *GaussianBlur) vertical(dst *image.RGBA, tmp []float32, w, h, y0, y1 int) {
	radius := g.size / 2
	for y := y0; y < y1; y++ {
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			var r, gr, bl float32
			for k, weight := range g.kernel {
				sy := reflect101(y+k-radius, h)
				i := (sy*w + x) * 3
				r += weight * tmp[i+0]
				gr += weight * tmp[i+1]
				bl += weight * tmp[i+2]
			}
			row[x*4+0] = roundChannel(r)
			row[x*4+1] = roundChannel(gr)
			row[x*4+2] = roundChannel(bl)
			row[x*4+3] = 0xff
		}
	}
}

// roundChannel rounds a filtered value to the nearest 8-bit channel value
func roundChannel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
