package systems

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/decker502/fireworks/internal/particle"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/utils"
)

// kappa is the cubic Bézier control distance for a quarter circle of radius 1
const kappa = 0.5522847498

// RenderSystem rasterizes particles onto the working canvas.
//
// Each mark is rendered into a coverage mask sized to its own bounding box
// and then composited source-over onto the canvas, so pixels fully inside a
// mark take its color exactly and marks crossing the canvas edge are
// clipped. Particles whose current position is outside the canvas are
// skipped entirely.
type RenderSystem struct {
	Mark        config.MarkKind
	Radius      float64
	StrokeWidth float64

	z    vector.Rasterizer
	mask image.Alpha
	src  image.Uniform
}

// NewRenderSystem creates a RenderSystem for the profile's mark settings.
func NewRenderSystem(profile *config.Profile) *RenderSystem {
	return &RenderSystem{
		Mark:        profile.Mark,
		Radius:      profile.MarkRadius,
		StrokeWidth: profile.StrokeWidth,
	}
}

// Update draws every in-bounds particle of every burst onto Buffers.Frame.
func (rs *RenderSystem) Update(rc *game.RenderContext) {
	dst := rc.Buffers.Frame
	for _, b := range rc.Bursts {
		rs.DrawBurst(dst, b)
	}
}

// DrawBurst draws one burst onto dst.
func (rs *RenderSystem) DrawBurst(dst *image.RGBA, b *particle.Burst) {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()

	for i := range b.X {
		// 画布外的粒子不绘制，但仍然保留
		if !b.InBounds(i, w, h) {
			continue
		}

		// 截断取整，与逐帧绘制的像素坐标一致
		x, y := int(b.X[i]), int(b.Y[i])

		switch rs.Mark {
		case config.MarkCircle:
			rs.DrawCircle(dst, x, y, rs.Radius, b.Colors[i])
		case config.MarkSegment:
			// 线段颜色按透明度缩放，圆形保持原色
			c := b.Colors[i]
			faded := color.RGBA{
				R: utils.ScaleChannel(c.R, b.Alpha),
				G: utils.ScaleChannel(c.G, b.Alpha),
				B: utils.ScaleChannel(c.B, b.Alpha),
				A: 0xff,
			}
			rs.DrawSegment(dst, int(b.PrevX[i]), int(b.PrevY[i]), x, y, rs.StrokeWidth, faded)
		}
	}
}

// DrawCircle fills a circle of radius r centered on pixel (cx, cy).
func (rs *RenderSystem) DrawCircle(dst *image.RGBA, cx, cy int, r float64, c color.RGBA) {
	// pixel centers sit at +0.5
	fx, fy := float64(cx)+0.5, float64(cy)+0.5
	bounds := markBounds(fx-r, fy-r, fx+r, fy+r)

	rs.begin(bounds)
	rs.circlePath(fx-float64(bounds.Min.X), fy-float64(bounds.Min.Y), r)
	rs.composite(dst, bounds, c)
}

// DrawSegment strokes a line of the given width from pixel (x0, y0) to pixel
// (x1, y1) with round caps. A zero-length segment draws a dot.
func (rs *RenderSystem) DrawSegment(dst *image.RGBA, x0, y0, x1, y1 int, width float64, c color.RGBA) {
	hw := width / 2
	ax, ay := float64(x0)+0.5, float64(y0)+0.5
	bx, by := float64(x1)+0.5, float64(y1)+0.5
	bounds := markBounds(math.Min(ax, bx)-hw, math.Min(ay, by)-hw, math.Max(ax, bx)+hw, math.Max(ay, by)+hw)

	ox, oy := float64(bounds.Min.X), float64(bounds.Min.Y)
	ax, ay, bx, by = ax-ox, ay-oy, bx-ox, by-oy

	rs.begin(bounds)

	if dx, dy := bx-ax, by-ay; dx != 0 || dy != 0 {
		l := math.Hypot(dx, dy)
		nx, ny := -dy/l*hw, dx/l*hw

		// wound the same way as circlePath so overlapping coverage adds up
		rs.z.MoveTo(float32(ax-nx), float32(ay-ny))
		rs.z.LineTo(float32(bx-nx), float32(by-ny))
		rs.z.LineTo(float32(bx+nx), float32(by+ny))
		rs.z.LineTo(float32(ax+nx), float32(ay+ny))
		rs.z.ClosePath()
		rs.circlePath(bx, by, hw)
	}
	rs.circlePath(ax, ay, hw)

	rs.composite(dst, bounds, c)
}

// markBounds returns the integer pixel rectangle covering a float box
func markBounds(x0, y0, x1, y1 float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(x0)), int(math.Floor(y0)),
		int(math.Ceil(x1)), int(math.Ceil(y1)),
	)
}

// begin resets the rasterizer and mask for a mark covering bounds
func (rs *RenderSystem) begin(bounds image.Rectangle) {
	w, h := bounds.Dx(), bounds.Dy()
	rs.z.Reset(w, h)
	rs.z.DrawOp = draw.Src

	// 复用蒙版缓冲区，避免每个标记都分配内存
	if cap(rs.mask.Pix) < w*h {
		rs.mask.Pix = make([]uint8, w*h)
	}
	rs.mask.Pix = rs.mask.Pix[:w*h]
	rs.mask.Stride = w
	rs.mask.Rect = image.Rect(0, 0, w, h)
}

// circlePath adds a closed circle to the current path, traced with
// increasing angle
func (rs *RenderSystem) circlePath(cx, cy, r float64) {
	rs.z.MoveTo(float32(cx+r), float32(cy))
	for q := 0; q < 4; q++ {
		a0 := float64(q) * math.Pi / 2
		a1 := a0 + math.Pi/2
		s0, c0 := math.Sincos(a0)
		s1, c1 := math.Sincos(a1)
		rs.z.CubeTo(
			float32(cx+r*(c0-kappa*s0)), float32(cy+r*(s0+kappa*c0)),
			float32(cx+r*(c1+kappa*s1)), float32(cy+r*(s1-kappa*c1)),
			float32(cx+r*c1), float32(cy+r*s1),
		)
	}
	rs.z.ClosePath()
}

// composite rasterizes the current path into the mask and paints c through
// it onto dst at bounds. draw.DrawMask clips against dst.
func (rs *RenderSystem) composite(dst *image.RGBA, bounds image.Rectangle, c color.RGBA) {
	// 先生成覆盖率蒙版，再以 Over 方式合成到画布
	rs.z.Draw(&rs.mask, rs.mask.Rect, image.Opaque, image.Point{})

	rs.src.C = c
	draw.DrawMask(dst, bounds, &rs.src, image.Point{}, &rs.mask, image.Point{}, draw.Over)
}
