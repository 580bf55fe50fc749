// Package render turns decoded temperature grids into color-mapped display
// frames with detection overlays.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/banshee-data/seatsense/internal/mlx90640"
	"github.com/banshee-data/seatsense/internal/thermal"
)

// Overlay geometry, sized for a 160x120 panel.
const (
	markerSize    = 22 // side of the filled marker rectangles
	textScale     = 2
	centerAnchorY = 80 // fixed y anchor of the center-pixel overlay
)

var (
	markerColor = color.RGBA{R: 0xFF, G: 112, B: 0xFF, A: 0xFF}
	textColor   = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// Renderer produces one display frame per cycle. It holds only immutable
// configuration; every Render call allocates a fresh output image that the
// display consumes within the cycle.
type Renderer struct {
	displayW int
	displayH int
	scaleX   int
	scaleY   int
	colors   [paletteSize]color.RGBA
}

// NewRenderer creates a renderer targeting a displayW x displayH panel. The
// display dimensions must be positive integer multiples of the sensor grid so
// sensor-to-display coordinate mapping stays linear and lossless.
func NewRenderer(displayW, displayH int) (*Renderer, error) {
	if displayW <= 0 || displayH <= 0 {
		return nil, fmt.Errorf("display size %dx%d not positive", displayW, displayH)
	}
	if displayW%mlx90640.Width != 0 || displayH%mlx90640.Height != 0 {
		return nil, fmt.Errorf("display size %dx%d not a multiple of sensor grid %dx%d",
			displayW, displayH, mlx90640.Width, mlx90640.Height)
	}
	return &Renderer{
		displayW: displayW,
		displayH: displayH,
		scaleX:   displayW / mlx90640.Width,
		scaleY:   displayH / mlx90640.Height,
		colors:   heatPalette(),
	}, nil
}

// DisplayCoord maps a sensor-space pixel to its top-left display coordinate.
func (r *Renderer) DisplayCoord(p image.Point) image.Point {
	return image.Pt(p.X*r.scaleX, p.Y*r.scaleY)
}

// Render normalizes the grid against the frame's clamped extremes, applies
// the pseudo-color palette, upscales to the display resolution and overlays
// the center-pixel temperature, the hottest-pixel marker and the frame-rate
// estimate. The returned image is ready to present.
func (r *Renderer) Render(grid *mlx90640.Grid, det thermal.DetectionState, fps float64) *image.RGBA {
	span := det.MaxTemp - det.MinTemp
	if span <= 0 {
		span = 1
	}

	small := image.NewRGBA(image.Rect(0, 0, mlx90640.Width, mlx90640.Height))
	for y := 0; y < mlx90640.Height; y++ {
		for x := 0; x < mlx90640.Width; x++ {
			v := int(math.Round((paletteSize - 1) * (grid.At(x, y) - det.MinTemp) / span))
			if v < 0 {
				v = 0
			} else if v > paletteSize-1 {
				v = paletteSize - 1
			}
			small.SetRGBA(x, y, r.colors[v])
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, r.displayW, r.displayH))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), small, small.Bounds(), xdraw.Src, nil)

	// center-pixel temperature at a fixed anchor
	center := grid.At(mlx90640.Width/2, mlx90640.Height/2)
	fillRect(dst, r.displayW/2-2, centerAnchorY, markerSize, markerSize, markerColor)
	drawLabel(dst, r.displayW/2+4, centerAnchorY, fmt.Sprintf("%.1f°C", center), textColor)

	// hottest-pixel marker at its scaled coordinate
	if det.HottestValid {
		p := r.DisplayCoord(det.Hottest)
		fillRect(dst, p.X-4, p.Y-4, markerSize, markerSize, markerColor)
		drawLabel(dst, p.X+2, p.Y-20, fmt.Sprintf("%.1f°C", det.MaxTemp), textColor)
	}

	drawLabel(dst, 2, 2, fmt.Sprintf("%.1f FPS", fps), textColor)

	return dst
}

// fillRect paints a filled rectangle clipped to the image bounds.
func fillRect(dst *image.RGBA, x, y, w, h int, c color.Color) {
	rect := image.Rect(x, y, x+w, y+h).Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}
	xdraw.Draw(dst, rect, image.NewUniform(c), image.Point{}, xdraw.Src)
}

// drawLabel renders s at (x, y) top-left, scaled up by textScale. The glyphs
// are rasterized at the base face size and upscaled with nearest-neighbor to
// keep the blocky look of the panel font.
func drawLabel(dst *image.RGBA, x, y int, s string, c color.Color) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, s).Ceil()
	if w == 0 {
		return
	}
	tmp := image.NewRGBA(image.Rect(0, 0, w, face.Height))
	d := font.Drawer{
		Dst:  tmp,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(s)

	target := image.Rect(x, y, x+w*textScale, y+face.Height*textScale)
	xdraw.NearestNeighbor.Scale(dst, target, tmp, tmp.Bounds(), xdraw.Over, nil)
}
