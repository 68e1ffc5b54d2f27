package imagepkg

import (
	"image"

	"golang.org/x/image/vector"
)

// kappa places cubic Bézier control points so four segments approximate a circle.
const kappa = 0.5522847498

// circleMask returns a w×h anti-aliased alpha mask of the disc centred at (cx, cy).
func circleMask(w, h int, cx, cy, r float64) *image.Alpha {
	z := vector.NewRasterizer(w, h)
	addCircle(z, cx, cy, r)

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// ringMask returns the area between two concentric circles.
func ringMask(w, h int, cx, cy, inner, outer float64) *image.Alpha {
	ring := circleMask(w, h, cx, cy, outer)
	hole := circleMask(w, h, cx, cy, inner)
	for i, a := range hole.Pix {
		if a >= ring.Pix[i] {
			ring.Pix[i] = 0
		} else {
			ring.Pix[i] -= a
		}
	}
	return ring
}

func addCircle(z *vector.Rasterizer, cx, cy, r float64) {
	k := r * kappa
	p := func(v float64) float32 { return float32(v) }

	z.MoveTo(p(cx+r), p(cy))
	z.CubeTo(p(cx+r), p(cy+k), p(cx+k), p(cy+r), p(cx), p(cy+r))
	z.CubeTo(p(cx-k), p(cy+r), p(cx-r), p(cy+k), p(cx-r), p(cy))
	z.CubeTo(p(cx-r), p(cy-k), p(cx-k), p(cy-r), p(cx), p(cy-r))
	z.CubeTo(p(cx+k), p(cy-r), p(cx+r), p(cy-k), p(cx+r), p(cy))
	z.ClosePath()
}
