package imagepkg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/alexpaden/fartcaster/internal/assets"
	"github.com/alexpaden/fartcaster/internal/errors"
)

const (
	CanvasSize  = 500
	ProfileSize = 180

	// profile circle sits this far above the canvas centre
	profileLift = 40

	shadowBlur   = 10.0
	shadowOffset = 2
	shadowAlpha  = 0.2

	strokeWidth = 2.0
	strokeAlpha = 0.8

	overlayScale  = 0.9
	overlayShiftX = 0.6
	overlayDropY  = 0.5
	// degrees; negative turns counter-clockwise on a y-down canvas
	overlayTilt = -2.0

	DefaultQuality = 95
)

// CompositeRequest describes one fart bubble image.
type CompositeRequest struct {
	ProfileImageURL string `json:"profile_image_url" binding:"required,url"`
	Username        string `json:"username" binding:"required"`
	CurrentUser     string `json:"current_user"`
	BackgroundColor string `json:"background_color" binding:"omitempty,hexcolor"`
}

// Compositor draws the stink cloud over a circular profile picture.
type Compositor struct {
	src     Source
	size    int
	quality int
}

func NewCompositor(src Source, quality int) *Compositor {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Compositor{src: src, size: CanvasSize, quality: quality}
}

// Compose renders req and encodes it as JPEG.
func (c *Compositor) Compose(ctx context.Context, req CompositeRequest) (*Result, error) {
	img, err := c.Render(ctx, req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(c.quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	log.Ctx(ctx).Info().Str("username", req.Username).Str("from", req.CurrentUser).Int("bytes", buf.Len()).Msg("fart bubble generated")
	return &Result{Data: buf.Bytes(), MIMEType: MIMEJPEG}, nil
}

// Render draws the composite without encoding it. The profile image is required;
// a missing overlay asset only skips the overlay.
func (c *Compositor) Render(ctx context.Context, req CompositeRequest) (out *image.NRGBA, err error) {
	if c.size <= 0 {
		return nil, errors.ErrCanvasUnavailable
	}

	bg := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if req.BackgroundColor != "" {
		if bg, err = parseHexColor(req.BackgroundColor); err != nil {
			return nil, err
		}
	}
	canvas := imaging.New(c.size, c.size, bg)

	profile, err := c.src.Load(ctx, req.ProfileImageURL)
	if err != nil {
		var loadErr *errors.ImageLoadError
		if !errors.As(err, &loadErr) {
			err = errors.ImageLoad(req.ProfileImageURL, err)
		}
		return nil, err
	}

	cloud, err := c.src.Asset(assets.StinkCloud)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("stink cloud failed to load, continuing without it")
		cloud = nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			if cause, ok := r.(error); ok {
				err = fmt.Errorf("draw composite: %w", cause)
			} else {
				err = fmt.Errorf("draw composite: %v", r)
			}
			out = nil
		}
	}()

	profileX := float64(c.size-ProfileSize) / 2
	profileY := float64(c.size-ProfileSize)/2 - profileLift

	canvas = drawProfile(canvas, profile, int(profileX), int(profileY))
	if cloud != nil {
		drawOverlay(canvas, cloud, profileX, profileY)
	}
	return canvas, nil
}

// drawProfile paints the shadow, the circular profile picture and its outline.
func drawProfile(canvas *image.NRGBA, profile image.Image, x, y int) *image.NRGBA {
	const d = ProfileSize
	r := float64(d) / 2

	pad := int(math.Ceil(shadowBlur * 2))
	side := d + 2*pad
	disc := circleMask(side, side, float64(pad)+r, float64(pad)+r, r)
	shadow := image.NewNRGBA(disc.Bounds())
	for i, a := range disc.Pix {
		shadow.Pix[i*4+3] = uint8(float64(a) * shadowAlpha)
	}
	// canvas shadowBlur is twice the Gaussian standard deviation
	blurred := imaging.Blur(shadow, shadowBlur/2)
	canvas = imaging.Overlay(canvas, blurred, image.Pt(x-pad+shadowOffset, y-pad+shadowOffset), 1)

	pfp := imaging.Resize(profile, d, d, imaging.Lanczos)
	clip := circleMask(d, d, r, r, r)
	draw.DrawMask(canvas, image.Rect(x, y, x+d, y+d), pfp, image.Point{}, clip, image.Point{}, draw.Over)

	bounds := canvas.Bounds()
	cx, cy := float64(x)+r, float64(y)+r
	ring := ringMask(bounds.Dx(), bounds.Dy(), cx, cy, r-strokeWidth/2, r+strokeWidth/2)
	stroke := image.NewUniform(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: uint8(math.Round(255 * strokeAlpha))})
	draw.DrawMask(canvas, bounds, stroke, image.Point{}, ring, image.Point{}, draw.Over)

	return canvas
}

// drawOverlay places cloud over the lower-left of the profile circle, scaled to
// overlayScale of the profile height with its aspect ratio kept, tilted about its centre.
func drawOverlay(canvas *image.NRGBA, cloud image.Image, profileX, profileY float64) {
	b := cloud.Bounds()
	if b.Empty() {
		return
	}

	h := ProfileSize * overlayScale
	w := h * float64(b.Dx()) / float64(b.Dy())
	x := profileX - w*overlayShiftX
	y := profileY + ProfileSize*overlayDropY

	sx, sy := w/float64(b.Dx()), h/float64(b.Dy())
	u0, v0 := float64(b.Min.X), float64(b.Min.Y)
	cx, cy := x+w/2, y+h/2
	sin, cos := math.Sincos(overlayTilt * math.Pi / 180)

	// source → scale → centre on origin → rotate → move to (cx, cy)
	m := f64.Aff3{
		cos * sx, -sin * sy, cx - cos*(sx*u0+w/2) + sin*(sy*v0+h/2),
		sin * sx, cos * sy, cy - sin*(sx*u0+w/2) - cos*(sy*v0+h/2),
	}
	xdraw.CatmullRom.Transform(canvas, m, cloud, b, xdraw.Over, nil)

	log.Debug().Float64("width", w).Float64("height", h).Float64("x", x).Float64("y", y).Msg("stink cloud drawn")
}
