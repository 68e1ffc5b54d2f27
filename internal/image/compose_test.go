package imagepkg

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexpaden/fartcaster/internal/assets"
	"github.com/alexpaden/fartcaster/internal/errors"
)

var (
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	red   = color.NRGBA{R: 0xff, A: 0xff}
	blue  = color.NRGBA{B: 0xff, A: 0xff}
)

type fakeSource struct {
	profile    image.Image
	profileErr error
	cloud      image.Image
	cloudErr   error

	requested []string
}

func (f *fakeSource) Load(_ context.Context, url string) (image.Image, error) {
	f.requested = append(f.requested, url)
	return f.profile, f.profileErr
}

func (f *fakeSource) Asset(name string) (image.Image, error) {
	f.requested = append(f.requested, name)
	return f.cloud, f.cloudErr
}

func request() CompositeRequest {
	return CompositeRequest{
		ProfileImageURL: "https://img.example.com/alice.png",
		Username:        "alice",
		CurrentUser:     "bob",
	}
}

func noCloud() *fakeSource {
	return &fakeSource{
		profile:  imaging.New(64, 64, red),
		cloudErr: errors.ImageLoad(assets.StinkCloud, errors.New("missing")),
	}
}

func TestRender_ProfileFailureAborts(t *testing.T) {
	src := &fakeSource{profileErr: errors.New("connection refused"), cloud: imaging.New(10, 10, blue)}

	out, err := NewCompositor(src, 0).Render(context.Background(), request())
	require.Nil(t, out)

	var loadErr *errors.ImageLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "https://img.example.com/alice.png", loadErr.URL)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, []string{"https://img.example.com/alice.png"}, src.requested, "overlay must not load after a profile failure")
}

func TestRender_ProfileLoadErrorKeptIntact(t *testing.T) {
	orig := errors.ImageLoad("https://img.example.com/alice.png", errors.New("404"))
	src := &fakeSource{profileErr: orig}

	_, err := NewCompositor(src, 0).Render(context.Background(), request())
	assert.Same(t, orig, err)
}

func TestRender_WithoutOverlay(t *testing.T) {
	src := noCloud()

	out, err := NewCompositor(src, 0).Render(context.Background(), request())
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, CanvasSize, CanvasSize), out.Bounds())

	assert.Equal(t, white, out.NRGBAAt(5, 5), "background")
	assert.Equal(t, white, out.NRGBAAt(495, 495), "background")
	assert.Equal(t, red, out.NRGBAAt(250, 210), "profile centre")
	assert.Equal(t, red, out.NRGBAAt(250, 250), "profile lower half")
	assert.Equal(t, []string{"https://img.example.com/alice.png", assets.StinkCloud}, src.requested)
}

func TestRender_ProfileClippedToCircle(t *testing.T) {
	out, err := NewCompositor(noCloud(), 0).Render(context.Background(), request())
	require.NoError(t, err)

	// corners of the 180x180 profile box lie outside the circle
	for _, p := range []image.Point{{162, 122}, {337, 122}, {162, 297}} {
		px := out.NRGBAAt(p.X, p.Y)
		assert.Greater(t, px.G, uint8(200), "corner %v should not be painted red", p)
	}
}

func TestRender_Outline(t *testing.T) {
	out, err := NewCompositor(noCloud(), 0).Render(context.Background(), request())
	require.NoError(t, err)

	edge := out.NRGBAAt(250, 120)
	inner := out.NRGBAAt(250, 130)
	assert.Greater(t, edge.G, uint8(180), "outline is near-white")
	assert.Equal(t, uint8(0), inner.G)
}

func TestRender_ShadowFallsBottomRight(t *testing.T) {
	out, err := NewCompositor(noCloud(), 0).Render(context.Background(), request())
	require.NoError(t, err)

	bottomRight := out.NRGBAAt(316, 276)
	topLeft := out.NRGBAAt(184, 144)
	assert.Less(t, bottomRight.R, topLeft.R)
	assert.Less(t, bottomRight.R, uint8(250))
}

func TestRender_OverlayDrawnOnTop(t *testing.T) {
	src := &fakeSource{profile: imaging.New(64, 64, red), cloud: imaging.New(100, 50, blue)}

	out, err := NewCompositor(src, 0).Render(context.Background(), request())
	require.NoError(t, err)

	px := out.NRGBAAt(250, 250)
	assert.Greater(t, px.B, uint8(200), "overlay covers the profile")
	assert.Less(t, px.R, uint8(60))
	assert.Equal(t, red, out.NRGBAAt(250, 150), "upper profile stays visible")
}

func TestDrawOverlay_Geometry(t *testing.T) {
	canvas := imaging.New(CanvasSize, CanvasSize, white)
	// 300x200 cloud: 243x162 at (14.2, 210), centre (135.7, 291)
	drawOverlay(canvas, imaging.New(300, 200, blue), 160, 120)

	isBlue := func(x, y int) bool {
		px := canvas.NRGBAAt(x, y)
		return px.B > 200 && px.R < 60
	}
	isWhite := func(x, y int) bool {
		px := canvas.NRGBAAt(x, y)
		return px.R > 240 && px.G > 240
	}

	assert.True(t, isBlue(135, 291), "centre")
	assert.True(t, isBlue(250, 291), "right side")
	assert.True(t, isWhite(135, 200), "above")
	assert.True(t, isWhite(5, 291), "left of overlay")
	assert.True(t, isWhite(135, 380), "below")

	// counter-clockwise tilt lifts the right edge and drops the left edge
	assert.True(t, isBlue(250, 208), "right edge raised above y=210")
	assert.True(t, isWhite(20, 211), "left edge lowered below y=210")
}

func TestDrawOverlay_KeepsAspectRatio(t *testing.T) {
	canvas := imaging.New(CanvasSize, CanvasSize, white)
	// 1:2 cloud is 81 wide: spans x 111.4..192.4
	drawOverlay(canvas, imaging.New(50, 100, blue), 160, 120)

	px := canvas.NRGBAAt(150, 291)
	assert.Greater(t, px.B, uint8(200))
	assert.Equal(t, white, canvas.NRGBAAt(100, 291))
	assert.Equal(t, white, canvas.NRGBAAt(205, 291))
}

func TestRender_BackgroundColor(t *testing.T) {
	req := request()
	req.BackgroundColor = "#0f0"

	out, err := NewCompositor(noCloud(), 0).Render(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{G: 0xff, A: 0xff}, out.NRGBAAt(5, 5))

	req.BackgroundColor = "green"
	_, err = NewCompositor(noCloud(), 0).Render(context.Background(), req)
	require.Error(t, err)
}

func TestRender_CanvasUnavailable(t *testing.T) {
	c := NewCompositor(noCloud(), 0)
	c.size = 0

	_, err := c.Render(context.Background(), request())
	require.ErrorIs(t, err, errors.ErrCanvasUnavailable)
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCompositor(noCloud(), 0).Render(ctx, request())
	require.ErrorIs(t, err, context.Canceled)
}

func TestCompose_EncodesJPEG(t *testing.T) {
	src := &fakeSource{profile: imaging.New(64, 64, red), cloud: imaging.New(300, 200, blue)}

	res, err := NewCompositor(src, 92).Compose(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, MIMEJPEG, res.MIMEType)

	img, err := jpeg.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, CanvasSize, CanvasSize), img.Bounds())

	assert.True(t, strings.HasPrefix(res.DataURL(), "data:image/jpeg;base64,/9j/"))
}

func TestCompose_RepeatableOutput(t *testing.T) {
	c := NewCompositor(noCloud(), 0)

	a, err := c.Compose(context.Background(), request())
	require.NoError(t, err)
	b, err := c.Compose(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, a.Data, b.Data)
}

func TestCompose_OverlayMissingStillProducesImage(t *testing.T) {
	res, err := NewCompositor(noCloud(), 0).Compose(context.Background(), request())
	require.NoError(t, err)
	require.NotEmpty(t, res.Data)

	_, err = jpeg.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#ffffff", white, true},
		{"#f00", red, true},
		{"#0000ff80", color.NRGBA{B: 0xff, A: 0x80}, true},
		{"#00f8", color.NRGBA{B: 0xff, A: 0x88}, true},
		{"#12345", color.NRGBA{}, false},
		{"#gggggg", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseHexColor(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
