package imagepkg

import (
	"bytes"
	"context"
	"image"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/alexpaden/fartcaster/internal/config"
	"github.com/alexpaden/fartcaster/internal/errors"
	"github.com/alexpaden/fartcaster/internal/util"
)

// Source provides the images a composite is built from.
type Source interface {
	// Load fetches and decodes a remote image.
	Load(ctx context.Context, url string) (image.Image, error)
	// Asset decodes a bundled asset by its path in the asset filesystem.
	Asset(name string) (image.Image, error)
}

// Loader downloads remote images over HTTP and reads bundled assets from fs.
type Loader struct {
	client   *http.Client
	assets   afero.Fs
	timeout  time.Duration
	maxBytes int64
}

func NewLoader(assets afero.Fs, cfg config.ImageConfig) *Loader {
	return &Loader{
		client:   &http.Client{},
		assets:   assets,
		timeout:  cfg.Timeout,
		maxBytes: cfg.MaxBytes,
	}
}

// Load downloads url and decodes it. Every failure is an *errors.ImageLoadError.
func (l *Loader) Load(ctx context.Context, url string) (image.Image, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	body, err := util.GetBytes(ctx, l.client, url, l.maxBytes)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("url", url).Msg("failed to load image")
		return nil, errors.ImageLoad(url, err)
	}

	img, err := imaging.Decode(bytes.NewReader(body), imaging.AutoOrientation(true))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("url", url).Int("bytes", len(body)).Msg("failed to decode image")
		return nil, errors.ImageLoad(url, err)
	}
	log.Ctx(ctx).Debug().Str("url", url).Int("width", img.Bounds().Dx()).Int("height", img.Bounds().Dy()).Msg("image loaded")
	return img, nil
}

func (l *Loader) Asset(name string) (image.Image, error) {
	data, err := afero.ReadFile(l.assets, name)
	if err != nil {
		return nil, errors.ImageLoad(name, err)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.ImageLoad(name, err)
	}
	return img, nil
}
