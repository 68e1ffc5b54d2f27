package api

import (
	"context"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/alexpaden/fartcaster/internal/config"
	"github.com/alexpaden/fartcaster/internal/errors"
	imagepkg "github.com/alexpaden/fartcaster/internal/image"
	"github.com/alexpaden/fartcaster/internal/manifest"
	"github.com/alexpaden/fartcaster/internal/model"
)

const (
	headerRequestID = "X-Request-ID"
	maxRequestIDLen = 64
)

// UserFinder resolves a username to a profile.
type UserFinder interface {
	Find(ctx context.Context, username string) (*model.User, error)
}

// Compositor renders a fart bubble image.
type Compositor interface {
	Compose(ctx context.Context, req imagepkg.CompositeRequest) (*imagepkg.Result, error)
}

type Service struct {
	conf     *config.Config
	users    UserFinder
	images   Compositor
	assets   afero.Fs
	manifest manifest.Manifest

	router *gin.Engine
	server *http.Server
}

func NewService(conf *config.Config, users UserFinder, images Compositor, assets afero.Fs) *Service {
	router := gin.New()
	if err := router.SetTrustedProxies(nil); err != nil {
		log.Err(err).Msg("failed to set trusted proxies")
	}

	router.Use(
		errors.RecoveryMiddleware(),
		requestID(),
		gin.LoggerWithWriter(log.Logger, "/api/health"),
	)

	s := &Service{
		conf:     conf,
		users:    users,
		images:   images,
		assets:   assets,
		manifest: manifest.New(conf.PublicURL, conf.Manifest),
		router:   router,
		server:   &http.Server{Handler: router},
	}
	s.RegisterRoutes()
	return s
}

// requestID tags each request with an ID and attaches a logger carrying it.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Header(headerRequestID, id)

		logger := log.With().Str("request_id", id).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
		c.Next()
	}
}

func (s *Service) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.conf.HTTPAddr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown. Calling Shutdown first makes
// Serve return nil immediately.
func (s *Service) Serve(ln net.Listener) error {
	log.Info().Str("addr", ln.Addr().String()).Msg("starting http server")

	err := s.server.Serve(ln)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Service) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	log.Info().Msg("http server stopped")
	return nil
}

func (s *Service) Handler() http.Handler {
	return s.router
}
