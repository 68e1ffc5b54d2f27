package api

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alexpaden/fartcaster/internal/errors"
	imagepkg "github.com/alexpaden/fartcaster/internal/image"
	"github.com/alexpaden/fartcaster/internal/share"
)

// successful lookups are cached at the edge for a day
const searchCacheControl = "public, s-maxage=86400, stale-while-revalidate=60"

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Service) manifestHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.manifest)
}

// searchUserHandler resolves ?username= through the user directory.
func (s *Service) searchUserHandler(c *gin.Context) {
	user, err := s.users.Find(c.Request.Context(), c.Query("username"))
	if err != nil {
		errors.Err(c, err)
		return
	}
	c.Header("Cache-Control", searchCacheControl)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// generateHandler composes an image for an explicit profile URL and returns it as a data URL.
func (s *Service) generateHandler(c *gin.Context) {
	var req imagepkg.CompositeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.Err(c, errors.InvalidPayload(err))
		return
	}
	req.CurrentUser = share.Requester(req.CurrentUser)

	res, err := s.images.Compose(c.Request.Context(), req)
	if err != nil {
		errors.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"image":    res.DataURL(),
		"filename": share.Filename(req.Username),
	})
}

// fartImageHandler looks the user up and streams the composite as JPEG.
// ?download=1 marks the response as an attachment.
func (s *Service) fartImageHandler(c *gin.Context) {
	ctx := c.Request.Context()
	user, err := s.users.Find(ctx, c.Param("username"))
	if err != nil {
		errors.Err(c, err)
		return
	}

	res, err := s.images.Compose(ctx, imagepkg.CompositeRequest{
		ProfileImageURL: user.PfpURL,
		Username:        user.Username,
		CurrentUser:     share.Requester(c.Query("from")),
	})
	if err != nil {
		errors.Err(c, err)
		return
	}

	if download, _ := strconv.ParseBool(c.Query("download")); download {
		c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
			"filename": share.Filename(user.Username),
		}))
	}
	c.Data(http.StatusOK, res.MIMEType, res.Data)
}

func (s *Service) shareHandler(c *gin.Context) {
	c.JSON(http.StatusOK, share.NewLink(s.conf.PublicURL, c.Param("username"), c.Query("from")))
}

// shareQRHandler returns a PNG QR code pointing at the compose intent.
func (s *Service) shareQRHandler(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	link := share.NewLink(s.conf.PublicURL, c.Param("username"), c.Query("from"))

	b, err := imagepkg.GenerateQRPNG(link.ComposeURL, size)
	if err != nil {
		errors.Err(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
