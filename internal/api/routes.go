package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
)

func (s *Service) RegisterRoutes() {
	r := s.router
	r.GET("/.well-known/farcaster.json", s.manifestHandler)
	r.StaticFS("/images", afero.NewHttpFs(s.assets).Dir("images"))

	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/search-user", s.searchUserHandler)
		api.POST("/generate", s.generateHandler)
		api.GET("/fart/:username", s.fartImageHandler)
		api.GET("/share/:username", s.shareHandler)
		api.GET("/share/:username/qr", s.shareQRHandler)
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.String(http.StatusNotFound, "not found")
	})
}
