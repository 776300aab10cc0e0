package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dkestel/practice-hub/internal/config"
)

// HealthChecker reports storage health for the /health endpoint.
type HealthChecker interface {
	Health() error
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(h *Handler, db HealthChecker, cfg *config.Config) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	r.GET("/auth/github", h.BeginGithubLogin)
	r.GET("/auth/github/callback", h.GithubCallback)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/users/:id/dailies", h.GetDailies)
		v1.GET("/users/:id/dailies/count", h.GetDailyCount)
		v1.POST("/users/:id/dailies/increment", h.IncrementDailies)
	}

	return r
}
