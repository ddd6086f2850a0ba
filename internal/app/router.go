package app

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"github.com/ytlink/applink/internal/metrics"
	"github.com/ytlink/applink/internal/middleware/compress"
	ginLogger "github.com/ytlink/applink/internal/middleware/logger"
	"github.com/ytlink/applink/internal/middleware/requestid"
)

const (
	rootPath         = "/"
	pingPath         = "/ping"
	metricsPath      = "/metrics"
	interstitialPath = "/redirect"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

func (a *App) SetupRouter() (*gin.Engine, error) {
	r := gin.New()
	if a.config.ProfileMode {
		pprof.Register(r)
	}

	tmpl, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	recoveryLogger := a.logger.Named("recovery")
	r.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		recoveryLogger.Errorw("panic in request path", "error", err, "uri", c.Request.RequestURI)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}))
	r.Use(requestid.RequestID())
	r.Use(ginLogger.Logger(a.logger.Named("middleware")))
	r.Use(metrics.Middleware())
	r.Use(compress.Compress())

	r.GET(interstitialPath, a.Interstitial)
	r.GET(pingPath, a.Ping)
	r.GET(metricsPath, metrics.Handler())

	// Every other path and method lands on the redirect resolver.
	r.NoRoute(a.Redirect)

	return r, nil
}
