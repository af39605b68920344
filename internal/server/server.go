package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mohammad-safakhou/ferret/config"
	agentpkg "github.com/mohammad-safakhou/ferret/internal/agent"
	"github.com/mohammad-safakhou/ferret/internal/session"
	"github.com/mohammad-safakhou/ferret/internal/telemetry"
)

// Run wires the pipeline and serves the HTTP API.
func Run(cfg *config.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	baseLogger := telemetry.NewLogger("HTTP")
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	metrics := telemetry.New(prometheus.DefaultRegisterer)
	ag, err := agentpkg.New(cfg, telemetry.NewLogger("AGENT"), metrics)
	if err != nil {
		return err
	}

	rh := &ResearchHandler{
		Agent:      ag,
		Sessions:   session.NewStore(),
		SessionTTL: cfg.Session.TTL,
	}
	rh.Register(e.Group("/api"))

	return e.Start(cfg.Server.Address)
}
