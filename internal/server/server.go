// Package server is the thin HTTP surface over the scoring pipeline. All
// decision logic lives in the core packages; handlers only shape
// responses.
package server

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	echo *echo.Echo
	port int
}

func New(handler *Handler, port int) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/api/news", handler.GetNews)
	e.GET("/api/trends", handler.GetTrends)
	e.GET("/healthz", handler.GetHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return &Server{echo: e, port: port}
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%d", s.port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
