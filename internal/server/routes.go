package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes configures all API routes and the error handler
func RegisterRoutes(e *echo.Echo, h *Handlers) {
	e.HTTPErrorHandler = JSONErrorHandler()

	v1 := e.Group("/v1")
	v1.GET("/health", h.Health)
	v1.POST("/tx", h.SubmitTx)
	v1.GET("/parameters", h.Parameters)
	v1.GET("/pools/:creator/:base/:quote", h.Pool)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found", Code: http.StatusNotFound})
	})
}
