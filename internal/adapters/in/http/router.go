package http

import (
	"net/http"

	"pricing/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

var (
	corsAllowMethods = []string{
		http.MethodOptions, http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
	}
	corsAllowHeaders = []string{echo.HeaderContentType, echo.HeaderAuthorization}
)

// NewRouter mounts the generated API routes, the contract and the docs UI on a fresh echo instance.
func NewRouter(server *Server, allowedOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowedOrigins,
		AllowMethods: corsAllowMethods,
		AllowHeaders: corsAllowHeaders,
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/api/v1/openapi.json", openAPIHandler)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)

	return e
}

func openAPIHandler(c echo.Context) error {
	doc, err := openAPIDocument()
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to load API contract")
	}
	return c.JSONBlob(http.StatusOK, doc)
}
