// Package openapi serves the OpenAPI 3.1 document of the stock tracker API
// and a Swagger UI page for it.
package openapi

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"github.com/labstack/echo/v4"
)

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Stock Tracker API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "/swagger/swagger.json",
      dom_id: "#swagger-ui",
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
      layout: "BaseLayout",
    });
  </script>
</body>
</html>`

// RegisterRoutes adds Swagger UI and spec endpoints to the Echo instance. The
// document is rendered from api on first request, after every route is
// registered.
func RegisterRoutes(e *echo.Echo, api huma.API) {
	s := &spec{api: api}
	e.GET("/swagger/swagger.json", s.serve(s.json, "application/json"))
	e.GET("/swagger/swagger.yaml", s.serve(s.yaml, "text/yaml"))
	e.GET("/swagger/index.html", serveUI)
	e.GET("/swagger", redirectToUI)
	e.GET("/swagger/", redirectToUI)
}

type spec struct {
	api huma.API

	once     sync.Once
	jsonDoc  []byte
	yamlDoc  []byte
	rendered error
}

func (s *spec) render() error {
	s.once.Do(func() {
		doc := s.api.OpenAPI()
		if s.jsonDoc, s.rendered = json.Marshal(doc); s.rendered != nil {
			return
		}
		s.yamlDoc, s.rendered = doc.YAML()
	})
	return s.rendered
}

func (s *spec) json() []byte { return s.jsonDoc }
func (s *spec) yaml() []byte { return s.yamlDoc }

func (s *spec) serve(doc func() []byte, contentType string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := s.render(); err != nil {
			return c.String(http.StatusInternalServerError, "rendering spec: "+err.Error())
		}
		return c.Blob(http.StatusOK, contentType, doc())
	}
}

func serveUI(c echo.Context) error {
	return c.HTML(http.StatusOK, swaggerUIHTML)
}

func redirectToUI(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
}
