package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"production/api"
	"production/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
	"go.opentelemetry.io/otel/trace"
)

// BaseURL is where the API group is mounted.
const BaseURL = "/api/v1"

// swaggerDoc feeds the swagger UI the contract converted to Swagger 2.0,
// which is the format swag serves.
type swaggerDoc struct {
	doc string
}

func (s swaggerDoc) ReadDoc() string {
	return s.doc
}

// RouterOptions carries what the router needs besides the use cases.
// UploadLimit caps evidence upload bodies in echo size notation ("10M").
type RouterOptions struct {
	Actor          echo.MiddlewareFunc
	ServiceName    string
	TracerProvider trace.TracerProvider
	UploadLimit    string
	Logger         *slog.Logger
	Debug          bool
}

// DefaultUploadLimit applies when RouterOptions.UploadLimit is empty.
const DefaultUploadLimit = "10M"

// NewRouter builds the echo instance: /health, the contract at
// /openapi.yaml, swagger UI at /swagger/ and the API under BaseURL.
func NewRouter(server servers.ServerInterface, opts RouterOptions) (*echo.Echo, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	validate, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err := registerSwagger(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.INFO)
	if opts.Debug {
		e.Logger.SetLevel(log.DEBUG)
	}
	e.HTTPErrorHandler = NewErrorHandler(opts.Logger)

	e.Use(middleware.Recover())
	e.Use(TracingMiddleware(opts.ServiceName, opts.TracerProvider))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", api.Spec)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	g := e.Group(BaseURL)
	if opts.Actor != nil {
		g.Use(opts.Actor)
	}
	g.Use(uploadLimit(opts.UploadLimit))
	g.Use(validate)
	servers.RegisterHandlers(g, server)

	return e, nil
}

// uploadLimit rejects oversized evidence uploads with 413 before the body is
// read. Other routes carry small JSON bodies and are left alone.
func uploadLimit(limit string) echo.MiddlewareFunc {
	if limit == "" {
		limit = DefaultUploadLimit
	}
	return middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		Limit: limit,
		Skipper: func(c echo.Context) bool {
			return !strings.HasSuffix(c.Path(), "/evidence/upload")
		},
	})
}

var swaggerOnce sync.Once

// registerSwagger publishes the document once per process; swag panics on a
// second registration under the same name.
func registerSwagger(doc *openapi3.T) error {
	var err error
	swaggerOnce.Do(func() {
		err = doRegisterSwagger(doc)
	})
	return err
}

func doRegisterSwagger(doc *openapi3.T) error {
	v2, err := openapi2conv.FromV3(doc)
	if err != nil {
		return fmt.Errorf("convert openapi document: %w", err)
	}
	raw, err := json.Marshal(v2)
	if err != nil {
		return fmt.Errorf("marshal swagger document: %w", err)
	}
	swag.Register(swag.Name, swaggerDoc{doc: string(raw)})
	return nil
}
