package http

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const defaultServiceName = "production"

// TracingMiddleware opens a server span per request named after the route
// template, continuing any trace context sent by the caller.
func TracingMiddleware(service string, tp trace.TracerProvider) echo.MiddlewareFunc {
	if service == "" {
		service = defaultServiceName
	}
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return otelecho.Middleware(service,
		otelecho.WithTracerProvider(tp),
		otelecho.WithPropagators(otel.GetTextMapPropagator()),
		otelecho.WithSkipper(func(c echo.Context) bool {
			return c.Path() == "/health"
		}),
	)
}
