package http

import (
	"errors"
	"log/slog"
	"net/http"

	"production/internal/generated/servers"
	"production/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ContentTypeProblemJSON is the media type of RFC 7807 error bodies.
const ContentTypeProblemJSON = "application/problem+json"

const (
	problemValidation   = "/problems/validation-error"
	problemUnauthorized = "/problems/unauthorized"
	problemForbidden    = "/problems/forbidden"
	problemNotFound     = "/problems/not-found"
	problemConflict     = "/problems/conflict"
	problemUnavailable  = "/problems/dependency-unavailable"
	problemInternal     = "/problems/internal-error"
	problemHTTP         = "/problems/http"
)

type problemKind struct {
	status int
	typ    string
	title  string
}

func problemFor(kind errs.Kind) problemKind {
	switch kind {
	case errs.KindValidation:
		return problemKind{http.StatusBadRequest, problemValidation, "Validation Error"}
	case errs.KindAuthorization:
		return problemKind{http.StatusForbidden, problemForbidden, "Forbidden"}
	case errs.KindNotFound:
		return problemKind{http.StatusNotFound, problemNotFound, "Resource Not Found"}
	case errs.KindConflict:
		return problemKind{http.StatusConflict, problemConflict, "Conflict"}
	case errs.KindExternal:
		return problemKind{http.StatusServiceUnavailable, problemUnavailable, "Dependency Unavailable"}
	case errs.KindInternal:
		return problemKind{http.StatusInternalServerError, problemInternal, "Internal Server Error"}
	}
	return problemKind{http.StatusInternalServerError, problemInternal, "Internal Server Error"}
}

// NewErrorHandler renders every error returned by a handler or middleware as
// problem+json. Domain errors are classified with errs.KindOf; echo errors
// keep their status. Internal errors are logged and their text withheld.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "HTTPErrorHandler")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		p := toProblem(err)
		p.Instance = stringPtr(c.Request().URL.Path)

		if p.Status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", p.Status,
				"error", err)
		}

		c.Response().Header().Set(echo.HeaderContentType, ContentTypeProblemJSON)
		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(p.Status)
		} else {
			writeErr = c.JSON(p.Status, p)
		}
		if writeErr != nil {
			logger.WarnContext(c.Request().Context(), "failed to write problem response", "error", writeErr)
		}
	}
}

func toProblem(err error) servers.Problem {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		typ := problemHTTP
		switch he.Code {
		case http.StatusBadRequest:
			typ = problemValidation
		case http.StatusUnauthorized:
			typ = problemUnauthorized
		case http.StatusNotFound:
			typ = problemNotFound
		}
		p := servers.Problem{Type: typ, Title: http.StatusText(he.Code), Status: he.Code}
		if msg, ok := he.Message.(string); ok && msg != "" {
			p.Detail = stringPtr(msg)
		} else if he.Internal != nil {
			p.Detail = stringPtr(he.Internal.Error())
		}
		return p
	}

	kind := errs.KindOf(err)
	pk := problemFor(kind)
	p := servers.Problem{Type: pk.typ, Title: pk.title, Status: pk.status}
	if kind != errs.KindInternal {
		p.Detail = stringPtr(err.Error())
	}
	return p
}

func stringPtr(s string) *string {
	return &s
}
