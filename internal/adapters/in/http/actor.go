package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"production/internal/core/domain/model/identity"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// HeaderUserID carries the user id set by the upstream identity provider.
const HeaderUserID = "X-User-ID"

const actorContextKey = "actor"

const defaultIdentityTimeout = 3 * time.Second

// ActorMiddleware resolves X-User-ID into an identity.Actor through the
// profile directory and stores it on the echo context. A missing or unknown
// user is 401; an unreachable directory is 503. Inactive profiles are let
// through, the use cases refuse them.
func ActorMiddleware(profiles ports.ProfileDirectory, timeout time.Duration, logger *slog.Logger) echo.MiddlewareFunc {
	if timeout <= 0 {
		timeout = defaultIdentityTimeout
	}
	logger = logger.With("component", "ActorMiddleware")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(HeaderUserID))
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, HeaderUserID+" header is required")
			}
			userID, err := kernel.UUIDFromString(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, HeaderUserID+" is not a valid user id")
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()

			actor, err := profiles.Lookup(ctx, userID)
			switch {
			case err == nil:
			case errors.Is(err, errs.ErrObjectNotFound):
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
			case errors.Is(ctx.Err(), context.DeadlineExceeded):
				logger.WarnContext(c.Request().Context(), "profile lookup timed out", "user_id", raw, "timeout", timeout)
				var external *errs.ExternalDependencyError
				if errors.As(err, &external) {
					return err
				}
				return errs.NewExternalDependencyError("profile store", err)
			default:
				return err
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// actorFrom returns the actor stored by ActorMiddleware.
func actorFrom(c echo.Context) (identity.Actor, error) {
	actor, ok := c.Get(actorContextKey).(identity.Actor)
	if !ok {
		return identity.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "no authenticated user")
	}
	return actor, nil
}
