package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"blog-service/internal/auth"
	"blog-service/internal/common"
	"blog-service/internal/ratelimit"
	"blog-service/internal/repository"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const currentUserKey = "currentUser"

// CurrentUser is the resolved identity attached to the context for
// protected routes.
type CurrentUser struct {
	ID    int
	Email string
	Name  string
}

func currentUser(c echo.Context) *CurrentUser {
	u, _ := c.Get(currentUserKey).(*CurrentUser)
	return u
}

// RequireAuth verifies the bearer token and resolves it to a live, active
// user before the handler runs. The check is request-scoped: every
// protected call pays the lookup.
func RequireAuth(tokens *auth.Service, users repository.UserRepository) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return tokens.Verify(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return respondMessage(c, http.StatusUnauthorized, false, "Access token is required")
			}
			return respondMessage(c, http.StatusUnauthorized, false, "Invalid or expired token")
		},
	})

	resolve := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*auth.Claims)
			if !ok {
				return respondMessage(c, http.StatusUnauthorized, false, "Invalid or expired token")
			}

			user, err := users.GetByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return respondMessage(c, http.StatusNotFound, false, "User not found or inactive")
				}
				logger.Error().Err(err).Msgf("Error resolving user %d", claims.UserID)
				return respondMessage(c, http.StatusInternalServerError, false, "Internal server error")
			}
			if !user.IsActive {
				return respondMessage(c, http.StatusNotFound, false, "User not found or inactive")
			}

			c.Set(currentUserKey, &CurrentUser{ID: user.ID, Email: user.Email, Name: user.Name})
			return next(c)
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(resolve(next))
	}
}

// RateLimit counts requests per client address and rejects the excess
// with a retry-after hint. When the skip-successful policy is on, a
// response below 400 refunds its slot.
func RateLimit(limiter *ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Enabled() {
				return next(c)
			}

			ctx := c.Request().Context()
			key := c.RealIP()

			allowed, retryAfter, err := limiter.Allow(ctx, key)
			if err != nil {
				// counter store failure: let the request through
				logger.Error().Err(err).Msg("Rate limit store error")
				return next(c)
			}
			if !allowed {
				seconds := int(retryAfter.Seconds() + 0.5)
				if seconds < 1 {
					seconds = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
				return c.JSON(http.StatusTooManyRequests, Response{
					Success:    false,
					Message:    "Too many requests, please try again later",
					RetryAfter: seconds,
				})
			}

			err = next(c)
			if err == nil && limiter.SkipSuccessful() && c.Response().Status < 400 {
				if ferr := limiter.Forgive(ctx, key); ferr != nil {
					logger.Error().Err(ferr).Msg("Rate limit refund error")
				}
			}
			return err
		}
	}
}
