package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/usermgmt/account-service/internal/core/domain"
	"github.com/usermgmt/account-service/internal/core/ports"
)

const callerKey = "caller"

// Authenticate resolves the bearer token into a domain.Caller and stores it
// on the context. It never rejects: a missing, malformed or invalid token
// leaves the request anonymous and Require decides whether that is enough.
func Authenticate(tokens ports.TokenAuthenticator, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller := domain.Caller{}

			if raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization)); ok {
				resolved, err := tokens.Authenticate(raw)
				if err != nil {
					log.Debug().Err(err).Str("path", c.Path()).Msg("bearer token rejected")
				} else {
					caller = resolved
				}
			}

			SetCaller(c, caller)
			return next(c)
		}
	}
}

// SetCaller stores caller on the request context.
func SetCaller(c echo.Context, caller domain.Caller) {
	c.Set(callerKey, caller)
}

// CallerFrom returns the caller stored by Authenticate, or an anonymous one.
func CallerFrom(c echo.Context) domain.Caller {
	caller, _ := c.Get(callerKey).(domain.Caller)
	return caller
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
