package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// CaseInsensitivePaths rewrites path segments that match a literal route
// segment regardless of case, so "/API/Users/ME" routes like "/api/users/me".
// Other segments, such as ids, are left as sent. Register it with e.Pre.
func CaseInsensitivePaths(literals []string) echo.MiddlewareFunc {
	known := make(map[string]struct{}, len(literals))
	for _, l := range literals {
		known[strings.ToLower(l)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := c.Request().URL
			u.Path = canonicalPath(u.Path, known)
			if u.RawPath != "" {
				u.RawPath = canonicalPath(u.RawPath, known)
			}
			return next(c)
		}
	}
}

func canonicalPath(path string, known map[string]struct{}) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		lower := strings.ToLower(seg)
		if lower == seg {
			continue
		}
		if _, ok := known[lower]; ok {
			segments[i] = lower
		}
	}
	return strings.Join(segments, "/")
}
