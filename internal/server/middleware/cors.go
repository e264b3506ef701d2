package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
)

var (
	corsAllowHeaders  = strings.Join([]string{echo.HeaderContentType, XRequestID, XCartSession}, ", ")
	corsExposeHeaders = strings.Join([]string{XRequestID, XCartSession}, ", ")
)

// CORS return echo middleware that handle cors for origins matching any of
// the patterns. Credentials are allowed so the cart cookie travels along.
func CORS(patterns ...*regexp.Regexp) echo.MiddlewareFunc {
	allowed := func(origin string) bool {
		for _, p := range patterns {
			if p.MatchString(origin) {
				return true
			}
		}
		return false
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			respHeader := c.Response().Header()
			respHeader.Add(echo.HeaderVary, echo.HeaderOrigin)
			origin := c.Request().Header.Get(echo.HeaderOrigin)
			if origin == "" || !allowed(origin) {
				return next(c)
			}
			respHeader.Set(echo.HeaderAccessControlAllowOrigin, origin)
			respHeader.Set(echo.HeaderAccessControlAllowCredentials, "true")
			respHeader.Set(echo.HeaderAccessControlExposeHeaders, corsExposeHeaders)
			if c.Request().Method == http.MethodOptions {
				respHeader.Set(echo.HeaderAccessControlAllowHeaders, corsAllowHeaders)
				respHeader.Set(echo.HeaderAccessControlAllowMethods, "OPTIONS, POST, PUT, PATCH, DELETE, GET, HEAD")
				return c.NoContent(http.StatusNoContent)
			}

			return next(c)
		}
	}
}

// CompileOrigins compiles the configured origin patterns.
func CompileOrigins(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}
