package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

// HealthCheck reports whether a backing service is reachable.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type Controller interface {
	Health(c echo.Context) error
}

type controller struct {
	checks []HealthCheck
}

func NewHandler(checks ...HealthCheck) Controller {
	return &controller{checks: checks}
}

// Health answers 200 when every check passes and 503 otherwise.
func (h *controller) Health(c echo.Context) error {
	results := make([]string, len(h.checks))
	eg, ctx := errgroup.WithContext(c.Request().Context())
	for i, check := range h.checks {
		eg.Go(func() error {
			results[i] = "ok"
			if err := check.Check(ctx); err != nil {
				results[i] = err.Error()
				return err
			}
			return nil
		})
	}
	err := eg.Wait()

	deps := make(map[string]string, len(h.checks))
	for i, check := range h.checks {
		deps[check.Name] = results[i]
	}
	status, code := "healthy", http.StatusOK
	if err != nil {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	return c.JSON(code, map[string]any{
		"status":       status,
		"service":      "storefront",
		"dependencies": deps,
	})
}
