package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks   map[string]HealthCheck
	warnings []string
}

var healthHandler *HealthHandler

func NewHealthHandler(checks map[string]HealthCheck, warnings ...string) *HealthHandler {
	return &HealthHandler{
		checks:   checks,
		warnings: warnings,
	}
}

func SetupHealthHandler(checks map[string]HealthCheck, warnings ...string) {
	healthHandler = NewHealthHandler(checks, warnings...)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Server is running",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// CheckDependencies runs every registered probe. Configuration warnings are
// reported but never fail the check.
func (h *HealthHandler) CheckDependencies(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	results := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	body := map[string]interface{}{
		"dependencies": results,
	}
	if len(h.warnings) > 0 {
		body["warnings"] = h.warnings
	}
	return c.JSON(status, body)
}
