package endpoint

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/picoview/component"
	"github.com/kbukum/picoview/observability"
	"github.com/kbukum/picoview/version"
)

// HealthChecker returns health status for registered components.
type HealthChecker func(ctx context.Context) []component.Health

var statusMap = map[component.HealthStatus]observability.HealthStatus{
	component.StatusHealthy:   observability.HealthStatusUp,
	component.StatusDegraded:  observability.HealthStatusDegraded,
	component.StatusUnhealthy: observability.HealthStatusDown,
}

// Health serves an observability.ServiceHealth built from the component
// statuses. A down component answers 503.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := observability.NewServiceHealth(serviceName, version.GetVersionInfo().Version)
		if checker != nil {
			for _, ch := range checker(c.Request.Context()) {
				status, ok := statusMap[ch.Status]
				if !ok {
					status = observability.HealthStatusDown
				}
				sh.AddComponent(observability.Health{Name: ch.Name, Status: status, Message: ch.Message})
			}
		}

		code := http.StatusOK
		if sh.Status == observability.HealthStatusDown {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, sh)
	}
}
