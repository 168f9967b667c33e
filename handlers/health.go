package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/metricare/patient-api/interfaces"
)

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status        string                 `json:"status"`
	UptimeSeconds float64                `json:"uptime_seconds"`
	Uptime        string                 `json:"uptime"`
	Upstreams     map[string]interface{} `json:"upstreams"`
	System        map[string]interface{} `json:"system"`
}

// HealthCheck returns server health information. A failing label-database
// probe degrades the status but keeps 200: the patient endpoints still work
// and the pipeline degrades per entry.
func HealthCheck(status interfaces.StatusStore, generator interfaces.TextGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Get memory statistics
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		uptime := time.Since(status.GetServerStartTime())

		labelOK, checkedAt := status.GetLabelSourceStatus()

		healthStatus := "healthy"
		if !labelOK {
			healthStatus = "degraded"
		}

		lastChecked := "never"
		if !checkedAt.IsZero() {
			lastChecked = checkedAt.Format(time.RFC3339)
		}

		response := HealthResponse{
			Status:        healthStatus,
			UptimeSeconds: uptime.Seconds(),
			Uptime:        formatUptimeHuman(uptime),
			Upstreams: map[string]interface{}{
				"label_database": map[string]interface{}{
					"reachable":    labelOK,
					"last_checked": lastChecked,
				},
				"generative_backend": map[string]interface{}{
					"configured": generator.Available(),
				},
			},
			System: map[string]interface{}{
				"goroutines": runtime.NumGoroutine(),
				"memory": map[string]interface{}{
					"alloc_mb":       int(m.Alloc / 1024 / 1024),
					"total_alloc_mb": int(m.TotalAlloc / 1024 / 1024),
					"sys_mb":         int(m.Sys / 1024 / 1024),
					"num_gc":         m.NumGC,
				},
			},
		}

		RespondWithJSON(w, http.StatusOK, response)
	}
}
