package handlers

import (
	"net/http"
)

// MetricsSummary aggregates the session's call history for dashboard charts.
func (a *App) MetricsSummary(w http.ResponseWriter, r *http.Request) {
	sess := a.currentSession(w, r)
	s := sess.Events.Summarize(a.Config.MetricsWindowSize)
	a.json(w, http.StatusOK, map[string]any{
		"session_id":      sess.ID,
		"total_calls":     s.Total,
		"succeeded":       s.Succeeded,
		"failed":          s.Failed,
		"success_rate":    s.SuccessRate,
		"avg_duration_ms": s.AvgDuration.Milliseconds(),
		"max_duration_ms": s.MaxDuration.Milliseconds(),
		"rolling_avg_ms":  s.RollingAvg.Milliseconds(),
	})
}

// MetricsHistory returns the retained per-call events, oldest first.
func (a *App) MetricsHistory(w http.ResponseWriter, r *http.Request) {
	sess := a.currentSession(w, r)
	entries := sess.Events.Entries()
	items := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		item := map[string]any{
			"operation":   e.Operation,
			"started_at":  e.StartedAt,
			"duration_ms": e.Duration.Milliseconds(),
			"success":     e.Success,
		}
		if e.Error != "" {
			item["error"] = e.Error
		}
		items = append(items, item)
	}
	a.json(w, http.StatusOK, map[string]any{"session_id": sess.ID, "items": items})
}
