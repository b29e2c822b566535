package controllers

import (
	"fmt"
	"net/http"
	"time"

	"informant/internal/services"

	json "github.com/goccy/go-json"
)

type HealthController struct {
	service   services.HistoryServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string             `json:"status"`
	Uptime        string             `json:"uptime"`
	UptimeSeconds float64            `json:"uptime_seconds"`
	State         services.LoadState `json:"state"`
	Days          int                `json:"days"`
	Generation    uint64             `json:"generation"`
	LastLoad      *time.Time         `json:"last_load,omitempty"`
	LastError     string             `json:"last_error,omitempty"`
}

// Health answers 200 while the daemon runs, whatever the load state.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		State:         hc.service.GetState(),
		Days:          hc.service.GetDayCount(),
		Generation:    hc.service.GetGeneration(),
	}
	if report := hc.service.GetLastReport(); report != nil {
		resp.LastLoad = &report.StartedAt
		resp.LastError = report.Error
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service services.HistoryServiceInterface) *HealthController {
	return &HealthController{
		service:   service,
		startTime: time.Now(),
	}
}
