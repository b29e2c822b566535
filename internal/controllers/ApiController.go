package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"informant/internal/models"
	"informant/internal/providers"
	"informant/internal/services"
	"informant/internal/storage/interfaces"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

type ApiController struct {
	logger    providers.Logger
	service   services.HistoryServiceInterface
	cache     providers.CacheProviderInterface
	scheduler interfaces.SchedulerInterface
}

func NewApiController(logger providers.Logger, service services.HistoryServiceInterface, cache providers.CacheProviderInterface, scheduler interfaces.SchedulerInterface) *ApiController {
	return &ApiController{
		logger:    logger,
		service:   service,
		cache:     cache,
		scheduler: scheduler,
	}
}

// statusError carries a client-facing status out of a compute func.
type statusError struct {
	code int
	msg  string
}

func (e *statusError) Error() string {
	return e.msg
}

type dayResponse struct {
	Date    models.Date       `json:"date"`
	Ordinal int               `json:"ordinal"`
	Range   models.DateRange  `json:"range"`
	Stats   models.InputStats `json:"stats"`
}

type seriesResponse struct {
	Metric models.Metric        `json:"metric"`
	Points []models.SeriesPoint `json:"points"`
}

type gap struct {
	Ordinal int         `json:"ordinal"`
	Date    models.Date `json:"date"`
}

type gapsResponse struct {
	Missing []gap `json:"missing"`
}

func newDayResponse(day models.Day) dayResponse {
	date := day.Date()
	return dayResponse{Date: date, Ordinal: date.Ordinal(), Range: day.Range, Stats: day.Stats}
}

// cacheKey scopes a key to the published store so a reload invalidates every entry.
func (ac *ApiController) cacheKey(parts ...any) string {
	return fmt.Sprint(append(parts, ":", ac.service.GetGeneration())...)
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, data)
		return
	}

	result, err := compute()
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			http.Error(w, se.msg, se.code)
			return
		}
		ac.logger.Errorf(providers.TypeGet, "Compute %s: %s", cacheKey, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)
	writeJSON(w, http.StatusOK, gson)
}

func writeJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (ac *ApiController) GetDays(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, ac.cacheKey("days"), func() (any, error) {
		days := ac.service.GetDays()
		resp := make([]dayResponse, len(days))
		for i, day := range days {
			resp[i] = newDayResponse(day)
		}
		return resp, nil
	})
}

func (ac *ApiController) GetDay(w http.ResponseWriter, r *http.Request) {
	date, err := models.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "Bad Request: date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	ac.serveFromCacheOrCompute(w, ac.cacheKey("day:", date), func() (any, error) {
		day, ok := ac.service.GetDay(date)
		if !ok {
			return nil, &statusError{code: http.StatusNotFound, msg: "Not Found"}
		}
		return newDayResponse(day), nil
	})
}

func (ac *ApiController) GetFields(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "fields", func() (any, error) {
		return models.Metrics, nil
	})
}

// GetSeries returns one point per stored day for ?metric=, optionally bounded by the
// inclusive ordinals ?from= and ?to=.
func (ac *ApiController) GetSeries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	metric, err := models.ParseMetric(q.Get("metric"))
	if err != nil {
		http.Error(w, "Bad Request: "+err.Error(), http.StatusBadRequest)
		return
	}
	from, to, err := ordinalBounds(q.Get("from"), q.Get("to"))
	if err != nil {
		http.Error(w, "Bad Request: "+err.Error(), http.StatusBadRequest)
		return
	}

	ac.serveFromCacheOrCompute(w, ac.cacheKey("series:", metric, ":", from, ":", to), func() (any, error) {
		points := make([]models.SeriesPoint, 0)
		for _, p := range ac.service.GetSeries(metric) {
			if p.Ordinal >= from && p.Ordinal <= to {
				points = append(points, p)
			}
		}
		return seriesResponse{Metric: metric, Points: points}, nil
	})
}

func ordinalBounds(fromParam, toParam string) (int, int, error) {
	from, to := 0, int(^uint(0)>>1)
	var err error
	if fromParam != "" {
		if from, err = cast.ToIntE(fromParam); err != nil {
			return 0, 0, fmt.Errorf("invalid from %q", fromParam)
		}
	}
	if toParam != "" {
		if to, err = cast.ToIntE(toParam); err != nil {
			return 0, 0, fmt.Errorf("invalid to %q", toParam)
		}
	}
	if from > to {
		return 0, 0, fmt.Errorf("from %d is after to %d", from, to)
	}
	return from, to, nil
}

func (ac *ApiController) GetGaps(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, ac.cacheKey("gaps"), func() (any, error) {
		missing := ac.service.GetMissing()
		resp := gapsResponse{Missing: make([]gap, len(missing))}
		for i, ordinal := range missing {
			resp.Missing[i] = gap{Ordinal: ordinal, Date: models.DateFromOrdinal(ordinal)}
		}
		return resp, nil
	})
}

// Reload re-reads the Workrave exports now. A failed load answers 422 with the report;
// the previously published days stay available.
func (ac *ApiController) Reload(w http.ResponseWriter, r *http.Request) {
	report, err := ac.scheduler.Reload()
	if errors.Is(err, services.ErrReloadInProgress) {
		http.Error(w, "Conflict: reload already in progress", http.StatusConflict)
		return
	}

	gson, mErr := json.Marshal(report)
	if mErr != nil || report == nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if report.State == services.StateFailed {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, gson)
}
