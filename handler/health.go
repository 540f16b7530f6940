package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/LexiconIndonesia/country-currency-service/common"
	"github.com/LexiconIndonesia/country-currency-service/common/utils"
	"github.com/go-chi/chi/v5"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	database Pinger
	redis    Pinger
	router   *chi.Mux
}

// NewHealthHandler creates a HealthHandler. redis may be nil when the run
// lock is disabled.
func NewHealthHandler(database Pinger, redis Pinger) *HealthHandler {
	h := &HealthHandler{
		database: database,
		redis:    redis,
	}

	r := chi.NewRouter()
	r.Get("/", h.handleHealthCheck)
	r.Get("/database", h.handleDatabaseHealth)

	h.router = r
	return h
}

func (h *HealthHandler) Router() *chi.Mux {
	return h.router
}

func (h *HealthHandler) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   common.AppName,
	}

	utils.WriteJSON(w, http.StatusOK, response)
}

func (h *HealthHandler) handleDatabaseHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	dbHealth := dependencyHealth(ctx, h.database)
	if dbHealth["status"] != "healthy" {
		status = http.StatusServiceUnavailable
	}

	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"database":  dbHealth,
	}

	if h.redis != nil {
		redisHealth := dependencyHealth(ctx, h.redis)
		response["redis"] = redisHealth
		if redisHealth["status"] != "healthy" {
			status = http.StatusServiceUnavailable
		}
	}

	if status != http.StatusOK {
		response["status"] = "unhealthy"
	}
	utils.WriteJSON(w, status, response)
}

func dependencyHealth(ctx context.Context, p Pinger) map[string]interface{} {
	if err := p.Ping(ctx); err != nil {
		return map[string]interface{}{
			"status": "unhealthy",
			"error":  err.Error(),
		}
	}
	return map[string]interface{}{"status": "healthy"}
}
