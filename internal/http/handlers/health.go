package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/rating"
	"github.com/mauv0809/courtside/internal/tennis"
)

func HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// StatsHandler serves the persistent usage counters.
func StatsHandler(store metrics.MetricsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := store.GetAll()
		if err != nil {
			writeError(w, "Failed to get usage counters", err)
			return
		}
		writeJSON(w, http.StatusOK, counters)
	}
}

// TiersHandler returns the tier table, or the tier of ?rating=N.
func TiersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("rating")
		if raw == "" {
			writeJSON(w, http.StatusOK, rating.Tiers())
			return
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, "Invalid rating", fmt.Errorf("%w: rating %q is not an integer", tennis.ErrInvalidArgument, raw))
			return
		}
		writeJSON(w, http.StatusOK, rating.ComputeTier(value))
	}
}
