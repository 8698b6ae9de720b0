package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ethyield/stakewatch/internal/store"
)

const defaultHistoryLimit = 50

// CycleReader reads archived refresh cycles.
type CycleReader interface {
	RecentCycles(ctx context.Context, limit int) ([]store.Cycle, error)
}

// History serves recent archived cycles, newest first. Returns 503 when the
// archive is not configured.
func History(cycles CycleReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cycles == nil {
			http.Error(w, `{"error":"cycle archive not configured"}`, http.StatusServiceUnavailable)
			return
		}

		limit := queryInt(r, "limit", defaultHistoryLimit)
		recent, err := cycles.RecentCycles(r.Context(), limit)
		if err != nil {
			http.Error(w, `{"error":"failed to read history"}`, http.StatusInternalServerError)
			return
		}
		if recent == nil {
			recent = []store.Cycle{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(recent)
	}
}
