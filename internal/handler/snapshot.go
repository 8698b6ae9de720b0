package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ethyield/stakewatch/internal/yield"
)

// SnapshotSource provides the current snapshot, nil before the first cycle.
type SnapshotSource interface {
	Current() *yield.Snapshot
}

// Snapshot serves the full current snapshot.
func Snapshot(src SnapshotSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := src.Current()
		if snap == nil {
			http.Error(w, `{"error":"no data available yet"}`, http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(snap)
	}
}
