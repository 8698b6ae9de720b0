package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ethyield/stakewatch/internal/yield"
)

const defaultPoolLimit = 25

type poolsResponse struct {
	FetchedAt time.Time      `json:"fetched_at"`
	Notice    string         `json:"notice,omitempty"`
	Count     int            `json:"count"`
	Results   []yield.Ranked `json:"results"`
}

// Pools serves a filtered view of the current ranking. The ranking order is
// preserved; filters only narrow it.
func Pools(src SnapshotSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := src.Current()
		if snap == nil {
			http.Error(w, `{"error":"no data available yet"}`, http.StatusServiceUnavailable)
			return
		}

		minAPY := queryFloat(r, "min_apy", 0)
		minTVL := queryFloat(r, "min_tvl", 0)
		limit := queryInt(r, "limit", defaultPoolLimit)

		results := []yield.Ranked{}
		for _, res := range snap.Results {
			if res.NetAPY < minAPY || res.TVLUsd < minTVL {
				continue
			}
			results = append(results, res)
			if len(results) >= limit {
				break
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(poolsResponse{
			FetchedAt: snap.FetchedAt,
			Notice:    snap.Notice,
			Count:     len(results),
			Results:   results,
		})
	}
}

func queryFloat(r *http.Request, key string, fallback float64) float64 {
	if s := r.URL.Query().Get(key); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return fallback
}

func queryInt(r *http.Request, key string, fallback int) int {
	if s := r.URL.Query().Get(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
