package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ethyield/stakewatch/internal/metrics"
	"github.com/ethyield/stakewatch/internal/yield"
)

// PoolFetcher retrieves the raw batch of yield records. This is the only
// fetch that can fail a cycle.
type PoolFetcher interface {
	Pools(ctx context.Context) ([]yield.Record, error)
}

// PriceFetcher and GasFetcher are enrichment reads; implementations return a
// default value instead of an error.
type PriceFetcher interface {
	ETHPrice(ctx context.Context) float64
}

type GasFetcher interface {
	GasGwei(ctx context.Context) float64
}

// SnapshotCache persists the latest snapshot across restarts.
type SnapshotCache interface {
	Put(ctx context.Context, snap *yield.Snapshot) error
	Get(ctx context.Context) (*yield.Snapshot, error)
}

// CycleArchive records completed refresh cycles.
type CycleArchive interface {
	InsertCycle(ctx context.Context, snap *yield.Snapshot) error
}

// Config holds the refresh-cycle knobs.
type Config struct {
	Interval  time.Duration
	StakeETH  float64
	GasUnits  int
	MinTVLUsd float64
}

// Engine drives the fetch → rank → publish cycle and holds the current
// snapshot for presenters. A failed cycle never crashes the process: the
// previous snapshot stays available with a notice, and the next tick retries
// independently.
type Engine struct {
	pools   PoolFetcher
	price   PriceFetcher
	gas     GasFetcher
	cfg     Config
	logger  *slog.Logger
	cache   SnapshotCache
	archive CycleArchive

	mu      sync.RWMutex
	current *yield.Snapshot
}

func NewEngine(pools PoolFetcher, price PriceFetcher, gas GasFetcher, cfg Config, logger *slog.Logger) *Engine {
	return &Engine{
		pools:  pools,
		price:  price,
		gas:    gas,
		cfg:    cfg,
		logger: logger,
	}
}

// AttachCache enables snapshot persistence across restarts.
func (e *Engine) AttachCache(c SnapshotCache) { e.cache = c }

// AttachArchive enables cycle history recording.
func (e *Engine) AttachArchive(a CycleArchive) { e.archive = a }

// Current returns the latest snapshot, or nil before the first cycle.
func (e *Engine) Current() *yield.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// WarmStart seeds the current snapshot from the cache so a restarted process
// can answer queries before its first fetch completes.
func (e *Engine) WarmStart(ctx context.Context) {
	if e.cache == nil {
		return
	}
	snap, err := e.cache.Get(ctx)
	if err != nil {
		e.logger.Warn("snapshot cache read failed", "error", err)
		return
	}
	if snap == nil {
		return
	}
	e.mu.Lock()
	if e.current == nil {
		e.current = snap
	}
	e.mu.Unlock()
	e.logger.Info("warm start from cached snapshot",
		"fetched_at", snap.FetchedAt.Format(time.RFC3339), "pools", len(snap.Results))
}

// Run performs an initial cycle and then refreshes on a ticker until the
// context is cancelled.
func (e *Engine) Run(ctx context.Context) {
	_ = e.RunCycle(ctx)

	ticker := time.NewTicker(e.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = e.RunCycle(ctx)
		}
	}
}

// RunCycle executes one fetch → rank → publish pass.
func (e *Engine) RunCycle(ctx context.Context) error {
	start := time.Now()
	records, err := e.pools.Pools(ctx)
	metrics.FetchDuration.WithLabelValues("pools").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FetchTotal.WithLabelValues("pools", "error").Inc()
		e.logger.Error("fetch pools failed", "error", err)
		e.publishFailure(err)
		return err
	}
	metrics.FetchTotal.WithLabelValues("pools", "ok").Inc()
	metrics.FetchLastSuccess.WithLabelValues("pools").SetToCurrentTime()

	price := e.price.ETHPrice(ctx)
	gwei := e.gas.GasGwei(ctx)
	gasETH := yield.GasETH(e.cfg.GasUnits, gwei)

	ranked := yield.Rank(records, yield.Params{
		MinTVLUsd:   e.cfg.MinTVLUsd,
		GasETH:      gasETH,
		ETHPriceUSD: price,
		StakeETH:    e.cfg.StakeETH,
	})

	snap := &yield.Snapshot{
		FetchedAt:   time.Now().UTC(),
		ETHPriceUSD: price,
		GasGwei:     gwei,
		GasETH:      gasETH,
		StakeETH:    e.cfg.StakeETH,
		Results:     ranked,
	}

	e.mu.Lock()
	e.current = snap
	e.mu.Unlock()

	metrics.SnapshotPools.Set(float64(len(ranked)))
	metrics.SnapshotTopScore.Set(snap.TopScore())
	metrics.SnapshotETHPrice.Set(price)
	metrics.SnapshotGasGwei.Set(gwei)

	e.logger.Info("snapshot",
		"fetched", len(records),
		"ranked", len(ranked),
		"eth_price_usd", price,
		"gas_gwei", gwei,
	)

	if e.cache != nil {
		if err := e.cache.Put(ctx, snap); err != nil {
			e.logger.Warn("snapshot cache write failed", "error", err)
		}
	}
	if e.archive != nil {
		if err := e.archive.InsertCycle(ctx, snap); err != nil {
			e.logger.Warn("cycle archive write failed", "error", err)
		}
	}
	return nil
}

// publishFailure surfaces a failed cycle to presenters. With no prior data
// the snapshot is empty with a notice; otherwise the previous results stay
// up, age-marked by the notice.
func (e *Engine) publishFailure(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		e.current = &yield.Snapshot{
			FetchedAt: time.Now().UTC(),
			StakeETH:  e.cfg.StakeETH,
			Notice:    fmt.Sprintf("refresh failed: %v", err),
			Results:   []yield.Ranked{},
		}
		return
	}
	// Copy so presenters holding the old pointer never see a mutation.
	stale := *e.current
	stale.Notice = fmt.Sprintf("refresh failed: %v; showing results from %s",
		err, e.current.FetchedAt.Format(time.RFC3339))
	e.current = &stale
}
