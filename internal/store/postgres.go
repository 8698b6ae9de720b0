package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ethyield/stakewatch/internal/yield"
)

// Store archives completed refresh cycles in Postgres. The archive is
// optional: when no DATABASE_URL is configured the service runs without it.
type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Close() { s.pool.Close() }

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

// Cycle is one archived refresh cycle: the market inputs plus the winner.
type Cycle struct {
	ID          int64     `json:"id"`
	FetchedAt   time.Time `json:"fetched_at"`
	ETHPriceUSD float64   `json:"eth_price_usd"`
	GasGwei     float64   `json:"gas_gwei"`
	PoolCount   int       `json:"pool_count"`
	TopProtocol string    `json:"top_protocol"`
	TopSymbol   string    `json:"top_symbol"`
	TopNetAPY   float64   `json:"top_net_apy"`
	TopScore    float64   `json:"top_score"`
}

// InsertCycle archives one completed snapshot.
func (s *Store) InsertCycle(ctx context.Context, snap *yield.Snapshot) error {
	var topProtocol, topSymbol string
	var topNetAPY float64
	if len(snap.Results) > 0 {
		topProtocol = snap.Results[0].Protocol
		topSymbol = snap.Results[0].Symbol
		topNetAPY = snap.Results[0].NetAPY
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO cycles (fetched_at, eth_price_usd, gas_gwei, pool_count, top_protocol, top_symbol, top_net_apy, top_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		snap.FetchedAt, snap.ETHPriceUSD, snap.GasGwei, len(snap.Results),
		topProtocol, topSymbol, topNetAPY, snap.TopScore())
	return err
}

// RecentCycles returns the newest archived cycles, newest first.
func (s *Store) RecentCycles(ctx context.Context, limit int) ([]Cycle, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, fetched_at, eth_price_usd, gas_gwei, pool_count, top_protocol, top_symbol, top_net_apy, top_score
		FROM cycles
		ORDER BY fetched_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []Cycle
	for rows.Next() {
		var c Cycle
		if err := rows.Scan(&c.ID, &c.FetchedAt, &c.ETHPriceUSD, &c.GasGwei, &c.PoolCount,
			&c.TopProtocol, &c.TopSymbol, &c.TopNetAPY, &c.TopScore); err != nil {
			return nil, err
		}
		cycles = append(cycles, c)
	}
	return cycles, rows.Err()
}

// CleanupOldCycles deletes archived cycles older than maxAge.
func (s *Store) CleanupOldCycles(ctx context.Context, maxAge time.Duration) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM cycles WHERE fetched_at < $1`, time.Now().Add(-maxAge))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
