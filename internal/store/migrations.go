package store

import "context"

const migrationSQL = `
CREATE TABLE IF NOT EXISTS cycles (
    id BIGSERIAL PRIMARY KEY,
    fetched_at TIMESTAMPTZ NOT NULL,
    eth_price_usd DOUBLE PRECISION NOT NULL,
    gas_gwei DOUBLE PRECISION NOT NULL,
    pool_count INT NOT NULL,
    top_protocol TEXT NOT NULL DEFAULT '',
    top_symbol TEXT NOT NULL DEFAULT '',
    top_net_apy DOUBLE PRECISION NOT NULL DEFAULT 0,
    top_score DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS cycles_fetched_at_idx ON cycles (fetched_at DESC);
`

func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, migrationSQL)
	return err
}
