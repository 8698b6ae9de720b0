package yield

import "time"

// Snapshot is the output of one refresh cycle: the ranked pool list plus the
// market inputs the ranking was computed against.
type Snapshot struct {
	FetchedAt   time.Time `json:"fetched_at"`
	ETHPriceUSD float64   `json:"eth_price_usd"`
	GasGwei     float64   `json:"gas_gwei"`
	GasETH      float64   `json:"gas_eth"`
	StakeETH    float64   `json:"stake_eth"`
	Notice      string    `json:"notice,omitempty"`
	Results     []Ranked  `json:"results"`
}

// TopScore returns the score of the best-ranked pool, or 0 when empty.
func (s *Snapshot) TopScore() float64 {
	if len(s.Results) == 0 {
		return 0
	}
	return s.Results[0].Score
}

// Age returns how old the snapshot is.
func (s *Snapshot) Age() time.Duration {
	return time.Since(s.FetchedAt)
}
