package yield

import "strings"

// Record is a single staking-pool yield reading from the aggregator.
// Records are transient: each refresh cycle replaces the previous batch.
type Record struct {
	Protocol   string  `json:"protocol"`
	Symbol     string  `json:"symbol"`
	Pool       string  `json:"pool"`
	Chain      string  `json:"chain"`
	BaseAPY    float64 `json:"base_apy"`
	RewardAPY  float64 `json:"reward_apy"`
	TVLUsd     float64 `json:"tvl_usd"`
	Stablecoin bool    `json:"stablecoin"`
	Illiquid   bool    `json:"illiquid"`
	URL        string  `json:"url"`
}

// Valid reports whether the record passes basic quality checks.
// Invalid records are discarded, never corrected.
func (r *Record) Valid() bool {
	return r.Protocol != "" && r.BaseAPY >= 0 && r.RewardAPY >= 0 && r.TVLUsd >= 0
}

// APY returns the total advertised APY in percent.
func (r *Record) APY() float64 {
	return r.BaseAPY + r.RewardAPY
}

// ethSymbols are the staking assets the ranker admits.
var ethSymbols = map[string]bool{
	"ETH": true, "WETH": true, "STETH": true,
	"WSTETH": true, "RETH": true, "CBETH": true,
}

// IsETH reports whether the record's symbol is ETH or a liquid staking
// derivative of it.
func (r *Record) IsETH() bool {
	return ethSymbols[strings.ToUpper(r.Symbol)]
}
