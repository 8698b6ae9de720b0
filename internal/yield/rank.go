package yield

import "sort"

const (
	// fullWeightTVL is the TVL above which a pool carries no size penalty.
	fullWeightTVL = 10_000_000
	// minTVLWeight keeps small-but-admitted pools from scoring exactly zero.
	minTVLWeight = 0.1
	// illiquidPenalty halves the score of pools flagged illiquid.
	illiquidPenalty = 0.5
)

// Params controls admission and scoring for one ranking pass.
type Params struct {
	MinTVLUsd   float64 // admission floor in USD
	GasETH      float64 // estimated cost of one rebalance in ETH
	ETHPriceUSD float64
	StakeETH    float64 // position size the net APY is computed against
}

// Ranked is a record that passed filtering, with its derived values.
type Ranked struct {
	Record
	NetAPY float64 `json:"net_apy"`
	Score  float64 `json:"score"`
}

// GasETH converts a gas budget in units and a gas price in gwei to ETH.
func GasETH(gasUnits int, gasGwei float64) float64 {
	wei := float64(gasUnits) * gasGwei * 1e9
	return wei / 1e18
}

// NetAPY discounts an advertised APY (percent) by the gas cost of entering
// the position, expressed as a percentage of the staked amount. Never
// negative: a pool that cannot cover its own gas is worth zero, not less.
func NetAPY(apy, gasETH, ethPriceUSD, stakeETH float64) float64 {
	stakeUSD := stakeETH * ethPriceUSD
	if stakeUSD <= 0 {
		return max(0, apy)
	}
	gasImpact := gasETH * ethPriceUSD / stakeUSD * 100
	return max(0, apy-gasImpact)
}

// score is net APY weighted by pool size and liquidity. TVL weight ramps
// linearly up to fullWeightTVL so a thin pool advertising a huge APY ranks
// below an established pool with a moderate one.
func score(r Record, netAPY float64) float64 {
	w := r.TVLUsd / fullWeightTVL
	if w > 1 {
		w = 1
	}
	if w < minTVLWeight {
		w = minTVLWeight
	}
	if r.Illiquid {
		w *= illiquidPenalty
	}
	return netAPY * w
}

// Rank filters a fetched batch and orders it descending by risk-adjusted
// score. Invalid records, non-ETH assets, and pools at or below the TVL
// floor are dropped. The sort is total and deterministic: ties break on
// (protocol, pool), so ranking the same batch twice yields identical output.
func Rank(records []Record, p Params) []Ranked {
	ranked := make([]Ranked, 0, len(records))
	for _, r := range records {
		if !r.Valid() || !r.IsETH() || r.TVLUsd <= p.MinTVLUsd {
			continue
		}
		net := NetAPY(r.APY(), p.GasETH, p.ETHPriceUSD, p.StakeETH)
		ranked = append(ranked, Ranked{
			Record: r,
			NetAPY: net,
			Score:  score(r, net),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].Protocol != ranked[j].Protocol {
			return ranked[i].Protocol < ranked[j].Protocol
		}
		return ranked[i].Pool < ranked[j].Pool
	})
	return ranked
}
