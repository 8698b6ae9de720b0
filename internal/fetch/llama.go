package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/ethyield/stakewatch/internal/yield"
	"golang.org/x/time/rate"
)

// DefiLlama has moved its yields endpoint before; try candidates in order.
var defaultLlamaURLs = []string{
	"https://yields.llama.fi/pools",
	"https://api.llama.fi/pools",
	"https://yields.llama.fi/poolsV2",
}

// Llama fetches the staking-pool batch from the DefiLlama yields API.
type Llama struct {
	transport *transport
	urls      []string
}

func NewLlama() *Llama {
	return &Llama{
		transport: newTransport("defillama", 15*time.Second, rate.Limit(2), 2),
		urls:      defaultLlamaURLs,
	}
}

type llamaResponse struct {
	Status string      `json:"status"`
	Data   []llamaPool `json:"data"`
}

type llamaPool struct {
	Pool       string  `json:"pool"`
	Chain      string  `json:"chain"`
	Project    string  `json:"project"`
	Symbol     string  `json:"symbol"`
	TVLUsd     float64 `json:"tvlUsd"`
	APY        float64 `json:"apy"`
	APYBase    float64 `json:"apyBase"`
	APYReward  float64 `json:"apyReward"`
	StableCoin bool    `json:"stablecoin"`
	ILRisk     string  `json:"ilRisk"`
}

// Pools returns the current batch of yield records. Each endpoint candidate
// gets one shot (the transport already retries transient failures once); the
// last error is returned when every candidate fails.
func (l *Llama) Pools(ctx context.Context) ([]yield.Record, error) {
	var lastErr error
	for _, url := range l.urls {
		var resp llamaResponse
		if err := l.transport.getJSON(ctx, url, &resp); err != nil {
			lastErr = err
			continue
		}
		return toRecords(resp.Data), nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("%w: no endpoints configured", ErrNetwork)
	}
	return nil, fmt.Errorf("defillama pools: %w", lastErr)
}

func toRecords(pools []llamaPool) []yield.Record {
	records := make([]yield.Record, 0, len(pools))
	for _, p := range pools {
		r := yield.Record{
			Protocol:   p.Project,
			Symbol:     p.Symbol,
			Pool:       p.Pool,
			Chain:      p.Chain,
			BaseAPY:    p.APYBase,
			RewardAPY:  p.APYReward,
			TVLUsd:     p.TVLUsd,
			Stablecoin: p.StableCoin,
			Illiquid:   p.ILRisk == "yes",
		}
		// Some pools report only the combined apy field.
		if r.BaseAPY == 0 && r.RewardAPY == 0 {
			r.BaseAPY = p.APY
		}
		if p.Pool != "" {
			r.URL = fmt.Sprintf("https://defillama.com/yields/pool/%s", p.Pool)
		}
		records = append(records, r)
	}
	return records
}
