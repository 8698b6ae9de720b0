package fetch

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

const coingeckoAPI = "https://api.coingecko.com/api/v3/simple/price?ids=ethereum&vs_currencies=usd"

// CoinGecko reads the ETH spot price. Price is enrichment data for the gas
// adjustment, so any failure falls back to the configured default instead of
// failing the cycle.
type CoinGecko struct {
	transport    *transport
	baseURL      string
	defaultPrice float64
}

func NewCoinGecko(defaultPrice float64) *CoinGecko {
	return &CoinGecko{
		transport:    newTransport("coingecko", 8*time.Second, rate.Limit(1), 2),
		baseURL:      coingeckoAPI,
		defaultPrice: defaultPrice,
	}
}

type coingeckoResponse struct {
	Ethereum struct {
		USD float64 `json:"usd"`
	} `json:"ethereum"`
}

// ETHPrice returns the current ETH/USD price, or the default on any failure.
func (c *CoinGecko) ETHPrice(ctx context.Context) float64 {
	var resp coingeckoResponse
	if err := c.transport.getJSON(ctx, c.baseURL, &resp); err != nil {
		return c.defaultPrice
	}
	if resp.Ethereum.USD <= 0 {
		return c.defaultPrice
	}
	return resp.Ethereum.USD
}
