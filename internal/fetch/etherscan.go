package fetch

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const etherscanAPI = "https://api.etherscan.io/api"

// fallbackGwei is used whenever the gas oracle is unreachable or returns
// nothing parseable.
const fallbackGwei = 50.0

// Etherscan reads the current gas price from the Etherscan gas oracle.
type Etherscan struct {
	transport *transport
	baseURL   string
	apiKey    string
}

func NewEtherscan(apiKey string) *Etherscan {
	return &Etherscan{
		transport: newTransport("etherscan", 8*time.Second, rate.Limit(1), 2),
		baseURL:   etherscanAPI,
		apiKey:    apiKey,
	}
}

type gasOracleResponse struct {
	Status string `json:"status"`
	Result struct {
		SafeGasPrice    string `json:"SafeGasPrice"`
		ProposeGasPrice string `json:"ProposeGasPrice"`
		FastGasPrice    string `json:"FastGasPrice"`
	} `json:"result"`
}

// GasGwei returns the proposed gas price in gwei, preferring the standard
// tier over safe and fast. Falls back to fallbackGwei on any failure.
func (e *Etherscan) GasGwei(ctx context.Context) float64 {
	url := fmt.Sprintf("%s?module=gastracker&action=gasoracle&apikey=%s", e.baseURL, e.apiKey)

	var resp gasOracleResponse
	if err := e.transport.getJSON(ctx, url, &resp); err != nil {
		return fallbackGwei
	}

	for _, s := range []string{
		resp.Result.ProposeGasPrice,
		resp.Result.SafeGasPrice,
		resp.Result.FastGasPrice,
	} {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
			return v
		}
	}
	return fallbackGwei
}
