package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ethyield/stakewatch/internal/config"
	"github.com/ethyield/stakewatch/internal/fetch"
	"github.com/ethyield/stakewatch/internal/monitor"
)

var rootCmd = &cobra.Command{
	Use:   "stakewatch",
	Short: "ETH staking yield monitor",
	Long: `stakewatch fetches ETH staking-pool yields from DefiLlama, adjusts them
for current gas costs, ranks them by a risk-adjusted score, and serves the
result over HTTP or prints it to the console.`,
}

func init() {
	rootCmd.AddCommand(serveCmd, scanCmd)
}

func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel}))
}

func buildEngine(cfg config.Config, logger *slog.Logger) *monitor.Engine {
	return monitor.NewEngine(
		fetch.NewLlama(),
		fetch.NewCoinGecko(cfg.DefaultETHPriceUSD),
		fetch.NewEtherscan(cfg.EtherscanAPIKey),
		monitor.Config{
			Interval:  cfg.RefreshInterval,
			StakeETH:  cfg.StakeETH,
			GasUnits:  cfg.GasUnitsRebalance,
			MinTVLUsd: cfg.MinTVLUsd,
		},
		logger,
	)
}
