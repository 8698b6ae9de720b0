package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ethyield/stakewatch/internal/config"
	"github.com/ethyield/stakewatch/internal/present"
)

var (
	scanStake   float64
	scanLimit   int
	scanOut     string
	scanTimeout time.Duration
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one refresh cycle and print the ranking",
	Long: `Fetch the current pool batch once, rank it, and print the top results as a
table. With --out the full snapshot is also written as JSON.`,
	RunE: runScan,
}

func init() {
	addScanFlags(scanCmd.Flags())
}

func addScanFlags(fs *pflag.FlagSet) {
	fs.Float64Var(&scanStake, "stake", 0, "stake size in ETH for the gas adjustment (overrides STAKE_ETH)")
	fs.IntVar(&scanLimit, "limit", 8, "number of pools to print")
	fs.StringVar(&scanOut, "out", "", "also write the snapshot JSON to this path")
	fs.DurationVar(&scanTimeout, "timeout", 60*time.Second, "overall fetch deadline")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if scanStake > 0 {
		cfg.StakeETH = scanStake
	}
	// Logs go to stderr so the table stays pipeable.
	logger := newLogger(os.Stderr, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	engine := buildEngine(cfg, logger)
	if err := engine.RunCycle(ctx); err != nil {
		// Not fatal: the snapshot carries the notice and the presenters
		// render the empty-with-notice state.
		logger.Error("cycle failed", "error", err)
	}

	snap := engine.Current()
	if snap == nil {
		return errors.New("no snapshot produced")
	}

	presenters := []present.Presenter{present.NewConsole(scanLimit)}
	if scanOut != "" {
		presenters = append(presenters, present.NewFileWriter(scanOut))
	}
	for _, p := range presenters {
		if err := p.Present(snap); err != nil {
			return err
		}
	}
	return nil
}
