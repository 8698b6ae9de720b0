package present

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/ethyield/stakewatch/internal/yield"
)

// Console renders the top of the ranking as a table on stdout.
type Console struct {
	out   io.Writer
	limit int
}

func NewConsole(limit int) *Console {
	return &Console{out: os.Stdout, limit: limit}
}

// NewConsoleWriter creates a console presenter for tests.
func NewConsoleWriter(w io.Writer, limit int) *Console {
	return &Console{out: w, limit: limit}
}

func (c *Console) Present(snap *yield.Snapshot) error {
	fmt.Fprintf(c.out, "[%s] ETH $%.2f | gas %.1f gwei | stake %.2f ETH\n",
		snap.FetchedAt.Format(time.RFC3339), snap.ETHPriceUSD, snap.GasGwei, snap.StakeETH)
	if snap.Notice != "" {
		fmt.Fprintf(c.out, "notice: %s\n", snap.Notice)
	}
	if len(snap.Results) == 0 {
		fmt.Fprintln(c.out, "no pools to show")
		return nil
	}

	count := c.limit
	if count <= 0 || count > len(snap.Results) {
		count = len(snap.Results)
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Protocol", "Symbol", "Chain", "Net APY", "APY", "TVL", "Score")
	for i := 0; i < count; i++ {
		r := snap.Results[i]
		table.Append(
			fmt.Sprintf("%d", i+1),
			r.Protocol,
			r.Symbol,
			r.Chain,
			fmt.Sprintf("%.2f%%", r.NetAPY),
			fmt.Sprintf("%.2f%%", r.APY()),
			"$"+fmtTVL(r.TVLUsd),
			fmt.Sprintf("%.3f", r.Score),
		)
	}
	table.Render()

	fmt.Fprintf(c.out, "%d of %d ranked pools shown\n", count, len(snap.Results))
	return nil
}

func fmtTVL(v float64) string {
	if v >= 1_000_000_000 {
		return fmt.Sprintf("%.2fB", v/1_000_000_000)
	}
	if v >= 1_000_000 {
		return fmt.Sprintf("%.1fM", v/1_000_000)
	}
	if v >= 1_000 {
		return fmt.Sprintf("%.0fK", v/1_000)
	}
	return fmt.Sprintf("%.0f", v)
}
