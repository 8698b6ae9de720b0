// Package present renders a snapshot to a display surface. The HTTP API is
// the serve-mode surface; these implementations back the one-shot scan mode.
package present

import "github.com/ethyield/stakewatch/internal/yield"

// Presenter renders one snapshot. Implementations hold no state beyond the
// current batch.
type Presenter interface {
	Present(snap *yield.Snapshot) error
}
