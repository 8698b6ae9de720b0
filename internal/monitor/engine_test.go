package monitor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ethyield/stakewatch/internal/yield"
)

type fakePools struct {
	records []yield.Record
	err     error
	calls   int
}

func (f *fakePools) Pools(_ context.Context) ([]yield.Record, error) {
	f.calls++
	return f.records, f.err
}

type fakePrice struct{ price float64 }

func (f *fakePrice) ETHPrice(_ context.Context) float64 { return f.price }

type fakeGas struct{ gwei float64 }

func (f *fakeGas) GasGwei(_ context.Context) float64 { return f.gwei }

type memCache struct{ snap *yield.Snapshot }

func (m *memCache) Put(_ context.Context, s *yield.Snapshot) error { m.snap = s; return nil }
func (m *memCache) Get(_ context.Context) (*yield.Snapshot, error) { return m.snap, nil }

func testEngine(pools *fakePools) *Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEngine(pools, &fakePrice{price: 1600}, &fakeGas{gwei: 15}, Config{
		Interval:  time.Minute,
		StakeETH:  1.0,
		GasUnits:  210000,
		MinTVLUsd: 10_000,
	}, logger)
}

func TestRunCycleBuildsRankedSnapshot(t *testing.T) {
	pools := &fakePools{records: []yield.Record{
		{Protocol: "lido", Symbol: "STETH", Pool: "a", BaseAPY: 3.2, TVLUsd: 9e8},
		{Protocol: "junk", Symbol: "ETH", Pool: "b", BaseAPY: 5, TVLUsd: -1},
		{Protocol: "rocketpool", Symbol: "RETH", Pool: "c", BaseAPY: 2.9, TVLUsd: 8e7},
	}}
	e := testEngine(pools)

	if e.Current() != nil {
		t.Fatal("snapshot before first cycle should be nil")
	}
	if err := e.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle error: %v", err)
	}

	snap := e.Current()
	if snap == nil {
		t.Fatal("no snapshot after cycle")
	}
	if len(snap.Results) != 2 {
		t.Fatalf("ranked = %d, want 2", len(snap.Results))
	}
	if snap.Results[0].Protocol != "lido" {
		t.Errorf("top = %s, want lido", snap.Results[0].Protocol)
	}
	if snap.ETHPriceUSD != 1600 || snap.GasGwei != 15 {
		t.Errorf("market inputs = %v / %v", snap.ETHPriceUSD, snap.GasGwei)
	}
	if snap.Notice != "" {
		t.Errorf("unexpected notice %q", snap.Notice)
	}
}

func TestFailedCycleWithNoDataYieldsEmptyWithNotice(t *testing.T) {
	pools := &fakePools{err: errors.New("connection refused")}
	e := testEngine(pools)

	if err := e.RunCycle(context.Background()); err == nil {
		t.Fatal("want error from failed cycle")
	}

	snap := e.Current()
	if snap == nil {
		t.Fatal("failed cycle must still publish a snapshot")
	}
	if len(snap.Results) != 0 {
		t.Errorf("results = %+v, want empty", snap.Results)
	}
	if snap.Notice == "" {
		t.Error("want notice on failed cycle")
	}
}

func TestFailedCycleKeepsPreviousResults(t *testing.T) {
	pools := &fakePools{records: []yield.Record{
		{Protocol: "lido", Symbol: "STETH", Pool: "a", BaseAPY: 3.2, TVLUsd: 9e8},
	}}
	e := testEngine(pools)
	if err := e.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle error: %v", err)
	}
	good := e.Current()

	pools.err = errors.New("upstream down")
	if err := e.RunCycle(context.Background()); err == nil {
		t.Fatal("want error")
	}

	snap := e.Current()
	if len(snap.Results) != 1 {
		t.Fatalf("previous results lost: %+v", snap.Results)
	}
	if snap.Notice == "" {
		t.Error("stale snapshot must carry a notice")
	}
	if good.Notice != "" {
		t.Error("previously returned snapshot was mutated")
	}
}

func TestWarmStartSeedsFromCache(t *testing.T) {
	cached := &yield.Snapshot{
		FetchedAt: time.Now().Add(-time.Hour),
		Results:   []yield.Ranked{{Record: yield.Record{Protocol: "lido"}}},
	}
	e := testEngine(&fakePools{})
	e.AttachCache(&memCache{snap: cached})

	e.WarmStart(context.Background())
	snap := e.Current()
	if snap == nil || len(snap.Results) != 1 {
		t.Fatalf("warm start did not seed snapshot: %+v", snap)
	}
}

func TestGoodCycleWritesCache(t *testing.T) {
	mc := &memCache{}
	e := testEngine(&fakePools{records: []yield.Record{
		{Protocol: "lido", Symbol: "STETH", Pool: "a", BaseAPY: 3.2, TVLUsd: 9e8},
	}})
	e.AttachCache(mc)

	if err := e.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle error: %v", err)
	}
	if mc.snap == nil || len(mc.snap.Results) != 1 {
		t.Errorf("cache not written: %+v", mc.snap)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	pools := &fakePools{}
	e := testEngine(pools)
	e.cfg.Interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		e.Run(ctx)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancel")
	}
	if pools.calls < 2 {
		t.Errorf("calls = %d, want initial fetch plus ticks", pools.calls)
	}
}
