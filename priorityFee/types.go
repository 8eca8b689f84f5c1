package priorityFee

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
)

const DEFAULT_SLOTS_TO_CHECK = uint64(50)

const DEFAULT_CACHE_TTL = 10 * time.Second

type StrategyName string

const (
	StrategyAverage StrategyName = "average"
	StrategyMax     StrategyName = "max"
)

type Sample struct {
	Slot              uint64
	PrioritizationFee uint64
}

type IPriorityFeeStrategy interface {
	Calculate(samples []Sample) uint64
}

// IPriorityFeeEstimator prices compute units, in micro-lamports, for a
// transaction that write locks addresses.
type IPriorityFeeEstimator interface {
	Estimate(ctx context.Context, addresses []solana.PublicKey) (uint64, error)
}

type EstimatorConfig struct {
	// lookback window, in slots, counted back from the newest sample
	SlotsToCheck uint64
	Strategy     StrategyName
	// multiplier applied before MaxFeeMicroLamports, defaults to 1.0
	Multiplier float64
	// clamp for the returned price; 0 disables it
	MaxFeeMicroLamports uint64
	Percentile          uint
	// how long an estimate is reused for the same address set
	CacheTTL time.Duration
}
