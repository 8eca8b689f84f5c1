package priorityFee

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	libsolana "bankgo/lib/solana"
	"bankgo/utils"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

type cachedEstimate struct {
	price uint64
	at    time.Time
}

// PriorityFeeEstimator samples recent prioritization fees of the accounts a
// transaction write locks and reduces them with a strategy.
type PriorityFeeEstimator struct {
	connection            libsolana.RPCCaller
	strategy              IPriorityFeeStrategy
	lookbackDistance      uint64
	priorityFeeMultiplier float64
	maxFeeMicroLamports   uint64
	percentile            uint
	cacheTTL              time.Duration
	logger                *zap.Logger

	mu    sync.Mutex
	cache map[string]cachedEstimate
	now   func() time.Time
}

func CreatePriorityFeeEstimator(connection libsolana.RPCCaller, config EstimatorConfig, logger *zap.Logger) *PriorityFeeEstimator {
	return &PriorityFeeEstimator{
		connection:            connection,
		strategy:              StrategyFor(config.Strategy),
		lookbackDistance:      utils.TT(config.SlotsToCheck > 0, config.SlotsToCheck, DEFAULT_SLOTS_TO_CHECK),
		priorityFeeMultiplier: utils.TT(config.Multiplier > 0.0, config.Multiplier, 1.0),
		maxFeeMicroLamports:   config.MaxFeeMicroLamports,
		percentile:            config.Percentile,
		cacheTTL:              config.CacheTTL,
		logger:                utils.TT(logger == nil, zap.NewNop(), logger),
		cache:                 make(map[string]cachedEstimate),
		now:                   time.Now,
	}
}

func (p *PriorityFeeEstimator) Estimate(ctx context.Context, addresses []solana.PublicKey) (uint64, error) {
	key := cacheKey(addresses)
	if p.cacheTTL > 0 {
		p.mu.Lock()
		cached, exists := p.cache[key]
		p.mu.Unlock()
		if exists && p.now().Sub(cached.at) < p.cacheTTL {
			return cached.price, nil
		}
	}

	samples, err := FetchSamples(ctx, p.connection, p.lookbackDistance, addresses, p.percentile)
	if err != nil {
		return 0, err
	}
	raw := p.strategy.Calculate(samples)
	price := p.clamp(raw)
	p.logger.Debug("priority fee estimated",
		zap.Int("samples", len(samples)),
		zap.Uint64("raw", raw),
		zap.Uint64("price", price),
	)

	if p.cacheTTL > 0 {
		p.mu.Lock()
		p.cache[key] = cachedEstimate{price: price, at: p.now()}
		p.mu.Unlock()
	}
	return price, nil
}

func (p *PriorityFeeEstimator) clamp(raw uint64) uint64 {
	result := uint64(float64(raw) * p.priorityFeeMultiplier)
	if p.maxFeeMicroLamports > 0 && result > p.maxFeeMicroLamports {
		return p.maxFeeMicroLamports
	}
	return result
}

func cacheKey(addresses []solana.PublicKey) string {
	keys := make([]string, len(addresses))
	for idx, address := range addresses {
		keys[idx] = address.String()
	}
	slices.Sort(keys)
	return strings.Join(keys, ",")
}

// WritableAccounts lists the write locked accounts of ixs, each once.
func WritableAccounts(ixs ...solana.Instruction) []solana.PublicKey {
	var writable []solana.PublicKey
	for _, ix := range ixs {
		for _, meta := range ix.Accounts() {
			if meta.IsWritable && !slices.Contains(writable, meta.PublicKey) {
				writable = append(writable, meta.PublicKey)
			}
		}
	}
	return writable
}
