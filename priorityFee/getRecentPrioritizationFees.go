package priorityFee

import (
	"context"
	"slices"

	libsolana "bankgo/lib/solana"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// GetRecentPrioritizationFeesEx is getRecentPrioritizationFees with the optional
// percentile parameter some providers accept. A node keeps up to 150 blocks.
func GetRecentPrioritizationFeesEx(
	cl libsolana.RPCCaller,
	ctx context.Context,
	accounts solana.PublicKeySlice,
	percentile uint,
) (out []rpc.PriorizationFeeResult, err error) {
	params := []interface{}{accounts}
	if percentile > 0 {
		params = append(params, rpc.M{"percentile": percentile})
	}
	err = cl.RPCCallForInto(ctx, &out, "getRecentPrioritizationFees", params)
	return
}

// FetchSamples returns the fees of the lookbackDistance slots before the newest
// sample, newest first.
func FetchSamples(
	ctx context.Context,
	cl libsolana.RPCCaller,
	lookbackDistance uint64,
	addresses solana.PublicKeySlice,
	percentile uint,
) ([]Sample, error) {
	response, err := GetRecentPrioritizationFeesEx(cl, ctx, addresses, percentile)
	if err != nil {
		return nil, err
	}
	if len(response) == 0 {
		return nil, nil
	}
	slices.SortFunc(response, func(a, b rpc.PriorizationFeeResult) int {
		switch {
		case a.Slot < b.Slot:
			return 1
		case a.Slot > b.Slot:
			return -1
		}
		return 0
	})

	var cutoffSlot uint64
	if response[0].Slot > lookbackDistance {
		cutoffSlot = response[0].Slot - lookbackDistance
	}
	samples := make([]Sample, 0, len(response))
	for _, result := range response {
		if result.Slot >= cutoffSlot {
			samples = append(samples, Sample{Slot: result.Slot, PrioritizationFee: result.PrioritizationFee})
		}
	}
	return samples, nil
}
