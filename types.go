package go_bank

import "github.com/gagliardetto/solana-go/rpc"

type ConfirmOptions struct {
	rpc.TransactionOpts
	Commitment rpc.CommitmentType
}

func DefaultConfirmOptions() ConfirmOptions {
	return ConfirmOptions{
		TransactionOpts: rpc.TransactionOpts{
			PreflightCommitment: rpc.CommitmentConfirmed,
		},
		Commitment: rpc.CommitmentConfirmed,
	}
}

type BaseTxParams struct {
	ComputeUnits      uint64
	ComputeUnitsPrice uint64
}

type ProcessingTxParams struct {
	UseSimulatedComputeUnits                     *bool
	ComputeUnitsBufferMultiplier                 *float64
	UseSimulateComputeUnitsForCUPriceCalculation *bool
	GetCUPriceFromComputeUnits                   func(uint64) uint64
}

type TxParams struct {
	BaseTxParams
	ProcessingTxParams
}
