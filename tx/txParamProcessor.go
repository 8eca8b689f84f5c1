package tx

import (
	"context"
	"fmt"
	"math"

	go_bank "bankgo"
	"bankgo/connection"
	"bankgo/utils"

	"github.com/gagliardetto/solana-go"
	addresslookuptable "github.com/gagliardetto/solana-go/programs/address-lookup-table"
	"github.com/gagliardetto/solana-go/rpc"
)

const COMPUTE_UNIT_BUFFER_FACTOR = 1.2

const MAX_COMPUTE_UNITS = 1_400_000

type TransactionProps struct {
	Instructions []solana.Instruction
	TxParams     go_bank.BaseTxParams
	LookupTables []addresslookuptable.KeyedAddressLookupTable
}

func GetComputeUnitsFromSim(
	txSim *rpc.SimulateTransactionResponse,
) *uint64 {
	if txSim != nil && txSim.Value != nil && txSim.Value.UnitsConsumed != nil {
		units := *txSim.Value.UnitsConsumed
		return &units
	}
	return nil
}

// GetTxSimComputeUnits reports false when the node could not simulate. A
// simulation that ran and failed is a remote rejection.
func GetTxSimComputeUnits(
	ctx context.Context,
	tx *solana.Transaction,
	connection connection.IRpcConnection,
) (bool, uint64, error) {
	if len(tx.Signatures) == 0 {
		tx.Signatures = make([]solana.Signature, tx.Message.Header.NumRequiredSignatures)
	}
	simTxResult, err := connection.SimulateTransactionWithOpts(
		ctx,
		tx,
		&rpc.SimulateTransactionOpts{
			ReplaceRecentBlockhash: true,
		},
	)
	if err != nil {
		return false, 0, nil
	}

	if simTxResult != nil && simTxResult.Value != nil && simTxResult.Value.Err != nil {
		return false, 0, go_bank.NewBankError(
			go_bank.ErrorKindRemoteRejection,
			"simulate",
			fmt.Errorf("%v", simTxResult.Value.Err),
			fmt.Sprint(simTxResult.Value.Logs),
		)
	}

	computeUnits := GetComputeUnitsFromSim(simTxResult)
	if computeUnits == nil {
		return false, 0, nil
	}
	return true, *computeUnits, nil
}

func ProcessTxParams(
	ctx context.Context,
	txProps *TransactionProps,
	txBuilder func(context.Context, *TransactionProps) (*solana.Transaction, error),
	processConfig *go_bank.ProcessingTxParams,
	connection connection.IRpcConnection,
) (go_bank.BaseTxParams, error) {
	// # Exit early if no process config is provided
	if processConfig == nil ||
		(processConfig.UseSimulatedComputeUnits == nil &&
			processConfig.UseSimulateComputeUnitsForCUPriceCalculation == nil &&
			processConfig.GetCUPriceFromComputeUnits == nil &&
			processConfig.ComputeUnitsBufferMultiplier == nil) {
		return txProps.TxParams, nil
	}

	// # Setup
	finalTxProps := *txProps
	useSimulatedComputeUnits := processConfig.UseSimulatedComputeUnits != nil && *processConfig.UseSimulatedComputeUnits

	// # Run Process
	if useSimulatedComputeUnits {
		txParams := txProps.TxParams
		txParams.ComputeUnits = MAX_COMPUTE_UNITS
		txToSim, err := txBuilder(ctx, &TransactionProps{
			Instructions: txProps.Instructions,
			TxParams:     txParams,
			LookupTables: txProps.LookupTables,
		})
		if err != nil {
			return txProps.TxParams, err
		}
		success, computeUnits, err := GetTxSimComputeUnits(ctx, txToSim, connection)
		if err != nil {
			return txProps.TxParams, err
		}
		if success {
			multiplier := utils.TTM[float64](
				processConfig.ComputeUnitsBufferMultiplier != nil,
				func() float64 { return *processConfig.ComputeUnitsBufferMultiplier },
				COMPUTE_UNIT_BUFFER_FACTOR,
			)
			bufferedComputeUnits := float64(computeUnits) * multiplier

			finalTxProps.TxParams.ComputeUnits = min(uint64(math.Ceil(bufferedComputeUnits)), MAX_COMPUTE_UNITS)
		}
	}
	if processConfig.UseSimulateComputeUnitsForCUPriceCalculation != nil && *processConfig.UseSimulateComputeUnitsForCUPriceCalculation {
		if !useSimulatedComputeUnits {
			return txProps.TxParams, go_bank.Errorf(go_bank.ErrorKindBuild, "process tx params", "useSimulateComputeUnitsForCUPriceCalculation requires useSimulatedComputeUnits")
		}
		if processConfig.GetCUPriceFromComputeUnits == nil {
			return txProps.TxParams, go_bank.Errorf(go_bank.ErrorKindBuild, "process tx params", "useSimulateComputeUnitsForCUPriceCalculation requires GetCUPriceFromComputeUnits")
		}

		finalTxProps.TxParams.ComputeUnitsPrice = processConfig.GetCUPriceFromComputeUnits(finalTxProps.TxParams.ComputeUnits)
	}
	// # Return Final Tx Params
	return finalTxProps.TxParams, nil
}
