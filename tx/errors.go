package tx

import (
	"context"
	"errors"
	"fmt"
	"strings"

	go_bank "bankgo"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

const (
	// JSON-RPC codes the node uses when it refuses a transaction rather than failing to carry it.
	RPC_ERROR_PREFLIGHT_FAILURE      = -32002
	RPC_ERROR_SIGNATURE_VERIFICATION = -32003

	// The blockhash expired or the node has not seen it yet; the transaction itself was never judged.
	RPC_ERROR_BLOCKHASH_NOT_FOUND = -32008
)

var ErrBlockHeightExceeded = errors.New("block height exceeded")

func classifySignError(op string, err error) error {
	switch {
	case errors.Is(err, go_bank.ErrWalletNotConnected):
		return go_bank.NewBankError(go_bank.ErrorKindNotConnected, op, err)
	case errors.Is(err, go_bank.ErrUserRejected):
		return go_bank.NewBankError(go_bank.ErrorKindSignerRejection, op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return go_bank.NewBankError(go_bank.ErrorKindSubmission, op, err)
	default:
		return go_bank.NewBankError(go_bank.ErrorKindGeneral, op, err)
	}
}

func classifySendError(op string, err error) error {
	var rpcError *jsonrpc.RPCError
	if errors.As(err, &rpcError) {
		switch rpcError.Code {
		case RPC_ERROR_PREFLIGHT_FAILURE, RPC_ERROR_SIGNATURE_VERIFICATION:
			return go_bank.NewBankError(
				go_bank.ErrorKindRemoteRejection,
				op,
				err,
				diagnostic(rpcError),
			)
		}
	}
	return go_bank.NewBankError(go_bank.ErrorKindSubmission, op, err)
}

// diagnostic flattens the simulation logs the node attaches to a preflight failure.
func diagnostic(rpcError *jsonrpc.RPCError) string {
	data, ok := rpcError.Data.(map[string]interface{})
	if !ok {
		return ""
	}
	rawLogs, ok := data["logs"].([]interface{})
	if !ok || len(rawLogs) == 0 {
		return ""
	}
	logs := make([]string, 0, len(rawLogs))
	for _, line := range rawLogs {
		logs = append(logs, fmt.Sprint(line))
	}
	return strings.Join(logs, "\n")
}
