package tx

import (
	"context"
	"fmt"
	"time"

	go_bank "bankgo"
	"bankgo/connection"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
)

const DEFAULT_POLL_INTERVAL = 500 * time.Millisecond

var commitmentRank = map[rpc.CommitmentType]int{
	rpc.CommitmentProcessed: 1,
	rpc.CommitmentConfirmed: 2,
	rpc.CommitmentFinalized: 3,
}

var confirmationStatusRank = map[rpc.ConfirmationStatusType]int{
	rpc.ConfirmationStatusProcessed: 1,
	rpc.ConfirmationStatusConfirmed: 2,
	rpc.ConfirmationStatusFinalized: 3,
}

func commitmentReached(status rpc.ConfirmationStatusType, commitment rpc.CommitmentType) bool {
	want, exists := commitmentRank[commitment]
	if !exists {
		want = commitmentRank[rpc.CommitmentConfirmed]
	}
	return confirmationStatusRank[status] >= want
}

type PollingConfirmer struct {
	IConfirmer
	connection connection.IRpcConnection
	interval   time.Duration
}

func CreatePollingConfirmer(connection connection.IRpcConnection, interval time.Duration) *PollingConfirmer {
	if interval <= 0 {
		interval = DEFAULT_POLL_INTERVAL
	}
	return &PollingConfirmer{
		connection: connection,
		interval:   interval,
	}
}

func (p *PollingConfirmer) Confirm(
	ctx context.Context,
	txSig solana.Signature,
	commitment rpc.CommitmentType,
	lastValidBlockHeight uint64,
) (uint64, error) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		out, err := p.connection.GetSignatureStatuses(ctx, false, txSig)
		if err != nil {
			return 0, go_bank.NewBankError(go_bank.ErrorKindSubmission, "confirm", err)
		}
		if out != nil && len(out.Value) > 0 && out.Value[0] != nil {
			status := out.Value[0]
			if status.Err != nil {
				return status.Slot, go_bank.NewBankError(
					go_bank.ErrorKindRemoteRejection,
					"confirm",
					fmt.Errorf("transaction %s failed: %v", txSig, status.Err),
				)
			}
			if commitmentReached(status.ConfirmationStatus, commitment) {
				return status.Slot, nil
			}
		} else if lastValidBlockHeight > 0 {
			blockHeight, err := p.connection.GetBlockHeight(ctx, rpc.CommitmentConfirmed)
			if err == nil && blockHeight > lastValidBlockHeight {
				return 0, go_bank.NewBankError(
					go_bank.ErrorKindSubmission,
					"confirm",
					fmt.Errorf("%w: transaction %s expired at %d", ErrBlockHeightExceeded, txSig, lastValidBlockHeight),
				)
			}
		}
		select {
		case <-ctx.Done():
			return 0, go_bank.NewBankError(go_bank.ErrorKindSubmission, "confirm", ctx.Err())
		case <-ticker.C:
		}
	}
}

// WsConfirmer waits on a signatureSubscribe notification. Expiry is left to the
// caller's context since the subscription only reports the final status.
type WsConfirmer struct {
	IConfirmer
	wsProvider func(context.Context) (*ws.Client, error)
}

func CreateWsConfirmer(wsProvider func(context.Context) (*ws.Client, error)) *WsConfirmer {
	return &WsConfirmer{
		wsProvider: wsProvider,
	}
}

func (p *WsConfirmer) Confirm(
	ctx context.Context,
	txSig solana.Signature,
	commitment rpc.CommitmentType,
	_ uint64,
) (uint64, error) {
	client, err := p.wsProvider(ctx)
	if err != nil {
		return 0, go_bank.NewBankError(go_bank.ErrorKindSubmission, "confirm", err)
	}
	sub, err := client.SignatureSubscribe(txSig, commitment)
	if err != nil {
		return 0, go_bank.NewBankError(go_bank.ErrorKindSubmission, "confirm", err)
	}
	defer sub.Unsubscribe()
	got, err := sub.Recv(ctx)
	if err != nil {
		return 0, go_bank.NewBankError(go_bank.ErrorKindSubmission, "confirm", err)
	}
	if got.Value.Err != nil {
		return got.Context.Slot, go_bank.NewBankError(
			go_bank.ErrorKindRemoteRejection,
			"confirm",
			fmt.Errorf("transaction %s failed: %v", txSig, got.Value.Err),
		)
	}
	return got.Context.Slot, nil
}
