package bank

import (
	"time"

	go_bank "bankgo"

	"github.com/gagliardetto/solana-go"
)

const DEFAULT_BANK_NAME = "WSoS Bank"

const ActionEventName = "action"

type ActionKind string

const (
	ActionCreate   ActionKind = "create"
	ActionList     ActionKind = "list"
	ActionDeposit  ActionKind = "deposit"
	ActionWithdraw ActionKind = "withdraw"
)

func (k ActionKind) IsMutating() bool {
	return k != ActionList
}

type ActionState string

const (
	ActionStateIdle       ActionState = "idle"
	ActionStateBuilding   ActionState = "building"
	ActionStateSubmitting ActionState = "submitting"
	ActionStateQuerying   ActionState = "querying"
	ActionStateSucceeded  ActionState = "succeeded"
	ActionStateFailed     ActionState = "failed"
)

// ActionEvent is published on every state change of an action run. Seq orders
// the events of one run; listeners are invoked concurrently.
type ActionEvent struct {
	RunId     string
	Seq       int
	Action    ActionKind
	State     ActionState
	Bank      solana.PublicKey
	Signature solana.Signature
	Kind      go_bank.ErrorKind
	Err       error
	At        time.Time
}

type ActionResult struct {
	Action    ActionKind
	Bank      solana.PublicKey
	Amount    uint64
	Signature solana.Signature
	Slot      uint64
}
