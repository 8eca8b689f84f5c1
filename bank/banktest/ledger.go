// Package banktest provides an in-memory stand-in for a cluster running the
// bank program, answering the rpc calls the SDK makes.
package banktest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"bankgo/addresses"
	"bankgo/connection"
	"bankgo/lib/bank"
	libsolana "bankgo/lib/solana"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

const blockhashValidity = 150

type Ledger struct {
	mu        sync.Mutex
	programId solana.PublicKey
	order     []solana.PublicKey
	banks     map[solana.PublicKey]bank.Bank
	raw       map[solana.PublicKey][]byte
	statuses  map[solana.Signature]*rpc.SignatureStatusesResult
	slot      uint64
	height    uint64

	failFetch   map[solana.PublicKey]error
	failListing error
	failSend    error

	prioritizationFees []rpc.PriorizationFeeResult
	sent               []*solana.Transaction

	calls atomic.Int64
}

var _ connection.IRpcConnection = (*Ledger)(nil)

func NewLedger(programId solana.PublicKey) *Ledger {
	return &Ledger{
		programId: programId,
		banks:     make(map[solana.PublicKey]bank.Bank),
		raw:       make(map[solana.PublicKey][]byte),
		statuses:  make(map[solana.Signature]*rpc.SignatureStatusesResult),
		failFetch: make(map[solana.PublicKey]error),
		slot:      1,
		height:    1,
	}
}

// Calls is the number of rpc requests served so far.
func (p *Ledger) Calls() int64 {
	return p.calls.Load()
}

func (p *Ledger) Bank(address solana.PublicKey) (bank.Bank, bool) {
	defer p.mu.Unlock()
	p.mu.Lock()
	account, exists := p.banks[address]
	return account, exists
}

// PutBank stores a bank account directly, bypassing the program.
func (p *Ledger) PutBank(address solana.PublicKey, account bank.Bank) {
	defer p.mu.Unlock()
	p.mu.Lock()
	if _, exists := p.banks[address]; !exists {
		p.order = append(p.order, address)
	}
	p.banks[address] = account
}

// PutAccount stores an account of another type owned by the program.
func (p *Ledger) PutAccount(address solana.PublicKey, data []byte) {
	defer p.mu.Unlock()
	p.mu.Lock()
	if _, exists := p.raw[address]; !exists {
		p.order = append(p.order, address)
	}
	p.raw[address] = data
}

func (p *Ledger) dataLocked(address solana.PublicKey) ([]byte, bool, error) {
	if data, exists := p.raw[address]; exists {
		return data, true, nil
	}
	stored, exists := p.banks[address]
	if !exists {
		return nil, false, nil
	}
	data, err := stored.MarshalBinary()
	return data, true, err
}

func (p *Ledger) FailFetch(address solana.PublicKey, err error) {
	defer p.mu.Unlock()
	p.mu.Lock()
	if err == nil {
		delete(p.failFetch, address)
		return
	}
	p.failFetch[address] = err
}

func (p *Ledger) FailListing(err error) {
	defer p.mu.Unlock()
	p.mu.Lock()
	p.failListing = err
}

// SetPrioritizationFees sets the answer to getRecentPrioritizationFees.
func (p *Ledger) SetPrioritizationFees(fees []rpc.PriorizationFeeResult) {
	defer p.mu.Unlock()
	p.mu.Lock()
	p.prioritizationFees = fees
}

// Transactions returns every transaction that landed, oldest first.
func (p *Ledger) Transactions() []*solana.Transaction {
	defer p.mu.Unlock()
	p.mu.Lock()
	return append([]*solana.Transaction{}, p.sent...)
}

func (p *Ledger) FailSend(err error) {
	defer p.mu.Unlock()
	p.mu.Lock()
	p.failSend = err
}

func (p *Ledger) GetProgramAccountsWithOpts(
	ctx context.Context,
	publicKey solana.PublicKey,
	opts *rpc.GetProgramAccountsOpts,
) (rpc.GetProgramAccountsResult, error) {
	p.calls.Add(1)
	defer p.mu.Unlock()
	p.mu.Lock()
	if p.failListing != nil {
		return nil, p.failListing
	}
	var filters []rpc.RPCFilter
	if opts != nil {
		filters = opts.Filters
	}
	return p.listLocked(publicKey, filters, false)
}

func (p *Ledger) listLocked(programId solana.PublicKey, filters []rpc.RPCFilter, addressesOnly bool) (rpc.GetProgramAccountsResult, error) {
	if !programId.Equals(p.programId) {
		return rpc.GetProgramAccountsResult{}, nil
	}
	var out rpc.GetProgramAccountsResult
	for _, address := range p.order {
		data, _, err := p.dataLocked(address)
		if err != nil {
			return nil, err
		}
		if !matches(data, filters) {
			continue
		}
		if addressesOnly {
			data = []byte{}
		}
		out = append(out, &rpc.KeyedAccount{
			Pubkey: address,
			Account: &rpc.Account{
				Owner: p.programId,
				Data:  rpc.DataBytesOrJSONFromBytes(data),
			},
		})
	}
	return out, nil
}

func matches(data []byte, filters []rpc.RPCFilter) bool {
	for _, filter := range filters {
		if filter.DataSize != 0 && uint64(len(data)) != filter.DataSize {
			return false
		}
		if filter.Memcmp == nil {
			continue
		}
		offset := int(filter.Memcmp.Offset)
		expected := []byte(filter.Memcmp.Bytes)
		if offset+len(expected) > len(data) || !bytes.Equal(data[offset:offset+len(expected)], expected) {
			return false
		}
	}
	return true
}

func (p *Ledger) GetAccountInfoWithOpts(
	ctx context.Context,
	account solana.PublicKey,
	opts *rpc.GetAccountInfoOpts,
) (*rpc.GetAccountInfoResult, error) {
	p.calls.Add(1)
	defer p.mu.Unlock()
	p.mu.Lock()
	if err := p.failFetch[account]; err != nil {
		return nil, err
	}
	data, exists, err := p.dataLocked(account)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, rpc.ErrNotFound
	}
	return &rpc.GetAccountInfoResult{
		RPCContext: rpc.RPCContext{Context: rpc.Context{Slot: p.slot}},
		Value: &rpc.Account{
			Owner: p.programId,
			Data:  rpc.DataBytesOrJSONFromBytes(data),
		},
	}, nil
}

func (p *Ledger) GetLatestBlockhash(
	ctx context.Context,
	commitment rpc.CommitmentType,
) (*rpc.GetLatestBlockhashResult, error) {
	p.calls.Add(1)
	defer p.mu.Unlock()
	p.mu.Lock()
	var hash solana.Hash
	hash[0] = byte(p.height)
	hash[1] = byte(p.height >> 8)
	hash[31] = 1
	return &rpc.GetLatestBlockhashResult{
		RPCContext: rpc.RPCContext{Context: rpc.Context{Slot: p.slot}},
		Value: &rpc.LatestBlockhashResult{
			Blockhash:            hash,
			LastValidBlockHeight: p.height + blockhashValidity,
		},
	}, nil
}

func (p *Ledger) GetBlockHeight(ctx context.Context, commitment rpc.CommitmentType) (uint64, error) {
	p.calls.Add(1)
	defer p.mu.Unlock()
	p.mu.Lock()
	return p.height, nil
}

// SendTransactionWithOpts executes the bank instructions of tx atomically. A
// program failure is reported the way a node reports a failed preflight.
func (p *Ledger) SendTransactionWithOpts(
	ctx context.Context,
	transaction *solana.Transaction,
	opts rpc.TransactionOpts,
) (solana.Signature, error) {
	p.calls.Add(1)
	defer p.mu.Unlock()
	p.mu.Lock()
	if p.failSend != nil {
		return solana.Signature{}, p.failSend
	}
	if err := transaction.VerifySignatures(); err != nil {
		return solana.Signature{}, &jsonrpc.RPCError{
			Code:    -32003,
			Message: fmt.Sprintf("Transaction signature verification failure: %v", err),
		}
	}
	banks, logs, err := p.executeLocked(transaction)
	if err != nil {
		return solana.Signature{}, &jsonrpc.RPCError{
			Code:    -32002,
			Message: "Transaction simulation failed: " + err.Error(),
			Data: map[string]interface{}{
				"logs": toInterfaces(logs),
			},
		}
	}
	for address, account := range banks {
		if _, exists := p.banks[address]; !exists {
			p.order = append(p.order, address)
		}
		p.banks[address] = account
	}
	p.sent = append(p.sent, transaction)
	p.slot++
	p.height++
	signature := transaction.Signatures[0]
	p.statuses[signature] = &rpc.SignatureStatusesResult{
		Slot:               p.slot,
		ConfirmationStatus: rpc.ConfirmationStatusFinalized,
	}
	return signature, nil
}

func toInterfaces(logs []string) []interface{} {
	out := make([]interface{}, len(logs))
	for idx, line := range logs {
		out[idx] = line
	}
	return out
}

func (p *Ledger) executeLocked(transaction *solana.Transaction) (map[solana.PublicKey]bank.Bank, []string, error) {
	changed := make(map[solana.PublicKey]bank.Bank)
	load := func(address solana.PublicKey) (bank.Bank, bool) {
		if account, exists := changed[address]; exists {
			return account, true
		}
		account, exists := p.banks[address]
		return account, exists
	}
	var logs []string
	for _, compiled := range transaction.Message.Instructions {
		programId, err := transaction.Message.Program(compiled.ProgramIDIndex)
		if err != nil {
			return nil, logs, err
		}
		if programId.Equals(computebudget.ProgramID) {
			continue
		}
		if !programId.Equals(p.programId) {
			return nil, logs, fmt.Errorf("unsupported program %s", programId)
		}
		metas, err := compiled.ResolveInstructionAccounts(&transaction.Message)
		if err != nil {
			return nil, logs, err
		}
		inst, err := bank.DecodeInstruction(metas, compiled.Data)
		if err != nil {
			return nil, logs, err
		}
		logs = append(logs, fmt.Sprintf("Program log: Instruction: %s", bank.InstructionIDToName(inst.TypeID)))
		switch impl := inst.Impl.(type) {
		case *bank.Create:
			address := impl.GetBankAccount().PublicKey
			user := impl.GetUserAccount().PublicKey
			expected, _, err := addresses.GetBankAccountPublicKeyAndBump(p.programId, user)
			if err != nil || !expected.Equals(address) {
				return nil, append(logs, "Program log: AnchorError caused by account: bank. Error Code: ConstraintSeeds."), errors.New("custom program error: 0x7d6")
			}
			if _, exists := load(address); exists {
				return nil, append(logs, fmt.Sprintf("Allocate: account Address { address: %s, base: None } already in use", address)), errors.New("custom program error: 0x0")
			}
			changed[address] = bank.Bank{Name: *impl.Name, Balance: 0, Owner: user}
		case *bank.Deposit:
			address := impl.GetBankAccount().PublicKey
			account, exists := load(address)
			if !exists {
				return nil, append(logs, "Program log: AnchorError caused by account: bank. Error Code: AccountNotInitialized."), errors.New("custom program error: 0xbc4")
			}
			account.Balance += *impl.Amount
			changed[address] = account
		case *bank.Withdraw:
			address := impl.GetBankAccount().PublicKey
			user := impl.GetUserAccount().PublicKey
			account, exists := load(address)
			if !exists {
				return nil, append(logs, "Program log: AnchorError caused by account: bank. Error Code: AccountNotInitialized."), errors.New("custom program error: 0xbc4")
			}
			if !account.Owner.Equals(user) {
				return nil, append(logs, "Program log: Error: Not the owner of the bank"), errors.New("custom program error: 0x1770")
			}
			if *impl.Amount > account.Balance {
				return nil, append(logs, "Program log: Error: Insufficient funds"), errors.New("custom program error: 0x1")
			}
			account.Balance -= *impl.Amount
			changed[address] = account
		default:
			return nil, logs, fmt.Errorf("unsupported instruction %T", impl)
		}
	}
	return changed, logs, nil
}

func (p *Ledger) SimulateTransactionWithOpts(
	ctx context.Context,
	transaction *solana.Transaction,
	opts *rpc.SimulateTransactionOpts,
) (*rpc.SimulateTransactionResponse, error) {
	p.calls.Add(1)
	defer p.mu.Unlock()
	p.mu.Lock()
	_, logs, err := p.executeLocked(transaction)
	units := uint64(5_000 * len(transaction.Message.Instructions))
	result := &rpc.SimulateTransactionResult{
		Logs:          logs,
		UnitsConsumed: &units,
	}
	if err != nil {
		result.Err = err.Error()
	}
	return &rpc.SimulateTransactionResponse{
		RPCContext: rpc.RPCContext{Context: rpc.Context{Slot: p.slot}},
		Value:      result,
	}, nil
}

func (p *Ledger) GetSignatureStatuses(
	ctx context.Context,
	searchTransactionHistory bool,
	transactionSignatures ...solana.Signature,
) (*rpc.GetSignatureStatusesResult, error) {
	p.calls.Add(1)
	defer p.mu.Unlock()
	p.mu.Lock()
	out := &rpc.GetSignatureStatusesResult{
		RPCContext: rpc.RPCContext{Context: rpc.Context{Slot: p.slot}},
	}
	for _, signature := range transactionSignatures {
		out.Value = append(out.Value, p.statuses[signature])
	}
	return out, nil
}

// RPCCallForInto serves getProgramAccounts with context, as used by the
// registry, and getRecentPrioritizationFees.
func (p *Ledger) RPCCallForInto(
	ctx context.Context,
	out interface{},
	method string,
	params []interface{},
) error {
	p.calls.Add(1)
	switch method {
	case "getProgramAccounts":
		return p.getProgramAccounts(out, params)
	case "getRecentPrioritizationFees":
		result, ok := out.(*[]rpc.PriorizationFeeResult)
		if !ok {
			return fmt.Errorf("unexpected result type %T", out)
		}
		defer p.mu.Unlock()
		p.mu.Lock()
		*result = append([]rpc.PriorizationFeeResult{}, p.prioritizationFees...)
		return nil
	default:
		return fmt.Errorf("method %s not supported", method)
	}
}

func (p *Ledger) getProgramAccounts(out interface{}, params []interface{}) error {
	result, ok := out.(*libsolana.GetProgramAccountsContextResult)
	if !ok {
		return fmt.Errorf("unexpected result type %T", out)
	}
	programId, _ := params[0].(solana.PublicKey)
	var filters []rpc.RPCFilter
	addressesOnly := false
	if len(params) > 1 {
		if obj, ok := params[1].(rpc.M); ok {
			filters, _ = obj["filters"].([]rpc.RPCFilter)
			_, addressesOnly = obj["dataSlice"]
		}
	}
	defer p.mu.Unlock()
	p.mu.Lock()
	if p.failListing != nil {
		return p.failListing
	}
	accounts, err := p.listLocked(programId, filters, addressesOnly)
	if err != nil {
		return err
	}
	result.Context.Slot = p.slot
	result.Value = accounts
	return nil
}
