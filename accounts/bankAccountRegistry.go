package accounts

import (
	"context"
	"fmt"

	go_bank "bankgo"
	"bankgo/anchor/types"
	"bankgo/lib/bank"
	libsolana "bankgo/lib/solana"
	"bankgo/utils"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DEFAULT_FETCH_CONCURRENCY = 8

type BankAccountRegistry struct {
	IBankAccountRegistry
	program     types.IProgram
	viewState   *ViewState
	commitment  rpc.CommitmentType
	concurrency int
	logger      *zap.Logger
}

type RegistryOption func(*BankAccountRegistry)

func WithConcurrency(concurrency int) RegistryOption {
	return func(p *BankAccountRegistry) {
		if concurrency > 0 {
			p.concurrency = concurrency
		}
	}
}

func WithCommitment(commitment rpc.CommitmentType) RegistryOption {
	return func(p *BankAccountRegistry) {
		p.commitment = commitment
	}
}

func WithLogger(logger *zap.Logger) RegistryOption {
	return func(p *BankAccountRegistry) {
		p.logger = logger
	}
}

func CreateBankAccountRegistry(
	program types.IProgram,
	viewState *ViewState,
	options ...RegistryOption,
) *BankAccountRegistry {
	registry := &BankAccountRegistry{
		program:     program,
		viewState:   utils.TT(viewState == nil, NewViewState(), viewState),
		commitment:  program.GetProvider().GetOpts().Commitment,
		concurrency: DEFAULT_FETCH_CONCURRENCY,
		logger:      zap.NewNop(),
	}
	for _, option := range options {
		option(registry)
	}
	return registry
}

// Refresh lists every bank account the program owns, then fetches each one.
// Accounts of other types owned by the program are filtered out by discriminator.
// The view state is replaced only when every fetch succeeded; on any failure
// the previous view is kept and a FetchFailure is returned.
func (p *BankAccountRegistry) Refresh(ctx context.Context) ([]*BankAccount, error) {
	programId := p.program.GetProgramId()
	listing, err := libsolana.GetProgramAccountsContextWithOpts(
		p.program.GetProvider().GetConnection(),
		ctx,
		programId,
		&rpc.GetProgramAccountsOpts{
			Commitment: p.commitment,
			Encoding:   solana.EncodingBase64,
			Filters:    []rpc.RPCFilter{go_bank.GetBankFilter()},
			// addresses only; data comes from the per-account fetch
			DataSlice: &rpc.DataSlice{
				Offset: utils.NewPtr(uint64(0)),
				Length: utils.NewPtr(uint64(0)),
			},
		},
	)
	if err != nil {
		return nil, go_bank.NewBankError(go_bank.ErrorKindFetch, "refresh", err, "list program accounts")
	}

	for idx, keyed := range listing.Value {
		if keyed == nil {
			return nil, go_bank.Errorf(go_bank.ErrorKindFetch, "refresh", "empty entry at %d in program account listing", idx)
		}
	}

	bankAccounts := make([]*BankAccount, len(listing.Value))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for idx, keyed := range listing.Value {
		g.Go(func() error {
			dataAndSlot, err := FetchBankAccountAndSlot(gctx, p.program, keyed.Pubkey, p.commitment)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", keyed.Pubkey, err)
			}
			bankAccounts[idx] = dataAndSlot.Data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		p.logger.Warn("bank account refresh failed, keeping previous view",
			zap.Stringer("program", programId),
			zap.Error(err),
		)
		return nil, go_bank.NewBankError(go_bank.ErrorKindFetch, "refresh", err)
	}

	snapshot := p.viewState.Replace(bankAccounts, listing.Context.Slot)
	p.logger.Debug("bank accounts refreshed",
		zap.Int("count", len(snapshot.Accounts)),
		zap.Uint64("slot", snapshot.Slot),
	)
	return snapshot.Accounts, nil
}

func (p *BankAccountRegistry) FetchBankAccount(ctx context.Context, address solana.PublicKey) (*BankAccount, error) {
	dataAndSlot, err := FetchBankAccountAndSlot(ctx, p.program, address, p.commitment)
	if err != nil {
		return nil, go_bank.NewBankError(go_bank.ErrorKindFetch, "fetch", err)
	}
	return dataAndSlot.Data, nil
}

// FindBankAccountsByName queries the program for banks named exactly name. It
// reads straight from the network and leaves the view state alone.
func (p *BankAccountRegistry) FindBankAccountsByName(ctx context.Context, name string) ([]*BankAccount, error) {
	keyedAccounts, err := BankAccountClient(p.program).All(ctx, []rpc.RPCFilter{go_bank.GetBankNameFilter(name)})
	if err != nil {
		return nil, go_bank.NewBankError(go_bank.ErrorKindFetch, "find", err)
	}
	bankAccounts := make([]*BankAccount, 0, len(keyedAccounts))
	for _, keyed := range keyedAccounts {
		account, ok := keyed.Account.(*bank.Bank)
		if !ok {
			return nil, go_bank.Errorf(go_bank.ErrorKindFetch, "find", "unexpected account type %T at %s", keyed.Account, keyed.Pubkey)
		}
		bankAccounts = append(bankAccounts, NewBankAccount(keyed.Pubkey, account))
	}
	return bankAccounts, nil
}

func (p *BankAccountRegistry) GetBankAccounts() []*BankAccount {
	return p.viewState.Accounts()
}

func (p *BankAccountRegistry) GetBankAccount(address solana.PublicKey) *BankAccount {
	return p.viewState.Get(address)
}

func (p *BankAccountRegistry) GetViewState() *ViewState {
	return p.viewState
}
