package bank

import (
	"context"
	"time"

	go_bank "bankgo"
	"bankgo/accounts"
	"bankgo/lib/event"
	"bankgo/math"
	"bankgo/priorityFee"
	"bankgo/tx"
	"bankgo/utils"

	"github.com/gagliardetto/solana-go"
	goerrors "github.com/go-errors/errors"
	"go.uber.org/zap"
)

// Facade wires user actions to the client, the sender and the registry. Every
// action contains its own failures and reports them as *go_bank.BankError; the
// view state only changes through a successful ListBanks.
type Facade struct {
	client         *BankClient
	txSender       tx.ITxSender
	registry       accounts.IBankAccountRegistry
	eventEmitter   *event.EventEmitter
	logger         *zap.Logger
	metrics        *Metrics
	txParams       *go_bank.TxParams
	priorityFee    priorityFee.IPriorityFeeEstimator
	depositAmount  uint64
	withdrawAmount uint64
}

type FacadeOption func(*Facade)

func WithLogger(logger *zap.Logger) FacadeOption {
	return func(p *Facade) {
		p.logger = logger
	}
}

func WithMetrics(metrics *Metrics) FacadeOption {
	return func(p *Facade) {
		p.metrics = metrics
	}
}

func WithTxParams(txParams *go_bank.TxParams) FacadeOption {
	return func(p *Facade) {
		p.txParams = txParams
	}
}

// WithPriorityFee prices every mutating action from recent fees of its write
// locked accounts. The configured ComputeUnitsPrice stays a floor.
func WithPriorityFee(estimator priorityFee.IPriorityFeeEstimator) FacadeOption {
	return func(p *Facade) {
		p.priorityFee = estimator
	}
}

// WithDefaultAmounts overrides the lamports used when DepositBank or
// WithdrawBank is called without an amount.
func WithDefaultAmounts(deposit uint64, withdraw uint64) FacadeOption {
	return func(p *Facade) {
		p.depositAmount = deposit
		p.withdrawAmount = withdraw
	}
}

func CreateFacade(
	client *BankClient,
	txSender tx.ITxSender,
	registry accounts.IBankAccountRegistry,
	options ...FacadeOption,
) *Facade {
	facade := &Facade{
		client:         client,
		txSender:       txSender,
		registry:       registry,
		eventEmitter:   event.CreateEventEmitter(),
		logger:         zap.NewNop(),
		depositAmount:  math.DefaultAmount(),
		withdrawAmount: math.DefaultAmount(),
	}
	for _, option := range options {
		option(facade)
	}
	return facade
}

func (p *Facade) GetClient() *BankClient {
	return p.client
}

func (p *Facade) ViewState() *accounts.ViewState {
	return p.registry.GetViewState()
}

func (p *Facade) Events() *event.EventEmitter {
	return p.eventEmitter
}

// MyBanks filters the current view down to accounts owned by the connected wallet.
func (p *Facade) MyBanks() []*accounts.BankAccount {
	wallet := p.client.GetWallet()
	if !go_bank.IsConnected(wallet) {
		return nil
	}
	return p.ViewState().OwnedBy(wallet.GetPublicKey())
}

// CreateBank creates the wallet's bank account. An empty name means DEFAULT_BANK_NAME.
func (p *Facade) CreateBank(ctx context.Context, name string) (*ActionResult, error) {
	name = utils.TT(name == "", DEFAULT_BANK_NAME, name)
	return p.mutate(ctx, ActionCreate, 0, func(run *actionRun) (solana.Instruction, error) {
		ix, bankAccount, err := p.client.GetCreateIx(name)
		run.bank = bankAccount
		return ix, err
	})
}

// DepositBank moves amounts[0] lamports, or the default amount, into bankAccount.
func (p *Facade) DepositBank(ctx context.Context, bankAccount solana.PublicKey, amounts ...uint64) (*ActionResult, error) {
	amount := utils.TT(len(amounts) > 0, firstOf(amounts), p.depositAmount)
	return p.mutate(ctx, ActionDeposit, amount, func(run *actionRun) (solana.Instruction, error) {
		run.bank = bankAccount
		return p.client.GetDepositIx(bankAccount, amount)
	})
}

// WithdrawBank moves amounts[0] lamports, or the default amount, out of bankAccount.
func (p *Facade) WithdrawBank(ctx context.Context, bankAccount solana.PublicKey, amounts ...uint64) (*ActionResult, error) {
	amount := utils.TT(len(amounts) > 0, firstOf(amounts), p.withdrawAmount)
	return p.mutate(ctx, ActionWithdraw, amount, func(run *actionRun) (solana.Instruction, error) {
		run.bank = bankAccount
		return p.client.GetWithdrawIx(bankAccount, amount)
	})
}

func firstOf(amounts []uint64) uint64 {
	if len(amounts) == 0 {
		return 0
	}
	return amounts[0]
}

// ListBanks refreshes the view state from the network and returns it.
func (p *Facade) ListBanks(ctx context.Context) (bankAccounts []*accounts.BankAccount, err error) {
	run := p.begin(ActionList)
	defer p.contain(run, &err)

	run.transition(ActionStateQuerying)
	bankAccounts, err = p.registry.Refresh(ctx)
	if err != nil {
		return nil, go_bank.WithOp(err, string(ActionList), go_bank.ErrorKindFetch)
	}
	if p.metrics != nil {
		p.metrics.ViewAccounts.Set(float64(len(bankAccounts)))
	}
	return bankAccounts, nil
}

func (p *Facade) mutate(
	ctx context.Context,
	action ActionKind,
	amount uint64,
	build func(*actionRun) (solana.Instruction, error),
) (result *ActionResult, err error) {
	run := p.begin(action)
	defer p.contain(run, &err)

	// refused before any network call
	if !go_bank.IsConnected(p.client.GetWallet()) {
		return nil, go_bank.NewBankError(go_bank.ErrorKindNotConnected, string(action), go_bank.ErrWalletNotConnected)
	}

	run.transition(ActionStateBuilding)
	ix, err := build(run)
	if err != nil {
		return nil, go_bank.WithOp(err, string(action), go_bank.ErrorKindBuild)
	}
	transaction, lastValidBlockHeight, err := p.txSender.BuildTransaction(ctx, []solana.Instruction{ix}, p.txParamsFor(ctx, ix), nil)
	if err != nil {
		return nil, go_bank.WithOp(err, string(action), go_bank.ErrorKindBuild)
	}

	run.transition(ActionStateSubmitting)
	txSigAndSlot, err := p.txSender.Send(ctx, transaction, nil, false, &tx.ExtraConfirmationOptions{
		LastValidBlockHeight: lastValidBlockHeight,
	})
	if txSigAndSlot != nil {
		run.signature = txSigAndSlot.TxSig
	}
	if err != nil {
		return nil, go_bank.WithOp(err, string(action), go_bank.ErrorKindSubmission)
	}
	return &ActionResult{
		Action:    action,
		Bank:      run.bank,
		Amount:    amount,
		Signature: txSigAndSlot.TxSig,
		Slot:      txSigAndSlot.Slot,
	}, nil
}

func (p *Facade) txParamsFor(ctx context.Context, ix solana.Instruction) *go_bank.TxParams {
	if p.priorityFee == nil {
		return p.txParams
	}
	txParams := go_bank.TxParams{BaseTxParams: go_bank.BaseTxParams{ComputeUnits: tx.DEFAULT_COMPUTE_UNITS}}
	if p.txParams != nil {
		txParams = *p.txParams
	}
	price, err := p.priorityFee.Estimate(ctx, priorityFee.WritableAccounts(ix))
	if err != nil {
		p.logger.Warn("priority fee estimate failed, using configured price", zap.Error(err))
		return p.txParams
	}
	if price > txParams.ComputeUnitsPrice {
		txParams.ComputeUnitsPrice = price
	}
	return &txParams
}

// contain turns a panic into a GeneralError and publishes the final states.
func (p *Facade) contain(run *actionRun, err *error) {
	if r := recover(); r != nil {
		stackErr := goerrors.Wrap(r, 2)
		p.logger.Error("action panicked",
			zap.String("action", string(run.action)),
			zap.String("stack", stackErr.ErrorStack()),
		)
		*err = go_bank.NewBankError(go_bank.ErrorKindGeneral, string(run.action), stackErr)
	}
	run.finish(*err)
}

type actionRun struct {
	facade    *Facade
	id        string
	seq       int
	action    ActionKind
	bank      solana.PublicKey
	signature solana.Signature
	startedAt time.Time
}

func (p *Facade) begin(action ActionKind) *actionRun {
	return &actionRun{
		facade:    p,
		id:        utils.GenerateIdentity(),
		action:    action,
		startedAt: time.Now(),
	}
}

func (r *actionRun) emit(state ActionState, err error) {
	r.seq++
	r.facade.eventEmitter.Emit(ActionEventName, ActionEvent{
		RunId:     r.id,
		Seq:       r.seq,
		Action:    r.action,
		State:     state,
		Bank:      r.bank,
		Signature: r.signature,
		Kind:      go_bank.KindOf(err),
		Err:       err,
		At:        time.Now(),
	})
}

func (r *actionRun) transition(state ActionState) {
	r.facade.logger.Debug("action state",
		zap.String("action", string(r.action)),
		zap.String("run", r.id),
		zap.String("state", string(state)),
	)
	r.emit(state, nil)
}

func (r *actionRun) finish(err error) {
	logger := r.facade.logger
	fields := []zap.Field{
		zap.String("action", string(r.action)),
		zap.String("run", r.id),
		zap.Duration("elapsed", time.Since(r.startedAt)),
	}
	if !r.bank.IsZero() {
		fields = append(fields, zap.Stringer("bank", r.bank))
	}
	if !r.signature.IsZero() {
		fields = append(fields, zap.Stringer("signature", r.signature))
	}
	if err == nil {
		logger.Info("action succeeded", fields...)
		r.emit(ActionStateSucceeded, nil)
	} else {
		kind := go_bank.KindOf(err)
		fields = append(fields, zap.String("kind", kind.String()), zap.Error(err))
		switch kind {
		case go_bank.ErrorKindSignerRejection, go_bank.ErrorKindNotConnected:
			logger.Info("action cancelled", fields...)
		default:
			logger.Error("action failed", fields...)
		}
		r.emit(ActionStateFailed, err)
	}
	r.emit(ActionStateIdle, nil)

	if metrics := r.facade.metrics; metrics != nil {
		metrics.ActionsTotal.WithLabelValues(string(r.action), go_bank.KindOf(err).String()).Inc()
		metrics.ActionDuration.WithLabelValues(string(r.action)).Observe(time.Since(r.startedAt).Seconds())
	}
}
