package bank

import (
	"context"
	"fmt"

	go_bank "bankgo"
	"bankgo/accounts"
	"bankgo/anchor"
	"bankgo/config"
	"bankgo/connection"
	"bankgo/lib/idl"
	"bankgo/priorityFee"
	"bankgo/tx"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type BuilderOption func(*builderOptions)

type builderOptions struct {
	connection connection.IRpcConnection
	logger     *zap.Logger
	registerer prometheus.Registerer
}

// WithConnection replaces the rpc client built from the config.
func WithConnection(conn connection.IRpcConnection) BuilderOption {
	return func(p *builderOptions) {
		p.connection = conn
	}
}

func WithBuilderLogger(logger *zap.Logger) BuilderOption {
	return func(p *builderOptions) {
		p.logger = logger
	}
}

func WithRegisterer(registerer prometheus.Registerer) BuilderOption {
	return func(p *builderOptions) {
		p.registerer = registerer
	}
}

// NewFacadeFromConfig assembles the full stack for cfg. The program id comes
// from cfg when set and from the IDL otherwise. A nil wallet is loaded from
// cfg.KeypairPath, or left disconnected when no path is configured.
func NewFacadeFromConfig(ctx context.Context, cfg *config.Config, wallet go_bank.IWallet, options ...BuilderOption) (*Facade, error) {
	opts := &builderOptions{}
	for _, option := range options {
		option(opts)
	}
	logger := opts.logger
	if logger == nil {
		var err error
		logger, err = config.NewLogger(cfg.Logging)
		if err != nil {
			return nil, err
		}
	}

	if wallet == nil {
		if cfg.KeypairPath == "" {
			wallet = go_bank.NewWallet(nil)
		} else {
			loaded, err := go_bank.NewWalletFromKeygenFile(cfg.KeypairPath)
			if err != nil {
				return nil, err
			}
			logger.Info("loaded keypair", zap.Stringer("wallet", loaded.GetPublicKey()))
			wallet = loaded
		}
	}

	var programIdl *idl.Idl
	if cfg.Idl != "" {
		var err error
		programIdl, err = idl.Load(ctx, cfg.Idl)
		if err != nil {
			return nil, fmt.Errorf("load idl: %w", err)
		}
	}
	programId, err := resolveProgramId(cfg.ProgramId, programIdl)
	if err != nil {
		return nil, err
	}

	var manager *connection.Manager
	if opts.connection != nil {
		manager = connection.CreateManagerWithRpc(cfg.Connection, opts.connection)
	} else {
		manager = connection.CreateManager()
		manager.AddConfig(cfg.Connection)
	}
	rpcConnection := manager.GetRpc()
	if rpcConnection == nil {
		return nil, fmt.Errorf("no rpc connection for %s", cfg.Connection.Host)
	}

	confirmOptions := cfg.ConfirmOptions()
	provider := anchor.CreateAnchorProvider(wallet, confirmOptions, manager)
	program := anchor.CreateProgram(programId, provider)

	var confirmer tx.IConfirmer
	switch cfg.Confirm.Strategy {
	case config.ConfirmStrategyWs:
		confirmer = tx.CreateWsConfirmer(func(ctx context.Context) (*ws.Client, error) {
			return provider.GetWsConnection(ctx)
		})
	default:
		confirmer = tx.CreatePollingConfirmer(rpcConnection, cfg.Confirm.PollInterval)
	}
	txSender := tx.CreateBaseTxSender(
		rpcConnection,
		wallet,
		&confirmOptions,
		tx.WithConfirmer(confirmer),
		tx.WithTxParams(cfg.TxParams()),
		tx.WithLogger(logger.Named("tx")),
	)
	registry := accounts.CreateBankAccountRegistry(
		program,
		nil,
		accounts.WithConcurrency(cfg.FetchConcurrency),
		accounts.WithCommitment(confirmOptions.Commitment),
		accounts.WithLogger(logger.Named("registry")),
	)

	depositAmount, err := cfg.DepositLamports()
	if err != nil {
		return nil, err
	}
	withdrawAmount, err := cfg.WithdrawLamports()
	if err != nil {
		return nil, err
	}
	facadeOptions := []FacadeOption{
		WithLogger(logger.Named("bank")),
		WithDefaultAmounts(depositAmount, withdrawAmount),
		WithTxParams(&go_bank.TxParams{BaseTxParams: cfg.TxParams()}),
	}
	if cfg.PriorityFee.Enabled {
		facadeOptions = append(facadeOptions, WithPriorityFee(priorityFee.CreatePriorityFeeEstimator(
			rpcConnection,
			priorityFee.EstimatorConfig{
				SlotsToCheck:        cfg.PriorityFee.SlotsToCheck,
				Strategy:            priorityFee.StrategyName(cfg.PriorityFee.Strategy),
				Multiplier:          cfg.PriorityFee.Multiplier,
				MaxFeeMicroLamports: cfg.PriorityFee.MaxFeeMicroLamports,
				CacheTTL:            cfg.PriorityFee.CacheTTL,
			},
			logger.Named("priorityFee"),
		)))
	}
	if opts.registerer != nil {
		facadeOptions = append(facadeOptions, WithMetrics(NewMetrics(opts.registerer)))
	}
	logger.Info("bank client ready",
		zap.String("env", string(cfg.Env)),
		zap.Stringer("program", programId),
		zap.String("rpc", cfg.Connection.GetRpcEndpoint()),
		zap.String("confirm", cfg.Confirm.Strategy),
	)
	return CreateFacade(
		CreateBankClient(program, programIdl),
		txSender,
		registry,
		facadeOptions...,
	), nil
}

func resolveProgramId(configured string, programIdl *idl.Idl) (solana.PublicKey, error) {
	if configured != "" {
		programId, err := solana.PublicKeyFromBase58(configured)
		if err != nil {
			return solana.PublicKey{}, fmt.Errorf("invalid program id %q: %w", configured, err)
		}
		return programId, nil
	}
	if programIdl == nil {
		return solana.PublicKey{}, fmt.Errorf("program id is not configured and no idl was given")
	}
	return programIdl.ProgramID()
}
