package config

import (
	"fmt"
	"os"
	"time"

	go_bank "bankgo"
	"bankgo/connection"
	"bankgo/math"

	"github.com/creasty/defaults"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	ConfirmStrategyPoll = "poll"
	ConfirmStrategyWs   = "ws"
)

type Config struct {
	Env               BankEnv           `yaml:"env" default:"devnet" validate:"oneof=localnet devnet mainnet-beta"`
	ProgramId         string            `yaml:"programId"`
	Idl               string            `yaml:"idl"`
	Connection        connection.Config `yaml:"connection"`
	KeypairPath       string            `yaml:"keypairPath"`
	Commitment        string            `yaml:"commitment" default:"confirmed" validate:"oneof=processed confirmed finalized"`
	SkipPreflight     bool              `yaml:"skipPreflight"`
	Confirm           ConfirmConfig     `yaml:"confirm"`
	ComputeUnits      uint64            `yaml:"computeUnits" default:"200000" validate:"max=1400000"`
	ComputeUnitsPrice uint64            `yaml:"computeUnitsPrice"`
	DepositAmount     string            `yaml:"depositAmount" default:"0.1" validate:"numeric"`
	WithdrawAmount    string            `yaml:"withdrawAmount" default:"0.1" validate:"numeric"`
	FetchConcurrency  int               `yaml:"fetchConcurrency" default:"8" validate:"min=1,max=64"`
	PriorityFee       PriorityFeeConfig `yaml:"priorityFee"`
	Logging           LoggingConfig     `yaml:"logging"`
}

type PriorityFeeConfig struct {
	Enabled             bool          `yaml:"enabled"`
	Strategy            string        `yaml:"strategy" default:"average" validate:"oneof=average max"`
	SlotsToCheck        uint64        `yaml:"slotsToCheck" default:"50" validate:"min=1,max=150"`
	Multiplier          float64       `yaml:"multiplier" default:"1.0" validate:"gt=0"`
	MaxFeeMicroLamports uint64        `yaml:"maxFeeMicroLamports"`
	CacheTTL            time.Duration `yaml:"cacheTtl" default:"10s"`
}

type ConfirmConfig struct {
	Strategy     string        `yaml:"strategy" default:"poll" validate:"oneof=poll ws"`
	PollInterval time.Duration `yaml:"pollInterval" default:"500ms" validate:"min=0"`
}

type LoggingConfig struct {
	Level      string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format" default:"console" validate:"oneof=json console"`
	OutputPath string `yaml:"outputPath" default:"stdout"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse applies struct defaults, then the YAML document, then fills the
// connection from the env table when the document leaves it empty.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to set config defaults: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.resolve()
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if _, err := cfg.DepositLamports(); err != nil {
		return nil, fmt.Errorf("config validation failed: depositAmount: %w", err)
	}
	if _, err := cfg.WithdrawLamports(); err != nil {
		return nil, fmt.Errorf("config validation failed: withdrawAmount: %w", err)
	}
	return &cfg, nil
}

func (p *Config) resolve() {
	envConfig := Initialize(p.Env, &BankConfig{
		RPC_HOST:        p.Connection.Host,
		IS_SECURE:       p.Connection.IsSecure,
		WS_HOST:         p.Connection.WsHost,
		BANK_PROGRAM_ID: p.ProgramId,
		IDL:             p.Idl,
	})
	p.Connection.Host = envConfig.RPC_HOST
	p.Connection.IsSecure = envConfig.IS_SECURE
	p.Connection.WsHost = envConfig.WS_HOST
	p.ProgramId = envConfig.BANK_PROGRAM_ID
	p.Idl = envConfig.IDL
}

func (p *Config) ConfirmOptions() go_bank.ConfirmOptions {
	commitment := rpc.CommitmentType(p.Commitment)
	return go_bank.ConfirmOptions{
		TransactionOpts: rpc.TransactionOpts{
			SkipPreflight:       p.SkipPreflight,
			PreflightCommitment: commitment,
		},
		Commitment: commitment,
	}
}

func (p *Config) TxParams() go_bank.BaseTxParams {
	return go_bank.BaseTxParams{
		ComputeUnits:      p.ComputeUnits,
		ComputeUnitsPrice: p.ComputeUnitsPrice,
	}
}

func (p *Config) DepositLamports() (uint64, error) {
	return math.ParseSol(p.DepositAmount)
}

func (p *Config) WithdrawLamports() (uint64, error) {
	return math.ParseSol(p.WithdrawAmount)
}
