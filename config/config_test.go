package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, BankEnvDevnet, cfg.Env)
	assert.Equal(t, "api.devnet.solana.com", cfg.Connection.Host)
	assert.True(t, cfg.Connection.IsSecure)
	assert.Equal(t, "confirmed", cfg.Commitment)
	assert.Equal(t, ConfirmStrategyPoll, cfg.Confirm.Strategy)
	assert.Equal(t, 500*time.Millisecond, cfg.Confirm.PollInterval)
	assert.Equal(t, uint64(200_000), cfg.ComputeUnits)
	assert.Equal(t, 8, cfg.FetchConcurrency)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.PriorityFee.Enabled)
	assert.Equal(t, "average", cfg.PriorityFee.Strategy)
	assert.Equal(t, uint64(50), cfg.PriorityFee.SlotsToCheck)
	assert.Equal(t, 1.0, cfg.PriorityFee.Multiplier)
	assert.Equal(t, 10*time.Second, cfg.PriorityFee.CacheTTL)

	deposit, err := cfg.DepositLamports()
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000_000), deposit)
}

func TestParseLocalnet(t *testing.T) {
	cfg, err := Parse([]byte(`
env: localnet
programId: BankWSoS11111111111111111111111111111111111
commitment: finalized
skipPreflight: true
confirm:
  strategy: ws
  pollInterval: 2s
depositAmount: "0.25"
`))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8899", cfg.Connection.Host)
	assert.Equal(t, "ws://127.0.0.1:8900", cfg.Connection.GetWsEndpoint())
	assert.Equal(t, "http://127.0.0.1:8899", cfg.Connection.GetRpcEndpoint())
	assert.Equal(t, 2*time.Second, cfg.Confirm.PollInterval)

	opts := cfg.ConfirmOptions()
	assert.Equal(t, rpc.CommitmentFinalized, opts.Commitment)
	assert.True(t, opts.SkipPreflight)

	deposit, err := cfg.DepositLamports()
	require.NoError(t, err)
	assert.Equal(t, uint64(250_000_000), deposit)
}

func TestParseConnectionOverride(t *testing.T) {
	cfg, err := Parse([]byte(`
env: mainnet-beta
connection:
  host: rpc.example.org
  token: secret
  isSecure: true
`))
	require.NoError(t, err)
	assert.Equal(t, "https://rpc.example.org/secret", cfg.Connection.GetRpcEndpoint())
	assert.Equal(t, "wss://rpc.example.org/secret", cfg.Connection.GetWsEndpoint())
}

func TestParseRejectsInvalid(t *testing.T) {
	for _, doc := range []string{
		`env: testnet`,
		`commitment: recent`,
		`confirm: {strategy: grpc}`,
		`fetchConcurrency: 0`,
		`depositAmount: lots`,
		`withdrawAmount: "0.0000000001"`,
		`computeUnits: 2000000`,
		`logging: {level: trace}`,
	} {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, doc)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: localnet\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BankEnvLocalnet, cfg.Env)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInitialize(t *testing.T) {
	devnet := Initialize(BankEnvDevnet, nil)
	assert.Equal(t, BankConfigs[BankEnvDevnet], devnet)

	overridden := Initialize(BankEnvDevnet, &BankConfig{BANK_PROGRAM_ID: "BankWSoS11111111111111111111111111111111111"})
	assert.Equal(t, "BankWSoS11111111111111111111111111111111111", overridden.BANK_PROGRAM_ID)
	assert.Empty(t, BankConfigs[BankEnvDevnet].BANK_PROGRAM_ID)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = NewLogger(LoggingConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestParsePriorityFee(t *testing.T) {
	cfg, err := Parse([]byte(`
priorityFee:
  enabled: true
  strategy: max
  slotsToCheck: 20
  multiplier: 1.5
  maxFeeMicroLamports: 50000
`))
	require.NoError(t, err)
	assert.True(t, cfg.PriorityFee.Enabled)
	assert.Equal(t, "max", cfg.PriorityFee.Strategy)
	assert.Equal(t, uint64(20), cfg.PriorityFee.SlotsToCheck)
	assert.Equal(t, 1.5, cfg.PriorityFee.Multiplier)
	assert.Equal(t, uint64(50_000), cfg.PriorityFee.MaxFeeMicroLamports)

	_, err = Parse([]byte("priorityFee:\n  strategy: median\n"))
	assert.Error(t, err)
}
