package bank

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	go_bank "bankgo"
	"bankgo/addresses"
	"bankgo/anchor"
	"bankgo/bank/banktest"
	"bankgo/config"
	"bankgo/connection"
	banklib "bankgo/lib/bank"
	"bankgo/lib/idl"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newClient(t *testing.T, wallet go_bank.IWallet, programIdl *idl.Idl) *BankClient {
	t.Helper()
	manager := connection.CreateManagerWithRpc(connection.Config{Host: "localhost"}, banktest.NewLedger(testProgramId))
	provider := anchor.CreateAnchorProvider(wallet, go_bank.DefaultConfirmOptions(), manager)
	return CreateBankClient(anchor.CreateProgram(testProgramId, provider), programIdl)
}

func TestGetCreateIx(t *testing.T) {
	wallet := newWallet()
	client := newClient(t, wallet, nil)

	ix, bankAccount, err := client.GetCreateIx("WSoS Bank")
	require.NoError(t, err)
	assert.Equal(t, testProgramId, ix.ProgramID())
	assert.Equal(t, addresses.GetBankAccountPublicKey(testProgramId, wallet.GetPublicKey()), bankAccount)

	metas := ix.Accounts()
	require.Len(t, metas, 3)
	assert.Equal(t, bankAccount, metas[0].PublicKey)
	assert.True(t, metas[0].IsWritable)
	assert.Equal(t, wallet.GetPublicKey(), metas[1].PublicKey)
	assert.True(t, metas[1].IsSigner)
	assert.Equal(t, system.ProgramID, metas[2].PublicKey)

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, banklib.Instruction_Create[:], data[:8])
}

func TestGetBankAccountPublicKey(t *testing.T) {
	wallet := newWallet()
	client := newClient(t, wallet, nil)

	first, err := client.GetBankAccountPublicKey()
	require.NoError(t, err)
	second, err := client.GetBankAccountPublicKey()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetWithdrawIxFollowsIdl(t *testing.T) {
	wallet := newWallet()
	bankAccount := solana.NewWallet().PublicKey()

	ix, err := newClient(t, wallet, nil).GetWithdrawIx(bankAccount, 10)
	require.NoError(t, err)
	assert.Len(t, ix.Accounts(), 2)

	programIdl, err := idl.Parse([]byte(`{
		"name": "bank",
		"instructions": [
			{"name": "withdraw", "accounts": [
				{"name": "bank", "isMut": true},
				{"name": "user", "isMut": true, "isSigner": true},
				{"name": "system_program"}
			]}
		]
	}`))
	require.NoError(t, err)
	ix, err = newClient(t, wallet, programIdl).GetWithdrawIx(bankAccount, 10)
	require.NoError(t, err)
	require.Len(t, ix.Accounts(), 3)
	assert.Equal(t, system.ProgramID, ix.Accounts()[2].PublicKey)
}

func TestClientRequiresWallet(t *testing.T) {
	client := newClient(t, go_bank.NewWallet(nil), nil)

	_, _, err := client.GetCreateIx("WSoS Bank")
	assert.True(t, go_bank.IsKind(err, go_bank.ErrorKindNotConnected))
	_, err = client.GetDepositIx(solana.NewWallet().PublicKey(), 1)
	assert.True(t, go_bank.IsKind(err, go_bank.ErrorKindNotConnected))
	_, err = client.GetBankAccountPublicKey()
	assert.True(t, go_bank.IsKind(err, go_bank.ErrorKindNotConnected))
}

func TestNewFacadeFromConfig(t *testing.T) {
	cfg, err := config.Parse([]byte(`
env: localnet
programId: BankWSoS11111111111111111111111111111111111
depositAmount: "0.25"
confirm:
  pollInterval: 1ms
`))
	require.NoError(t, err)
	ledger := banktest.NewLedger(testProgramId)
	wallet := newWallet()

	facade, err := NewFacadeFromConfig(
		context.Background(),
		cfg,
		wallet,
		WithConnection(ledger),
		WithBuilderLogger(zap.NewNop()),
	)
	require.NoError(t, err)
	assert.Equal(t, testProgramId, facade.GetClient().GetProgramId())

	result, err := facade.CreateBank(context.Background(), "")
	require.NoError(t, err)
	_, err = facade.DepositBank(context.Background(), result.Bank)
	require.NoError(t, err)
	stored, exists := ledger.Bank(result.Bank)
	require.True(t, exists)
	assert.Equal(t, uint64(250_000_000), stored.Balance)
}

func TestNewFacadeFromConfigProgramIdFromIdl(t *testing.T) {
	cfg, err := config.Parse([]byte(`
env: localnet
idl: ../lib/idl/testdata/bank.json
`))
	require.NoError(t, err)

	facade, err := NewFacadeFromConfig(
		context.Background(),
		cfg,
		newWallet(),
		WithConnection(banktest.NewLedger(testProgramId)),
		WithBuilderLogger(zap.NewNop()),
	)
	require.NoError(t, err)
	assert.Equal(t, testProgramId, facade.GetClient().GetProgramId())
}

func TestNewFacadeFromConfigWithoutProgram(t *testing.T) {
	cfg, err := config.Parse([]byte("env: localnet\n"))
	require.NoError(t, err)
	cfg.ProgramId = ""
	cfg.Idl = ""

	_, err = NewFacadeFromConfig(context.Background(), cfg, newWallet(), WithBuilderLogger(zap.NewNop()))
	assert.Error(t, err)
}

func writeKeygenFile(t *testing.T, privateKey solana.PrivateKey) string {
	t.Helper()
	values := make([]int, len(privateKey))
	for idx, value := range privateKey {
		values[idx] = int(value)
	}
	content, err := json.Marshal(values)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestNewFacadeFromConfigLoadsKeypair(t *testing.T) {
	privateKey := solana.NewWallet().PrivateKey
	cfg, err := config.Parse([]byte(`
env: localnet
programId: BankWSoS11111111111111111111111111111111111
confirm:
  pollInterval: 1ms
`))
	require.NoError(t, err)
	cfg.KeypairPath = writeKeygenFile(t, privateKey)
	ledger := banktest.NewLedger(testProgramId)

	facade, err := NewFacadeFromConfig(
		context.Background(),
		cfg,
		nil,
		WithConnection(ledger),
		WithBuilderLogger(zap.NewNop()),
	)
	require.NoError(t, err)

	result, err := facade.CreateBank(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, addresses.GetBankAccountPublicKey(testProgramId, privateKey.PublicKey()), result.Bank)
	stored, exists := ledger.Bank(result.Bank)
	require.True(t, exists)
	assert.Equal(t, privateKey.PublicKey(), stored.Owner)
}

func TestNewFacadeFromConfigBadKeypair(t *testing.T) {
	cfg, err := config.Parse([]byte("env: localnet\nprogramId: BankWSoS11111111111111111111111111111111111\n"))
	require.NoError(t, err)
	cfg.KeypairPath = filepath.Join(t.TempDir(), "missing.json")

	_, err = NewFacadeFromConfig(
		context.Background(),
		cfg,
		nil,
		WithConnection(banktest.NewLedger(testProgramId)),
		WithBuilderLogger(zap.NewNop()),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load keypair")
}

func TestNewFacadeFromConfigWithoutKeypair(t *testing.T) {
	cfg, err := config.Parse([]byte("env: localnet\nprogramId: BankWSoS11111111111111111111111111111111111\n"))
	require.NoError(t, err)
	cfg.KeypairPath = ""
	ledger := banktest.NewLedger(testProgramId)

	facade, err := NewFacadeFromConfig(
		context.Background(),
		cfg,
		nil,
		WithConnection(ledger),
		WithBuilderLogger(zap.NewNop()),
	)
	require.NoError(t, err)
	_, err = facade.CreateBank(context.Background(), "")
	assert.True(t, go_bank.IsKind(err, go_bank.ErrorKindNotConnected))
	assert.Equal(t, int64(0), ledger.Calls())
}
