package bank

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/treeout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInstruction(t *testing.T) {
	bankAccount := solana.NewWallet().PublicKey()
	user := solana.NewWallet().PublicKey()

	ix, err := NewCreateInstruction("WSoS Bank", bankAccount, user, system.ProgramID).ValidateAndBuild()
	require.NoError(t, err)
	ix.WithProgramID(testOwner)

	assert.Equal(t, testOwner, ix.ProgramID())

	data, err := ix.Data()
	require.NoError(t, err)
	expected := append([]byte{}, Instruction_Create[:]...)
	expected = binary.LittleEndian.AppendUint32(expected, 9)
	expected = append(expected, "WSoS Bank"...)
	assert.Equal(t, expected, data)

	metas := ix.Accounts()
	require.Len(t, metas, 3)
	assert.Equal(t, bankAccount, metas[0].PublicKey)
	assert.True(t, metas[0].IsWritable)
	assert.False(t, metas[0].IsSigner)
	assert.Equal(t, user, metas[1].PublicKey)
	assert.True(t, metas[1].IsWritable)
	assert.True(t, metas[1].IsSigner)
	assert.Equal(t, system.ProgramID, metas[2].PublicKey)
	assert.False(t, metas[2].IsWritable)
	assert.False(t, metas[2].IsSigner)
}

func TestDepositInstructionData(t *testing.T) {
	ix, err := NewDepositInstruction(
		100_000_000,
		solana.NewWallet().PublicKey(),
		solana.NewWallet().PublicKey(),
		system.ProgramID,
	).ValidateAndBuild()
	require.NoError(t, err)

	data, err := ix.Data()
	require.NoError(t, err)
	require.Len(t, data, 16)
	assert.Equal(t, Instruction_Deposit[:], data[:8])
	assert.Equal(t, uint64(100_000_000), binary.LittleEndian.Uint64(data[8:]))
}

func TestWithdrawInstructionAccounts(t *testing.T) {
	builder := NewWithdrawInstruction(
		5,
		solana.NewWallet().PublicKey(),
		solana.NewWallet().PublicKey(),
	)
	ix, err := builder.ValidateAndBuild()
	require.NoError(t, err)
	assert.Len(t, ix.Accounts(), 2)

	builder.Append(solana.Meta(system.ProgramID))
	ix, err = builder.ValidateAndBuild()
	require.NoError(t, err)
	assert.Len(t, ix.Accounts(), 3)
}

func TestInstructionValidate(t *testing.T) {
	_, err := NewCreateInstructionBuilder().
		SetName("no accounts").
		ValidateAndBuild()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accounts.Bank")

	_, err = NewDepositInstructionBuilder().
		SetBankAccount(solana.NewWallet().PublicKey()).
		ValidateAndBuild()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Amount")
}

func TestDecodeInstruction(t *testing.T) {
	bankAccount := solana.NewWallet().PublicKey()
	user := solana.NewWallet().PublicKey()
	ix := NewWithdrawInstruction(42, bankAccount, user).Build()

	data, err := ix.Data()
	require.NoError(t, err)

	decoded, err := DecodeInstruction(ix.Accounts(), data)
	require.NoError(t, err)
	assert.Equal(t, "Withdraw", InstructionIDToName(decoded.TypeID))

	withdraw, ok := decoded.Impl.(*Withdraw)
	require.True(t, ok)
	require.NotNil(t, withdraw.Amount)
	assert.Equal(t, uint64(42), *withdraw.Amount)
	assert.Equal(t, bankAccount, withdraw.GetBankAccount().PublicKey)
}

func TestEncodeToTree(t *testing.T) {
	ix := NewCreateInstruction("WSoS Bank", solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), system.ProgramID).Build()
	tree := treeout.New("tx")
	ix.EncodeToTree(tree)
	assert.Contains(t, tree.String(), "Create")
	assert.Contains(t, tree.String(), "WSoS Bank")
}

func TestWithdrawEncodeToTreeListsAppendedAccounts(t *testing.T) {
	bankAccount := solana.NewWallet().PublicKey()
	builder := NewWithdrawInstruction(5, bankAccount, solana.NewWallet().PublicKey())
	builder.Append(solana.Meta(system.ProgramID))

	tree := treeout.New("tx")
	builder.EncodeToTree(tree)
	dump := tree.String()
	assert.Contains(t, dump, "Accounts[len=3]")
	assert.Contains(t, dump, bankAccount.String())
	assert.Contains(t, dump, system.ProgramID.String())
}
