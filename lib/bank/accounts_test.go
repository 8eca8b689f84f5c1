package bank

import (
	"encoding/binary"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOwner = solana.MustPublicKeyFromBase58("BankWSoS11111111111111111111111111111111111")

func encodeBankData(name string, balance uint64, owner solana.PublicKey) []byte {
	data := append([]byte{}, BankDiscriminator[:]...)
	data = binary.LittleEndian.AppendUint32(data, uint32(len(name)))
	data = append(data, name...)
	data = binary.LittleEndian.AppendUint64(data, balance)
	data = append(data, owner.Bytes()...)
	// Anchor accounts are allocated larger than their content.
	return append(data, make([]byte, 64)...)
}

var TestData = encodeBankData("WSoS Bank", 100_000_000, testOwner)

// go test --run TestParseAnyAccount

func TestParseAnyAccount(t *testing.T) {
	spew.Dump("ParseAnyAccount")
	accountData, err := ParseAnyAccount(TestData)
	if err != nil {
		t.Fatal(err)
	}
	spew.Dump("TestParseAnyAccount Result", accountData)

	bank, ok := accountData.(*Bank)
	require.True(t, ok)
	assert.Equal(t, "WSoS Bank", bank.Name)
	assert.Equal(t, uint64(100_000_000), bank.Balance)
	assert.Equal(t, testOwner, bank.Owner)
}

// go test --run TestParseAccountBank

func TestParseAccountBank(t *testing.T) {
	accountData, err := ParseAccount_Bank(TestData)
	if err != nil {
		t.Fatal(err)
	}
	spew.Dump("TestParseAccountBank Result", accountData)
	assert.Equal(t, "WSoS Bank", accountData.Name)
}

func TestParseAccountBankWrongDiscriminator(t *testing.T) {
	data := append([]byte{}, TestData...)
	data[0] ^= 0xff

	_, err := ParseAccount_Bank(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong discriminator")

	_, err = ParseAnyAccount(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown discriminator")
}

func TestParseAccountBankTruncated(t *testing.T) {
	_, err := ParseAccount_Bank(TestData[:20])
	require.Error(t, err)
}

func TestBankMarshalBinary(t *testing.T) {
	data, err := Bank{Name: "WSoS Bank", Balance: 100_000_000, Owner: testOwner}.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, TestData[:len(data)], data)

	decoded, err := ParseAccount_Bank(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000_000), decoded.Balance)
}
