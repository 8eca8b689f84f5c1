package idl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdlPath = filepath.Join("testdata", "bank.json")

func TestLoadFromFile(t *testing.T) {
	idl, err := Load(context.Background(), testIdlPath)
	require.NoError(t, err)
	assert.Equal(t, "bank", idl.Name)

	programId, err := idl.ProgramID()
	require.NoError(t, err)
	assert.Equal(t, solana.MustPublicKeyFromBase58("BankWSoS11111111111111111111111111111111111"), programId)

	withdraw := idl.Instruction("withdraw")
	require.NotNil(t, withdraw)
	assert.False(t, withdraw.HasAccount("system_program"))
	assert.True(t, idl.Instruction("deposit").HasAccount("system_program"))
	assert.True(t, withdraw.Account("user").IsSignerAccount())
	assert.True(t, withdraw.Account("bank").IsWritable())
	assert.Nil(t, idl.Instruction("close"))
}

func TestLoadFromUrl(t *testing.T) {
	data, err := os.ReadFile(testIdlPath)
	require.NoError(t, err)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}))
	defer server.Close()

	idl, err := Load(context.Background(), server.URL+"/bank.json")
	require.NoError(t, err)
	assert.Len(t, idl.Instructions, 3)
}

func TestFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := Fetch(context.Background(), resty.New(), server.URL)
	require.Error(t, err)
}

func TestProgramIDTopLevelAddress(t *testing.T) {
	idl, err := Parse([]byte(`{"address":"11111111111111111111111111111111","instructions":[{"name":"withdraw","accounts":[{"name":"bank","writable":true},{"name":"user","writable":true,"signer":true},{"name":"system_program","address":"11111111111111111111111111111111"}]}]}`))
	require.NoError(t, err)
	programId, err := idl.ProgramID()
	require.NoError(t, err)
	assert.Equal(t, solana.SystemProgramID, programId)
	assert.True(t, idl.Instruction("withdraw").HasAccount("systemProgram"))
	assert.True(t, idl.Instruction("withdraw").Account("user").IsSignerAccount())
}

func TestProgramIDMissing(t *testing.T) {
	idl, err := Parse([]byte(`{"name":"bank"}`))
	require.NoError(t, err)
	_, err = idl.ProgramID()
	require.Error(t, err)
}
