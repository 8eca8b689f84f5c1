package priorityFee

import (
	"context"
	"errors"
	"testing"
	"time"

	"bankgo/connection/connectiontest"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func onFees(conn *connectiontest.MockRpcConnection, fees []rpc.PriorizationFeeResult) *mock.Call {
	return conn.On("RPCCallForInto", mock.Anything, mock.Anything, "getRecentPrioritizationFees", mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(1).(*[]rpc.PriorizationFeeResult)
			*out = append([]rpc.PriorizationFeeResult{}, fees...)
		}).
		Return(nil)
}

var fees = []rpc.PriorizationFeeResult{
	{Slot: 100, PrioritizationFee: 1_000},
	{Slot: 160, PrioritizationFee: 300},
	{Slot: 150, PrioritizationFee: 100},
	{Slot: 120, PrioritizationFee: 5_000},
}

func TestStrategies(t *testing.T) {
	samples := []Sample{{PrioritizationFee: 10}, {PrioritizationFee: 30}, {PrioritizationFee: 20}}
	assert.Equal(t, uint64(20), StrategyFor(StrategyAverage).Calculate(samples))
	assert.Equal(t, uint64(30), StrategyFor(StrategyMax).Calculate(samples))
	assert.Equal(t, uint64(0), StrategyFor(StrategyAverage).Calculate(nil))
	assert.Equal(t, uint64(0), StrategyFor(StrategyMax).Calculate(nil))
}

func TestFetchSamplesLookback(t *testing.T) {
	conn := &connectiontest.MockRpcConnection{}
	onFees(conn, fees)

	samples, err := FetchSamples(context.Background(), conn, 40, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []Sample{
		{Slot: 160, PrioritizationFee: 300},
		{Slot: 150, PrioritizationFee: 100},
		{Slot: 120, PrioritizationFee: 5_000},
	}, samples)
}

func TestEstimate(t *testing.T) {
	conn := &connectiontest.MockRpcConnection{}
	onFees(conn, fees)
	estimator := CreatePriorityFeeEstimator(conn, EstimatorConfig{
		SlotsToCheck: 20,
		Strategy:     StrategyMax,
		Multiplier:   1.5,
	}, nil)

	price, err := estimator.Estimate(context.Background(), []solana.PublicKey{solana.NewWallet().PublicKey()})
	require.NoError(t, err)
	assert.Equal(t, uint64(450), price)
}

func TestEstimateClamped(t *testing.T) {
	conn := &connectiontest.MockRpcConnection{}
	onFees(conn, fees)
	estimator := CreatePriorityFeeEstimator(conn, EstimatorConfig{
		SlotsToCheck:        100,
		Strategy:            StrategyMax,
		MaxFeeMicroLamports: 2_000,
	}, nil)

	price, err := estimator.Estimate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_000), price)
}

func TestEstimateCached(t *testing.T) {
	conn := &connectiontest.MockRpcConnection{}
	onFees(conn, fees).Once()
	estimator := CreatePriorityFeeEstimator(conn, EstimatorConfig{CacheTTL: time.Minute}, nil)
	a := solana.NewWallet().PublicKey()
	b := solana.NewWallet().PublicKey()

	first, err := estimator.Estimate(context.Background(), []solana.PublicKey{a, b})
	require.NoError(t, err)
	second, err := estimator.Estimate(context.Background(), []solana.PublicKey{b, a})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	conn.AssertNumberOfCalls(t, "RPCCallForInto", 1)
}

func TestEstimateError(t *testing.T) {
	conn := &connectiontest.MockRpcConnection{}
	conn.On("RPCCallForInto", mock.Anything, mock.Anything, "getRecentPrioritizationFees", mock.Anything).
		Return(errors.New("method not found"))
	estimator := CreatePriorityFeeEstimator(conn, EstimatorConfig{}, nil)

	_, err := estimator.Estimate(context.Background(), nil)
	assert.Error(t, err)
}

func TestWritableAccounts(t *testing.T) {
	bank := solana.NewWallet().PublicKey()
	user := solana.NewWallet().PublicKey()
	readonly := solana.NewWallet().PublicKey()
	ix := solana.NewInstruction(solana.NewWallet().PublicKey(), solana.AccountMetaSlice{
		solana.Meta(bank).WRITE(),
		solana.Meta(user).WRITE().SIGNER(),
		solana.Meta(readonly),
		solana.Meta(bank).WRITE(),
	}, nil)

	assert.Equal(t, []solana.PublicKey{bank, user}, WritableAccounts(ix))
}
