package namespace

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	go_bank "bankgo"
	"bankgo/anchor/types"
	"bankgo/lib/solana"

	bin "github.com/gagliardetto/binary"
	solana2 "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

var ErrAccountNotFound = errors.New("account not found")

type AccountNamespace struct {
	types.IAccountNamespace
	Provider  types.IProvider
	mu        sync.Mutex
	clientMap map[string]*AccountClient
}

func CreateAccountNamespace(provider types.IProvider) *AccountNamespace {
	return &AccountNamespace{
		Provider:  provider,
		clientMap: make(map[string]*AccountClient),
	}
}

// Client returns the cached client for the Go type of t. t must be a value, not a pointer.
func (p *AccountNamespace) Client(t any, accountName string) types.IAccountClient {
	defer p.mu.Unlock()
	p.mu.Lock()
	mapKey := reflect.TypeOf(t).String()
	accountClient, exists := p.clientMap[mapKey]
	if !exists {
		accountClient = &AccountClient{
			provider:    p.Provider,
			accountType: reflect.TypeOf(t),
			accountName: accountName,
		}
		p.clientMap[mapKey] = accountClient
	}
	return accountClient
}

type AccountClient struct {
	types.IAccountClient
	provider    types.IProvider
	accountType reflect.Type
	accountName string
}

// Decode returns a pointer to a freshly decoded value of the client's account type.
func (p *AccountClient) Decode(data []byte) (interface{}, error) {
	obj := reflect.New(p.accountType).Interface()
	err := bin.NewBorshDecoder(data).Decode(obj)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p.accountName, err)
	}
	return obj, nil
}

// FetchNullableAndContext returns a nil account and nil error when the address holds no data.
func (p *AccountClient) FetchNullableAndContext(
	ctx context.Context,
	address solana2.PublicKey,
	commitment rpc.CommitmentType,
) (interface{}, *rpc.Context, error) {
	accountInfo, err := p.provider.GetConnection().GetAccountInfoWithOpts(
		ctx,
		address,
		&rpc.GetAccountInfoOpts{
			Commitment: commitment,
			Encoding:   solana2.EncodingBase64,
		},
	)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	if accountInfo == nil || accountInfo.Value == nil {
		return nil, nil, nil
	}
	obj, err := p.Decode(accountInfo.Value.Data.GetBinary())
	if err != nil {
		return nil, &accountInfo.RPCContext.Context, err
	}
	return obj, &accountInfo.RPCContext.Context, nil
}

func (p *AccountClient) Fetch(
	ctx context.Context,
	address solana2.PublicKey,
	commitment rpc.CommitmentType,
) (interface{}, error) {
	data, _, err := p.FetchNullableAndContext(ctx, address, commitment)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, address)
	}
	return data, nil
}

// All lists every account of this type owned by the program. Extra filters are
// appended after the discriminator filter. Any undecodable account fails the call.
func (p *AccountClient) All(ctx context.Context, filters []rpc.RPCFilter) ([]types.KeyedAccount, error) {
	filters = append([]rpc.RPCFilter{go_bank.GetAccountFilter(p.accountName)}, filters...)
	result, err := solana.GetProgramAccountsContextWithOpts(
		p.provider.GetConnection(),
		ctx,
		p.provider.GetProgram().GetProgramId(),
		&rpc.GetProgramAccountsOpts{
			Filters:    filters,
			Commitment: p.provider.GetOpts().Commitment,
			Encoding:   solana2.EncodingBase64,
		},
	)
	if err != nil {
		return nil, err
	}
	accounts := make([]types.KeyedAccount, 0, len(result.Value))
	for _, keyed := range result.Value {
		if keyed == nil || keyed.Account == nil {
			continue
		}
		obj, err := p.Decode(keyed.Account.Data.GetBinary())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", keyed.Pubkey, err)
		}
		accounts = append(accounts, types.KeyedAccount{Pubkey: keyed.Pubkey, Account: obj})
	}
	return accounts, nil
}
