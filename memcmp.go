package go_bank

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/iancoleman/strcase"
)

const DISCRIMINATOR_SIZE = 8

const BANK_NAME_OFFSET = DISCRIMINATOR_SIZE

func GetAccountDiscriminator(accountName string) []byte {
	hash := sha256.Sum256([]byte(fmt.Sprintf("account:%s", strcase.ToCamel(accountName))))
	return hash[0:DISCRIMINATOR_SIZE]
}

func GetAccountFilter(accountName string) rpc.RPCFilter {
	return rpc.RPCFilter{
		Memcmp: &rpc.RPCFilterMemcmp{
			Offset: 0,
			Bytes:  solana.Base58(GetAccountDiscriminator(accountName)),
		},
	}
}

func GetBankFilter() rpc.RPCFilter {
	return GetAccountFilter("Bank")
}

// GetBankNameFilter matches banks whose name is exactly name (Borsh length prefix
// included, so "Bank" does not match "Bank 2").
func GetBankNameFilter(name string) rpc.RPCFilter {
	encoded := make([]byte, 4+len(name))
	binary.LittleEndian.PutUint32(encoded, uint32(len(name)))
	copy(encoded[4:], name)
	return rpc.RPCFilter{
		Memcmp: &rpc.RPCFilterMemcmp{
			Offset: BANK_NAME_OFFSET,
			Bytes:  encoded,
		},
	}
}
