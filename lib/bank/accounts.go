// Code shaped after anchor-go output for the bank program. Edit with care.

package bank

import (
	"bytes"
	"fmt"

	ag_binary "github.com/gagliardetto/binary"
	ag_solanago "github.com/gagliardetto/solana-go"
)

type Bank struct {
	Name    string
	Balance uint64
	Owner   ag_solanago.PublicKey
}

const AccountName_Bank = "Bank"

var BankDiscriminator = [8]byte{142, 49, 166, 242, 50, 66, 97, 188}

func (obj Bank) MarshalWithEncoder(encoder *ag_binary.Encoder) (err error) {
	// Write account discriminator:
	err = encoder.WriteBytes(BankDiscriminator[:], false)
	if err != nil {
		return err
	}
	// Serialize `Name` param:
	err = encoder.Encode(obj.Name)
	if err != nil {
		return err
	}
	// Serialize `Balance` param:
	err = encoder.Encode(obj.Balance)
	if err != nil {
		return err
	}
	// Serialize `Owner` param:
	err = encoder.Encode(obj.Owner)
	if err != nil {
		return err
	}
	return nil
}

// MarshalBinary returns the account data as stored on chain, without trailing space.
func (obj Bank) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := obj.MarshalWithEncoder(ag_binary.NewBorshEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (obj *Bank) UnmarshalWithDecoder(decoder *ag_binary.Decoder) (err error) {
	// Read and check account discriminator:
	{
		discriminator, err := decoder.ReadTypeID()
		if err != nil {
			return err
		}
		if !discriminator.Equal(BankDiscriminator[:]) {
			return fmt.Errorf(
				"wrong discriminator: wanted %s, got %s",
				"[142 49 166 242 50 66 97 188]",
				fmt.Sprint(discriminator[:]))
		}
	}
	// Deserialize `Name`:
	err = decoder.Decode(&obj.Name)
	if err != nil {
		return err
	}
	// Deserialize `Balance`:
	err = decoder.Decode(&obj.Balance)
	if err != nil {
		return err
	}
	// Deserialize `Owner`:
	err = decoder.Decode(&obj.Owner)
	if err != nil {
		return err
	}
	return nil
}

func ParseAnyAccount(accountData []byte) (any, error) {
	decoder := ag_binary.NewBorshDecoder(accountData)
	discriminator, err := decoder.Peek(8)
	if err != nil {
		return nil, fmt.Errorf("failed to peek account discriminator: %w", err)
	}
	switch string(discriminator) {
	case string(BankDiscriminator[:]):
		value := new(Bank)
		err := value.UnmarshalWithDecoder(decoder)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal account as Bank: %w", err)
		}
		return value, nil
	default:
		return nil, fmt.Errorf("unknown discriminator: %v", discriminator)
	}
}

func ParseAccount_Bank(accountData []byte) (*Bank, error) {
	decoder := ag_binary.NewBorshDecoder(accountData)
	acc := new(Bank)
	err := acc.UnmarshalWithDecoder(decoder)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal account of type Bank: %w", err)
	}
	return acc, nil
}
