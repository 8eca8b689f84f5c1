package addresses

import (
	go_bank "bankgo"
	"errors"

	"github.com/gagliardetto/solana-go"
)

const BANK_ACCOUNT_SEED = "bankaccount"

var ErrInvalidAuthority = errors.New("authority is not a valid public key")

func GetBankAccountSeeds(authority solana.PublicKey) [][]byte {
	return [][]byte{
		[]byte(BANK_ACCOUNT_SEED),
		authority.Bytes(),
	}
}

// GetBankAccountPublicKeyAndBump derives the program owned bank account of
// authority. The search walks bumps 255..0 and returns the first off-curve
// address, so the same inputs always yield the same address and bump.
func GetBankAccountPublicKeyAndBump(
	programId solana.PublicKey,
	authority solana.PublicKey,
) (solana.PublicKey, uint8, error) {
	if programId.IsZero() {
		return solana.PublicKey{}, 0, go_bank.NewBankError(go_bank.ErrorKindDerivation, "derive bank address", errors.New("program id not set"))
	}
	if authority.IsZero() {
		return solana.PublicKey{}, 0, go_bank.NewBankError(go_bank.ErrorKindDerivation, "derive bank address", ErrInvalidAuthority)
	}
	address, bumpSeed, err := solana.FindProgramAddress(
		GetBankAccountSeeds(authority),
		programId,
	)
	if err != nil {
		return solana.PublicKey{}, 0, go_bank.NewBankError(go_bank.ErrorKindDerivation, "derive bank address", err)
	}
	return address, bumpSeed, nil
}

func GetBankAccountPublicKey(
	programId solana.PublicKey,
	authority solana.PublicKey,
) solana.PublicKey {
	address, _, err := GetBankAccountPublicKeyAndBump(programId, authority)
	if err != nil {
		return solana.PublicKey{}
	}
	return address
}

// VerifyBankAccountPublicKey recomputes the address from a known bump.
func VerifyBankAccountPublicKey(
	programId solana.PublicKey,
	authority solana.PublicKey,
	address solana.PublicKey,
	bump uint8,
) bool {
	seeds := append(GetBankAccountSeeds(authority), []byte{bump})
	expected, err := solana.CreateProgramAddress(seeds, programId)
	if err != nil {
		return false
	}
	return expected.Equals(address)
}
