package bank

import (
	go_bank "bankgo"
	"bankgo/addresses"
	"bankgo/anchor/types"
	banklib "bankgo/lib/bank"
	"bankgo/lib/idl"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

// BankClient turns bank operations into program instructions for the wallet of
// the program's provider. It never touches the network.
type BankClient struct {
	program    types.IProgram
	programIdl *idl.Idl
}

// CreateBankClient binds program to its interface description. programIdl may
// be nil, in which case withdraw is built with the bank and user accounts only.
func CreateBankClient(program types.IProgram, programIdl *idl.Idl) *BankClient {
	return &BankClient{
		program:    program,
		programIdl: programIdl,
	}
}

func (p *BankClient) GetProgram() types.IProgram {
	return p.program
}

func (p *BankClient) GetProgramId() solana.PublicKey {
	return p.program.GetProgramId()
}

func (p *BankClient) GetWallet() go_bank.IWallet {
	return p.program.GetProvider().GetWallet()
}

func (p *BankClient) getUser(op string) (solana.PublicKey, error) {
	wallet := p.GetWallet()
	if !go_bank.IsConnected(wallet) {
		return solana.PublicKey{}, go_bank.NewBankError(go_bank.ErrorKindNotConnected, op, go_bank.ErrWalletNotConnected)
	}
	return wallet.GetPublicKey(), nil
}

// GetBankAccountPublicKey is the bank account of the connected wallet.
func (p *BankClient) GetBankAccountPublicKey() (solana.PublicKey, error) {
	user, err := p.getUser("derive bank address")
	if err != nil {
		return solana.PublicKey{}, err
	}
	address, _, err := addresses.GetBankAccountPublicKeyAndBump(p.GetProgramId(), user)
	return address, err
}

func (p *BankClient) GetCreateIx(name string) (solana.Instruction, solana.PublicKey, error) {
	user, err := p.getUser("create")
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	bankAccount, _, err := addresses.GetBankAccountPublicKeyAndBump(p.GetProgramId(), user)
	if err != nil {
		return nil, solana.PublicKey{}, go_bank.WithOp(err, "create", go_bank.ErrorKindDerivation)
	}
	ix, err := banklib.NewCreateInstruction(
		name,
		bankAccount,
		user,
		system.ProgramID,
	).ValidateAndBuild()
	if err != nil {
		return nil, solana.PublicKey{}, go_bank.NewBankError(go_bank.ErrorKindBuild, "create", err)
	}
	return ix.WithProgramID(p.GetProgramId()), bankAccount, nil
}

func (p *BankClient) GetDepositIx(bankAccount solana.PublicKey, amount uint64) (solana.Instruction, error) {
	user, err := p.getUser("deposit")
	if err != nil {
		return nil, err
	}
	ix, err := banklib.NewDepositInstruction(
		amount,
		bankAccount,
		user,
		system.ProgramID,
	).ValidateAndBuild()
	if err != nil {
		return nil, go_bank.NewBankError(go_bank.ErrorKindBuild, "deposit", err)
	}
	return ix.WithProgramID(p.GetProgramId()), nil
}

func (p *BankClient) GetWithdrawIx(bankAccount solana.PublicKey, amount uint64) (solana.Instruction, error) {
	user, err := p.getUser("withdraw")
	if err != nil {
		return nil, err
	}
	builder := banklib.NewWithdrawInstruction(
		amount,
		bankAccount,
		user,
	)
	if p.withdrawNeedsSystemProgram() {
		builder.Append(solana.Meta(system.ProgramID))
	}
	ix, err := builder.ValidateAndBuild()
	if err != nil {
		return nil, go_bank.NewBankError(go_bank.ErrorKindBuild, "withdraw", err)
	}
	return ix.WithProgramID(p.GetProgramId()), nil
}

func (p *BankClient) withdrawNeedsSystemProgram() bool {
	if p.programIdl == nil {
		return false
	}
	withdraw := p.programIdl.Instruction("withdraw")
	return withdraw != nil && withdraw.HasAccount("systemProgram")
}
