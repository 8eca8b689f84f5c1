package go_bank

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	ErrorKindNone ErrorKind = iota
	// ErrorKindNotConnected is returned before any network call when the wallet has no public key.
	ErrorKindNotConnected
	// ErrorKindDerivation means no off-curve address exists for the seeds within bumps 0..255.
	ErrorKindDerivation
	// ErrorKindBuild covers instruction and transaction construction failures.
	ErrorKindBuild
	// ErrorKindSignerRejection means the wallet declined to sign.
	ErrorKindSignerRejection
	// ErrorKindSubmission covers transport failures while sending or confirming.
	ErrorKindSubmission
	// ErrorKindRemoteRejection means the program or runtime refused the transaction.
	ErrorKindRemoteRejection
	// ErrorKindFetch means an account refresh could not complete.
	ErrorKindFetch
	ErrorKindGeneral
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindNone:
		return "None"
	case ErrorKindNotConnected:
		return "NotConnected"
	case ErrorKindDerivation:
		return "DerivationError"
	case ErrorKindBuild:
		return "BuildError"
	case ErrorKindSignerRejection:
		return "SignerRejection"
	case ErrorKindSubmission:
		return "SubmissionFailure"
	case ErrorKindRemoteRejection:
		return "RemoteRejection"
	case ErrorKindFetch:
		return "FetchFailure"
	default:
		return "GeneralError"
	}
}

type BankError struct {
	Kind    ErrorKind
	Op      string
	Message string
	Err     error
}

func NewBankError(kind ErrorKind, op string, err error, message ...string) *BankError {
	bankError := &BankError{
		Kind: kind,
		Op:   op,
		Err:  err,
	}
	if len(message) > 0 {
		bankError.Message = message[0]
	}
	return bankError
}

func (e *BankError) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Message != "" {
		msg = msg + ": " + e.Message
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *BankError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the outermost BankError in the chain.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ErrorKindNone
	}
	var bankError *BankError
	if errors.As(err, &bankError) {
		return bankError.Kind
	}
	return ErrorKindGeneral
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// WithOp re-labels err with op, keeping its kind. Plain errors become kind.
func WithOp(err error, op string, kind ErrorKind) error {
	if err == nil {
		return nil
	}
	var bankError *BankError
	if errors.As(err, &bankError) {
		return &BankError{Kind: bankError.Kind, Op: op, Message: bankError.Message, Err: bankError.Err}
	}
	return &BankError{Kind: kind, Op: op, Err: err}
}

func Errorf(kind ErrorKind, op string, format string, args ...interface{}) error {
	return &BankError{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}
