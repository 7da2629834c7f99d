package ethereum

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/AlexZinkM/eth-wallet/internal/common"
)

// Validation reasons
const (
	ReasonMissingField      = "missing_field"
	ReasonInvalidAddress    = "invalid_address"
	ReasonInvalidAmount     = "invalid_amount"
	ReasonInvalidPrivateKey = "invalid_private_key"
	ReasonKeyMismatch       = "key_mismatch"
)

// ValidationError is bad input. Never worth retrying.
type ValidationError struct {
	Field   string // offending request field, empty when several are involved
	Reason  string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError checks if error is ValidationError
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// KeyRecoveryError means a held key could not be decrypted. The request fails;
// there is no fallback to the caller-supplied key.
type KeyRecoveryError struct {
	Address string
	Err     error
}

func (e *KeyRecoveryError) Error() string {
	return "failed to decrypt private key"
}

func (e *KeyRecoveryError) Unwrap() error {
	return e.Err
}

// IsKeyRecoveryError checks if error is KeyRecoveryError
func IsKeyRecoveryError(err error) bool {
	var target *KeyRecoveryError
	return errors.As(err, &target)
}

// InsufficientBalanceError is returned when balance < amount + fee. Amounts are in wei.
type InsufficientBalanceError struct {
	Required  *big.Int
	Available *big.Int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: need %s ETH, have %s ETH",
		common.WeiToEther(e.Required), common.WeiToEther(e.Available))
}

// IsInsufficientBalanceError checks if error is InsufficientBalanceError
func IsInsufficientBalanceError(err error) bool {
	var target *InsufficientBalanceError
	return errors.As(err, &target)
}

// SubmissionError is a failure building or dispatching a signed transfer, classified
// into a user-facing category.
type SubmissionError struct {
	Category FailureCategory
	Message  string
	Err      error
}

func (e *SubmissionError) Error() string {
	return e.Message
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// IsSubmissionError checks if error is SubmissionError
func IsSubmissionError(err error) bool {
	var target *SubmissionError
	return errors.As(err, &target)
}
