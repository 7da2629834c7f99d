package ethereum

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
)

// FailureCategory is a user-facing class of submission failure
type FailureCategory string

const (
	FailureInsufficientFunds FailureCategory = "insufficient_funds"
	FailureNetwork           FailureCategory = "network_error"
	FailureNonce             FailureCategory = "nonce_error"
	FailureUnknown           FailureCategory = "unknown"
)

var failureMessages = map[FailureCategory]string{
	FailureInsufficientFunds: "Insufficient balance for this transaction",
	FailureNetwork:           "Network error. Please check your connection and try again.",
	FailureNonce:             "Transaction nonce error. Please try again.",
}

// failureRule maps a substring of a node's error text to a category
type failureRule struct {
	Pattern  string
	Category FailureCategory
}

// failureRules is matched in order against the lower-cased error text, used only when
// the error carries no structured signal.
var failureRules = []failureRule{
	{Pattern: "insufficient funds", Category: FailureInsufficientFunds},
	{Pattern: "network", Category: FailureNetwork},
	{Pattern: "nonce", Category: FailureNonce},
}

// classifySubmission wraps a dispatch failure into a SubmissionError
func classifySubmission(err error) *SubmissionError {
	category := structuredCategory(err)
	if category == "" {
		category = matchFailure(err.Error())
	}

	msg, ok := failureMessages[category]
	if !ok {
		msg = "failed to send transaction: " + err.Error()
	}
	return &SubmissionError{Category: category, Message: msg, Err: err}
}

// structuredCategory inspects error types before falling back to text matching
func structuredCategory(err error) FailureCategory {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return FailureNetwork
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return FailureNetwork
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		return FailureNetwork
	}

	return ""
}

func matchFailure(text string) FailureCategory {
	text = strings.ToLower(text)
	for _, rule := range failureRules {
		if strings.Contains(text, rule.Pattern) {
			return rule.Category
		}
	}
	return FailureUnknown
}
