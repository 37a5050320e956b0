package domain

import "encoding/json"

// Canister replies follow the tagged ok/err convention: exactly one of the
// two branches is present and the err branch must be checked explicitly,
// a resolved call is not a successful call.

// WithdrawalsError is the tagged error variant of the deposits canister. The
// branches are kept as raw messages because a present branch may legitimately
// be encoded as null; presence of the key is what selects the category.
type WithdrawalsError struct {
	InsufficientBalance   json.RawMessage `json:"InsufficientBalance,omitempty"`
	InsufficientLiquidity json.RawMessage `json:"InsufficientLiquidity,omitempty"`
	InvalidAddress        json.RawMessage `json:"InvalidAddress,omitempty"`
	Unauthorized          json.RawMessage `json:"Unauthorized,omitempty"`
	Other                 *string         `json:"Other,omitempty"`
}

// Error maps the variant to a human-readable message. Unmapped variants fall
// back to a generic message so raw internal shapes never reach the UI.
func (e *WithdrawalsError) Error() string {
	switch {
	case e == nil:
		return "Withdrawal failed."
	case e.InsufficientBalance != nil:
		return "Your balance is too low for this withdrawal."
	case e.InsufficientLiquidity != nil:
		return "The protocol does not have enough liquidity for this withdrawal right now."
	case e.InvalidAddress != nil:
		return "The destination address is not valid."
	case e.Unauthorized != nil:
		return "You are not authorized to perform this withdrawal."
	case e.Other != nil && *e.Other != "":
		return *e.Other
	default:
		return "Withdrawal failed."
	}
}

// CreateWithdrawalReceipt is the reply of the deposits canister's
// createWithdrawal method.
type CreateWithdrawalReceipt struct {
	Ok  *Withdrawal       `json:"ok,omitempty"`
	Err *WithdrawalsError `json:"err,omitempty"`
}

// CompleteWithdrawalReceipt is the reply of completeWithdrawal, carrying the
// ledger block height of the disbursing transfer.
type CompleteWithdrawalReceipt struct {
	Ok  *uint64           `json:"ok,omitempty"`
	Err *WithdrawalsError `json:"err,omitempty"`
}
