package domain

import (
	"errors"
	"fmt"

	"github.com/stakedicp/wallet-client/pkg/icpunits"
)

var (
	// ErrWalletNotConnected is returned by operations that need an active
	// connector while the session is disconnected.
	ErrWalletNotConnected = errors.New("wallet not connected")
	// ErrConnectorAlreadyConnected is returned when connecting the connector
	// that is already active, to prevent duplicate permission prompts.
	ErrConnectorAlreadyConnected = errors.New("connector already connected")
	// ErrConnectorNotFound ...
	ErrConnectorNotFound = errors.New("connector not found")
	// ErrAmountMissing is returned when a money-moving action is confirmed
	// without an amount.
	ErrAmountMissing = errors.New("amount missing")
	// ErrDepositsCanisterMissing is returned when the deposits canister is
	// not configured or not reachable.
	ErrDepositsCanisterMissing = errors.New("deposits canister missing")
	// ErrDepositAddressMissing ...
	ErrDepositAddressMissing = errors.New("failed to get the deposit address")
	// ErrTransferFailed is the generic failure for a transfer that resolved
	// without a block height.
	ErrTransferFailed = errors.New("transfer failed")
	// ErrWithdrawalFailed is the generic failure for a withdrawal receipt
	// that carries neither an ok nor an err variant.
	ErrWithdrawalFailed = errors.New("withdrawal failed")

	// ErrFlowMustBeConfirm ...
	ErrFlowMustBeConfirm = errors.New("flow must be in confirm status")
	// ErrFlowMustBePending ...
	ErrFlowMustBePending = errors.New("flow must be in pending status")
	// ErrFlowStillPending is returned when reopening a flow whose action is
	// still in flight.
	ErrFlowStillPending = errors.New("flow action still pending")
)

// BelowMinimumError is the validation failure for amounts under the protocol
// minimum. It is detected before any remote call is made.
type BelowMinimumError struct {
	Op      string
	Minimum uint64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("minimum %s is %s ICP", e.Op, icpunits.FormatE8s(e.Minimum))
}
