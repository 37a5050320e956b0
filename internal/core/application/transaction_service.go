package application

import (
	"context"

	"github.com/stakedicp/wallet-client/internal/core/domain"
	"github.com/stakedicp/wallet-client/internal/core/ports"
	"github.com/stakedicp/wallet-client/internal/metrics"
)

// TransactionService fronts the active connector's transfer call. It never
// retries: a failed transfer is surfaced and retrying is a fresh user
// action.
type TransactionService struct {
	session *SessionService
}

// NewTransactionService ...
func NewTransactionService(session *SessionService) (*TransactionService, error) {
	if session == nil {
		return nil, ErrMissingSession
	}
	return &TransactionService{session: session}, nil
}

// Send asks the active connector to sign and submit the transfer, returning
// the ledger block height it was applied at.
func (t *TransactionService) Send(
	ctx context.Context, req ports.TransferRequest,
) (uint64, error) {
	if req.Amount == 0 {
		return 0, domain.ErrAmountMissing
	}
	connector := t.session.ActiveConnector()
	if connector == nil {
		return 0, domain.ErrWalletNotConnected
	}

	result, err := connector.Transfer(ctx, req)
	if err != nil {
		metrics.TransferFailures.WithLabelValues(connector.Name()).Inc()
		return 0, err
	}
	if result == nil {
		metrics.TransferFailures.WithLabelValues(connector.Name()).Inc()
		return 0, domain.ErrTransferFailed
	}

	metrics.Transfers.WithLabelValues(connector.Name()).Inc()
	return result.Height, nil
}
