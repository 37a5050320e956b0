package application

import (
	"context"

	"github.com/stakedicp/wallet-client/internal/core/ports"
)

// AccountInfo is the connected account as seen by the UI.
type AccountInfo struct {
	Principal string
	Connector ports.Connector
}

// AccountService is the read accessor for the connected account. It holds no
// state of its own; disconnecting routes through the session so there is a
// single source of truth for connector state.
type AccountService struct {
	session *SessionService
}

// NewAccountService ...
func NewAccountService(session *SessionService) (*AccountService, error) {
	if session == nil {
		return nil, ErrMissingSession
	}
	return &AccountService{session: session}, nil
}

// Get returns the connected account, or nil while disconnected.
func (a *AccountService) Get() *AccountInfo {
	data := a.session.Account()
	if data == nil {
		return nil
	}
	return &AccountInfo{
		Principal: data.Account,
		Connector: a.session.ActiveConnector(),
	}
}

// Disconnect tears down the session's connection.
func (a *AccountService) Disconnect(ctx context.Context) error {
	return a.session.Disconnect(ctx)
}
