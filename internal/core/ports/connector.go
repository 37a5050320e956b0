package ports

import (
	"context"
	"encoding/json"
)

// AccountData is the account published by a connector after a successful
// connection.
type AccountData struct {
	Account string
}

// Balance is one asset balance normalized by a connector. Value always
// carries the integer base-unit amount, Amount is the extension's own display
// representation and is only kept for interop.
type Balance struct {
	Symbol     string
	Name       string
	CanisterID string // empty for the native asset
	Amount     float64
	Value      uint64
}

// TransferRequest describes a value transfer signed by the wallet extension.
type TransferRequest struct {
	To     string
	Amount uint64
	Memo   uint64
}

// TransferResult carries the ledger block height at which the transfer was
// applied.
type TransferResult struct {
	Height uint64
}

// InterfaceDescription names a canister service interface and the methods the
// client intends to call on it. Connectors must pass it through unchanged.
type InterfaceDescription struct {
	Name    string
	Methods []string
}

// ActorConfig binds an actor to a canister and its interface description.
type ActorConfig struct {
	CanisterID string
	Interface  InterfaceDescription
	Host       string
}

// Actor is a remote-callable handle bound to one canister. Call returns the
// raw reply for the caller to decode; a resolved call may still carry an err
// variant, absence of an error here does not imply success.
type Actor interface {
	CanisterID() string
	Call(ctx context.Context, method string, args interface{}) (json.RawMessage, error)
}

// ActorFactory creates actors bound to a canister and interface description.
type ActorFactory interface {
	CreateActor(ctx context.Context, config ActorConfig) (Actor, error)
}

// Connector adapts one wallet extension to the shared capability contract.
// Implementations are selected at runtime by feature detection (Ready), there
// is exactly one per supported extension.
type Connector interface {
	ActorFactory

	// Name returns the stable name identifying the connector kind.
	Name() string

	// Ready reports whether the wallet extension was detected at
	// construction time.
	Ready() bool

	// Connect establishes the session with the extension. A nil AccountData
	// with a nil error means the extension is not installed and the user was
	// redirected to its install page; this is a distinct outcome from a
	// declined permission prompt, which is returned as an error.
	Connect(ctx context.Context) (*AccountData, error)

	// Disconnect revokes the session with the extension.
	Disconnect(ctx context.Context) error

	// IsAuthorized reports whether the extension currently authorizes this
	// client. It must keep returning true after a successful Connect until
	// Disconnect is called or the extension revokes access out-of-band.
	IsAuthorized(ctx context.Context) (bool, error)

	// Principal returns the textual principal of the connected account.
	Principal(ctx context.Context) (string, error)

	// AccountID returns the ledger account identifier of the connected
	// account.
	AccountID(ctx context.Context) (string, error)

	// Balances returns the balances of the connected account, with amounts
	// normalized to integer base units.
	Balances(ctx context.Context) ([]Balance, error)

	// Transfer asks the extension to sign and submit a value transfer. It is
	// never retried here; retrying is a caller concern.
	Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error)
}
