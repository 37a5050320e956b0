// Package bitfinity adapts the Bitfinity wallet extension to the connector
// contract. Unlike Plug, the extension exposes no balance or transfer calls
// of its own, so both go through an actor bound to the ICP ledger canister.
package bitfinity

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/stakedicp/wallet-client/internal/core/ports"
	"github.com/stakedicp/wallet-client/pkg/icpunits"
)

// InstallURL is where users without the extension are redirected.
const InstallURL = "https://wallet.infinityswap.one/"

const connectorName = "Bitfinity"

// transferFee is the ledger's fixed transfer fee in e8s.
const transferFee = 10_000

// ledgerInterface names the ledger methods this connector calls.
var ledgerInterface = ports.InterfaceDescription{
	Name:    "ledger",
	Methods: []string{"account_balance", "transfer"},
}

// Extension is the surface of the Bitfinity provider object this connector
// talks to.
type Extension interface {
	IsConnected(ctx context.Context) (bool, error)
	RequestConnect(ctx context.Context, opts Options) error
	Disconnect(ctx context.Context) error
	Principal(ctx context.Context) (string, error)
	AccountID(ctx context.Context) (string, error)
	CreateActor(ctx context.Context, config ports.ActorConfig) (ports.Actor, error)
}

// Options parametrize the extension's permission prompt and agent.
type Options struct {
	Whitelist []string
	Host      string
	// Dev enables the extension's local-replica mode.
	Dev bool
}

// Opener redirects the user to a URL, typically the extension's install
// page.
type Opener func(url string)

// Connector adapts the Bitfinity extension. A nil extension means it was not
// detected.
type Connector struct {
	ext            Extension
	opts           Options
	ledgerCanister string
	opener         Opener
}

// NewConnector returns a connector over the detected extension (nil when
// absent) and the ledger canister id used for balances and transfers.
func NewConnector(
	ext Extension, opts Options, ledgerCanister string, opener Opener,
) *Connector {
	if opener == nil {
		opener = func(string) {}
	}
	return &Connector{
		ext:            ext,
		opts:           opts,
		ledgerCanister: ledgerCanister,
		opener:         opener,
	}
}

func (c *Connector) Name() string { return connectorName }

func (c *Connector) Ready() bool { return c.ext != nil }

// Connect establishes the session. With the extension absent the user is
// sent to the install page and a nil account with a nil error is returned.
func (c *Connector) Connect(ctx context.Context) (*ports.AccountData, error) {
	if c.ext == nil {
		c.opener(InstallURL)
		return nil, nil
	}

	connected, err := c.ext.IsConnected(ctx)
	if err != nil {
		return nil, err
	}
	if !connected {
		if err := c.ext.RequestConnect(ctx, c.opts); err != nil {
			return nil, err
		}
	}

	principal, err := c.ext.Principal(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.AccountData{Account: principal}, nil
}

func (c *Connector) Disconnect(ctx context.Context) error {
	if c.ext == nil {
		return nil
	}
	return c.ext.Disconnect(ctx)
}

func (c *Connector) IsAuthorized(ctx context.Context) (bool, error) {
	if c.ext == nil {
		return false, nil
	}
	return c.ext.IsConnected(ctx)
}

func (c *Connector) Principal(ctx context.Context) (string, error) {
	if c.ext == nil {
		return "", ErrWalletNotFound
	}
	return c.ext.Principal(ctx)
}

// AccountID returns the extension's own account identifier; Bitfinity
// exposes it directly instead of leaving the derivation to the client.
func (c *Connector) AccountID(ctx context.Context) (string, error) {
	if c.ext == nil {
		return "", ErrWalletNotFound
	}
	return c.ext.AccountID(ctx)
}

// Balances queries the ledger for the account's ICP balance. The extension
// has no balance call, so the list always holds the single native entry.
func (c *Connector) Balances(ctx context.Context) ([]ports.Balance, error) {
	ledger, err := c.ledger(ctx)
	if err != nil {
		return nil, err
	}
	account, err := c.AccountID(ctx)
	if err != nil {
		return nil, err
	}
	accountBytes, err := hex.DecodeString(account)
	if err != nil {
		return nil, fmt.Errorf("invalid account identifier %q: %w", account, err)
	}

	raw, err := ledger.Call(ctx, "account_balance", []interface{}{
		map[string]interface{}{"account": accountBytes},
	})
	if err != nil {
		return nil, err
	}
	var balance struct {
		E8s uint64 `json:"e8s"`
	}
	if err := json.Unmarshal(raw, &balance); err != nil {
		return nil, fmt.Errorf("decoding account_balance reply: %w", err)
	}

	return []ports.Balance{{
		Symbol: "ICP",
		Name:   "ICP",
		Amount: icpunits.ToFloat(balance.E8s),
		Value:  balance.E8s,
	}}, nil
}

func (c *Connector) CreateActor(
	ctx context.Context, config ports.ActorConfig,
) (ports.Actor, error) {
	if c.ext == nil {
		return nil, ErrWalletNotFound
	}
	if config.Host == "" {
		config.Host = c.opts.Host
	}
	return c.ext.CreateActor(ctx, config)
}

// Transfer submits a ledger transfer with the fixed fee from the default
// subaccount. The ledger reply is a tagged Ok/Err variant and the Err branch
// is checked explicitly.
func (c *Connector) Transfer(
	ctx context.Context, req ports.TransferRequest,
) (*ports.TransferResult, error) {
	ledger, err := c.ledger(ctx)
	if err != nil {
		return nil, err
	}
	to, err := hex.DecodeString(req.To)
	if err != nil {
		return nil, fmt.Errorf("invalid destination %q: %w", req.To, err)
	}

	raw, err := ledger.Call(ctx, "transfer", []interface{}{
		map[string]interface{}{
			"to":              to,
			"fee":             map[string]uint64{"e8s": transferFee},
			"amount":          map[string]uint64{"e8s": req.Amount},
			"memo":            req.Memo,
			"from_subaccount": []interface{}{},
			"created_at_time": []interface{}{},
		},
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		Ok  *uint64         `json:"Ok,omitempty"`
		Err json.RawMessage `json:"Err,omitempty"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decoding transfer reply: %w", err)
	}
	if result.Err != nil || result.Ok == nil {
		log.WithField("reply", string(raw)).Warn("ledger transfer failed")
		return nil, ErrTransferFailed
	}
	return &ports.TransferResult{Height: *result.Ok}, nil
}

// ledger binds an actor to the ICP ledger canister through the extension.
func (c *Connector) ledger(ctx context.Context) (ports.Actor, error) {
	if c.ledgerCanister == "" {
		return nil, ErrLedgerCanisterMissing
	}
	return c.CreateActor(ctx, ports.ActorConfig{
		CanisterID: c.ledgerCanister,
		Interface:  ledgerInterface,
		Host:       c.opts.Host,
	})
}

var (
	// ErrWalletNotFound is returned by calls that need the extension while
	// it is absent. Connect is the exception, it redirects instead.
	ErrWalletNotFound = errors.New("bitfinity wallet not found")
	// ErrLedgerCanisterMissing means the connector was built without the
	// ledger canister id.
	ErrLedgerCanisterMissing = errors.New("ledger canister id missing")
	// ErrTransferFailed is returned when the ledger rejects the transfer.
	ErrTransferFailed = errors.New("transfer failed")
)
