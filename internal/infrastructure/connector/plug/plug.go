// Package plug adapts the Plug wallet extension to the connector contract.
package plug

import (
	"context"
	"errors"
	"math/big"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/stakedicp/wallet-client/internal/core/ports"
	"github.com/stakedicp/wallet-client/pkg/accountid"
	"github.com/stakedicp/wallet-client/pkg/icpunits"
)

// InstallURL is where users without the extension are redirected.
const InstallURL = "https://plugwallet.ooo/"

const connectorName = "Plug"

// Balance is the extension's own balance shape: a float display amount next
// to the integer base-unit value.
type Balance struct {
	Symbol     string
	Name       string
	CanisterID string
	Amount     float64
	Value      uint64
}

// Extension is the surface of the Plug provider object this connector talks
// to. Implementations bridge to the actual extension; tests script it.
type Extension interface {
	IsConnected(ctx context.Context) (bool, error)
	RequestConnect(ctx context.Context, opts Options) error
	HasAgent() bool
	CreateAgent(ctx context.Context, opts Options) error
	Disconnect(ctx context.Context) error
	Principal(ctx context.Context) (string, error)
	RequestBalance(ctx context.Context) ([]Balance, error)
	CreateActor(ctx context.Context, config ports.ActorConfig) (ports.Actor, error)
	RequestTransfer(ctx context.Context, to string, amount, memo uint64) (uint64, error)
}

// Options parametrize the extension's permission prompt and agent.
type Options struct {
	// Whitelist is the canister ids the prompt asks access for.
	Whitelist []string
	// Host is the replica endpoint the extension's agent should target.
	// Empty selects the extension's default.
	Host string
	// Timeout bounds the user-facing prompt. Zero means no bound.
	Timeout time.Duration
}

// Opener redirects the user to a URL, typically the extension's install
// page.
type Opener func(url string)

// Connector adapts the Plug extension. A nil extension means Plug was not
// detected; the connector stays constructible so it can appear in the fixed
// connector list and report itself not ready.
type Connector struct {
	ext    Extension
	opts   Options
	opener Opener
}

// NewConnector returns a connector over the detected extension, which may be
// nil when the extension is absent.
func NewConnector(ext Extension, opts Options, opener Opener) *Connector {
	if opener == nil {
		opener = func(string) {}
	}
	return &Connector{ext: ext, opts: opts, opener: opener}
}

func (c *Connector) Name() string { return connectorName }

func (c *Connector) Ready() bool { return c.ext != nil }

// Connect establishes the session. With the extension absent the user is
// sent to the install page and a nil account with a nil error is returned.
// An already-authorized extension is never prompted again; it only gets its
// agent recreated when the extension lost it.
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
	if connected && !c.ext.HasAgent() {
		if err := c.ext.CreateAgent(ctx, c.opts); err != nil {
			return nil, err
		}
	}

	principal, err := c.ext.Principal(ctx)
	if err != nil {
		return nil, err
	}
	log.WithField("principal", accountid.ShortPrincipal(principal)).
		Debug("plug session established")
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

// AccountID derives the ledger account identifier from the principal, using
// the default subaccount.
func (c *Connector) AccountID(ctx context.Context) (string, error) {
	principal, err := c.Principal(ctx)
	if err != nil {
		return "", err
	}
	return accountid.FromPrincipalText(principal, nil)
}

// Balances returns the extension's balance list with every entry normalized
// to integer base units. Entries the extension reports without a value are
// converted from their float amount.
func (c *Connector) Balances(ctx context.Context) ([]ports.Balance, error) {
	if c.ext == nil {
		return nil, ErrWalletNotFound
	}
	raw, err := c.ext.RequestBalance(ctx)
	if err != nil {
		return nil, err
	}

	balances := make([]ports.Balance, 0, len(raw))
	for _, b := range raw {
		value := b.Value
		if value == 0 && b.Amount != 0 {
			value = icpunits.FromFloat(b.Amount)
		}
		balances = append(balances, ports.Balance{
			Symbol:     b.Symbol,
			Name:       b.Name,
			CanisterID: b.CanisterID,
			Amount:     b.Amount,
			Value:      value,
		})
	}
	return balances, nil
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

// Transfer asks the extension to sign and submit the transfer.
func (c *Connector) Transfer(
	ctx context.Context, req ports.TransferRequest,
) (*ports.TransferResult, error) {
	if c.ext == nil {
		return nil, ErrWalletNotFound
	}
	height, err := c.ext.RequestTransfer(ctx, req.To, req.Amount, req.Memo)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"height": height,
		"amount": icpunits.Format(new(big.Int).SetUint64(req.Amount), icpunits.Decimals),
	}).Debug("plug transfer applied")
	return &ports.TransferResult{Height: height}, nil
}

// ErrWalletNotFound is returned by calls that need the extension while it is
// absent. Connect is the exception, it redirects instead.
var ErrWalletNotFound = errors.New("plug wallet not found")
