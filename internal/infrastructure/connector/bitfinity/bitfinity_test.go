package bitfinity_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stakedicp/wallet-client/internal/core/ports"
	"github.com/stakedicp/wallet-client/internal/infrastructure/connector/bitfinity"
)

const ledgerCanister = "ryjl3-tyaaa-aaaaa-aaaba-cai"

type fakeExtension struct {
	connected bool
	principal string
	accountID string
	actor     *fakeActor

	requestConnectCalls int
	disconnectCalls     int
}

func (e *fakeExtension) IsConnected(ctx context.Context) (bool, error) {
	return e.connected, nil
}

func (e *fakeExtension) RequestConnect(ctx context.Context, opts bitfinity.Options) error {
	e.requestConnectCalls++
	e.connected = true
	return nil
}

func (e *fakeExtension) Disconnect(ctx context.Context) error {
	e.disconnectCalls++
	e.connected = false
	return nil
}

func (e *fakeExtension) Principal(ctx context.Context) (string, error) {
	return e.principal, nil
}

func (e *fakeExtension) AccountID(ctx context.Context) (string, error) {
	return e.accountID, nil
}

func (e *fakeExtension) CreateActor(
	ctx context.Context, config ports.ActorConfig,
) (ports.Actor, error) {
	e.actor.canisterID = config.CanisterID
	return e.actor, nil
}

type fakeActor struct {
	canisterID string
	replies    map[string]string
	lastArgs   map[string]interface{}
}

func (a *fakeActor) CanisterID() string { return a.canisterID }

func (a *fakeActor) Call(
	ctx context.Context, method string, args interface{},
) (json.RawMessage, error) {
	if a.lastArgs == nil {
		a.lastArgs = map[string]interface{}{}
	}
	a.lastArgs[method] = args
	reply, ok := a.replies[method]
	if !ok {
		return nil, fmt.Errorf("unexpected call %s", method)
	}
	return json.RawMessage(reply), nil
}

func newConnector(ext *fakeExtension) *bitfinity.Connector {
	return bitfinity.NewConnector(ext, bitfinity.Options{}, ledgerCanister, nil)
}

func TestExtensionAbsent(t *testing.T) {
	ctx := context.Background()
	var opened string
	connector := bitfinity.NewConnector(nil, bitfinity.Options{}, ledgerCanister,
		func(url string) { opened = url })

	require.False(t, connector.Ready())

	data, err := connector.Connect(ctx)
	require.NoError(t, err)
	require.Nil(t, data)
	require.Equal(t, bitfinity.InstallURL, opened)

	_, err = connector.Balances(ctx)
	require.ErrorIs(t, err, bitfinity.ErrWalletNotFound)
}

func TestConnectPromptsOnlyWhenNotAuthorized(t *testing.T) {
	ctx := context.Background()
	ext := &fakeExtension{principal: "aaaaa-aa", actor: &fakeActor{}}
	connector := newConnector(ext)

	data, err := connector.Connect(ctx)
	require.NoError(t, err)
	require.Equal(t, "aaaaa-aa", data.Account)
	require.Equal(t, 1, ext.requestConnectCalls)

	_, err = connector.Connect(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, ext.requestConnectCalls)
}

func TestBalancesThroughLedger(t *testing.T) {
	ctx := context.Background()
	ext := &fakeExtension{
		connected: true,
		accountID: "00ff",
		actor: &fakeActor{replies: map[string]string{
			"account_balance": `{"e8s":250000000}`,
		}},
	}
	connector := newConnector(ext)

	balances, err := connector.Balances(ctx)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	require.Equal(t, "ICP", balances[0].Symbol)
	require.Equal(t, uint64(250000000), balances[0].Value)
	require.Equal(t, 2.5, balances[0].Amount)
	require.Equal(t, ledgerCanister, ext.actor.canisterID)
}

func TestBalancesRejectsMalformedAccountID(t *testing.T) {
	ctx := context.Background()
	ext := &fakeExtension{
		connected: true,
		accountID: "not-hex",
		actor:     &fakeActor{},
	}
	connector := newConnector(ext)

	_, err := connector.Balances(ctx)
	require.Error(t, err)
}

func TestTransferOk(t *testing.T) {
	ctx := context.Background()
	ext := &fakeExtension{
		connected: true,
		actor: &fakeActor{replies: map[string]string{
			"transfer": `{"Ok":555}`,
		}},
	}
	connector := newConnector(ext)

	result, err := connector.Transfer(ctx, ports.TransferRequest{
		To: "00ff", Amount: 100_000,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(555), result.Height)

	args := ext.actor.lastArgs["transfer"].([]interface{})
	fields := args[0].(map[string]interface{})
	require.Equal(t, map[string]uint64{"e8s": 10_000}, fields["fee"])
	require.Equal(t, map[string]uint64{"e8s": 100_000}, fields["amount"])
	require.Equal(t, []byte{0x00, 0xff}, fields["to"])
}

func TestTransferErrVariant(t *testing.T) {
	ctx := context.Background()
	ext := &fakeExtension{
		connected: true,
		actor: &fakeActor{replies: map[string]string{
			"transfer": `{"Err":{"InsufficientFunds":{"balance":{"e8s":1}}}}`,
		}},
	}
	connector := newConnector(ext)

	_, err := connector.Transfer(ctx, ports.TransferRequest{To: "00ff", Amount: 100_000})
	require.ErrorIs(t, err, bitfinity.ErrTransferFailed)
}

func TestTransferRequiresLedgerCanister(t *testing.T) {
	ctx := context.Background()
	ext := &fakeExtension{connected: true, actor: &fakeActor{}}
	connector := bitfinity.NewConnector(ext, bitfinity.Options{}, "", nil)

	_, err := connector.Transfer(ctx, ports.TransferRequest{To: "00ff", Amount: 100_000})
	require.ErrorIs(t, err, bitfinity.ErrLedgerCanisterMissing)
}
