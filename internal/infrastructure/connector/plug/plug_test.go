package plug_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stakedicp/wallet-client/internal/core/ports"
	"github.com/stakedicp/wallet-client/internal/infrastructure/connector/plug"
)

type fakeExtension struct {
	connected bool
	hasAgent  bool
	principal string

	connectErr error
	balances   []plug.Balance
	height     uint64

	requestConnectCalls int
	createAgentCalls    int
	disconnectCalls     int
	lastOpts            plug.Options
	lastTransferTo      string
	lastTransferAmount  uint64
}

func (e *fakeExtension) IsConnected(ctx context.Context) (bool, error) {
	return e.connected, nil
}

func (e *fakeExtension) RequestConnect(ctx context.Context, opts plug.Options) error {
	e.requestConnectCalls++
	e.lastOpts = opts
	if e.connectErr != nil {
		return e.connectErr
	}
	e.connected = true
	e.hasAgent = true
	return nil
}

func (e *fakeExtension) HasAgent() bool { return e.hasAgent }

func (e *fakeExtension) CreateAgent(ctx context.Context, opts plug.Options) error {
	e.createAgentCalls++
	e.hasAgent = true
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

func (e *fakeExtension) RequestBalance(ctx context.Context) ([]plug.Balance, error) {
	return e.balances, nil
}

func (e *fakeExtension) CreateActor(
	ctx context.Context, config ports.ActorConfig,
) (ports.Actor, error) {
	return &fakeActor{canisterID: config.CanisterID, host: config.Host}, nil
}

func (e *fakeExtension) RequestTransfer(
	ctx context.Context, to string, amount, memo uint64,
) (uint64, error) {
	e.lastTransferTo = to
	e.lastTransferAmount = amount
	return e.height, nil
}

type fakeActor struct {
	canisterID string
	host       string
}

func (a *fakeActor) CanisterID() string { return a.canisterID }

func (a *fakeActor) Call(
	ctx context.Context, method string, args interface{},
) (json.RawMessage, error) {
	return json.RawMessage(`null`), nil
}

func TestExtensionAbsent(t *testing.T) {
	ctx := context.Background()
	var opened string
	connector := plug.NewConnector(nil, plug.Options{}, func(url string) {
		opened = url
	})

	require.False(t, connector.Ready())

	data, err := connector.Connect(ctx)
	require.NoError(t, err)
	require.Nil(t, data)
	require.Equal(t, plug.InstallURL, opened)

	authorized, err := connector.IsAuthorized(ctx)
	require.NoError(t, err)
	require.False(t, authorized)

	_, err = connector.Principal(ctx)
	require.ErrorIs(t, err, plug.ErrWalletNotFound)
	_, err = connector.Balances(ctx)
	require.ErrorIs(t, err, plug.ErrWalletNotFound)
}

func TestConnectPromptsOnlyWhenNotAuthorized(t *testing.T) {
	ctx := context.Background()
	ext := &fakeExtension{principal: "aaaaa-aa"}
	opts := plug.Options{Whitelist: []string{"qfr6e-biaaa-aaaak-qafuq-cai"}}
	connector := plug.NewConnector(ext, opts, nil)

	data, err := connector.Connect(ctx)
	require.NoError(t, err)
	require.NotNil(t, data)
	require.Equal(t, "aaaaa-aa", data.Account)
	require.Equal(t, 1, ext.requestConnectCalls)
	require.Equal(t, opts.Whitelist, ext.lastOpts.Whitelist)

	// Already authorized with a live agent: no prompt, no agent recreation.
	_, err = connector.Connect(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, ext.requestConnectCalls)
	require.Zero(t, ext.createAgentCalls)
}

func TestConnectRecreatesLostAgent(t *testing.T) {
	ctx := context.Background()
	ext := &fakeExtension{connected: true, hasAgent: false, principal: "aaaaa-aa"}
	connector := plug.NewConnector(ext, plug.Options{}, nil)

	_, err := connector.Connect(ctx)
	require.NoError(t, err)
	require.Zero(t, ext.requestConnectCalls)
	require.Equal(t, 1, ext.createAgentCalls)
}

func TestConnectDeclinedPrompt(t *testing.T) {
	ctx := context.Background()
	ext := &fakeExtension{connectErr: context.Canceled, principal: "aaaaa-aa"}
	connector := plug.NewConnector(ext, plug.Options{}, nil)

	data, err := connector.Connect(ctx)
	require.Error(t, err)
	require.Nil(t, data)
}

func TestBalancesNormalizedToBaseUnits(t *testing.T) {
	ctx := context.Background()
	ext := &fakeExtension{
		connected: true,
		balances: []plug.Balance{
			{Symbol: "ICP", Name: "ICP", Amount: 1.5, Value: 150000000},
			{Symbol: "XTC", Name: "Cycles", CanisterID: "aanaa-xaaaa-aaaah-aaeiq-cai", Amount: 0.25},
		},
	}
	connector := plug.NewConnector(ext, plug.Options{}, nil)

	balances, err := connector.Balances(ctx)
	require.NoError(t, err)
	require.Len(t, balances, 2)
	require.Equal(t, uint64(150000000), balances[0].Value)
	// Value converted from the float amount when the extension omits it.
	require.Equal(t, uint64(25000000), balances[1].Value)
}

func TestCreateActorInheritsHost(t *testing.T) {
	ctx := context.Background()
	ext := &fakeExtension{connected: true}
	connector := plug.NewConnector(ext, plug.Options{Host: "https://ic0.app"}, nil)

	actor, err := connector.CreateActor(ctx, ports.ActorConfig{
		CanisterID: "qfr6e-biaaa-aaaak-qafuq-cai",
	})
	require.NoError(t, err)
	require.Equal(t, "https://ic0.app", actor.(*fakeActor).host)
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	ext := &fakeExtension{connected: true, height: 123}
	connector := plug.NewConnector(ext, plug.Options{}, nil)

	result, err := connector.Transfer(ctx, ports.TransferRequest{
		To: "deadbeef", Amount: 100_000,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(123), result.Height)
	require.Equal(t, "deadbeef", ext.lastTransferTo)
	require.Equal(t, uint64(100_000), ext.lastTransferAmount)
}

func TestAccountIDDerivedFromPrincipal(t *testing.T) {
	ctx := context.Background()
	ext := &fakeExtension{connected: true, principal: "aaaaa-aa"}
	connector := plug.NewConnector(ext, plug.Options{}, nil)

	id, err := connector.AccountID(ctx)
	require.NoError(t, err)
	require.Len(t, id, 64)
}
