package application_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/stakedicp/wallet-client/internal/core/ports"
)

// fakeConnector is a scriptable connector recording every call count, so
// tests can assert not only what happened but also what did not.
type fakeConnector struct {
	name       string
	ready      bool
	authorized bool

	authorizedErr error
	connectData   *ports.AccountData
	connectErr    error
	balances      []ports.Balance
	balancesErr   error
	actor         ports.Actor
	actorErr      error
	transferRes   *ports.TransferResult
	transferErr   error

	mtx              sync.Mutex
	connectCalls     int
	disconnectCalls  int
	balanceCalls     int
	createActorCalls int
	transferCalls    int
}

func newReadyConnector(name string) *fakeConnector {
	return &fakeConnector{
		name:        name,
		ready:       true,
		connectData: &ports.AccountData{Account: name + "-principal"},
	}
}

func (c *fakeConnector) Name() string { return c.name }
func (c *fakeConnector) Ready() bool  { return c.ready }

func (c *fakeConnector) Connect(ctx context.Context) (*ports.AccountData, error) {
	c.mtx.Lock()
	c.connectCalls++
	c.mtx.Unlock()
	if c.connectErr != nil {
		return nil, c.connectErr
	}
	if c.connectData != nil {
		c.authorized = true
	}
	return c.connectData, nil
}

func (c *fakeConnector) Disconnect(ctx context.Context) error {
	c.mtx.Lock()
	c.disconnectCalls++
	c.mtx.Unlock()
	c.authorized = false
	return nil
}

func (c *fakeConnector) IsAuthorized(ctx context.Context) (bool, error) {
	return c.authorized, c.authorizedErr
}

func (c *fakeConnector) Principal(ctx context.Context) (string, error) {
	if c.connectData == nil {
		return "", fmt.Errorf("%s wallet not found", c.name)
	}
	return c.connectData.Account, nil
}

func (c *fakeConnector) AccountID(ctx context.Context) (string, error) {
	return c.Principal(ctx)
}

func (c *fakeConnector) Balances(ctx context.Context) ([]ports.Balance, error) {
	c.mtx.Lock()
	c.balanceCalls++
	c.mtx.Unlock()
	return c.balances, c.balancesErr
}

func (c *fakeConnector) CreateActor(
	ctx context.Context, config ports.ActorConfig,
) (ports.Actor, error) {
	c.mtx.Lock()
	c.createActorCalls++
	c.mtx.Unlock()
	if c.actorErr != nil {
		return nil, c.actorErr
	}
	if c.actor != nil {
		return c.actor, nil
	}
	return &fakeActor{canisterID: config.CanisterID, replies: map[string]string{}}, nil
}

func (c *fakeConnector) Transfer(
	ctx context.Context, req ports.TransferRequest,
) (*ports.TransferResult, error) {
	c.mtx.Lock()
	c.transferCalls++
	c.mtx.Unlock()
	return c.transferRes, c.transferErr
}

// fakeActor replies to calls from a canned method -> JSON table.
type fakeActor struct {
	canisterID string
	replies    map[string]string
	errs       map[string]error

	mtx   sync.Mutex
	calls []string
	args  map[string]interface{}
}

func (a *fakeActor) CanisterID() string { return a.canisterID }

func (a *fakeActor) Call(
	ctx context.Context, method string, args interface{},
) (json.RawMessage, error) {
	a.mtx.Lock()
	a.calls = append(a.calls, method)
	if a.args == nil {
		a.args = map[string]interface{}{}
	}
	a.args[method] = args
	a.mtx.Unlock()

	if err, ok := a.errs[method]; ok {
		return nil, err
	}
	reply, ok := a.replies[method]
	if !ok {
		return nil, fmt.Errorf("unexpected call %s", method)
	}
	return json.RawMessage(reply), nil
}

func (a *fakeActor) callCount(method string) int {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	n := 0
	for _, m := range a.calls {
		if m == method {
			n++
		}
	}
	return n
}

// fakePrefs is an in-memory preference repository.
type fakePrefs struct {
	mtx    sync.Mutex
	last   string
	getErr error
	setErr error
	sets   int
}

func (p *fakePrefs) GetLastConnector(ctx context.Context) (string, error) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.last, p.getErr
}

func (p *fakePrefs) SetLastConnector(ctx context.Context, name string) error {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	if p.setErr != nil {
		return p.setErr
	}
	p.last = name
	p.sets++
	return nil
}

func (p *fakePrefs) DeleteLastConnector(ctx context.Context) error {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	p.last = ""
	return nil
}

func (p *fakePrefs) Close() error { return nil }
