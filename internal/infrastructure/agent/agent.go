// Package agent provides an anonymous actor factory over plain HTTP, used
// for canister reads that need no wallet signature (liquidity graph,
// exchange rate). Wallet-bound calls go through a connector instead.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"

	"github.com/stakedicp/wallet-client/internal/core/ports"
	"github.com/stakedicp/wallet-client/pkg/circuitbreaker"
)

const (
	// DefaultHost is the public gateway of the network.
	DefaultHost = "https://ic0.app"

	requestTimeout = 30 * time.Second

	// callsPerSecond paces outgoing query calls so a re-rendering caller
	// cannot hammer the gateway.
	callsPerSecond = 20
)

// ErrCanisterMissing means an actor was requested without a canister id.
var ErrCanisterMissing = errors.New("canister id missing")

// Factory creates anonymous actors bound to one host. All actors created by
// a factory share its HTTP client, rate limiter and circuit breaker.
type Factory struct {
	host    string
	client  *http.Client
	limiter ratelimit.Limiter
	cb      *gobreaker.CircuitBreaker
}

// NewFactory returns a factory for the given host, or DefaultHost when
// empty. With dev set the factory targets a local replica whose root key is
// not the network's.
func NewFactory(host string, dev bool) *Factory {
	if host == "" {
		host = DefaultHost
	}
	if dev {
		log.WithField("host", host).Warn(
			"agent targets a local replica, its root key is not the network's",
		)
	}
	return &Factory{
		host:    host,
		client:  &http.Client{Timeout: requestTimeout},
		limiter: ratelimit.New(callsPerSecond),
		cb:      circuitbreaker.NewCircuitBreaker("agent"),
	}
}

// CreateActor binds an anonymous actor to the given canister. The config's
// host, when set, overrides the factory's.
func (f *Factory) CreateActor(
	ctx context.Context, config ports.ActorConfig,
) (ports.Actor, error) {
	if config.CanisterID == "" {
		return nil, ErrCanisterMissing
	}
	host := f.host
	if config.Host != "" {
		host = config.Host
	}
	return &actor{
		factory:    f,
		host:       host,
		canisterID: config.CanisterID,
	}, nil
}

type actor struct {
	factory    *Factory
	host       string
	canisterID string
}

func (a *actor) CanisterID() string { return a.canisterID }

// Call posts one query call and returns the raw reply body. Failures count
// against the factory's shared circuit breaker; while the breaker is open
// calls fail fast without touching the network.
func (a *actor) Call(
	ctx context.Context, method string, args interface{},
) (json.RawMessage, error) {
	a.factory.limiter.Take()

	reply, err := a.factory.cb.Execute(func() (interface{}, error) {
		return a.post(ctx, method, args)
	})
	if err != nil {
		return nil, err
	}
	return reply.(json.RawMessage), nil
}

type callEnvelope struct {
	Method string      `json:"method"`
	Args   interface{} `json:"args,omitempty"`
}

func (a *actor) post(
	ctx context.Context, method string, args interface{},
) (json.RawMessage, error) {
	body, err := json.Marshal(callEnvelope{Method: method, Args: args})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/v2/canister/%s/query", a.host, a.canisterID)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := a.factory.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		log.WithFields(log.Fields{
			"canister": a.canisterID,
			"method":   method,
			"status":   res.StatusCode,
		}).Warn("query call failed")
		return nil, fmt.Errorf("query %s on %s: %s", method, a.canisterID, string(resBody))
	}
	return json.RawMessage(resBody), nil
}
