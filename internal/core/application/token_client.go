package application

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stakedicp/wallet-client/internal/core/ports"
)

// tokenClient wraps an actor bound to the staked-token canister with typed
// calls. Replies are decoded here so callers never see raw reply shapes.
type tokenClient struct {
	actor ports.Actor
}

func newTokenClient(actor ports.Actor) *tokenClient {
	return &tokenClient{actor: actor}
}

func (t *tokenClient) BalanceOf(ctx context.Context, account string) (uint64, error) {
	raw, err := t.actor.Call(ctx, "balanceOf", []interface{}{account})
	if err != nil {
		return 0, err
	}
	var balance uint64
	if err := json.Unmarshal(raw, &balance); err != nil {
		return 0, fmt.Errorf("decoding balanceOf reply: %w", err)
	}
	return balance, nil
}

func (t *tokenClient) Decimals(ctx context.Context) (int, error) {
	raw, err := t.actor.Call(ctx, "decimals", nil)
	if err != nil {
		return 0, err
	}
	var decimals int
	if err := json.Unmarshal(raw, &decimals); err != nil {
		return 0, fmt.Errorf("decoding decimals reply: %w", err)
	}
	return decimals, nil
}

func (t *tokenClient) Symbol(ctx context.Context) (string, error) {
	raw, err := t.actor.Call(ctx, "symbol", nil)
	if err != nil {
		return "", err
	}
	var symbol string
	if err := json.Unmarshal(raw, &symbol); err != nil {
		return "", fmt.Errorf("decoding symbol reply: %w", err)
	}
	return symbol, nil
}
