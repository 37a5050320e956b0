package application

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/stakedicp/wallet-client/internal/core/domain"
	"github.com/stakedicp/wallet-client/internal/core/ports"
	"github.com/stakedicp/wallet-client/pkg/icpunits"
)

// nativeSymbol is the symbol the native asset appears under in extension
// balance lists.
const nativeSymbol = "ICP"

// BalanceQuery selects which balance to resolve and how to format it.
type BalanceQuery struct {
	// Account overrides the session principal. Empty means "the connected
	// account".
	Account string
	// Token is the canister id of a fungible token. Empty selects the
	// native asset.
	Token string
	// Decimals is the display precision. Zero means the native default of 8.
	Decimals int
}

// BalanceInfo is a resolved balance.
type BalanceInfo struct {
	Decimals  int
	Formatted string
	Symbol    string
	Value     uint64
}

// BalanceService resolves balances through the active connector and memoizes
// the last result. The memoization key covers exactly the tracked
// dependencies: account, token, display precision, connector and the
// session's cache buster. A read with an unchanged key answers from memory
// and performs no remote call; changing any tracked dependency triggers
// exactly one refetch. Concurrent identical reads are collapsed by
// singleflight, and a request-generation counter discards stale in-flight
// results so the last issued request wins.
type BalanceService struct {
	session   *SessionService
	tokenDesc ports.InterfaceDescription

	group singleflight.Group

	mtx        sync.Mutex
	generation uint64
	lastKey    string
	cached     *BalanceInfo
}

// NewBalanceService ...
func NewBalanceService(
	session *SessionService, tokenDesc ports.InterfaceDescription,
) (*BalanceService, error) {
	if session == nil {
		return nil, ErrMissingSession
	}
	return &BalanceService{session: session, tokenDesc: tokenDesc}, nil
}

// Get resolves the balance for the given query.
func (b *BalanceService) Get(
	ctx context.Context, query BalanceQuery,
) (*BalanceInfo, error) {
	connector := b.session.ActiveConnector()
	if connector == nil {
		return nil, domain.ErrWalletNotConnected
	}

	account := query.Account
	if account == "" {
		if data := b.session.Account(); data != nil {
			account = data.Account
		}
	}
	if account == "" {
		return nil, ErrAccountMissing
	}

	decimals := query.Decimals
	if decimals == 0 {
		decimals = icpunits.Decimals
	}

	key := fmt.Sprintf(
		"%s|%s|%d|%s|%d",
		account, query.Token, decimals, connector.Name(), b.session.CacheBuster(),
	)

	b.mtx.Lock()
	if b.cached != nil && b.lastKey == key {
		cached := b.cached
		b.mtx.Unlock()
		return cached, nil
	}
	b.generation++
	generation := b.generation
	b.mtx.Unlock()

	res, err, _ := b.group.Do(key, func() (interface{}, error) {
		if query.Token != "" {
			return b.fetchToken(ctx, connector, query.Token, account, decimals)
		}
		return b.fetchNative(ctx, connector, decimals)
	})
	if err != nil {
		return nil, err
	}
	info := res.(*BalanceInfo)

	b.mtx.Lock()
	// Only the latest issued request may publish its result; a slower,
	// earlier fetch must not overwrite newer data.
	if generation == b.generation {
		b.lastKey = key
		b.cached = info
	}
	b.mtx.Unlock()
	return info, nil
}

func (b *BalanceService) fetchNative(
	ctx context.Context, connector ports.Connector, decimals int,
) (*BalanceInfo, error) {
	balances, err := connector.Balances(ctx)
	if err != nil {
		return nil, err
	}
	for _, bal := range balances {
		if bal.Symbol == nativeSymbol && bal.CanisterID == "" {
			return &BalanceInfo{
				Decimals:  icpunits.Decimals,
				Formatted: icpunits.Format(new(big.Int).SetUint64(bal.Value), decimals),
				Symbol:    nativeSymbol,
				Value:     bal.Value,
			}, nil
		}
	}
	return nil, ErrNativeBalanceNotFound
}

func (b *BalanceService) fetchToken(
	ctx context.Context, connector ports.Connector,
	tokenCanister, account string, decimals int,
) (*BalanceInfo, error) {
	actor, err := connector.CreateActor(ctx, ports.ActorConfig{
		CanisterID: tokenCanister,
		Interface:  b.tokenDesc,
	})
	if err != nil {
		return nil, err
	}
	token := newTokenClient(actor)

	value, err := token.BalanceOf(ctx, account)
	if err != nil {
		return nil, err
	}
	tokenDecimals, err := token.Decimals(ctx)
	if err != nil {
		return nil, err
	}
	symbol, err := token.Symbol(ctx)
	if err != nil {
		return nil, err
	}

	return &BalanceInfo{
		Decimals:  tokenDecimals,
		Formatted: icpunits.Format(new(big.Int).SetUint64(value), decimals),
		Symbol:    symbol,
		Value:     value,
	}, nil
}
