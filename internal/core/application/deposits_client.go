package application

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stakedicp/wallet-client/internal/core/domain"
	"github.com/stakedicp/wallet-client/internal/core/ports"
	"github.com/stakedicp/wallet-client/pkg/liquidity"
)

// depositsAccount is the (owner, subaccount) pair the deposits canister
// identifies users by. A nil subaccount selects the default one.
type depositsAccount struct {
	Owner      string  `json:"owner"`
	Subaccount []uint8 `json:"subaccount"`
}

// depositsClient wraps an actor bound to the deposits canister with typed
// calls. Every tagged reply is checked for its err branch here; a resolved
// call is not assumed successful.
type depositsClient struct {
	actor ports.Actor
}

func newDepositsClient(actor ports.Actor) *depositsClient {
	return &depositsClient{actor: actor}
}

// GetDepositAddress returns the account identifier stakes are transferred
// to, tagged with the optional referral code.
func (d *depositsClient) GetDepositAddress(ctx context.Context, referralCode string) (string, error) {
	args := []interface{}{[]string{}}
	if referralCode != "" {
		args = []interface{}{[]string{referralCode}}
	}
	raw, err := d.actor.Call(ctx, "getDepositAddress", args)
	if err != nil {
		return "", err
	}
	var address string
	if err := json.Unmarshal(raw, &address); err != nil {
		return "", fmt.Errorf("decoding getDepositAddress reply: %w", err)
	}
	return address, nil
}

// DepositIcp notifies the canister to sweep freshly transferred funds.
func (d *depositsClient) DepositIcp(ctx context.Context) error {
	_, err := d.actor.Call(ctx, "depositIcp", nil)
	return err
}

// AvailableLiquidityGraph returns the liquidity schedule as (delay seconds,
// available amount) pairs.
func (d *depositsClient) AvailableLiquidityGraph(ctx context.Context) ([]liquidity.Entry, error) {
	raw, err := d.actor.Call(ctx, "availableLiquidityGraph", nil)
	if err != nil {
		return nil, err
	}
	var pairs [][2]uint64
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return nil, fmt.Errorf("decoding availableLiquidityGraph reply: %w", err)
	}
	schedule := make([]liquidity.Entry, 0, len(pairs))
	for _, p := range pairs {
		schedule = append(schedule, liquidity.Entry{Delay: p[0], Available: p[1]})
	}
	return schedule, nil
}

// ExchangeRate returns the current staked-token to native-asset rate.
func (d *depositsClient) ExchangeRate(ctx context.Context) (*domain.ExchangeRate, error) {
	raw, err := d.actor.Call(ctx, "exchangeRate", nil)
	if err != nil {
		return nil, err
	}
	var rate domain.ExchangeRate
	if err := json.Unmarshal(raw, &rate); err != nil {
		return nil, fmt.Errorf("decoding exchangeRate reply: %w", err)
	}
	return &rate, nil
}

// ListWithdrawals returns the withdrawals of the given principal.
func (d *depositsClient) ListWithdrawals(ctx context.Context, principal string) ([]domain.Withdrawal, error) {
	raw, err := d.actor.Call(ctx, "listWithdrawals", []interface{}{principal})
	if err != nil {
		return nil, err
	}
	var withdrawals []domain.Withdrawal
	if err := json.Unmarshal(raw, &withdrawals); err != nil {
		return nil, fmt.Errorf("decoding listWithdrawals reply: %w", err)
	}
	return withdrawals, nil
}

// CreateWithdrawal starts a delayed withdrawal for the given account and
// amount.
func (d *depositsClient) CreateWithdrawal(
	ctx context.Context, account depositsAccount, amount uint64,
) (*domain.Withdrawal, error) {
	raw, err := d.actor.Call(ctx, "createWithdrawal", []interface{}{account, amount})
	if err != nil {
		return nil, err
	}
	var receipt domain.CreateWithdrawalReceipt
	if err := json.Unmarshal(raw, &receipt); err != nil {
		return nil, fmt.Errorf("decoding createWithdrawal reply: %w", err)
	}
	if receipt.Err != nil {
		return nil, receipt.Err
	}
	if receipt.Ok == nil {
		return nil, domain.ErrWithdrawalFailed
	}
	return receipt.Ok, nil
}

// CompleteWithdrawal disburses the available part of the principal's
// withdrawals to the destination account.
func (d *depositsClient) CompleteWithdrawal(
	ctx context.Context, principal string, amount uint64, to string,
) (uint64, error) {
	raw, err := d.actor.Call(ctx, "completeWithdrawal", []interface{}{principal, amount, to})
	if err != nil {
		return 0, err
	}
	var receipt domain.CompleteWithdrawalReceipt
	if err := json.Unmarshal(raw, &receipt); err != nil {
		return 0, fmt.Errorf("decoding completeWithdrawal reply: %w", err)
	}
	if receipt.Err != nil {
		return 0, receipt.Err
	}
	if receipt.Ok == nil {
		return 0, domain.ErrWithdrawalFailed
	}
	return *receipt.Ok, nil
}
