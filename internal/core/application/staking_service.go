package application

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/stakedicp/wallet-client/internal/core/domain"
	"github.com/stakedicp/wallet-client/internal/core/ports"
	"github.com/stakedicp/wallet-client/pkg/liquidity"
)

// StakingService drives the protocol's money-moving operations: staking the
// native asset, starting a delayed withdrawal and disbursing a matured one.
// Every operation runs inside a confirmation flow so its outcome is
// observable as confirm -> pending -> complete|rejected; validation failures
// reject the flow before any remote call is made.
type StakingService struct {
	session  *SessionService
	actors   *ActorService
	tx       *TransactionService
	deposits ports.ActorConfig
}

// StakeRequest ...
type StakeRequest struct {
	// RawAmount is the user's literal input; validation of the minimum only
	// applies when something was typed at all.
	RawAmount string
	// Amount is the parsed stake in base units.
	Amount uint64
	// ReferralCode tags the deposit, empty for none.
	ReferralCode string
}

// WithdrawalRequest ...
type WithdrawalRequest struct {
	RawAmount string
	// Amount is the withdrawal in base units of the native asset, already
	// converted from the staked token at the current exchange rate.
	Amount uint64
}

// NewStakingService ...
func NewStakingService(
	session *SessionService, actors *ActorService, tx *TransactionService,
	deposits ports.ActorConfig,
) (*StakingService, error) {
	if session == nil {
		return nil, ErrMissingSession
	}
	return &StakingService{
		session:  session,
		actors:   actors,
		tx:       tx,
		deposits: deposits,
	}, nil
}

// Stake converts native-asset funds to the staked token: fetch the deposit
// address, transfer through the wallet, then notify the canister to sweep.
// The returned flow carries the terminal state of this invocation.
func (s *StakingService) Stake(ctx context.Context, req StakeRequest) *domain.ConfirmationFlow {
	flow := domain.NewConfirmationFlow()
	flow.Run(ctx, func(ctx context.Context) error { return s.stake(ctx, req) })
	return flow
}

func (s *StakingService) stake(ctx context.Context, req StakeRequest) error {
	if req.RawAmount != "" && req.Amount < MinimumDeposit {
		return &domain.BelowMinimumError{Op: "deposit", Minimum: MinimumDeposit}
	}
	if req.Amount == 0 {
		return domain.ErrAmountMissing
	}

	deposits, err := s.depositsClient(ctx)
	if err != nil {
		return err
	}

	to, err := deposits.GetDepositAddress(ctx, req.ReferralCode)
	if err != nil {
		return err
	}
	if to == "" {
		return domain.ErrDepositAddressMissing
	}

	height, err := s.tx.Send(ctx, ports.TransferRequest{To: to, Amount: req.Amount})
	if err != nil {
		return err
	}
	log.WithField("height", height).Debug("stake transfer applied")

	if err := deposits.DepositIcp(ctx); err != nil {
		return err
	}

	s.session.BumpCacheBuster()
	return nil
}

// CreateWithdrawal starts a delayed withdrawal for the connected account.
func (s *StakingService) CreateWithdrawal(
	ctx context.Context, req WithdrawalRequest,
) *domain.ConfirmationFlow {
	flow := domain.NewConfirmationFlow()
	flow.Run(ctx, func(ctx context.Context) error { return s.createWithdrawal(ctx, req) })
	return flow
}

func (s *StakingService) createWithdrawal(ctx context.Context, req WithdrawalRequest) error {
	account := s.session.Account()
	if account == nil {
		return domain.ErrWalletNotConnected
	}
	if req.RawAmount != "" && req.Amount < MinimumWithdrawal {
		return &domain.BelowMinimumError{Op: "withdrawal", Minimum: MinimumWithdrawal}
	}
	if req.Amount == 0 {
		return domain.ErrAmountMissing
	}

	deposits, err := s.depositsClient(ctx)
	if err != nil {
		return err
	}

	if _, err := deposits.CreateWithdrawal(
		ctx, depositsAccount{Owner: account.Account}, req.Amount,
	); err != nil {
		return err
	}

	s.session.BumpCacheBuster()
	return nil
}

// CompleteWithdrawal disburses the matured part of the connected account's
// withdrawals. An empty destination defaults to the account itself.
func (s *StakingService) CompleteWithdrawal(
	ctx context.Context, amount uint64, to string,
) *domain.ConfirmationFlow {
	flow := domain.NewConfirmationFlow()
	flow.Run(ctx, func(ctx context.Context) error {
		return s.completeWithdrawal(ctx, amount, to)
	})
	return flow
}

func (s *StakingService) completeWithdrawal(ctx context.Context, amount uint64, to string) error {
	account := s.session.Account()
	if account == nil {
		return domain.ErrWalletNotConnected
	}
	if amount < MinimumWithdrawal {
		return &domain.BelowMinimumError{Op: "withdrawal", Minimum: MinimumWithdrawal}
	}
	if to == "" {
		to = account.Account
	}

	deposits, err := s.depositsClient(ctx)
	if err != nil {
		return err
	}

	height, err := deposits.CompleteWithdrawal(ctx, account.Account, amount, to)
	if err != nil {
		return err
	}
	log.WithField("height", height).Debug("withdrawal disbursed")

	s.session.BumpCacheBuster()
	return nil
}

// ListWithdrawals returns the connected account's withdrawals.
func (s *StakingService) ListWithdrawals(ctx context.Context) ([]domain.Withdrawal, error) {
	account := s.session.Account()
	if account == nil {
		return nil, domain.ErrWalletNotConnected
	}
	deposits, err := s.depositsClient(ctx)
	if err != nil {
		return nil, err
	}
	return deposits.ListWithdrawals(ctx, account.Account)
}

// AvailableLiquidity returns the current liquidity schedule.
func (s *StakingService) AvailableLiquidity(ctx context.Context) ([]liquidity.Entry, error) {
	deposits, err := s.depositsClient(ctx)
	if err != nil {
		return nil, err
	}
	return deposits.AvailableLiquidityGraph(ctx)
}

// ExchangeRate returns the current staked-token to native-asset rate.
func (s *StakingService) ExchangeRate(ctx context.Context) (*domain.ExchangeRate, error) {
	deposits, err := s.depositsClient(ctx)
	if err != nil {
		return nil, err
	}
	return deposits.ExchangeRate(ctx)
}

// EstimateWithdrawalDelay estimates the worst-case delay in seconds for
// withdrawing the given amount of the staked token at the given rate. The
// estimate is a lower bound when the amount exceeds the schedule's total
// liquidity.
func (s *StakingService) EstimateWithdrawalDelay(
	ctx context.Context, stakedAmount uint64, rate domain.ExchangeRate,
) (uint64, error) {
	schedule, err := s.AvailableLiquidity(ctx)
	if err != nil {
		return 0, err
	}
	return liquidity.EstimateDelay(schedule, rate.StakedToNative(stakedAmount)), nil
}

// depositsClient binds a client to the deposits canister through the actor
// accessor. A missing actor (disconnected session or unconfigured canister)
// is the "deposits canister missing" failure the flows surface.
func (s *StakingService) depositsClient(ctx context.Context) (*depositsClient, error) {
	if s.deposits.CanisterID == "" {
		return nil, domain.ErrDepositsCanisterMissing
	}
	actor, err := s.actors.Get(ctx, s.deposits)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrDepositsCanisterMissing
	}
	return newDepositsClient(actor), nil
}
