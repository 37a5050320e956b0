package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stakedicp/wallet-client/internal/core/domain"
)

func TestFlowResolvedAction(t *testing.T) {
	flow := domain.NewConfirmationFlow()
	require.NotEmpty(t, flow.Id)
	require.Equal(t, domain.FlowStatusConfirm, flow.Status.Code)
	require.True(t, flow.CanCancel())

	flow.Run(context.Background(), func(ctx context.Context) error {
		require.Equal(t, domain.FlowStatusPending, flow.Status.Code)
		require.False(t, flow.CanCancel())
		return nil
	})

	require.Equal(t, domain.FlowStatusComplete, flow.Status.Code)
	require.True(t, flow.IsComplete())
	require.Empty(t, flow.Error)
	require.True(t, flow.CanCancel())
}

func TestFlowFailingAction(t *testing.T) {
	flow := domain.NewConfirmationFlow()
	flow.Run(context.Background(), func(ctx context.Context) error {
		return errors.New("x")
	})

	require.True(t, flow.IsRejected())
	require.Equal(t, "x", flow.Error)
}

func TestFlowPanickingAction(t *testing.T) {
	tests := []struct {
		name     string
		cause    interface{}
		expected string
	}{
		{"string", "boom", "boom"},
		{"error", errors.New("broken"), "broken"},
		{"other", 42, "An unexpected error occured."},
	}

	for i := range tests {
		tt := tests[i]

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flow := domain.NewConfirmationFlow()
			flow.Run(context.Background(), func(ctx context.Context) error {
				panic(tt.cause)
			})
			require.True(t, flow.IsRejected())
			require.Equal(t, tt.expected, flow.Error)
		})
	}
}

func TestFlowReopenResets(t *testing.T) {
	flow := domain.NewConfirmationFlow()
	flow.Run(context.Background(), func(ctx context.Context) error {
		return errors.New("x")
	})
	require.True(t, flow.IsRejected())

	ok, err := flow.Reopen()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.FlowStatusConfirm, flow.Status.Code)
	require.Empty(t, flow.Error)

	// A re-armed flow runs again from scratch.
	flow.Run(context.Background(), func(ctx context.Context) error { return nil })
	require.True(t, flow.IsComplete())
}

func TestFlowReopenWhilePending(t *testing.T) {
	flow := domain.NewConfirmationFlow()
	ok, err := flow.Begin()
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = flow.Reopen()
	require.ErrorIs(t, err, domain.ErrFlowStillPending)
	require.False(t, ok)
}

// A validation failure may reject straight from Confirm without ever
// entering Pending.
func TestFlowRejectFromConfirm(t *testing.T) {
	flow := domain.NewConfirmationFlow()
	flow.Reject(&domain.BelowMinimumError{Op: "withdrawal", Minimum: 100_000})
	require.True(t, flow.IsRejected())
	require.Equal(t, "minimum withdrawal is 0.001 ICP", flow.Error)
}

func TestFlowRejectDoesNotOverwriteComplete(t *testing.T) {
	flow := domain.NewConfirmationFlow()
	flow.Run(context.Background(), func(ctx context.Context) error { return nil })
	flow.Reject("late failure")
	require.True(t, flow.IsComplete())
	require.Empty(t, flow.Error)
}

func TestFlowCompleteRequiresPending(t *testing.T) {
	flow := domain.NewConfirmationFlow()
	ok, err := flow.Complete()
	require.ErrorIs(t, err, domain.ErrFlowMustBePending)
	require.False(t, ok)
}

func TestFlowBeginIsIdempotentWhilePending(t *testing.T) {
	flow := domain.NewConfirmationFlow()
	_, err := flow.Begin()
	require.NoError(t, err)

	ok, err := flow.Begin()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.FlowStatusPending, flow.Status.Code)
}
