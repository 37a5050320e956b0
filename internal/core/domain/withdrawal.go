package domain

import "math/big"

// Withdrawal is one delayed withdrawal tracked by the deposits canister for a
// user. Pending is the part still locked waiting for liquidity, Available the
// part ready to be disbursed.
type Withdrawal struct {
	Id         string `json:"id"`
	Pending    uint64 `json:"pending"`
	Available  uint64 `json:"available"`
	Disbursed  uint64 `json:"disbursed"`
	CreatedAt  int64  `json:"createdAt"`
	ExpectedAt int64  `json:"expectedAt"`
	ReadyAt    *int64 `json:"readyAt,omitempty"`
}

// PendingTotal sums the still-locked amounts of a withdrawal list.
func PendingTotal(withdrawals []Withdrawal) uint64 {
	var total uint64
	for _, w := range withdrawals {
		total += w.Pending
	}
	return total
}

// AvailableTotal sums the disbursable amounts of a withdrawal list.
func AvailableTotal(withdrawals []Withdrawal) uint64 {
	var total uint64
	for _, w := range withdrawals {
		total += w.Available
	}
	return total
}

// ExchangeRate is the protocol exchange rate between the staked token and the
// native asset, both sides in base units.
type ExchangeRate struct {
	TotalIcp uint64 `json:"totalIcp"`
	StIcp    uint64 `json:"stIcp"`
}

// StakedToNative converts an amount of the staked token to the native asset
// at this rate, truncating toward zero. The intermediate product goes through
// big.Int so large positions cannot overflow.
func (r ExchangeRate) StakedToNative(amount uint64) uint64 {
	if r.StIcp == 0 {
		return 0
	}
	v := new(big.Int).SetUint64(amount)
	v.Mul(v, new(big.Int).SetUint64(r.TotalIcp))
	v.Quo(v, new(big.Int).SetUint64(r.StIcp))
	return v.Uint64()
}
