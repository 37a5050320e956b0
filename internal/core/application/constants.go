package application

const (
	// MinimumDeposit is the smallest stake accepted by the protocol, in base
	// units.
	MinimumDeposit = uint64(100_000)
	// MinimumWithdrawal is the smallest withdrawal accepted by the protocol,
	// in base units.
	MinimumWithdrawal = uint64(100_000)
	// TransferFee is the ledger fee of one transfer, in base units.
	TransferFee = uint64(10_000)
)
