package application

import "errors"

var (
	// ErrMissingConnectors ...
	ErrMissingConnectors = errors.New("missing connectors")
	// ErrMissingPreferenceRepository ...
	ErrMissingPreferenceRepository = errors.New("missing preference repository")
	// ErrMissingSession ...
	ErrMissingSession = errors.New("missing session service")
	// ErrAccountMissing is returned by balance reads without an explicit
	// account while the session is disconnected.
	ErrAccountMissing = errors.New("address is required")
	// ErrNativeBalanceNotFound is returned when the extension's balance list
	// has no entry for the native asset.
	ErrNativeBalanceNotFound = errors.New("ICP balance not found")
)
