package ports

import "context"

// PreferenceRepository persists the user's wallet preferences across page
// loads. The only preference today is the name of the last connector that
// connected successfully.
type PreferenceRepository interface {
	// GetLastConnector returns the persisted connector name, or the empty
	// string when none was saved yet.
	GetLastConnector(ctx context.Context) (string, error)

	// SetLastConnector saves the connector name, overwriting any previous
	// value.
	SetLastConnector(ctx context.Context, name string) error

	// DeleteLastConnector removes the persisted preference.
	DeleteLastConnector(ctx context.Context) error

	// Close releases the underlying store.
	Close() error
}
