package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/stakedicp/wallet-client/internal/core/ports"
)

// lastConnectorKey is the fixed key of the single preference record.
const lastConnectorKey = "last_connector"

// preference is the persisted record. A struct rather than a bare string so
// new fields can be added without a store migration.
type preference struct {
	Value string
}

type preferenceRepositoryImpl struct {
	store *badgerhold.Store
}

// NewPreferenceRepositoryImpl opens (or creates if not exists) the badger
// store on disk and returns a PreferenceRepository over it.
func NewPreferenceRepositoryImpl(
	dbDir string, logger badger.Logger,
) (ports.PreferenceRepository, error) {
	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, err
	}
	return &preferenceRepositoryImpl{store: store}, nil
}

func (p *preferenceRepositoryImpl) GetLastConnector(ctx context.Context) (string, error) {
	var pref preference
	if err := p.store.Get(lastConnectorKey, &pref); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return pref.Value, nil
}

func (p *preferenceRepositoryImpl) SetLastConnector(ctx context.Context, name string) error {
	return p.store.Upsert(lastConnectorKey, preference{Value: name})
}

func (p *preferenceRepositoryImpl) DeleteLastConnector(ctx context.Context) error {
	if err := p.store.Delete(lastConnectorKey, preference{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

func (p *preferenceRepositoryImpl) Close() error {
	return p.store.Close()
}
