package inmemory

import (
	"context"
	"sync"

	"github.com/stakedicp/wallet-client/internal/core/ports"
)

type preferenceRepositoryImpl struct {
	locker        *sync.Mutex
	lastConnector string
}

// NewPreferenceRepositoryImpl returns a new inmemory PreferenceRepository
// implementation. Nothing survives the process; it backs tests and
// environments without a writable data dir.
func NewPreferenceRepositoryImpl() ports.PreferenceRepository {
	return &preferenceRepositoryImpl{locker: &sync.Mutex{}}
}

func (r *preferenceRepositoryImpl) GetLastConnector(_ context.Context) (string, error) {
	r.locker.Lock()
	defer r.locker.Unlock()
	return r.lastConnector, nil
}

func (r *preferenceRepositoryImpl) SetLastConnector(_ context.Context, name string) error {
	r.locker.Lock()
	defer r.locker.Unlock()
	r.lastConnector = name
	return nil
}

func (r *preferenceRepositoryImpl) DeleteLastConnector(_ context.Context) error {
	r.locker.Lock()
	defer r.locker.Unlock()
	r.lastConnector = ""
	return nil
}

func (r *preferenceRepositoryImpl) Close() error { return nil }
