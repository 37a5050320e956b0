package application

import (
	"context"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/stakedicp/wallet-client/internal/core/domain"
	"github.com/stakedicp/wallet-client/internal/core/ports"
	"github.com/stakedicp/wallet-client/internal/metrics"
)

// SessionService owns the wallet connection lifecycle: the fixed connector
// list, the active connector and its account, the connecting flag of the
// startup auto-reconnect, and the cache buster dependent reads key on.
// It is the sole mutator of all of this state; accessors only read it and
// request changes through Connect, Disconnect and BumpCacheBuster.
//
// Construct one per page lifetime and pass it by reference; tests construct
// independent instances.
type SessionService struct {
	mtx sync.RWMutex

	connectors []ports.Connector
	prefs      ports.PreferenceRepository

	active      ports.Connector
	account     *ports.AccountData
	cacheBuster uint64
	connecting  bool
	closed      bool
}

// NewSessionService returns a session over the given connector list. The
// list is fixed for the session's lifetime.
func NewSessionService(
	connectors []ports.Connector, prefs ports.PreferenceRepository,
) (*SessionService, error) {
	if len(connectors) == 0 {
		return nil, ErrMissingConnectors
	}
	if prefs == nil {
		return nil, ErrMissingPreferenceRepository
	}
	return &SessionService{
		connectors:  connectors,
		prefs:       prefs,
		cacheBuster: 1,
	}, nil
}

// Connectors returns the fixed connector list.
func (s *SessionService) Connectors() []ports.Connector {
	return s.connectors
}

// ActiveConnector returns the active connector, or nil while disconnected.
func (s *SessionService) ActiveConnector() ports.Connector {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.active
}

// Account returns the connected account data, or nil while disconnected.
func (s *SessionService) Account() *ports.AccountData {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.account
}

// Connected reports whether an account is currently published.
func (s *SessionService) Connected() bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.account != nil
}

// Connecting reports whether the startup auto-reconnect attempt is running.
func (s *SessionService) Connecting() bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.connecting
}

// CacheBuster returns the current cache invalidation counter. Dependent
// reads include it in their memoization key and refetch when it changes.
func (s *SessionService) CacheBuster() uint64 {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.cacheBuster
}

// BumpCacheBuster signals dependent reads that their data may be stale. The
// counter only ever increments.
func (s *SessionService) BumpCacheBuster() {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.cacheBuster++
}

// ConnectorByName returns the connector with the given stable name.
func (s *SessionService) ConnectorByName(name string) (ports.Connector, error) {
	for _, connector := range s.connectors {
		if connector.Name() == name {
			return connector, nil
		}
	}
	return nil, domain.ErrConnectorNotFound
}

// DefaultConnector returns the connector Connect falls back to: the active
// one, else the first of the list.
func (s *SessionService) DefaultConnector() ports.Connector {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	if s.active != nil {
		return s.active
	}
	return s.connectors[0]
}

// Connect activates the given connector, or the default one when nil.
// Connecting the already-active connector is rejected so the user is never
// shown a duplicate permission prompt. A nil account with a nil error means
// the extension is not installed; the session stays unchanged in that case.
// On success the connector becomes active and its name is persisted as the
// last-used preference.
func (s *SessionService) Connect(
	ctx context.Context, connector ports.Connector,
) (*ports.AccountData, error) {
	if connector == nil {
		connector = s.DefaultConnector()
	}

	s.mtx.RLock()
	active := s.active
	s.mtx.RUnlock()
	if connector == active {
		return nil, domain.ErrConnectorAlreadyConnected
	}

	data, err := connector.Connect(ctx)
	if err != nil {
		metrics.ConnectFailures.WithLabelValues(connector.Name()).Inc()
		return nil, err
	}
	if data == nil {
		// Extension not installed, the connector redirected to its install
		// page. Not a connection, not an error.
		return nil, nil
	}

	s.mtx.Lock()
	s.active = connector
	s.account = data
	s.mtx.Unlock()

	if err := s.prefs.SetLastConnector(ctx, connector.Name()); err != nil {
		log.WithError(err).Warn("failed to persist last used connector")
	}
	metrics.Connects.WithLabelValues(connector.Name()).Inc()
	log.WithField("connector", connector.Name()).Debug("wallet connected")
	return data, nil
}

// Disconnect tears down the active connection, clears the published account
// and bumps the cache buster. Disconnecting a disconnected session is a
// no-op.
func (s *SessionService) Disconnect(ctx context.Context) error {
	s.mtx.Lock()
	active := s.active
	s.active = nil
	s.account = nil
	if active != nil {
		s.cacheBuster++
	}
	s.mtx.Unlock()

	if active == nil {
		return nil
	}
	if err := active.Disconnect(ctx); err != nil {
		return err
	}
	log.WithField("connector", active.Name()).Debug("wallet disconnected")
	return nil
}

// AutoReconnect makes the one silent reconnection attempt of startup. The
// connector list is tried with the persisted last-used connector first and
// the rest in their original order; connectors that are not ready or not
// already authorized are skipped so no permission dialog ever appears, and
// the scan stops at the first success. Failures are logged, never returned:
// ending up disconnected is a valid outcome.
func (s *SessionService) AutoReconnect(ctx context.Context) {
	s.mtx.Lock()
	s.connecting = true
	s.mtx.Unlock()
	defer func() {
		s.mtx.Lock()
		s.connecting = false
		s.mtx.Unlock()
	}()

	lastUsed, err := s.prefs.GetLastConnector(ctx)
	if err != nil {
		log.WithError(err).Warn("failed to read last used connector")
	}

	ordered := make([]ports.Connector, len(s.connectors))
	copy(ordered, s.connectors)
	if lastUsed != "" {
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Name() == lastUsed && ordered[j].Name() != lastUsed
		})
	}

	for _, connector := range ordered {
		if !connector.Ready() {
			continue
		}
		authorized, err := connector.IsAuthorized(ctx)
		if err != nil {
			log.WithError(err).WithField("connector", connector.Name()).
				Warn("authorization check failed during auto-reconnect")
			continue
		}
		if !authorized {
			continue
		}

		if _, err := s.Connect(ctx, connector); err != nil {
			log.WithError(err).WithField("connector", connector.Name()).
				Warn("auto-reconnect failed")
			continue
		}
		return
	}
}

// Close releases the session on teardown, disconnecting the active connector
// exactly once. Further calls are no-ops.
func (s *SessionService) Close(ctx context.Context) error {
	s.mtx.Lock()
	if s.closed {
		s.mtx.Unlock()
		return nil
	}
	s.closed = true
	s.mtx.Unlock()

	return s.Disconnect(ctx)
}
