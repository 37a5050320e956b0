package application

import (
	"context"
	"strings"
	"sync"

	"github.com/stakedicp/wallet-client/internal/core/ports"
)

// ActorService memoizes actors created through the active connector, keyed
// on connector, canister id and interface description. Changing any of the
// three drops the memoized actor and a fresh one is created on the next Get.
type ActorService struct {
	session *SessionService

	mtx    sync.Mutex
	actors map[actorKey]ports.Actor
}

type actorKey struct {
	connector  string
	canisterID string
	iface      string
}

// NewActorService ...
func NewActorService(session *SessionService) (*ActorService, error) {
	if session == nil {
		return nil, ErrMissingSession
	}
	return &ActorService{
		session: session,
		actors:  make(map[actorKey]ports.Actor),
	}, nil
}

// Get returns an actor bound to the given canister through the active
// connector. While no connector is active it returns nil without an error:
// an unavailable actor is a normal transient state for callers, not a
// failure.
func (a *ActorService) Get(
	ctx context.Context, config ports.ActorConfig,
) (ports.Actor, error) {
	connector := a.session.ActiveConnector()
	if connector == nil {
		return nil, nil
	}

	key := actorKey{
		connector:  connector.Name(),
		canisterID: config.CanisterID,
		iface:      interfaceKey(config.Interface),
	}

	a.mtx.Lock()
	cached, ok := a.actors[key]
	a.mtx.Unlock()
	if ok {
		return cached, nil
	}

	actor, err := connector.CreateActor(ctx, config)
	if err != nil {
		return nil, err
	}

	a.mtx.Lock()
	a.actors[key] = actor
	a.mtx.Unlock()
	return actor, nil
}

func interfaceKey(iface ports.InterfaceDescription) string {
	return iface.Name + "|" + strings.Join(iface.Methods, ",")
}
