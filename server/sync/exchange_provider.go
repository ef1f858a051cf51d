package sync

import (
	"time"

	"github.com/pkg/errors"

	"github.com/mattermost/idp-exchange-attribute-sync/server/exchange"
)

// ExchangeClient is the part of *exchange.Client used by ExchangeProvider.
type ExchangeClient interface {
	GetUsers(usernames []string) (*exchange.UsersResponse, error)
	GetUpdatedUsers(usernames []string, since time.Time) (*exchange.UpdatedUsersResponse, error)
}

// SyncTimeStore persists the provider position between runs.
type SyncTimeStore interface {
	SaveLastSyncTime(t time.Time) error
	GetLastSyncTime() (time.Time, error)
}

// ExchangeProvider implements AttributeProvider against the identity provider
// exchange. Each call asks the exchange which users changed since the stored
// sync time and fetches the attributes of those users. Commit then stores the
// moment that call started. Until then the stored time is untouched, so a run
// that fails anywhere asks for the same window again.
type ExchangeProvider struct {
	client    ExchangeClient
	store     SyncTimeStore
	usernames []string
	now       func() time.Time

	// pending is the start of the last uncommitted fetch, zero if none.
	pending time.Time
}

// NewExchangeProvider creates a provider. When usernames is not empty, only
// those users are considered.
func NewExchangeProvider(client ExchangeClient, store SyncTimeStore, usernames []string) *ExchangeProvider {
	return &ExchangeProvider{
		client:    client,
		store:     store,
		usernames: usernames,
		now:       time.Now,
	}
}

func (p *ExchangeProvider) GetUserAttributes() ([]exchange.UserResponse, error) {
	p.pending = time.Time{}

	since, err := p.store.GetLastSyncTime()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read last sync time")
	}

	startedAt := p.now()

	updated, err := p.client.GetUpdatedUsers(p.usernames, since)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch updated users")
	}

	users := []exchange.UserResponse{}
	if usernames := updated.Usernames(); len(usernames) > 0 {
		response, err := p.client.GetUsers(usernames)
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch user attributes")
		}
		users = response.Users
	}

	p.pending = startedAt
	return users, nil
}

func (p *ExchangeProvider) Commit() error {
	if p.pending.IsZero() {
		return nil
	}
	if err := p.store.SaveLastSyncTime(p.pending); err != nil {
		return errors.Wrap(err, "failed to save last sync time")
	}
	p.pending = time.Time{}
	return nil
}

// Close is a no-op; the exchange client holds no connections of its own.
func (p *ExchangeProvider) Close() error {
	return nil
}
