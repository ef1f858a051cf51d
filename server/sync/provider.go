package sync

import "github.com/mattermost/idp-exchange-attribute-sync/server/exchange"

// AttributeProvider is a source of exchange user attributes to be
// synchronized into Mattermost's Custom Profile Attributes.
//
// Providers track their own position so that repeated calls are incremental:
//   - the first call returns every known user
//   - later calls return only users changed since the last committed call
//   - an empty slice means nothing changed
//
// The position only moves on Commit. A run that fails after fetching simply
// does not commit, and the next call returns the same users again.
//
// Each returned user is identified by its exchange username, which must match
// the Mattermost username.
type AttributeProvider interface {
	// GetUserAttributes returns the users whose attributes changed since the
	// previous call.
	GetUserAttributes() ([]exchange.UserResponse, error)

	// Commit marks the users returned by the last GetUserAttributes call as
	// synced. It is a no-op when nothing is pending.
	Commit() error

	// Close releases any resources held by the provider.
	Close() error
}
