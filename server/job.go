package main

import (
	"net/http"
	"time"

	"github.com/mattermost/mattermost/server/public/pluginapi/cluster"

	"github.com/mattermost/idp-exchange-attribute-sync/server/exchange"
	"github.com/mattermost/idp-exchange-attribute-sync/server/store/kvstore"
	"github.com/mattermost/idp-exchange-attribute-sync/server/sync"
)

const exchangeTimeout = 30 * time.Second

// nextWaitInterval calculates the duration to wait before the next sync execution.
// On the first run (when metadata.LastFinished is zero), the job runs immediately.
// Afterwards it waits the configured interval from the last completion time.
func (p *Plugin) nextWaitInterval(now time.Time, metadata cluster.JobMetadata) time.Duration {
	if metadata.LastFinished.IsZero() {
		return 0
	}

	nextRunTime := metadata.LastFinished.Add(p.getConfiguration().syncInterval())

	if nextRunTime.Before(now) {
		return 0
	}

	return nextRunTime.Sub(now)
}

// newProvider returns the attribute source selected by cfg: the exchange when
// an endpoint is configured, else the data file. It returns nil when neither
// is set.
func (p *Plugin) newProvider(cfg *configuration) sync.AttributeProvider {
	switch cfg.source() {
	case sourceExchange:
		client := exchange.NewClient(
			cfg.ExchangeEndpoint,
			cfg.ExchangeToken,
			exchange.WithHTTPClient(&http.Client{Timeout: exchangeTimeout}),
			exchange.WithLogger(&p.client.Log),
		)
		return sync.NewExchangeProvider(client, kvstore.NewKVStore(p.client), cfg.usernames())
	case sourceFile:
		return sync.NewFileProvider(cfg.DataFile)
	default:
		return nil
	}
}

// attributeProvider returns the provider for the active configuration,
// replacing the previous one when the configuration changed.
func (p *Plugin) attributeProvider() sync.AttributeProvider {
	cfg := p.getConfiguration()
	if p.provider != nil && p.providerConfig == cfg {
		return p.provider
	}

	p.closeProvider()
	p.provider = p.newProvider(cfg)
	p.providerConfig = cfg
	return p.provider
}

func (p *Plugin) closeProvider() {
	if p.provider == nil {
		return
	}
	if err := p.provider.Close(); err != nil {
		p.API.LogWarn("Failed to close attribute provider", "error", err.Error())
	}
	p.provider = nil
	p.providerConfig = nil
}

// runSync executes one attribute synchronization:
//  1. fetch changed users from the configured provider
//  2. create or update the PropertyFields their attributes need
//  3. upsert the PropertyValues of every user
//  4. commit the provider position
//
// Field-level and user-level failures are logged by the sync package and do
// not stop the run. Any other failure aborts it before the commit, so the
// next run fetches the same users again.
func (p *Plugin) runSync() {
	provider := p.attributeProvider()
	if provider == nil {
		p.client.Log.Info("No attribute source configured, skipping sync")
		return
	}

	p.client.Log.Info("Sync starting")

	users, err := provider.GetUserAttributes()
	if err != nil {
		p.client.Log.Error("Failed to fetch changed users", "error", err.Error())
		return
	}

	if len(users) == 0 {
		p.client.Log.Info("No changed users to sync")
		p.commit(provider)
		return
	}

	p.client.Log.Info("Fetched users for sync", "count", len(users))

	groupID, err := sync.GetOrRegisterCPAGroup(p.client)
	if err != nil {
		p.client.Log.Error("Failed to get CPA group", "error", err.Error())
		return
	}

	cache := sync.NewFieldCache(kvstore.NewKVStore(p.client))

	if _, err = sync.SyncFields(p.client, groupID, users, cache); err != nil {
		p.client.Log.Error("Failed to sync fields", "error", err.Error())
		return
	}

	if err = sync.SyncUsers(p.client, groupID, users, cache); err != nil {
		p.client.Log.Error("Failed to sync user values", "error", err.Error())
		return
	}

	p.commit(provider)

	p.client.Log.Info("Sync completed successfully", "users_processed", len(users))
}

func (p *Plugin) commit(provider sync.AttributeProvider) {
	if err := provider.Commit(); err != nil {
		p.client.Log.Error("Failed to record sync position", "error", err.Error())
	}
}
