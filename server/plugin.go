package main

import (
	"sync"

	"github.com/mattermost/mattermost/server/public/plugin"
	"github.com/mattermost/mattermost/server/public/pluginapi"
	"github.com/mattermost/mattermost/server/public/pluginapi/cluster"
	"github.com/pkg/errors"

	attrsync "github.com/mattermost/idp-exchange-attribute-sync/server/sync"
)

// Plugin implements the interface expected by the Mattermost server to communicate between the server and plugin processes.
type Plugin struct {
	plugin.MattermostPlugin

	// client is the Mattermost server API client.
	client *pluginapi.Client

	// backgroundJob pulls attributes from the exchange on the configured interval.
	backgroundJob *cluster.Job

	// provider is the attribute source built for providerConfig. It lives
	// across runs so it can remember its position, and is only touched from
	// the background job.
	provider       attrsync.AttributeProvider
	providerConfig *configuration

	// configurationLock synchronizes access to the configuration.
	configurationLock sync.RWMutex

	// configuration is the active plugin configuration. Consult getConfiguration and
	// setConfiguration for usage.
	configuration *configuration
}

// OnActivate is invoked when the plugin is activated. If an error is returned, the plugin will be deactivated.
func (p *Plugin) OnActivate() error {
	p.client = pluginapi.NewClient(p.API, p.Driver)

	cfg := p.getConfiguration()
	if err := cfg.IsValid(); err != nil {
		return err
	}
	if cfg.source() == sourceNone {
		p.client.Log.Warn("Neither ExchangeEndpoint nor DataFile is set, attribute sync will stay idle")
	}

	// cluster.Schedule elects a single server to run the job in HA deployments
	// and records its metadata across restarts.
	job, err := cluster.Schedule(
		p.API,
		"AttributeSync",
		p.nextWaitInterval,
		p.runSync,
	)
	if err != nil {
		return errors.Wrap(err, "failed to schedule attribute sync job")
	}

	p.backgroundJob = job

	p.client.Log.Info("Attribute sync scheduled",
		"source", cfg.source(),
		"interval", cfg.syncInterval().String())

	return nil
}

// OnDeactivate is invoked when the plugin is deactivated.
func (p *Plugin) OnDeactivate() error {
	if p.backgroundJob != nil {
		if err := p.backgroundJob.Close(); err != nil {
			p.API.LogError("Failed to close attribute sync job", "err", err)
		}
	}
	p.closeProvider()
	return nil
}

// See https://developers.mattermost.com/extend/plugins/server/reference/
