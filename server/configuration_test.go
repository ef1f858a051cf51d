package main

import (
	"testing"
	"time"

	"github.com/mattermost/mattermost/server/public/plugin/plugintest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfigurationIsValid(t *testing.T) {
	for name, tc := range map[string]struct {
		config  configuration
		wantErr bool
	}{
		"empty":                  {config: configuration{}},
		"exchange":               {config: configuration{ExchangeEndpoint: "https://idp.example.com", ExchangeToken: "secret"}},
		"data file":              {config: configuration{DataFile: "/tmp/users.json"}},
		"endpoint without token": {config: configuration{ExchangeEndpoint: "https://idp.example.com"}, wantErr: true},
		"endpoint not a url":     {config: configuration{ExchangeEndpoint: "idp", ExchangeToken: "secret"}, wantErr: true},
		"negative interval":      {config: configuration{SyncIntervalMinutes: -1}, wantErr: true},
	} {
		t.Run(name, func(t *testing.T) {
			err := tc.config.IsValid()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigurationUsernames(t *testing.T) {
	assert.Nil(t, (&configuration{}).usernames())
	assert.Equal(t, []string{"alice", "bob"}, (&configuration{ExchangeUsers: " alice, ,bob "}).usernames())
}

func TestConfigurationSyncInterval(t *testing.T) {
	assert.Equal(t, 60*time.Minute, (&configuration{}).syncInterval())
	assert.Equal(t, 5*time.Minute, (&configuration{SyncIntervalMinutes: 5}).syncInterval())
}

func TestConfigurationClone(t *testing.T) {
	original := &configuration{ExchangeEndpoint: "https://idp.example.com"}
	clone := original.Clone()

	assert.Equal(t, original, clone)
	assert.NotSame(t, original, clone)
}

func TestOnConfigurationChange(t *testing.T) {
	t.Run("stores loaded configuration", func(t *testing.T) {
		api := &plugintest.API{}
		api.On("LoadPluginConfiguration", mock.AnythingOfType("*main.configuration")).
			Run(func(args mock.Arguments) {
				cfg := args.Get(0).(*configuration)
				cfg.ExchangeEndpoint = "https://idp.example.com"
				cfg.ExchangeToken = "secret"
				cfg.SyncIntervalMinutes = 15
			}).
			Return(nil)

		p := &Plugin{}
		p.SetAPI(api)

		require.NoError(t, p.OnConfigurationChange())
		assert.Equal(t, "https://idp.example.com", p.getConfiguration().ExchangeEndpoint)
		assert.Equal(t, 15, p.getConfiguration().SyncIntervalMinutes)
	})

	t.Run("rejects invalid configuration", func(t *testing.T) {
		api := &plugintest.API{}
		api.On("LoadPluginConfiguration", mock.AnythingOfType("*main.configuration")).
			Run(func(args mock.Arguments) {
				args.Get(0).(*configuration).ExchangeEndpoint = "https://idp.example.com"
			}).
			Return(nil)

		p := &Plugin{}
		p.SetAPI(api)

		require.Error(t, p.OnConfigurationChange())
		assert.Equal(t, "", p.getConfiguration().ExchangeEndpoint)
	})

	t.Run("load failure", func(t *testing.T) {
		api := &plugintest.API{}
		api.On("LoadPluginConfiguration", mock.Anything).Return(assert.AnError)

		p := &Plugin{}
		p.SetAPI(api)

		assert.ErrorIs(t, p.OnConfigurationChange(), assert.AnError)
	})
}

func TestConfigurationSource(t *testing.T) {
	assert.Equal(t, sourceNone, (&configuration{}).source())
	assert.Equal(t, sourceFile, (&configuration{DataFile: "/tmp/users.json"}).source())
	assert.Equal(t, sourceExchange, (&configuration{ExchangeEndpoint: "https://idp.example.com", DataFile: "/tmp/users.json"}).source())
}
