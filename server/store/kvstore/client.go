package kvstore

import (
	"github.com/mattermost/mattermost/server/public/pluginapi"
)

// Client stores sync state in the plugin KV store under fixed keys.
type Client struct {
	client *pluginapi.Client
}

// NewKVStore creates a new KVStore client wrapping the pluginapi.Client.
func NewKVStore(client *pluginapi.Client) KVStore {
	return Client{
		client: client,
	}
}
