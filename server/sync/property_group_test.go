package sync

import (
	"testing"

	"github.com/mattermost/mattermost/server/public/model"
	"github.com/mattermost/mattermost/server/public/plugin/plugintest"
	"github.com/mattermost/mattermost/server/public/pluginapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrRegisterCPAGroup(t *testing.T) {
	t.Run("existing group", func(t *testing.T) {
		api := &plugintest.API{}
		api.On("GetPropertyGroup", CustomProfileAttributesGroupName).Return(&model.PropertyGroup{ID: "group-id"}, nil)

		groupID, err := GetOrRegisterCPAGroup(pluginapi.NewClient(api, &plugintest.Driver{}))
		require.NoError(t, err)
		assert.Equal(t, "group-id", groupID)
		api.AssertNotCalled(t, "RegisterPropertyGroup", CustomProfileAttributesGroupName)
	})

	t.Run("registers missing group", func(t *testing.T) {
		api := &plugintest.API{}
		api.On("GetPropertyGroup", CustomProfileAttributesGroupName).Return(nil, assert.AnError)
		api.On("RegisterPropertyGroup", CustomProfileAttributesGroupName).Return(&model.PropertyGroup{ID: "new-group-id"}, nil)

		groupID, err := GetOrRegisterCPAGroup(pluginapi.NewClient(api, &plugintest.Driver{}))
		require.NoError(t, err)
		assert.Equal(t, "new-group-id", groupID)
	})

	t.Run("registration failure", func(t *testing.T) {
		api := &plugintest.API{}
		api.On("GetPropertyGroup", CustomProfileAttributesGroupName).Return(nil, assert.AnError)
		api.On("RegisterPropertyGroup", CustomProfileAttributesGroupName).Return(nil, assert.AnError)

		_, err := GetOrRegisterCPAGroup(pluginapi.NewClient(api, &plugintest.Driver{}))
		assert.Error(t, err)
	})
}
