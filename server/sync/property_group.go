package sync

import (
	"github.com/mattermost/mattermost/server/public/pluginapi"
	"github.com/pkg/errors"
)

// CustomProfileAttributesGroupName is the property group Mattermost core uses
// for Custom Profile Attributes. Every synced field and value belongs to it.
const CustomProfileAttributesGroupName = "custom_profile_attributes"

// GetOrRegisterCPAGroup returns the ID of the Custom Profile Attributes
// property group, registering the group if core has not created it yet.
func GetOrRegisterCPAGroup(client *pluginapi.Client) (string, error) {
	group, err := client.Property.GetPropertyGroup(CustomProfileAttributesGroupName)
	if err == nil && group != nil {
		return group.ID, nil
	}

	group, err = client.Property.RegisterPropertyGroup(CustomProfileAttributesGroupName)
	if err != nil {
		return "", errors.Wrap(err, "failed to get or register Custom Profile Attributes group")
	}
	if group == nil {
		return "", errors.New("RegisterPropertyGroup returned nil group")
	}

	return group.ID, nil
}
