package sync

import (
	"encoding/json"
	"fmt"

	"github.com/mattermost/mattermost/server/public/model"
	"github.com/mattermost/mattermost/server/public/pluginapi"

	"github.com/mattermost/idp-exchange-attribute-sync/server/exchange"
)

// formatStringValue JSON-encodes a text or date value, as PropertyValue.Value
// must hold JSON.
func formatStringValue(value string) (json.RawMessage, error) {
	marshaled, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string value: %w", err)
	}
	return json.RawMessage(marshaled), nil
}

// formatMultiselectValue converts option names into the JSON array of option
// IDs stored for multiselect fields, e.g. ["Level1","Level2"] becomes
// ["opt_abc123","opt_def456"].
//
// An option missing from the cache is an error: field sync registers every
// option before values are written, so a miss means the two are out of step.
func formatMultiselectValue(cache FieldCache, fieldName string, values []string) (json.RawMessage, error) {
	optionIDs := make([]string, 0, len(values))
	for _, optionName := range values {
		optionID, err := cache.GetOptionID(fieldName, optionName)
		if err != nil {
			return nil, fmt.Errorf("failed to get option ID for %s.%s: %w", fieldName, optionName, err)
		}
		if optionID == "" {
			return nil, fmt.Errorf("option %s not found for field %s", optionName, fieldName)
		}
		optionIDs = append(optionIDs, optionID)
	}

	marshaled, err := json.Marshal(optionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal multiselect value: %w", err)
	}
	return json.RawMessage(marshaled), nil
}

// buildPropertyValues converts the exchange attributes of one user into
// PropertyValues. A single attribute without a value is written as an empty
// string, which clears whatever Mattermost stored for it before.
// Attributes that cannot be converted are logged and skipped:
//   - no field exists for the attribute (field sync failed for it)
//   - a multiselect option unknown to the field
func buildPropertyValues(api *pluginapi.Client, user *model.User, groupID string, attributes exchange.Attributes, cache FieldCache) []*model.PropertyValue {
	values := make([]*model.PropertyValue, 0, len(attributes))

	for _, attribute := range attributes {
		fieldName := attribute.AttributeName()

		fieldID, err := cache.GetFieldID(fieldName)
		if err != nil {
			api.Log.Warn("Failed to get field ID, skipping attribute",
				"field_name", fieldName,
				"username", user.Username,
				"error", err.Error())
			continue
		}
		if fieldID == "" {
			api.Log.Debug("No field for attribute, skipping", "field_name", fieldName, "username", user.Username)
			continue
		}

		var formatted json.RawMessage
		switch a := attribute.(type) {
		case exchange.ValueAttribute:
			value := ""
			if a.Value != nil {
				value = *a.Value
			}
			formatted, err = formatStringValue(value)
		case exchange.ValuesAttribute:
			formatted, err = formatMultiselectValue(cache, fieldName, a.Values)
		default:
			err = fmt.Errorf("unsupported attribute type %q", attribute.Type())
		}
		if err != nil {
			api.Log.Warn("Failed to format attribute value, skipping attribute",
				"field_name", fieldName,
				"username", user.Username,
				"error", err.Error())
			continue
		}

		values = append(values, &model.PropertyValue{
			GroupID:    groupID,
			TargetType: "user",
			TargetID:   user.Id,
			FieldID:    fieldID,
			Value:      formatted,
		})
	}

	return values
}

// SyncUsers writes the attribute values of every user into Mattermost.
//
// Users are matched by username. Each user is handled on its own: a user who
// does not exist in Mattermost, has nothing to write, or whose upsert fails is
// logged and skipped, and the remaining users are still synced.
//
//nolint:revive // SyncUsers is the conventional name for this orchestrator function
func SyncUsers(api *pluginapi.Client, groupID string, users []exchange.UserResponse, cache FieldCache) error {
	for _, exchangeUser := range users {
		if exchangeUser.Username == "" {
			api.Log.Warn("Exchange user without username, skipping")
			continue
		}

		user, err := api.User.GetByUsername(exchangeUser.Username)
		if err != nil {
			api.Log.Warn("User not found by username, skipping",
				"username", exchangeUser.Username,
				"error", err.Error())
			continue
		}

		values := buildPropertyValues(api, user, groupID, exchangeUser.Attributes, cache)
		if len(values) == 0 {
			api.Log.Debug("No property values to sync for user", "username", exchangeUser.Username)
			continue
		}

		if _, err := api.Property.UpsertPropertyValues(values); err != nil {
			api.Log.Error("Failed to upsert property values, skipping user",
				"username", exchangeUser.Username,
				"value_count", len(values),
				"error", err.Error())
			continue
		}

		api.Log.Debug("Successfully synced user attributes",
			"username", exchangeUser.Username,
			"attribute_count", len(values))
	}

	return nil
}
