package sync

import (
	"sort"

	"github.com/mattermost/mattermost/server/public/model"
	"github.com/mattermost/mattermost/server/public/pluginapi"
	"github.com/pkg/errors"

	"github.com/mattermost/idp-exchange-attribute-sync/server/exchange"
)

// SyncFields makes sure a Custom Profile Attribute field exists for every
// attribute name found on users and returns attribute name -> field ID.
//
// For each discovered attribute:
//  1. look up the field ID in the cache
//  2. create the field if there is none (type inferred from the sample value)
//  3. for existing multiselect fields, append options that are new in this batch
//
// Options are append-only: values that disappear from the exchange are kept so
// existing user values stay valid. A field that fails is logged and left out of
// the result; the remaining fields are still synced.
//
//nolint:revive // SyncFields mirrors SyncUsers
func SyncFields(client *pluginapi.Client, groupID string, users []exchange.UserResponse, cache FieldCache) (map[string]string, error) {
	fields := discoverFields(users)

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	mapping := make(map[string]string, len(fields))
	for _, name := range names {
		fieldType := inferFieldType(fields[name])

		fieldID, err := cache.GetFieldID(name)
		if err != nil {
			client.Log.Error("Failed to look up field, skipping", "field_name", name, "error", err.Error())
			continue
		}

		if fieldID == "" {
			var options []string
			if fieldType == model.PropertyFieldTypeMultiselect {
				options = collectOptions(users, name)
			}

			field, err := createPropertyField(client, groupID, name, fieldType, options, cache)
			if err != nil {
				client.Log.Error("Failed to create field, skipping", "field_name", name, "error", err.Error())
				continue
			}
			mapping[name] = field.ID
			continue
		}

		if fieldType == model.PropertyFieldTypeMultiselect {
			if err := updateMultiselectOptions(client, groupID, fieldID, name, collectOptions(users, name), cache); err != nil {
				client.Log.Warn("Failed to update field options", "field_name", name, "error", err.Error())
			}
		}
		mapping[name] = fieldID
	}

	return mapping, nil
}

// createPropertyField creates the field for an exchange attribute and records
// its ID (and option IDs for multiselect fields) in the cache.
//
// Fields are hidden and admin-managed: the exchange is the source of truth and
// any edit made in Mattermost would be overwritten by the next sync.
//
// The cache is only written once the field exists, so a failed creation is
// retried on the next run.
func createPropertyField(
	client *pluginapi.Client,
	groupID string,
	fieldName string,
	fieldType model.PropertyFieldType,
	options []string,
	cache FieldCache,
) (*model.PropertyField, error) {
	field := &model.PropertyField{
		GroupID: groupID,
		Name:    toDisplayName(fieldName),
		Type:    fieldType,
		Attrs: model.StringInterface{
			model.CustomProfileAttributesPropertyAttrsVisibility: model.CustomProfileAttributesVisibilityHidden,
			model.CustomProfileAttributesPropertyAttrsManaged:    "admin",
		},
	}

	optionIDs := make(map[string]string, len(options))
	if fieldType == model.PropertyFieldTypeMultiselect {
		attrOptions := make([]interface{}, 0, len(options))
		for _, name := range options {
			id := model.NewId()
			optionIDs[name] = id
			attrOptions = append(attrOptions, map[string]interface{}{"id": id, "name": name})
		}
		field.Attrs[model.PropertyFieldAttributeOptions] = attrOptions
	}

	created, err := client.Property.CreatePropertyField(field)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create property field %s", fieldName)
	}

	if err := cache.SaveFieldMapping(fieldName, created.ID); err != nil {
		return created, errors.Wrapf(err, "field created but failed to save mapping for %s", fieldName)
	}

	if fieldType == model.PropertyFieldTypeMultiselect {
		if err := cache.SaveFieldOptions(fieldName, optionIDs); err != nil {
			return created, errors.Wrapf(err, "field created but failed to save options for %s", fieldName)
		}
	}

	return created, nil
}

// updateMultiselectOptions appends the values in options that the field does
// not offer yet, and refreshes the cached option IDs from the field.
func updateMultiselectOptions(
	client *pluginapi.Client,
	groupID string,
	fieldID string,
	fieldName string,
	options []string,
	cache FieldCache,
) error {
	field, err := client.Property.GetPropertyField(groupID, fieldID)
	if err != nil {
		return errors.Wrapf(err, "failed to get property field %s", fieldName)
	}
	if field.Attrs == nil {
		field.Attrs = make(model.StringInterface)
	}

	attrOptions, known := readOptions(field.Attrs[model.PropertyFieldAttributeOptions])

	var added []string
	for _, name := range options {
		if _, exists := known[name]; exists {
			continue
		}
		id := model.NewId()
		known[name] = id
		attrOptions = append(attrOptions, map[string]interface{}{"id": id, "name": name})
		added = append(added, name)
	}

	if len(added) > 0 {
		field.Attrs[model.PropertyFieldAttributeOptions] = attrOptions
		if _, err := client.Property.UpdatePropertyField(groupID, field); err != nil {
			return errors.Wrapf(err, "failed to add options to %s", fieldName)
		}
		client.Log.Info("Added multiselect options", "field_name", fieldName, "count", len(added))
	}

	return cache.SaveFieldOptions(fieldName, known)
}

// readOptions returns the option list stored in a field's attrs together with
// its option name -> ID index.
func readOptions(raw interface{}) ([]interface{}, map[string]string) {
	known := make(map[string]string)

	var options []interface{}
	switch v := raw.(type) {
	case []interface{}:
		options = v
	case []map[string]interface{}:
		for _, option := range v {
			options = append(options, option)
		}
	}

	for _, option := range options {
		m, ok := option.(map[string]interface{})
		if !ok {
			continue
		}
		id, _ := m["id"].(string)
		name, _ := m["name"].(string)
		if id != "" && name != "" {
			known[name] = id
		}
	}

	return options, known
}
