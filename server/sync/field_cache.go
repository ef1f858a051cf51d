package sync

import (
	"github.com/pkg/errors"

	"github.com/mattermost/idp-exchange-attribute-sync/server/store/kvstore"
)

// FieldCache keeps field IDs and multiselect option IDs in memory for the
// duration of one sync run, in front of the KV store.
//
// Reads are read-through: a miss loads the entry from the KV store once and
// remembers it, including "not found". Writes are write-through: the cache is
// updated first and the KV store second, so value sync sees fields created by
// field sync in the same run even if persisting them failed.
//
// A fresh cache is created for every run and discarded afterwards.
type FieldCache interface {
	// GetFieldID returns the PropertyField ID of an attribute, or "" if the
	// field was never created. Errors only come from the KV store.
	GetFieldID(fieldName string) (string, error)

	// GetOptionID returns the option ID of a multiselect value, or "" if the
	// option is unknown. Errors only come from the KV store.
	GetOptionID(fieldName, optionName string) (string, error)

	SaveFieldMapping(fieldName, fieldID string) error
	SaveFieldOptions(fieldName string, options map[string]string) error
}

type kvFieldCache struct {
	store kvstore.KVStore

	fieldMappings map[string]string            // attribute name -> field ID
	fieldOptions  map[string]map[string]string // attribute name -> option name -> option ID
}

// NewFieldCache creates an empty cache backed by store.
func NewFieldCache(store kvstore.KVStore) FieldCache {
	return &kvFieldCache{
		store:         store,
		fieldMappings: make(map[string]string),
		fieldOptions:  make(map[string]map[string]string),
	}
}

func (c *kvFieldCache) GetFieldID(fieldName string) (string, error) {
	if fieldID, exists := c.fieldMappings[fieldName]; exists {
		return fieldID, nil
	}

	fieldID, err := c.store.GetFieldMapping(fieldName)
	if err != nil {
		return "", errors.Wrap(err, "failed to get field mapping from KVStore")
	}

	c.fieldMappings[fieldName] = fieldID
	return fieldID, nil
}

func (c *kvFieldCache) GetOptionID(fieldName, optionName string) (string, error) {
	options, err := c.options(fieldName)
	if err != nil {
		return "", err
	}
	return options[optionName], nil
}

func (c *kvFieldCache) options(fieldName string) (map[string]string, error) {
	if options, exists := c.fieldOptions[fieldName]; exists {
		return options, nil
	}

	options, err := c.store.GetFieldOptions(fieldName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get field options from KVStore")
	}
	if options == nil {
		options = make(map[string]string)
	}

	c.fieldOptions[fieldName] = options
	return options, nil
}

func (c *kvFieldCache) SaveFieldMapping(fieldName, fieldID string) error {
	c.fieldMappings[fieldName] = fieldID

	if err := c.store.SaveFieldMapping(fieldName, fieldID); err != nil {
		return errors.Wrap(err, "failed to save field mapping to KVStore")
	}
	return nil
}

func (c *kvFieldCache) SaveFieldOptions(fieldName string, options map[string]string) error {
	c.fieldOptions[fieldName] = copyOptions(options)

	if err := c.store.SaveFieldOptions(fieldName, options); err != nil {
		return errors.Wrap(err, "failed to save field options to KVStore")
	}
	return nil
}

func copyOptions(options map[string]string) map[string]string {
	copied := make(map[string]string, len(options))
	for name, id := range options {
		copied[name] = id
	}
	return copied
}
