package kvstore

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// Keys persisted between sync runs. They survive plugin restarts so that
// fields are not created twice and the exchange is only asked for users
// changed since the previous run.
const (
	// "field_mapping_{attributeName}" -> PropertyField ID
	fieldMappingPrefix = "field_mapping_"

	// "field_options_{attributeName}" -> JSON object of option name -> option ID
	fieldOptionsPrefix = "field_options_"

	// RFC 3339 time with nanoseconds of the last successful exchange fetch
	lastSyncTimestampKey = "last_sync_timestamp"
)

// SaveFieldMapping stores the PropertyField ID created for an exchange attribute.
func (kv Client) SaveFieldMapping(fieldName, fieldID string) error {
	if _, err := kv.client.KV.Set(fieldMappingPrefix+fieldName, []byte(fieldID)); err != nil {
		return errors.Wrapf(err, "failed to save field mapping for %s", fieldName)
	}
	return nil
}

// GetFieldMapping returns the PropertyField ID of an exchange attribute, or
// an empty string when the field has not been created yet.
func (kv Client) GetFieldMapping(fieldName string) (string, error) {
	var fieldID []byte
	if err := kv.client.KV.Get(fieldMappingPrefix+fieldName, &fieldID); err != nil {
		return "", errors.Wrapf(err, "failed to get field mapping for %s", fieldName)
	}
	return string(fieldID), nil
}

// SaveFieldOptions replaces the stored option name -> option ID map of a
// multiselect field.
func (kv Client) SaveFieldOptions(fieldName string, options map[string]string) error {
	data, err := json.Marshal(options)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal options for %s", fieldName)
	}

	if _, err := kv.client.KV.Set(fieldOptionsPrefix+fieldName, data); err != nil {
		return errors.Wrapf(err, "failed to save field options for %s", fieldName)
	}
	return nil
}

// GetFieldOptions returns the stored options of a field, or an empty map.
func (kv Client) GetFieldOptions(fieldName string) (map[string]string, error) {
	var data []byte
	if err := kv.client.KV.Get(fieldOptionsPrefix+fieldName, &data); err != nil {
		return nil, errors.Wrapf(err, "failed to get field options for %s", fieldName)
	}

	options := make(map[string]string)
	if len(data) == 0 {
		return options, nil
	}
	if err := json.Unmarshal(data, &options); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal options for %s", fieldName)
	}
	return options, nil
}

// SaveLastSyncTime stores the time the last successful exchange fetch started.
func (kv Client) SaveLastSyncTime(t time.Time) error {
	timestamp := t.UTC().Format(time.RFC3339Nano)
	if _, err := kv.client.KV.Set(lastSyncTimestampKey, []byte(timestamp)); err != nil {
		return errors.Wrap(err, "failed to save last sync timestamp")
	}
	return nil
}

// GetLastSyncTime returns the stored sync time, or the zero time before the
// first sync.
func (kv Client) GetLastSyncTime() (time.Time, error) {
	var data []byte
	if err := kv.client.KV.Get(lastSyncTimestampKey, &data); err != nil {
		return time.Time{}, errors.Wrap(err, "failed to get last sync timestamp")
	}
	if len(data) == 0 {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.RFC3339Nano, string(data))
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "failed to parse timestamp: %s", data)
	}
	return t, nil
}
