package kvstore

import "time"

type KVStore interface {
	// Field mapping methods - external attribute name to PropertyField ID
	SaveFieldMapping(fieldName, fieldID string) error
	GetFieldMapping(fieldName string) (string, error)

	// Multiselect option methods - option name to option ID, per field
	SaveFieldOptions(fieldName string, options map[string]string) error
	GetFieldOptions(fieldName string) (map[string]string, error)

	// Sync timestamp methods - the "since" sent to the exchange on the next sync
	SaveLastSyncTime(t time.Time) error
	GetLastSyncTime() (time.Time, error)
}
