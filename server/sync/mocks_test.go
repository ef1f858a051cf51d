package sync

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockKVStore is a mock implementation of kvstore.KVStore for testing
type MockKVStore struct {
	mock.Mock
}

func (m *MockKVStore) SaveFieldMapping(fieldName, fieldID string) error {
	args := m.Called(fieldName, fieldID)
	return args.Error(0)
}

func (m *MockKVStore) GetFieldMapping(fieldName string) (string, error) {
	args := m.Called(fieldName)
	return args.String(0), args.Error(1)
}

func (m *MockKVStore) SaveFieldOptions(fieldName string, options map[string]string) error {
	args := m.Called(fieldName, options)
	return args.Error(0)
}

func (m *MockKVStore) GetFieldOptions(fieldName string) (map[string]string, error) {
	args := m.Called(fieldName)
	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	return result.(map[string]string), args.Error(1)
}

func (m *MockKVStore) SaveLastSyncTime(t time.Time) error {
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockKVStore) GetLastSyncTime() (time.Time, error) {
	args := m.Called()
	return args.Get(0).(time.Time), args.Error(1)
}

// mockFieldCache is a mock implementation of FieldCache for testing
type mockFieldCache struct {
	mock.Mock
}

func (m *mockFieldCache) GetFieldID(fieldName string) (string, error) {
	args := m.Called(fieldName)
	return args.String(0), args.Error(1)
}

func (m *mockFieldCache) GetOptionID(fieldName, optionName string) (string, error) {
	args := m.Called(fieldName, optionName)
	return args.String(0), args.Error(1)
}

func (m *mockFieldCache) SaveFieldMapping(fieldName, fieldID string) error {
	args := m.Called(fieldName, fieldID)
	return args.Error(0)
}

func (m *mockFieldCache) SaveFieldOptions(fieldName string, options map[string]string) error {
	args := m.Called(fieldName, options)
	return args.Error(0)
}
