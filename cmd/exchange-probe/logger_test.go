package main

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(&Config{LogLevel: "debug"})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	_, err = newLogger(&Config{LogLevel: "loud"})
	assert.Error(t, err)
}

func TestExchangeLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	adapter := exchangeLogger{logger: logger}

	adapter.Debug("GetUser started")
	adapter.Error("Request failed with exception", "path", "/exchange/user", "error", "refused")

	entries := hook.AllEntries()
	require.Len(t, entries, 2)

	assert.Equal(t, logrus.DebugLevel, entries[0].Level)
	assert.Equal(t, "GetUser started", entries[0].Message)
	assert.Empty(t, entries[0].Data)

	assert.Equal(t, logrus.ErrorLevel, entries[1].Level)
	assert.Equal(t, logrus.Fields{"path": "/exchange/user", "error": "refused"}, entries[1].Data)
}

func TestToFields(t *testing.T) {
	assert.Equal(t, logrus.Fields{"code": 500, "dangling": ""}, toFields([]interface{}{"code", 500, "dangling"}))
	assert.Empty(t, toFields(nil))
}
