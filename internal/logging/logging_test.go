package logging

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLoggerRecordsEntries(t *testing.T) {
	log := &MockLogger{}
	log.Info("processing", Field{Key: FieldFile, Value: "a.pdf"})
	log.Warn("slow page")

	require.Len(t, log.Entries, 2)
	assert.Equal(t, "INFO", log.Entries[0].Level)
	assert.Equal(t, "processing", log.Entries[0].Message)
	require.Len(t, log.Entries[0].Fields, 1)
	assert.Equal(t, FieldFile, log.Entries[0].Fields[0].Key)

	assert.True(t, log.HasMessage("slow page"))
	assert.False(t, log.HasMessage("never logged"))
}

func TestMockLoggerWithError(t *testing.T) {
	log := &MockLogger{}
	err := errors.New("boom")
	derived := log.WithError(err).(*MockLogger)
	derived.Error("extraction failed")

	require.Len(t, derived.Entries, 1)
	assert.Equal(t, err, derived.Entries[0].Error)
}

func TestMockLoggerWithField(t *testing.T) {
	log := &MockLogger{}
	derived := log.WithField(FieldPage, 3).(*MockLogger)
	derived.Debug("parsed page")

	require.Len(t, derived.Entries, 1)
	require.Len(t, derived.Entries[0].Fields, 1)
	assert.Equal(t, FieldPage, derived.Entries[0].Fields[0].Key)
	assert.Equal(t, 3, derived.Entries[0].Fields[0].Value)
}

func TestNewLogrusAdapter(t *testing.T) {
	log := NewLogrusAdapter("debug", "json")
	require.NotNil(t, log)

	// An invalid level falls back to info instead of failing.
	log = NewLogrusAdapter("nonsense", "text")
	require.NotNil(t, log)

	log.Info("smoke", Field{Key: FieldCount, Value: 1})
	log.WithError(errors.New("boom")).Warn("smoke with error")
}

func TestNewLogrusAdapterFromLogger(t *testing.T) {
	base := logrus.New()
	base.SetLevel(logrus.ErrorLevel)

	log := NewLogrusAdapterFromLogger(base)
	require.NotNil(t, log)

	assert.NotNil(t, NewLogrusAdapterFromLogger(nil))
}
