package logger

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"checkin-guide/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestNewFileOutput(t *testing.T) {
	l, err := New(config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: filepath.Join(t.TempDir(), "logs", "app.log"),
		MaxSize:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}

func TestDebugOnlyWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := Discard()
	l.SetOutput(&buf)
	l.SetLevel(logrus.InfoLevel)

	l.LogMutation("apartments", "update", "a1", nil)
	assert.Empty(t, buf.String())

	l.LogMutation("apartments", "update", "a1", errors.New("boom"))
	assert.Contains(t, buf.String(), "boom")

	buf.Reset()
	l.SetLevel(logrus.DebugLevel)
	l.LogMutation("apartments", "update", "a1", nil)
	assert.Contains(t, buf.String(), "Mutation applied")
}
