package logging

import (
	"errors"
	"testing"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestGetLevel(t *testing.T) {
	testCases := map[string]log.Level{
		"trace":   log.TraceLevel,
		"DEBUG":   log.DebugLevel,
		"warn":    log.WarnLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"fatal":   log.FatalLevel,
		"info":    log.InfoLevel,
		"":        log.InfoLevel,
		"bogus":   log.InfoLevel,
	}
	for in, want := range testCases {
		assert.Equal(t, want, GetLevel(in), in)
	}
}

func TestSentryHook(t *testing.T) {
	hook := NewSentryHook([]log.Level{log.ErrorLevel})
	assert.Equal(t, []log.Level{log.ErrorLevel}, hook.Levels())

	// sentry is not initialized, capture is a no-op
	entry := &log.Entry{
		Level:   log.ErrorLevel,
		Message: "store failure",
		Data:    log.Fields{"err": errors.New("boom"), "key": "userProfile"},
	}
	assert.NoError(t, hook.Fire(entry))
}

func TestSentryLevel(t *testing.T) {
	assert.Equal(t, sentry.LevelFatal, sentryLevel(log.PanicLevel))
	assert.Equal(t, sentry.LevelFatal, sentryLevel(log.FatalLevel))
	assert.Equal(t, sentry.LevelError, sentryLevel(log.ErrorLevel))
	assert.Equal(t, sentry.LevelWarning, sentryLevel(log.WarnLevel))
	assert.Equal(t, sentry.LevelInfo, sentryLevel(log.InfoLevel))
	assert.Equal(t, sentry.LevelDebug, sentryLevel(log.TraceLevel))
}
