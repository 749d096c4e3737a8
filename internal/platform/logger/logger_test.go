package logger_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/srgjo27/carpool_booking/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	log := logger.New("debug", "json")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = logger.New("loud", "text")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}
