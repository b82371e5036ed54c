package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	config "github.com/mwantia/taskfilter/internal/config/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestParse(t *testing.T) {
	assert.Equal(t, Debug, Parse("debug"))
	assert.Equal(t, Warn, Parse(" WARNING "))
	assert.Equal(t, Error, Parse("error"))
	assert.Equal(t, Info, Parse("verbose"))
	assert.Equal(t, "FATAL", Fatal.String())
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLoggerService("agent", config.LogServerConfig{Level: "WARN", TimeFormat: time.RFC3339}, &buf)

	l.Info("hidden")
	l.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN  [agent] shown 1")
}

func TestJSONOutputAndNamed(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLoggerService("agent", config.LogServerConfig{Level: "DEBUG", JSON: true}, &buf)

	l.Named("http").Debug("GET %s", "/api/todo")

	var entry logEntry
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "DEBUG", entry.Level)
	assert.Equal(t, "agent/http", entry.Service)
	assert.Equal(t, "GET /api/todo", entry.Message)
}

func TestGormLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(NewWriterLoggerService("database", config.LogServerConfig{Level: "DEBUG"}, &buf), logger.Error)

	sql := func() (string, int64) { return "SELECT 1", 1 }
	l.Trace(context.Background(), time.Now(), sql, nil)
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now(), sql, errors.New("boom"))
	assert.True(t, strings.Contains(buf.String(), "SELECT 1") && strings.Contains(buf.String(), "boom"))

	buf.Reset()
	l.LogMode(logger.Info).Trace(context.Background(), time.Now(), sql, nil)
	assert.Contains(t, buf.String(), "SELECT 1")
}
