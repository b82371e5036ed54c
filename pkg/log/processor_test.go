package log

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	"github.com/mwantia/fabric/pkg/container"
	config "github.com/mwantia/taskfilter/internal/config/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLogger(t *testing.T) {
	ctx := context.Background()
	sc := container.NewServiceContainer()

	_, err := ResolveLogger(ctx, sc, "http")
	assert.Error(t, err)

	var buf bytes.Buffer
	base := NewWriterLoggerService("taskfilter", config.LogServerConfig{Level: "INFO"}, &buf)
	require.NoError(t, container.Register[LoggerServiceImpl](sc,
		container.With[LoggerService](),
		container.WithInstance(base)))

	l, err := ResolveLogger(ctx, sc, "http")
	require.NoError(t, err)
	l.Info("ready")
	assert.Contains(t, buf.String(), "[taskfilter/http] ready")

	ltp := NewLoggerTagProcessor()
	assert.True(t, ltp.CanProcess("Logger:database"))
	assert.False(t, ltp.CanProcess("inject"))

	injected, err := ltp.Process(ctx, sc, reflect.StructField{Name: "Log"}, "logger:database")
	require.NoError(t, err)
	injected.(LoggerService).Info("migrated")
	assert.Contains(t, buf.String(), "[taskfilter/database] migrated")
}
