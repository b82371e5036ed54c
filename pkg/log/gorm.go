package log

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormLogger forwards gorm statements and errors to a LoggerService.
type GormLogger struct {
	log           LoggerService
	level         logger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger creates a gorm logger. Statements are logged at Debug,
// slow statements at Warn and failures at Error.
func NewGormLogger(log LoggerService, level logger.LogLevel) *GormLogger {
	return &GormLogger{
		log:           log,
		level:         level,
		slowThreshold: 200 * time.Millisecond,
	}
}

func (gl *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *gl
	clone.level = level
	return &clone
}

func (gl *GormLogger) Info(_ context.Context, msg string, args ...any) {
	if gl.level >= logger.Info {
		gl.log.Info(msg, args...)
	}
}

func (gl *GormLogger) Warn(_ context.Context, msg string, args ...any) {
	if gl.level >= logger.Warn {
		gl.log.Warn(msg, args...)
	}
}

func (gl *GormLogger) Error(_ context.Context, msg string, args ...any) {
	if gl.level >= logger.Error {
		gl.log.Error(msg, args...)
	}
}

func (gl *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if gl.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && gl.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		gl.log.Error("%s [%s, %d rows]: %v", sql, elapsed, rows, err)
	case elapsed > gl.slowThreshold && gl.level >= logger.Warn:
		sql, rows := fc()
		gl.log.Warn("Slow query %s [%s, %d rows]", sql, elapsed, rows)
	case gl.level >= logger.Info:
		sql, rows := fc()
		gl.log.Debug("%s [%s, %d rows]", sql, elapsed, rows)
	}
}

var _ logger.Interface = (*GormLogger)(nil)
