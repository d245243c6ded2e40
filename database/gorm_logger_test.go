package database

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestGormLoggerTrace(t *testing.T) {
	ctx := context.Background()
	query := func() (string, int64) { return "SELECT * FROM users", 1 }

	var buf bytes.Buffer
	l := NewGormLogger(zerolog.New(&buf).Level(zerolog.DebugLevel), logger.Error)

	l.Trace(ctx, time.Now(), query, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(ctx, time.Now(), query, nil)
	assert.Empty(t, buf.String(), "successful queries stay quiet at error level")

	l.Trace(ctx, time.Now(), query, errors.New("connection reset"))
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"sql":"SELECT * FROM users"`)
	assert.Contains(t, buf.String(), "connection reset")
	assert.Contains(t, buf.String(), `"component":"gorm"`)

	buf.Reset()
	verbose := l.LogMode(logger.Info)
	verbose.Trace(ctx, time.Now(), query, nil)
	assert.Contains(t, buf.String(), `"level":"debug"`)

	buf.Reset()
	verbose.Trace(ctx, time.Now().Add(-time.Second), query, nil)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "slow query")

	buf.Reset()
	l.LogMode(logger.Silent).Trace(ctx, time.Now(), query, errors.New("boom"))
	assert.Empty(t, buf.String())
}
