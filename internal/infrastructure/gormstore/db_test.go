package gormstore

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPoolHonoursOptions(t *testing.T) {
	conn, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ApplyPool(conn, PoolOptions{MaxOpenConns: 25, ConnMaxLifetime: time.Hour})
	assert.Equal(t, 25, conn.Stats().MaxOpenConnections)
}

func TestApplyPoolDefaults(t *testing.T) {
	conn, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ApplyPool(conn, PoolOptions{})
	assert.Equal(t, defaultMaxOpenConns, conn.Stats().MaxOpenConnections)
}
