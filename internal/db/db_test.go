package db

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vibe-gaming/gatekeeper/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.Database{
		Net:      "tcp",
		Server:   "localhost:3306",
		DBName:   "gatekeeper",
		User:     "root",
		Password: "secret",
		TimeZone: "UTC",
		Timeout:  2 * time.Second,
	})

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "localhost:3306", parsed.Addr)
	assert.Equal(t, "gatekeeper", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Equal(t, "UTC", parsed.Loc.String())
}

func TestDSN_BadTimeZoneFallsBackToUTC(t *testing.T) {
	parsed, err := mysql.ParseDSN(DSN(config.Database{Net: "tcp", Server: "db:3306", TimeZone: "Nowhere/Land"}))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, parsed.Loc)
}
