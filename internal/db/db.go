package db

import (
	"context"
	"fmt"
	"time"

	"github.com/vibe-gaming/gatekeeper/internal/config"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// DuplicateEntry is the MySQL error number for unique key violations.
const DuplicateEntry = 1062

func New(cfg config.Database) (*sqlx.DB, error) {
	dbConn, err := sqlx.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("db open failed: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConnections)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConnections)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	if err := dbConn.PingContext(ctx); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("db connection failed: %w", err)
	}

	return dbConn, nil
}

func DSN(cfg config.Database) string {
	location, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		location = time.UTC
	}

	conf := mysql.NewConfig()
	conf.Net = cfg.Net
	conf.Addr = cfg.Server
	conf.User = cfg.User
	conf.Passwd = cfg.Password
	conf.DBName = cfg.DBName
	conf.Timeout = cfg.Timeout
	conf.Loc = location
	conf.ParseTime = true

	return conf.FormatDSN()
}
