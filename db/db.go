package db

import (
	"context"
	"database/sql"
	"finance-tracker/logger"
	"fmt"
	"net/url"

	_ "github.com/lib/pq"
)

// Connect opens a Postgres handle for connStr and verifies it with a ping.
func Connect(ctx context.Context, connStr string) (*sql.DB, error) {
	logger.Log.WithField("connection", redact(connStr)).Info("Attempting to connect to the database")

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to open database connection")
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		logger.Log.WithError(err).Error("Failed to ping database")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Log.Info("Database connection established successfully")
	return db, nil
}

// redact strips the password from a URL-style connection string.
func redact(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil || u.User == nil {
		return connStr
	}
	return u.Redacted()
}
