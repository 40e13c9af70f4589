package config

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

// PostgresSQLXConfig creates a sqlx.DB connection pool for the example database.
func PostgresSQLXConfig() *sqlx.DB {
	const defaultMaxOpenConns = 8
	const defaultMaxIdleConns = 2
	const defaultConnMaxLifetime = time.Hour
	const defaultConnMaxIdleTime = time.Minute * 5
	const defaultPingTimeout = time.Second * 5

	db, err := sqlx.Open("postgres", PostgresDSN())
	if err != nil {
		log.Fatal("Failed to open the database, error: ", err)
	}

	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), defaultPingTimeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping the database, error: ", err)
	}

	return db
}
