// Package database owns the PostgreSQL connection pool shared by all
// repositories. It uses pgx through its database/sql driver so the same
// *sql.Tx can be handed to Watermill's SQL publisher for outbox writes.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tocampus/governance/pkg/logger"
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Database wraps a *sql.DB opened with the pgx driver.
type Database struct {
	db  *sql.DB
	log logger.Logger
}

// NewPool opens the pool and verifies connectivity before returning.
func NewPool(ctx context.Context, url string, log logger.Logger) (*Database, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}
	return New(db, log), nil
}

// New wraps an already opened *sql.DB.
func New(db *sql.DB, log logger.Logger) *Database {
	return &Database{db: db, log: log}
}

// DB returns the underlying pool for non-transactional queries.
func (d *Database) DB() *sql.DB {
	return d.db
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise, including when fn panics.
func (d *Database) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("database: begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				d.log.ErrorContext(ctx, "database: rollback failed", "error", rbErr)
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("database: commit: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (d *Database) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}
	return nil
}

// Close closes the pool.
func (d *Database) Close() {
	if err := d.db.Close(); err != nil {
		d.log.Error("database: close failed", "error", err)
	}
}
