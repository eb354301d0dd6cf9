package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Open connects to Postgres and checks the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return conn, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
    id              UUID PRIMARY KEY,
    name            VARCHAR(50)  NOT NULL,
    email           VARCHAR(255) NOT NULL UNIQUE,
    password_hash   TEXT         NOT NULL,
    profile_picture TEXT         NOT NULL DEFAULT '',
    theme           VARCHAR(10)  NOT NULL DEFAULT 'light',
    created_at      TIMESTAMPTZ  NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ  NOT NULL DEFAULT now()
)`,

	`CREATE TABLE IF NOT EXISTS tasks (
    id           UUID PRIMARY KEY,
    user_id      UUID         NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    title        VARCHAR(100) NOT NULL,
    description  VARCHAR(500) NOT NULL DEFAULT '',
    status       VARCHAR(20)  NOT NULL DEFAULT 'pending'
                 CHECK (status IN ('pending', 'in-progress', 'completed')),
    priority     VARCHAR(10)  NOT NULL DEFAULT 'medium'
                 CHECK (priority IN ('low', 'medium', 'high')),
    due_date     TIMESTAMPTZ,
    tags         TEXT[]       NOT NULL DEFAULT '{}',
    completed_at TIMESTAMPTZ,
    reminded_at  TIMESTAMPTZ,
    created_at   TIMESTAMPTZ  NOT NULL DEFAULT now(),
    updated_at   TIMESTAMPTZ  NOT NULL DEFAULT now(),
    CONSTRAINT tasks_completed_at_chk CHECK ((status = 'completed') = (completed_at IS NOT NULL))
)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_user_created ON tasks (user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_due_unreminded ON tasks (due_date)
    WHERE reminded_at IS NULL AND status <> 'completed'`,

	// related_task_id is a lookup reference only; cascading is done by the service
	`CREATE TABLE IF NOT EXISTS notifications (
    id              UUID PRIMARY KEY,
    user_id         UUID         NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    message         VARCHAR(250) NOT NULL,
    type            VARCHAR(20)  NOT NULL DEFAULT 'info'
                    CHECK (type IN ('task', 'reminder', 'info', 'warning', 'success')),
    read            BOOLEAN      NOT NULL DEFAULT FALSE,
    related_task_id UUID,
    action_url      TEXT,
    created_at      TIMESTAMPTZ  NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ  NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user_created ON notifications (user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_related_task ON notifications (related_task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_read_created ON notifications (created_at) WHERE read`,
}

// Migrate creates the tables and indexes if they do not exist.
func Migrate(ctx context.Context, conn *sql.DB) error {
	for _, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
