package db

import (
	"context"
	"database/sql"

	"github.com/dsmirnovs/authbox/internal/dbx"
	"github.com/dsmirnovs/authbox/internal/server/users"
)

// RepositoryManager owns the store connection and hands out repositories
// bound to either the pooled connection or a transaction handle.
type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users(db dbx.DBTX) users.Repository
	Close() error
}
