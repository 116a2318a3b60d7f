package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/talksy/internal/dbx"
	"github.com/dmitrijs2005/talksy/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
