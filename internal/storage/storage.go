package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/storage/inventory"
	"github.com/carson-networks/ledger-server/internal/storage/pettycash"
)

type Storage struct {
	DB     *sql.DB
	exec   bob.DB
	logger logrus.FieldLogger

	// PettyCash and Inventory run outside any transaction. Imports use them
	// so that every row commits on its own.
	PettyCash *pettycash.Writer
	Inventory *inventory.Writer
}

func NewStorage(env *config.Config, logger logrus.FieldLogger) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresURL())
	if err != nil {
		return nil, err
	}

	exec := bob.NewDB(db)
	return &Storage{
		DB:        db,
		exec:      exec,
		logger:    logger,
		PettyCash: pettycash.NewWriter(exec, logger),
		Inventory: inventory.NewWriter(exec),
	}, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// Read returns readers on the shared connection pool.
func (s *Storage) Read() *Reader {
	return NewReader(s.exec, s.logger)
}

// Write starts a database transaction. The caller must Commit or Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.exec.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx, s.logger), nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
