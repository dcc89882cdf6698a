package scaffold

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/siherrmann/scaffold/core/service"
	"github.com/siherrmann/scaffold/database"
	"github.com/siherrmann/scaffold/helper"
)

// Scaffold wires the database, the test entity handler and the test service.
type Scaffold struct {
	DB           *helper.Database
	TestEntities *database.TestEntitiesDBHandler
	Service      *service.TestService
	// Logging
	log *slog.Logger
}

// NewScaffold connects to the configured database, loads the SQL functions
// and creates the service on top of the test entities handler.
func NewScaffold(config *helper.DatabaseConfiguration) (*Scaffold, error) {
	logger := helper.NewLogger(os.Stdout, slog.LevelInfo)

	db, err := helper.NewDatabase("scaffold", config, logger)
	if err != nil {
		return nil, helper.NewError("create database", err)
	}

	// force=false to not reload if functions already exist
	testEntities, err := database.NewTestEntitiesDBHandler(db, false)
	if err != nil {
		db.Close()
		return nil, helper.NewError("create test entities handler", err)
	}

	return &Scaffold{
		DB:           db,
		TestEntities: testEntities,
		Service:      service.NewTestService(testEntities, logger),
		log:          logger,
	}, nil
}

// Close closes the database connection
func (s *Scaffold) Close() error {
	return s.DB.Close()
}

// InTransaction runs fn with a service bound to a new transaction.
// The transaction is committed if fn returns nil and rolled back otherwise.
// The error of fn is returned unchanged.
func (s *Scaffold) InTransaction(ctx context.Context, fn func(svc *service.TestService) error) error {
	return s.DB.RunInTx(ctx, func(tx *sql.Tx) error {
		return fn(service.NewTestService(s.TestEntities.WithTx(tx), s.log))
	})
}
