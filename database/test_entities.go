package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/siherrmann/scaffold/helper"
	"github.com/siherrmann/scaffold/model"
	loadSql "github.com/siherrmann/scaffold/sql"
)

// TestEntitiesDBHandlerFunctions defines the interface for test entity persistence.
// Implementations assign ids on first save, return nil without error from
// SelectTestEntity for absent ids and treat deleting an absent id as a no-op.
type TestEntitiesDBHandlerFunctions interface {
	SaveTestEntity(ctx context.Context, entity *model.TestEntity) (*model.TestEntity, error)
	SelectTestEntity(ctx context.Context, id int64) (*model.TestEntity, error)
	SelectAllTestEntities(ctx context.Context) ([]*model.TestEntity, error)
	CountTestEntities(ctx context.Context) (int64, error)
	DeleteTestEntity(ctx context.Context, id int64) error
}

// TestEntitiesDBHandler handles test entity related database operations
type TestEntitiesDBHandler struct {
	db      *helper.Database
	querier helper.Querier
}

// NewTestEntitiesDBHandler creates a new test entities database handler.
// It loads the test entity SQL functions and creates the table.
// If force is true, it will reload the SQL functions even if they already exist.
func NewTestEntitiesDBHandler(db *helper.Database, force bool) (*TestEntitiesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	testEntitiesDbHandler := &TestEntitiesDBHandler{
		db:      db,
		querier: db.Instance,
	}

	err := loadSql.LoadTestEntitiesSql(testEntitiesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load test entities sql", err)
	}

	err = testEntitiesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized TestEntitiesDBHandler")

	return testEntitiesDbHandler, nil
}

// CreateTable creates the 'test_entities' table if it does not exist yet.
func (h *TestEntitiesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_test_entities();`)
	if err != nil {
		return helper.NewError("init test entities", err)
	}

	h.db.Logger.Info("Checked/created table test_entities")

	return nil
}

// WithQuerier returns a handler sharing the database but running its
// statements on q, typically a *sql.Tx owned by the caller.
func (h *TestEntitiesDBHandler) WithQuerier(q helper.Querier) *TestEntitiesDBHandler {
	return &TestEntitiesDBHandler{
		db:      h.db,
		querier: q,
	}
}

// WithTx returns a handler bound to tx.
func (h *TestEntitiesDBHandler) WithTx(tx *sql.Tx) *TestEntitiesDBHandler {
	return h.WithQuerier(tx)
}

// SaveTestEntity inserts the entity, or updates it if its id exists.
// The stored id and name are written back into entity, which is returned.
func (h *TestEntitiesDBHandler) SaveTestEntity(ctx context.Context, entity *model.TestEntity) (*model.TestEntity, error) {
	if entity == nil {
		return nil, helper.NewError("test entity validation", fmt.Errorf("test entity is nil"))
	}

	row := h.querier.QueryRowContext(
		ctx,
		`SELECT * FROM save_test_entity($1, $2)`,
		entity.ID,
		entity.Name,
	)

	err := row.Scan(
		&entity.ID,
		&entity.Name,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return entity, nil
}

// SelectTestEntity retrieves a test entity by id.
// It returns nil without an error if no entity has the id.
func (h *TestEntitiesDBHandler) SelectTestEntity(ctx context.Context, id int64) (*model.TestEntity, error) {
	entity := &model.TestEntity{}
	row := h.querier.QueryRowContext(
		ctx,
		`SELECT * FROM select_test_entity($1)`,
		id,
	)

	err := row.Scan(
		&entity.ID,
		&entity.Name,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return entity, nil
}

// SelectAllTestEntities retrieves all test entities ordered by id.
func (h *TestEntitiesDBHandler) SelectAllTestEntities(ctx context.Context) ([]*model.TestEntity, error) {
	rows, err := h.querier.QueryContext(
		ctx,
		`SELECT * FROM select_all_test_entities()`,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var entities []*model.TestEntity
	for rows.Next() {
		entity := &model.TestEntity{}
		err := rows.Scan(
			&entity.ID,
			&entity.Name,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		entities = append(entities, entity)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return entities, nil
}

// CountTestEntities returns the number of stored test entities.
func (h *TestEntitiesDBHandler) CountTestEntities(ctx context.Context) (int64, error) {
	var count int64
	err := h.querier.QueryRowContext(
		ctx,
		`SELECT count_test_entities()`,
	).Scan(&count)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}
	return count, nil
}

// DeleteTestEntity deletes a test entity by id. Absent ids are ignored.
func (h *TestEntitiesDBHandler) DeleteTestEntity(ctx context.Context, id int64) error {
	_, err := h.querier.ExecContext(
		ctx,
		`SELECT delete_test_entity($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}
