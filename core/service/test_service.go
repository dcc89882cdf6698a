package service

import (
	"context"
	"log/slog"

	"github.com/siherrmann/scaffold/database"
	"github.com/siherrmann/scaffold/model"
)

// TestService exposes the test entity lifecycle on top of a repository.
// It does not open transactions; bind the repository to one to get a scope.
type TestService struct {
	repo database.TestEntitiesDBHandlerFunctions
	log  *slog.Logger
}

// NewTestService creates a new test service
func NewTestService(repo database.TestEntitiesDBHandlerFunctions, logger *slog.Logger) *TestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TestService{
		repo: repo,
		log:  logger,
	}
}

// GetFalse always returns false.
func (s *TestService) GetFalse() bool {
	return false
}

// Save persists the entity and returns it with its id set.
func (s *TestService) Save(ctx context.Context, entity *model.TestEntity) (*model.TestEntity, error) {
	return s.repo.SaveTestEntity(ctx, entity)
}

// FindByID returns the entity with the id, or nil if there is none.
func (s *TestService) FindByID(ctx context.Context, id int64) (*model.TestEntity, error) {
	return s.repo.SelectTestEntity(ctx, id)
}

// DeleteByID deletes the entity with the id. Deleting an absent id is a no-op.
func (s *TestService) DeleteByID(ctx context.Context, id int64) error {
	return s.repo.DeleteTestEntity(ctx, id)
}

// FindAll returns all entities ordered by id.
func (s *TestService) FindAll(ctx context.Context) ([]*model.TestEntity, error) {
	return s.repo.SelectAllTestEntities(ctx)
}

// Count returns the number of stored entities.
func (s *TestService) Count(ctx context.Context) (int64, error) {
	return s.repo.CountTestEntities(ctx)
}

func (s *TestService) HelloWorld() {
	s.log.Info("Hello World")
}
