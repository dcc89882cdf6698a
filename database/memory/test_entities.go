package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/siherrmann/scaffold/database"
	"github.com/siherrmann/scaffold/helper"
	"github.com/siherrmann/scaffold/model"
)

var _ database.TestEntitiesDBHandlerFunctions = (*TestEntitiesHandler)(nil)

// TestEntitiesHandler is an in-memory database.TestEntitiesDBHandlerFunctions.
// Stored entities are copies, so callers mutating their values do not change the store.
type TestEntitiesHandler struct {
	mu       sync.RWMutex
	nextID   int64
	entities map[int64]model.TestEntity
}

// NewTestEntitiesHandler creates an empty in-memory handler.
func NewTestEntitiesHandler() *TestEntitiesHandler {
	return &TestEntitiesHandler{
		entities: map[int64]model.TestEntity{},
	}
}

// SaveTestEntity stores a copy of the entity, assigning an id if it has none
// or if its id is not stored.
func (h *TestEntitiesHandler) SaveTestEntity(ctx context.Context, entity *model.TestEntity) (*model.TestEntity, error) {
	if entity == nil {
		return nil, helper.NewError("test entity validation", fmt.Errorf("test entity is nil"))
	}
	if err := ctx.Err(); err != nil {
		return nil, helper.NewError("save test entity", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if entity.ID == nil || !h.exists(*entity.ID) {
		h.nextID++
		id := h.nextID
		entity.ID = &id
	}

	h.entities[*entity.ID] = copyTestEntity(entity)

	return entity, nil
}

// SelectTestEntity returns a copy of the stored entity, or nil if absent.
func (h *TestEntitiesHandler) SelectTestEntity(ctx context.Context, id int64) (*model.TestEntity, error) {
	if err := ctx.Err(); err != nil {
		return nil, helper.NewError("select test entity", err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	entity, ok := h.entities[id]
	if !ok {
		return nil, nil
	}

	c := copyTestEntity(&entity)
	return &c, nil
}

// SelectAllTestEntities returns copies of all stored entities ordered by id.
func (h *TestEntitiesHandler) SelectAllTestEntities(ctx context.Context) ([]*model.TestEntity, error) {
	if err := ctx.Err(); err != nil {
		return nil, helper.NewError("select all test entities", err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	var entities []*model.TestEntity
	for _, entity := range h.entities {
		c := copyTestEntity(&entity)
		entities = append(entities, &c)
	}

	sort.Slice(entities, func(i, j int) bool {
		return *entities[i].ID < *entities[j].ID
	})

	return entities, nil
}

// CountTestEntities returns the number of stored entities.
func (h *TestEntitiesHandler) CountTestEntities(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, helper.NewError("count test entities", err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	return int64(len(h.entities)), nil
}

// DeleteTestEntity removes the entity with the id. Absent ids are ignored.
func (h *TestEntitiesHandler) DeleteTestEntity(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return helper.NewError("delete test entity", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.entities, id)

	return nil
}

func (h *TestEntitiesHandler) exists(id int64) bool {
	_, ok := h.entities[id]
	return ok
}

func copyTestEntity(entity *model.TestEntity) model.TestEntity {
	var c model.TestEntity
	if entity.ID != nil {
		id := *entity.ID
		c.ID = &id
	}
	if entity.Name != nil {
		name := *entity.Name
		c.Name = &name
	}
	return c
}
