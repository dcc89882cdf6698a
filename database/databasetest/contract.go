// Package databasetest holds checks shared by the test entity handler implementations.
package databasetest

import (
	"context"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/siherrmann/scaffold/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEntitiesHandler mirrors database.TestEntitiesDBHandlerFunctions so the
// database package itself can use these checks.
type TestEntitiesHandler interface {
	SaveTestEntity(ctx context.Context, entity *model.TestEntity) (*model.TestEntity, error)
	SelectTestEntity(ctx context.Context, id int64) (*model.TestEntity, error)
	SelectAllTestEntities(ctx context.Context) ([]*model.TestEntity, error)
	CountTestEntities(ctx context.Context) (int64, error)
	DeleteTestEntity(ctx context.Context, id int64) error
}

// RunTestEntitiesHandlerContract checks the behaviour every test entity
// handler implementation has to provide.
// newHandler must return an empty handler for each call.
func RunTestEntitiesHandlerContract(t *testing.T, newHandler func(t *testing.T) TestEntitiesHandler) {
	ctx := context.Background()

	t.Run("Save assigns an id and keeps the name", func(t *testing.T) {
		handler := newHandler(t)
		entity := model.NewTestEntity().ChangeName("TESTING")

		saved, err := handler.SaveTestEntity(ctx, entity)
		require.NoError(t, err, "Expected SaveTestEntity to not return an error")
		require.NotNil(t, saved)
		assert.Same(t, entity, saved, "Expected SaveTestEntity to return the given entity")
		require.NotNil(t, saved.ID, "Expected saved entity to have an id")
		assert.Equal(t, "TESTING", saved.GetName())
	})

	t.Run("Save without name stores a null name", func(t *testing.T) {
		handler := newHandler(t)

		saved, err := handler.SaveTestEntity(ctx, model.NewTestEntity())
		require.NoError(t, err)
		require.NotNil(t, saved.ID)
		assert.Nil(t, saved.Name, "Expected name to stay unset")

		found, err := handler.SelectTestEntity(ctx, saved.GetID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Nil(t, found.Name, "Expected stored name to be null")
		assert.True(t, saved.Equal(found))
	})

	t.Run("Save nil entity returns an error", func(t *testing.T) {
		handler := newHandler(t)

		saved, err := handler.SaveTestEntity(ctx, nil)
		assert.Error(t, err)
		assert.Nil(t, saved)
	})

	t.Run("Save of a saved entity updates it in place", func(t *testing.T) {
		handler := newHandler(t)
		entity, err := handler.SaveTestEntity(ctx, model.NewTestEntity().ChangeName("before"))
		require.NoError(t, err)
		id := entity.GetID()

		_, err = handler.SaveTestEntity(ctx, entity.ChangeName("after"))
		require.NoError(t, err)
		assert.Equal(t, id, entity.GetID(), "Expected id to never be reassigned")

		found, err := handler.SelectTestEntity(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "after", found.GetName())

		count, err := handler.CountTestEntities(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count, "Expected update to not create a new row")
	})

	t.Run("Save with unknown id inserts a new entity", func(t *testing.T) {
		handler := newHandler(t)
		unknown := int64(987654321)
		entity := &model.TestEntity{ID: &unknown}
		entity.ChangeName("detached")

		saved, err := handler.SaveTestEntity(ctx, entity)
		require.NoError(t, err)
		require.NotNil(t, saved.ID)
		assert.NotEqual(t, unknown, saved.GetID(), "Expected a generated id")

		found, err := handler.SelectTestEntity(ctx, saved.GetID())
		require.NoError(t, err)
		assert.True(t, saved.Equal(found))
	})

	t.Run("Select returns an equal entity", func(t *testing.T) {
		handler := newHandler(t)
		saved, err := handler.SaveTestEntity(ctx, model.NewTestEntity().ChangeName(uuid.NewString()))
		require.NoError(t, err)

		found, err := handler.SelectTestEntity(ctx, saved.GetID())
		require.NoError(t, err, "Expected SelectTestEntity to not return an error")
		require.NotNil(t, found, "Expected SelectTestEntity to find the entity")
		assert.NotSame(t, saved, found)
		assert.True(t, saved.Equal(found), "Expected found entity to equal the saved one")
	})

	t.Run("Select of an absent id returns nil without error", func(t *testing.T) {
		handler := newHandler(t)

		found, err := handler.SelectTestEntity(ctx, 123456789)
		assert.NoError(t, err, "Expected not found to not be an error")
		assert.Nil(t, found)
	})

	t.Run("Select all returns every entity ordered by id", func(t *testing.T) {
		handler := newHandler(t)
		var saved []*model.TestEntity
		for i := 0; i < 10; i++ {
			entity, err := handler.SaveTestEntity(ctx, model.NewTestEntity().ChangeName(strconv.Itoa(i)))
			require.NoError(t, err)
			saved = append(saved, entity)
		}

		all, err := handler.SelectAllTestEntities(ctx)
		require.NoError(t, err)
		require.Len(t, all, len(saved))
		for i := range saved {
			assert.True(t, saved[i].Equal(all[i]), "Expected entity %d to match", i)
		}

		count, err := handler.CountTestEntities(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(len(saved)), count)
	})

	t.Run("Delete removes the entity", func(t *testing.T) {
		handler := newHandler(t)
		saved, err := handler.SaveTestEntity(ctx, model.NewTestEntity().ChangeName("To Delete"))
		require.NoError(t, err)

		err = handler.DeleteTestEntity(ctx, saved.GetID())
		assert.NoError(t, err, "Expected DeleteTestEntity to not return an error")

		found, err := handler.SelectTestEntity(ctx, saved.GetID())
		assert.NoError(t, err)
		assert.Nil(t, found, "Expected deleted entity to be gone")
		assert.Equal(t, "To Delete", saved.GetName(), "Expected in-memory value to stay valid")
	})

	t.Run("Delete of an absent id is a no-op", func(t *testing.T) {
		handler := newHandler(t)

		err := handler.DeleteTestEntity(ctx, 123456789)
		assert.NoError(t, err)

		err = handler.DeleteTestEntity(ctx, 123456789)
		assert.NoError(t, err, "Expected delete to be idempotent")
	})
}
