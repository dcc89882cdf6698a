package sql

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func functionExists(t *testing.T, db *sql.DB, name string) bool {
	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", name).Scan(&exists)
	require.NoError(t, err)
	return exists
}

func TestLoadTestEntitiesSql(t *testing.T) {
	db := initDB(t)

	t.Run("Load test entities SQL functions", func(t *testing.T) {
		err := LoadTestEntitiesSql(db.Instance, false)
		assert.NoError(t, err)

		for _, funcName := range TestEntitiesFunctions {
			assert.True(t, functionExists(t, db.Instance, funcName), "Function %s should exist", funcName)
		}
	})

	t.Run("Load test entities SQL is idempotent without force", func(t *testing.T) {
		err := LoadTestEntitiesSql(db.Instance, false)
		assert.NoError(t, err)
	})

	t.Run("Load test entities SQL with force reloads", func(t *testing.T) {
		err := LoadTestEntitiesSql(db.Instance, true)
		assert.NoError(t, err)

		for _, funcName := range TestEntitiesFunctions {
			assert.True(t, functionExists(t, db.Instance, funcName), "Function %s should exist after force reload", funcName)
		}
	})

	t.Run("Init function creates the table", func(t *testing.T) {
		_, err := db.Instance.Exec(`SELECT init_test_entities();`)
		require.NoError(t, err)

		var exists bool
		err = db.Instance.QueryRow(`SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_name = 'test_entities');`).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "test_entities table should exist")

		_, err = db.Instance.Exec(`SELECT init_test_entities();`)
		assert.NoError(t, err, "Expected init to be idempotent")
	})

	t.Run("Save function updates existing and inserts missing ids", func(t *testing.T) {
		_, err := db.Instance.Exec(`SELECT init_test_entities();`)
		require.NoError(t, err)

		var id int64
		var name string
		err = db.Instance.QueryRow(`SELECT * FROM save_test_entity(NULL, 'inserted')`).Scan(&id, &name)
		require.NoError(t, err)
		assert.Equal(t, "inserted", name)

		var updatedID int64
		err = db.Instance.QueryRow(`SELECT * FROM save_test_entity($1, 'updated')`, id).Scan(&updatedID, &name)
		require.NoError(t, err)
		assert.Equal(t, id, updatedID, "Expected update to keep the id")
		assert.Equal(t, "updated", name)

		var newID int64
		err = db.Instance.QueryRow(`SELECT * FROM save_test_entity($1, 'fresh')`, id+1000000).Scan(&newID, &name)
		require.NoError(t, err)
		assert.NotEqual(t, id+1000000, newID, "Expected missing id to get a generated id")

		_, err = db.Instance.Exec(`SELECT delete_test_entity($1)`, id)
		assert.NoError(t, err)
		_, err = db.Instance.Exec(`SELECT delete_test_entity($1)`, newID)
		assert.NoError(t, err)
	})
}
