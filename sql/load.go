package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed test_entities.sql
var testEntitiesSQL string

// TestEntitiesFunctions lists the functions test_entities.sql must create.
var TestEntitiesFunctions = []string{
	"init_test_entities",
	"save_test_entity",
	"select_test_entity",
	"select_all_test_entities",
	"count_test_entities",
	"delete_test_entity",
}

// LoadTestEntitiesSql loads the test entity SQL functions.
// Without force nothing is executed if all functions already exist.
func LoadTestEntitiesSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, TestEntitiesFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing test entities functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(testEntitiesSQL)
	if err != nil {
		return fmt.Errorf("error executing test entities SQL: %w", err)
	}

	exist, err := checkFunctions(db, TestEntitiesFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL test entities functions loaded successfully")
	return nil
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
