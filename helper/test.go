package helper

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testDBImage    = "postgres:17-alpine"
	testDBName     = "database"
	testDBUser     = "user"
	testDBPassword = "password"
)

// MustStartPostgresContainer starts a PostgreSQL container and returns its
// terminate function and the mapped host port.
func MustStartPostgresContainer() (func(ctx context.Context, opts ...testcontainers.TerminateOption) error, string, error) {
	ctx := context.Background()

	container, err := postgres.Run(
		ctx,
		testDBImage,
		postgres.WithDatabase(testDBName),
		postgres.WithUsername(testDBUser),
		postgres.WithPassword(testDBPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", NewError("start postgres container", err)
	}

	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, "", NewError("mapped port", err)
	}

	return container.Terminate, port.Port(), nil
}

// TestDatabaseConfiguration returns the configuration matching MustStartPostgresContainer.
func TestDatabaseConfiguration(port string) *DatabaseConfiguration {
	return &DatabaseConfiguration{
		Host:     "localhost",
		Port:     port,
		Database: testDBName,
		Username: testDBUser,
		Password: testDBPassword,
		Schema:   "public",
		SSLMode:  "disable",
	}
}

// SetTestDatabaseConfigEnvs sets the database environment for the duration of the test.
func SetTestDatabaseConfigEnvs(t testing.TB, port string) {
	t.Setenv(EnvDBHost, "localhost")
	t.Setenv(EnvDBPort, port)
	t.Setenv(EnvDBDatabase, testDBName)
	t.Setenv(EnvDBUsername, testDBUser)
	t.Setenv(EnvDBPassword, testDBPassword)
	t.Setenv(EnvDBSchema, "public")
	t.Setenv(EnvDBSSLMode, "disable")
}

// BeginRollbackTx begins a transaction that is rolled back when the test
// finishes, so nothing written through it outlives the test.
func BeginRollbackTx(t testing.TB, db *Database) *sql.Tx {
	t.Helper()

	tx, err := db.Instance.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("error beginning test transaction: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Errorf("error rolling back test transaction: %v", err)
		}
	})

	return tx
}
