package helper

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Environment variables read by NewDatabaseConfiguration.
const (
	EnvDBHost     = "SCAFFOLD_DB_HOST"
	EnvDBPort     = "SCAFFOLD_DB_PORT"
	EnvDBDatabase = "SCAFFOLD_DB_DATABASE"
	EnvDBUsername = "SCAFFOLD_DB_USERNAME"
	EnvDBPassword = "SCAFFOLD_DB_PASSWORD"
	EnvDBSchema   = "SCAFFOLD_DB_SCHEMA"
	EnvDBSSLMode  = "SCAFFOLD_DB_SSLMODE"
)

// DatabaseConfiguration holds the connection settings for PostgreSQL.
type DatabaseConfiguration struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	Schema   string
	SSLMode  string
}

// NewDatabaseConfiguration reads the database configuration from the environment.
// A .env file in the working directory is loaded first if present.
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, NewError("load .env", err)
	}

	config := &DatabaseConfiguration{
		Host:     os.Getenv(EnvDBHost),
		Port:     os.Getenv(EnvDBPort),
		Database: os.Getenv(EnvDBDatabase),
		Username: os.Getenv(EnvDBUsername),
		Password: os.Getenv(EnvDBPassword),
		Schema:   os.Getenv(EnvDBSchema),
		SSLMode:  os.Getenv(EnvDBSSLMode),
	}

	if config.Schema == "" {
		config.Schema = "public"
	}
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	if len(config.Host) == 0 || len(config.Port) == 0 || len(config.Database) == 0 || len(config.Username) == 0 {
		return nil, NewError(
			"database configuration validation",
			fmt.Errorf("%s, %s, %s and %s must be set", EnvDBHost, EnvDBPort, EnvDBDatabase, EnvDBUsername),
		)
	}

	return config, nil
}

// ConnectionString returns the lib/pq connection URL for the configuration.
func (c *DatabaseConfiguration) ConnectionString(applicationName string) string {
	query := url.Values{}
	query.Set("sslmode", c.SSLMode)
	query.Set("search_path", c.Schema)
	if applicationName != "" {
		query.Set("application_name", applicationName)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Username, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     c.Database,
		RawQuery: query.Encode(),
	}
	return u.String()
}

// Querier is the subset of *sql.DB and *sql.Tx the handlers run their statements on.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Database wraps a PostgreSQL connection pool.
type Database struct {
	ID       uuid.UUID
	Name     string
	Logger   *slog.Logger
	Instance *sql.DB
}

// NewDatabase opens and pings a connection pool for the given configuration.
// The application name reported to PostgreSQL is the name plus a per instance id.
func NewDatabase(name string, dbConfig *DatabaseConfiguration, logger *slog.Logger) (*Database, error) {
	if dbConfig == nil {
		return nil, NewError("database configuration validation", fmt.Errorf("database configuration is nil"))
	}
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.New()
	applicationName := fmt.Sprintf("%s-%s", name, id.String()[:8])

	instance, err := sql.Open("postgres", dbConfig.ConnectionString(applicationName))
	if err != nil {
		return nil, NewError("open database", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = instance.PingContext(ctx)
	if err != nil {
		instance.Close()
		return nil, NewError("ping database", err)
	}

	logger.Info("Connected to database", slog.String("name", name), slog.String("application_name", applicationName))

	return &Database{
		ID:       id,
		Name:     name,
		Logger:   logger,
		Instance: instance,
	}, nil
}

// NewTestDatabase creates a Database for tests, panicking if the connection fails.
func NewTestDatabase(dbConfig *DatabaseConfiguration) *Database {
	db, err := NewDatabase("test", dbConfig, NewLogger(os.Stdout, slog.LevelInfo))
	if err != nil {
		log.Panicf("error connecting to test database: %v", err)
	}
	return db
}

// Close closes the connection pool.
func (d *Database) Close() error {
	if d == nil || d.Instance == nil {
		return nil
	}
	return d.Instance.Close()
}

// RunInTx runs fn inside a transaction. The transaction is committed if fn
// returns nil and rolled back otherwise, also when fn panics.
// The error returned by fn is passed through unchanged.
func (d *Database) RunInTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.Instance.BeginTx(ctx, nil)
	if err != nil {
		return NewError("begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	err = fn(tx)
	if err != nil {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			d.Logger.Error("Rollback failed", slog.String("error", rollbackErr.Error()))
		}
		return err
	}

	err = tx.Commit()
	if err != nil {
		return NewError("commit transaction", err)
	}

	return nil
}
