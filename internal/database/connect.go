package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"
	"time"

	"github.com/clipfetch/clipfetch/pkg/logger"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	sqldblogger "github.com/simukti/sqldb-logger"
)

const (
	SqlDialect          = "postgres"
	SqlConnectionString = "host=%s user=%s password=%s dbname=%s port=%s sslmode=disable"
)

var (
	//go:embed migrations/*.sql
	migrations embed.FS

	dbLogger = logger.Get("DB")
)

// DatabaseConfig is the subset of configuration focusing solely on
// database connection items. None of it is required; the outcome log
// degrades gracefully when no database is reachable.
type DatabaseConfig struct {
	User     string `yaml:"username" env:"DB_USERNAME" env-default:"clipfetch"`
	Password string `yaml:"password" env:"DB_PASSWORD" env-default:"clipfetch"`
	Name     string `yaml:"name" env:"DB_NAME" env-default:"CLIPFETCH_DB"`
	Host     string `yaml:"host" env:"DB_HOST" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"DB_PORT" env-default:"5432"`
}

type (
	SqlLogger struct {
		logger logger.Logger
	}

	// Queryable is the subset of sqlx behaviour the stores rely on;
	// both *sqlx.DB and *sqlx.Tx satisfy it.
	Queryable interface {
		Select(dest interface{}, query string, args ...interface{}) error
		Exec(query string, args ...interface{}) (sql.Result, error)
	}

	Manager interface {
		Connect(DatabaseConfig) error
		GetSqlxDb() *sqlx.DB
	}

	// manager guards its connection fields with a mutex as Connect may
	// run on a background goroutine while services poll GetSqlxDb.
	manager struct {
		mu    sync.RWMutex
		rawDb *sql.DB
		db    *sqlx.DB
	}
)

func New() Manager {
	return &manager{}
}

func (db *manager) Connect(config DatabaseConfig) error {
	dsn := fmt.Sprintf(SqlConnectionString, config.Host, config.User, config.Password, config.Name, config.Port)
	sqlDb, err := sql.Open(SqlDialect, dsn)
	if err != nil {
		return fmt.Errorf("failed to open postgres connection: %w", err)
	}

	sqlDb = sqldblogger.OpenDriver(dsn, sqlDb.Driver(), &SqlLogger{dbLogger})

	attempt := 1
	for {
		err := sqlDb.Ping()
		if err != nil {
			if attempt >= 5 {
				dbLogger.Emit(logger.ERROR, "All connection attempts FAILED!\n")
				return err
			}

			dbLogger.Emit(logger.WARNING, "Attempt (%v/5) failed... Retrying in 3s\n", attempt)
			attempt++
			time.Sleep(time.Second * 3)
			continue
		}

		break
	}

	// Migrate before publishing the connection so no consumer can
	// observe a connected-but-unmigrated database.
	if err := executeMigrations(sqlDb); err != nil {
		return err
	}

	db.setConnection(sqlDb, sqlx.NewDb(sqlDb, SqlDialect))

	dbLogger.Emit(logger.SUCCESS, "Database connection complete!\n")
	return nil
}

// executeMigrations runs the comp-time embedded SQL migrations (found
// in the 'migrations' dir in this package) against the provided DB
// instance.
func executeMigrations(rawDb *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(dbLogger)
	if err := goose.SetDialect(SqlDialect); err != nil {
		return fmt.Errorf("failed to set dialect for DB migration: %w", err)
	}

	dbLogger.Emit(logger.INFO, "Checking for pending DB migrations...\n")
	if err := goose.Up(rawDb, "migrations"); err != nil {
		return fmt.Errorf("failed to migrate DB: %w", err)
	}

	dbLogger.Emit(logger.SUCCESS, "DB migration complete!\n")
	return nil
}

func (db *manager) setConnection(rawDb *sql.DB, sqlxDb *sqlx.DB) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.rawDb = rawDb
	db.db = sqlxDb
}

// GetSqlxDb returns the sqlx connection if one has been opened using
// 'Connect'. Otherwise, nil is returned. Safe to call while a
// background Connect is in flight.
func (db *manager) GetSqlxDb() *sqlx.DB {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.db
}

func (l *SqlLogger) Log(_ context.Context, level sqldblogger.Level, msg string, data map[string]any) {
	template := "%s - %v\n"
	switch level {
	case sqldblogger.LevelTrace:
		l.logger.Verbosef(template, msg, data)
	case sqldblogger.LevelDebug, sqldblogger.LevelInfo:
		duration := data["duration"]
		query, ok := data["query"]
		if ok {
			l.logger.Verbosef("%s [%.2fms] -- %s\n", msg, duration, query)
		} else {
			l.logger.Verbosef("%s [%.2fms]\n", msg, duration)
		}
	case sqldblogger.LevelError:
		l.logger.Errorf(template, msg, data)
	}
}
