package db

import (
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PoolSettings bounds the underlying sql.DB connection pool.
type PoolSettings struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Open connects to Postgres when DATABASE_URL is set, otherwise falls back to
// an embedded sqlite file (BINGO_DB_PATH, default bingo.db) for local play.
func Open(pool PoolSettings) (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		return open(postgres.Open(dsn), pool, false)
	}
	path := os.Getenv("BINGO_DB_PATH")
	if path == "" {
		path = "bingo.db"
	}
	return open(sqlite.Open(path), pool, true)
}

// OpenSQLite opens a standalone sqlite database at path. Used by tests with
// ":memory:"; writes serialize through a single pooled connection.
func OpenSQLite(path string) (*gorm.DB, error) {
	return open(sqlite.Open(path), PoolSettings{MaxOpenConns: 1, MaxIdleConns: 1}, true)
}

func open(dialector gorm.Dialector, pool PoolSettings, isSQLite bool) (*gorm.DB, error) {
	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	if isSQLite {
		// sqlite tolerates one writer; a single connection turns gorm
		// transactions into strictly serialized units.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		if pool.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
		}
		if pool.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
		}
		if pool.ConnMaxLifetime > 0 {
			sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
		}
		if pool.ConnMaxIdleTime > 0 {
			sqlDB.SetConnMaxIdleTime(pool.ConnMaxIdleTime)
		}
	}
	if isSQLite {
		if err := Migrate(conn); err != nil {
			return nil, err
		}
	}
	return conn, nil
}

// Migrate runs GORM auto-migrations for the core tables. The Postgres path is
// migrated with SQL files under db/migrations instead (cmd/migrate).
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&Game{},
		&Prompt{},
		&Player{},
		&Mark{},
		&Event{},
	)
}
