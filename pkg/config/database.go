package config

import (
	"context"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	connectTimeout = 10 * time.Second

	// Each in-memory connection is a separate database, so the pool is pinned to one
	memoryDSN = ":memory:?_pragma=foreign_keys(1)"
)

// DB holds the database connections. SQL is PostgreSQL or an in-memory SQLite
// depending on STORAGE, and Mongo is nil when MONGO_URI is not set.
type DB struct {
	SQL   *gorm.DB
	Mongo *mongo.Client
	log   *zap.Logger
}

// InitDB opens the connections the configuration asks for
func InitDB(cfg *Config, log *zap.Logger) (*DB, error) {
	db := &DB{log: log}

	switch cfg.Storage {
	case StoragePostgres:
		pg, err := initPostgres(cfg.PostgresConnStr, gormLogLevel(cfg))
		if err != nil {
			return nil, errors.Wrap(err, "failed to connect to PostgreSQL")
		}
		db.SQL = pg
		log.Info("connected to PostgreSQL")
	case StorageMemory:
		mem, err := initSQLite(memoryDSN, gormLogLevel(cfg))
		if err != nil {
			return nil, errors.Wrap(err, "failed to open in-memory SQLite")
		}
		db.SQL = mem
		log.Info("opened in-memory SQLite")
	}

	if cfg.MongoURI != "" {
		client, err := initMongo(cfg.MongoURI)
		if err != nil {
			db.CloseDB()
			return nil, errors.Wrap(err, "failed to connect to MongoDB")
		}
		db.Mongo = client
		log.Info("connected to MongoDB", zap.String("database", cfg.MongoDatabase))
	}

	return db, nil
}

func gormLogLevel(cfg *Config) gormlogger.LogLevel {
	switch {
	case cfg.Storage == StorageMemory:
		return gormlogger.Silent
	case cfg.IsProduction():
		return gormlogger.Warn
	default:
		return gormlogger.Info
	}
}

// initPostgres opens gorm with driver errors translated to gorm.ErrDuplicatedKey
// and gorm.ErrForeignKeyViolated
func initPostgres(connStr string, level gormlogger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err = sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// initSQLite opens a pure Go SQLite with foreign keys enforced. Timestamps are
// written in UTC so that created_at sorts as text.
func initSQLite(dsn string, level gormlogger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)
	return db, nil
}

func initMongo(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db.SQL != nil {
		if sqlDB, err := db.SQL.DB(); err != nil {
			db.log.Error("get sql.DB from gorm", zap.Error(err))
		} else if err := sqlDB.Close(); err != nil {
			db.log.Error("close SQL database", zap.Error(err))
		} else {
			db.log.Info("SQL database connection closed")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			db.log.Error("close MongoDB", zap.Error(err))
		} else {
			db.log.Info("MongoDB connection closed")
		}
	}
}
