// Package database opens the relational store, migrates the schema and holds
// the read queries shared by the services.
package database

import (
	"errors"
	"log"

	"github.com/kitchenhub/recipe-service/config"
	"github.com/kitchenhub/recipe-service/database/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	db     *gorm.DB
	dbType config.DatabaseType
)

func initModels() error {
	models := []any{
		&model.User{},
		&model.Recipe{},
		&model.Hashtag{},
		&model.RecipeHashtag{},
		&model.Like{},
	}
	// Migrated together so gorm orders tables by their foreign keys.
	if err := db.AutoMigrate(models...); err != nil {
		log.Printf("Error auto migrating models: %v", err)
		return err
	}
	return nil
}

// InitDB opens the configured database and migrates the schema.
func InitDB(c *config.DatabaseConfig) error {
	if err := c.ValidateConfig(); err != nil {
		return err
	}
	if err := c.EnsureDirectoryExists(); err != nil {
		return err
	}

	var gormLogger logger.Interface
	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	gc := &gorm.Config{
		Logger:         gormLogger,
		PrepareStmt:    true,
		TranslateError: true,
	}

	var dialector gorm.Dialector
	if c.IsPostgreSQL() {
		dialector = postgres.Open(c.GetDSN())
	} else {
		dialector = sqlite.Open(c.GetDSN())
	}

	var err error
	db, err = gorm.Open(dialector, gc)
	if err != nil {
		return err
	}
	dbType = c.Type

	if c.IsSQLite() {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if _, err = sqlDB.Exec("PRAGMA cache_size = -64000;"); err != nil {
			return err
		}
		if _, err = sqlDB.Exec("PRAGMA temp_store = MEMORY;"); err != nil {
			return err
		}
	}

	return initModels()
}

func CloseDB() error {
	if db == nil {
		return nil
	}
	if IsSQLite() {
		if err := Checkpoint(); err != nil {
			log.Printf("error executing checkpoint: %v", err)
		}
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	err = sqlDB.Close()
	db = nil
	return err
}

func GetDB() *gorm.DB {
	return db
}

func IsSQLite() bool {
	return dbType == config.DatabaseTypeSQLite
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports a unique constraint violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsForeignKeyViolation reports a write referencing a missing row.
func IsForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}

// Checkpoint flushes the SQLite write-ahead log into the main database file.
func Checkpoint() error {
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
