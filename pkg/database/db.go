package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultTable is the roster table name used when none is configured
const DefaultTable = "engineers"

// Engineer represents a row of the roster table.
// ID is the insertion sequence and fixes roster order.
type Engineer struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	EngineerID string    `gorm:"uniqueIndex;not null" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

// LookupUsage represents the lookup_usages table: one row per day
type LookupUsage struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Date           string `gorm:"uniqueIndex;not null" json:"date"`
	RequestCount   int    `gorm:"default:0" json:"request_count"`
	TotalEngineers int    `gorm:"default:0" json:"total_engineers"`
}

// Options selects the database to connect to
type Options struct {
	// DatabaseURL is a Postgres DSN. When empty SQLite is used.
	DatabaseURL string
	// DataPath is the SQLite file path
	DataPath string
	// Silent disables gorm's SQL logging
	Silent bool
}

// InitDB opens the database connection and migrates the usage schema.
// The roster table is migrated by NewStore since its name is configurable.
func InitDB(opts Options) (*gorm.DB, error) {
	gormCfg := &gorm.Config{TranslateError: true}
	if opts.Silent {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	var dialector gorm.Dialector
	if opts.DatabaseURL != "" {
		dialector = postgres.New(postgres.Config{
			DSN:                  opts.DatabaseURL,
			PreferSimpleProtocol: true,
		})
		gormCfg.PrepareStmt = false
	} else {
		dbPath := opts.DataPath
		if dbPath == "" {
			dbPath = "engineers.db"
		}
		dialector = sqlite.Open(dbPath)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(&LookupUsage{}); err != nil {
		return nil, fmt.Errorf("failed to migrate usage table: %w", err)
	}

	return db, nil
}
