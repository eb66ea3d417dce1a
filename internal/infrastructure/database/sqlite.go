package database

import (
	"fmt"
	"strings"

	"github.com/sangkips/fishledger/internal/config"
	"github.com/sangkips/fishledger/pkg/clock"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/migrator"
	"gorm.io/gorm/schema"
)

// decimalTextDialector is the SQLite dialector with numeric columns declared
// as text. A numeric column in SQLite converts fractional input to REAL and
// keeps about 15 significant digits; text keeps the decimal exactly.
// Repositories cast such columns back to numbers to compare or sort them.
type decimalTextDialector struct {
	*sqlite.Dialector
}

func (d decimalTextDialector) DataTypeOf(field *schema.Field) string {
	if strings.EqualFold(string(field.DataType), "numeric") {
		return "text"
	}
	return d.Dialector.DataTypeOf(field)
}

func (d decimalTextDialector) Migrator(db *gorm.DB) gorm.Migrator {
	return sqlite.Migrator{Migrator: migrator.Migrator{Config: migrator.Config{
		DB:                          db,
		Dialector:                   d,
		CreateIndexAfterCreateTable: true,
	}}}
}

// NewSQLiteDB opens a SQLite database at path. SQLite allows one writer at a
// time, so the pool is limited to a single connection.
func NewSQLiteDB(path string, debug bool, clk clock.Clock, log *zap.Logger) (*gorm.DB, error) {
	dialector := decimalTextDialector{Dialector: &sqlite.Dialector{DSN: path}}
	db, err := gorm.Open(dialector, gormConfig(debug, clk))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	log.Info("connected to database", zap.String("driver", config.DriverSQLite), zap.String("path", path))
	return db, nil
}
