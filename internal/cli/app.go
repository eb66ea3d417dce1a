package cli

import (
	"fmt"

	"github.com/sangkips/fishledger/internal/config"
	"github.com/sangkips/fishledger/internal/infrastructure/database"
	"github.com/sangkips/fishledger/pkg/clock"
	"github.com/sangkips/fishledger/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// loadConfig reads and validates configuration, and builds the logger it selects.
func loadConfig(opts *RootOptions) (*config.Config, *zap.Logger, error) {
	cfg := config.Load()
	if opts.Verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// openDatabase connects and migrates.
func openDatabase(cfg *config.Config, clk clock.Clock, log *zap.Logger) (*gorm.DB, error) {
	db, err := database.Open(&cfg.Database, cfg.App.Debug, clk, log)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func closeDatabase(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("closing database", zap.Error(err))
	}
}

func wrap(step string, err error) error {
	return fmt.Errorf("%s: %w", step, err)
}
