package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"doctor-portal/config"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Gateway owns the process-wide database handle. It is constructed once at
// start-up and passed to every repository; the handle is only closed on shutdown.
type Gateway struct {
	cfg  config.DBConfig
	log  *logrus.Logger
	open func(dsn string) (*gorm.DB, error)

	mu sync.Mutex
	db *gorm.DB
}

func NewGateway(cfg config.DBConfig, log *logrus.Logger) *Gateway {
	return &Gateway{
		cfg:  cfg,
		log:  log,
		open: openPostgres,
	}
}

// DSN renders the libpq connection string for cfg.
func DSN(cfg config.DBConfig) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode, cfg.TimeZone,
	)
}

// Connect opens and pings the database on first use and returns the same
// handle on every later call. A failed attempt is not remembered, so the next
// call tries again.
func (g *Gateway) Connect(ctx context.Context) (*gorm.DB, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db != nil {
		return g.db, nil
	}

	db, err := g.open(DSN(g.cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	g.log.Info("Successfully connected to PostgreSQL database")
	g.db = db
	return db, nil
}

// Close releases the handle. Only the shutdown path calls it.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	g.db = nil
	return sqlDB.Close()
}

func openPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Warn),
		SkipDefaultTransaction: true,
	})
}
