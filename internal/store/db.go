package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultHistoryLimit = 50

// Database wraps the GORM DB handle and exposes repository helpers.
type Database struct {
	gorm   *gorm.DB
	mu     sync.Mutex
	logger *zerolog.Logger
}

// Open initializes the SQLite-backed database at the provided path.
func Open(path string, silent bool, logger *zerolog.Logger) (*Database, error) {
	cfg := &gorm.Config{}
	if silent {
		cfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&Analysis{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
		logger.Warn().Err(err).Msg("enable WAL mode")
	}
	if err := db.Exec("PRAGMA synchronous=NORMAL").Error; err != nil {
		logger.Warn().Err(err).Msg("set synchronous pragma")
	}

	return &Database{gorm: db, logger: logger}, nil
}

// Close closes the underlying database connection.
func (d *Database) Close() error {
	if d == nil {
		return nil
	}
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveAnalysis appends one analysis record.
func (d *Database) SaveAnalysis(a *Analysis) error {
	if a == nil {
		return errors.New("analysis is nil")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Create(a).Error
}

// RecentAnalyses returns the newest records first.
func (d *Database) RecentAnalyses(limit int) ([]Analysis, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultHistoryLimit
	}
	var out []Analysis
	err := d.gorm.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// AnalysesByRequester returns the newest records for one requester.
func (d *Database) AnalysesByRequester(name string, limit int) ([]Analysis, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("requester name is empty")
	}
	if limit <= 0 || limit > 500 {
		limit = defaultHistoryLimit
	}
	var out []Analysis
	err := d.gorm.
		Where("requester_name = ?", name).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
