package storage

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// SQLiteFile is the database file name inside the data dir.
const SQLiteFile = "nutritrack.db"

// Record is one row of the kv_records table.
type Record struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}

// TableName pins the table name.
func (Record) TableName() string {
	return "kv_records"
}

// SQLiteKV stores values in a single-table SQLite database.
type SQLiteKV struct {
	database *gorm.DB
	path     string
}

// OpenSQLite opens (or creates) <dir>/nutritrack.db and migrates the schema.
func OpenSQLite(dir string, logOut io.Writer) (*SQLiteKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	if logOut == nil {
		logOut = io.Discard
	}

	dbPath := filepath.Join(dir, SQLiteFile)
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			log.New(logOut, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := database.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	return &SQLiteKV{database: database, path: dbPath}, nil
}

// Path returns the database file.
func (s *SQLiteKV) Path() string {
	return s.path
}

// Load reads the value of key.
func (s *SQLiteKV) Load(key string) ([]byte, error) {
	var rec Record
	if err := s.database.Where(&Record{Key: key}).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec.Value, nil
}

// Save upserts the value of key.
func (s *SQLiteKV) Save(key string, value []byte) error {
	rec := Record{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}

// Close releases the underlying connection pool.
func (s *SQLiteKV) Close() error {
	sqlDB, err := s.database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
