package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// slotRow is one row of the kv_slots table.
type slotRow struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (slotRow) TableName() string { return "kv_slots" }

// SQLiteKV stores slots as rows of a SQLite table.
type SQLiteKV struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the database at path. Use ":memory:" for a
// throwaway store.
func OpenSQLite(path string, log *zap.Logger) (*SQLiteKV, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: &gormLogger{log: log, level: logger.Warn},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.AutoMigrate(&slotRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv_slots: %w", err)
	}
	return &SQLiteKV{db: db}, nil
}

func (s *SQLiteKV) Get(ctx context.Context, key string) ([]byte, error) {
	var row slotRow
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return []byte(row.Value), nil
}

func (s *SQLiteKV) Put(ctx context.Context, key string, value []byte) error {
	row := slotRow{Key: key, Value: string(value)}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteKV) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// gormLogger routes gorm's messages into zap.
type gormLogger struct {
	log   *zap.Logger
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	c := *l
	c.level = level
	return &c
}

func (l *gormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Info {
		l.log.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Warn {
		l.log.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Error {
		l.log.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if err == nil || errors.Is(err, gorm.ErrRecordNotFound) || l.level < logger.Error {
		return
	}
	sql, rows := fc()
	l.log.Error("sqlite query failed",
		zap.Error(err),
		zap.String("sql", sql),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", time.Since(begin)),
	)
}
