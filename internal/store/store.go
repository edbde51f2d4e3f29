package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tubesift/tubesift/pkg/interfaces"
)

// Store is the record store: normalized media records, presets and
// export history in a single SQLite file. Preset rows must only be
// touched through the preset manager; export rows only through the
// export manager.
type Store struct {
	db     *gorm.DB
	path   string
	logger interfaces.Logger
}

// Open opens (creating if needed) the store at path and runs
// migrations. The returned cleanup closes the underlying connection.
func Open(path string, logger interfaces.Logger) (*Store, func(), error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: newGormLogger(logger),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	// Single-writer local app; WAL keeps readers unblocked during
	// preset updates.
	if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
		return nil, nil, fmt.Errorf("set journal mode: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, nil, fmt.Errorf("migrate store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		sqlDB.Close()
	}

	return &Store{db: db, path: path, logger: logger}, cleanup, nil
}

// AutoMigrate runs database migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&VideoModel{},
		&ChannelModel{},
		&PlaylistModel{},
		&PresetModel{},
		&ExportRecordModel{},
	)
}

// Path returns the on-disk location of the store.
func (s *Store) Path() string {
	return s.path
}

// WithTx runs fn inside a transaction; the store passed to fn shares
// the transaction handle.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, path: s.path, logger: s.logger})
	})
}

// SnapshotTo writes a complete, consistent copy of the store to path
// in its native on-disk representation.
func (s *Store) SnapshotTo(ctx context.Context, path string) error {
	return s.db.WithContext(ctx).Exec("VACUUM INTO ?", path).Error
}

// gormLogger adapts the application logger for GORM.
type gormLogger struct {
	logger interfaces.Logger
}

func newGormLogger(logger interfaces.Logger) gormlogger.Interface {
	return &gormLogger{logger: logger}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return l
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.logger.Info(fmt.Sprintf(msg, data...))
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.logger.Warn(fmt.Sprintf(msg, data...))
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.logger.Error(fmt.Sprintf(msg, data...))
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && err != gorm.ErrRecordNotFound {
		l.logger.Error("sql error",
			interfaces.Error(err),
			interfaces.String("sql", sql),
			interfaces.Any("rows", rows),
			interfaces.Any("elapsed", elapsed),
		)
		return
	}

	if elapsed > 200*time.Millisecond {
		l.logger.Warn("slow sql query",
			interfaces.String("sql", sql),
			interfaces.Any("rows", rows),
			interfaces.Any("elapsed", elapsed),
		)
	}
}
