package postgres

import (
	"fmt"
	"log/slog"
	"time"

	"production/internal/adapters/out/postgres/codesequence"
	"production/internal/adapters/out/postgres/orderrepo"
	"production/internal/adapters/out/postgres/outboxrepo"
	"production/internal/adapters/out/postgres/profilerepo"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Settings describe the database connection.
type Settings struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxOpenConns int
	SlowQuery    time.Duration
}

// DSN renders the settings as a libpq keyword/value string.
func (s Settings) DSN() string {
	sslMode := s.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.User, s.Password, s.Name, sslMode)
}

// Open connects with driver errors translated to gorm sentinels, so unique
// violations surface as gorm.ErrDuplicatedKey.
func Open(dsn string, settings Settings, log *slog.Logger) (*gorm.DB, error) {
	if log == nil {
		log = slog.Default()
	}
	slow := settings.SlowQuery
	if slow <= 0 {
		slow = 500 * time.Millisecond
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger: logger.New(slogWriter{log.With("component", "gorm")}, logger.Config{
			SlowThreshold:             slow,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}

	if settings.MaxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(settings.MaxOpenConns)
	}
	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&orderrepo.StageRecordDTO{},
		&codesequence.SequenceDTO{},
		&outboxrepo.MessageDTO{},
		&profilerepo.ProfileDTO{},
	); err != nil {
		return err
	}

	// At most one stage per order may be in progress.
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ux_order_stages_one_in_progress
		ON order_stages (order_id) WHERE status = 'in_progress'`).Error
}

// slogWriter feeds gorm's logger into slog.
type slogWriter struct {
	log *slog.Logger
}

func (w slogWriter) Printf(format string, args ...any) {
	w.log.Warn(fmt.Sprintf(format, args...))
}
