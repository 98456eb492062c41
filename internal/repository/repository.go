package repository

import (
	"context"
	"fmt"
	"strings"

	"companion_collection/pkg/logger"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")

	// ErrAlreadyPerformed is returned when a daily action was already
	// recorded for the given server date.
	ErrAlreadyPerformed = errors.New("already performed today")
)

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

type Repository struct {
	db      *sqlx.DB
	dialect Dialect
	sb      squirrel.StatementBuilderType
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Transaction(ctx context.Context, t func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	err = t(tx)
	if err != nil {
		txErr := tx.Rollback()
		if txErr != nil {
			return errors.Wrapf(err, "rollback error: %v", txErr)
		}
		return err
	}
	return tx.Commit()
}

type Config struct {
	Dialect    string `mapstructure:"dialect"`
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	SQLitePath string `mapstructure:"sqlitePath"`
}

func New(cfg Config) (*Repository, error) {
	dialect := Dialect(strings.ToLower(strings.TrimSpace(cfg.Dialect)))
	if dialect == "" {
		dialect = DialectPostgres
	}

	var driverName string
	switch dialect {
	case DialectPostgres:
		driverName = "pgx"
	case DialectSQLite:
		driverName = "sqlite"
	default:
		return nil, fmt.Errorf("unsupported database dialect %q", cfg.Dialect)
	}

	db, err := sqlx.Connect(driverName, cfg.GetDatabaseURL(dialect))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	r, err := newRepository(db, dialect)
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Logger().Info("Connected to database successfully", zap.String("dialect", string(dialect)))

	return r, nil
}

func newRepository(db *sqlx.DB, dialect Dialect) (*Repository, error) {
	var placeholder squirrel.PlaceholderFormat = squirrel.Dollar
	if dialect == DialectSQLite {
		// one writer at a time, and ":memory:" must not fan out into
		// several independent databases
		db.SetMaxOpenConns(1)
		placeholder = squirrel.Question

		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(db.DB, dialect); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{
		db:      db,
		dialect: dialect,
		sb:      squirrel.StatementBuilder.PlaceholderFormat(placeholder),
	}, nil
}

func (c *Config) GetDatabaseURL(dialect Dialect) string {
	if dialect == DialectSQLite {
		if c.SQLitePath == "" {
			return ":memory:"
		}
		return c.SQLitePath
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
	)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			// extended result codes disabled
			msg := sqliteErr.Error()
			return strings.Contains(msg, "UNIQUE") || strings.Contains(msg, "PRIMARY KEY")
		}
	}

	return false
}

// markPerformed records action column as done on today. It affects no row
// when the action already carries today's date, which covers a concurrent
// request winning the race.
func (r *Repository) markPerformed(ctx context.Context, tx sqlx.ExecerContext, userID int64, column string, today any, extra map[string]interface{}) error {
	query, args, err := r.sb.
		Update("daily_states").
		Set(column, today).
		SetMap(extra).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Or{
			squirrel.Eq{column: nil},
			squirrel.NotEq{column: today},
		}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAlreadyPerformed
	}

	return nil
}
