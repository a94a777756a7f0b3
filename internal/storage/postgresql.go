// Package storage реализует хранилище CareConnect на PostgreSQL: учетные записи,
// врачей, записи на прием, медицинские карты, экстренные вызовы и визиты.
//
// Ошибки драйвера переводятся в доменные на границе пакета: sql.ErrNoRows
// становится apperr.ErrNotFound, нарушение уникальности становится
// apperr.ErrDuplicateAccount или apperr.ErrConflict.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(ctx context.Context, storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

// NewWithDB оборачивает готовое соединение.
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{DB: db}
}

// Close закрывает соединение.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// Ping проверяет доступность базы.
func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// withTx выполняет fn в транзакции: commit при успехе, rollback при ошибке или панике.
func (s *Storage) withTx(ctx context.Context, fn func(tx dbtx) error) (err error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(tx)
}

func checkCtx(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return nil
	}
}

// mapError переводит ошибку драйвера в доменную. onUnique подставляется
// при нарушении уникального ограничения.
func mapError(op string, err error, onUnique error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if onUnique != nil && errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%s: %w (%s)", op, onUnique, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// expectAffected возвращает notAffected, если запрос не изменил ни одной строки.
func expectAffected(op string, res sql.Result, notAffected error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, notAffected)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
