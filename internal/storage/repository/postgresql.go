// Package repository реализует хранилище данных на основе PostgreSQL
// для учёта участников зала, событий оплат и приостановок. Email участника
// служит ключом соединения всех трёх таблиц.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Сигнальные ошибки хранилища. Обработчики переводят их в HTTP-статусы.
var (
	// ErrEmailTaken — email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already registered")
	// ErrNameTaken — имя и фамилия уже зарегистрированы.
	ErrNameTaken = errors.New("name already registered")
	// ErrMemberNotFound — участник с таким email отсутствует.
	ErrMemberNotFound = errors.New("member not found")
	// ErrMemberMissing — событие ссылается на несуществующего участника.
	ErrMemberMissing = errors.New("member does not exist")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'members'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table members missing or query error: %w", err)
	}
	return nil
}

// translateConstraint переводит ошибки ограничений PostgreSQL в сигнальные
// ошибки хранилища. Неизвестные ошибки возвращаются как есть.
func translateConstraint(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		switch pgErr.ConstraintName {
		case "members_pkey":
			return ErrEmailTaken
		case "members_name_key":
			return ErrNameTaken
		}
	case pgerrcode.ForeignKeyViolation:
		return ErrMemberMissing
	}
	return err
}
