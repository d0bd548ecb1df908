// Package migrations применяет схему базы данных с помощью golang-migrate.
// Каждый вызов открывает собственное соединение и закрывает его по завершении,
// поэтому пул основного хранилища не затрагивается.
package migrations

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxv5 "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

func newMigrator(storageConnectionString, path string) (*migrate.Migrate, error) {
	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, err
	}
	driver, err := pgxv5.WithInstance(db, &pgxv5.Config{})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	m, err := migrate.NewWithDatabaseInstance(
		"file://"+path,
		"pgx_v5",
		driver,
	)
	if err != nil {
		_ = driver.Close()
		return nil, err
	}
	return m, nil
}

func closeMigrator(m *migrate.Migrate, err error) error {
	srcErr, dbErr := m.Close()
	return errors.Join(err, srcErr, dbErr)
}

// Up применяет все ещё не применённые миграции.
// Отсутствие изменений ошибкой не считается.
func Up(storageConnectionString, path string) (err error) {
	const op = "migrations.Up"

	m, err := newMigrator(storageConnectionString, path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		err = closeMigrator(m, err)
	}()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Down откатывает все миграции.
func Down(storageConnectionString, path string) (err error) {
	const op = "migrations.Down"

	m, err := newMigrator(storageConnectionString, path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		err = closeMigrator(m, err)
	}()

	if err = m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Version возвращает текущую версию схемы. ok == false, если миграции ещё не применялись.
func Version(storageConnectionString, path string) (version uint, dirty bool, ok bool, err error) {
	const op = "migrations.Version"

	m, err := newMigrator(storageConnectionString, path)
	if err != nil {
		return 0, false, false, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		err = closeMigrator(m, err)
	}()

	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, fmt.Errorf("%s: %w", op, err)
	}
	return version, dirty, true, nil
}
