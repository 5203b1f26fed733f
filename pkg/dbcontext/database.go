package dbcontext

import (
	"database/sql"
	"path/filepath"

	"github.com/ataboo/go-furglo-web/pkg/common"
	"github.com/friendsofgo/errors"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/sirupsen/logrus"
	"github.com/volatiletech/sqlboiler/v4/boil"

	// Comment prevents lint
	_ "github.com/lib/pq"

	// Comment prevents lint
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func InitBoilerDb(connection string) (*sql.DB, error) {
	if connection == "" {
		return nil, errors.New(common.EnvDbConnectionString + " must be set for the postgres session store")
	}

	db, err := sql.Open("postgres", connection)
	if err != nil {
		return nil, err
	}

	boil.SetDB(db)

	return db, nil
}

func MigrationsURL() string {
	rootAbsPath, _ := filepath.Abs(common.RootFilePath)

	return "file://" + filepath.ToSlash(filepath.Join(rootAbsPath, "migrations"))
}

func NewMigrator(db *sql.DB) (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, err
	}

	return migrate.NewWithDatabaseInstance(MigrationsURL(), "postgres", driver)
}

func MigrateDB(db *sql.DB) error {
	m, err := NewMigrator(db)
	if err != nil {
		return err
	}

	err = m.Up()
	if err == nil {
		logrus.Info("Migrated DB")
	}

	if err == migrate.ErrNoChange {
		return nil
	}

	return err
}
