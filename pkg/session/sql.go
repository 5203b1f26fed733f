package session

import (
	"context"
	"database/sql"

	"github.com/friendsofgo/errors"
	"github.com/volatiletech/null/v8"
	"github.com/volatiletech/sqlboiler/v4/boil"
	"github.com/volatiletech/sqlboiler/v4/queries"
)

type storageRow struct {
	Key   string      `boil:"key"`
	Value null.String `boil:"value"`
}

// SQLDB is satisfied by *sql.DB.
type SQLDB interface {
	boil.ContextExecutor
	boil.ContextBeginner
}

// sqlKV reads and writes the client_storage table created by the migrations.
type sqlKV struct {
	db SQLDB
}

func NewSQLKV(db SQLDB) KV {
	return &sqlKV{db: db}
}

func (s *sqlKV) Get(ctx context.Context, key string) (string, error) {
	row := storageRow{}

	err := queries.Raw(`SELECT key, value FROM client_storage WHERE key = $1`, key).Bind(ctx, s.db, &row)
	if errors.Cause(err) == sql.ErrNoRows {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to query client storage")
	}

	return row.Value.String, nil
}

// inTx runs fn in one transaction, rolling back if it fails.
func (s *sqlKV) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin client storage tx")
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return errors.Wrap(tx.Commit(), "failed to commit client storage tx")
}

func (s *sqlKV) SetMany(ctx context.Context, values map[string]string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for key, value := range values {
			_, err := queries.Raw(
				`INSERT INTO client_storage (key, value, updated_at) VALUES ($1, $2, NOW())
				ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
				key, null.StringFrom(value),
			).ExecContext(ctx, tx)
			if err != nil {
				return errors.Wrapf(err, "failed to write client storage key %s", key)
			}
		}

		return nil
	})
}

func (s *sqlKV) Delete(ctx context.Context, keys ...string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, key := range keys {
			if _, err := queries.Raw(`DELETE FROM client_storage WHERE key = $1`, key).ExecContext(ctx, tx); err != nil {
				return errors.Wrap(err, "failed to delete client storage")
			}
		}

		return nil
	})
}
