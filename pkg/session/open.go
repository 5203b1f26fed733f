package session

import (
	"context"
	"io"

	"github.com/ataboo/go-furglo-web/pkg/common"
	"github.com/ataboo/go-furglo-web/pkg/dbcontext"
	"github.com/friendsofgo/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"

	redisKeyPrefix = "furglo:"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the store configured by SESSION_STORE. The returned closer
// releases any connection the backend holds.
func Open(ctx context.Context, cfg *common.Config, logger logrus.FieldLogger) (Store, io.Closer, error) {
	log := logger.WithField("store", cfg.SessionStore)

	switch cfg.SessionStore {
	case BackendMemory:
		log.Debug("using in-memory session store")
		return NewKVStore(NewMemoryKV()), nopCloser{}, nil

	case BackendFile, "":
		log.WithField("path", cfg.SessionFilePath).Debug("using file session store")
		return NewKVStore(NewFileKV(cfg.SessionFilePath)), nopCloser{}, nil

	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, nil, errors.New(common.EnvRedisAddr + " must be set for the redis session store")
		}

		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, errors.Wrap(err, "failed to reach redis")
		}

		return NewKVStore(NewRedisKV(client, redisKeyPrefix)), client, nil

	case BackendPostgres:
		db, err := dbcontext.InitBoilerDb(cfg.DbConnection)
		if err != nil {
			return nil, nil, err
		}

		if err := dbcontext.MigrateDB(db); err != nil {
			db.Close()
			return nil, nil, errors.Wrap(err, "failed to migrate session db")
		}

		return NewKVStore(NewSQLKV(db)), db, nil
	}

	return nil, nil, errors.Errorf("unknown session store %q", cfg.SessionStore)
}
