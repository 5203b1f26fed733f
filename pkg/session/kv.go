package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/friendsofgo/errors"
	"github.com/redis/go-redis/v9"
)

type memoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryKV() KV {
	return &memoryKV{values: make(map[string]string)}
}

func (m *memoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	val, ok := m.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}

	return val, nil
}

func (m *memoryKV) SetMany(_ context.Context, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, value := range values {
		m.values[key] = value
	}

	return nil
}

func (m *memoryKV) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.values, key)
	}

	return nil
}

// fileKV keeps every key in one JSON object on disk, rewritten on each change.
type fileKV struct {
	mu   sync.Mutex
	path string
}

func NewFileKV(path string) KV {
	return &fileKV{path: path}
}

func (f *fileKV) read() (map[string]string, error) {
	values := make(map[string]string)

	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return values, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read session file")
	}

	if len(raw) == 0 {
		return values, nil
	}

	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, errors.Wrap(err, "failed to parse session file")
	}

	return values, nil
}

func (f *fileKV) write(values map[string]string) error {
	raw, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return errors.Wrap(err, "failed to create session dir")
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return errors.Wrap(err, "failed to write session file")
	}

	return errors.Wrap(os.Rename(tmp, f.path), "failed to replace session file")
}

func (f *fileKV) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return "", err
	}

	val, ok := values[key]
	if !ok {
		return "", ErrKeyNotFound
	}

	return val, nil
}

func (f *fileKV) SetMany(_ context.Context, updates map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}

	for key, value := range updates {
		values[key] = value
	}

	return f.write(values)
}

func (f *fileKV) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}

	for _, key := range keys {
		delete(values, key)
	}

	return f.write(values)
}

type redisKV struct {
	client *redis.Client
	prefix string
}

// NewRedisKV stores each key as prefix+key.
func NewRedisKV(client *redis.Client, prefix string) KV {
	return &redisKV{client: client, prefix: prefix}
}

func (r *redisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Result()
	if err == redis.Nil {
		return "", ErrKeyNotFound
	}

	return val, err
}

func (r *redisKV) SetMany(ctx context.Context, values map[string]string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, value := range values {
			pipe.Set(ctx, r.prefix+key, value, 0)
		}

		return nil
	})

	return err
}

func (r *redisKV) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = r.prefix + key
	}

	return r.client.Del(ctx, prefixed...).Err()
}
