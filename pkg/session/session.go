package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ataboo/go-furglo-web/pkg/constants"
	"github.com/friendsofgo/errors"
	"github.com/golang-jwt/jwt/v5"
)

type ActorKind string

const (
	ActorUser         ActorKind = "user"
	ActorProfessional ActorKind = "professional"
)

func (k ActorKind) Valid() bool {
	return k == ActorUser || k == ActorProfessional
}

func (k ActorKind) Endpoints() constants.Endpoints {
	if k == ActorProfessional {
		return constants.ProfessionalEndpoints
	}

	return constants.UserEndpoints
}

type Session struct {
	AccessToken  string          `json:"access_token,omitempty"`
	RefreshToken string          `json:"refresh_token,omitempty"`
	ActorKind    ActorKind       `json:"actor_kind"`
	Profile      json.RawMessage `json:"profile,omitempty"`
}

// ExpiresAt reads the exp claim of the access token without verifying the
// signature. Opaque tokens and tokens without exp report ok=false.
func (s *Session) ExpiresAt() (time.Time, bool) {
	if s.AccessToken == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}

func (s *Session) Expired(now time.Time) bool {
	exp, ok := s.ExpiresAt()
	if !ok {
		return false
	}

	return !now.Before(exp)
}

// Store persists at most one session. Load returns nil, nil when nothing is stored.
type Store interface {
	Save(ctx context.Context, s Session) error
	Load(ctx context.Context) (*Session, error)
	Clear(ctx context.Context) error
}

var ErrKeyNotFound = errors.New("storage key not found")

// KV is the durable scalar storage the session keys are written to.
// SetMany writes every value or none of them.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

type kvStore struct {
	kv KV
}

func NewKVStore(kv KV) Store {
	return &kvStore{kv: kv}
}

func (s *kvStore) Save(ctx context.Context, sess Session) error {
	values := map[string]string{
		constants.StorageKeyAccessToken:  sess.AccessToken,
		constants.StorageKeyRefreshToken: sess.RefreshToken,
		constants.StorageKeyUserType:     string(sess.ActorKind),
		constants.StorageKeyUserData:     string(sess.Profile),
	}

	return errors.Wrap(s.kv.SetMany(ctx, values), "failed to save session")
}

func (s *kvStore) Load(ctx context.Context) (*Session, error) {
	values := make(map[string]string, len(constants.StorageKeys))
	found := false

	for _, key := range constants.StorageKeys {
		val, err := s.kv.Get(ctx, key)
		if errors.Cause(err) == ErrKeyNotFound {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load %s", key)
		}

		values[key] = val
		found = true
	}

	if !found {
		return nil, nil
	}

	sess := &Session{
		AccessToken:  values[constants.StorageKeyAccessToken],
		RefreshToken: values[constants.StorageKeyRefreshToken],
		ActorKind:    ActorKind(values[constants.StorageKeyUserType]),
	}

	if data := values[constants.StorageKeyUserData]; data != "" {
		sess.Profile = json.RawMessage(data)
	}

	return sess, nil
}

func (s *kvStore) Clear(ctx context.Context) error {
	return errors.Wrap(s.kv.Delete(ctx, constants.StorageKeys...), "failed to clear session")
}

// Current returns the stored session if it holds an unexpired access token.
func Current(ctx context.Context, store Store, now time.Time) (*Session, error) {
	sess, err := store.Load(ctx)
	if err != nil || sess == nil {
		return nil, err
	}

	if sess.AccessToken == "" || sess.Expired(now) {
		return nil, nil
	}

	return sess, nil
}
