package session

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Storage keys. tokenKey holds the current bearer token; legacyAuthKey is
// the structured record written by the previous client generation and is
// read exactly once, migrated, and deleted.
const (
	tokenKey      = "token"
	legacyAuthKey = "auth"
)

// ErrNoCredential is returned by Token when no credential is stored.
var ErrNoCredential = errors.New("no credential")

// Store is the single owner of the persisted bearer credential. All login,
// logout, and route-gating decisions go through it; the raw storage keys are
// never exposed elsewhere.
type Store struct {
	storage Storage
}

// NewStore creates a Store over the given Storage.
func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Token returns the stored bearer token. When only the legacy structured
// record exists, its token is migrated to the current key and the legacy
// record is deleted before returning. Returns ErrNoCredential when nothing
// usable is stored.
func (s *Store) Token() (string, error) {
	token, err := s.storage.Get(tokenKey)
	if err == nil && token != "" {
		return token, nil
	}
	if err != nil && !errors.Is(err, ErrNoValue) {
		return "", errors.Wrap(err, "read token")
	}
	return s.migrateLegacy()
}

// SetToken persists the bearer token.
func (s *Store) SetToken(token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := s.storage.Set(tokenKey, token); err != nil {
		return errors.Wrap(err, "store token")
	}
	return nil
}

// Clear removes the stored credential, including any legacy record.
func (s *Store) Clear() error {
	if err := s.storage.Delete(tokenKey); err != nil {
		return errors.Wrap(err, "delete token")
	}
	if err := s.storage.Delete(legacyAuthKey); err != nil {
		return errors.Wrap(err, "delete legacy record")
	}
	return nil
}

// Authenticated reports whether a credential is present. Storage failures
// count as absent; validity against the server is discovered lazily when an
// API call fails.
func (s *Store) Authenticated() bool {
	_, err := s.Token()
	return err == nil
}

// migrateLegacy reads the legacy structured record, extracts its token,
// persists it under the current key, and deletes the record. A corrupt or
// token-less record is deleted as well, so the migration runs at most once.
func (s *Store) migrateLegacy() (string, error) {
	raw, err := s.storage.Get(legacyAuthKey)
	if err != nil {
		if errors.Is(err, ErrNoValue) {
			return "", ErrNoCredential
		}
		return "", errors.Wrap(err, "read legacy record")
	}

	token := legacyToken(raw)
	if token == "" {
		if err := s.storage.Delete(legacyAuthKey); err != nil {
			return "", errors.Wrap(err, "drop legacy record")
		}
		return "", ErrNoCredential
	}

	if err := s.storage.Set(tokenKey, token); err != nil {
		return "", errors.Wrap(err, "migrate token")
	}
	if err := s.storage.Delete(legacyAuthKey); err != nil {
		return "", errors.Wrap(err, "drop legacy record")
	}
	return token, nil
}

// legacyToken extracts the "token" field from the legacy JSON record.
// Any other field, and any malformed document, is ignored.
func legacyToken(raw string) string {
	var token string
	d := jx.DecodeStr(raw)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "token" {
			return d.Skip()
		}
		v, err := d.Str()
		if err != nil {
			return err
		}
		token = v
		return nil
	}); err != nil {
		return ""
	}
	return token
}
