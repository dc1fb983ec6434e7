// Package auth resolves the acting user of a request. Sessions are issued by
// the campus identity service and shared through Redis; this package only
// reads them (and writes them in tests and tooling).
//
// Session keys should be 32 or 64 bytes for HMAC authentication and 16, 24
// or 32 bytes for AES encryption. Generate production keys with:
//
//	openssl rand -base64 32
package auth

import (
	"bytes"
	"context"
	"encoding/base32"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "governance:session:"

	// DefaultSessionMaxAge is how long an idle session survives.
	DefaultSessionMaxAge = 12 * time.Hour
)

// RedisStore is a sessions.Store keeping session values in Redis. The client
// cookie only carries the signed and encrypted session ID.
//
// Each successful load pushes the Redis TTL forward, so a session expires
// after MaxAge of inactivity rather than MaxAge after login.
type RedisStore struct {
	client  redis.Cmdable
	codecs  []securecookie.Codec
	options *sessions.Options
}

// NewSessionStore returns a store using DefaultSessionMaxAge. secureCookie
// marks the cookie HTTPS-only and must be set in production.
func NewSessionStore(client redis.Cmdable, authKey, encryptionKey []byte, secureCookie bool) *RedisStore {
	return &RedisStore{
		client: client,
		codecs: securecookie.CodecsFromPairs(authKey, encryptionKey),
		options: &sessions.Options{
			Path:     "/",
			MaxAge:   int(DefaultSessionMaxAge / time.Second),
			HttpOnly: true,
			Secure:   secureCookie,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

// Get returns the request's cached session or loads it through New.
func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New returns the session named by the request cookie, or a fresh one when
// the cookie is missing, tampered with or points at an expired session.
// A Redis failure is returned so callers can tell an outage from a logout.
func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.codecs...); err != nil {
		return session, nil
	}

	session.ID = id
	switch err := s.load(r.Context(), session); {
	case errors.Is(err, redis.Nil):
		session.ID = ""
		return session, nil
	case err != nil:
		return session, err
	}
	session.IsNew = false
	return session, nil
}

// Save writes the session to Redis and sets the cookie. A negative MaxAge
// deletes both.
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.client.Del(r.Context(), s.key(session.ID)).Err(); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = strings.TrimRight(
			base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)), "=")
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(session.Values); err != nil {
		return fmt.Errorf("encode session values: %w", err)
	}
	if err := s.client.Set(r.Context(), s.key(session.ID), buf.Bytes(), s.ttl(session)).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

// load reads the session values and slides the expiry forward.
func (s *RedisStore) load(ctx context.Context, session *sessions.Session) error {
	data, err := s.client.GetEx(ctx, s.key(session.ID), s.ttl(session)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return err
		}
		return fmt.Errorf("load session: %w", err)
	}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&session.Values); err != nil {
		return fmt.Errorf("decode session values: %w", err)
	}
	return nil
}

func (s *RedisStore) key(id string) string {
	return sessionKeyPrefix + id
}

func (s *RedisStore) ttl(session *sessions.Session) time.Duration {
	return time.Duration(session.Options.MaxAge) * time.Second
}
