package client

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// SessionStorageKey is the fixed storage slot holding the persisted
// session.
const SessionStorageKey = "worldmarket_session"

// persistedSession is the storage representation of a session.
type persistedSession struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// SessionStore holds the current authenticated user. It is an injected
// dependency, not a package-level singleton, so hosts and tests can
// carry independent sessions.
type SessionStore struct {
	identity *IdentityProvider
	api      *API
	storage  Storage
	logger   *zap.SugaredLogger

	mu      sync.RWMutex
	session *persistedSession
}

// NewSessionStore creates a SessionStore. Storage may be nil, in which
// case sessions do not survive restarts. A nil logger discards log output.
func NewSessionStore(identity *IdentityProvider, api *API, storage Storage, logger *zap.SugaredLogger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &SessionStore{identity: identity, api: api, storage: storage, logger: logger}
}

// Login runs the full sign-in: obtain a proof from the host container,
// submit it to the server verify endpoint, then cache and persist the
// resulting user. The server is the sole authority on verification; a
// repeated nullifier hash yields the same profile.
func (s *SessionStore) Login(ctx context.Context) (*User, error) {
	proof, err := s.identity.VerifyIdentity(ctx)
	if err != nil {
		return nil, err
	}

	user, token, err := s.api.VerifyWorldID(ctx, proof)
	if err != nil {
		return nil, err
	}

	sess := &persistedSession{User: *user, Token: token}
	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()
	s.api.SetToken(token)

	s.persist(sess)
	return user, nil
}

// Restore loads a persisted session from storage. It reports false when
// nothing usable is stored. Restored flags are display hints only; the
// server re-validates by user id on every sensitive operation.
func (s *SessionStore) Restore() (*User, bool) {
	if s.storage == nil {
		return nil, false
	}
	raw, ok, err := s.storage.Read(SessionStorageKey)
	if err != nil {
		s.logger.Warnw("session restore failed", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var sess persistedSession
	if err := json.Unmarshal(raw, &sess); err != nil || sess.Token == "" {
		return nil, false
	}

	s.mu.Lock()
	s.session = &sess
	s.mu.Unlock()
	s.api.SetToken(sess.Token)
	return &sess.User, true
}

// Logout clears the in-memory session, the API credential, and the
// persisted entry.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
	s.api.SetToken("")

	if s.storage != nil {
		if err := s.storage.Delete(SessionStorageKey); err != nil {
			s.logger.Warnw("session delete failed", "error", err)
		}
	}
}

// CurrentUser returns the signed-in user, or nil when logged out.
func (s *SessionStore) CurrentUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	u := s.session.User
	return &u
}

func (s *SessionStore) persist(sess *persistedSession) {
	if s.storage == nil {
		return
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		s.logger.Warnw("session encode failed", "error", err)
		return
	}
	if err := s.storage.Write(SessionStorageKey, raw); err != nil {
		s.logger.Warnw("session persist failed", "error", err)
	}
}
