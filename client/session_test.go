package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
)

// countingDoer serves canned responses and counts every network call.
type countingDoer struct {
	mu       sync.Mutex
	calls    int32
	requests []*http.Request
	handler  func(req *http.Request) (*http.Response, error)
}

func (d *countingDoer) Do(req *http.Request) (*http.Response, error) {
	atomic.AddInt32(&d.calls, 1)
	d.mu.Lock()
	d.requests = append(d.requests, req)
	d.mu.Unlock()
	if d.handler == nil {
		return jsonResponse(http.StatusNotFound, `{"error":"no handler"}`), nil
	}
	return d.handler(req)
}

func (d *countingDoer) Calls() int32 {
	return atomic.LoadInt32(&d.calls)
}

func (d *countingDoer) LastRequest() *http.Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.requests) == 0 {
		return nil
	}
	return d.requests[len(d.requests)-1]
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

const verifySuccessBody = `{
	"success": true,
	"user": {
		"id": "user-1",
		"nullifier_hash": "0xnullifier",
		"username": "user_0xnullif",
		"verification_level": "device",
		"is_verified": true,
		"is_seller": false
	},
	"token": "jwt-token"
}`

func newSessionFixture(bridge Bridge, doer Doer, storage Storage) *SessionStore {
	api := NewAPI("https://market.example", doer)
	identity := NewIdentityProvider(bridge, "marketplace-login", LevelDevice)
	return NewSessionStore(identity, api, storage, zap.NewNop().Sugar())
}

func TestLogin_VerifiesProofAndPersistsSession(t *testing.T) {
	t.Parallel()

	doer := &countingDoer{handler: func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/v1/auth/verify-world-id" {
			t.Errorf("unexpected path %q", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, verifySuccessBody), nil
	}}
	storage := NewMemoryStorage()
	store := newSessionFixture(&fakeBridge{installed: true}, doer, storage)

	user, err := store.Login(context.Background())
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != "user-1" {
		t.Errorf("expected user-1, got %q", user.ID)
	}
	if got := store.CurrentUser(); got == nil || got.ID != "user-1" {
		t.Error("expected user cached in memory")
	}
	if _, ok, _ := storage.Read(SessionStorageKey); !ok {
		t.Error("expected session persisted under the fixed key")
	}
}

func TestLogin_ProviderUnavailableMakesNoNetworkCall(t *testing.T) {
	t.Parallel()

	doer := &countingDoer{}
	store := newSessionFixture(&fakeBridge{installed: false}, doer, NewMemoryStorage())

	_, err := store.Login(context.Background())
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if doer.Calls() != 0 {
		t.Errorf("expected zero network calls, got %d", doer.Calls())
	}
	if store.CurrentUser() != nil {
		t.Error("no session may exist after a failed login")
	}
}

func TestLogin_ServerRejectionIsVerificationFailed(t *testing.T) {
	t.Parallel()

	doer := &countingDoer{handler: func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{"error":"invalid proof"}`), nil
	}}
	store := newSessionFixture(&fakeBridge{installed: true}, doer, NewMemoryStorage())

	_, err := store.Login(context.Background())
	if !errors.Is(err, ErrVerificationFailed) {
		t.Fatalf("expected ErrVerificationFailed, got %v", err)
	}
}

func TestLogin_TokenAttachedToLaterRequests(t *testing.T) {
	t.Parallel()

	doer := &countingDoer{handler: func(req *http.Request) (*http.Response, error) {
		if req.URL.Path == "/v1/auth/verify-world-id" {
			return jsonResponse(http.StatusOK, verifySuccessBody), nil
		}
		return jsonResponse(http.StatusOK, `{"paymentId":"pay_1","amount":0.5,"currency":"WLD","recipient":"0xfee"}`), nil
	}}
	api := NewAPI("https://market.example", doer)
	identity := NewIdentityProvider(&fakeBridge{installed: true}, "marketplace-login", LevelDevice)
	store := NewSessionStore(identity, api, nil, zap.NewNop().Sugar())

	if _, err := store.Login(context.Background()); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := api.InitiatePayment(context.Background(), "product-1", "user-1", "listing_fee"); err != nil {
		t.Fatalf("initiation failed: %v", err)
	}

	if got := doer.LastRequest().Header.Get("Authorization"); got != "Bearer jwt-token" {
		t.Errorf("expected bearer token on authenticated call, got %q", got)
	}
}

func TestRestore_ReloadsPersistedSessionWithoutReVerification(t *testing.T) {
	t.Parallel()

	doer := &countingDoer{handler: func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, verifySuccessBody), nil
	}}
	storage := NewMemoryStorage()

	first := newSessionFixture(&fakeBridge{installed: true}, doer, storage)
	if _, err := first.Login(context.Background()); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	callsAfterLogin := doer.Calls()

	// A fresh store over the same storage simulates a reload.
	bridge := &fakeBridge{installed: true}
	second := newSessionFixture(bridge, doer, storage)
	user, ok := second.Restore()
	if !ok {
		t.Fatal("expected persisted session to restore")
	}
	if user.ID != "user-1" {
		t.Errorf("expected user-1, got %q", user.ID)
	}
	if bridge.verifyCalls != 0 {
		t.Error("restore must not re-run identity verification")
	}
	if doer.Calls() != callsAfterLogin {
		t.Error("restore must not hit the network")
	}
}

// brokenStorage fails every operation.
type brokenStorage struct{}

func (brokenStorage) Read(key string) ([]byte, bool, error) { return nil, false, errors.New("io down") }
func (brokenStorage) Write(key string, value []byte) error  { return errors.New("io down") }
func (brokenStorage) Delete(key string) error               { return errors.New("io down") }

func TestSessionStore_NilLoggerToleratesStorageFailures(t *testing.T) {
	t.Parallel()

	doer := &countingDoer{handler: func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, verifySuccessBody), nil
	}}
	api := NewAPI("https://market.example", doer)
	identity := NewIdentityProvider(&fakeBridge{installed: true}, "marketplace-login", LevelDevice)
	store := NewSessionStore(identity, api, brokenStorage{}, nil)

	if _, ok := store.Restore(); ok {
		t.Error("restore must report false when the storage read fails")
	}
	if _, err := store.Login(context.Background()); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if store.CurrentUser() == nil {
		t.Error("a persist failure must not lose the in-memory session")
	}
	store.Logout()
	if store.CurrentUser() != nil {
		t.Error("expected memory cache cleared")
	}
}

func TestLogout_ClearsMemoryAndStorage(t *testing.T) {
	t.Parallel()

	doer := &countingDoer{handler: func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, verifySuccessBody), nil
	}}
	storage := NewMemoryStorage()
	store := newSessionFixture(&fakeBridge{installed: true}, doer, storage)

	if _, err := store.Login(context.Background()); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	store.Logout()

	if store.CurrentUser() != nil {
		t.Error("expected memory cache cleared")
	}
	if _, ok, _ := storage.Read(SessionStorageKey); ok {
		t.Error("expected persisted entry deleted")
	}
	if _, restored := store.Restore(); restored {
		t.Error("nothing must restore after logout")
	}
}
