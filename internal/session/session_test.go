package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvhoang/aliasctl/internal/slapi"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	mu    sync.Mutex
	value string
}

func (m *memStore) Get() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.value == "" {
		return "", errors.New("no credential stored")
	}
	return m.value, nil
}

func (m *memStore) Set(value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = value
	return nil
}

func (m *memStore) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = ""
	return nil
}

// fakeService is a minimal login/MFA backend. Each login issues a fresh
// single-use MFA key when mfa is enabled.
type fakeService struct {
	mu         sync.Mutex
	mfaEnabled bool
	totp       string
	nextKey    int
	liveKeys   map[string]bool
}

func newFakeService(mfa bool, totp string) *fakeService {
	return &fakeService{mfaEnabled: mfa, totp: totp, liveKeys: map[string]bool{}}
}

func (f *fakeService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.mfaEnabled {
			f.nextKey++
			key := "mfa-key-" + strconv.Itoa(f.nextKey)
			f.liveKeys[key] = true
			json.NewEncoder(w).Encode(map[string]any{
				"mfa_enabled": true,
				"mfa_key":     key,
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"mfa_enabled": false,
			"api_key":     "plain-key",
		})
	})
	mux.HandleFunc("/api/auth/mfa", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Key   string `json:"mfa_key"`
			Token string `json:"mfa_token"`
		}
		json.NewDecoder(r.Body).Decode(&body)

		f.mu.Lock()
		defer f.mu.Unlock()
		live := f.liveKeys[body.Key]
		delete(f.liveKeys, body.Key) // consumed either way
		if !live || body.Token != f.totp {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{"error": "Wrong TOTP token"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"api_key": "mfa-issued-key"})
	})
	mux.HandleFunc("/api/user_info", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authentication") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"error": "Wrong api key"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"email": "a@b.com", "name": "A"})
	})
	return mux
}

func newTestSession(t *testing.T, svc *fakeService) (*Session, *memStore) {
	t.Helper()
	srv := httptest.NewServer(svc.handler())
	t.Cleanup(srv.Close)

	client, err := slapi.NewClient(srv.URL)
	require.NoError(t, err)

	store := &memStore{}
	return New(client, store, "test-device"), store
}

func TestLogInDirectlyAuthenticates(t *testing.T) {
	sess, store := newTestSession(t, newFakeService(false, ""))

	require.Equal(t, Anonymous, sess.State())
	state, err := sess.LogIn(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, Authenticated, state)

	key, err := sess.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "plain-key", key)
	assert.Equal(t, "plain-key", store.value, "credential must be persisted")
}

func TestLogInWithMFAFlow(t *testing.T) {
	sess, store := newTestSession(t, newFakeService(true, "123456"))

	state, err := sess.LogIn(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, AwaitingMFA, state)

	_, err = sess.APIKey()
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	require.NoError(t, sess.VerifyMFA(context.Background(), "123456"))
	assert.Equal(t, Authenticated, sess.State())

	key, err := sess.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "mfa-issued-key", key)
	assert.Equal(t, "mfa-issued-key", store.value)
}

func TestVerifyMFAFailureConsumesKey(t *testing.T) {
	sess, _ := newTestSession(t, newFakeService(true, "123456"))

	_, err := sess.LogIn(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)

	// Wrong token: the challenge is spent and the session falls back.
	err = sess.VerifyMFA(context.Background(), "000000")
	require.Error(t, err)
	assert.Equal(t, Anonymous, sess.State())

	// Retrying with the same, already-consumed key must not work.
	err = sess.VerifyMFA(context.Background(), "123456")
	assert.ErrorIs(t, err, ErrNoPendingMFA)

	// A fresh login issues a fresh key and the flow succeeds.
	_, err = sess.LogIn(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	require.NoError(t, sess.VerifyMFA(context.Background(), "123456"))
	assert.Equal(t, Authenticated, sess.State())
}

func TestCancelMFAFallsBackToAnonymous(t *testing.T) {
	sess, _ := newTestSession(t, newFakeService(true, "123456"))

	_, err := sess.LogIn(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, AwaitingMFA, sess.State())

	sess.CancelMFA()
	assert.Equal(t, Anonymous, sess.State())
	assert.ErrorIs(t, sess.VerifyMFA(context.Background(), "123456"), ErrNoPendingMFA)
}

func TestVerifyMFACancellationKeepsChallenge(t *testing.T) {
	sess, _ := newTestSession(t, newFakeService(true, "123456"))

	_, err := sess.LogIn(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // abandoned before the service could answer

	err = sess.VerifyMFA(ctx, "123456")
	require.Error(t, err)
	assert.Equal(t, AwaitingMFA, sess.State(), "cancellation must not mutate session state")

	require.NoError(t, sess.VerifyMFA(context.Background(), "123456"))
	assert.Equal(t, Authenticated, sess.State())
}

func TestLogInWithAPIKey(t *testing.T) {
	sess, store := newTestSession(t, newFakeService(false, ""))

	info, err := sess.LogInWithAPIKey(context.Background(), "pasted-key")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", info.Email)
	assert.Equal(t, Authenticated, sess.State())
	assert.Equal(t, "pasted-key", store.value)
}

func TestLogOutClearsEverything(t *testing.T) {
	sess, store := newTestSession(t, newFakeService(false, ""))

	_, err := sess.LogIn(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)

	require.NoError(t, sess.LogOut())
	assert.Equal(t, Anonymous, sess.State())
	assert.Empty(t, store.value)
	_, err = sess.APIKey()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestRestorePicksUpPersistedCredential(t *testing.T) {
	srv := httptest.NewServer(newFakeService(false, "").handler())
	t.Cleanup(srv.Close)
	client, err := slapi.NewClient(srv.URL)
	require.NoError(t, err)

	store := &memStore{value: "stored-key"}
	sess := New(client, store, "test-device")
	require.NoError(t, sess.Restore())

	assert.Equal(t, Authenticated, sess.State())
	key, err := sess.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "stored-key", key)

	// Restore with an empty store stays Anonymous.
	fresh := New(client, &memStore{}, "test-device")
	require.NoError(t, fresh.Restore())
	assert.Equal(t, Anonymous, fresh.State())
}

func TestConcurrentReadsDuringLogin(t *testing.T) {
	sess, _ := newTestSession(t, newFakeService(false, ""))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				sess.State()
				sess.APIKey()
			}
		}()
	}
	_, err := sess.LogIn(context.Background(), "a@b.com", "pw")
	wg.Wait()
	require.NoError(t, err)
	assert.Equal(t, Authenticated, sess.State())
}
