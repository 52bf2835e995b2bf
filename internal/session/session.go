// Package session owns the login lifecycle: it holds the live credential,
// drives the MFA challenge flow, and persists the credential through a
// pluggable store. Exactly one Session is live per process; operations
// read the credential concurrently while the login and logout transitions
// are the only writers.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/nvhoang/aliasctl/internal/slapi"
)

// State is the session lifecycle state.
type State int

const (
	// Anonymous means no credential is held.
	Anonymous State = iota
	// AwaitingMFA means login succeeded pending the one-shot MFA exchange.
	// This state is never persisted.
	AwaitingMFA
	// Authenticated means a credential is held and attached to requests.
	Authenticated
)

func (s State) String() string {
	switch s {
	case AwaitingMFA:
		return "awaiting-mfa"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// ErrNotAuthenticated is returned when an operation needs a credential and
// the session holds none.
var ErrNotAuthenticated = errors.New("not logged in")

// ErrNoPendingMFA is returned by VerifyMFA outside the AwaitingMFA state,
// including after a failed verification consumed the key.
var ErrNoPendingMFA = errors.New("no pending MFA challenge; log in again")

// Store persists the single credential value between runs. Implementations
// return an error from Get when no credential is stored.
type Store interface {
	Get() (string, error)
	Set(value string) error
	Delete() error
}

// Session mediates between the API client and the credential store.
type Session struct {
	client *slapi.Client
	store  Store
	device string

	mu     sync.RWMutex
	state  State
	apiKey string
	mfaKey string
}

// New creates an Anonymous session. Call Restore to pick up a credential
// persisted by an earlier run.
func New(client *slapi.Client, store Store, device string) *Session {
	return &Session{
		client: client,
		store:  store,
		device: device,
		state:  Anonymous,
	}
}

// Client returns the underlying API client, for operations that do not
// touch session state.
func (s *Session) Client() *slapi.Client { return s.client }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// APIKey returns the live credential, or ErrNotAuthenticated.
func (s *Session) APIKey() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != Authenticated {
		return "", ErrNotAuthenticated
	}
	return s.apiKey, nil
}

// Restore loads a previously persisted credential from the store. A
// missing credential leaves the session Anonymous and returns nil.
func (s *Session) Restore() error {
	key, err := s.store.Get()
	if err != nil || key == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = key
	s.state = Authenticated
	return nil
}

// LogIn authenticates with email and password. On a direct success the
// session becomes Authenticated and the credential is persisted. When the
// account has MFA enabled the session moves to AwaitingMFA and the caller
// must follow up with VerifyMFA.
func (s *Session) LogIn(ctx context.Context, email, password string) (State, error) {
	ul, err := s.client.Login(ctx, email, password, s.device)
	if err != nil {
		return s.State(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ul.MFAEnabled {
		s.mfaKey = ul.MFAKey
		s.state = AwaitingMFA
		return AwaitingMFA, nil
	}

	s.apiKey = ul.APIKey
	s.state = Authenticated
	s.mfaKey = ""
	if err := s.store.Set(ul.APIKey); err != nil {
		return Authenticated, err
	}
	return Authenticated, nil
}

// VerifyMFA exchanges the pending MFA key and the user's TOTP token for a
// credential. The key is single-use: any completed attempt consumes it,
// and after a failure the session falls back to Anonymous so the caller
// must log in again for a fresh key. Cancellation before the service
// answered leaves the pending challenge untouched.
func (s *Session) VerifyMFA(ctx context.Context, token string) error {
	s.mu.RLock()
	key := s.mfaKey
	pending := s.state == AwaitingMFA
	s.mu.RUnlock()

	if !pending {
		return ErrNoPendingMFA
	}

	resp, err := s.client.VerifyMFA(ctx, key, token, s.device)
	if err != nil {
		if abandoned(ctx, err) {
			return err
		}
		s.mu.Lock()
		s.mfaKey = ""
		s.state = Anonymous
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = resp.APIKey
	s.mfaKey = ""
	s.state = Authenticated
	return s.store.Set(resp.APIKey)
}

// CancelMFA abandons a pending MFA challenge, returning to Anonymous.
func (s *Session) CancelMFA() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == AwaitingMFA {
		s.mfaKey = ""
		s.state = Anonymous
	}
}

// LogInWithAPIKey adopts a raw API key after validating it with a profile
// fetch, then persists it.
func (s *Session) LogInWithAPIKey(ctx context.Context, apiKey string) (*slapi.UserInfo, error) {
	info, err := s.client.FetchUserInfo(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = apiKey
	s.mfaKey = ""
	s.state = Authenticated
	if err := s.store.Set(apiKey); err != nil {
		return info, err
	}
	return info, nil
}

// LogOut clears the live credential and the persisted copy.
func (s *Session) LogOut() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = ""
	s.mfaKey = ""
	s.state = Anonymous
	return s.store.Delete()
}

// abandoned reports whether err is the caller walking away (context
// cancelled or timed out) rather than the service answering. Abandoning an
// in-flight call must not mutate session state.
func abandoned(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
