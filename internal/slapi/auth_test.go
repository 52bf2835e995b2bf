package slapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginWithoutMFA(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authentication"))
		w.Write([]byte(`{"mfa_enabled": false, "api_key": "abc123", "email": "a@b.com", "name": "A"}`))
	}))

	ul, err := client.Login(context.Background(), "a@b.com", "pw", "iPhone")
	require.NoError(t, err)
	assert.Equal(t, "abc123", ul.APIKey)
	assert.False(t, ul.MFAEnabled)
	assert.Equal(t, 1, calls, "login must be a single network call")
}

func TestLoginWithMFA(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"mfa_enabled": true, "mfa_key": "one-shot", "email": "a@b.com"}`))
	}))

	ul, err := client.Login(context.Background(), "a@b.com", "pw", "iPhone")
	require.NoError(t, err)
	assert.True(t, ul.MFAEnabled)
	assert.Equal(t, "one-shot", ul.MFAKey)
	assert.Empty(t, ul.APIKey)
}

func TestLoginMFAWithoutKeyIsProtocolViolation(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"mfa_enabled": true}`))
	}))

	_, err := client.Login(context.Background(), "a@b.com", "pw", "iPhone")
	var protoErr *ProtocolInvariantError
	require.ErrorAs(t, err, &protoErr)
}

func TestLoginWithoutKeyOrMFAIsProtocolViolation(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"mfa_enabled": false}`))
	}))

	_, err := client.Login(context.Background(), "a@b.com", "pw", "iPhone")
	var protoErr *ProtocolInvariantError
	require.ErrorAs(t, err, &protoErr)
}

func TestVerifyMFA(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/mfa", r.URL.Path)
		w.Write([]byte(`{"api_key": "fresh-key", "email": "a@b.com"}`))
	}))

	resp, err := client.VerifyMFA(context.Background(), "one-shot", "123456", "iPhone")
	require.NoError(t, err)
	assert.Equal(t, "fresh-key", resp.APIKey)
}

func TestVerifyMFARejectedByService(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Wrong TOTP token"}`))
	}))

	_, err := client.VerifyMFA(context.Background(), "one-shot", "000000", "iPhone")
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Wrong TOTP token", apiErr.Message)
}

func TestForgotPassword(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/forgot_password", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authentication"))
		w.Write([]byte(`{"ok": true}`))
	}))

	require.NoError(t, client.ForgotPassword(context.Background(), "a@b.com"))
}
