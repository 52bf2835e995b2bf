package slapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateNameClearsWithNull(t *testing.T) {
	var gotMethod, gotBody string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte(`{"name": "", "email": "a@b.com"}`))
	}))

	info, err := client.UpdateName(context.Background(), "k", NullValue())
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.JSONEq(t, `{"name": null}`, gotBody)
	assert.Empty(t, info.Name)
}

func TestUpdateUserSettingsPatchesOneField(t *testing.T) {
	var gotBody map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/setting", r.URL.Path)
		assert.Equal(t, http.MethodPatch, r.Method)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.Write([]byte(`{"alias_generator": "word", "notification": false}`))
	}))

	settings, err := client.UpdateUserSettings(context.Background(), "k", NotificationOption(false))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"notification": false}, gotBody)
	assert.False(t, settings.Notification)
}

func TestFetchUserOptions(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v5/alias/options", r.URL.Path)
		assert.Equal(t, "news.example.com", r.URL.Query().Get("hostname"))
		w.Write([]byte(`{
			"can_create": true,
			"prefix_suggestion": "news",
			"suffixes": [{"suffix": ".abc@sl.io", "signed_suffix": ".abc@sl.io.Xsig"}]
		}`))
	}))

	options, err := client.FetchUserOptions(context.Background(), "k", "news.example.com")
	require.NoError(t, err)
	assert.True(t, options.CanCreate)
	assert.Equal(t, "news", options.PrefixSuggestion)
	require.Len(t, options.Suffixes, 1)
	assert.Equal(t, ".abc@sl.io.Xsig", options.Suffixes[0].SignedSuffix)
}

func TestMakeDefaultMailbox(t *testing.T) {
	var gotBody string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/mailboxes/5", r.URL.Path)
		assert.Equal(t, http.MethodPut, r.Method)
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte(`{"updated": true}`))
	}))

	require.NoError(t, client.MakeDefaultMailbox(context.Background(), "k", 5))
	assert.JSONEq(t, `{"default": true}`, gotBody)
}

func TestToggleContactReturnsBlockState(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/contacts/8/toggle", r.URL.Path)
		w.Write([]byte(`{"block_forward": true}`))
	}))

	blocked, err := client.ToggleContact(context.Background(), "k", 8)
	require.NoError(t, err)
	assert.True(t, blocked)
}

func TestCreateContactReportsExisting(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"contact": "friend@example.com"}`, string(body))
		w.Write([]byte(`{
			"id": 3,
			"contact": "friend@example.com",
			"reverse_alias_address": "friend.at.example.com.abc@sl.io",
			"existed": true
		}`))
	}))

	contact, err := client.CreateContact(context.Background(), "k", 1, "friend@example.com")
	require.NoError(t, err)
	assert.True(t, contact.Existed)
	assert.Equal(t, "friend@example.com", contact.Email)
}

func TestProcessPayment(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/apple/process_payment", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"receipt_data": "base64receipt"}`, string(body))
		w.Write([]byte(`{"ok": true}`))
	}))

	require.NoError(t, client.ProcessPayment(context.Background(), "k", "base64receipt"))
}

func TestFetchDomainLitesDecodesBareArray(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/setting/domains", r.URL.Path)
		w.Write([]byte(`[
			{"domain": "sl.io", "is_custom": false},
			{"domain": "mine.dev", "is_custom": true}
		]`))
	}))

	domains, err := client.FetchDomainLites(context.Background(), "k")
	require.NoError(t, err)
	require.Len(t, domains, 2)
	assert.False(t, domains[0].IsCustom)
	assert.True(t, domains[1].IsCustom)
}
