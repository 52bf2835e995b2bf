package slapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointDescriptors(t *testing.T) {
	tests := []struct {
		name   string
		ep     Endpoint
		method string
		path   string
		auth   bool
	}{
		{"login", LoginEndpoint{Email: "a@b.com", Password: "pw", Device: "dev"},
			http.MethodPost, "/api/auth/login", false},
		{"signup", SignUpEndpoint{Email: "a@b.com", Password: "pw"},
			http.MethodPost, "/api/auth/register", false},
		{"activate", ActivateEmailEndpoint{Email: "a@b.com", Code: "123"},
			http.MethodPost, "/api/auth/activate", false},
		{"reactivate", ReactivateEmailEndpoint{Email: "a@b.com"},
			http.MethodPost, "/api/auth/reactivate", false},
		{"forgot password", ForgotPasswordEndpoint{Email: "a@b.com"},
			http.MethodPost, "/api/auth/forgot_password", false},
		{"verify mfa", VerifyMFAEndpoint{Key: "k", Token: "t", Device: "dev"},
			http.MethodPost, "/api/auth/mfa", false},
		{"aliases", AliasesEndpoint{Page: 2},
			http.MethodGet, "/api/v2/aliases", true},
		{"aliases search", AliasesEndpoint{Page: 0, Search: "shop"},
			http.MethodPost, "/api/v2/aliases", true},
		{"get alias", GetAliasEndpoint{AliasID: 42},
			http.MethodGet, "/api/aliases/42", true},
		{"create alias", CreateAliasEndpoint{Req: AliasCreationRequest{Prefix: "p", SignedSuffix: "s"}},
			http.MethodPost, "/api/v3/alias/custom/new", true},
		{"random alias", RandomAliasEndpoint{Mode: RandomModeWord},
			http.MethodPost, "/api/alias/random/new", true},
		{"delete alias", DeleteAliasEndpoint{AliasID: 42},
			http.MethodDelete, "/api/aliases/42", true},
		{"toggle alias", ToggleAliasEndpoint{AliasID: 42},
			http.MethodPost, "/api/aliases/42/toggle", true},
		{"update alias mailboxes", UpdateAliasMailboxesEndpoint{AliasID: 42, MailboxIDs: []int{1, 2}},
			http.MethodPut, "/api/aliases/42", true},
		{"update alias name", UpdateAliasNameEndpoint{AliasID: 42, Name: StringValue("x")},
			http.MethodPut, "/api/aliases/42", true},
		{"update alias note", UpdateAliasNoteEndpoint{AliasID: 42, Note: NullValue()},
			http.MethodPut, "/api/aliases/42", true},
		{"alias activities", AliasActivitiesEndpoint{AliasID: 42, Page: 1},
			http.MethodGet, "/api/aliases/42/activities", true},
		{"contacts", ContactsEndpoint{AliasID: 42, Page: 0},
			http.MethodGet, "/api/aliases/42/contacts", true},
		{"create contact", CreateContactEndpoint{AliasID: 42, Email: "c@d.com"},
			http.MethodPost, "/api/aliases/42/contacts", true},
		{"toggle contact", ToggleContactEndpoint{ContactID: 7},
			http.MethodPost, "/api/contacts/7/toggle", true},
		{"delete contact", DeleteContactEndpoint{ContactID: 7},
			http.MethodDelete, "/api/contacts/7", true},
		{"mailboxes", MailboxesEndpoint{},
			http.MethodGet, "/api/v2/mailboxes", true},
		{"create mailbox", CreateMailboxEndpoint{Email: "m@b.com"},
			http.MethodPost, "/api/mailboxes", true},
		{"delete mailbox", DeleteMailboxEndpoint{MailboxID: 3},
			http.MethodDelete, "/api/mailboxes/3", true},
		{"make default mailbox", MakeDefaultMailboxEndpoint{MailboxID: 3},
			http.MethodPut, "/api/mailboxes/3", true},
		{"custom domains", CustomDomainsEndpoint{},
			http.MethodGet, "/api/custom_domains", true},
		{"domain lites", DomainLitesEndpoint{},
			http.MethodGet, "/api/v2/setting/domains", true},
		{"user info", UserInfoEndpoint{},
			http.MethodGet, "/api/user_info", true},
		{"update name", UpdateNameEndpoint{Name: StringValue("x")},
			http.MethodPatch, "/api/user_info", true},
		{"update profile picture", UpdateProfilePictureEndpoint{Picture: NullValue()},
			http.MethodPatch, "/api/user_info", true},
		{"user settings", UserSettingsEndpoint{},
			http.MethodGet, "/api/setting", true},
		{"update user settings", UpdateUserSettingsEndpoint{Option: NotificationOption(true)},
			http.MethodPatch, "/api/setting", true},
		{"user options", UserOptionsEndpoint{},
			http.MethodGet, "/api/v5/alias/options", true},
		{"process payment", ProcessPaymentEndpoint{ReceiptData: "r"},
			http.MethodPost, "/api/apple/process_payment", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.method, tt.ep.Method())
			assert.Equal(t, tt.path, tt.ep.Path())
			assert.Equal(t, tt.auth, tt.ep.RequiresAuth())
		})
	}
}

func TestEndpointDescriptorsAreStable(t *testing.T) {
	// Same parameters always produce the same descriptor output.
	for i := 0; i < 3; i++ {
		ep := AliasActivitiesEndpoint{AliasID: 9, Page: 4}
		assert.Equal(t, "/api/aliases/9/activities", ep.Path())
		assert.Equal(t, "page_id=4", ep.Query().Encode())
	}
}

func TestEndpointQueries(t *testing.T) {
	assert.Equal(t, "page_id=3", AliasesEndpoint{Page: 3}.Query().Encode())
	assert.Equal(t, "mode=uuid", RandomAliasEndpoint{Mode: RandomModeUUID}.Query().Encode())
	assert.Nil(t, UserOptionsEndpoint{}.Query())
	assert.Equal(t, "hostname=news.ycombinator.com",
		UserOptionsEndpoint{Hostname: "news.ycombinator.com"}.Query().Encode())
	assert.Nil(t, CreateAliasEndpoint{}.Query())
	assert.Equal(t, "hostname=example.com",
		CreateAliasEndpoint{Hostname: "example.com"}.Query().Encode())
}

func TestEndpointBodies(t *testing.T) {
	login := LoginEndpoint{Email: "a@b.com", Password: "pw", Device: "iPhone"}
	require.Equal(t, map[string]any{
		"email":    "a@b.com",
		"password": "pw",
		"device":   "iPhone",
	}, login.BodyFields())

	mfa := VerifyMFAEndpoint{Key: "k", Token: "000111", Device: "iPhone"}
	require.Equal(t, map[string]any{
		"mfa_key":   "k",
		"mfa_token": "000111",
		"device":    "iPhone",
	}, mfa.BodyFields())

	assert.Nil(t, AliasesEndpoint{Page: 1}.BodyFields())
	assert.Equal(t, map[string]any{"query": "shop"},
		AliasesEndpoint{Page: 1, Search: "shop"}.BodyFields())

	assert.Equal(t, map[string]any{"contact": "c@d.com"},
		CreateContactEndpoint{AliasID: 1, Email: "c@d.com"}.BodyFields())

	assert.Equal(t, map[string]any{"default": true},
		MakeDefaultMailboxEndpoint{MailboxID: 1}.BodyFields())

	create := CreateAliasEndpoint{Req: AliasCreationRequest{
		Prefix:       "shop",
		SignedSuffix: ".signed",
		MailboxIDs:   []int{1},
	}}
	fields := create.BodyFields()
	assert.Equal(t, "shop", fields["alias_prefix"])
	assert.Equal(t, ".signed", fields["signed_suffix"])
	assert.NotContains(t, fields, "name")
	assert.NotContains(t, fields, "note")

	withNote := CreateAliasEndpoint{Req: AliasCreationRequest{
		Prefix:       "shop",
		SignedSuffix: ".signed",
		MailboxIDs:   []int{1},
		Note:         "from test",
	}}
	assert.Equal(t, "from test", withNote.BodyFields()["note"])
}
