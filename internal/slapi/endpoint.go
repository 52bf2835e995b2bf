package slapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Endpoint is the pure description of one API call: its method, path,
// query parameters, JSON body fields, and whether it carries the API key.
// Descriptors hold no hidden state; path and method are functions of the
// descriptor's fields alone. One descriptor type exists per operation so
// each call site can only supply the parameters that operation takes.
type Endpoint interface {
	Method() string
	Path() string
	RequiresAuth() bool
	Query() url.Values
	BodyFields() map[string]any
}

// Small embeddable defaults so each descriptor only spells out what it
// actually uses.

type authed struct{}

func (authed) RequiresAuth() bool { return true }

type unauthed struct{}

func (unauthed) RequiresAuth() bool { return false }

type noQuery struct{}

func (noQuery) Query() url.Values { return nil }

type noBody struct{}

func (noBody) BodyFields() map[string]any { return nil }

func pageQuery(page int) url.Values {
	return url.Values{"page_id": []string{strconv.Itoa(page)}}
}

// --- Auth ---

// LoginEndpoint authenticates with email and password. The device name
// labels the issued API key on the user's account.
type LoginEndpoint struct {
	unauthed
	noQuery
	Email    string
	Password string
	Device   string
}

func (LoginEndpoint) Method() string { return http.MethodPost }
func (LoginEndpoint) Path() string   { return "/api/auth/login" }
func (e LoginEndpoint) BodyFields() map[string]any {
	return map[string]any{
		"email":    e.Email,
		"password": e.Password,
		"device":   e.Device,
	}
}

// SignUpEndpoint registers a new account. The account must be activated
// with the emailed code before it can log in.
type SignUpEndpoint struct {
	unauthed
	noQuery
	Email    string
	Password string
}

func (SignUpEndpoint) Method() string { return http.MethodPost }
func (SignUpEndpoint) Path() string   { return "/api/auth/register" }
func (e SignUpEndpoint) BodyFields() map[string]any {
	return map[string]any{"email": e.Email, "password": e.Password}
}

// ActivateEmailEndpoint confirms a sign-up with the emailed code.
type ActivateEmailEndpoint struct {
	unauthed
	noQuery
	Email string
	Code  string
}

func (ActivateEmailEndpoint) Method() string { return http.MethodPost }
func (ActivateEmailEndpoint) Path() string   { return "/api/auth/activate" }
func (e ActivateEmailEndpoint) BodyFields() map[string]any {
	return map[string]any{"email": e.Email, "code": e.Code}
}

// ReactivateEmailEndpoint requests a fresh activation code.
type ReactivateEmailEndpoint struct {
	unauthed
	noQuery
	Email string
}

func (ReactivateEmailEndpoint) Method() string { return http.MethodPost }
func (ReactivateEmailEndpoint) Path() string   { return "/api/auth/reactivate" }
func (e ReactivateEmailEndpoint) BodyFields() map[string]any {
	return map[string]any{"email": e.Email}
}

// ForgotPasswordEndpoint triggers a password-reset email.
type ForgotPasswordEndpoint struct {
	unauthed
	noQuery
	Email string
}

func (ForgotPasswordEndpoint) Method() string { return http.MethodPost }
func (ForgotPasswordEndpoint) Path() string   { return "/api/auth/forgot_password" }
func (e ForgotPasswordEndpoint) BodyFields() map[string]any {
	return map[string]any{"email": e.Email}
}

// VerifyMFAEndpoint exchanges a one-shot MFA key plus the user's TOTP token
// for an API key.
type VerifyMFAEndpoint struct {
	unauthed
	noQuery
	Key    string
	Token  string
	Device string
}

func (VerifyMFAEndpoint) Method() string { return http.MethodPost }
func (VerifyMFAEndpoint) Path() string   { return "/api/auth/mfa" }
func (e VerifyMFAEndpoint) BodyFields() map[string]any {
	return map[string]any{
		"mfa_token": e.Token,
		"mfa_key":   e.Key,
		"device":    e.Device,
	}
}

// --- Aliases ---

// AliasesEndpoint lists a page of aliases. A non-empty Search switches the
// call to POST with the search query in the body, per the service contract.
type AliasesEndpoint struct {
	authed
	Page   int
	Search string
}

func (e AliasesEndpoint) Method() string {
	if e.Search != "" {
		return http.MethodPost
	}
	return http.MethodGet
}
func (AliasesEndpoint) Path() string        { return "/api/v2/aliases" }
func (e AliasesEndpoint) Query() url.Values { return pageQuery(e.Page) }
func (e AliasesEndpoint) BodyFields() map[string]any {
	if e.Search == "" {
		return nil
	}
	return map[string]any{"query": e.Search}
}

// GetAliasEndpoint fetches a single alias.
type GetAliasEndpoint struct {
	authed
	noQuery
	noBody
	AliasID int
}

func (GetAliasEndpoint) Method() string { return http.MethodGet }
func (e GetAliasEndpoint) Path() string { return fmt.Sprintf("/api/aliases/%d", e.AliasID) }

// CreateAliasEndpoint creates a custom alias from a prefix and a signed
// suffix obtained from the options endpoint.
type CreateAliasEndpoint struct {
	authed
	Req      AliasCreationRequest
	Hostname string
}

func (CreateAliasEndpoint) Method() string { return http.MethodPost }
func (CreateAliasEndpoint) Path() string   { return "/api/v3/alias/custom/new" }
func (e CreateAliasEndpoint) Query() url.Values {
	if e.Hostname == "" {
		return nil
	}
	return url.Values{"hostname": []string{e.Hostname}}
}
func (e CreateAliasEndpoint) BodyFields() map[string]any {
	fields := map[string]any{
		"alias_prefix":  e.Req.Prefix,
		"signed_suffix": e.Req.SignedSuffix,
		"mailbox_ids":   e.Req.MailboxIDs,
	}
	if e.Req.Name != "" {
		fields["name"] = e.Req.Name
	}
	if e.Req.Note != "" {
		fields["note"] = e.Req.Note
	}
	return fields
}

// RandomAliasEndpoint creates a random alias in the given mode.
type RandomAliasEndpoint struct {
	authed
	noBody
	Mode RandomMode
}

func (RandomAliasEndpoint) Method() string { return http.MethodPost }
func (RandomAliasEndpoint) Path() string   { return "/api/alias/random/new" }
func (e RandomAliasEndpoint) Query() url.Values {
	return url.Values{"mode": []string{string(e.Mode)}}
}

// DeleteAliasEndpoint deletes an alias.
type DeleteAliasEndpoint struct {
	authed
	noQuery
	noBody
	AliasID int
}

func (DeleteAliasEndpoint) Method() string { return http.MethodDelete }
func (e DeleteAliasEndpoint) Path() string { return fmt.Sprintf("/api/aliases/%d", e.AliasID) }

// ToggleAliasEndpoint flips an alias between enabled and disabled. Each
// call flips; it is not safe to retry blindly.
type ToggleAliasEndpoint struct {
	authed
	noQuery
	noBody
	AliasID int
}

func (ToggleAliasEndpoint) Method() string { return http.MethodPost }
func (e ToggleAliasEndpoint) Path() string {
	return fmt.Sprintf("/api/aliases/%d/toggle", e.AliasID)
}

// UpdateAliasMailboxesEndpoint replaces the set of mailboxes owning an alias.
type UpdateAliasMailboxesEndpoint struct {
	authed
	noQuery
	AliasID    int
	MailboxIDs []int
}

func (UpdateAliasMailboxesEndpoint) Method() string { return http.MethodPut }
func (e UpdateAliasMailboxesEndpoint) Path() string {
	return fmt.Sprintf("/api/aliases/%d", e.AliasID)
}
func (e UpdateAliasMailboxesEndpoint) BodyFields() map[string]any {
	return map[string]any{"mailbox_ids": e.MailboxIDs}
}

// UpdateAliasNameEndpoint sets or clears an alias display name. An invalid
// NullString serializes to JSON null, which the service treats as "clear".
type UpdateAliasNameEndpoint struct {
	authed
	noQuery
	AliasID int
	Name    NullString
}

func (UpdateAliasNameEndpoint) Method() string { return http.MethodPut }
func (e UpdateAliasNameEndpoint) Path() string {
	return fmt.Sprintf("/api/aliases/%d", e.AliasID)
}
func (e UpdateAliasNameEndpoint) BodyFields() map[string]any {
	return map[string]any{"name": e.Name}
}

// UpdateAliasNoteEndpoint sets or clears an alias note, with the same
// null-means-clear semantics as the name update.
type UpdateAliasNoteEndpoint struct {
	authed
	noQuery
	AliasID int
	Note    NullString
}

func (UpdateAliasNoteEndpoint) Method() string { return http.MethodPut }
func (e UpdateAliasNoteEndpoint) Path() string {
	return fmt.Sprintf("/api/aliases/%d", e.AliasID)
}
func (e UpdateAliasNoteEndpoint) BodyFields() map[string]any {
	return map[string]any{"note": e.Note}
}

// AliasActivitiesEndpoint lists a page of an alias's activity log.
type AliasActivitiesEndpoint struct {
	authed
	noBody
	AliasID int
	Page    int
}

func (AliasActivitiesEndpoint) Method() string { return http.MethodGet }
func (e AliasActivitiesEndpoint) Path() string {
	return fmt.Sprintf("/api/aliases/%d/activities", e.AliasID)
}
func (e AliasActivitiesEndpoint) Query() url.Values { return pageQuery(e.Page) }

// --- Contacts ---

// ContactsEndpoint lists a page of an alias's contacts.
type ContactsEndpoint struct {
	authed
	noBody
	AliasID int
	Page    int
}

func (ContactsEndpoint) Method() string { return http.MethodGet }
func (e ContactsEndpoint) Path() string {
	return fmt.Sprintf("/api/aliases/%d/contacts", e.AliasID)
}
func (e ContactsEndpoint) Query() url.Values { return pageQuery(e.Page) }

// CreateContactEndpoint creates a reverse-alias contact for an alias.
type CreateContactEndpoint struct {
	authed
	noQuery
	AliasID int
	Email   string
}

func (CreateContactEndpoint) Method() string { return http.MethodPost }
func (e CreateContactEndpoint) Path() string {
	return fmt.Sprintf("/api/aliases/%d/contacts", e.AliasID)
}
func (e CreateContactEndpoint) BodyFields() map[string]any {
	return map[string]any{"contact": e.Email}
}

// ToggleContactEndpoint flips forward-blocking for a contact.
type ToggleContactEndpoint struct {
	authed
	noQuery
	noBody
	ContactID int
}

func (ToggleContactEndpoint) Method() string { return http.MethodPost }
func (e ToggleContactEndpoint) Path() string {
	return fmt.Sprintf("/api/contacts/%d/toggle", e.ContactID)
}

// DeleteContactEndpoint deletes a contact.
type DeleteContactEndpoint struct {
	authed
	noQuery
	noBody
	ContactID int
}

func (DeleteContactEndpoint) Method() string { return http.MethodDelete }
func (e DeleteContactEndpoint) Path() string {
	return fmt.Sprintf("/api/contacts/%d", e.ContactID)
}

// --- Mailboxes ---

// MailboxesEndpoint lists all mailboxes on the account.
type MailboxesEndpoint struct {
	authed
	noQuery
	noBody
}

func (MailboxesEndpoint) Method() string { return http.MethodGet }
func (MailboxesEndpoint) Path() string   { return "/api/v2/mailboxes" }

// CreateMailboxEndpoint adds a mailbox; the address must then be verified.
type CreateMailboxEndpoint struct {
	authed
	noQuery
	Email string
}

func (CreateMailboxEndpoint) Method() string { return http.MethodPost }
func (CreateMailboxEndpoint) Path() string   { return "/api/mailboxes" }
func (e CreateMailboxEndpoint) BodyFields() map[string]any {
	return map[string]any{"email": e.Email}
}

// DeleteMailboxEndpoint removes a mailbox.
type DeleteMailboxEndpoint struct {
	authed
	noQuery
	noBody
	MailboxID int
}

func (DeleteMailboxEndpoint) Method() string { return http.MethodDelete }
func (e DeleteMailboxEndpoint) Path() string {
	return fmt.Sprintf("/api/mailboxes/%d", e.MailboxID)
}

// MakeDefaultMailboxEndpoint marks a mailbox as the account default.
type MakeDefaultMailboxEndpoint struct {
	authed
	noQuery
	MailboxID int
}

func (MakeDefaultMailboxEndpoint) Method() string { return http.MethodPut }
func (e MakeDefaultMailboxEndpoint) Path() string {
	return fmt.Sprintf("/api/mailboxes/%d", e.MailboxID)
}
func (MakeDefaultMailboxEndpoint) BodyFields() map[string]any {
	return map[string]any{"default": true}
}

// --- Domains ---

// CustomDomainsEndpoint lists the account's custom domains.
type CustomDomainsEndpoint struct {
	authed
	noQuery
	noBody
}

func (CustomDomainsEndpoint) Method() string { return http.MethodGet }
func (CustomDomainsEndpoint) Path() string   { return "/api/custom_domains" }

// DomainLitesEndpoint lists the domains usable for new aliases.
type DomainLitesEndpoint struct {
	authed
	noQuery
	noBody
}

func (DomainLitesEndpoint) Method() string { return http.MethodGet }
func (DomainLitesEndpoint) Path() string   { return "/api/v2/setting/domains" }

// --- User ---

// UserInfoEndpoint fetches the account profile.
type UserInfoEndpoint struct {
	authed
	noQuery
	noBody
}

func (UserInfoEndpoint) Method() string { return http.MethodGet }
func (UserInfoEndpoint) Path() string   { return "/api/user_info" }

// UpdateNameEndpoint sets or clears the account display name.
type UpdateNameEndpoint struct {
	authed
	noQuery
	Name NullString
}

func (UpdateNameEndpoint) Method() string { return http.MethodPatch }
func (UpdateNameEndpoint) Path() string   { return "/api/user_info" }
func (e UpdateNameEndpoint) BodyFields() map[string]any {
	return map[string]any{"name": e.Name}
}

// UpdateProfilePictureEndpoint sets or clears the profile picture
// (base64-encoded image data, null to remove).
type UpdateProfilePictureEndpoint struct {
	authed
	noQuery
	Picture NullString
}

func (UpdateProfilePictureEndpoint) Method() string { return http.MethodPatch }
func (UpdateProfilePictureEndpoint) Path() string   { return "/api/user_info" }
func (e UpdateProfilePictureEndpoint) BodyFields() map[string]any {
	return map[string]any{"profile_picture": e.Picture}
}

// UserSettingsEndpoint fetches the account settings.
type UserSettingsEndpoint struct {
	authed
	noQuery
	noBody
}

func (UserSettingsEndpoint) Method() string { return http.MethodGet }
func (UserSettingsEndpoint) Path() string   { return "/api/setting" }

// UpdateUserSettingsEndpoint patches exactly one settings field.
type UpdateUserSettingsEndpoint struct {
	authed
	noQuery
	Option SettingsOption
}

func (UpdateUserSettingsEndpoint) Method() string { return http.MethodPatch }
func (UpdateUserSettingsEndpoint) Path() string   { return "/api/setting" }
func (e UpdateUserSettingsEndpoint) BodyFields() map[string]any {
	return e.Option.bodyFields()
}

// UserOptionsEndpoint fetches alias-creation options (suffixes, prefix
// suggestion); an optional hostname tailors the suggestion.
type UserOptionsEndpoint struct {
	authed
	noBody
	Hostname string
}

func (UserOptionsEndpoint) Method() string { return http.MethodGet }
func (UserOptionsEndpoint) Path() string   { return "/api/v5/alias/options" }
func (e UserOptionsEndpoint) Query() url.Values {
	if e.Hostname == "" {
		return nil
	}
	return url.Values{"hostname": []string{e.Hostname}}
}

// --- Payment ---

// ProcessPaymentEndpoint submits an in-app purchase receipt.
type ProcessPaymentEndpoint struct {
	authed
	noQuery
	ReceiptData string
}

func (ProcessPaymentEndpoint) Method() string { return http.MethodPost }
func (ProcessPaymentEndpoint) Path() string   { return "/api/apple/process_payment" }
func (e ProcessPaymentEndpoint) BodyFields() map[string]any {
	return map[string]any{"receipt_data": e.ReceiptData}
}
