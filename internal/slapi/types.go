package slapi

// PageSize is the fixed page length of every list endpoint. The service
// sends no total count; a page shorter than this means end-of-data.
const PageSize = 20

// RandomMode selects how the service generates a random alias.
type RandomMode string

const (
	RandomModeWord RandomMode = "word"
	RandomModeUUID RandomMode = "uuid"
)

// UserLogin is the login response. When MFAEnabled is set the credential is
// absent and MFAKey must be exchanged through the MFA verification call.
type UserLogin struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	APIKey     string `json:"api_key"`
	MFAEnabled bool   `json:"mfa_enabled"`
	MFAKey     string `json:"mfa_key"`
}

// APIKeyResponse is the MFA verification response carrying the credential.
type APIKeyResponse struct {
	APIKey string `json:"api_key"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// UserInfo is the account profile.
type UserInfo struct {
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	ProfilePictureURL NullString `json:"profile_picture_url"`
	IsPremium         bool       `json:"is_premium"`
	InTrial           bool       `json:"in_trial"`
}

// UserSettings is the account settings record.
type UserSettings struct {
	AliasGenerator           string `json:"alias_generator"`
	Notification             bool   `json:"notification"`
	RandomMode               string `json:"random_mode"`
	RandomAliasDefaultDomain string `json:"random_alias_default_domain"`
	RandomAliasSuffix        string `json:"random_alias_suffix"`
	SenderFormat             string `json:"sender_format"`
}

// SettingsOption is one settings field to patch. The settings endpoint
// updates a single field per call; constructors below enumerate the fields
// the service accepts.
type SettingsOption struct {
	field string
	value any
}

func AliasGeneratorOption(mode string) SettingsOption {
	return SettingsOption{field: "alias_generator", value: mode}
}

func NotificationOption(enabled bool) SettingsOption {
	return SettingsOption{field: "notification", value: enabled}
}

func RandomModeOption(mode RandomMode) SettingsOption {
	return SettingsOption{field: "random_mode", value: string(mode)}
}

func RandomAliasDefaultDomainOption(domain string) SettingsOption {
	return SettingsOption{field: "random_alias_default_domain", value: domain}
}

func RandomAliasSuffixOption(format string) SettingsOption {
	return SettingsOption{field: "random_alias_suffix", value: format}
}

func SenderFormatOption(format string) SettingsOption {
	return SettingsOption{field: "sender_format", value: format}
}

func (o SettingsOption) bodyFields() map[string]any {
	return map[string]any{o.field: o.value}
}

// Alias is a single email alias.
type Alias struct {
	ID                int                  `json:"id"`
	Email             string               `json:"email"`
	Name              NullString           `json:"name"`
	Enabled           bool                 `json:"enabled"`
	CreationTimestamp int64                `json:"creation_timestamp"`
	Note              NullString           `json:"note"`
	NbBlock           int                  `json:"nb_block"`
	NbForward         int                  `json:"nb_forward"`
	NbReply           int                  `json:"nb_reply"`
	Pinned            bool                 `json:"pinned"`
	Mailboxes         []AliasMailbox       `json:"mailboxes"`
	LatestActivity    *AliasLatestActivity `json:"latest_activity"`
}

// AliasMailbox is the lightweight mailbox reference embedded in an alias.
type AliasMailbox struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// AliasLatestActivity summarizes the most recent event on an alias.
type AliasLatestActivity struct {
	Action    string          `json:"action"`
	Timestamp int64           `json:"timestamp"`
	Contact   ActivityContact `json:"contact"`
}

// ActivityContact identifies the remote party of an alias activity.
type ActivityContact struct {
	Email        string     `json:"email"`
	Name         NullString `json:"name"`
	ReverseAlias NullString `json:"reverse_alias"`
}

// AliasActivity is one entry of an alias's activity log.
type AliasActivity struct {
	Action              string `json:"action"`
	From                string `json:"from"`
	To                  string `json:"to"`
	Timestamp           int64  `json:"timestamp"`
	ReverseAlias        string `json:"reverse_alias"`
	ReverseAliasAddress string `json:"reverse_alias_address"`
}

// AliasCreationRequest carries the parameters for creating a custom alias.
// SignedSuffix must come from the options endpoint; the service rejects
// suffixes it did not sign. Name and Note are optional and omitted from the
// request body when empty.
type AliasCreationRequest struct {
	Prefix       string
	SignedSuffix string
	MailboxIDs   []int
	Name         string
	Note         string
}

// Contact is a reverse-alias contact attached to an alias.
type Contact struct {
	ID                     int        `json:"id"`
	Email                  string     `json:"contact"`
	CreationTimestamp      int64      `json:"creation_timestamp"`
	LastEmailSentTimestamp *int64     `json:"last_email_sent_timestamp"`
	ReverseAlias           string     `json:"reverse_alias"`
	ReverseAliasAddress    string     `json:"reverse_alias_address"`
	Name                   NullString `json:"name"`
	Existed                bool       `json:"existed"`
	BlockForward           bool       `json:"block_forward"`
}

// Mailbox is a real inbox that receives forwarded alias traffic.
type Mailbox struct {
	ID                int    `json:"id"`
	Email             string `json:"email"`
	Default           bool   `json:"default"`
	CreationTimestamp int64  `json:"creation_timestamp"`
	NbAlias           int    `json:"nb_alias"`
	Verified          bool   `json:"verified"`
}

// CustomDomain is a user-owned domain registered with the service.
type CustomDomain struct {
	ID                int    `json:"id"`
	Domain            string `json:"domain"`
	CreationTimestamp int64  `json:"creation_timestamp"`
	NbAlias           int    `json:"nb_alias"`
	Verified          bool   `json:"verified"`
}

// DomainLite is a domain offered for alias creation, either a service
// domain or one of the user's verified custom domains.
type DomainLite struct {
	Domain   string `json:"domain"`
	IsCustom bool   `json:"is_custom"`
}

// UserOptions enumerates what the service allows for alias creation.
type UserOptions struct {
	CanCreate        bool     `json:"can_create"`
	PrefixSuggestion string   `json:"prefix_suggestion"`
	Suffixes         []Suffix `json:"suffixes"`
}

// Suffix pairs a display suffix with its server-signed form.
type Suffix struct {
	Suffix       string `json:"suffix"`
	SignedSuffix string `json:"signed_suffix"`
}

// Envelope types for list responses and one-field acknowledgements.

type aliasesResponse struct {
	Aliases []Alias `json:"aliases"`
}

type activitiesResponse struct {
	Activities []AliasActivity `json:"activities"`
}

type contactsResponse struct {
	Contacts []Contact `json:"contacts"`
}

type mailboxesResponse struct {
	Mailboxes []Mailbox `json:"mailboxes"`
}

type customDomainsResponse struct {
	CustomDomains []CustomDomain `json:"custom_domains"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}

type enabledResponse struct {
	Enabled bool `json:"enabled"`
}

type updatedResponse struct {
	Updated bool `json:"updated"`
}

type blockForwardResponse struct {
	BlockForward bool `json:"block_forward"`
}
