package slapi

import "context"

// AliasPage is one page of aliases. HasMore is derived from the page-size
// convention; the page counter itself stays with the caller.
type AliasPage struct {
	Aliases []Alias
	HasMore bool
}

// ActivityPage is one page of alias activities.
type ActivityPage struct {
	Activities []AliasActivity
	HasMore    bool
}

// FetchAliases retrieves one zero-based page of aliases, optionally
// filtered by a search term. The client keeps no cursor; callers advance
// page themselves and stop when HasMore is false.
func (c *Client) FetchAliases(ctx context.Context, apiKey string, page int, search string) (*AliasPage, error) {
	var resp aliasesResponse
	err := c.do(ctx, AliasesEndpoint{Page: page, Search: search}, apiKey, &resp)
	if err != nil {
		return nil, err
	}
	return &AliasPage{
		Aliases: resp.Aliases,
		HasMore: len(resp.Aliases) >= PageSize,
	}, nil
}

// GetAlias fetches a single alias by id.
func (c *Client) GetAlias(ctx context.Context, apiKey string, aliasID int) (*Alias, error) {
	var alias Alias
	if err := c.do(ctx, GetAliasEndpoint{AliasID: aliasID}, apiKey, &alias); err != nil {
		return nil, err
	}
	return &alias, nil
}

// CreateAlias creates a custom alias. hostname, when non-empty, tells the
// service which site the alias is for.
func (c *Client) CreateAlias(ctx context.Context, apiKey string, req AliasCreationRequest, hostname string) (*Alias, error) {
	var alias Alias
	err := c.do(ctx, CreateAliasEndpoint{Req: req, Hostname: hostname}, apiKey, &alias)
	if err != nil {
		return nil, err
	}
	return &alias, nil
}

// RandomAlias creates a random alias in the given mode.
func (c *Client) RandomAlias(ctx context.Context, apiKey string, mode RandomMode) (*Alias, error) {
	var alias Alias
	if err := c.do(ctx, RandomAliasEndpoint{Mode: mode}, apiKey, &alias); err != nil {
		return nil, err
	}
	return &alias, nil
}

// DeleteAlias deletes an alias and reports whether the service confirmed
// the deletion.
func (c *Client) DeleteAlias(ctx context.Context, apiKey string, aliasID int) (bool, error) {
	var resp deletedResponse
	if err := c.do(ctx, DeleteAliasEndpoint{AliasID: aliasID}, apiKey, &resp); err != nil {
		return false, err
	}
	return resp.Deleted, nil
}

// ToggleAlias flips an alias between enabled and disabled and returns the
// resulting state. Each call flips again, so a blind retry after an
// ambiguous failure can undo a toggle that actually landed.
func (c *Client) ToggleAlias(ctx context.Context, apiKey string, aliasID int) (bool, error) {
	var resp enabledResponse
	if err := c.do(ctx, ToggleAliasEndpoint{AliasID: aliasID}, apiKey, &resp); err != nil {
		return false, err
	}
	return resp.Enabled, nil
}

// UpdateAliasMailboxes replaces the mailboxes that own the alias.
func (c *Client) UpdateAliasMailboxes(ctx context.Context, apiKey string, aliasID int, mailboxIDs []int) error {
	var resp okResponse
	return c.do(ctx, UpdateAliasMailboxesEndpoint{AliasID: aliasID, MailboxIDs: mailboxIDs}, apiKey, &resp)
}

// UpdateAliasName sets or clears an alias display name. Pass NullValue()
// to clear; there is no way to leave the field untouched.
func (c *Client) UpdateAliasName(ctx context.Context, apiKey string, aliasID int, name NullString) error {
	var resp okResponse
	return c.do(ctx, UpdateAliasNameEndpoint{AliasID: aliasID, Name: name}, apiKey, &resp)
}

// UpdateAliasNote sets or clears an alias note, with the same semantics as
// UpdateAliasName.
func (c *Client) UpdateAliasNote(ctx context.Context, apiKey string, aliasID int, note NullString) error {
	var resp okResponse
	return c.do(ctx, UpdateAliasNoteEndpoint{AliasID: aliasID, Note: note}, apiKey, &resp)
}

// FetchAliasActivities retrieves one zero-based page of an alias's
// activity log.
func (c *Client) FetchAliasActivities(ctx context.Context, apiKey string, aliasID, page int) (*ActivityPage, error) {
	var resp activitiesResponse
	err := c.do(ctx, AliasActivitiesEndpoint{AliasID: aliasID, Page: page}, apiKey, &resp)
	if err != nil {
		return nil, err
	}
	return &ActivityPage{
		Activities: resp.Activities,
		HasMore:    len(resp.Activities) >= PageSize,
	}, nil
}
