package slapi

import "context"

// FetchMailboxes lists all mailboxes on the account. Mailboxes are not
// paginated; accounts hold at most a handful.
func (c *Client) FetchMailboxes(ctx context.Context, apiKey string) ([]Mailbox, error) {
	var resp mailboxesResponse
	if err := c.do(ctx, MailboxesEndpoint{}, apiKey, &resp); err != nil {
		return nil, err
	}
	return resp.Mailboxes, nil
}

// CreateMailbox adds a mailbox. The service emails a verification link;
// the returned mailbox has Verified unset until the user follows it.
func (c *Client) CreateMailbox(ctx context.Context, apiKey, email string) (*Mailbox, error) {
	var mb Mailbox
	if err := c.do(ctx, CreateMailboxEndpoint{Email: email}, apiKey, &mb); err != nil {
		return nil, err
	}
	return &mb, nil
}

// DeleteMailbox removes a mailbox and reports whether the service
// confirmed the deletion. Aliases owned solely by this mailbox are moved
// to the default mailbox by the service.
func (c *Client) DeleteMailbox(ctx context.Context, apiKey string, mailboxID int) (bool, error) {
	var resp deletedResponse
	if err := c.do(ctx, DeleteMailboxEndpoint{MailboxID: mailboxID}, apiKey, &resp); err != nil {
		return false, err
	}
	return resp.Deleted, nil
}

// MakeDefaultMailbox marks a mailbox as the account default.
func (c *Client) MakeDefaultMailbox(ctx context.Context, apiKey string, mailboxID int) error {
	var resp updatedResponse
	return c.do(ctx, MakeDefaultMailboxEndpoint{MailboxID: mailboxID}, apiKey, &resp)
}
