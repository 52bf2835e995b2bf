package slapi

import "context"

// ContactPage is one page of contacts for an alias.
type ContactPage struct {
	Contacts []Contact
	HasMore  bool
}

// FetchContacts retrieves one zero-based page of an alias's contacts.
func (c *Client) FetchContacts(ctx context.Context, apiKey string, aliasID, page int) (*ContactPage, error) {
	var resp contactsResponse
	err := c.do(ctx, ContactsEndpoint{AliasID: aliasID, Page: page}, apiKey, &resp)
	if err != nil {
		return nil, err
	}
	return &ContactPage{
		Contacts: resp.Contacts,
		HasMore:  len(resp.Contacts) >= PageSize,
	}, nil
}

// CreateContact creates a reverse-alias contact for the given address.
// Existed is set on the returned contact when the address was already a
// contact of this alias.
func (c *Client) CreateContact(ctx context.Context, apiKey string, aliasID int, email string) (*Contact, error) {
	var contact Contact
	err := c.do(ctx, CreateContactEndpoint{AliasID: aliasID, Email: email}, apiKey, &contact)
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// ToggleContact flips forward-blocking for a contact and returns the
// resulting block state. Like ToggleAlias, each call flips again.
func (c *Client) ToggleContact(ctx context.Context, apiKey string, contactID int) (bool, error) {
	var resp blockForwardResponse
	if err := c.do(ctx, ToggleContactEndpoint{ContactID: contactID}, apiKey, &resp); err != nil {
		return false, err
	}
	return resp.BlockForward, nil
}

// DeleteContact deletes a contact and reports whether the service
// confirmed the deletion.
func (c *Client) DeleteContact(ctx context.Context, apiKey string, contactID int) (bool, error) {
	var resp deletedResponse
	if err := c.do(ctx, DeleteContactEndpoint{ContactID: contactID}, apiKey, &resp); err != nil {
		return false, err
	}
	return resp.Deleted, nil
}
