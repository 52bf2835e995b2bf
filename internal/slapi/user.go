package slapi

import "context"

// FetchUserInfo fetches the account profile. It doubles as the cheapest
// credential check: a 401 means the API key is no longer valid.
func (c *Client) FetchUserInfo(ctx context.Context, apiKey string) (*UserInfo, error) {
	var info UserInfo
	if err := c.do(ctx, UserInfoEndpoint{}, apiKey, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// UpdateName sets or clears the account display name and returns the
// updated profile. Pass NullValue() to clear.
func (c *Client) UpdateName(ctx context.Context, apiKey string, name NullString) (*UserInfo, error) {
	var info UserInfo
	if err := c.do(ctx, UpdateNameEndpoint{Name: name}, apiKey, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// UpdateProfilePicture sets or clears the profile picture from
// base64-encoded image data and returns the updated profile.
func (c *Client) UpdateProfilePicture(ctx context.Context, apiKey string, picture NullString) (*UserInfo, error) {
	var info UserInfo
	if err := c.do(ctx, UpdateProfilePictureEndpoint{Picture: picture}, apiKey, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// FetchUserSettings fetches the account settings.
func (c *Client) FetchUserSettings(ctx context.Context, apiKey string) (*UserSettings, error) {
	var settings UserSettings
	if err := c.do(ctx, UserSettingsEndpoint{}, apiKey, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateUserSettings patches one settings field and returns the full
// updated settings record.
func (c *Client) UpdateUserSettings(ctx context.Context, apiKey string, option SettingsOption) (*UserSettings, error) {
	var settings UserSettings
	if err := c.do(ctx, UpdateUserSettingsEndpoint{Option: option}, apiKey, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// FetchUserOptions fetches alias-creation options. A non-empty hostname
// tailors the prefix suggestion to that site.
func (c *Client) FetchUserOptions(ctx context.Context, apiKey, hostname string) (*UserOptions, error) {
	var options UserOptions
	if err := c.do(ctx, UserOptionsEndpoint{Hostname: hostname}, apiKey, &options); err != nil {
		return nil, err
	}
	return &options, nil
}

// ProcessPayment submits an in-app purchase receipt for subscription
// activation.
func (c *Client) ProcessPayment(ctx context.Context, apiKey, receiptData string) error {
	var resp okResponse
	return c.do(ctx, ProcessPaymentEndpoint{ReceiptData: receiptData}, apiKey, &resp)
}
