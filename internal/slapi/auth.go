package slapi

import "context"

// Login authenticates with email and password. When the response reports
// MFA enabled it must also carry the one-shot MFA key; a response claiming
// MFA without a key is a ProtocolInvariantError, and a response with
// neither MFA nor an API key is one too.
func (c *Client) Login(ctx context.Context, email, password, device string) (*UserLogin, error) {
	var ul UserLogin
	err := c.do(ctx, LoginEndpoint{Email: email, Password: password, Device: device}, "", &ul)
	if err != nil {
		return nil, err
	}
	if ul.MFAEnabled && ul.MFAKey == "" {
		return nil, &ProtocolInvariantError{Message: "login reported MFA enabled without an MFA key"}
	}
	if !ul.MFAEnabled && ul.APIKey == "" {
		return nil, &ProtocolInvariantError{Message: "login succeeded without MFA but returned no API key"}
	}
	return &ul, nil
}

// SignUp registers a new account; ActivateEmail completes it.
func (c *Client) SignUp(ctx context.Context, email, password string) error {
	return c.do(ctx, SignUpEndpoint{Email: email, Password: password}, "", nil)
}

// ActivateEmail confirms a sign-up with the code emailed to the user.
func (c *Client) ActivateEmail(ctx context.Context, email, code string) error {
	return c.do(ctx, ActivateEmailEndpoint{Email: email, Code: code}, "", nil)
}

// ReactivateEmail requests a fresh activation code.
func (c *Client) ReactivateEmail(ctx context.Context, email string) error {
	return c.do(ctx, ReactivateEmailEndpoint{Email: email}, "", nil)
}

// ForgotPassword triggers a password-reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	var ok okResponse
	return c.do(ctx, ForgotPasswordEndpoint{Email: email}, "", &ok)
}

// VerifyMFA exchanges the MFA key issued by Login plus the user's TOTP
// token for an API key. The key is consumed by the service whether or not
// the token matched; callers must obtain a fresh key via Login before
// trying again.
func (c *Client) VerifyMFA(ctx context.Context, key, token, device string) (*APIKeyResponse, error) {
	var resp APIKeyResponse
	err := c.do(ctx, VerifyMFAEndpoint{Key: key, Token: token, Device: device}, "", &resp)
	if err != nil {
		return nil, err
	}
	if resp.APIKey == "" {
		return nil, &ProtocolInvariantError{Message: "MFA verification succeeded but returned no API key"}
	}
	return &resp, nil
}
