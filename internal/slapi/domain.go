package slapi

import "context"

// FetchCustomDomains lists the account's custom domains.
func (c *Client) FetchCustomDomains(ctx context.Context, apiKey string) ([]CustomDomain, error) {
	var resp customDomainsResponse
	if err := c.do(ctx, CustomDomainsEndpoint{}, apiKey, &resp); err != nil {
		return nil, err
	}
	return resp.CustomDomains, nil
}

// FetchDomainLites lists the domains available for new aliases. Unlike the
// other list endpoints this one returns a bare JSON array.
func (c *Client) FetchDomainLites(ctx context.Context, apiKey string) ([]DomainLite, error) {
	var domains []DomainLite
	if err := c.do(ctx, DomainLitesEndpoint{}, apiKey, &domains); err != nil {
		return nil, err
	}
	return domains, nil
}
