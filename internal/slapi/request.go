package slapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// authHeader is the fixed header carrying the API key on authenticated
// endpoints. The service uses "Authentication", not the standard
// "Authorization".
const authHeader = "Authentication"

// newRequest turns an endpoint descriptor plus a credential into a
// transport-ready *http.Request. Unauthenticated endpoints never receive
// the credential header, whatever apiKey holds.
func newRequest(ctx context.Context, base *url.URL, ep Endpoint, apiKey string) (*http.Request, error) {
	if base == nil || base.Scheme == "" || base.Host == "" {
		baseStr := ""
		if base != nil {
			baseStr = base.String()
		}
		return nil, &InvalidURLError{Base: baseStr, Path: ep.Path()}
	}

	u := &url.URL{
		Scheme: base.Scheme,
		Host:   base.Host,
		Path:   ep.Path(),
	}
	if q := ep.Query(); q != nil {
		u.RawQuery = q.Encode()
	}

	var body *bytes.Reader
	if fields := ep.BodyFields(); fields != nil {
		data, err := json.Marshal(fields)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body for %s: %w", ep.Path(), err)
		}
		body = bytes.NewReader(data)
	}

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, ep.Method(), u.String(), body)
	} else {
		req, err = http.NewRequestWithContext(ctx, ep.Method(), u.String(), nil)
	}
	if err != nil {
		return nil, &InvalidURLError{Base: base.String(), Path: ep.Path()}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ep.RequiresAuth() {
		req.Header.Set(authHeader, apiKey)
	}

	return req, nil
}
