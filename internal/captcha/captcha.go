// Package captcha verifies human-verification tokens against the Google
// reCAPTCHA siteverify API.
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Result is the outcome of a verification attempt.
type Result int

const (
	// Accepted means the service confirmed the token.
	Accepted Result = iota
	// Rejected means the service answered but did not confirm the token.
	Rejected
	// UpstreamUnavailable means the service could not be reached or returned
	// an unparseable response.
	UpstreamUnavailable
	// NotConfigured means no shared secret is set. This is a deployment
	// error, not a client error.
	NotConfigured
)

func (r Result) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case UpstreamUnavailable:
		return "upstream_unavailable"
	case NotConfigured:
		return "not_configured"
	}
	return "unknown"
}

// Verifier checks a client-submitted captcha token.
type Verifier interface {
	// Verify issues exactly one verification call, never retried. The
	// returned error carries the underlying cause for logging and is only
	// non-nil alongside UpstreamUnavailable. Callers must reject empty
	// tokens before invoking Verify.
	Verify(ctx context.Context, token, remoteIP string) (Result, error)
}

const defaultEndpoint = "https://www.google.com/recaptcha/api/siteverify"

// RecaptchaVerifier is the production Verifier backed by the reCAPTCHA API.
type RecaptchaVerifier struct {
	secret     string
	endpoint   string
	httpClient *http.Client
}

// NewVerifier creates a RecaptchaVerifier. An empty secret makes every call
// return NotConfigured.
func NewVerifier(secret string) *RecaptchaVerifier {
	return &RecaptchaVerifier{
		secret:     secret,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify posts {secret, response, remoteip?} to the siteverify endpoint.
func (v *RecaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) (Result, error) {
	if v.secret == "" {
		return NotConfigured, nil
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return UpstreamUnavailable, fmt.Errorf("build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return UpstreamUnavailable, fmt.Errorf("siteverify call: %w", err)
	}
	defer resp.Body.Close()

	var body siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return UpstreamUnavailable, fmt.Errorf("decode siteverify response: %w", err)
	}
	if !body.Success {
		return Rejected, nil
	}
	return Accepted, nil
}
