package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	portssvc "github.com/SscSPs/tax_engagement_app/internal/core/ports/services"
)

// ErrNotConfigured is returned when storage credentials are missing.
var ErrNotConfigured = errors.New("document storage is not configured")

// Supabase issues signed download links for client documents kept in a
// Supabase Storage bucket. The service key is sent as both the apikey header
// and the bearer token.
type Supabase struct {
	projectURL string
	serviceKey string
	bucket     string
	httpClient *http.Client
}

// NewSupabase creates a storage client. A nil httpClient gets a 30s timeout client.
func NewSupabase(projectURL, serviceKey, bucket string, httpClient *http.Client) *Supabase {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Supabase{
		projectURL: strings.TrimRight(projectURL, "/"),
		serviceKey: serviceKey,
		bucket:     bucket,
		httpClient: httpClient,
	}
}

var _ portssvc.DocumentLinker = (*Supabase)(nil)

type signRequest struct {
	ExpiresIn int `json:"expiresIn"`
}

type signResponse struct {
	SignedURL string `json:"signedURL"`
}

// signEndpoint returns the sign URL for key, escaping each path segment.
func (s *Supabase) signEndpoint(key string) string {
	segments := strings.Split(strings.TrimPrefix(key, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.projectURL + "/storage/v1/object/sign/" + url.PathEscape(s.bucket) + "/" + strings.Join(segments, "/")
}

// expirySeconds rounds expiry up to whole seconds, never below one.
func expirySeconds(expiry time.Duration) int {
	return max(1, int(math.Ceil(expiry.Seconds())))
}

// SignedURL returns a link to key that stays valid for expiry.
func (s *Supabase) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if s.projectURL == "" || s.serviceKey == "" {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(signRequest{ExpiresIn: expirySeconds(expiry)})
	if err != nil {
		return "", fmt.Errorf("encode sign request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.signEndpoint(key), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build sign request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)

	res, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sign document %q: %w", key, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return "", fmt.Errorf("sign document %q: storage returned %s: %s", key, res.Status, detail)
	}

	var out signResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode sign response: %w", err)
	}
	if out.SignedURL == "" {
		return "", fmt.Errorf("sign document %q: empty signedURL", key)
	}

	// signedURL is relative to /storage/v1.
	return s.projectURL + "/storage/v1" + out.SignedURL, nil
}
