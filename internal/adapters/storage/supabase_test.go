package storage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupabase_SignedURL(t *testing.T) {
	var gotPath, gotAuth, gotKey string
	var gotBody map[string]int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("apikey")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"signedURL":"/object/sign/docs/client/c1/w2.pdf?token=abc"}`))
	}))
	defer srv.Close()

	s := NewSupabase(srv.URL+"/", "secret", "docs", srv.Client())
	url, err := s.SignedURL(context.Background(), "client/c1/w2.pdf", 300*time.Second)

	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/storage/v1/object/sign/docs/client/c1/w2.pdf?token=abc", url)
	assert.Equal(t, "/storage/v1/object/sign/docs/client/c1/w2.pdf", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, 300, gotBody["expiresIn"])
}

func TestSupabase_SignedURLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewSupabase(srv.URL, "secret", "docs", nil).SignedURL(context.Background(), "client/c1/missing.pdf", time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	_, err = NewSupabase("", "", "docs", nil).SignedURL(context.Background(), "k", time.Minute)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestExpirySeconds(t *testing.T) {
	assert.Equal(t, 1, expirySeconds(0))
	assert.Equal(t, 1, expirySeconds(200*time.Millisecond))
	assert.Equal(t, 61, expirySeconds(60*time.Second+time.Millisecond))
}

func TestSupabase_SignEndpointEscapesSegments(t *testing.T) {
	s := NewSupabase("https://proj.supabase.co/", "k", "tax docs", nil)
	assert.Equal(t, "https://proj.supabase.co/storage/v1/object/sign/tax%20docs/client/c1/w%232.pdf", s.signEndpoint("/client/c1/w#2.pdf"))
}
