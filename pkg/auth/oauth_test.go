package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestRedirectURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"urn:ietf:wg:oauth:2.0:oob", "http://localhost:6789/oauth2callback"},
		{"", "http://localhost:6789/oauth2callback"},
		{"http://localhost", "http://localhost:6789"},
		{"http://127.0.0.1:8080/cb", "http://127.0.0.1:6789/cb"},
		{"http://localhost:6789/cb", "http://localhost:6789/cb"},
		{"https://example.com/cb", "https://example.com/cb"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, redirectURL(tt.in), tt.in)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", TokenFile)
	tok := &oauth2.Token{AccessToken: "a", RefreshToken: "r", Expiry: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)}

	require.NoError(t, saveToken(path, tok))
	got, err := tokenFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a", got.AccessToken)
	assert.Equal(t, "r", got.RefreshToken)
	assert.True(t, tok.Expiry.Equal(got.Expiry))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestRemoveToken(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, RemoveToken(dir), "missing token is fine")

	require.NoError(t, saveToken(filepath.Join(dir, TokenFile), &oauth2.Token{AccessToken: "a"}))
	require.NoError(t, RemoveToken(dir))
	_, err := os.Stat(filepath.Join(dir, TokenFile))
	assert.True(t, os.IsNotExist(err))
}

func TestGetConfigMissingSecrets(t *testing.T) {
	_, err := GetConfig(t.TempDir(), Scopes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ClientSecretsFile)
}

func TestGetConfigPinsRedirect(t *testing.T) {
	dir := t.TempDir()
	secrets := `{"installed":{"client_id":"id","client_secret":"secret","auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token","redirect_uris":["http://localhost"]}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ClientSecretsFile), []byte(secrets), 0600))

	cfg, err := GetConfig(dir, Scopes)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:6789", cfg.RedirectURL)
	assert.Equal(t, Scopes, cfg.Scopes)
}
