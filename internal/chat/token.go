package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
)

// twitchEndpoint is the Twitch OAuth2 token endpoint.
var twitchEndpoint = oauth2.Endpoint{
	AuthURL:  "https://id.twitch.tv/oauth2/authorize",
	TokenURL: "https://id.twitch.tv/oauth2/token",
}

// TokenStore persists OAuth tokens to a JSON checkpoint file so the bot
// survives restarts without redoing the authorization flow. The flow itself
// (user consent in a browser) is outside the bot; the checkpoint file is the
// handover point.
type TokenStore struct {
	path string
}

// NewTokenStore creates a store at the given path, expanding a leading ~.
func NewTokenStore(path string) (*TokenStore, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("chat: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return &TokenStore{path: path}, nil
}

// Load reads the checkpointed token.
func (t *TokenStore) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return nil, fmt.Errorf("chat: cannot read token file %s: %w", t.path, err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("chat: cannot parse token file %s: %w", t.path, err)
	}
	return &tok, nil
}

// Save checkpoints a token, creating parent directories as needed.
// The file is user-only: it holds a live credential.
func (t *TokenStore) Save(tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o700); err != nil {
		return fmt.Errorf("chat: cannot create token directory: %w", err)
	}
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("chat: cannot encode token: %w", err)
	}
	if err := os.WriteFile(t.path, data, 0o600); err != nil {
		return fmt.Errorf("chat: cannot write token file %s: %w", t.path, err)
	}
	return nil
}

// Credentials is the opaque credential provider for the chat connection.
// It refreshes the checkpointed token through the Twitch endpoint as needed
// and writes refreshed tokens back so the next start picks them up.
type Credentials struct {
	store  *TokenStore
	source oauth2.TokenSource

	mu   sync.Mutex
	last string
}

// NewCredentials loads the checkpointed token and prepares auto-refresh.
// A missing or unreadable checkpoint is an error: provisioning the first
// token is the operator's job.
func NewCredentials(ctx context.Context, clientID, secret string, store *TokenStore) (*Credentials, error) {
	tok, err := store.Load()
	if err != nil {
		return nil, err
	}

	cfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: secret,
		Endpoint:     twitchEndpoint,
	}

	return &Credentials{
		store:  store,
		source: cfg.TokenSource(ctx, tok),
		last:   tok.AccessToken,
	}, nil
}

// Token returns a valid access token, refreshing and re-checkpointing if the
// stored one has expired.
func (c *Credentials) Token() (string, error) {
	tok, err := c.source.Token()
	if err != nil {
		return "", fmt.Errorf("chat: cannot obtain access token: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if tok.AccessToken != c.last {
		if err := c.store.Save(tok); err != nil {
			return "", err
		}
		c.last = tok.AccessToken
	}
	return tok.AccessToken, nil
}
