package chat

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestTokenStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	store, err := NewTokenStore(path)
	if err != nil {
		t.Fatalf("NewTokenStore() failed: %v", err)
	}

	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(time.Hour).Truncate(time.Second),
	}
	if err := store.Save(tok); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.AccessToken != tok.AccessToken || loaded.RefreshToken != tok.RefreshToken {
		t.Errorf("Load() = %+v, expected %+v", loaded, tok)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() failed: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("token file mode = %v, expected 0600", info.Mode().Perm())
	}
}

func TestTokenStoreLoadMissing(t *testing.T) {
	store, err := NewTokenStore(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("NewTokenStore() failed: %v", err)
	}
	if _, err := store.Load(); err == nil {
		t.Error("Load() succeeded with no checkpoint file")
	}
}

func TestTokenStoreLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	store, err := NewTokenStore(path)
	if err != nil {
		t.Fatalf("NewTokenStore() failed: %v", err)
	}
	if _, err := store.Load(); err == nil {
		t.Error("Load() succeeded with a malformed checkpoint")
	}
}

func TestCredentialsRequireCheckpoint(t *testing.T) {
	store, err := NewTokenStore(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("NewTokenStore() failed: %v", err)
	}
	if _, err := NewCredentials(context.Background(), "id", "secret", store); err == nil {
		t.Error("NewCredentials() succeeded without a provisioned token")
	}
}

func TestCredentialsReturnStoredToken(t *testing.T) {
	store, err := NewTokenStore(filepath.Join(t.TempDir(), "token.json"))
	if err != nil {
		t.Fatalf("NewTokenStore() failed: %v", err)
	}
	// A token with a far-future expiry is used as-is, no refresh round trip.
	if err := store.Save(&oauth2.Token{
		AccessToken: "stored",
		Expiry:      time.Now().Add(24 * time.Hour),
	}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	creds, err := NewCredentials(context.Background(), "id", "secret", store)
	if err != nil {
		t.Fatalf("NewCredentials() failed: %v", err)
	}

	got, err := creds.Token()
	if err != nil {
		t.Fatalf("Token() failed: %v", err)
	}
	if got != "stored" {
		t.Errorf("Token() = %q, expected the checkpointed token", got)
	}
}
