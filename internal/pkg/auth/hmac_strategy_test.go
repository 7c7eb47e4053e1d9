package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestNewHMACStrategy_DefaultTTL(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if strategy == nil {
		t.Fatal("expected strategy instance")
	}
	if string(strategy.secret) != "secret" {
		t.Fatalf("unexpected secret: %q", string(strategy.secret))
	}
	if strategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
}

func TestNewHMACStrategy_CustomTTL(t *testing.T) {
	ttl := 2 * time.Hour
	strategy := NewHMACStrategy("secret", Options{TTL: ttl})
	if strategy.ttl != ttl {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
}

func TestHMACStrategy_IssueAndParse(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken("alice")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	username, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if username != "alice" {
		t.Fatalf("unexpected username: %q", username)
	}
}

func TestHMACStrategy_ParseInvalidBase64(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if _, err := strategy.ParseToken("not-base64"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategy_ParseMalformedPayload(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	token := base64.StdEncoding.EncodeToString([]byte("only-one-part"))
	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategy_ParseTamperedSignature(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken("alice")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	raw, _ := base64.StdEncoding.DecodeString(token)
	parts := strings.Split(string(raw), ":")
	parts[0] = "mallory"
	forged := base64.StdEncoding.EncodeToString([]byte(strings.Join(parts, ":")))

	if _, err := strategy.ParseToken(forged); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for forged token, got %v", err)
	}
}

func TestHMACStrategy_ParseWrongSecret(t *testing.T) {
	issued, err := NewHMACStrategy("secret-a", Options{TTL: time.Minute}).IssueToken("alice")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := NewHMACStrategy("secret-b", Options{}).ParseToken(issued); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken with wrong secret, got %v", err)
	}
}

func TestHMACStrategy_ParseExpired(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})
	expired := time.Now().Add(-time.Minute).Unix()
	payload := fmt.Sprintf("alice:%d", expired)
	token := base64.StdEncoding.EncodeToString([]byte(payload + ":" + strategy.sign(payload)))

	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestHMACStrategy_ParseBadExpiry(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	payload := "alice:not-a-number"
	token := base64.StdEncoding.EncodeToString([]byte(payload + ":" + strategy.sign(payload)))

	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for bad expiry, got %v", err)
	}
}

func TestHMACStrategy_Name(t *testing.T) {
	if got := NewHMACStrategy("secret", Options{}).Name(); got != "hmac" {
		t.Fatalf("unexpected name: %q", got)
	}
}
