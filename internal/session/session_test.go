package session

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIssueAndValidate(t *testing.T) {
	codec := NewCodec("test-secret")
	now := time.Now()

	token, err := codec.Issue("admin", now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	username, issuedAt, err := codec.Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if username != "admin" {
		t.Errorf("username = %q, want admin", username)
	}
	if issuedAt.Unix() != now.Unix() {
		t.Errorf("issuedAt = %v, want %v", issuedAt, now)
	}

	if !codec.Validate(token, now.Add(time.Hour), "admin") {
		t.Error("fresh token should validate")
	}
}

func TestValidateWrongUsername(t *testing.T) {
	codec := NewCodec("test-secret")
	token, _ := codec.Issue("intruder", time.Now())
	if codec.Validate(token, time.Now(), "admin") {
		t.Error("token for another username must not validate")
	}
}

func TestValidateExpired(t *testing.T) {
	codec := NewCodec("test-secret")
	issued := time.Now().Add(-25 * time.Hour)
	token, _ := codec.Issue("admin", issued)

	if codec.Validate(token, time.Now(), "admin") {
		t.Error("expired token must not validate")
	}
	_, _, err := codec.Decode(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("decode expired token err = %v, want ErrTokenExpired", err)
	}
}

func TestDecodeMalformed(t *testing.T) {
	codec := NewCodec("test-secret")
	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, _, err := codec.Decode(token); !errors.Is(err, ErrMalformedToken) {
			t.Errorf("Decode(%q) err = %v, want ErrMalformedToken", token, err)
		}
	}
}

func TestDecodeTampered(t *testing.T) {
	codec := NewCodec("test-secret")
	token, _ := codec.Issue("admin", time.Now())

	// flip a character in the signature
	tampered := token[:len(token)-2] + strings.Map(func(r rune) rune {
		if r == 'a' {
			return 'b'
		}
		return 'a'
	}, token[len(token)-2:])
	if _, _, err := codec.Decode(tampered); err == nil {
		t.Error("tampered token must not decode")
	}
}

func TestForgedWithOtherSecret(t *testing.T) {
	forger := NewCodec("guessed-secret")
	codec := NewCodec("real-secret")
	token, _ := forger.Issue("admin", time.Now())
	if codec.Validate(token, time.Now(), "admin") {
		t.Error("token signed with another secret must not validate")
	}
}
