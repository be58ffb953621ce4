package session

import (
	"errors"
	"testing"
	"time"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret")
	token, err := m.Issue(42, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	userID, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if userID != 42 {
		t.Fatalf("Verify returned user %d, want 42", userID)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewManager("secret-a").Issue(1, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewManager("secret-b").Verify(token); err == nil {
		t.Fatalf("Verify accepted token signed with another secret")
	}
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret")
	token, err := m.Issue(1, -time.Hour, time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := m.Verify(token); !errors.Is(err, ErrExpired) {
		t.Fatalf("Verify error = %v, want ErrExpired", err)
	}
}

func TestTokenExpired(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	token, err := NewManager("test-secret").Issue(1, time.Hour, issued)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if TokenExpired(token, issued.Add(30*time.Minute)) {
		t.Fatalf("token reported expired before its expiry")
	}
	if !TokenExpired(token, issued.Add(2*time.Hour)) {
		t.Fatalf("token reported valid after its expiry")
	}
	if !TokenExpired("not-a-token", issued) {
		t.Fatalf("malformed token must count as expired")
	}
}
