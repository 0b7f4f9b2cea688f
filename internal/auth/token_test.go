package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	userID := uuid.New()

	token, err := issuer.Issue(userID, "patient")
	if err != nil {
		t.Fatalf("Issue() = %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() = %v", err)
	}
	if claims.UserID != userID.String() {
		t.Errorf("UserID = %q, want %q", claims.UserID, userID)
	}
	if claims.Role != "patient" {
		t.Errorf("Role = %q, want patient", claims.Role)
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	userID := uuid.New()

	good, err := issuer.Issue(userID, "pt")
	if err != nil {
		t.Fatalf("Issue() = %v", err)
	}

	t.Run("garbage", func(t *testing.T) {
		if _, err := issuer.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Verify() = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(good, ".")
		parts[1] = parts[1][:len(parts[1])-2] + "xx"
		if _, err := issuer.Verify(strings.Join(parts, ".")); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Verify() = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenIssuer("other-secret", time.Hour)
		if _, err := other.Verify(good); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Verify() = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		shortLived := NewTokenIssuer("test-secret", -time.Minute)
		expired, err := shortLived.Issue(userID, "pt")
		if err != nil {
			t.Fatalf("Issue() = %v", err)
		}
		if _, err := issuer.Verify(expired); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Verify(expired) = %v, want ErrInvalidToken", err)
		}
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() = %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash equals the plain password")
	}
	if !CheckPassword("s3cret", hash) {
		t.Error("CheckPassword(correct) = false, want true")
	}
	if CheckPassword("wrong", hash) {
		t.Error("CheckPassword(wrong) = true, want false")
	}
}
