package auth

import (
	"testing"

	"github.com/nsight-itsm/assistant/internal/config"
	"github.com/nsight-itsm/assistant/internal/domain"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		BcryptCost:         4, // min cost keeps the test fast
		AdminEmail:         "admin@nsight.com",
		AdminPassword:      "admin-pass",
		UserPassword:       "user-pass",
		AllowedEmailDomain: "nsight.com",
	}
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	authenticator, err := NewAuthenticator(testAuthConfig())
	if err != nil {
		t.Fatalf("NewAuthenticator() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantRole domain.Role
		wantErr  bool
	}{
		{"admin", "admin@nsight.com", "admin-pass", domain.RoleAdmin, false},
		{"admin email case folded", "Admin@Nsight.com", "admin-pass", domain.RoleAdmin, false},
		{"admin wrong password", "admin@nsight.com", "nope", "", true},
		{"admin never falls back to user password", "admin@nsight.com", "user-pass", "", true},
		{"domain user", "alice@nsight.com", "user-pass", domain.RoleUser, false},
		{"domain user wrong password", "alice@nsight.com", "nope", "", true},
		{"outside domain", "mallory@evil.com", "user-pass", "", true},
		{"domain as substring not suffix", "mallory@nsight.com.evil.com", "user-pass", "", true},
		{"empty credentials", "", "", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			role, err := authenticator.Authenticate(tt.email, tt.password)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Authenticate(%q) expected error, got role %q", tt.email, role)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate(%q) error = %v", tt.email, err)
			}
			if role != tt.wantRole {
				t.Errorf("role = %q, want %q", role, tt.wantRole)
			}
		})
	}
}

func TestNewAuthenticatorPrefersPrecomputedHash(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("real-pass", 4)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	cfg := testAuthConfig()
	cfg.AdminPassword = "ignored-plaintext"
	cfg.AdminPasswordHash = hash

	authenticator, err := NewAuthenticator(cfg)
	if err != nil {
		t.Fatalf("NewAuthenticator() error = %v", err)
	}

	if _, err := authenticator.Authenticate("admin@nsight.com", "real-pass"); err != nil {
		t.Errorf("hash-backed password rejected: %v", err)
	}
	if _, err := authenticator.Authenticate("admin@nsight.com", "ignored-plaintext"); err == nil {
		t.Error("plaintext should be ignored when a hash is supplied")
	}
}
