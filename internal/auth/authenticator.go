package auth

import (
	"fmt"
	"strings"

	"github.com/nsight-itsm/assistant/internal/config"
	"github.com/nsight-itsm/assistant/internal/domain"
	apperrors "github.com/nsight-itsm/assistant/pkg/util"
)

// Authenticator verifies dashboard credentials: one admin account and a
// shared password for users of the allowed email domain.
type Authenticator struct {
	adminEmail    string
	adminHash     string
	userHash      string
	allowedDomain string
}

// NewAuthenticator prepares credential material from config. Plaintext
// passwords, when provided without hashes, are bcrypt-hashed at startup.
func NewAuthenticator(cfg config.AuthConfig) (*Authenticator, error) {
	adminHash := cfg.AdminPasswordHash
	if adminHash == "" && cfg.AdminPassword != "" {
		hashed, err := HashPassword(cfg.AdminPassword, cfg.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		adminHash = hashed
	}
	userHash := cfg.UserPasswordHash
	if userHash == "" && cfg.UserPassword != "" {
		hashed, err := HashPassword(cfg.UserPassword, cfg.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash user password: %w", err)
		}
		userHash = hashed
	}

	return &Authenticator{
		adminEmail:    strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		adminHash:     adminHash,
		userHash:      userHash,
		allowedDomain: strings.ToLower(strings.TrimSpace(cfg.AllowedEmailDomain)),
	}, nil
}

// Authenticate resolves credentials to a role.
func (a *Authenticator) Authenticate(email, password string) (domain.Role, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", apperrors.NewUnauthorized("invalid credentials")
	}

	if email == a.adminEmail {
		if a.adminHash != "" && ComparePassword(a.adminHash, password) == nil {
			return domain.RoleAdmin, nil
		}
		return "", apperrors.NewUnauthorized("invalid credentials")
	}

	if a.allowedDomain != "" && strings.HasSuffix(email, "@"+a.allowedDomain) {
		if a.userHash != "" && ComparePassword(a.userHash, password) == nil {
			return domain.RoleUser, nil
		}
	}
	return "", apperrors.NewUnauthorized("invalid credentials")
}
