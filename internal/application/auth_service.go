package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/customer-directory/internal/domain/auth"
	"github.com/oksasatya/customer-directory/internal/domain/entity"
	repo "github.com/oksasatya/customer-directory/internal/domain/repository"
)

// AuthService turns credentials into tokens and tokens back into customers.
// It only reads from the repository.
type AuthService struct {
	Repo   repo.CustomerRepository
	Hasher auth.PasswordHasher
	Tokens auth.TokenSigner
	Logger *logrus.Logger
}

func NewAuthService(repo repo.CustomerRepository, hasher auth.PasswordHasher, tokens auth.TokenSigner, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, Hasher: hasher, Tokens: tokens, Logger: logger}
}

type AuthResult struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expires_at"`
	Customer  entity.CustomerView `json:"customer"`
}

// Login checks email/password and issues a token for the email.
// Unknown email and wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	c, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Error("load customer for login failed")
		}
		return nil, storageError(err)
	}
	if !s.Hasher.Verify(password, c.Password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.IssueToken(c.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: exp, Customer: c.ToView()}, nil
}

// IssueToken signs a token for subject carrying the default role.
func (s *AuthService) IssueToken(subject string) (string, time.Time, error) {
	token, exp, err := s.Tokens.Issue(subject, entity.DefaultRoles())
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("subject", subject).Error("issue token failed")
		}
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// Validate reports whether token is correctly signed, unexpired and issued for expectedSubject.
func (s *AuthService) Validate(token, expectedSubject string) bool {
	claims, err := s.Tokens.Parse(token)
	if err != nil {
		return false
	}
	return claims.Subject == expectedSubject
}

// Authenticate resolves a bearer token to the customer it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entity.CustomerView, error) {
	claims, err := s.Tokens.Parse(token)
	if err != nil || claims.Subject == "" {
		return nil, ErrInvalidCredentials
	}
	c, err := s.Repo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storageError(err)
	}
	if !s.Validate(token, c.Email) {
		return nil, ErrInvalidCredentials
	}
	v := c.ToView()
	return &v, nil
}
