package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ravikiran1811/foodie-hub/internal/acl"
	"github.com/ravikiran1811/foodie-hub/internal/platform/httpx"
	"github.com/ravikiran1811/foodie-hub/internal/shared"
)

// Resolver projects a role into the client-facing permission document.
// Satisfied by *acl.Service.
type Resolver interface {
	Resolve(ctx context.Context, roleID int64) (acl.PermissionDocument, error)
}

// Service wraps registration, login and session-scoped permission reads.
type Service struct {
	repo     Repository
	tokens   *TokenManager
	resolver Resolver
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *TokenManager, resolver Resolver) *Service {
	return &Service{repo: repo, tokens: tokens, resolver: resolver}
}

// Session bundles a signed token with the public user fields.
type Session struct {
	AccessToken string `json:"accessToken"`
	User        *User  `json:"user"`
}

// Register creates a user under the named role and signs them in.
func (s *Service) Register(ctx context.Context, name, email, password, roleName string, country shared.Country) (*Session, error) {
	roleID, err := s.repo.FindRoleIDByName(ctx, strings.ToUpper(strings.TrimSpace(roleName)))
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if country == "" {
		country = shared.CountryIndia
	}
	user, err := s.repo.CreateUser(ctx, User{
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		RoleID:       roleID,
		Country:      country,
	})
	if err != nil {
		return nil, err
	}
	return s.session(user)
}

// Login validates credentials and issues a fresh token carrying the user's
// current role reference.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return s.session(user)
}

// Permissions returns the sparse permission document for the user's current
// role. The role is re-read from the store, not from token claims, so a role
// change is visible on the next call. The document is advisory UI state; the
// authoritative check remains the server-side guard on every request.
func (s *Service) Permissions(ctx context.Context, userID int64) (acl.PermissionDocument, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return nil, httpx.ErrUnauthorized
		}
		return nil, err
	}
	return s.resolver.Resolve(ctx, user.RoleID)
}

func (s *Service) session(user *User) (*Session, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &Session{AccessToken: token, User: user}, nil
}
