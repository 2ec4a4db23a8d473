package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"fitsync/internal/auth"
	"fitsync/internal/model"
)

var (
	// ErrInvalidCredentials is returned when the identity token is missing, invalid or names another user.
	ErrInvalidCredentials = stderrors.New("invalid identity token")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = stderrors.New("invalid or expired refresh token")
)

// TokenRequest is a sign-in request. IDToken is required when an identity verifier is configured.
type TokenRequest struct {
	Email    string
	Name     string
	PhotoURL string
	IDToken  string
}

// TokenPair is the result of a successful sign-in.
type TokenPair struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         *model.User `json:"user"`
}

// AuthService handles authentication operations.
type AuthService interface {
	IssueTokens(ctx context.Context, req TokenRequest) (*TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	users      UserService
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	verifier   auth.IDTokenVerifier
}

// NewAuthService creates a new authentication service. verifier may be nil, in which case
// the email in the request is trusted.
func NewAuthService(users UserService, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface, verifier auth.IDTokenVerifier) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		tokenStore: tokenStore,
		verifier:   verifier,
	}
}

// IssueTokens signs the user in and returns access and refresh tokens carrying the user's role.
func (s *authService) IssueTokens(ctx context.Context, req TokenRequest) (*TokenPair, error) {
	if s.verifier != nil {
		if req.IDToken == "" {
			return nil, ErrInvalidCredentials
		}
		identity, err := s.verifier.VerifyIDToken(ctx, req.IDToken)
		if err != nil {
			return nil, ErrInvalidCredentials
		}
		if req.Email != "" && !strings.EqualFold(req.Email, identity.Email) {
			return nil, ErrInvalidCredentials
		}
		req.Email = identity.Email
		if req.Name == "" {
			req.Name = identity.Name
		}
		if req.PhotoURL == "" {
			req.PhotoURL = identity.PhotoURL
		}
	}

	user, err := s.users.SignIn(ctx, req.Email, req.Name, req.PhotoURL)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.Email, s.jwtService.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, nil
}

// RefreshToken validates a refresh token and returns a new access token with the user's current role.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.ID == "" {
		return "", ErrInvalidRefreshToken
	}

	storedEmail, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil || storedEmail != claims.Email {
		return "", ErrInvalidRefreshToken
	}

	role, err := s.users.GetRole(ctx, claims.Email)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.Email, string(role))
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}
