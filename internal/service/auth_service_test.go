package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fitsync/internal/auth"
	"fitsync/internal/model"
)

func newTestJWT() *auth.JWTService {
	return auth.NewJWTService("test-secret", time.Hour, 24*time.Hour)
}

func TestAuthService_IssueTokens(t *testing.T) {
	tests := []struct {
		name          string
		req           TokenRequest
		withVerifier  bool
		setupMock     func(*MockUserService, *MockTokenStore, *MockVerifier)
		expectedError error
		expectedRole  string
	}{
		{
			name: "trusted email without verifier",
			req:  TokenRequest{Email: "test@example.com", Name: "Test"},
			setupMock: func(u *MockUserService, ts *MockTokenStore, _ *MockVerifier) {
				u.On("SignIn", mock.Anything, "test@example.com", "Test", "").
					Return(&model.User{Email: "test@example.com", Role: model.RoleAdmin}, nil)
				ts.On("StoreRefreshToken", mock.Anything, mock.Anything, "test@example.com", 24*time.Hour).Return(nil)
			},
			expectedRole: "admin",
		},
		{
			name:         "verified identity fills profile",
			req:          TokenRequest{IDToken: "good"},
			withVerifier: true,
			setupMock: func(u *MockUserService, ts *MockTokenStore, v *MockVerifier) {
				v.On("VerifyIDToken", mock.Anything, "good").
					Return(&auth.Identity{UID: "uid", Email: "fb@example.com", Name: "Fire", PhotoURL: "http://img"}, nil)
				u.On("SignIn", mock.Anything, "fb@example.com", "Fire", "http://img").
					Return(&model.User{Email: "fb@example.com", Role: model.RoleMember}, nil)
				ts.On("StoreRefreshToken", mock.Anything, mock.Anything, "fb@example.com", 24*time.Hour).Return(nil)
			},
			expectedRole: "member",
		},
		{
			name:          "missing id token",
			req:           TokenRequest{Email: "x@example.com"},
			withVerifier:  true,
			setupMock:     func(*MockUserService, *MockTokenStore, *MockVerifier) {},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:         "id token for another email",
			req:          TokenRequest{Email: "x@example.com", IDToken: "good"},
			withVerifier: true,
			setupMock: func(_ *MockUserService, _ *MockTokenStore, v *MockVerifier) {
				v.On("VerifyIDToken", mock.Anything, "good").Return(&auth.Identity{Email: "y@example.com"}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:         "rejected id token",
			req:          TokenRequest{IDToken: "bad"},
			withVerifier: true,
			setupMock: func(_ *MockUserService, _ *MockTokenStore, v *MockVerifier) {
				v.On("VerifyIDToken", mock.Anything, "bad").Return(nil, assert.AnError)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserService)
			tokens := new(MockTokenStore)
			verifier := new(MockVerifier)
			tt.setupMock(users, tokens, verifier)

			jwtService := newTestJWT()
			var v auth.IDTokenVerifier
			if tt.withVerifier {
				v = verifier
			}
			svc := NewAuthService(users, jwtService, tokens, v)

			pair, err := svc.IssueTokens(context.Background(), tt.req)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, pair)
			} else {
				require.NoError(t, err)
				claims, err := jwtService.ValidateToken(pair.AccessToken)
				require.NoError(t, err)
				assert.Equal(t, tt.expectedRole, claims.Role)
				assert.Equal(t, pair.User.Email, claims.Email)
				assert.NotEmpty(t, pair.RefreshToken)
			}

			users.AssertExpectations(t)
			tokens.AssertExpectations(t)
			verifier.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwtService := newTestJWT()
	tokenID, refresh, err := jwtService.GenerateRefreshToken("a@example.com", "member")
	require.NoError(t, err)

	tests := []struct {
		name          string
		token         string
		setupMock     func(*MockUserService, *MockTokenStore)
		expectedError error
		expectedRole  string
	}{
		{
			name:  "picks up promoted role",
			token: refresh,
			setupMock: func(u *MockUserService, ts *MockTokenStore) {
				ts.On("GetRefreshToken", mock.Anything, tokenID).Return("a@example.com", nil)
				u.On("GetRole", mock.Anything, "a@example.com").Return(model.RoleTrainer, nil)
			},
			expectedRole: "trainer",
		},
		{
			name:  "revoked token",
			token: refresh,
			setupMock: func(_ *MockUserService, ts *MockTokenStore) {
				ts.On("GetRefreshToken", mock.Anything, tokenID).Return("", auth.ErrTokenNotFound)
			},
			expectedError: ErrInvalidRefreshToken,
		},
		{
			name:          "garbage token",
			token:         "not-a-jwt",
			setupMock:     func(*MockUserService, *MockTokenStore) {},
			expectedError: ErrInvalidRefreshToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserService)
			tokens := new(MockTokenStore)
			tt.setupMock(users, tokens)

			svc := NewAuthService(users, jwtService, tokens, nil)
			access, err := svc.RefreshToken(context.Background(), tt.token)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, access)
			} else {
				require.NoError(t, err)
				claims, err := jwtService.ValidateToken(access)
				require.NoError(t, err)
				assert.Equal(t, tt.expectedRole, claims.Role)
			}

			users.AssertExpectations(t)
			tokens.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := newTestJWT()
	tokenID, refresh, err := jwtService.GenerateRefreshToken("a@example.com", "member")
	require.NoError(t, err)

	tokens := new(MockTokenStore)
	tokens.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

	svc := NewAuthService(new(MockUserService), jwtService, tokens, nil)
	require.NoError(t, svc.Logout(context.Background(), refresh))
	assert.Equal(t, ErrInvalidRefreshToken, svc.Logout(context.Background(), "bogus"))

	tokens.AssertExpectations(t)
}
