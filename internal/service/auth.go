package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/xuantrong94/chat-backend/internal/repository"
	"github.com/xuantrong94/chat-backend/pkg/token"
)

type SignupParams struct {
	Email     string
	FullName  string
	Password  string
	AvatarURL string
}

type AuthServicer interface {
	Signup(ctx context.Context, params SignupParams) (*repository.User, token.Pair, error)
	Signin(ctx context.Context, email, password string) (*repository.User, token.Pair, error)
	Refresh(ctx context.Context, refreshToken string) (token.Pair, error)
	VerifyAccessToken(tokenString string) (*token.Claims, error)
}

// AuthService orchestrates the credential store and the token manager.
// It holds no mutable state; every request is independent.
type AuthService struct {
	users  repository.UserRepo
	tokens *token.Manager
}

var _ AuthServicer = (*AuthService)(nil)

func NewAuthService(users repository.UserRepo, tokens *token.Manager) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// Signup creates the user record and mints the initial token pair.
func (as *AuthService) Signup(ctx context.Context, params SignupParams) (*repository.User, token.Pair, error) {
	exists, err := as.users.ExistsByEmail(ctx, params.Email)
	if err != nil {
		return nil, token.Pair{}, fmt.Errorf("failed to check existing email: %w", err)
	}
	if exists {
		return nil, token.Pair{}, ErrUserExists
	}

	user, err := as.users.Create(ctx, repository.CreateUserParams{
		Email:     params.Email,
		FullName:  params.FullName,
		Password:  params.Password,
		AvatarURL: params.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, token.Pair{}, ErrUserExists
		}
		return nil, token.Pair{}, fmt.Errorf("failed to create user: %w", err)
	}

	pair, err := as.tokens.IssueTokenPair(token.Identity{ID: user.ID, Email: user.Email})
	if err != nil {
		return nil, token.Pair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return user, pair, nil
}

// Signin verifies the credentials and mints a fresh pair. Lookup and
// password failures both collapse to ErrInvalidCredentials so the response
// never reveals whether the email exists.
func (as *AuthService) Signin(ctx context.Context, email, password string) (*repository.User, token.Pair, error) {
	user, err := as.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, token.Pair{}, ErrInvalidCredentials
	}

	if err := as.users.ComparePassword(user, password); err != nil {
		return nil, token.Pair{}, ErrInvalidCredentials
	}

	pair, err := as.tokens.IssueTokenPair(token.Identity{ID: user.ID, Email: user.Email})
	if err != nil {
		return nil, token.Pair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return user, pair, nil
}

// Refresh rotates the pair: it verifies the incoming refresh token,
// confirms the account still exists, and issues a brand-new pair. Previously
// issued refresh tokens are not revoked and stay usable until their own
// expiry.
func (as *AuthService) Refresh(ctx context.Context, refreshToken string) (token.Pair, error) {
	claims, err := as.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return token.Pair{}, fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err)
	}

	user, err := as.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return token.Pair{}, ErrUserNotFound
		}
		return token.Pair{}, fmt.Errorf("failed to look up user: %w", err)
	}

	pair, err := as.tokens.IssueTokenPair(token.Identity{ID: user.ID, Email: user.Email})
	if err != nil {
		return token.Pair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return pair, nil
}

// VerifyAccessToken exposes access-token validation for the route guard.
func (as *AuthService) VerifyAccessToken(tokenString string) (*token.Claims, error) {
	return as.tokens.VerifyAccessToken(tokenString)
}
