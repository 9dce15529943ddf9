package users

import "context"

// Store describes the persistence operations required by the user service.
type Store interface {
	CreateUser(ctx context.Context, username, password, fullname string) (string, error)
	Authenticate(ctx context.Context, username, password string) (string, error)
	AddRefreshToken(ctx context.Context, token string) error
	VerifyRefreshToken(ctx context.Context, token string) error
	DeleteRefreshToken(ctx context.Context, token string) error
}

// Tokens signs and validates the JWTs handed out at login.
type Tokens interface {
	GenerateAccessToken(userID string) (string, error)
	GenerateRefreshToken(userID string) (string, error)
	ParseRefreshToken(token string) (string, error)
}

// Service exposes signup and session workflows.
type Service interface {
	Signup(ctx context.Context, username, password, fullname string) (string, error)
	Login(ctx context.Context, username, password string) (access, refresh string, err error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
}

type service struct {
	store  Store
	tokens Tokens
}

// New wires a Service backed by the provided Store and token manager.
func New(st Store, tokens Tokens) Service {
	return &service{store: st, tokens: tokens}
}

func (s *service) Signup(ctx context.Context, username, password, fullname string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.store.CreateUser(ctx, username, password, fullname)
}

func (s *service) Login(ctx context.Context, username, password string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	userID, err := s.store.Authenticate(ctx, username, password)
	if err != nil {
		return "", "", err
	}
	access, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(userID)
	if err != nil {
		return "", "", err
	}
	if err := s.store.AddRefreshToken(ctx, refresh); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Refresh exchanges a stored refresh token for a new access token.
func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.store.VerifyRefreshToken(ctx, refreshToken); err != nil {
		return "", err
	}
	userID, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}
	return s.tokens.GenerateAccessToken(userID)
}

func (s *service) Logout(ctx context.Context, refreshToken string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteRefreshToken(ctx, refreshToken)
}
