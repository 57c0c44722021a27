package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/internal/repository"
	"fitchain/gymhub/internal/service"
	"fitchain/gymhub/pkg/crypto"
	jwtpkg "fitchain/gymhub/pkg/jwt"
)

func setupAuth(t *testing.T) (service.AuthService, *testEnv, *model.User) {
	t.Helper()
	env := setupEnv(t)

	hash, err := crypto.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &model.User{Email: "member@example.com", PasswordHash: hash, Status: model.UserStatusActive}
	if err := env.userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	jwtManager := jwtpkg.NewManager("test-signing-key", "gymhub-test", 15*time.Minute, time.Hour)
	auth := service.NewAuthService(env.userRepo, repository.NewMemoryStateStore(), jwtManager)
	return auth, env, user
}

func TestLoginIssuesTokenPair(t *testing.T) {
	auth, _, _ := setupAuth(t)
	ctx := context.Background()

	tokens, err := auth.Login(ctx, "member@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" || tokens.ExpiresIn <= 0 {
		t.Fatalf("incomplete token set: %+v", tokens)
	}

	if _, err := auth.Login(ctx, "member@example.com", "wrong"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := auth.Login(ctx, "nobody@example.com", "s3cret-pass"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLoginIsCaseInsensitiveOnEmail(t *testing.T) {
	auth, _, _ := setupAuth(t)

	if _, err := auth.Login(context.Background(), "MEMBER@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("login with upper-cased email: %v", err)
	}
}

func TestDisabledUserCannotLogin(t *testing.T) {
	auth, env, user := setupAuth(t)
	ctx := context.Background()

	user.Status = model.UserStatusDisabled
	if err := env.userRepo.Update(ctx, user); err != nil {
		t.Fatalf("disable user: %v", err)
	}

	if _, err := auth.Login(ctx, "member@example.com", "s3cret-pass"); !errors.Is(err, service.ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	auth, _, _ := setupAuth(t)
	ctx := context.Background()

	tokens, err := auth.Login(ctx, "member@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	rotated, err := auth.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.RefreshToken == tokens.RefreshToken {
		t.Fatalf("refresh must rotate the token")
	}

	// The spent token is rejected on reuse.
	if _, err := auth.Refresh(ctx, tokens.RefreshToken); !errors.Is(err, service.ErrRefreshTokenInvalid) {
		t.Fatalf("expected ErrRefreshTokenInvalid on reuse, got %v", err)
	}

	// The rotated token still works.
	if _, err := auth.Refresh(ctx, rotated.RefreshToken); err != nil {
		t.Fatalf("rotated refresh: %v", err)
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	auth, _, _ := setupAuth(t)
	ctx := context.Background()

	tokens, err := auth.Login(ctx, "member@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := auth.Logout(ctx, tokens.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := auth.Refresh(ctx, tokens.RefreshToken); !errors.Is(err, service.ErrRefreshTokenInvalid) {
		t.Fatalf("expected ErrRefreshTokenInvalid after logout, got %v", err)
	}
}

func TestAccessTokenIsNotARefreshToken(t *testing.T) {
	auth, _, _ := setupAuth(t)
	ctx := context.Background()

	tokens, err := auth.Login(ctx, "member@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := auth.Refresh(ctx, tokens.AccessToken); !errors.Is(err, service.ErrRefreshTokenInvalid) {
		t.Fatalf("expected ErrRefreshTokenInvalid for access token, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	auth, _, user := setupAuth(t)
	ctx := context.Background()

	if err := auth.ChangePassword(ctx, user.ID, "wrong", "new-password-1"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := auth.ChangePassword(ctx, user.ID, "s3cret-pass", "new-password-1"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, err := auth.Login(ctx, "member@example.com", "s3cret-pass"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("old password must stop working")
	}
	if _, err := auth.Login(ctx, "member@example.com", "new-password-1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}
