package usecase

import (
	"context"
	"fmt"
	"testing"

	domainErrors "github.com/nross83/storefront/internal/domain/errors"
	"github.com/nross83/storefront/internal/domain/model"
	pkgAuth "github.com/nross83/storefront/internal/pkg/auth"
	testhelpers "github.com/nross83/storefront/internal/test"
)

func newStrategyStub() testhelpers.StrategyStub {
	return testhelpers.StrategyStub{
		IssueFn: func(claims pkgAuth.Claims) (string, error) {
			return fmt.Sprintf("token-%d-%s", claims.UserID, claims.Role), nil
		},
		ParseFn: func(token string) (pkgAuth.Claims, error) {
			var id int64
			var role string
			if _, err := fmt.Sscanf(token, "token-%d-%s", &id, &role); err != nil {
				return pkgAuth.Claims{}, pkgAuth.ErrInvalidToken
			}
			return pkgAuth.Claims{UserID: id, Role: model.Role(role)}, nil
		},
	}
}

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	user, token, err := uc.Register(ctx, "Alice", "Alice@Example.com", "password")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected user to have ID assigned")
	}
	if user.Role != model.RoleCustomer {
		t.Fatalf("expected customer role, got %s", user.Role)
	}
	if token != "token-1-customer" {
		t.Fatalf("unexpected token %q", token)
	}
	stored, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("expected user stored under lowercased email: %v", err)
	}
	if stored.PasswordHash != "hash:password" {
		t.Fatalf("password hash not stored: %v", stored.PasswordHash)
	}
}

func TestAuthUseCaseRegisterDuplicate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "Bob", "bob@example.com", "secret"); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if _, _, err := uc.Register(ctx, "Bob", "bob@example.com", "secret"); err != domainErrors.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthUseCaseAuthenticate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "Carol", "carol@example.com", "123456"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := uc.Authenticate(ctx, "carol@example.com", "bad"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}

	if _, _, err := uc.Authenticate(ctx, "nobody@example.com", "123456"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}

	_, token, err := uc.Authenticate(ctx, "Carol@Example.com", "123456")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != "token-1-customer" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestAuthUseCaseParseToken(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())

	claims, err := uc.ParseToken("token-42-admin")
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected id 42, got %d", claims.UserID)
	}
	if claims.Role != model.RoleAdmin {
		t.Fatalf("expected admin role, got %s", claims.Role)
	}

	if _, err := uc.ParseToken("bad-token"); err != pkgAuth.ErrInvalidToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}

	if _, err := uc.ParseToken(""); err != pkgAuth.ErrInvalidToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestAuthUseCaseRegisterValidation(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())
	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "", "a@b.c", "password"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	if _, _, err := uc.Register(ctx, "user", "", "password"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	if _, _, err := uc.Register(ctx, "user", "a@b.c", ""); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
}

func TestAuthUseCaseRegisterHasherError(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{HashFn: func(string) (string, error) {
		return "", fmt.Errorf("hash error")
	}}, newStrategyStub())

	if _, _, err := uc.Register(context.Background(), "dave", "dave@example.com", "pw"); err == nil {
		t.Fatal("expected hasher error to propagate")
	}
	if len(repo.Users) != 0 {
		t.Fatal("expected no user stored after hashing failure")
	}
}

func TestAuthUseCaseChangePassword(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())
	ctx := context.Background()

	usr, _, err := uc.Register(ctx, "Erin", "erin@example.com", "old-pass")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := uc.ChangePassword(ctx, usr.ID, "wrong", "new-pass"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials for wrong old password, got %v", err)
	}
	if err := uc.ChangePassword(ctx, usr.ID, "old-pass", ""); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials for empty new password, got %v", err)
	}
	if err := uc.ChangePassword(ctx, 999, "old-pass", "new-pass"); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}

	if err := uc.ChangePassword(ctx, usr.ID, "old-pass", "new-pass"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	stored, _ := repo.GetByID(ctx, usr.ID)
	if stored.PasswordHash != "hash:new-pass" {
		t.Fatalf("new hash not stored: %q", stored.PasswordHash)
	}
}

func TestAuthUseCaseEnsureAdmin(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())
	ctx := context.Background()

	if err := uc.EnsureAdmin(ctx, "Admin", "admin@example.com", "root-pass"); err != nil {
		t.Fatalf("first ensure failed: %v", err)
	}
	stored, err := repo.GetByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("expected admin stored: %v", err)
	}
	if stored.Role != model.RoleAdmin {
		t.Fatalf("expected admin role, got %s", stored.Role)
	}

	// Second call is a no-op, not a duplicate error.
	if err := uc.EnsureAdmin(ctx, "Admin", "admin@example.com", "root-pass"); err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}
	if len(repo.Users) != 1 {
		t.Fatalf("expected single admin account, got %d users", len(repo.Users))
	}

	if err := uc.EnsureAdmin(ctx, "Admin", "", "root-pass"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials for empty email, got %v", err)
	}
	if err := uc.EnsureAdmin(ctx, "Admin", "other@example.com", ""); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials for empty password, got %v", err)
	}
}
