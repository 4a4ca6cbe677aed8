package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/photocatalog-backend/internal/repos"
	"github.com/yungbote/photocatalog-backend/internal/types"
)

func newAuthFixture(t *testing.T) (AuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	userRepo := repos.NewUserRepo(db, log)
	photographerRepo := repos.NewPhotographerRepo(db, log)
	userTokenRepo := repos.NewUserTokenRepo(db, log)
	verifier, err := NewLocalVerifier(testLocalSecret, testLocalIssuer, testLocalAudience)
	if err != nil {
		t.Fatalf("NewLocalVerifier: %v", err)
	}
	service := NewAuthService(db, log, userRepo, photographerRepo, userTokenRepo, verifier,
		testLocalSecret, testLocalIssuer, testLocalAudience, testAccessTTL, testRefreshTTL)
	return service, db
}

func TestEnsureAdminUserAndLogin(t *testing.T) {
	service, db := newAuthFixture(t)
	ctx := context.Background()

	if err := service.EnsureAdminUser(ctx, "admin@example.com", "hunter22"); err != nil {
		t.Fatalf("EnsureAdminUser: %v", err)
	}
	// Second run must be a no-op, not a duplicate.
	if err := service.EnsureAdminUser(ctx, "admin@example.com", "hunter22"); err != nil {
		t.Fatalf("EnsureAdminUser again: %v", err)
	}
	var users []types.User
	if err := db.Where("email = ?", "admin@example.com").Find(&users).Error; err != nil {
		t.Fatalf("load users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("admin rows=%d, want 1", len(users))
	}
	if users[0].Password == "hunter22" {
		t.Fatalf("password stored in clear")
	}
	var photographers []types.Photographer
	if err := db.Where("user_id = ?", users[0].ID).Find(&photographers).Error; err != nil {
		t.Fatalf("load photographers: %v", err)
	}
	if len(photographers) != 1 {
		t.Fatalf("admin photographer rows=%d, want 1", len(photographers))
	}

	access, refresh, err := service.Login(ctx, "admin@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("Login returned empty tokens")
	}
	if err := service.VerifyAccessToken(access); err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service, _ := newAuthFixture(t)
	ctx := context.Background()
	if err := service.EnsureAdminUser(ctx, "admin@example.com", "hunter22"); err != nil {
		t.Fatalf("EnsureAdminUser: %v", err)
	}

	if _, _, err := service.Login(ctx, "admin@example.com", "wrong"); err == nil {
		t.Fatalf("Login accepted a wrong password")
	}
	if _, _, err := service.Login(ctx, "nobody@example.com", "hunter22"); err == nil {
		t.Fatalf("Login accepted an unknown email")
	}
}

func TestLoginRejectsPasswordlessAccount(t *testing.T) {
	service, db := newAuthFixture(t)
	user := seedUser(t, db, true) // JIT-style account, empty password hash

	if _, _, err := service.Login(context.Background(), user.Email, ""); err == nil {
		t.Fatalf("Login accepted an empty password against a passwordless account")
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	service, db := newAuthFixture(t)
	ctx := context.Background()
	if err := service.EnsureAdminUser(ctx, "admin@example.com", "hunter22"); err != nil {
		t.Fatalf("EnsureAdminUser: %v", err)
	}
	_, refresh, err := service.Login(ctx, "admin@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	access2, refresh2, err := service.Refresh(ctx, refresh)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if access2 == "" || refresh2 == "" || refresh2 == refresh {
		t.Fatalf("Refresh did not rotate the refresh token")
	}
	if err := service.VerifyAccessToken(access2); err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}

	// The old refresh token was consumed.
	if _, _, err := service.Refresh(ctx, refresh); err == nil {
		t.Fatalf("Refresh accepted a consumed token")
	}

	var tokens []types.UserToken
	if err := db.Find(&tokens).Error; err != nil {
		t.Fatalf("load tokens: %v", err)
	}
	if len(tokens) != 1 {
		t.Fatalf("token rows=%d, want 1", len(tokens))
	}
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	service, _ := newAuthFixture(t)
	if _, _, err := service.Refresh(context.Background(), "does-not-exist"); err == nil {
		t.Fatalf("Refresh accepted an unknown token")
	}
	if _, _, err := service.Refresh(context.Background(), ""); err == nil {
		t.Fatalf("Refresh accepted an empty token")
	}
}
