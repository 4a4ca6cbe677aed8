package services

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/yungbote/photocatalog-backend/internal/repos"
	"github.com/yungbote/photocatalog-backend/internal/types"
)

type identityFixture struct {
	db      *gorm.DB
	service IdentityService
	extKey  func(t *testing.T, claims jwt.MapClaims) string
}

func newIdentityFixture(t *testing.T) *identityFixture {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	userRepo := repos.NewUserRepo(db, log)
	photographerRepo := repos.NewPhotographerRepo(db, log)

	local, err := NewLocalVerifier(testLocalSecret, testLocalIssuer, testLocalAudience)
	if err != nil {
		t.Fatalf("NewLocalVerifier: %v", err)
	}
	key, pubPEM := newTestRSAKey(t)
	external, err := NewExternalVerifier(pubPEM, testExtIssuer, testExtAudience)
	if err != nil {
		t.Fatalf("NewExternalVerifier: %v", err)
	}

	return &identityFixture{
		db:      db,
		service: NewIdentityService(db, log, userRepo, photographerRepo, local, external),
		extKey: func(t *testing.T, claims jwt.MapClaims) string {
			return signRS256(t, key, claims)
		},
	}
}

func TestAuthenticateWithoutBearerHeader(t *testing.T) {
	fx := newIdentityFixture(t)

	cases := []struct {
		name   string
		header string
	}{
		{name: "empty", header: ""},
		{name: "no_scheme", header: "sometoken"},
		{name: "basic_scheme", header: "Basic abc"},
		{name: "bearer_only", header: "Bearer "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := fx.service.Authenticate(context.Background(), tc.header)
			if err != nil {
				t.Fatalf("Authenticate: %v", err)
			}
			if user != nil {
				t.Fatalf("Authenticate resolved a user from header %q", tc.header)
			}
		})
	}
}

func TestAuthenticateGarbageToken(t *testing.T) {
	fx := newIdentityFixture(t)
	user, err := fx.service.Authenticate(context.Background(), "Bearer not.a.real.token")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user != nil {
		t.Fatalf("Authenticate resolved a user from a garbage token")
	}
}

func TestAuthenticateLocalToken(t *testing.T) {
	fx := newIdentityFixture(t)
	seeded := seedUser(t, fx.db, true)

	token := signHS256(t, testLocalSecret, testLocalIssuer, testLocalAudience, jwt.MapClaims{
		"sub": seeded.ID.String(),
	})
	user, err := fx.service.Authenticate(context.Background(), "Bearer "+token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user == nil {
		t.Fatalf("Authenticate did not resolve the seeded user")
	}
	if user.ID != seeded.ID {
		t.Fatalf("resolved user %s, want %s", user.ID, seeded.ID)
	}
}

func TestAuthenticateLocalTokenInactiveUser(t *testing.T) {
	fx := newIdentityFixture(t)
	seeded := seedUser(t, fx.db, false)

	token := signHS256(t, testLocalSecret, testLocalIssuer, testLocalAudience, jwt.MapClaims{
		"sub": seeded.ID.String(),
	})
	user, err := fx.service.Authenticate(context.Background(), "Bearer "+token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user != nil {
		t.Fatalf("Authenticate resolved an inactive user")
	}
}

func TestAuthenticateLocalTokenBadSubject(t *testing.T) {
	fx := newIdentityFixture(t)
	token := signHS256(t, testLocalSecret, testLocalIssuer, testLocalAudience, jwt.MapClaims{
		"sub": "not-a-uuid",
	})
	_, err := fx.service.Authenticate(context.Background(), "Bearer "+token)
	if !errors.Is(err, ErrInvalidSubjectClaim) {
		t.Fatalf("Authenticate err=%v, want ErrInvalidSubjectClaim", err)
	}
}

func TestAuthenticateExternalTokenProvisionsUser(t *testing.T) {
	fx := newIdentityFixture(t)
	token := fx.extKey(t, jwt.MapClaims{"sub": "partner-42", "email": "p@example.com"})

	user, err := fx.service.Authenticate(context.Background(), "Bearer "+token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user == nil {
		t.Fatalf("Authenticate did not provision a user")
	}
	if user.Username != "ext:partner-42" {
		t.Fatalf("Username=%q, want %q", user.Username, "ext:partner-42")
	}
	if user.Email != "p@example.com" {
		t.Fatalf("Email=%q, want %q", user.Email, "p@example.com")
	}
	if !user.Active {
		t.Fatalf("provisioned user is not active")
	}

	var photographers []types.Photographer
	if err := fx.db.Where("user_id = ?", user.ID).Find(&photographers).Error; err != nil {
		t.Fatalf("load photographers: %v", err)
	}
	if len(photographers) != 1 {
		t.Fatalf("photographer rows=%d, want 1", len(photographers))
	}
}

func TestAuthenticateExternalTokenIdempotent(t *testing.T) {
	fx := newIdentityFixture(t)

	first, err := fx.service.Authenticate(context.Background(), "Bearer "+fx.extKey(t, jwt.MapClaims{"sub": "partner-7"}))
	if err != nil {
		t.Fatalf("first Authenticate: %v", err)
	}
	second, err := fx.service.Authenticate(context.Background(), "Bearer "+fx.extKey(t, jwt.MapClaims{"sub": "partner-7"}))
	if err != nil {
		t.Fatalf("second Authenticate: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("repeated logins resolved %s then %s", first.ID, second.ID)
	}

	var photographers []types.Photographer
	if err := fx.db.Where("user_id = ?", first.ID).Find(&photographers).Error; err != nil {
		t.Fatalf("load photographers: %v", err)
	}
	if len(photographers) != 1 {
		t.Fatalf("photographer rows=%d, want 1", len(photographers))
	}
}

func TestAuthenticateExternalSubjectFallback(t *testing.T) {
	fx := newIdentityFixture(t)
	token := fx.extKey(t, jwt.MapClaims{"user_id": "fallback-9"})

	user, err := fx.service.Authenticate(context.Background(), "Bearer "+token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user == nil || user.Username != "ext:fallback-9" {
		t.Fatalf("Authenticate did not fall back to user_id claim, got %+v", user)
	}
}

func TestAuthenticateExternalMissingSubject(t *testing.T) {
	fx := newIdentityFixture(t)
	token := fx.extKey(t, jwt.MapClaims{"email": "noone@example.com"})

	_, err := fx.service.Authenticate(context.Background(), "Bearer "+token)
	if !errors.Is(err, ErrMissingSubjectClaim) {
		t.Fatalf("Authenticate err=%v, want ErrMissingSubjectClaim", err)
	}
}

func TestAuthenticateWithoutExternalVerifier(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	userRepo := repos.NewUserRepo(db, log)
	photographerRepo := repos.NewPhotographerRepo(db, log)
	local, err := NewLocalVerifier(testLocalSecret, testLocalIssuer, testLocalAudience)
	if err != nil {
		t.Fatalf("NewLocalVerifier: %v", err)
	}
	service := NewIdentityService(db, log, userRepo, photographerRepo, local, nil)

	key, _ := newTestRSAKey(t)
	token := signRS256(t, key, jwt.MapClaims{"sub": "partner-1"})
	user, err := service.Authenticate(context.Background(), "Bearer "+token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user != nil {
		t.Fatalf("Authenticate resolved a user with no external backend configured")
	}
}
