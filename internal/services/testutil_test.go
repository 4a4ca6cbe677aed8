package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/photocatalog-backend/internal/logger"
	"github.com/yungbote/photocatalog-backend/internal/types"
)

const (
	testAccessTTL  = time.Hour
	testRefreshTTL = 24 * time.Hour
)

var testDBSeq atomic.Int64

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Photographer{},
		&types.Photograph{},
		&types.PhotoSource{},
	)
	if err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, active bool) *types.User {
	t.Helper()
	user := &types.User{
		ID:       uuid.New(),
		Username: "user-" + uuid.NewString(),
		Email:    uuid.NewString() + "@example.com",
		Active:   active,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedPhotographer(t *testing.T, db *gorm.DB) *types.Photographer {
	t.Helper()
	user := seedUser(t, db, true)
	photographer := &types.Photographer{
		ID:     uuid.New(),
		UserID: user.ID,
	}
	if err := db.Create(photographer).Error; err != nil {
		t.Fatalf("seed photographer: %v", err)
	}
	photographer.User = user
	return photographer
}

func signHS256(t *testing.T, secret, issuer, audience string, claims jwt.MapClaims) string {
	t.Helper()
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	if _, ok := claims["iss"]; !ok {
		claims["iss"] = issuer
	}
	if _, ok := claims["aud"]; !ok {
		claims["aud"] = audience
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign HS256 token: %v", err)
	}
	return token
}

func strPtr(s string) *string { return &s }
